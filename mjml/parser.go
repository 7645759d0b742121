package mjml

import (
	"encoding/hex"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// A Document is a parsed mjml document: the component tree plus the
// overrides declared in its head.
type Document struct {
	FileName  string
	Root      *Node
	Head      *Node
	Body      *Node
	Overrides *Overrides

	laidOut bool
	log     *zap.Logger
}

// An Option configures a Parser.
type Option func(*Parser)

// WithLoader sets the loader resolving mj-include directives.
func WithLoader(l IncludeLoader) Option {
	return func(p *Parser) { p.loader = l }
}

// WithLogger sets the logger of the parser.
func WithLogger(log *zap.Logger) Option {
	return func(p *Parser) { p.log = log.Named("parser") }
}

// WithFileName sets the name used in errors and as the base of relative
// include paths.
func WithFileName(name string) Option {
	return func(p *Parser) { p.fileName = name }
}

// Parser is a recursive-descent parser over a Cursor.
type Parser struct {
	fileName string
	src      string
	cur      *Cursor
	loader   IncludeLoader
	log      *zap.Logger

	// including is the stack of include files being parsed, to detect cycles
	including map[string]bool

	// styles collects css includes found outside mj-head
	styles *[]*Node
}

// NewParser returns a parser reading src.
func NewParser(src string, opts ...Option) *Parser {
	p := &Parser{
		src:       src,
		cur:       NewCursor(src),
		loader:    NoopLoader{},
		log:       zap.NewNop(),
		including: map[string]bool{},
		styles:    new([]*Node),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseString parses a whole mjml document.
func ParseString(src string, opts ...Option) (*Document, error) {
	return NewParser(src, opts...).Parse()
}

// Parse parses a whole mjml document.
func Parse(src []byte, opts ...Option) (*Document, error) {
	return NewParser(string(src), opts...).Parse()
}

// ParseFile reads and parses a document. Unless another loader is given,
// includes are read from the filesystem relative to fileName.
func ParseFile(fileName string, opts ...Option) (*Document, error) {
	src, err := os.ReadFile(fileName)
	if err != nil {
		return nil, err
	}
	opts = append([]Option{WithLoader(&FileLoader{}), WithFileName(fileName)}, opts...)
	return Parse(src, opts...)
}

// Parse runs the parser to completion.
func (p *Parser) Parse() (*Document, error) {
	root, err := p.parseRoot()
	if err != nil {
		return nil, p.locate(err)
	}
	doc := &Document{FileName: p.fileName, Root: root, log: p.log}
	p.finish(doc)
	p.log.Debug("parsed document", zap.String("file", p.fileName), zap.Int("bytes", len(p.src)))
	return doc, nil
}

func (p *Parser) locate(err error) error {
	var pe *ParseError
	if errors.As(err, &pe) {
		pe.locate(p.fileName, p.src)
	}
	return err
}

func (p *Parser) errorf(kind error, offset int, name, msg string) *ParseError {
	return &ParseError{Kind: kind, Offset: offset, Name: name, Msg: msg}
}

// parseRoot parses the single <mjml> root, ignoring surrounding
// whitespace and comments.
func (p *Parser) parseRoot() (*Node, error) {
	var root *Node
	for {
		tok, err := p.cur.Next()
		if err == io.EOF {
			if root == nil {
				return nil, ErrorNoContent
			}
			return root, nil
		}
		if err != nil {
			return nil, err
		}

		switch tok.Type {
		case TextToken:
			if strings.TrimSpace(tok.Value) != "" {
				return nil, p.errorf(ErrUnexpectedText, tok.Span.Start, "", "text outside of <mjml>")
			}
		case CommentToken:
		case StartTagToken:
			if root != nil || tok.Name != "mjml" {
				return nil, p.errorf(ErrUnexpectedElement, tok.Span.Start, tok.Name, "")
			}
			root, err = p.parseElement(tok, MjmlNode)
			if err != nil {
				return nil, err
			}
		default:
			return nil, p.errorf(ErrMalformedMarkup, tok.Span.Start, tok.Name, "unexpected "+tok.Type.String())
		}
	}
}

// parseElement parses the element whose StartTagToken is start.
func (p *Parser) parseElement(start Token, t NodeType) (*Node, error) {
	n := &Node{
		Type:   t,
		Tag:    start.Name,
		File:   p.fileName,
		Offset: start.Span.Start,
		Inline: map[string]string{},
	}
	info := t.info()

	selfClosing, err := p.readAttributes(n, info.attrs)
	if err != nil {
		return nil, err
	}
	if err := p.checkRequired(n); err != nil {
		return nil, err
	}
	if selfClosing {
		return n, nil
	}

	if info.ending {
		tok, err := p.cur.ReadRaw(start.Name)
		if err != nil {
			return nil, err
		}
		n.Content = tok.Value
		return n, p.expectEnd(start.Name)
	}

	return n, p.parseChildren(n, start.Name)
}

// readAttributes reads the attribute tokens of a start tag into n.Inline.
// A nil allowed list accepts any attribute.
func (p *Parser) readAttributes(n *Node, allowed []string) (selfClosing bool, err error) {
	for {
		tok, err := p.cur.Next()
		if err == io.EOF {
			return false, p.errorf(ErrMalformedMarkup, len(p.src), n.Tag, "unterminated tag")
		}
		if err != nil {
			return false, err
		}
		switch tok.Type {
		case AttributeToken:
			if _, dup := n.Inline[tok.Name]; dup {
				return false, p.errorf(ErrUnexpectedAttribute, tok.Span.Start, tok.Name, "duplicated in <"+n.Tag+">")
			}
			if allowed != nil && !contains(allowed, tok.Name) {
				return false, p.errorf(ErrUnexpectedAttribute, tok.Span.Start, tok.Name, "not allowed in <"+n.Tag+">")
			}
			n.Inline[tok.Name] = tok.Value
		case StartTagEndToken:
			return tok.SelfClosing, nil
		default:
			return false, p.errorf(ErrMalformedMarkup, tok.Span.Start, n.Tag, "unexpected "+tok.Type.String())
		}
	}
}

func (p *Parser) checkRequired(n *Node) error {
	var required []string
	switch n.Type {
	case FontNode:
		required = []string{"name", "href"}
	case ClassNode:
		required = []string{"name"}
	}
	for _, key := range required {
		if n.Inline[key] == "" {
			return p.errorf(ErrMissingAttribute, n.Offset, key, "required by <"+n.Tag+">")
		}
	}
	return nil
}

// expectEnd consumes the end tag </name>, allowing whitespace and comments
// before it.
func (p *Parser) expectEnd(name string) error {
	for {
		tok, err := p.cur.Next()
		if err == io.EOF {
			return p.errorf(ErrMalformedMarkup, len(p.src), name, "premature end of input, missing </"+name+">")
		}
		if err != nil {
			return err
		}
		switch {
		case tok.Type == TextToken && strings.TrimSpace(tok.Value) == "":
		case tok.Type == CommentToken:
		case tok.Type == EndTagToken && tok.Name == name:
			return nil
		default:
			return p.errorf(ErrMalformedMarkup, tok.Span.Start, name, "expected </"+name+">")
		}
	}
}

// parseChildren parses the children of n up to the end tag </closing>, or
// up to the end of the input when closing is empty.
func (p *Parser) parseChildren(n *Node, closing string) error {
	for {
		tok, err := p.cur.Next()
		if err == io.EOF {
			if closing == "" {
				return nil
			}
			return p.errorf(ErrMalformedMarkup, len(p.src), closing, "premature end of input, missing </"+closing+">")
		}
		if err != nil {
			return err
		}

		switch tok.Type {
		case EndTagToken:
			if tok.Name != closing {
				return p.errorf(ErrMalformedMarkup, tok.Span.Start, tok.Name, "mismatched end tag, expected </"+closing+">")
			}
			return nil

		case TextToken:
			if strings.TrimSpace(tok.Value) == "" {
				continue
			}
			if !n.Type.info().text {
				return p.errorf(ErrUnexpectedText, tok.Span.Start, "", "text not allowed in <"+n.Tag+">")
			}
			n.AppendChild(&Node{Type: CharDataNode, File: p.fileName, Offset: tok.Span.Start, Content: tok.Value})

		case CommentToken:
			// void tags and mj-attributes have no place for a comment in
			// the output, so it is dropped
			if n.Type.info().void || n.Type == AttributesNode {
				continue
			}
			n.AppendChild(&Node{Type: CommentNode, File: p.fileName, Offset: tok.Span.Start, Content: tok.Value})

		case StartTagToken:
			if err := p.parseChild(n, tok); err != nil {
				return err
			}

		default:
			return p.errorf(ErrMalformedMarkup, tok.Span.Start, tok.Name, "unexpected "+tok.Type.String())
		}
	}
}

func (p *Parser) parseChild(n *Node, tok Token) error {
	if n.Type == AttributesNode {
		return p.parseOverride(n, tok)
	}
	if tok.Name == "mj-include" && len(n.Type.info().children) > 0 {
		return p.parseInclude(n, tok)
	}

	t, ok := LookupTag(tok.Name)
	if !ok || !n.Type.accepts(t) {
		return p.errorf(ErrUnexpectedElement, tok.Span.Start, tok.Name, "not allowed in <"+n.Tag+">")
	}
	child, err := p.parseElement(tok, t)
	if err != nil {
		return err
	}
	n.AppendChild(child)
	return nil
}

// parseOverride parses a child of <mj-attributes>: mj-all, mj-class or a
// tag name whose attributes become that tag's overrides.
func (p *Parser) parseOverride(n *Node, tok Token) error {
	t := TagOverrideNode
	switch tok.Name {
	case "mj-all":
		t = AllNode
	case "mj-class":
		t = ClassNode
	default:
		known, ok := LookupTag(tok.Name)
		if !ok || known < RawNode {
			return p.errorf(ErrUnexpectedElement, tok.Span.Start, tok.Name, "not allowed in <mj-attributes>")
		}
	}
	child, err := p.parseElement(tok, t)
	if err != nil {
		return err
	}
	n.AppendChild(child)
	return nil
}

// parseInclude resolves an mj-include directive and parses the result as
// if it was written in place of the directive.
func (p *Parser) parseInclude(parent *Node, start Token) error {
	directive := &Node{Tag: start.Name, Offset: start.Span.Start, Inline: map[string]string{}}
	selfClosing, err := p.readAttributes(directive, []string{"path", "type", "css-inline"})
	if err != nil {
		return err
	}
	if !selfClosing {
		if err := p.expectEnd(start.Name); err != nil {
			return err
		}
	}

	rel := directive.Inline["path"]
	if rel == "" {
		return p.errorf(ErrMissingAttribute, start.Span.Start, "path", "required by <mj-include>")
	}
	target := includePath(p.fileName, rel)
	if p.including[target] {
		return &ParseError{Kind: ErrIncludeLoader, Offset: start.Span.Start, Name: target,
			Err: &IncludeLoaderError{Kind: IncludeOther, Path: target, Err: errors.New("include cycle")}}
	}

	content, err := p.loader.Resolve(target)
	if err != nil {
		var ile *IncludeLoaderError
		if !errors.As(err, &ile) {
			ile = &IncludeLoaderError{Kind: IncludeOther, Path: target, Err: err}
		}
		return &ParseError{Kind: ErrIncludeLoader, Offset: start.Span.Start, Name: target, Err: ile}
	}
	p.log.Debug("include resolved", zap.String("path", target), zap.Int("bytes", len(content)))

	switch kind := directive.Inline["type"]; kind {
	case "css":
		style := &Node{Type: StyleNode, Tag: "mj-style", File: target, Offset: start.Span.Start, Content: content,
			Inline: map[string]string{}}
		if directive.Inline["css-inline"] == "inline" {
			style.Inline["inline"] = "inline"
		}
		if parent.Type == HeadNode {
			parent.AppendChild(style)
		} else {
			*p.styles = append(*p.styles, style)
		}
		return nil

	case "html":
		if !parent.Type.accepts(RawNode) {
			return p.errorf(ErrUnexpectedElement, start.Span.Start, "mj-raw", "included html not allowed in <"+parent.Tag+">")
		}
		parent.AppendChild(&Node{Type: RawNode, Tag: "mj-raw", File: target, Offset: start.Span.Start, Content: content,
			Inline: map[string]string{}})
		return nil

	case "", "mjml":
		sub := &Parser{
			fileName:  target,
			src:       content,
			cur:       NewCursor(content),
			loader:    p.loader,
			log:       p.log,
			including: p.including,
			styles:    p.styles,
		}
		p.including[target] = true
		defer delete(p.including, target)
		return sub.locate(sub.parseIncluded(parent))

	default:
		return p.errorf(ErrUnexpectedAttribute, start.Span.Start, "type", "unknown include type "+strconv.Quote(kind))
	}
}

// parseIncluded parses included markup into parent. A complete <mjml>
// document contributes the children of its mj-body, or of its mj-head when
// included from the head.
func (p *Parser) parseIncluded(parent *Node) error {
	tok, err := p.skipBlank()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return err
	}
	if tok.Type != StartTagToken || tok.Name != "mjml" {
		return p.parseChildren(parent, "")
	}

	p.cur.Next()
	root, err := p.parseElement(tok, MjmlNode)
	if err != nil {
		return err
	}
	src := root.FindChild(BodyNode)
	if parent.Type == HeadNode {
		src = root.FindChild(HeadNode)
	}
	if src == nil {
		return nil
	}
	for _, child := range src.Children() {
		switch {
		case child.Type == CommentNode:
		case child.Type == CharDataNode:
			if !parent.Type.info().text {
				return p.errorf(ErrUnexpectedText, child.Offset, "", "text not allowed in <"+parent.Tag+">")
			}
		case !parent.Type.accepts(child.Type):
			return p.errorf(ErrUnexpectedElement, child.Offset, child.Tag, "not allowed in <"+parent.Tag+">")
		}
	}
	parent.ReparentChildren(src)
	return nil
}

// skipBlank peeks the first token that is not blank text.
func (p *Parser) skipBlank() (Token, error) {
	for {
		tok, err := p.cur.Peek()
		if err != nil {
			return tok, err
		}
		if tok.Type != TextToken || strings.TrimSpace(tok.Value) != "" {
			return tok, nil
		}
		p.cur.Next()
	}
}

// finish links head and body, collects the overrides and resolves the
// attributes of every node.
func (p *Parser) finish(doc *Document) {
	root := doc.Root
	doc.Head = root.FindChild(HeadNode)
	doc.Body = root.FindChild(BodyNode)

	if len(*p.styles) > 0 {
		if doc.Head == nil {
			doc.Head = &Node{Type: HeadNode, Tag: "mj-head", File: p.fileName, Inline: map[string]string{}}
			root.InsertBefore(doc.Head, root.FirstChild)
		}
		for _, style := range *p.styles {
			doc.Head.AppendChild(style)
		}
	}

	doc.Overrides = collectOverrides(doc.Head)
	completeAccordions(root)

	var counter int
	var resolve func(n *Node, inBody bool)
	resolve = func(n *Node, inBody bool) {
		var overrides *Overrides
		if inBody {
			overrides = doc.Overrides
		}
		switch n.Type {
		case CharDataNode, CommentNode:
		default:
			n.Attrs = Resolve(n.Tag, n.Inline, overrides, inheritedAttributes(n.Parent), defaultAttributes[n.Type])
		}
		if n.Type == CarouselNode || n.Type == NavbarNode {
			n.id = instanceID(doc.FileName, counter)
			counter++
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			resolve(c, inBody || n.Type == BodyNode)
		}
	}
	resolve(root, false)
}

func collectOverrides(head *Node) *Overrides {
	o := NewOverrides()
	if head == nil {
		return o
	}
	for attrs := head.FirstChild; attrs != nil; attrs = attrs.NextSibling {
		if attrs.Type != AttributesNode {
			continue
		}
		for c := attrs.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case AllNode:
				merge(o.All, c.Inline)
			case ClassNode:
				name := c.Inline[nameKey]
				if o.Classes[name] == nil {
					o.Classes[name] = map[string]string{}
				}
				merge(o.Classes[name], c.Inline)
			case TagOverrideNode:
				if o.Tags[c.Tag] == nil {
					o.Tags[c.Tag] = map[string]string{}
				}
				merge(o.Tags[c.Tag], c.Inline)
			}
		}
	}
	return o
}

// completeAccordions gives every accordion element a title and a text
// child, creating empty ones where missing.
func completeAccordions(n *Node) {
	if n.Type == AccordionElementNode {
		if n.FindChild(AccordionTitleNode) == nil {
			n.InsertBefore(&Node{Type: AccordionTitleNode, Tag: "mj-accordion-title", File: n.File, Offset: n.Offset,
				Inline: map[string]string{}}, n.FirstChild)
		}
		if n.FindChild(AccordionTextNode) == nil {
			n.AppendChild(&Node{Type: AccordionTextNode, Tag: "mj-accordion-text", File: n.File, Offset: n.Offset,
				Inline: map[string]string{}})
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		completeAccordions(c)
	}
}

// instanceID derives a stable identifier from the document name and the
// position of the component among its kind.
func instanceID(fileName string, index int) string {
	u := uuid.NewSHA1(uuid.NameSpaceURL, []byte(fileName+"#"+strconv.Itoa(index)))
	return hex.EncodeToString(u[:6])
}

func merge(dst, src map[string]string) {
	for k, v := range src {
		dst[k] = v
	}
}

func contains(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
