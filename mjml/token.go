package mjml

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2"
)

// A TokenType is the type of a Token.
type TokenType uint32

const (
	// ErrorToken means that an error occurred during tokenization.
	ErrorToken TokenType = iota
	// A StartTagToken is the "<name" part of a start tag.
	StartTagToken
	// An AttributeToken is a name="value" pair inside a start tag.
	AttributeToken
	// A StartTagEndToken closes a start tag, either ">" or "/>".
	StartTagEndToken
	// An EndTagToken looks like </name>.
	EndTagToken
	// TextToken means a text span.
	TextToken
	// A CommentToken looks like <!--x-->.
	CommentToken
)

// String returns a string representation of the TokenType.
func (t TokenType) String() string {
	switch t {
	case ErrorToken:
		return "Error"
	case StartTagToken:
		return "StartTag"
	case AttributeToken:
		return "Attribute"
	case StartTagEndToken:
		return "StartTagEnd"
	case EndTagToken:
		return "EndTag"
	case TextToken:
		return "Text"
	case CommentToken:
		return "Comment"
	}
	return "Invalid(" + strconv.Itoa(int(t)) + ")"
}

// A Span is the half-open byte range [Start, End) of a token in the source.
type Span struct {
	Start, End int
}

// A Token consists of a TokenType, the tag or attribute Name and a Value
// (attribute value, text or comment body). Values are returned verbatim,
// entities are not decoded.
type Token struct {
	Type        TokenType
	Name        string
	Value       string
	SelfClosing bool
	Span        Span
}

// A Cursor is a forward-only, peekable token stream over markup text.
// It knows nothing about tag semantics: the only name-aware operation is
// ReadRaw, which returns the verbatim span up to a given closing tag.
type Cursor struct {
	src    string
	in     *parse.Input
	inTag  bool
	tag    string
	peeked *Token
	err    error
}

// NewCursor returns a Cursor reading src.
func NewCursor(src string) *Cursor {
	return &Cursor{src: src, in: parse.NewInputString(src)}
}

// Offset is the byte offset of the next unread byte.
func (c *Cursor) Offset() int {
	if c.peeked != nil {
		return c.peeked.Span.Start
	}
	return c.in.Offset()
}

// Peek returns the next token without consuming it.
func (c *Cursor) Peek() (Token, error) {
	if c.peeked == nil {
		tok, err := c.next()
		if err != nil {
			return tok, err
		}
		c.peeked = &tok
	}
	return *c.peeked, nil
}

// Next consumes and returns the next token. At the end of the input it
// returns io.EOF; malformed input yields a *ParseError of kind
// ErrMalformedMarkup, and every later call returns the same error.
func (c *Cursor) Next() (Token, error) {
	if c.peeked != nil {
		tok := *c.peeked
		c.peeked = nil
		return tok, nil
	}
	return c.next()
}

// ReadRaw returns, as a TextToken, everything up to the closing tag
// </name>. The closing tag itself is left for Next. It must be called
// right after the StartTagEndToken of a non self-closing tag.
func (c *Cursor) ReadRaw(name string) (Token, error) {
	if c.err != nil {
		return Token{}, c.err
	}
	if c.peeked != nil || c.inTag {
		return Token{}, c.fail(c.Offset(), "raw content requested inside <%s>", c.tag)
	}
	start := c.in.Offset()
	closing := "</" + name
	rest := c.src[start:]
	from := 0
	for {
		i := strings.Index(rest[from:], closing)
		if i < 0 {
			return Token{}, c.fail(len(c.src), "premature end of input, missing </%s>", name)
		}
		end := from + i + len(closing)
		if end == len(rest) || isSpace(rest[end]) || rest[end] == '>' {
			c.in.Move(from + i)
			return Token{Type: TextToken, Value: rest[:from+i], Span: Span{start, start + from + i}}, nil
		}
		from = end
	}
}

func (c *Cursor) next() (Token, error) {
	if c.err != nil {
		return Token{}, c.err
	}
	if c.inTag {
		return c.nextInTag()
	}
	for {
		start := c.in.Offset()
		if c.eof(0) {
			return Token{}, io.EOF
		}
		if c.at(0) != '<' {
			for !c.eof(0) && c.at(0) != '<' {
				c.in.Move(1)
			}
			end := c.in.Offset()
			return Token{Type: TextToken, Value: c.src[start:end], Span: Span{start, end}}, nil
		}

		switch ch := c.at(1); {
		case ch == '!' && c.hasPrefix("<!--"):
			c.in.Move(4)
			i := strings.Index(c.src[c.in.Offset():], "-->")
			if i < 0 {
				return Token{}, c.fail(len(c.src), "premature end of input inside comment")
			}
			body := c.src[c.in.Offset() : c.in.Offset()+i]
			c.in.Move(i + 3)
			return Token{Type: CommentToken, Value: body, Span: Span{start, c.in.Offset()}}, nil
		case ch == '!' && c.hasPrefix("<![CDATA["):
			c.in.Move(9)
			i := strings.Index(c.src[c.in.Offset():], "]]>")
			if i < 0 {
				return Token{}, c.fail(len(c.src), "premature end of input inside CDATA section")
			}
			body := c.src[c.in.Offset() : c.in.Offset()+i]
			c.in.Move(i + 3)
			return Token{Type: TextToken, Value: body, Span: Span{start, c.in.Offset()}}, nil
		case ch == '!':
			// <!DOCTYPE ...> carries nothing we need
			if err := c.skipPast(">"); err != nil {
				return Token{}, err
			}
		case ch == '?':
			if err := c.skipPast("?>"); err != nil {
				return Token{}, err
			}
		case ch == '/':
			return c.endTag(start)
		case isNameStart(ch):
			c.in.Move(1)
			name := c.name()
			c.inTag = true
			c.tag = name
			return Token{Type: StartTagToken, Name: name, Span: Span{start, c.in.Offset()}}, nil
		case c.eof(1):
			return Token{}, c.fail(start, "premature end of input after '<'")
		default:
			return Token{}, c.fail(start+1, "invalid character %q after '<'", ch)
		}
	}
}

func (c *Cursor) nextInTag() (Token, error) {
	c.skipSpace()
	start := c.in.Offset()
	if c.eof(0) {
		return Token{}, c.fail(start, "unterminated tag <%s>", c.tag)
	}

	switch ch := c.at(0); {
	case ch == '>':
		c.in.Move(1)
		c.inTag = false
		return Token{Type: StartTagEndToken, Name: c.tag, Span: Span{start, c.in.Offset()}}, nil
	case ch == '/':
		if c.at(1) != '>' {
			return Token{}, c.fail(start+1, "expected '>' after '/' in <%s>", c.tag)
		}
		c.in.Move(2)
		c.inTag = false
		return Token{Type: StartTagEndToken, Name: c.tag, SelfClosing: true, Span: Span{start, c.in.Offset()}}, nil
	case isNameStart(ch):
		name := c.name()
		c.skipSpace()
		if c.at(0) != '=' {
			return Token{Type: AttributeToken, Name: name, Span: Span{start, c.in.Offset()}}, nil
		}
		c.in.Move(1)
		c.skipSpace()
		value, err := c.attrValue(name)
		if err != nil {
			return Token{}, err
		}
		return Token{Type: AttributeToken, Name: name, Value: value, Span: Span{start, c.in.Offset()}}, nil
	default:
		return Token{}, c.fail(start, "invalid character %q in <%s>", ch, c.tag)
	}
}

func (c *Cursor) attrValue(name string) (string, error) {
	start := c.in.Offset()
	if c.eof(0) {
		return "", c.fail(start, "premature end of input in attribute %s", name)
	}
	if q := c.at(0); q == '"' || q == '\'' {
		i := strings.IndexByte(c.src[start+1:], q)
		if i < 0 {
			return "", c.fail(len(c.src), "unterminated value of attribute %s", name)
		}
		c.in.Move(i + 2)
		return c.src[start+1 : start+1+i], nil
	}
	for !c.eof(0) && !isSpace(c.at(0)) && c.at(0) != '>' {
		if c.at(0) == '<' || c.at(0) == '"' || c.at(0) == '\'' {
			return "", c.fail(c.in.Offset(), "invalid character %q in value of attribute %s", c.at(0), name)
		}
		c.in.Move(1)
	}
	if c.in.Offset() == start {
		return "", c.fail(start, "missing value of attribute %s", name)
	}
	return c.src[start:c.in.Offset()], nil
}

func (c *Cursor) endTag(start int) (Token, error) {
	c.in.Move(2)
	if !isNameStart(c.at(0)) {
		return Token{}, c.fail(c.in.Offset(), "invalid character %q in end tag", c.at(0))
	}
	name := c.name()
	c.skipSpace()
	if c.eof(0) {
		return Token{}, c.fail(c.in.Offset(), "unterminated end tag </%s>", name)
	}
	if c.at(0) != '>' {
		return Token{}, c.fail(c.in.Offset(), "invalid character %q in end tag </%s>", c.at(0), name)
	}
	c.in.Move(1)
	return Token{Type: EndTagToken, Name: name, Span: Span{start, c.in.Offset()}}, nil
}

func (c *Cursor) name() string {
	start := c.in.Offset()
	for isNameChar(c.at(0)) && !c.eof(0) {
		c.in.Move(1)
	}
	return c.src[start:c.in.Offset()]
}

func (c *Cursor) skipSpace() {
	for !c.eof(0) && isSpace(c.at(0)) {
		c.in.Move(1)
	}
}

func (c *Cursor) skipPast(marker string) error {
	i := strings.Index(c.src[c.in.Offset():], marker)
	if i < 0 {
		return c.fail(len(c.src), "premature end of input, missing %q", marker)
	}
	c.in.Move(i + len(marker))
	return nil
}

func (c *Cursor) hasPrefix(s string) bool {
	return strings.HasPrefix(c.src[c.in.Offset():], s)
}

func (c *Cursor) eof(i int) bool {
	return c.in.PeekErr(i) != nil
}

func (c *Cursor) at(i int) byte {
	if c.eof(i) {
		return 0
	}
	return c.in.Peek(i)
}

func (c *Cursor) fail(offset int, format string, a ...any) error {
	c.err = &ParseError{
		Kind:   ErrMalformedMarkup,
		Offset: offset,
		Msg:    fmt.Sprintf(format, a...),
	}
	return c.err
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isNameStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_' || c == ':'
}

func isNameChar(c byte) bool {
	return isNameStart(c) || c >= '0' && c <= '9' || c == '-' || c == '.'
}
