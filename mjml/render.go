package mjml

import (
	"strings"

	"go.uber.org/zap"

	"github.com/hesusruiz/mjml/inline"
	"github.com/hesusruiz/mjml/sliceedit"
)

// Conditional comment markers. Content between a start and its end marker
// is only seen by the targeted mail clients.
const (
	startConditional         = "<!--[if mso | IE]>"
	startMsoConditional      = "<!--[if mso]>"
	endConditional           = "<![endif]-->"
	startNegationConditional = "<!--[if !mso | IE]><!-->"
	startMsoNegation         = "<!--[if !mso]><!-->"
	endNegationConditional   = "<!--<![endif]-->"
)

// RenderOptions configure a render.
type RenderOptions struct {
	// KeepComments copies the comments of the source into the output.
	KeepComments bool
	// Fonts maps font families to their stylesheet. nil means DefaultFonts.
	Fonts map[string]string
	// SocialIconOrigin is the base URL of the builtin social network icons.
	SocialIconOrigin string
	Logger           *zap.Logger
}

// DefaultRenderOptions keeps comments and uses the default fonts and icons.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		KeepComments:     true,
		Fonts:            DefaultFonts,
		SocialIconOrigin: DefaultSocialIconOrigin,
	}
}

// A ByteRenderer accumulates the output of a render.
type ByteRenderer struct {
	buf []byte
}

// NewByteRenderer returns an empty ByteRenderer.
func NewByteRenderer() *ByteRenderer {
	return &ByteRenderer{buf: make([]byte, 0, 16*1024)}
}

// Render appends the parts to the output.
func (br *ByteRenderer) Render(parts ...string) {
	for _, p := range parts {
		br.buf = append(br.buf, p...)
	}
}

// Renderln appends the parts followed by a newline.
func (br *ByteRenderer) Renderln(parts ...string) {
	br.Render(parts...)
	br.buf = append(br.buf, '\n')
}

// Open writes a start tag with the attribute pairs whose value is not empty.
func (br *ByteRenderer) Open(tag string, kv ...string) {
	br.Render("<", tag)
	br.attrs(kv)
	br.Render(">")
}

// Void writes a self-closed tag.
func (br *ByteRenderer) Void(tag string, kv ...string) {
	br.Render("<", tag)
	br.attrs(kv)
	br.Render(" />")
}

// Close writes an end tag.
func (br *ByteRenderer) Close(tag string) {
	br.Render("</", tag, ">")
}

func (br *ByteRenderer) attrs(kv []string) {
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i+1] == "" {
			continue
		}
		br.Render(" ", kv[i], `="`, kv[i+1], `"`)
	}
}

func (br *ByteRenderer) Bytes() []byte {
	return br.buf
}

func (br *ByteRenderer) String() string {
	return string(br.buf)
}

// style builds an inline style from property/value pairs, skipping the
// properties without value.
func style(kv ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i+1] == "" {
			continue
		}
		b.WriteString(kv[i])
		b.WriteByte(':')
		b.WriteString(kv[i+1])
		b.WriteByte(';')
	}
	return b.String()
}

type renderer struct {
	opts RenderOptions
	h    *Header
	br   *ByteRenderer
	log  *zap.Logger
}

// Render lays the document out, collects its header and renders it to a
// complete HTML document. The tree is not modified after the first call,
// so rendering twice yields the same output.
func (d *Document) Render(opts RenderOptions) (string, error) {
	if opts.Fonts == nil {
		opts.Fonts = DefaultFonts
	}
	if opts.SocialIconOrigin == "" {
		opts.SocialIconOrigin = DefaultSocialIconOrigin
	}
	log := opts.Logger
	if log == nil {
		log = d.log
	}
	if log == nil {
		log = zap.NewNop()
	}

	d.Layout()

	r := &renderer{
		opts: opts,
		h:    NewHeader(opts.Fonts),
		br:   NewByteRenderer(),
		log:  log.Named("render"),
	}

	// the head goes first so that the breakpoint is known by the
	// styles generated from the body
	if d.Head != nil {
		r.updateHeader(d.Head)
	}
	r.updateHeader(d.Root)

	if d.Body != nil {
		if err := r.render(d.Body); err != nil {
			return "", err
		}
	}
	body := r.br.String()

	if css := r.h.InlineStyles(); len(css) > 0 {
		inlined, rest, err := inline.Apply(body, strings.Join(css, "\n"))
		if err != nil {
			return "", &RenderError{Tag: "mj-style", Msg: "inlining styles", Err: err}
		}
		body = inlined
		if strings.TrimSpace(rest) != "" {
			r.h.AddHeadStyle(rest)
		}
	}

	html := sliceedit.MergeConditionals(r.assemble(body))
	r.log.Debug("rendered document",
		zap.String("file", d.FileName),
		zap.Int("bytes", len(html)),
		zap.Int("mediaQueries", len(r.h.MediaQueries())),
		zap.Strings("fonts", r.h.UsedFonts()))
	return html, nil
}

// ToHTML parses and renders src in one go.
func ToHTML(src string, opts RenderOptions, parseOpts ...Option) (string, error) {
	doc, err := ParseString(src, parseOpts...)
	if err != nil {
		return "", err
	}
	return doc.Render(opts)
}

// updateHeader registers in the header what n needs in the document head.
func (r *renderer) updateHeader(n *Node) {
	h := r.h
	switch n.Type {
	case MjmlNode:
		h.Lang = n.Get("lang")
		if h.Lang == "" {
			h.Lang = "und"
		}
		h.Dir = n.Get("dir")
		if h.Dir == "" {
			h.Dir = "auto"
		}
		h.OWADesktop = n.Get("owa") == "desktop"
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != HeadNode {
				r.updateHeader(c)
			}
		}
		return
	case BreakpointNode:
		h.SetBreakpoint(n.Get("width"))
	case FontNode:
		h.AddFont(n.Get("name"), n.Get("href"))
	case TitleNode:
		h.Title = n.Content
	case PreviewNode:
		h.Preview = n.Content
	case StyleNode:
		if n.Get("inline") == "inline" {
			h.AddInlineStyle(n.Content)
		} else {
			h.AddHeadStyle(n.Content)
		}
	case RawNode:
		if n.Parent != nil && n.Parent.Type == HeadNode {
			h.AddHeadRaw(r.raw(n.Content))
		} else {
			h.UseFontsIn(n.Content)
		}
	case BodyNode:
		h.BackgroundColor = n.Get("background-color")
	case ColumnNode, GroupNode:
		h.AddMediaQuery(n.columnClass())
	case ImageNode:
		h.AddStyle(imageHeadStyle(h))
	case NavbarNode:
		h.AddStyle(navbarHeadStyle(h))
	case CarouselNode:
		h.AddStyle(carouselHeadStyle(n))
	case AccordionNode:
		h.AddStyle(accordionHeadStyle)
	}

	if n.Type > BodyNode && n.Type < CharDataNode {
		for _, attr := range []string{"font-family", "ico-font-family"} {
			if ff := n.Get(attr); ff != "" {
				h.UseFonts(ff)
			}
		}
		if n.Type.info().ending {
			h.UseFontsIn(n.Content)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.updateHeader(c)
	}
}

// render writes the HTML of n.
func (r *renderer) render(n *Node) error {
	switch n.Type {
	case BodyNode:
		return r.renderBody(n)
	case SectionNode:
		return r.renderSection(n)
	case WrapperNode:
		return r.renderWrapper(n)
	case GroupNode:
		return r.renderGroup(n)
	case ColumnNode:
		return r.renderColumn(n)
	case HeroNode:
		return r.renderHero(n)
	case TextNode:
		r.renderText(n)
	case ButtonNode:
		r.renderButton(n)
	case ImageNode:
		r.renderImage(n)
	case DividerNode:
		r.renderDivider(n)
	case SpacerNode:
		r.renderSpacer(n)
	case TableNode:
		r.renderTable(n)
	case SocialNode:
		return r.renderSocial(n)
	case SocialElementNode:
		r.renderSocialElement(n)
	case NavbarNode:
		return r.renderNavbar(n)
	case NavbarLinkNode:
		r.renderNavbarLink(n)
	case CarouselNode:
		return r.renderCarousel(n)
	case CarouselImageNode:
		r.renderCarouselImage(n)
	case AccordionNode:
		return r.renderAccordion(n)
	case AccordionElementNode:
		return r.renderAccordionElement(n)
	case AccordionTitleNode:
		r.renderAccordionTitle(n)
	case AccordionTextNode:
		r.renderAccordionText(n)
	case RawNode:
		r.br.Render(r.raw(n.Content))
	case CharDataNode:
		r.br.Render(n.Content)
	case CommentNode:
		if r.opts.KeepComments {
			r.br.Render("<!--", n.Content, "-->")
		}
	default:
		return &RenderError{Tag: n.Tag, Offset: n.Offset, Msg: "not renderable"}
	}
	return nil
}

// renderChildren renders the children of n, wrapping every non raw child
// with wrap when it is not nil.
func (r *renderer) renderChildren(n *Node, wrap func(c *Node, content func() error) error) error {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		child := c
		var err error
		if wrap == nil || child.IsRaw() {
			err = r.render(child)
		} else {
			err = wrap(child, func() error { return r.render(child) })
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// raw returns verbatim content, without its comments when they are not
// kept. Conditional comments are part of the markup and always stay.
func (r *renderer) raw(content string) string {
	if r.opts.KeepComments {
		return content
	}
	return stripComments(content)
}

func stripComments(s string) string {
	if !strings.Contains(s, "<!--") {
		return s
	}
	var b strings.Builder
	for {
		i := strings.Index(s, "<!--")
		if i < 0 {
			break
		}
		j := strings.Index(s[i+4:], "-->")
		if j < 0 {
			break
		}
		body := s[i+4 : i+4+j]
		end := i + 4 + j + 3
		if strings.HasPrefix(body, "[if") || strings.HasPrefix(body, "<![endif]") {
			b.WriteString(s[:end])
		} else {
			b.WriteString(s[:i])
		}
		s = s[end:]
	}
	b.WriteString(s)
	return b.String()
}
