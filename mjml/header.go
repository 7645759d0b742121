package mjml

import (
	"strings"
)

// DefaultBreakpoint is the width under which columns stack.
const DefaultBreakpoint = "480px"

// A MediaQuery gives a responsive class its width above the breakpoint.
type MediaQuery struct {
	Class string
	Width string
}

// Header accumulates, during one render, everything that ends up in the
// document head. It only grows: values are added, never removed, and the
// breakpoint can only be set once.
type Header struct {
	Title           string
	Preview         string
	Lang            string
	Dir             string
	BackgroundColor string
	OWADesktop      bool

	breakpoint    string
	breakpointSet bool

	fonts     map[string]string
	usedFonts []string
	fontSeen  map[string]bool

	styles     []string
	styleSeen  map[string]bool
	headStyles []string
	inline     []string
	headRaw    []string

	mediaQueries []MediaQuery
	mediaSeen    map[string]bool
}

// NewHeader returns an empty Header knowing the given fonts.
func NewHeader(fonts map[string]string) *Header {
	h := &Header{
		breakpoint: DefaultBreakpoint,
		fonts:      map[string]string{},
		fontSeen:   map[string]bool{},
		styleSeen:  map[string]bool{},
		mediaSeen:  map[string]bool{},
	}
	for name, href := range fonts {
		h.fonts[name] = href
	}
	return h
}

// Breakpoint returns the breakpoint width.
func (h *Header) Breakpoint() string {
	return h.breakpoint
}

// LowerBreakpoint is one pixel under the breakpoint, for max-width queries.
func (h *Header) LowerBreakpoint() string {
	return px(float64(parseInt(h.breakpoint) - 1))
}

// SetBreakpoint sets the breakpoint. Only the first call has effect.
func (h *Header) SetBreakpoint(width string) bool {
	if h.breakpointSet || width == "" {
		return false
	}
	h.breakpoint = width
	h.breakpointSet = true
	return true
}

// AddFont registers the stylesheet of a font family.
func (h *Header) AddFont(name, href string) {
	h.fonts[name] = href
}

// UseFonts records the families of a font-family declaration as used.
func (h *Header) UseFonts(families string) {
	for _, f := range strings.Split(families, ",") {
		f = strings.Trim(strings.TrimSpace(f), `"'`)
		if f == "" || h.fontSeen[f] {
			continue
		}
		h.fontSeen[f] = true
		h.usedFonts = append(h.usedFonts, f)
	}
}

// UseFontsIn records as used every known family mentioned in html.
func (h *Header) UseFontsIn(html string) {
	for name := range h.fonts {
		if !h.fontSeen[name] && strings.Contains(html, name) {
			h.UseFonts(name)
		}
	}
}

// UsedFonts returns the used families in the order they were first seen.
func (h *Header) UsedFonts() []string {
	return h.usedFonts
}

// FontImports returns the stylesheet URLs of the used families.
func (h *Header) FontImports() []string {
	var urls []string
	seen := map[string]bool{}
	for _, f := range h.usedFonts {
		if href, ok := h.fonts[f]; ok && !seen[href] {
			seen[href] = true
			urls = append(urls, href)
		}
	}
	return urls
}

// AddStyle adds a component style fragment; duplicates are ignored.
func (h *Header) AddStyle(css string) {
	if css == "" || h.styleSeen[css] {
		return
	}
	h.styleSeen[css] = true
	h.styles = append(h.styles, css)
}

// Styles returns the component style fragments in insertion order.
func (h *Header) Styles() []string {
	return h.styles
}

// AddHeadStyle adds the content of an mj-style block.
func (h *Header) AddHeadStyle(css string) {
	h.headStyles = append(h.headStyles, css)
}

// AddInlineStyle adds CSS to be inlined into the body.
func (h *Header) AddInlineStyle(css string) {
	h.inline = append(h.inline, css)
}

// InlineStyles returns the CSS to be inlined.
func (h *Header) InlineStyles() []string {
	return h.inline
}

// AddHeadRaw adds a raw fragment to the end of the head.
func (h *Header) AddHeadRaw(html string) {
	h.headRaw = append(h.headRaw, html)
}

// AddMediaQuery registers the width of a responsive class. The first
// registration of a class wins.
func (h *Header) AddMediaQuery(class, width string) {
	if h.mediaSeen[class] {
		return
	}
	h.mediaSeen[class] = true
	h.mediaQueries = append(h.mediaQueries, MediaQuery{Class: class, Width: width})
}

// MediaQueries returns the registered classes in insertion order.
func (h *Header) MediaQueries() []MediaQuery {
	return h.mediaQueries
}
