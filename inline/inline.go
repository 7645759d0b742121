// Package inline moves CSS rules into the style attribute of the HTML
// elements they select, for mail clients ignoring style sheets.
package inline

import (
	"io"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/hesusruiz/mjml/sliceedit"
)

type declaration struct {
	property  string
	value     string
	important bool
}

type rule struct {
	sel   cascadia.Sel
	order int
	decls []declaration
}

// A Stylesheet is CSS split into the rules that can be inlined and the
// rest, which must stay in a style element.
type Stylesheet struct {
	rules []rule
	rest  strings.Builder
}

// Rest returns the CSS that cannot be inlined: at-rules and rules with
// pseudo-classes or selectors not understood.
func (s *Stylesheet) Rest() string {
	return s.rest.String()
}

// Len returns the number of inlinable rules.
func (s *Stylesheet) Len() int {
	return len(s.rules)
}

// Parse reads a style sheet.
func Parse(src string) (*Stylesheet, error) {
	s := &Stylesheet{}
	p := css.NewParser(parse.NewInputString(src), false)

	var selectors []string
	depth := 0
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := p.Err(); err != nil && err != io.EOF {
				return nil, err
			}
			return s, nil

		case css.BeginAtRuleGrammar:
			depth++
			s.rest.Write(data)
			s.rest.WriteString(" ")
			s.rest.WriteString(tokens(p.Values()))
			s.rest.WriteString(" {\n")

		case css.EndAtRuleGrammar:
			depth--
			s.rest.WriteString("}\n")

		case css.AtRuleGrammar:
			s.rest.Write(data)
			s.rest.WriteString(" ")
			s.rest.WriteString(tokens(p.Values()))
			s.rest.WriteString(";\n")

		case css.QualifiedRuleGrammar:
			selectors = append(selectors, tokens(p.Values()))

		case css.BeginRulesetGrammar:
			selectors = append(selectors, tokens(p.Values()))
			decls := declarations(p)
			if depth > 0 {
				s.keep(strings.Join(selectors, ","), decls)
			} else {
				for _, group := range selectors {
					for _, sel := range splitSelectors(group) {
						s.add(sel, decls)
					}
				}
			}
			selectors = nil
		}
	}
}

// declarations reads the declarations of a ruleset up to its end.
func declarations(p *css.Parser) []declaration {
	var decls []declaration
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar, css.EndRulesetGrammar:
			return decls
		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			d := declaration{property: strings.ToLower(string(data))}
			value := tokens(p.Values())
			if i := strings.LastIndexByte(value, '!'); i >= 0 && strings.EqualFold(strings.TrimSpace(value[i+1:]), "important") {
				d.important = true
				value = strings.TrimSpace(value[:i])
			}
			d.value = value
			decls = append(decls, d)
		}
	}
}

// splitSelectors splits a selector list on the commas outside of
// parentheses, brackets and strings.
func splitSelectors(group string) []string {
	var parts []string
	depth, start := 0, 0
	var quote byte
	for i := 0; i < len(group); i++ {
		c := group[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '(' || c == '[':
			depth++
		case c == ')' || c == ']':
			depth--
		case c == ',' && depth == 0:
			parts = append(parts, group[start:i])
			start = i + 1
		}
	}
	return append(parts, group[start:])
}

func (s *Stylesheet) add(selector string, decls []declaration) {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return
	}
	// pseudo-classes depend on the state of the element
	if strings.Contains(selector, ":") {
		s.keep(selector, decls)
		return
	}
	sel, err := cascadia.Parse(selector)
	if err != nil {
		s.keep(selector, decls)
		return
	}
	s.rules = append(s.rules, rule{sel: sel, order: len(s.rules), decls: decls})
}

func (s *Stylesheet) keep(selector string, decls []declaration) {
	s.rest.WriteString(strings.TrimSpace(selector))
	s.rest.WriteString(" { ")
	for _, d := range decls {
		s.rest.WriteString(d.String())
		s.rest.WriteString(" ")
	}
	s.rest.WriteString("}\n")
}

func (d declaration) String() string {
	if d.important {
		return d.property + ":" + d.value + " !important;"
	}
	return d.property + ":" + d.value + ";"
}

func tokens(ts []css.Token) string {
	var b strings.Builder
	for _, t := range ts {
		b.Write(t.Data)
	}
	return strings.TrimSpace(b.String())
}

// A computed style keeps the properties in the order they were first set.
type computed struct {
	order []string
	decls map[string]declaration
}

func (c *computed) set(d declaration) {
	if c.decls == nil {
		c.decls = map[string]declaration{}
	}
	old, ok := c.decls[d.property]
	if !ok {
		c.order = append(c.order, d.property)
	} else if old.important && !d.important {
		return
	}
	c.decls[d.property] = d
}

// Apply inlines the rules of css into the HTML fragment src. It returns
// the new fragment and the CSS that could not be inlined.
func Apply(src, styles string) (string, string, error) {
	sheet, err := Parse(styles)
	if err != nil {
		return "", "", err
	}
	if sheet.Len() == 0 {
		return src, sheet.Rest(), nil
	}
	out, err := sheet.Inline(src)
	if err != nil {
		return "", "", err
	}
	return out, sheet.Rest(), nil
}

// Inline applies the rules of the sheet to the HTML fragment src.
// Declarations already in a style attribute win over the rules, except
// for important ones. Only the start tags of the matched elements are
// rewritten, the rest of src is kept byte for byte.
func (s *Stylesheet) Inline(src string) (string, error) {
	body, spans, err := tree(src)
	if err != nil {
		return "", err
	}
	doc := goquery.NewDocumentFromNode(body)

	rules := make([]rule, len(s.rules))
	copy(rules, s.rules)
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].sel.Specificity().Less(rules[j].sel.Specificity())
	})

	styles := map[*html.Node]*computed{}
	var matched []*html.Node
	for _, r := range rules {
		doc.FindMatcher(cascadia.Selector(r.sel.Match)).Each(func(_ int, sel *goquery.Selection) {
			for _, n := range sel.Nodes {
				c := styles[n]
				if c == nil {
					c = &computed{}
					styles[n] = c
					matched = append(matched, n)
				}
				for _, d := range r.decls {
					c.set(d)
				}
			}
		})
	}
	if len(matched) == 0 {
		return src, nil
	}

	buf := sliceedit.NewBuffer([]byte(src))
	for _, n := range matched {
		merge(n, styles[n])
		sp := spans[n]
		buf.Replace(sp.start, sp.end, startTag(n, sp.selfClosing))
	}
	return buf.String(), nil
}

type span struct {
	start, end  int
	selfClosing bool
}

// tree builds the element tree of an HTML fragment under a body element,
// recording where the start tag of every element is in src. Unlike a full
// HTML parser it never moves or creates elements.
func tree(src string) (*html.Node, map[*html.Node]span, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	spans := map[*html.Node]span{}
	cur := body
	offset := 0

	z := html.NewTokenizer(strings.NewReader(src))
	for {
		tt := z.Next()
		start := offset
		offset += len(z.Raw())

		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return nil, nil, err
			}
			return body, spans, nil

		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			n := &html.Node{Type: html.ElementNode, Data: tok.Data, DataAtom: tok.DataAtom, Attr: tok.Attr}
			cur.AppendChild(n)
			spans[n] = span{start: start, end: offset, selfClosing: tt == html.SelfClosingTagToken}
			if tt == html.StartTagToken && !void[tok.DataAtom] {
				cur = n
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			for n := cur; n != body; n = n.Parent {
				if n.Data == string(name) {
					cur = n.Parent
					break
				}
			}
		}
	}
}

var void = map[atom.Atom]bool{
	atom.Area: true, atom.Base: true, atom.Br: true, atom.Col: true,
	atom.Embed: true, atom.Hr: true, atom.Img: true, atom.Input: true,
	atom.Link: true, atom.Meta: true, atom.Param: true, atom.Source: true,
	atom.Track: true, atom.Wbr: true,
}

var attrEscaper = strings.NewReplacer("&", "&amp;", `"`, "&quot;")

// startTag serializes the start tag of n.
func startTag(n *html.Node, selfClosing bool) string {
	var b strings.Builder
	b.WriteString("<")
	b.WriteString(n.Data)
	for _, a := range n.Attr {
		b.WriteString(" ")
		b.WriteString(a.Key)
		b.WriteString(`="`)
		b.WriteString(attrEscaper.Replace(a.Val))
		b.WriteString(`"`)
	}
	if selfClosing {
		b.WriteString(" />")
	} else {
		b.WriteString(">")
	}
	return b.String()
}

// merge writes the computed style into the style attribute of n.
func merge(n *html.Node, c *computed) {
	current := &computed{}
	idx := -1
	for i, a := range n.Attr {
		if a.Key == "style" {
			idx = i
			for _, d := range parseStyle(a.Val) {
				current.set(d)
			}
		}
	}
	for _, p := range c.order {
		d := c.decls[p]
		if _, ok := current.decls[p]; ok && !d.important {
			continue
		}
		current.set(d)
	}

	var b strings.Builder
	for _, p := range current.order {
		b.WriteString(current.decls[p].String())
	}
	if idx >= 0 {
		n.Attr[idx].Val = b.String()
	} else {
		n.Attr = append(n.Attr, html.Attribute{Key: "style", Val: b.String()})
	}
}

// parseStyle splits the content of a style attribute into declarations.
func parseStyle(s string) []declaration {
	var decls []declaration
	for _, part := range strings.Split(s, ";") {
		prop, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		d := declaration{property: strings.ToLower(strings.TrimSpace(prop)), value: strings.TrimSpace(value)}
		if i := strings.LastIndexByte(d.value, '!'); i >= 0 && strings.EqualFold(strings.TrimSpace(d.value[i+1:]), "important") {
			d.important = true
			d.value = strings.TrimSpace(d.value[:i])
		}
		decls = append(decls, d)
	}
	return decls
}
