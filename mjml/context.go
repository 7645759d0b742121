package mjml

import (
	"strconv"
	"strings"
)

// Context is the layout information of a node, computed once by Layout.
type Context struct {
	// ContainerWidth is the pixel width the parent hands down to the node.
	ContainerWidth float64
	HasWidth       bool

	Siblings    int
	RawSiblings int
	Index       int
}

// NonRawSiblings is the number of siblings sharing the width of the parent.
func (c *Context) NonRawSiblings() int {
	if n := c.Siblings - c.RawSiblings; n > 0 {
		return n
	}
	return 1
}

// Layout assigns a Context to every node of the document. It is run by
// Render and only has effect the first time.
func (d *Document) Layout() {
	if d.laidOut {
		return
	}
	propagate(d.Root, 0, false, 1, 0, 0)
	d.laidOut = true
}

// propagate assigns the context of n and recurses into its children.
func propagate(n *Node, width float64, hasWidth bool, siblings, raw, index int) {
	n.Context = &Context{
		ContainerWidth: width,
		HasWidth:       hasWidth,
		Siblings:       siblings,
		RawSiblings:    raw,
		Index:          index,
	}

	// all children share the same container width, the split among
	// columns happens when each of them computes its own pixel width
	childWidth, childHasWidth := n.childWidth()
	children := n.Children()

	// text, comments and mj-raw take no share of the width
	rawChildren := 0
	for _, c := range children {
		if c.IsRaw() {
			rawChildren++
		}
	}
	for i, c := range children {
		propagate(c, childWidth, childHasWidth, len(children), rawChildren, i)
	}
}

// childWidth is the width n hands down to its children.
func (n *Node) childWidth() (float64, bool) {
	ctx := n.Context
	switch n.Type {
	case MjmlNode, HeadNode:
		return 0, false

	case BodyNode:
		w, _ := parseWidth(n.Get("width"))
		return w, true

	case SectionNode, WrapperNode:
		paddings, borders := n.horizontalSpacing()
		return ctx.ContainerWidth - float64(paddings+borders), ctx.HasWidth

	// a column loses its gutter (padding), its borders and its inner borders
	case ColumnNode:
		paddings, borders := n.horizontalSpacing()
		inner := n.sideValue("inner-border", "left") + n.sideValue("inner-border", "right")
		return n.pixelWidth() - float64(paddings+borders+inner), ctx.HasWidth

	// only the padding of a group narrows its columns
	case GroupNode:
		paddings := n.sideValue("padding", "left") + n.sideValue("padding", "right")
		return n.pixelWidth() - float64(paddings), ctx.HasWidth

	case HeroNode:
		paddings := n.sideValue("padding", "left") + n.sideValue("padding", "right")
		return ctx.ContainerWidth - float64(paddings), ctx.HasWidth
	}
	return ctx.ContainerWidth, ctx.HasWidth
}

// nominalWidth is the declared width of a column or group, or an equal
// share of the parent among the non raw siblings.
func (n *Node) nominalWidth() (float64, string) {
	if w := n.Get("width"); w != "" {
		return parseWidth(w)
	}
	return 100 / float64(n.Context.NonRawSiblings()), "%"
}

// pixelWidth converts the nominal width into pixels of the container.
func (n *Node) pixelWidth() float64 {
	w, unit := n.nominalWidth()
	if unit == "%" {
		return n.Context.ContainerWidth * w / 100
	}
	return w
}

// columnClass is the responsive class of a column or group, and the width
// the media query gives it.
func (n *Node) columnClass() (class, width string) {
	w, unit := n.nominalWidth()
	formatted := formatNumber(w)
	nb := strings.ReplaceAll(formatted, ".", "-")
	if unit == "%" {
		return "mj-column-per-" + nb, formatted + "%"
	}
	return "mj-column-px-" + nb, formatted + "px"
}

// mobileWidth is the width of a column below the breakpoint. Columns stack
// at full width, except inside mj-group where they keep their share.
func (n *Node) mobileWidth() string {
	if n.Parent == nil || n.Parent.Type != GroupNode {
		return "100%"
	}
	width := n.Get("width")
	if width == "" {
		return strconv.Itoa(100/n.Context.NonRawSiblings()) + "%"
	}
	w, unit := parseWidth(width)
	if unit == "%" {
		return width
	}
	if n.Context.ContainerWidth == 0 {
		return "100%"
	}
	return formatNumber(w/n.Context.ContainerWidth*100) + "%"
}
