package mjml

import (
	"strconv"
)

func (r *renderer) renderBody(n *Node) error {
	r.br.Open("div",
		"class", n.Get("css-class"),
		"style", style("background-color", n.Get("background-color")),
		"lang", r.h.Lang,
		"dir", r.h.Dir)
	if err := r.renderChildren(n, nil); err != nil {
		return err
	}
	r.br.Close("div")
	return nil
}

func (r *renderer) renderSection(n *Node) error {
	return r.renderSectionLike(n, r.sectionColumns)
}

func (r *renderer) renderWrapper(n *Node) error {
	return r.renderSectionLike(n, r.wrapperSections)
}

// renderSectionLike renders the scaffolding shared by sections and
// wrappers around the children rendered by children.
func (r *renderer) renderSectionLike(n *Node, children func(*Node) error) error {
	if isFullWidth(n) {
		return r.renderFullWidth(n, children)
	}
	// Outlook ignores max-width, so the box is wrapped in a fixed width
	// table only it can see
	r.outlookBefore(n)
	// and it cannot paint CSS backgrounds: a VML rectangle does it instead
	if hasBackground(n) {
		r.vmlBefore(n)
	}
	if err := r.sectionBox(n, children); err != nil {
		return err
	}
	if hasBackground(n) {
		r.vmlAfter()
	}
	r.outlookAfter()
	return nil
}

// renderFullWidth stretches the background over the whole window. The
// background goes on an outer 100% table, and the usual centered box is
// nested inside it.
func (r *renderer) renderFullWidth(n *Node, children func(*Node) error) error {
	tableStyle := []string{}
	tableStyle = append(tableStyle, backgroundStyle(n)...)
	tableStyle = append(tableStyle, "width", "100%", "border-radius", n.Get("border-radius"))

	r.br.Open("table",
		"align", "center",
		"class", n.Get("css-class"),
		"background", n.Get("background-url"),
		"border", "0",
		"cellpadding", "0",
		"cellspacing", "0",
		"role", "presentation",
		"style", style(tableStyle...))
	r.br.Render("<tbody><tr><td>")
	// the VML rectangle goes outside the Outlook table here, so it spans
	// the full width too
	if hasBackground(n) {
		r.vmlBefore(n)
	}
	r.outlookBefore(n)
	if err := r.sectionBox(n, children); err != nil {
		return err
	}
	r.outlookAfter()
	if hasBackground(n) {
		r.vmlAfter()
	}
	r.br.Render("</td></tr></tbody></table>")
	return nil
}

// outlookBefore opens the fixed width table Outlook needs around a section.
func (r *renderer) outlookBefore(n *Node) {
	cw := n.Context.ContainerWidth
	r.br.Render(startConditional)
	r.br.Open("table",
		"align", "center",
		"border", "0",
		"cellpadding", "0",
		"cellspacing", "0",
		"class", suffixClasses(n.Get("css-class"), "outlook"),
		"role", "presentation",
		"style", style("width", px(cw)),
		"width", strconv.Itoa(int(cw)),
		"bgcolor", vmlColor(n.Get("background-color")))
	r.br.Render(`<tr><td style="line-height:0px;font-size:0px;mso-line-height-rule:exactly;">`, endConditional)
}

func (r *renderer) outlookAfter() {
	r.br.Render(startConditional, "</td></tr></table>", endConditional)
}

// sectionBox renders the centered box of a section.
func (r *renderer) sectionBox(n *Node, children func(*Node) error) error {
	full := isFullWidth(n)
	var bg []string
	if !full {
		bg = backgroundStyle(n)
	}

	divStyle := append([]string{}, bg...)
	divStyle = append(divStyle,
		"margin", "0px auto",
		"border-radius", n.Get("border-radius"),
		"max-width", px(n.Context.ContainerWidth))
	tableStyle := append([]string{}, bg...)
	tableStyle = append(tableStyle, "width", "100%", "border-radius", n.Get("border-radius"))

	// a full width section already carries them on its outer table
	class, bgURL := n.Get("css-class"), n.Get("background-url")
	if full {
		class, bgURL = "", ""
	}

	r.br.Open("div", "class", class, "style", style(divStyle...))
	// keeps the whitespace around the VML textbox from adding height
	if hasBackground(n) {
		r.br.Open("div", "style", style("line-height", "0", "font-size", "0"))
	}
	r.br.Open("table",
		"align", "center",
		"background", bgURL,
		"border", "0",
		"cellpadding", "0",
		"cellspacing", "0",
		"role", "presentation",
		"style", style(tableStyle...))
	r.br.Render("<tbody><tr>")
	r.br.Open("td", "style", style(
		"border", n.Get("border"),
		"border-bottom", n.Get("border-bottom"),
		"border-left", n.Get("border-left"),
		"border-right", n.Get("border-right"),
		"border-top", n.Get("border-top"),
		"direction", n.Get("direction"),
		"font-size", "0px",
		"padding", n.Get("padding"),
		"padding-bottom", n.Get("padding-bottom"),
		"padding-left", n.Get("padding-left"),
		"padding-right", n.Get("padding-right"),
		"padding-top", n.Get("padding-top"),
		"text-align", n.Get("text-align")))
	// Outlook lays the children out as cells of this table, the other
	// clients as inline blocks
	r.br.Render(startConditional, `<table role="presentation" border="0" cellpadding="0" cellspacing="0">`, endConditional)

	if err := children(n); err != nil {
		return err
	}

	r.br.Render(startConditional, "</table>", endConditional)
	r.br.Render("</td></tr></tbody></table>")
	if hasBackground(n) {
		r.br.Close("div")
	}
	r.br.Close("div")
	return nil
}

// sectionColumns puts every column of a section in its own Outlook cell.
func (r *renderer) sectionColumns(n *Node) error {
	r.br.Render(startConditional, "<tr>", endConditional)
	err := r.renderChildren(n, func(c *Node, content func() error) error {
		r.br.Render(startConditional)
		r.br.Open("td",
			"align", c.Get("align"),
			"class", suffixClasses(c.Get("css-class"), "outlook"),
			"style", style("vertical-align", c.Get("vertical-align"), "width", px(c.pixelWidth())))
		r.br.Render(endConditional)
		if err := content(); err != nil {
			return err
		}
		r.br.Render(startConditional, "</td>", endConditional)
		return nil
	})
	if err != nil {
		return err
	}
	r.br.Render(startConditional, "</tr>", endConditional)
	return nil
}

// wrapperSections puts every section of a wrapper in its own Outlook row.
func (r *renderer) wrapperSections(n *Node) error {
	width := px(n.Context.ContainerWidth)
	return r.renderChildren(n, func(c *Node, content func() error) error {
		r.br.Render(startConditional, "<tr>")
		r.br.Open("td",
			"align", c.Get("align"),
			"class", suffixClasses(c.Get("css-class"), "outlook"),
			"width", width)
		r.br.Render(endConditional)
		if err := content(); err != nil {
			return err
		}
		r.br.Render(startConditional, "</td></tr>", endConditional)
		return nil
	})
}

func hasGutter(n *Node) bool {
	for _, attr := range []string{"padding", "padding-bottom", "padding-left", "padding-right", "padding-top"} {
		if n.Get(attr) != "" {
			return true
		}
	}
	return false
}

func (r *renderer) renderColumn(n *Node) error {
	// Outside a section or group nothing gives Outlook the width of the
	// column, so it gets its own table.
	standalone := n.Parent == nil || n.Parent.Type != SectionNode && n.Parent.Type != GroupNode
	width := n.pixelWidth()
	if standalone {
		r.br.Render(startConditional)
		r.br.Open("table",
			"align", "center",
			"border", "0",
			"cellpadding", "0",
			"cellspacing", "0",
			"role", "presentation",
			"style", style("width", px(width)),
			"width", formatNumber(width))
		r.br.Render("<tr>")
		r.br.Open("td", "style", style("vertical-align", n.Get("vertical-align"), "width", px(width)))
		r.br.Render(endConditional)
	}

	// the responsive class gives the desktop width in the media query, the
	// inline width is the mobile one
	class, _ := n.columnClass()
	class += " mj-outlook-group-fix"
	if css := n.Get("css-class"); css != "" {
		class += " " + css
	}
	r.br.Open("div", "class", class, "style", style(
		"font-size", "0px",
		"text-align", "left",
		"direction", n.Get("direction"),
		"display", "inline-block",
		"vertical-align", n.Get("vertical-align"),
		"width", n.mobileWidth()))

	cellStyle := []string{
		"background-color", n.Get("background-color"),
		"border", n.Get("border"),
		"border-bottom", n.Get("border-bottom"),
		"border-left", n.Get("border-left"),
		"border-radius", n.Get("border-radius"),
		"border-right", n.Get("border-right"),
		"border-top", n.Get("border-top"),
		"vertical-align", n.Get("vertical-align"),
	}

	// With padding, the outer cell draws the column background and borders
	// around the padding, and the inner-* attributes style the content
	// table. Without, the content table carries them.
	var err error
	if hasGutter(n) {
		gutter := append([]string{}, cellStyle...)
		gutter = append(gutter,
			"padding", n.Get("padding"),
			"padding-top", n.Get("padding-top"),
			"padding-right", n.Get("padding-right"),
			"padding-bottom", n.Get("padding-bottom"),
			"padding-left", n.Get("padding-left"))
		r.br.Open("table", "border", "0", "cellpadding", "0", "cellspacing", "0", "role", "presentation", "width", "100%")
		r.br.Render("<tbody><tr>")
		r.br.Open("td", "style", style(gutter...))
		err = r.columnContent(n, style(
			"background-color", n.Get("inner-background-color"),
			"border", n.Get("inner-border"),
			"border-bottom", n.Get("inner-border-bottom"),
			"border-left", n.Get("inner-border-left"),
			"border-radius", n.Get("inner-border-radius"),
			"border-right", n.Get("inner-border-right"),
			"border-top", n.Get("inner-border-top")))
		r.br.Render("</td></tr></tbody></table>")
	} else {
		err = r.columnContent(n, style(cellStyle...))
	}
	if err != nil {
		return err
	}
	r.br.Close("div")

	if standalone {
		r.br.Render(startConditional, "</td></tr></table>", endConditional)
	}
	return nil
}

func (r *renderer) columnContent(n *Node, tableStyle string) error {
	r.br.Open("table", "border", "0", "cellpadding", "0", "cellspacing", "0", "role", "presentation", "style", tableStyle, "width", "100%")
	r.br.Render("<tbody>")
	if err := r.renderChildren(n, r.contentCell); err != nil {
		return err
	}
	r.br.Render("</tbody></table>")
	return nil
}

// contentCell is the table row holding one content component of a column
// or a hero.
func (r *renderer) contentCell(c *Node, content func() error) error {
	background := ""
	if c.Parent != nil && c.Parent.Type == HeroNode {
		background = c.Get("container-background-color")
	}
	r.br.Render("<tr>")
	r.br.Open("td",
		"align", c.Get("align"),
		"vertical-align", c.Get("vertical-align"),
		"background", background,
		"class", c.Get("css-class"),
		"style", style(
			"background", c.Get("container-background-color"),
			"font-size", "0px",
			"padding", c.Get("padding"),
			"padding-top", c.Get("padding-top"),
			"padding-right", c.Get("padding-right"),
			"padding-bottom", c.Get("padding-bottom"),
			"padding-left", c.Get("padding-left"),
			"word-break", "break-word"))
	if err := content(); err != nil {
		return err
	}
	r.br.Render("</td></tr>")
	return nil
}

func (r *renderer) renderGroup(n *Node) error {
	class, _ := n.columnClass()
	class += " mj-outlook-group-fix"
	if css := n.Get("css-class"); css != "" {
		class += " " + css
	}
	bg := n.Get("background-color")
	r.br.Open("div", "class", class, "style", style(
		"font-size", "0",
		"line-height", "0",
		"text-align", "left",
		"display", "inline-block",
		"width", "100%",
		"direction", n.Get("direction"),
		"vertical-align", n.Get("vertical-align"),
		"background-color", bg))

	if bg == "none" {
		bg = ""
	}
	// Outlook does not wrap inline blocks, so it gets a one row table that
	// keeps the columns side by side on every screen
	r.br.Render(startConditional)
	r.br.Open("table", "bgcolor", vmlColor(bg), "border", "0", "cellpadding", "0", "cellspacing", "0", "role", "presentation")
	r.br.Render("<tr>", endConditional)
	err := r.renderChildren(n, func(c *Node, content func() error) error {
		r.br.Render(startConditional)
		r.br.Open("td", "style", style("vertical-align", c.Get("vertical-align"), "width", px(c.pixelWidth())))
		r.br.Render(endConditional)
		if err := content(); err != nil {
			return err
		}
		r.br.Render(startConditional, "</td>", endConditional)
		return nil
	})
	if err != nil {
		return err
	}
	r.br.Render(startConditional, "</tr></table>", endConditional)
	r.br.Close("div")
	return nil
}

func (r *renderer) renderHero(n *Node) error {
	cw := n.Context.ContainerWidth
	width := px(cw)

	bg := []string{n.Get("background-color")}
	if url := n.Get("background-url"); url != "" {
		bg = append(bg, "url('"+url+"')", "no-repeat", n.Get("background-position")+" / cover")
	}
	background := ""
	for _, p := range bg {
		if p == "" {
			continue
		}
		if background != "" {
			background += " "
		}
		background += p
	}

	imageWidth := n.Get("background-width")
	if imageWidth == "" {
		imageWidth = width
	}

	// Outlook shows the background image as an absolutely positioned VML
	// image behind the content
	r.br.Render(startConditional)
	r.br.Open("table",
		"align", "center",
		"border", "0",
		"cellpadding", "0",
		"cellspacing", "0",
		"role", "presentation",
		"style", style("width", width),
		"width", strconv.Itoa(int(cw)))
	r.br.Render("<tr>")
	r.br.Open("td", "style", style("line-height", "0", "font-size", "0", "mso-line-height-rule", "exactly"))
	r.br.Void("v:image",
		"style", style(
			"border", "0",
			"height", n.Get("background-height"),
			"mso-position-horizontal", "center",
			"position", "absolute",
			"top", "0",
			"width", imageWidth,
			"z-index", "-3"),
		"src", n.Get("background-url"),
		"xmlns:v", "urn:schemas-microsoft-com:vml")
	r.br.Render(endConditional)

	r.br.Open("div", "align", n.Get("align"), "class", n.Get("css-class"), "style", style("margin", "0 auto", "max-width", width))
	r.br.Open("table", "border", "0", "cellpadding", "0", "cellspacing", "0", "role", "presentation", "style", style("width", "100%"))
	r.br.Render("<tbody>")
	r.br.Open("tr", "style", style("vertical-align", "top"))

	heroStyle := style(
		"background", background,
		"background-position", n.Get("background-position"),
		"background-repeat", "no-repeat",
		"border-radius", n.Get("border-radius"),
		"padding", n.Get("padding"),
		"padding-top", n.Get("padding-top"),
		"padding-right", n.Get("padding-right"),
		"padding-bottom", n.Get("padding-bottom"),
		"padding-left", n.Get("padding-left"),
		"vertical-align", n.Get("vertical-align"))

	if n.Get("mode") == "fluid-height" {
		// Empty cells with a percent padding-bottom on both sides keep the
		// height proportional to the width, as the image ratio. Outlook
		// drops the padding through mso-padding-bottom-alt.
		ratio := 0
		if bw := parseInt(n.Get("background-width")); bw != 0 {
			ratio = int(float64(parseInt(n.Get("background-height")))/float64(bw)*100 + 0.5)
		}
		fluid := style("width", "0.01%", "padding-bottom", strconv.Itoa(ratio)+"%", "mso-padding-bottom-alt", "0")
		r.br.Void("td", "style", fluid)
		r.br.Open("td", "background", n.Get("background-url"), "style", heroStyle)
		if err := r.heroContent(n); err != nil {
			return err
		}
		r.br.Close("td")
		r.br.Void("td", "style", fluid)
	} else {
		// the cell height does not include the padding
		height := parseInt(n.Get("height")) - n.sideValue("padding", "top") - n.sideValue("padding", "bottom")
		r.br.Open("td", "background", n.Get("background-url"), "style", heroStyle, "height", strconv.Itoa(height))
		if err := r.heroContent(n); err != nil {
			return err
		}
		r.br.Close("td")
	}

	r.br.Render("</tr></tbody></table></div>")
	r.br.Render(startConditional, "</td></tr></table>", endConditional)
	return nil
}

func (r *renderer) heroContent(n *Node) error {
	inner, _ := n.childWidth()
	innerTD := style(
		"background-color", n.Get("inner-background-color"),
		"padding", n.Get("inner-padding"),
		"padding-top", n.Get("inner-padding-top"),
		"padding-right", n.Get("inner-padding-right"),
		"padding-bottom", n.Get("inner-padding-bottom"),
		"padding-left", n.Get("inner-padding-left"))

	// fixed width for Outlook, the div below is fluid for the rest
	r.br.Render(startConditional)
	r.br.Open("table",
		"align", n.Get("align"),
		"border", "0",
		"cellpadding", "0",
		"cellspacing", "0",
		"style", style("width", px(inner)),
		"width", formatNumber(inner))
	r.br.Render("<tr>")
	r.br.Open("td", "style", innerTD)
	r.br.Render(endConditional)

	r.br.Open("div", "align", n.Get("align"), "class", "mj-hero-content", "style", style(
		"background-color", n.Get("inner-background-color"),
		"float", n.Get("align"),
		"margin", "0px auto",
		"width", n.Get("width")))
	innerTable := style("width", "100%", "margin", "0px")
	r.br.Open("table", "border", "0", "cellpadding", "0", "cellspacing", "0", "role", "presentation", "style", innerTable)
	r.br.Render("<tbody><tr>")
	r.br.Open("td", "style", innerTD)
	r.br.Open("table", "border", "0", "cellpadding", "0", "cellspacing", "0", "role", "presentation", "style", innerTable)
	r.br.Render("<tbody>")
	if err := r.renderChildren(n, r.contentCell); err != nil {
		return err
	}
	r.br.Render("</tbody></table></td></tr></tbody></table></div>")
	r.br.Render(startConditional, "</td></tr></table>", endConditional)
	return nil
}
