package mjml

import (
	"strconv"
)

func (r *renderer) renderText(n *Node) {
	height := n.Get("height")
	if height != "" {
		r.br.Render(startConditional, `<table role="presentation" border="0" cellpadding="0" cellspacing="0"><tr>`)
		r.br.Open("td", "height", strconv.Itoa(parseInt(height)), "style", style("vertical-align", "top", "height", height))
		r.br.Render(endConditional)
	}
	r.br.Open("div", "style", style(
		"font-family", n.Get("font-family"),
		"font-size", n.Get("font-size"),
		"font-style", n.Get("font-style"),
		"font-weight", n.Get("font-weight"),
		"letter-spacing", n.Get("letter-spacing"),
		"line-height", n.Get("line-height"),
		"text-align", n.Get("align"),
		"text-decoration", n.Get("text-decoration"),
		"text-transform", n.Get("text-transform"),
		"color", n.Get("color"),
		"height", height))
	r.br.Render(r.raw(n.Content))
	r.br.Close("div")
	if height != "" {
		r.br.Render(startConditional, "</td></tr></table>", endConditional)
	}
}

// buttonWidth is the width of the link inside a button of fixed pixel
// width, once its inner padding and borders are removed.
func buttonWidth(n *Node) string {
	width := n.Get("width")
	if width == "" {
		return ""
	}
	w, unit := parseWidth(width)
	if unit != "px" {
		return ""
	}
	inner := shorthand(n.Get("inner-padding"), "left") + shorthand(n.Get("inner-padding"), "right")
	_, borders := n.horizontalSpacing()
	return px(w - float64(inner+borders))
}

func (r *renderer) renderButton(n *Node) {
	tag := "p"
	if n.Get("href") != "" {
		tag = "a"
	}
	bg := n.Get("background-color")
	bgcolor := bg
	if bg == "none" {
		bgcolor = ""
	}

	r.br.Open("table",
		"border", "0",
		"cellpadding", "0",
		"cellspacing", "0",
		"role", "presentation",
		"style", style("border-collapse", "separate", "width", n.Get("width"), "line-height", "100%"))
	r.br.Render("<tbody><tr>")
	r.br.Open("td",
		"align", "center",
		"bgcolor", bgcolor,
		"role", "presentation",
		"style", style(
			"border", n.Get("border"),
			"border-bottom", n.Get("border-bottom"),
			"border-left", n.Get("border-left"),
			"border-radius", n.Get("border-radius"),
			"border-right", n.Get("border-right"),
			"border-top", n.Get("border-top"),
			"cursor", "auto",
			"font-style", n.Get("font-style"),
			"height", n.Get("height"),
			"mso-padding-alt", n.Get("inner-padding"),
			"text-align", n.Get("text-align"),
			"background", bg),
		"valign", n.Get("vertical-align"))
	r.br.Open(tag,
		"href", n.Get("href"),
		"rel", n.Get("rel"),
		"name", n.Get("name"),
		"style", style(
			"display", "inline-block",
			"width", buttonWidth(n),
			"background", bg,
			"color", n.Get("color"),
			"font-family", n.Get("font-family"),
			"font-size", n.Get("font-size"),
			"font-style", n.Get("font-style"),
			"font-weight", n.Get("font-weight"),
			"line-height", n.Get("line-height"),
			"letter-spacing", n.Get("letter-spacing"),
			"margin", "0",
			"text-decoration", n.Get("text-decoration"),
			"text-transform", n.Get("text-transform"),
			"padding", n.Get("inner-padding"),
			"mso-padding-alt", "0px",
			"border-radius", n.Get("border-radius")),
		"target", targetOf(tag, n))
	r.br.Render(r.raw(n.Content))
	r.br.Close(tag)
	r.br.Render("</td></tr></tbody></table>")
}

func targetOf(tag string, n *Node) string {
	if tag != "a" {
		return ""
	}
	return n.Get("target")
}

// imageWidth is the rendered width of an image: its declared width,
// capped by the room left in its container.
func imageWidth(n *Node) float64 {
	paddings, borders := n.horizontalSpacing()
	box := n.Context.ContainerWidth - float64(paddings+borders)
	if w := n.Get("width"); w != "" {
		if v := float64(parseInt(w)); v < box {
			return v
		}
	}
	return box
}

func imageHeadStyle(h *Header) string {
	return "@media only screen and (max-width:" + h.LowerBreakpoint() + ") {\n" +
		"        table.mj-full-width-mobile { width: 100% !important; }\n" +
		"        td.mj-full-width-mobile { width: auto !important; }\n" +
		"      }"
}

func (r *renderer) renderImage(n *Node) {
	width := imageWidth(n)
	full := isFullWidth(n)
	mobileClass := ""
	if n.Get("fluid-on-mobile") == "true" {
		mobileClass = "mj-full-width-mobile"
	}

	tableStyle := []string{"border-collapse", "collapse", "border-spacing", "0px"}
	tdWidth := px(width)
	imgExtra := []string{}
	if full {
		tableStyle = append(tableStyle, "min-width", "100%", "max-width", "100%", "width", px(width))
		tdWidth = ""
		imgExtra = []string{"min-width", "100%", "max-width", "100%"}
	}

	height := n.Get("height")
	if height != "auto" {
		height = strconv.Itoa(parseInt(height))
	}

	r.br.Open("table",
		"border", "0",
		"cellpadding", "0",
		"cellspacing", "0",
		"role", "presentation",
		"style", style(tableStyle...),
		"class", mobileClass)
	r.br.Render("<tbody><tr>")
	r.br.Open("td", "style", style("width", tdWidth), "class", mobileClass)

	href := n.Get("href")
	if href != "" {
		r.br.Open("a",
			"href", href,
			"target", n.Get("target"),
			"rel", n.Get("rel"),
			"name", n.Get("name"),
			"title", n.Get("title"))
	}

	imgStyle := []string{
		"border", n.Get("border"),
		"border-left", n.Get("border-left"),
		"border-right", n.Get("border-right"),
		"border-top", n.Get("border-top"),
		"border-bottom", n.Get("border-bottom"),
		"border-radius", n.Get("border-radius"),
		"display", "block",
		"outline", "none",
		"text-decoration", "none",
		"height", n.Get("height"),
		"max-height", n.Get("max-height"),
	}
	imgStyle = append(imgStyle, imgExtra...)
	imgStyle = append(imgStyle, "width", "100%", "font-size", n.Get("font-size"))

	// alt is written even when empty
	r.br.Render(`<img alt="`, n.Get("alt"), `"`)
	r.br.attrs([]string{
		"src", n.Get("src"),
		"srcset", n.Get("srcset"),
		"sizes", n.Get("sizes"),
		"style", style(imgStyle...),
		"title", n.Get("title"),
		"width", strconv.Itoa(int(width)),
		"height", height,
		"usemap", n.Get("usemap"),
	})
	r.br.Render(" />")

	if href != "" {
		r.br.Close("a")
	}
	r.br.Render("</td></tr></tbody></table>")
}

// dividerOutlookWidth is the fixed width Outlook gives to a divider.
func dividerOutlookWidth(n *Node) string {
	paddings := n.sideValue("padding", "left") + n.sideValue("padding", "right")
	box := n.Context.ContainerWidth - float64(paddings)
	w, unit := parseWidth(n.Get("width"))
	switch unit {
	case "%":
		return px(box * w / 100)
	case "px":
		return n.Get("width")
	}
	return px(box)
}

func (r *renderer) renderDivider(n *Node) {
	var margin string
	switch n.Get("align") {
	case "left":
		margin = "0px"
	case "right":
		margin = "0px 0px 0px auto"
	default:
		margin = "0px auto"
	}
	border := n.Get("border-style") + " " + n.Get("border-width") + " " + n.Get("border-color")
	width := n.Get("width")

	r.br.Open("p", "style", style("border-top", border, "font-size", "1px", "margin", margin, "width", width))
	r.br.Close("p")

	outlook := dividerOutlookWidth(n)
	r.br.Render(startConditional)
	r.br.Open("table",
		"align", n.Get("align"),
		"border", "0",
		"cellpadding", "0",
		"cellspacing", "0",
		"style", style("border-top", border, "font-size", "1px", "margin", margin, "width", outlook),
		"role", "presentation",
		"width", outlook)
	r.br.Render(`<tr><td style="height:0;line-height:0;"> &nbsp;`+"\n"+`</td></tr></table>`, endConditional)
}

func (r *renderer) renderSpacer(n *Node) {
	height := n.Get("height")
	r.br.Open("div", "style", style("height", height, "line-height", height))
	r.br.Render("&#8202;")
	r.br.Close("div")
}

func (r *renderer) renderTable(n *Node) {
	width := n.Get("width")
	if w, unit := parseWidth(width); unit != "%" {
		width = strconv.Itoa(int(w))
	}
	r.br.Open("table",
		"cellpadding", n.Get("cellpadding"),
		"cellspacing", n.Get("cellspacing"),
		"role", n.Get("role"),
		"width", width,
		"border", "0",
		"style", style(
			"color", n.Get("color"),
			"font-family", n.Get("font-family"),
			"font-size", n.Get("font-size"),
			"line-height", n.Get("line-height"),
			"table-layout", n.Get("table-layout"),
			"width", n.Get("width"),
			"border", n.Get("border")))
	r.br.Render(r.raw(n.Content))
	r.br.Close("table")
}
