package mjml

import (
	"regexp"
	"strings"

	"github.com/mazznoer/csscolorparser"
)

// vmlColor normalizes a CSS color for VML and the bgcolor attribute,
// which only understand hex notation. Values that cannot be parsed are
// returned unchanged.
func vmlColor(c string) string {
	if c == "" || c == "none" || c == "transparent" || strings.HasPrefix(c, "#") {
		return c
	}
	parsed, err := csscolorparser.Parse(c)
	if err != nil {
		return c
	}
	return parsed.HexString()
}

func hasBackground(n *Node) bool {
	return n.Get("background-url") != ""
}

func isFullWidth(n *Node) bool {
	return n.Get("full-width") == "full-width"
}

// backgroundPosition splits background-position into its x and y parts.
// The keywords may come in any order.
func backgroundPosition(n *Node) (x, y string) {
	parts := strings.Fields(n.Get("background-position"))
	switch len(parts) {
	case 1:
		if parts[0] == "top" || parts[0] == "bottom" {
			x, y = "center", parts[0]
		} else {
			x, y = parts[0], "center"
		}
	case 2:
		v1, v2 := parts[0], parts[1]
		if v1 == "top" || v1 == "bottom" || v1 == "center" && (v2 == "left" || v2 == "right") {
			x, y = v2, v1
		} else {
			x, y = v1, v2
		}
	default:
		x, y = "center", "top"
	}
	if v := n.Get("background-position-x"); v != "" {
		x = v
	}
	if v := n.Get("background-position-y"); v != "" {
		y = v
	}
	return x, y
}

// cssBackground is the shorthand background declaration of a section.
func cssBackground(n *Node) string {
	parts := []string{n.Get("background-color")}
	if url := n.Get("background-url"); url != "" {
		x, y := backgroundPosition(n)
		parts = append(parts, "url('"+url+"')", x+" "+y, "/ "+n.Get("background-size"), n.Get("background-repeat"))
	}
	var out []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}

// backgroundStyle is the list of background declarations of a section.
func backgroundStyle(n *Node) []string {
	if hasBackground(n) {
		x, y := backgroundPosition(n)
		return []string{
			"background", cssBackground(n),
			"background-position", x + " " + y,
			"background-repeat", n.Get("background-repeat"),
			"background-size", n.Get("background-size"),
		}
	}
	return []string{
		"background", n.Get("background-color"),
		"background-color", n.Get("background-color"),
	}
}

var percentage = regexp.MustCompile(`^(\d+(\.\d+)?)%$`)

// vmlFill computes the attributes of the v:fill element reproducing the
// CSS background of n in Outlook.
func vmlFill(n *Node) []string {
	x, y := backgroundPosition(n)
	switch x {
	case "left":
		x = "0%"
	case "center":
		x = "50%"
	case "right":
		x = "100%"
	default:
		if !percentage.MatchString(x) {
			x = "50%"
		}
	}
	switch y {
	case "top":
		y = "0%"
	case "center":
		y = "50%"
	case "bottom":
		y = "100%"
	default:
		if !percentage.MatchString(y) {
			y = "0%"
		}
	}

	repeat := n.Get("background-repeat") == "repeat"
	coordinate := func(pos string, isX bool) string {
		if m := percentage.FindStringSubmatch(pos); m != nil {
			decimal := float64(parseInt(m[1])) / 100
			if repeat {
				return formatNumber(decimal)
			}
			return formatNumber((-50 + decimal*100) / 100)
		}
		switch {
		case repeat && isX:
			return "0.5"
		case repeat:
			return "0"
		case isX:
			return "0"
		}
		return "-0.5"
	}
	originX, originY := coordinate(x, true), coordinate(y, false)
	posX, posY := originX, originY

	var size, aspect string
	switch bgSize := n.Get("background-size"); bgSize {
	case "cover", "contain":
		size = "1,1"
		aspect = "atleast"
		if bgSize == "contain" {
			aspect = "atmost"
		}
	case "auto":
	default:
		parts := strings.Fields(bgSize)
		if len(parts) == 1 {
			size, aspect = bgSize, "atmost"
		} else {
			size = strings.Join(parts, ",")
		}
	}

	vmlType := "tile"
	if n.Get("background-repeat") == "no-repeat" {
		vmlType = "frame"
	}
	if n.Get("background-size") == "auto" {
		vmlType = "tile"
		originX, posX, originY, posY = "0.5", "0.5", "0", "0"
	}

	return []string{
		"origin", originX + ", " + originY,
		"position", posX + ", " + posY,
		"src", n.Get("background-url"),
		"color", vmlColor(n.Get("background-color")),
		"type", vmlType,
		"size", size,
		"aspect", aspect,
	}
}

// vmlBefore opens the VML rectangle painting the background of n in
// Outlook.
func (r *renderer) vmlBefore(n *Node) {
	rect := style("width", px(n.Context.ContainerWidth))
	if isFullWidth(n) {
		rect = style("mso-width-percent", "1000")
	}
	r.br.Render(startConditional)
	r.br.Open("v:rect", "style", rect, "xmlns:v", "urn:schemas-microsoft-com:vml", "fill", "true", "stroke", "false")
	r.br.Void("v:fill", vmlFill(n)...)
	r.br.Render(`<v:textbox style="mso-fit-shape-to-text:true" inset="0,0,0,0">`, endConditional)
}

func (r *renderer) vmlAfter() {
	r.br.Render(startConditional, "</v:textbox></v:rect>", endConditional)
}
