package mjml

import (
	"strconv"
	"strings"
)

// A network is a builtin social network of mj-social-element.
type network struct {
	shareURL string
	color    string
	icon     string
}

var networks = map[string]network{
	"facebook":   {"https://www.facebook.com/sharer/sharer.php?u=[[URL]]", "#3b5998", "facebook.png"},
	"twitter":    {"https://twitter.com/intent/tweet?url=[[URL]]", "#55acee", "twitter.png"},
	"google":     {"https://plus.google.com/share?url=[[URL]]", "#dc4e41", "google-plus.png"},
	"pinterest":  {"https://pinterest.com/pin/create/button/?url=[[URL]]&media=&description=", "#bd081c", "pinterest.png"},
	"linkedin":   {"https://www.linkedin.com/shareArticle?mini=true&url=[[URL]]&title=&summary=&source=", "#0077b5", "linkedin.png"},
	"instagram":  {"", "#3f729b", "instagram.png"},
	"web":        {"", "#4BADE9", "web.png"},
	"snapchat":   {"", "#FFFA54", "snapchat.png"},
	"youtube":    {"", "#EB3323", "youtube.png"},
	"tumblr":     {"https://www.tumblr.com/widgets/share/tool?canonicalUrl=[[URL]]", "#344356", "tumblr.png"},
	"github":     {"", "#000000", "github.png"},
	"xing":       {"https://www.xing.com/app/user?op=share&url=[[URL]]", "#296366", "xing.png"},
	"vimeo":      {"", "#53B4E7", "vimeo.png"},
	"medium":     {"", "#000000", "medium.png"},
	"soundcloud": {"", "#EF7F31", "soundcloud.png"},
	"dribbble":   {"", "#D95988", "dribbble.png"},
}

// lookupNetwork returns the builtin network of a name. The "-noshare"
// variant links to href as is.
func lookupNetwork(name string) (network, bool) {
	base, noshare := strings.CutSuffix(name, "-noshare")
	nw, ok := networks[base]
	if ok && noshare {
		nw.shareURL = "[[URL]]"
	}
	return nw, ok
}

func (r *renderer) renderSocial(n *Node) error {
	tableAttrs := []string{
		"align", n.Get("align"),
		"border", "0",
		"cellpadding", "0",
		"cellspacing", "0",
		"role", "presentation",
	}

	if n.Get("mode") == "vertical" {
		r.br.Open("table", append(tableAttrs, "style", style("margin", "0px"))...)
		r.br.Render("<tbody>")
		if err := r.renderChildren(n, nil); err != nil {
			return err
		}
		r.br.Render("</tbody></table>")
		return nil
	}

	r.br.Render(startConditional)
	r.br.Open("table", tableAttrs...)
	r.br.Render("<tr>", endConditional)
	err := r.renderChildren(n, func(c *Node, content func() error) error {
		r.br.Render(startConditional, "<td>", endConditional)
		r.br.Open("table", append(tableAttrs[:2:2],
			"border", "0",
			"cellpadding", "0",
			"cellspacing", "0",
			"role", "presentation",
			"style", style("float", "none", "display", "inline-table"))...)
		r.br.Render("<tbody>")
		if err := content(); err != nil {
			return err
		}
		r.br.Render("</tbody></table>")
		r.br.Render(startConditional, "</td>", endConditional)
		return nil
	})
	if err != nil {
		return err
	}
	r.br.Render(startConditional, "</tr></table>", endConditional)
	return nil
}

func (r *renderer) renderSocialElement(n *Node) {
	name := n.Get("name")
	nw, known := lookupNetwork(name)

	href := n.Get("href")
	if known && nw.shareURL != "" && href != "" {
		href = strings.ReplaceAll(nw.shareURL, "[[URL]]", href)
	}
	src := n.Get("src")
	bg := n.Get("background-color")
	if known {
		if src == "" {
			src = r.opts.SocialIconOrigin + nw.icon
		}
		if bg == "" {
			bg = nw.color
		}
	}

	iconSize := n.Get("icon-size")
	iconHeight := n.Get("icon-height")
	if iconHeight == "" {
		iconHeight = iconSize
	}

	icon := func() {
		r.br.Open("td", "style", style(
			"padding", n.Get("padding"),
			"padding-top", n.Get("padding-top"),
			"padding-right", n.Get("padding-right"),
			"padding-bottom", n.Get("padding-bottom"),
			"padding-left", n.Get("padding-left"),
			"vertical-align", n.Get("vertical-align")))
		r.br.Open("table",
			"border", "0",
			"cellpadding", "0",
			"cellspacing", "0",
			"role", "presentation",
			"style", style("background", bg, "border-radius", n.Get("border-radius"), "width", iconSize))
		r.br.Render("<tbody><tr>")
		r.br.Open("td", "style", style(
			"padding", n.Get("icon-padding"),
			"font-size", "0",
			"height", iconHeight,
			"vertical-align", "middle",
			"width", iconSize))
		if href != "" {
			r.br.Open("a", "href", href, "rel", n.Get("rel"), "target", n.Get("target"))
		}
		r.br.Void("img",
			"alt", n.Get("alt"),
			"title", n.Get("title"),
			"height", strconv.Itoa(parseInt(iconHeight)),
			"src", src,
			"style", style("border-radius", n.Get("border-radius"), "display", "block"),
			"width", strconv.Itoa(parseInt(iconSize)),
			"sizes", n.Get("sizes"),
			"srcset", n.Get("srcset"))
		if href != "" {
			r.br.Close("a")
		}
		r.br.Render("</td></tr></tbody></table></td>")
	}

	text := func() {
		if n.Content == "" {
			return
		}
		r.br.Open("td", "style", style(
			"vertical-align", "middle",
			"padding", n.Get("text-padding")))
		tag := "span"
		if href != "" {
			tag = "a"
		}
		attrs := []string{}
		if href != "" {
			attrs = append(attrs, "href", href, "rel", n.Get("rel"), "target", n.Get("target"))
		}
		attrs = append(attrs, "style", style(
			"color", n.Get("color"),
			"font-size", n.Get("font-size"),
			"font-weight", n.Get("font-weight"),
			"font-style", n.Get("font-style"),
			"font-family", n.Get("font-family"),
			"line-height", n.Get("line-height"),
			"text-decoration", n.Get("text-decoration")))
		r.br.Open(tag, attrs...)
		r.br.Render(r.raw(n.Content))
		r.br.Close(tag)
		r.br.Close("td")
	}

	r.br.Open("tr", "class", n.Get("css-class"))
	if n.Get("icon-position") == "right" {
		text()
		icon()
	} else {
		icon()
		text()
	}
	r.br.Close("tr")
}
