package mjml

func navbarHeadStyle(h *Header) string {
	return `noinput.mj-menu-checkbox { display:block!important; max-height:none!important; visibility:visible!important; }
      @media only screen and (max-width:` + h.LowerBreakpoint() + `) {
        .mj-menu-checkbox[type="checkbox"] ~ .mj-inline-links { display:none!important; }
        .mj-menu-checkbox[type="checkbox"]:checked ~ .mj-inline-links,
        .mj-menu-checkbox[type="checkbox"] ~ .mj-menu-trigger { display:block!important; max-width:none!important; max-height:none!important; font-size:inherit!important; }
        .mj-menu-checkbox[type="checkbox"] ~ .mj-inline-links > a { display:block!important; }
        .mj-menu-checkbox[type="checkbox"]:checked ~ .mj-menu-trigger .mj-menu-icon-close { display:block!important; }
        .mj-menu-checkbox[type="checkbox"]:checked ~ .mj-menu-trigger .mj-menu-icon-open { display:none!important; }
      }`
}

func (r *renderer) renderNavbar(n *Node) error {
	if n.Get("hamburger") == "hamburger" {
		r.renderHamburger(n)
	}

	r.br.Render(`<div class="mj-inline-links">`)
	r.br.Render(startConditional)
	r.br.Open("table",
		"role", "presentation",
		"border", "0",
		"cellpadding", "0",
		"cellspacing", "0",
		"align", n.Get("align"))
	r.br.Render("<tr>", endConditional)
	if err := r.renderChildren(n, nil); err != nil {
		return err
	}
	r.br.Render(startConditional, "</tr></table>", endConditional)
	r.br.Close("div")
	return nil
}

// renderHamburger writes the checkbox and label toggling the links of a
// navbar on small screens.
func (r *renderer) renderHamburger(n *Node) {
	key := n.id
	r.br.Render(startMsoNegation)
	r.br.Void("input",
		"type", "checkbox",
		"id", key,
		"class", "mj-menu-checkbox",
		"style", "display:none !important; max-height:0; visibility:hidden;")
	r.br.Render(endNegationConditional)

	r.br.Open("div", "class", "mj-menu-trigger", "style", style(
		"display", "none",
		"max-height", "0px",
		"max-width", "0px",
		"font-size", "0px",
		"overflow", "hidden"))
	r.br.Open("label",
		"for", key,
		"class", "mj-menu-label",
		"style", style(
			"display", "block",
			"cursor", "pointer",
			"mso-hide", "all",
			"-moz-user-select", "none",
			"user-select", "none",
			"color", n.Get("ico-color"),
			"font-size", n.Get("ico-font-size"),
			"font-family", n.Get("ico-font-family"),
			"text-transform", n.Get("ico-text-transform"),
			"text-decoration", n.Get("ico-text-decoration"),
			"line-height", n.Get("ico-line-height"),
			"padding", n.Get("ico-padding"),
			"padding-top", n.Get("ico-padding-top"),
			"padding-right", n.Get("ico-padding-right"),
			"padding-bottom", n.Get("ico-padding-bottom"),
			"padding-left", n.Get("ico-padding-left")),
		"align", n.Get("ico-align"))
	r.br.Render(`<span class="mj-menu-icon-open" style="mso-hide:all;">`, n.Get("ico-open"), "</span>")
	r.br.Render(`<span class="mj-menu-icon-close" style="display:none;mso-hide:all;">`, n.Get("ico-close"), "</span>")
	r.br.Render("</label></div>")
}

func (r *renderer) renderNavbarLink(n *Node) {
	href := n.Get("href")
	if href != "" {
		href = n.Get("navbar-base-url") + href
	}
	class := "mj-link"
	if css := n.Get("css-class"); css != "" {
		class += " " + css
	}

	r.br.Render(startConditional)
	r.br.Open("td",
		"style", style(
			"padding", n.Get("padding"),
			"padding-top", n.Get("padding-top"),
			"padding-left", n.Get("padding-left"),
			"padding-right", n.Get("padding-right"),
			"padding-bottom", n.Get("padding-bottom")),
		"class", suffixClasses(n.Get("css-class"), "outlook"))
	r.br.Render(endConditional)

	r.br.Open("a",
		"class", class,
		"href", href,
		"rel", n.Get("rel"),
		"target", n.Get("target"),
		"name", n.Get("name"),
		"style", style(
			"display", "inline-block",
			"color", n.Get("color"),
			"font-family", n.Get("font-family"),
			"font-size", n.Get("font-size"),
			"font-style", n.Get("font-style"),
			"font-weight", n.Get("font-weight"),
			"letter-spacing", n.Get("letter-spacing"),
			"line-height", n.Get("line-height"),
			"text-decoration", n.Get("text-decoration"),
			"text-transform", n.Get("text-transform"),
			"padding", n.Get("padding"),
			"padding-top", n.Get("padding-top"),
			"padding-left", n.Get("padding-left"),
			"padding-right", n.Get("padding-right"),
			"padding-bottom", n.Get("padding-bottom")))
	r.br.Render(r.raw(n.Content))
	r.br.Close("a")
	r.br.Render(startConditional, "</td>", endConditional)
}
