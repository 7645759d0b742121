package mjml

const accordionHeadStyle = `noinput.mj-accordion-checkbox { display:block!important; }

      @media yahoo, only screen and (min-width:0) {
        .mj-accordion-element { display:block; }
        input.mj-accordion-checkbox, .mj-accordion-less { display:none!important; }
        input.mj-accordion-checkbox + * .mj-accordion-title { cursor:pointer; touch-action:manipulation; -webkit-user-select:none; -moz-user-select:none; user-select:none; }
        input.mj-accordion-checkbox + * .mj-accordion-content { overflow:hidden; display:none; }
        input.mj-accordion-checkbox + * .mj-accordion-more { display:block!important; }
        input.mj-accordion-checkbox:checked + * .mj-accordion-content { display:block; }
        input.mj-accordion-checkbox:checked + * .mj-accordion-more { display:none!important; }
        input.mj-accordion-checkbox:checked + * .mj-accordion-less { display:block!important; }
      }

      .moz-text-html input.mj-accordion-checkbox + * .mj-accordion-title { cursor: auto; touch-action: auto; -webkit-user-select: auto; -moz-user-select: auto; user-select: auto; }
      .moz-text-html input.mj-accordion-checkbox + * .mj-accordion-content { overflow: hidden; display: block; }
      .moz-text-html input.mj-accordion-checkbox + * .mj-accordion-ico { display: none; }

      @goodbye { @gmail }`

func (r *renderer) renderAccordion(n *Node) error {
	r.br.Open("table",
		"cellspacing", "0",
		"cellpadding", "0",
		"class", "mj-accordion",
		"style", style(
			"width", "100%",
			"border-collapse", "collapse",
			"border", n.Get("border"),
			"border-bottom", "none",
			"font-family", n.Get("font-family")))
	r.br.Render("<tbody>")
	if err := r.renderChildren(n, nil); err != nil {
		return err
	}
	r.br.Render("</tbody></table>")
	return nil
}

func (r *renderer) renderAccordionElement(n *Node) error {
	r.br.Open("tr", "class", n.Get("css-class"))
	r.br.Open("td", "style", style("padding", "0px", "background-color", n.Get("background-color")))
	r.br.Open("label",
		"class", "mj-accordion-element",
		"style", style("font-size", "13px", "font-family", n.Get("font-family")))
	r.br.Render(startNegationConditional)
	r.br.Void("input", "class", "mj-accordion-checkbox", "type", "checkbox", "style", style("display", "none"))
	r.br.Render(endNegationConditional)
	r.br.Render("<div>")
	if err := r.renderChildren(n, nil); err != nil {
		return err
	}
	r.br.Render("</div></label></td></tr>")
	return nil
}

// accordionTable opens the one row table used by titles and texts.
func (r *renderer) accordionTable(n *Node, class string) {
	r.br.Open("div", "class", class)
	r.br.Open("table",
		"cellspacing", "0",
		"cellpadding", "0",
		"style", style("width", "100%", "border-bottom", n.Get("border")))
	r.br.Render("<tbody><tr>")
}

func (r *renderer) renderAccordionTitle(n *Node) {
	r.accordionTable(n, "mj-accordion-title")

	title := func() {
		r.br.Open("td",
			"class", n.Get("css-class"),
			"style", style(
				"width", "100%",
				"background-color", n.Get("background-color"),
				"color", n.Get("color"),
				"font-size", n.Get("font-size"),
				"font-family", n.Get("font-family"),
				"padding-top", n.Get("padding-top"),
				"padding-right", n.Get("padding-right"),
				"padding-bottom", n.Get("padding-bottom"),
				"padding-left", n.Get("padding-left"),
				"padding", n.Get("padding")))
		r.br.Render(r.raw(n.Content))
		r.br.Close("td")
	}
	icon := func() {
		r.br.Render(startNegationConditional)
		r.br.Open("td",
			"class", "mj-accordion-ico",
			"style", style(
				"padding", "16px",
				"background", n.Get("background-color"),
				"vertical-align", n.Get("icon-align")))
		iconStyle := style("display", "none", "width", n.Get("icon-width"), "height", n.Get("icon-height"))
		r.br.Void("img",
			"src", n.Get("icon-wrapped-url"),
			"alt", n.Get("icon-wrapped-alt"),
			"class", "mj-accordion-more",
			"style", iconStyle)
		r.br.Void("img",
			"src", n.Get("icon-unwrapped-url"),
			"alt", n.Get("icon-unwrapped-alt"),
			"class", "mj-accordion-less",
			"style", iconStyle)
		r.br.Close("td")
		r.br.Render(endNegationConditional)
	}

	if n.Get("icon-position") == "left" {
		icon()
		title()
	} else {
		title()
		icon()
	}
	r.br.Render("</tr></tbody></table></div>")
}

func (r *renderer) renderAccordionText(n *Node) {
	r.accordionTable(n, "mj-accordion-content")
	r.br.Open("td",
		"class", n.Get("css-class"),
		"style", style(
			"background", n.Get("background-color"),
			"font-size", n.Get("font-size"),
			"font-family", n.Get("font-family"),
			"font-weight", n.Get("font-weight"),
			"letter-spacing", n.Get("letter-spacing"),
			"line-height", n.Get("line-height"),
			"color", n.Get("color"),
			"padding-top", n.Get("padding-top"),
			"padding-right", n.Get("padding-right"),
			"padding-bottom", n.Get("padding-bottom"),
			"padding-left", n.Get("padding-left"),
			"padding", n.Get("padding")))
	r.br.Render(r.raw(n.Content))
	r.br.Render("</td></tr></tbody></table></div>")
}
