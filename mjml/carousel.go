package mjml

import (
	"strconv"
	"strings"
)

// carouselSelectors builds one selector per image: prefix(i) followed by
// the sibling combinators reaching the content from the i-th radio.
func carouselSelectors(count int, sel func(i int) string) string {
	parts := make([]string, count)
	for i := range parts {
		parts[i] = sel(i)
	}
	return strings.Join(parts, ",\n      ")
}

func siblings(count int) string {
	return strings.Repeat("+ * ", count)
}

func carouselImages(n *Node) []*Node {
	var images []*Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == CarouselImageNode {
			images = append(images, c)
		}
	}
	return images
}

// carouselHeadStyle drives the radio buttons, arrows and thumbnails of one
// carousel with CSS only.
func carouselHeadStyle(n *Node) string {
	count := len(carouselImages(n))
	if count == 0 {
		return ""
	}
	id := n.id
	prefix := ".mj-carousel-" + id
	radio := func(i int) string {
		return prefix + "-radio-" + strconv.Itoa(i+1) + ":checked " + siblings(count-i-1) + "+ .mj-carousel-content "
	}

	var b strings.Builder
	b.WriteString(`.mj-carousel {
      -webkit-user-select: none;
      -moz-user-select: none;
      user-select: none;
    }
    ` + prefix + `-icons-cell {
      display: table-cell !important;
      width: ` + n.Get("icon-width") + ` !important;
    }
    .mj-carousel-radio,
    .mj-carousel-next,
    .mj-carousel-previous {
      display: none !important;
    }
    .mj-carousel-thumbnail,
    .mj-carousel-next,
    .mj-carousel-previous {
      touch-action: manipulation;
    }
    `)
	b.WriteString(carouselSelectors(count, func(i int) string {
		return prefix + "-radio:checked " + siblings(i) + "+ .mj-carousel-content .mj-carousel-image"
	}))
	b.WriteString(" {\n      display: none !important;\n    }\n    ")
	b.WriteString(carouselSelectors(count, func(i int) string {
		return radio(i) + ".mj-carousel-image-" + strconv.Itoa(i+1)
	}))
	b.WriteString(" {\n      display: block !important;\n    }\n    ")
	b.WriteString(".mj-carousel-previous-icons,\n    .mj-carousel-next-icons,\n    ")
	b.WriteString(carouselSelectors(count, func(i int) string {
		return radio(i) + ".mj-carousel-next-" + strconv.Itoa((i+1)%count+1)
	}))
	b.WriteString(",\n    ")
	b.WriteString(carouselSelectors(count, func(i int) string {
		return radio(i) + ".mj-carousel-previous-" + strconv.Itoa((i-1+count)%count+1)
	}))
	b.WriteString(" {\n      display: block !important;\n    }\n    ")
	b.WriteString(carouselSelectors(count, func(i int) string {
		return radio(i) + prefix + "-thumbnail-" + strconv.Itoa(i+1)
	}))
	b.WriteString(" {\n      border-color: " + n.Get("tb-selected-border-color") + " !important;\n    }\n    ")
	b.WriteString(`.mj-carousel-image img + div,
    .mj-carousel-thumbnail img + div {
      display: none !important;
    }
    `)
	b.WriteString(carouselSelectors(count, func(i int) string {
		return prefix + "-thumbnail:hover " + siblings(count-i-1) + "+ .mj-carousel-main .mj-carousel-image"
	}))
	b.WriteString(" {\n      display: none !important;\n    }\n    ")
	b.WriteString(".mj-carousel-thumbnail:hover {\n      border-color: " + n.Get("tb-hover-border-color") + " !important;\n    }\n    ")
	b.WriteString(carouselSelectors(count, func(i int) string {
		return prefix + "-thumbnail-" + strconv.Itoa(i+1) + ":hover " + siblings(count-i-1) + "+ .mj-carousel-main .mj-carousel-image-" + strconv.Itoa(i+1)
	}))
	b.WriteString(" {\n      display: block !important;\n    }\n    ")
	b.WriteString(`.mj-carousel noinput { display:block !important; }
    .mj-carousel noinput .mj-carousel-image-1 { display: block !important;  }
    .mj-carousel noinput .mj-carousel-arrows,
    .mj-carousel noinput .mj-carousel-thumbnails { display: none !important; }

    [owa] .mj-carousel-thumbnail { display: none !important; }

    @media screen yahoo {
        ` + prefix + `-icons-cell,
        .mj-carousel-previous-icons,
        .mj-carousel-next-icons {
            display: none !important;
        }

        ` + prefix + `-radio-1:checked ` + siblings(count-1) + `+ .mj-carousel-content ` + prefix + `-thumbnail-1 {
            border-color: transparent;
        }
    }`)
	return b.String()
}

func (r *renderer) renderCarousel(n *Node) error {
	images := carouselImages(n)
	if len(images) == 0 {
		return nil
	}
	id := n.id

	r.br.Render(startMsoNegation)
	r.br.Render(`<div class="mj-carousel">`)
	for i, img := range images {
		r.carouselRadio(img, id, i)
	}
	r.br.Open("div",
		"class", "mj-carousel-content mj-carousel-"+id+"-content",
		"style", style(
			"display", "table",
			"width", "100%",
			"table-layout", "fixed",
			"text-align", "center",
			"font-size", "0px"))
	if n.Get("thumbnails") == "visible" {
		for i, img := range images {
			r.carouselThumbnail(img, id, i, len(images))
		}
	}
	r.br.Open("table",
		"style", style("caption-side", "top", "display", "table-caption", "table-layout", "fixed", "width", "100%"),
		"border", "0",
		"cellpadding", "0",
		"cellspacing", "0",
		"width", "100%",
		"role", "presentation",
		"class", "mj-carousel-main")
	r.br.Render("<tbody><tr>")
	r.carouselControls(n, "previous", n.Get("left-icon"), len(images))
	r.br.Render(`<td style="padding:0px;"><div class="mj-carousel-images">`)
	if err := r.renderChildren(n, nil); err != nil {
		return err
	}
	r.br.Render("</div></td>")
	r.carouselControls(n, "next", n.Get("right-icon"), len(images))
	r.br.Render("</tr></tbody></table></div></div>")
	r.br.Render(endNegationConditional)

	// Outlook only shows the first image
	r.br.Render(startMsoConditional)
	r.carouselImage(images[0], true)
	r.br.Render(endConditional)
	return nil
}

func (r *renderer) carouselControls(n *Node, direction, icon string, count int) {
	width := n.Get("icon-width")
	r.br.Open("td",
		"class", "mj-carousel-"+n.id+"-icons-cell",
		"style", style("font-size", "0px", "display", "none", "mso-hide", "all", "padding", "0px"))
	r.br.Open("div",
		"class", "mj-carousel-"+direction+"-icons",
		"style", style("display", "none", "mso-hide", "all"))
	for i := 1; i <= count; i++ {
		r.br.Open("label",
			"for", "mj-carousel-"+n.id+"-radio-"+strconv.Itoa(i),
			"class", "mj-carousel-"+direction+" mj-carousel-"+direction+"-"+strconv.Itoa(i))
		r.br.Void("img",
			"src", icon,
			"alt", direction,
			"style", style("display", "block", "width", width, "height", "auto"),
			"width", strconv.Itoa(parseInt(width)))
		r.br.Close("label")
	}
	r.br.Render("</div></td>")
}

func (r *renderer) carouselRadio(n *Node, id string, index int) {
	checked := ""
	if index == 0 {
		checked = "checked"
	}
	nb := strconv.Itoa(index + 1)
	r.br.Void("input",
		"class", "mj-carousel-radio mj-carousel-"+id+"-radio mj-carousel-"+id+"-radio-"+nb,
		"checked", checked,
		"type", "radio",
		"name", "mj-carousel-radio-"+id,
		"id", "mj-carousel-"+id+"-radio-"+nb,
		"style", style("display", "none", "mso-hide", "all"))
}

func (r *renderer) carouselThumbnail(n *Node, id string, index, count int) {
	width := n.Get("tb-width")
	if width == "" {
		w := n.Context.ContainerWidth / float64(count)
		if w > 110 {
			w = 110
		}
		width = px(w)
	}
	src := n.Get("thumbnails-src")
	if src == "" {
		src = n.Get("src")
	}
	nb := strconv.Itoa(index + 1)
	class := "mj-carousel-thumbnail mj-carousel-" + id + "-thumbnail mj-carousel-" + id + "-thumbnail-" + nb
	if css := n.Get("css-class"); css != "" {
		class += " " + suffixClasses(css, "thumbnail")
	}

	r.br.Open("a",
		"style", style(
			"border", n.Get("tb-border"),
			"border-radius", n.Get("tb-border-radius"),
			"display", "inline-block",
			"overflow", "hidden",
			"width", width),
		"href", "#"+nb,
		"target", n.Get("target"),
		"class", class)
	r.br.Open("label", "for", "mj-carousel-"+id+"-radio-"+nb)
	r.br.Void("img",
		"style", style("display", "block", "width", "100%", "height", "auto"),
		"src", src,
		"alt", n.Get("alt"),
		"width", strconv.Itoa(parseInt(width)))
	r.br.Render("</label></a>")
}

func (r *renderer) renderCarouselImage(n *Node) {
	r.carouselImage(n, false)
}

// carouselImage writes one slide. Only the first slide is visible before
// any radio is checked.
func (r *renderer) carouselImage(n *Node, fallback bool) {
	index := 0
	for c := n.PrevSibling; c != nil; c = c.PrevSibling {
		if c.Type == CarouselImageNode {
			index++
		}
	}
	class := "mj-carousel-image mj-carousel-image-" + strconv.Itoa(index+1)
	if css := n.Get("css-class"); css != "" {
		class += " " + css
	}
	divStyle := ""
	if index > 0 && !fallback {
		divStyle = style("display", "none", "mso-hide", "all")
	}
	width := n.Context.ContainerWidth

	r.br.Open("div", "class", class, "style", divStyle)
	href := n.Get("href")
	if href != "" {
		r.br.Open("a", "href", href, "rel", n.Get("rel"), "target", n.Get("target"))
	}
	r.br.Void("img",
		"title", n.Get("title"),
		"src", n.Get("src"),
		"alt", n.Get("alt"),
		"style", style(
			"border-radius", n.Get("border-radius"),
			"display", "block",
			"width", px(width),
			"max-width", "100%",
			"height", "auto"),
		"width", strconv.Itoa(int(width)),
		"border", "0")
	if href != "" {
		r.br.Close("a")
	}
	r.br.Close("div")
}
