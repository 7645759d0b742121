package mjml

const defaultFontFamily = "Ubuntu, Helvetica, Arial, sans-serif"

// defaultAttributes are the builtin defaults of every component. They are
// read-only and shared by all renders.
var defaultAttributes = [numNodeTypes]map[string]string{
	BreakpointNode: {"width": "480px"},
	BodyNode:       {"width": "600px"},
	SectionNode: {
		"background-position": "top center",
		"background-repeat":   "repeat",
		"background-size":     "auto",
		"direction":           "ltr",
		"padding":             "20px 0",
		"text-align":          "center",
		"text-padding":        "4px 4px 4px 0",
	},
	WrapperNode: {
		"background-position": "top center",
		"background-repeat":   "repeat",
		"background-size":     "auto",
		"direction":           "ltr",
		"padding":             "20px 0",
		"text-align":          "center",
	},
	GroupNode: {
		"direction": "ltr",
	},
	ColumnNode: {
		"direction":      "ltr",
		"vertical-align": "top",
	},
	HeroNode: {
		"background-color":    "#ffffff",
		"background-position": "center center",
		"border-radius":       "0px",
		"height":              "0px",
		"mode":                "fixed-height",
		"padding":             "0px",
		"vertical-align":      "top",
	},
	TextNode: {
		"align":       "left",
		"color":       "#000000",
		"font-family": defaultFontFamily,
		"font-size":   "13px",
		"line-height": "1",
		"padding":     "10px 25px",
	},
	ButtonNode: {
		"align":            "center",
		"background-color": "#414141",
		"border":           "none",
		"border-radius":    "3px",
		"color":            "#ffffff",
		"font-family":      defaultFontFamily,
		"font-size":        "13px",
		"font-weight":      "normal",
		"inner-padding":    "10px 25px",
		"line-height":      "120%",
		"padding":          "10px 25px",
		"target":           "_blank",
		"text-decoration":  "none",
		"text-transform":   "none",
		"vertical-align":   "middle",
	},
	ImageNode: {
		"align":     "center",
		"alt":       "",
		"border":    "0",
		"height":    "auto",
		"padding":   "10px 25px",
		"target":    "_blank",
		"font-size": "13px",
	},
	DividerNode: {
		"align":        "center",
		"border-color": "#000000",
		"border-style": "solid",
		"border-width": "4px",
		"padding":      "10px 25px",
		"width":        "100%",
	},
	SpacerNode: {
		"height": "20px",
	},
	TableNode: {
		"align":        "left",
		"border":       "none",
		"cellpadding":  "0",
		"cellspacing":  "0",
		"color":        "#000000",
		"font-family":  defaultFontFamily,
		"font-size":    "13px",
		"line-height":  "22px",
		"padding":      "10px 25px",
		"table-layout": "auto",
		"width":        "100%",
	},
	SocialNode: {
		"align":           "center",
		"border-radius":   "3px",
		"color":           "#333333",
		"font-family":     defaultFontFamily,
		"font-size":       "13px",
		"icon-size":       "20px",
		"line-height":     "22px",
		"mode":            "horizontal",
		"padding":         "10px 25px",
		"text-decoration": "none",
	},
	SocialElementNode: {
		"align":           "left",
		"color":           "#000",
		"border-radius":   "3px",
		"font-family":     defaultFontFamily,
		"font-size":       "13px",
		"icon-position":   "left",
		"line-height":     "1",
		"padding":         "4px",
		"target":          "_blank",
		"text-decoration": "none",
		"text-padding":    "4px 4px 4px 0",
		"vertical-align":  "middle",
	},
	NavbarNode: {
		"align":               "center",
		"ico-align":           "center",
		"ico-open":            "&#9776;",
		"ico-close":           "&#8855;",
		"ico-color":           "#000000",
		"ico-font-size":       "30px",
		"ico-font-family":     defaultFontFamily,
		"ico-text-transform":  "uppercase",
		"ico-padding":         "10px",
		"ico-text-decoration": "none",
		"ico-line-height":     "30px",
	},
	NavbarLinkNode: {
		"color":           "#000000",
		"font-family":     defaultFontFamily,
		"font-size":       "13px",
		"font-weight":     "normal",
		"line-height":     "22px",
		"padding":         "15px 10px",
		"target":          "_blank",
		"text-decoration": "none",
		"text-transform":  "uppercase",
	},
	CarouselNode: {
		"align":                    "center",
		"border-radius":            "6px",
		"icon-width":               "44px",
		"left-icon":                "https://i.imgur.com/xTh3hln.png",
		"right-icon":               "https://i.imgur.com/os7o9kz.png",
		"thumbnails":               "visible",
		"tb-border":                "2px solid transparent",
		"tb-border-radius":         "6px",
		"tb-hover-border-color":    "#fead0d",
		"tb-selected-border-color": "#ccc",
	},
	CarouselImageNode: {
		"alt":    "",
		"target": "_blank",
	},
	AccordionNode: {
		"border":             "2px solid black",
		"font-family":        defaultFontFamily,
		"icon-align":         "middle",
		"icon-wrapped-url":   "https://i.imgur.com/bIXv1bk.png",
		"icon-wrapped-alt":   "+",
		"icon-unwrapped-url": "https://i.imgur.com/w4uTygT.png",
		"icon-unwrapped-alt": "-",
		"icon-position":      "right",
		"icon-height":        "32px",
		"icon-width":         "32px",
		"padding":            "10px 25px",
	},
	AccordionTitleNode: {
		"font-size": "13px",
		"padding":   "16px",
	},
	AccordionTextNode: {
		"font-size":   "13px",
		"line-height": "1",
		"padding":     "16px",
	},
}

// DefaultFonts maps the font families known out of the box to their
// stylesheets.
var DefaultFonts = map[string]string{
	"Open Sans":  "https://fonts.googleapis.com/css?family=Open+Sans:300,400,500,700",
	"Droid Sans": "https://fonts.googleapis.com/css?family=Droid+Sans:300,400,500,700",
	"Lato":       "https://fonts.googleapis.com/css?family=Lato:300,400,500,700",
	"Roboto":     "https://fonts.googleapis.com/css?family=Roboto:300,400,500,700",
	"Ubuntu":     "https://fonts.googleapis.com/css?family=Ubuntu:300,400,500,700",
}

// DefaultSocialIconOrigin serves the builtin social network icons.
const DefaultSocialIconOrigin = "https://www.mailjet.com/images/theme/v1/icons/ico-social/"

// childAttributes lists, per parent type, the resolved parent attributes
// handed down to its children as their inherited layer.
var childAttributes = [numNodeTypes][]string{
	SocialNode: {
		"border-radius", "color", "font-family", "font-size", "font-weight",
		"font-style", "icon-size", "icon-height", "icon-padding", "text-padding",
		"line-height", "text-decoration",
	},
	AccordionNode: {
		"border", "font-family", "icon-align", "icon-width", "icon-height",
		"icon-position", "icon-wrapped-url", "icon-wrapped-alt",
		"icon-unwrapped-url", "icon-unwrapped-alt",
	},
	AccordionElementNode: {
		"background-color", "border", "font-family", "icon-align", "icon-width",
		"icon-height", "icon-position", "icon-wrapped-url", "icon-wrapped-alt",
		"icon-unwrapped-url", "icon-unwrapped-alt",
	},
	CarouselNode: {
		"border-radius", "tb-border", "tb-border-radius",
	},
}

// inheritedAttributes computes the inherited layer a parent hands to its
// children.
func inheritedAttributes(parent *Node) map[string]string {
	if parent == nil {
		return nil
	}
	keys := childAttributes[parent.Type]
	if len(keys) == 0 && parent.Type != SocialNode && parent.Type != NavbarNode {
		return nil
	}
	m := make(map[string]string, len(keys)+1)
	for _, k := range keys {
		if v := parent.Get(k); v != "" {
			m[k] = v
		}
	}
	switch parent.Type {
	case SocialNode:
		if v := parent.Get("inner-padding"); v != "" {
			m["padding"] = v
		}
	case NavbarNode:
		if v := parent.Get("base-url"); v != "" {
			m["navbar-base-url"] = v
		}
	}
	return m
}
