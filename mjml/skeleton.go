package mjml

import (
	"strings"
)

const baseStyle = `<style type="text/css">
#outlook a { padding:0; }
body { margin:0;padding:0;-webkit-text-size-adjust:100%;-ms-text-size-adjust:100%; }
table, td { border-collapse:collapse;mso-table-lspace:0pt;mso-table-rspace:0pt; }
img { border:0;height:auto;line-height:100%; outline:none;text-decoration:none;-ms-interpolation-mode:bicubic; }
p { display:block;margin:13px 0; }
</style>`

const officeSettings = `<!--[if mso]>
<noscript>
<xml>
<o:OfficeDocumentSettings>
<o:AllowPNG/>
<o:PixelsPerInch>96</o:PixelsPerInch>
</o:OfficeDocumentSettings>
</xml>
</noscript>
<![endif]-->`

const groupFix = `<!--[if lte mso 11]>
<style type="text/css">
.mj-outlook-group-fix { width:100% !important; }
</style>
<![endif]-->`

const previewStyle = "display:none;font-size:1px;color:#ffffff;line-height:1px;max-height:0px;max-width:0px;opacity:0;overflow:hidden;"

// assemble wraps the rendered body into a complete document whose head
// is built from the header.
func (r *renderer) assemble(body string) string {
	h := r.h
	br := NewByteRenderer()

	br.Renderln("<!doctype html>")
	br.Renderln(`<html lang="`, h.Lang, `" dir="`, h.Dir,
		`" xmlns="http://www.w3.org/1999/xhtml" xmlns:v="urn:schemas-microsoft-com:vml" xmlns:o="urn:schemas-microsoft-com:office:office">`)
	br.Renderln("<head>")
	br.Renderln("<title>", h.Title, "</title>")
	br.Renderln(startMsoNegation, `<meta http-equiv="X-UA-Compatible" content="IE=edge">`, endNegationConditional)
	br.Renderln(`<meta http-equiv="Content-Type" content="text/html; charset=UTF-8">`)
	br.Renderln(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
	br.Renderln(baseStyle)
	br.Renderln(officeSettings)
	br.Renderln(groupFix)

	if imports := h.FontImports(); len(imports) > 0 {
		br.Renderln(startMsoNegation)
		for _, href := range imports {
			br.Renderln(`<link href="`, href, `" rel="stylesheet" type="text/css">`)
		}
		br.Renderln(`<style type="text/css">`)
		for _, href := range imports {
			br.Renderln("@import url(", href, ");")
		}
		br.Renderln("</style>")
		br.Renderln(endNegationConditional)
	}

	if mq := h.MediaQueries(); len(mq) > 0 {
		rule := func(prefix string, q MediaQuery) string {
			return prefix + "." + q.Class + " { width:" + q.Width + " !important; max-width: " + q.Width + "; }"
		}
		br.Renderln(`<style type="text/css">`)
		br.Renderln("@media only screen and (min-width:", h.Breakpoint(), ") {")
		for _, q := range mq {
			br.Renderln(rule("", q))
		}
		br.Renderln("}")
		br.Renderln("</style>")
		br.Renderln(`<style media="screen and (min-width:`, h.Breakpoint(), `)">`)
		for _, q := range mq {
			br.Renderln(rule(".moz-text-html ", q))
		}
		br.Renderln("</style>")
		if h.OWADesktop {
			br.Renderln(`<style type="text/css">`)
			for _, q := range mq {
				br.Renderln(rule("[owa] ", q))
			}
			br.Renderln("</style>")
		}
	}

	if styles := h.Styles(); len(styles) > 0 {
		br.Renderln(`<style type="text/css">`)
		for _, s := range styles {
			br.Renderln(strings.TrimSpace(s))
		}
		br.Renderln("</style>")
	}

	if len(h.headStyles) > 0 {
		br.Renderln(`<style type="text/css">`)
		for _, s := range h.headStyles {
			br.Renderln(strings.TrimSpace(s))
		}
		br.Renderln("</style>")
	}

	for _, raw := range h.headRaw {
		br.Renderln(raw)
	}
	br.Renderln("</head>")

	br.Render(`<body style="`, style("word-spacing", "normal", "background-color", h.BackgroundColor), `">`)
	if h.Preview != "" {
		br.Render(`<div style="`, previewStyle, `">`, h.Preview, "</div>")
	}
	br.Render(body)
	br.Renderln("</body>")
	br.Renderln("</html>")
	return br.String()
}
