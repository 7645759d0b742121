package mjml

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const kitchenSink = `<mjml lang="en" owa="desktop">
  <mj-head>
    <mj-title>Newsletter</mj-title>
    <mj-preview>Read this</mj-preview>
    <mj-breakpoint width="320px" />
    <mj-font name="Raleway" href="https://fonts.example.com/raleway.css" />
    <mj-attributes>
      <mj-all padding="0px" />
      <mj-class name="blue" color="blue" css-class="is-blue" />
    </mj-attributes>
    <mj-style>.custom { color: red; }</mj-style>
    <mj-style inline="inline">.inlined { font-weight: bold; }</mj-style>
    <mj-raw><meta name="x-head" content="1"></mj-raw>
  </mj-head>
  <mj-body background-color="#eeeeee">
    <!-- source comment -->
    <mj-section background-url="https://img.example.com/bg.png" background-color="red">
      <mj-column width="40%">
        <mj-text mj-class="blue" font-family="Raleway, Arial"><p class="inlined">Hello</p></mj-text>
        <mj-button href="https://example.com" width="200px">Go</mj-button>
        <mj-image src="https://img.example.com/a.png" href="https://example.com" width="100px" />
      </mj-column>
      <mj-column width="60%">
        <mj-divider border-color="#ccc" width="50%" />
        <mj-spacer height="30px" />
        <mj-table><tr><td>1</td></tr></mj-table>
      </mj-column>
    </mj-section>
    <mj-wrapper border="1px solid #000">
      <mj-section full-width="full-width">
        <mj-group>
          <mj-column><mj-text>A</mj-text></mj-column>
          <mj-column><mj-text>B</mj-text></mj-column>
        </mj-group>
      </mj-section>
    </mj-wrapper>
    <mj-hero background-url="https://img.example.com/hero.jpg" background-width="600px" background-height="300px" mode="fluid-height">
      <mj-text>Hero</mj-text>
    </mj-hero>
    <mj-section>
      <mj-column>
        <mj-social>
          <mj-social-element name="facebook" href="https://example.com">Share</mj-social-element>
          <mj-social-element name="github-noshare" href="https://github.com/x" />
        </mj-social>
        <mj-navbar hamburger="hamburger" base-url="https://example.com">
          <mj-navbar-link href="/about">About</mj-navbar-link>
        </mj-navbar>
        <mj-carousel>
          <mj-carousel-image src="https://img.example.com/1.png" />
          <mj-carousel-image src="https://img.example.com/2.png" />
        </mj-carousel>
        <mj-accordion>
          <mj-accordion-element>
            <mj-accordion-title>Why?</mj-accordion-title>
            <mj-accordion-text>Because.</mj-accordion-text>
          </mj-accordion-element>
        </mj-accordion>
        <mj-raw><!-- raw note --><!--[if mso]><b>mso</b><![endif]--></mj-raw>
      </mj-column>
    </mj-section>
  </mj-body>
</mjml>`

func TestRenderHelloWorld(t *testing.T) {
	html, err := ToHTML(helloWorld, DefaultRenderOptions())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(html, "<!doctype html>\n"))
	assert.Contains(t, html, `<html lang="und" dir="auto"`)
	assert.Contains(t, html, `<table align="center" border="0" cellpadding="0" cellspacing="0" role="presentation" style="width:600px;" width="600">`)
	assert.Contains(t, html, `<div class="mj-column-per-100 mj-outlook-group-fix" style="font-size:0px;text-align:left;direction:ltr;display:inline-block;vertical-align:top;width:100%;">`)
	assert.Contains(t, html, `.mj-column-per-100 { width:100% !important; max-width: 100%; }`)
	assert.Contains(t, html, "@media only screen and (min-width:480px) {")
	assert.Contains(t, html, `<div style="font-family:Ubuntu, Helvetica, Arial, sans-serif;font-size:13px;line-height:1;text-align:left;color:#000000;">Hi</div>`)
	assert.Contains(t, html, DefaultFonts["Ubuntu"])
	assert.True(t, strings.HasSuffix(html, "</body>\n</html>\n"))
}

func TestRenderIsDeterministic(t *testing.T) {
	doc, err := ParseString(kitchenSink, WithFileName("sink.mjml"))
	require.NoError(t, err)

	first, err := doc.Render(DefaultRenderOptions())
	require.NoError(t, err)
	second, err := doc.Render(DefaultRenderOptions())
	require.NoError(t, err)
	assert.Equal(t, first, second)

	again, err := ParseString(kitchenSink, WithFileName("sink.mjml"))
	require.NoError(t, err)
	third, err := again.Render(DefaultRenderOptions())
	require.NoError(t, err)
	assert.Equal(t, first, third)
}

func TestRenderKitchenSink(t *testing.T) {
	html, err := ToHTML(kitchenSink, DefaultRenderOptions())
	require.NoError(t, err)

	for _, want := range []string{
		`<html lang="en" dir="auto"`,
		"<title>Newsletter</title>",
		">Read this</div>",
		"@media only screen and (min-width:320px) {",
		".mj-column-per-40 { width:40% !important; max-width: 40%; }",
		"[owa] .mj-column-per-60",
		`<link href="https://fonts.example.com/raleway.css"`,
		".custom { color: red; }",
		`<meta name="x-head" content="1">`,
		"background-color:#eeeeee;",
		"<!-- source comment -->",
		"<!-- raw note -->",
		`<v:fill origin="0.5, 0" position="0.5, 0" src="https://img.example.com/bg.png" color="#ff0000" type="tile" />`,
		`class="is-blue"`,
		"color:blue;",
		`<p class="inlined" style="font-weight:bold;">Hello</p>`,
		`href="https://example.com"`,
		"width:150px;",
		"mj-hero-content",
		"padding-bottom:50%;",
		"https://www.facebook.com/sharer/sharer.php?u=https://example.com",
		`href="https://github.com/x"`,
		DefaultSocialIconOrigin + "github.png",
		`class="mj-menu-checkbox"`,
		`href="https://example.com/about"`,
		"mj-carousel-image-2",
		"mj-accordion-checkbox",
		"&#8202;",
		"<td>1</td>",
	} {
		assert.Contains(t, html, want)
	}
	assert.NotContains(t, html, "<![endif]--><!--[if mso | IE]>")
}

func TestRenderWithoutComments(t *testing.T) {
	opts := DefaultRenderOptions()
	opts.KeepComments = false
	html, err := ToHTML(kitchenSink, opts)
	require.NoError(t, err)

	assert.NotContains(t, html, "source comment")
	assert.NotContains(t, html, "raw note")
	assert.Contains(t, html, "<!--[if mso]><b>mso</b><![endif]-->")
}

func TestStripComments(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"a<!-- x -->b", "ab"},
		{"<!--[if mso]>x<![endif]-->", "<!--[if mso]>x<![endif]-->"},
		{"<!--[if !mso]><!-->y<!--<![endif]-->", "<!--[if !mso]><!-->y<!--<![endif]-->"},
		{"no comments", "no comments"},
		{"open <!-- never closed", "open <!-- never closed"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, stripComments(tt.in))
		})
	}
}

func TestRenderOptions(t *testing.T) {
	opts := RenderOptions{
		KeepComments:     true,
		Fonts:            map[string]string{"Ubuntu": "https://fonts.example.com/ubuntu.css"},
		SocialIconOrigin: "https://cdn.example.com/",
	}
	html, err := ToHTML(`<mjml><mj-body><mj-section><mj-column>
  <mj-social><mj-social-element name="twitter" /></mj-social>
</mj-column></mj-section></mj-body></mjml>`, opts)
	require.NoError(t, err)
	assert.Contains(t, html, "https://cdn.example.com/twitter.png")
	assert.Contains(t, html, "https://fonts.example.com/ubuntu.css")
	assert.NotContains(t, html, "fonts.googleapis.com")
}

func TestByteRenderer(t *testing.T) {
	br := NewByteRenderer()
	br.Open("td", "align", "left", "class", "", "style", style("width", "10px", "height", ""))
	br.Void("img", "src", "a.png")
	br.Close("td")
	assert.Equal(t, `<td align="left" style="width:10px;"><img src="a.png" /></td>`, br.String())
}
