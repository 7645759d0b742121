package inline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply(t *testing.T) {
	tests := []struct {
		name string
		html string
		css  string
		want string
	}{
		{
			name: "class",
			html: `<div class="a">x</div>`,
			css:  `.a { color: red }`,
			want: `<div class="a" style="color:red;">x</div>`,
		},
		{
			name: "inline style wins",
			html: `<p style="color:blue;">x</p>`,
			css:  `p { color: red; font-size: 12px }`,
			want: `<p style="color:blue;font-size:12px;">x</p>`,
		},
		{
			name: "important beats inline style",
			html: `<p style="color:blue;">x</p>`,
			css:  `p { color: red !important }`,
			want: `<p style="color:red !important;">x</p>`,
		},
		{
			name: "specificity",
			html: `<p id="x">t</p>`,
			css:  `#x { color: green } p { color: red }`,
			want: `<p id="x" style="color:green;">t</p>`,
		},
		{
			name: "selector list",
			html: `<b>1</b><i>2</i>`,
			css:  `b, i { margin: 0 }`,
			want: `<b style="margin:0;">1</b><i style="margin:0;">2</i>`,
		},
		{
			name: "comments survive",
			html: `<!--[if mso | IE]><table><![endif]--><span>s</span>`,
			css:  `span { color: red }`,
			want: `<!--[if mso | IE]><table><![endif]--><span style="color:red;">s</span>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rest, err := Apply(tt.html, tt.css)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Empty(t, rest)
		})
	}
}

func TestApplyKeepsWhatCannotBeInlined(t *testing.T) {
	css := `a:hover { color: red } @media (max-width:480px) { .a { width: 100% } }`
	got, rest, err := Apply(`<a class="a">l</a>`, css)
	require.NoError(t, err)
	assert.Equal(t, `<a class="a">l</a>`, got)
	assert.Contains(t, rest, "a:hover")
	assert.Contains(t, rest, "@media")
	assert.Contains(t, rest, "width:100%;")
}

func TestParse(t *testing.T) {
	sheet, err := Parse(`h1 { color: red } .x:first-child { color: blue }`)
	require.NoError(t, err)
	assert.Equal(t, 1, sheet.Len())
	assert.Contains(t, sheet.Rest(), ".x:first-child")
}

func TestInlineKeepsUnmatchedMarkup(t *testing.T) {
	src := `<td style="background:url('bg.png')">&#8202;</td><br><div class="a">&#9776;<img src="x.png" /></div>`
	got, _, err := Apply(src, `.a { color: red } img { border: 0 }`)
	require.NoError(t, err)
	assert.Equal(t, `<td style="background:url('bg.png')">&#8202;</td><br><div class="a" style="color:red;">&#9776;<img src="x.png" style="border:0;" /></div>`, got)
}
