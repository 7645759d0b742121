package mjml

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	overrides := &Overrides{
		All: map[string]string{"color": "all", "padding": "all", "align": "all"},
		Tags: map[string]map[string]string{
			"mj-text": {"color": "tag", "font-size": "tag"},
		},
		Classes: map[string]map[string]string{
			"a": {"name": "a", "color": "class-a", "line-height": "a", "css-class": "ca"},
			"b": {"name": "b", "line-height": "b", "padding": "b", "css-class": "cb"},
		},
	}
	defaults := map[string]string{"color": "default", "align": "default", "height": "default"}

	tests := []struct {
		name      string
		inline    map[string]string
		inherited map[string]string
		want      map[string]string
	}{
		{
			name:   "inline wins",
			inline: map[string]string{"color": "inline"},
			want:   map[string]string{"color": "inline", "font-size": "tag", "padding": "all", "align": "all", "height": "default"},
		},
		{
			name:   "tag over class",
			inline: map[string]string{"mj-class": "a"},
			want:   map[string]string{"color": "tag", "line-height": "a", "css-class": "ca", "mj-class": "a"},
		},
		{
			name:   "first class wins",
			inline: map[string]string{"mj-class": "b a"},
			want:   map[string]string{"line-height": "b", "padding": "b", "css-class": "cb ca", "mj-class": "b a"},
		},
		{
			name:   "own css-class is appended",
			inline: map[string]string{"mj-class": "a", "css-class": "own"},
			want:   map[string]string{"css-class": "ca own"},
		},
		{
			name:      "inherited between mj-all and defaults",
			inline:    map[string]string{},
			inherited: map[string]string{"align": "parent", "height": "parent"},
			want:      map[string]string{"align": "all", "height": "parent"},
		},
		{
			name:   "unknown class is ignored",
			inline: map[string]string{"mj-class": "nope"},
			want:   map[string]string{"color": "tag", "mj-class": "nope"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve("mj-text", tt.inline, overrides, tt.inherited, defaults)
			for k, v := range tt.want {
				assert.Equal(t, v, got.Get(k), "attribute %s", k)
			}
			assert.False(t, got.Has("name"))
		})
	}
}

func TestMjAllIsShadowed(t *testing.T) {
	overrides := NewOverrides()
	overrides.All["color"] = "all"

	layers := []struct {
		name     string
		inline   map[string]string
		tag      map[string]string
		class    map[string]string
		expected string
	}{
		{name: "inline", inline: map[string]string{"color": "x"}, expected: "x"},
		{name: "tag", tag: map[string]string{"color": "x"}, expected: "x"},
		{name: "class", class: map[string]string{"name": "c", "color": "x"}, expected: "x"},
		{name: "none", expected: "all"},
	}
	for _, l := range layers {
		t.Run(l.name, func(t *testing.T) {
			o := NewOverrides()
			o.All = overrides.All
			inline := map[string]string{}
			for k, v := range l.inline {
				inline[k] = v
			}
			if l.tag != nil {
				o.Tags["mj-button"] = l.tag
			}
			if l.class != nil {
				o.Classes["c"] = l.class
				inline["mj-class"] = "c"
			}
			got := Resolve("mj-button", inline, o, nil, map[string]string{"color": "default"})
			assert.Equal(t, l.expected, got.Get("color"))
		})
	}
}

func TestResolveWithoutOverrides(t *testing.T) {
	got := Resolve("mj-text", map[string]string{"align": "right"}, nil, nil, defaultAttributes[TextNode])
	assert.Equal(t, "right", got.Get("align"))
	assert.Equal(t, "13px", got.Get("font-size"))
	assert.Equal(t, []string{"align", "color", "font-family", "font-size", "line-height", "padding"}, got.Keys())
}

func TestResolvedDocument(t *testing.T) {
	doc, err := ParseString(`<mjml>
  <mj-head>
    <mj-attributes>
      <mj-all font-family="Arial" />
      <mj-social-element color="green" />
    </mj-attributes>
  </mj-head>
  <mj-body>
    <mj-column>
      <mj-social inner-padding="7px" color="red">
        <mj-social-element name="facebook">f</mj-social-element>
      </mj-social>
    </mj-column>
  </mj-body>
</mjml>`)
	if !assert.NoError(t, err) {
		return
	}
	social := doc.Body.FirstChild.FirstChild
	element := social.FirstChild
	assert.Equal(t, "Arial", social.Get("font-family"))
	assert.Equal(t, "green", element.Get("color"))
	assert.Equal(t, "7px", element.Get("padding"))
	assert.Equal(t, "Arial", element.Get("font-family"))
}
