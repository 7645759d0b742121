package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hesusruiz/mjml/mjml"
)

func TestOutputName(t *testing.T) {
	tests := []struct {
		in, ext, want string
	}{
		{"index.mjml", ".html", "index.html"},
		{"dir/mail.v2.mjml", ".htm", "dir/mail.v2.htm"},
		{"noext", ".html", "noext.html"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, outputName(tt.in, tt.ext))
		})
	}
}

func TestTreeDocument(t *testing.T) {
	doc, err := mjml.ParseString(`<mjml><mj-body><mj-section> a note <mj-column><mj-text>Hi</mj-text></mj-column></mj-section></mj-body></mjml>`)
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = treeDocument(doc).WriteTo(&buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "<mj-body")
	assert.Contains(t, out, `width="600px"`)
	assert.Contains(t, out, `data-container-width="600"`)
	assert.Contains(t, out, "<![CDATA[Hi]]>")
	assert.Contains(t, out, "a note")
}
