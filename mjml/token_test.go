package mjml

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collect reads all tokens of src, stopping at the first error.
func collect(src string) ([]Token, error) {
	c := NewCursor(src)
	var toks []Token
	for {
		tok, err := c.Next()
		if err == io.EOF {
			return toks, nil
		}
		if err != nil {
			return toks, err
		}
		toks = append(toks, tok)
	}
}

func TestCursorNext(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		types []TokenType
		names []string
	}{
		{
			name:  "element with attributes",
			src:   `<mj-text color="red" align=left>`,
			types: []TokenType{StartTagToken, AttributeToken, AttributeToken, StartTagEndToken},
			names: []string{"mj-text", "color", "align", "mj-text"},
		},
		{
			name:  "self closing",
			src:   `<mj-image src='a.png' />`,
			types: []TokenType{StartTagToken, AttributeToken, StartTagEndToken},
			names: []string{"mj-image", "src", "mj-image"},
		},
		{
			name:  "text comment end tag",
			src:   `hi<!-- note --></mjml>`,
			types: []TokenType{TextToken, CommentToken, EndTagToken},
			names: []string{"", "", "mjml"},
		},
		{
			name:  "doctype and processing instruction are skipped",
			src:   `<?xml version="1.0"?><!DOCTYPE html><mjml>`,
			types: []TokenType{StartTagToken, StartTagEndToken},
			names: []string{"mjml", "mjml"},
		},
		{
			name:  "valueless attribute",
			src:   `<mj-navbar hamburger>`,
			types: []TokenType{StartTagToken, AttributeToken, StartTagEndToken},
			names: []string{"mj-navbar", "hamburger", "mj-navbar"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := collect(tt.src)
			require.NoError(t, err)
			require.Len(t, toks, len(tt.types))
			for i, tok := range toks {
				assert.Equal(t, tt.types[i], tok.Type, "token %d", i)
				assert.Equal(t, tt.names[i], tok.Name, "token %d", i)
			}
		})
	}
}

func TestCursorValues(t *testing.T) {
	toks, err := collect(`<a href="x?a=1&amp;b=2">t<![CDATA[<b>]]></a>`)
	require.NoError(t, err)
	require.Len(t, toks, 6)
	assert.Equal(t, "x?a=1&amp;b=2", toks[1].Value)
	assert.Equal(t, "t", toks[3].Value)
	assert.Equal(t, TextToken, toks[4].Type)
	assert.Equal(t, "<b>", toks[4].Value)
	assert.Equal(t, Span{Start: 0, End: 2}, toks[0].Span)
}

func TestCursorPeek(t *testing.T) {
	c := NewCursor(`<mjml>`)
	p, err := c.Peek()
	require.NoError(t, err)
	n, err := c.Next()
	require.NoError(t, err)
	assert.Equal(t, p, n)
	assert.Equal(t, 0, p.Span.Start)
}

func TestCursorReadRaw(t *testing.T) {
	c := NewCursor(`<mj-text><p>Hello <mj-text-ish></p> </mj-text >`)
	for _, want := range []TokenType{StartTagToken, StartTagEndToken} {
		tok, err := c.Next()
		require.NoError(t, err)
		require.Equal(t, want, tok.Type)
	}
	raw, err := c.ReadRaw("mj-text")
	require.NoError(t, err)
	assert.Equal(t, "<p>Hello <mj-text-ish></p> ", raw.Value)

	end, err := c.Next()
	require.NoError(t, err)
	assert.Equal(t, EndTagToken, end.Type)
	assert.Equal(t, "mj-text", end.Name)
}

func TestCursorMalformed(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unterminated comment", "<!-- x"},
		{"unterminated value", `<a b="x>`},
		{"bad character after <", "< a>"},
		{"unterminated tag", "<a b"},
		{"bad end tag", "</ a>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := collect(tt.src)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedMarkup))

			var pe *ParseError
			require.True(t, errors.As(err, &pe))
		})
	}
}

func TestCursorErrorIsSticky(t *testing.T) {
	c := NewCursor("<!-- x")
	_, err1 := c.Next()
	_, err2 := c.Next()
	require.Error(t, err1)
	assert.Same(t, err1, err2)
}
