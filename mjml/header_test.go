package mjml

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeaderBreakpoint(t *testing.T) {
	h := NewHeader(nil)
	assert.Equal(t, "480px", h.Breakpoint())
	assert.Equal(t, "479px", h.LowerBreakpoint())

	assert.True(t, h.SetBreakpoint("320px"))
	assert.False(t, h.SetBreakpoint("600px"))
	assert.Equal(t, "320px", h.Breakpoint())
	assert.Equal(t, "319px", h.LowerBreakpoint())
}

func TestHeaderFonts(t *testing.T) {
	h := NewHeader(DefaultFonts)
	h.AddFont("Raleway", "https://fonts.example.com/raleway.css")

	h.UseFonts(`"Raleway", Ubuntu, Helvetica, Arial, sans-serif`)
	h.UseFonts("Ubuntu")
	h.UseFontsIn(`<span style="font-family:'Lato'">x</span>`)

	assert.Equal(t, []string{"Raleway", "Ubuntu", "Helvetica", "Arial", "sans-serif", "Lato"}, h.UsedFonts())
	assert.Equal(t, []string{
		"https://fonts.example.com/raleway.css",
		DefaultFonts["Ubuntu"],
		DefaultFonts["Lato"],
	}, h.FontImports())
}

func TestHeaderMediaQueriesAndStyles(t *testing.T) {
	h := NewHeader(nil)
	h.AddMediaQuery("mj-column-per-50", "50%")
	h.AddMediaQuery("mj-column-per-100", "100%")
	h.AddMediaQuery("mj-column-per-50", "49%")
	assert.Equal(t, []MediaQuery{
		{Class: "mj-column-per-50", Width: "50%"},
		{Class: "mj-column-per-100", Width: "100%"},
	}, h.MediaQueries())

	h.AddStyle("a{}")
	h.AddStyle("b{}")
	h.AddStyle("a{}")
	h.AddStyle("")
	assert.Equal(t, []string{"a{}", "b{}"}, h.Styles())
}
