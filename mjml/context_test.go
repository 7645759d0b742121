package mjml

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func layout(t *testing.T, src string) *Document {
	t.Helper()
	doc, err := ParseString(src)
	require.NoError(t, err)
	doc.Layout()
	return doc
}

func TestEqualSplit(t *testing.T) {
	for n := 1; n <= 7; n++ {
		columns := strings.Repeat("<mj-column></mj-column>text<!-- c -->", n)
		doc := layout(t, "<mjml><mj-body><mj-section>"+columns+"<mj-raw><p/></mj-raw></mj-section></mj-body></mjml>")

		section := doc.Body.FirstChild
		var sum, pixels float64
		count := 0
		for _, c := range section.Children() {
			if c.Type != ColumnNode {
				continue
			}
			assert.Equal(t, 2*n+1, c.Context.RawSiblings)
			w, unit := c.nominalWidth()
			require.Equal(t, "%", unit)
			sum += w
			pixels += c.pixelWidth()
			count++
		}
		assert.Equal(t, n, count)
		assert.InDelta(t, 100, sum, 1e-9, "%d columns", n)
		assert.InDelta(t, 600, pixels, 1e-9, "%d columns", n)
	}
}

func TestContainerWidths(t *testing.T) {
	doc := layout(t, `<mjml><mj-body width="500px">
  <mj-section padding="0 10px" border-left="5px solid red">
    <mj-column width="200px" padding="0 5px" border="1px solid #000">
      <mj-image src="a.png" />
    </mj-column>
    <mj-column></mj-column>
  </mj-section>
</mj-body></mjml>`)

	section := doc.Body.FirstChild
	assert.Equal(t, 500.0, section.Context.ContainerWidth)

	first := section.FirstChild
	assert.Equal(t, 475.0, first.Context.ContainerWidth)
	assert.Equal(t, 2, first.Context.NonRawSiblings())
	assert.Equal(t, 200.0, first.pixelWidth())

	image := first.FirstChild
	assert.Equal(t, 188.0, image.Context.ContainerWidth)

	second := first.NextSibling
	assert.Equal(t, 237.5, second.pixelWidth())
}

func TestColumnClass(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		wantClass string
		wantWidth string
	}{
		{"single", `<mj-column></mj-column>`, "mj-column-per-100", "100%"},
		{"three", `<mj-column></mj-column><mj-column></mj-column><mj-column></mj-column>`, "mj-column-per-33-333333333333336", "33.333333333333336%"},
		{"pixels", `<mj-column width="150px"></mj-column>`, "mj-column-px-150", "150px"},
		{"decimal percent", `<mj-column width="33.5%"></mj-column>`, "mj-column-per-33-5", "33.5%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := layout(t, "<mjml><mj-body><mj-section>"+tt.src+"</mj-section></mj-body></mjml>")
			class, width := doc.Body.FirstChild.FirstChild.columnClass()
			assert.Equal(t, tt.wantClass, class)
			assert.Equal(t, tt.wantWidth, width)
		})
	}
}

func TestMobileWidth(t *testing.T) {
	doc := layout(t, `<mjml><mj-body>
  <mj-section><mj-column></mj-column></mj-section>
  <mj-section>
    <mj-group>
      <mj-column></mj-column>
      <mj-column width="25%"></mj-column>
      <mj-column width="150px"></mj-column>
    </mj-group>
  </mj-section>
</mj-body></mjml>`)

	sections := doc.Body.Children()
	assert.Equal(t, "100%", sections[0].FirstChild.mobileWidth())

	group := sections[1].FirstChild
	columns := group.Children()
	assert.Equal(t, 600.0, group.pixelWidth())
	assert.Equal(t, "33%", columns[0].mobileWidth())
	assert.Equal(t, "25%", columns[1].mobileWidth())
	assert.Equal(t, "25%", columns[2].mobileWidth())
}

func TestLayoutRunsOnce(t *testing.T) {
	doc := layout(t, helloWorld)
	ctx := doc.Body.FirstChild.Context
	doc.Layout()
	assert.Same(t, ctx, doc.Body.FirstChild.Context)
}
