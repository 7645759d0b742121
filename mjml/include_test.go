package mjml

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncludeMjml(t *testing.T) {
	loader := MemoryLoader{
		"header.mjml": `<mj-section><mj-column><mj-text>Header</mj-text></mj-column></mj-section>`,
		"full.mjml":   `<mjml><mj-body><mj-section></mj-section><mj-section></mj-section></mj-body></mjml>`,
	}
	doc, err := ParseString(`<mjml><mj-body>
  <mj-include path="./header.mjml" />
  <mj-include path="full.mjml"></mj-include>
</mj-body></mjml>`, WithLoader(loader))
	require.NoError(t, err)

	sections := doc.Body.Children()
	require.Len(t, sections, 3)
	for _, s := range sections {
		assert.Equal(t, SectionNode, s.Type)
	}
	assert.Equal(t, "header.mjml", sections[0].File)
	assert.Equal(t, "Header", sections[0].FirstChild.FirstChild.Content)
}

func TestIncludeCSSAndHTML(t *testing.T) {
	loader := MemoryLoader{
		"style.css":   `.x { color: red }`,
		"banner.html": `<div class="banner"></div>`,
	}
	doc, err := ParseString(`<mjml><mj-body>
  <mj-include path="style.css" type="css" css-inline="inline" />
  <mj-include path="banner.html" type="html" />
</mj-body></mjml>`, WithLoader(loader))
	require.NoError(t, err)

	raw := doc.Body.FirstChild
	require.Equal(t, RawNode, raw.Type)
	assert.Equal(t, `<div class="banner"></div>`, raw.Content)

	require.NotNil(t, doc.Head)
	style := doc.Head.FindChild(StyleNode)
	require.NotNil(t, style)
	assert.Equal(t, "inline", style.Get("inline"))
	assert.Equal(t, `.x { color: red }`, style.Content)
}

func TestIncludeIllegalRootFailsLikeInline(t *testing.T) {
	fragment := `<mj-text>oops</mj-text>`

	_, inlineErr := ParseString(`<mjml><mj-body>` + fragment + `</mj-body></mjml>`)
	_, includeErr := ParseString(`<mjml><mj-body><mj-include path="bad.mjml" /></mj-body></mjml>`,
		WithLoader(MemoryLoader{"bad.mjml": fragment}))

	require.Error(t, inlineErr)
	require.Error(t, includeErr)

	var a, b *ParseError
	require.True(t, errors.As(inlineErr, &a))
	require.True(t, errors.As(includeErr, &b))
	assert.Equal(t, a.Kind, b.Kind)
	assert.Equal(t, a.Name, b.Name)
	assert.Equal(t, a.Msg, b.Msg)
	assert.True(t, errors.Is(includeErr, ErrUnexpectedElement))
	assert.Equal(t, "bad.mjml", b.Filename)
	assert.Equal(t, 1, b.Line)
	assert.Equal(t, 1, b.Column)
}

func TestIncludeErrors(t *testing.T) {
	tests := []struct {
		name     string
		loader   IncludeLoader
		src      string
		wantKind IncludeErrorKind
	}{
		{
			name:     "not found",
			loader:   MemoryLoader{},
			src:      `<mj-include path="nope.mjml" />`,
			wantKind: IncludeNotFound,
		},
		{
			name:     "no loader",
			loader:   NoopLoader{},
			src:      `<mj-include path="a.mjml" />`,
			wantKind: IncludeNotFound,
		},
		{
			name: "cycle",
			loader: MemoryLoader{
				"a.mjml": `<mj-include path="b.mjml" />`,
				"b.mjml": `<mj-include path="a.mjml" />`,
			},
			src:      `<mj-include path="a.mjml" />`,
			wantKind: IncludeOther,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(`<mjml><mj-body>`+tt.src+`</mj-body></mjml>`, WithLoader(tt.loader))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrIncludeLoader))

			var ile *IncludeLoaderError
			require.True(t, errors.As(err, &ile))
			assert.Equal(t, tt.wantKind, ile.Kind)
		})
	}
}

func TestFileLoader(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "partials"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "partials", "footer.mjml"),
		[]byte(`<mj-section><mj-column><mj-text>Footer</mj-text></mj-column></mj-section>`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "secret.txt"), []byte("x"), 0o644))
	main := filepath.Join(dir, "main.mjml")
	require.NoError(t, os.WriteFile(main,
		[]byte(`<mjml><mj-body><mj-include path="partials/footer.mjml" /></mj-body></mjml>`), 0o644))

	doc, err := ParseFile(main)
	require.NoError(t, err)
	assert.Equal(t, SectionNode, doc.Body.FirstChild.Type)

	l := &FileLoader{Root: dir, Allow: []string{"partials/**/*.mjml"}}
	_, err = l.Resolve("partials/footer.mjml")
	assert.NoError(t, err)

	_, err = l.Resolve("secret.txt")
	var ile *IncludeLoaderError
	require.True(t, errors.As(err, &ile))
	assert.Equal(t, IncludeOther, ile.Kind)

	_, err = l.Resolve("partials/missing.mjml")
	require.True(t, errors.As(err, &ile))
	assert.Equal(t, IncludeNotFound, ile.Kind)
}

func TestHTTPLoader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.mjml":
			w.Write([]byte(`<mj-section></mj-section>`))
		case "/boom.mjml":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	l := NewHTTPLoader(time.Second, srv.URL)
	got, err := l.Resolve(srv.URL + "/ok.mjml")
	require.NoError(t, err)
	assert.Equal(t, `<mj-section></mj-section>`, got)

	tests := []struct {
		url  string
		kind IncludeErrorKind
	}{
		{srv.URL + "/missing.mjml", IncludeNotFound},
		{srv.URL + "/boom.mjml", IncludeOther},
		{"https://elsewhere.example.com/x.mjml", IncludeOther},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			_, err := l.Resolve(tt.url)
			var ile *IncludeLoaderError
			require.True(t, errors.As(err, &ile))
			assert.Equal(t, tt.kind, ile.Kind)
		})
	}
}

func TestMultiLoader(t *testing.T) {
	m := NewMultiLoader(MemoryLoader{"local.mjml": "local"}).
		Add("mem:", MemoryLoader{"mem:a": "a"})

	got, err := m.Resolve("mem:a")
	require.NoError(t, err)
	assert.Equal(t, "a", got)

	got, err = m.Resolve("local.mjml")
	require.NoError(t, err)
	assert.Equal(t, "local", got)

	_, err = NewMultiLoader(nil).Resolve("x")
	var ile *IncludeLoaderError
	require.True(t, errors.As(err, &ile))
	assert.Equal(t, IncludeNotFound, ile.Kind)
}

func TestIncludePath(t *testing.T) {
	tests := []struct {
		from, p, want string
	}{
		{"", "a.mjml", "a.mjml"},
		{"dir/main.mjml", "parts/a.mjml", filepath.Join("dir", "parts", "a.mjml")},
		{"dir/main.mjml", "/abs/a.mjml", "/abs/a.mjml"},
		{"https://x.com/t/main.mjml", "a.mjml", "https://x.com/t/a.mjml"},
		{"dir/main.mjml", "https://x.com/a.mjml", "https://x.com/a.mjml"},
	}
	for _, tt := range tests {
		t.Run(tt.from+"+"+tt.p, func(t *testing.T) {
			assert.Equal(t, tt.want, includePath(tt.from, tt.p))
		})
	}
}
