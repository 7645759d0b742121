package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hesusruiz/mjml/mjml"
)

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
keepComments: false
socialIconOrigin: https://cdn.example.com/icons/
fonts:
  Inter: https://fonts.example.com/inter.css
include:
  allow: ["partials/**/*.mjml"]
  http: ["https://templates.example.com/"]
  timeout: 3s
`))
	require.NoError(t, err)

	require.NotNil(t, cfg.KeepComments)
	assert.False(t, *cfg.KeepComments)
	assert.Equal(t, "monokai", cfg.CodeStyle)
	assert.Equal(t, ".html", cfg.OutputExtension)
	assert.Equal(t, 3*time.Second, cfg.Include.Timeout)

	opts := cfg.RenderOptions()
	assert.False(t, opts.KeepComments)
	assert.Equal(t, "https://cdn.example.com/icons/", opts.SocialIconOrigin)
	assert.Equal(t, "https://fonts.example.com/inter.css", opts.Fonts["Inter"])
	assert.Equal(t, mjml.DefaultFonts["Roboto"], opts.Fonts["Roboto"])

	assert.IsType(t, &mjml.MultiLoader{}, cfg.Loader())
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse([]byte("keepComments: [1, 2"))
	assert.Error(t, err)
}

func TestDefaults(t *testing.T) {
	opts := Default().RenderOptions()
	assert.True(t, opts.KeepComments)
	assert.Equal(t, mjml.DefaultSocialIconOrigin, opts.SocialIconOrigin)
	assert.IsType(t, &mjml.FileLoader{}, Default().Loader())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("codeStyle: github\n"), 0o644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "github", cfg.CodeStyle)

	_, err = Load(filepath.Join(dir, "missing.yaml"), nil)
	assert.Error(t, err)
}
