// Package config reads the settings of the mjml command from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/adrg/xdg"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/hesusruiz/mjml/mjml"
)

// DefaultPath is the location of the config file under the XDG config
// directories.
const DefaultPath = "mjml/config.yaml"

// Include restricts where mj-include can read from.
type Include struct {
	// Root is the directory relative file includes are read from when
	// the including document has no file name.
	Root string `yaml:"root"`
	// Allow holds doublestar patterns of the readable files.
	Allow []string `yaml:"allow"`
	// HTTP enables remote includes for the URLs with one of these prefixes.
	HTTP    []string      `yaml:"http"`
	Timeout time.Duration `yaml:"timeout"`
}

type Config struct {
	KeepComments     *bool             `yaml:"keepComments"`
	Fonts            map[string]string `yaml:"fonts"`
	SocialIconOrigin string            `yaml:"socialIconOrigin"`
	// CodeStyle is the chroma style used to print HTML to a terminal.
	CodeStyle       string  `yaml:"codeStyle"`
	OutputExtension string  `yaml:"outputExtension"`
	Include         Include `yaml:"include"`
}

// Default returns the configuration used without config file.
func Default() *Config {
	keep := true
	return &Config{
		KeepComments:     &keep,
		SocialIconOrigin: mjml.DefaultSocialIconOrigin,
		CodeStyle:        "monokai",
		OutputExtension:  ".html",
		Include:          Include{Timeout: 10 * time.Second},
	}
}

// Load reads the config file at path. An empty path searches DefaultPath in
// the XDG config directories, and not finding it there is not an error.
func Load(path string, log *zap.Logger) (*Config, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if path == "" {
		found, err := xdg.SearchConfigFile(DefaultPath)
		if err != nil {
			log.Debug("no config file", zap.String("search", DefaultPath))
			return Default(), nil
		}
		path = found
	}

	buf, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config file %s not found", path)
	}
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(buf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Debug("loaded config", zap.String("file", path))
	return cfg, nil
}

// Parse reads a configuration from YAML. Missing settings keep their
// default value.
func Parse(buf []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(buf, cfg); err != nil {
		return nil, err
	}
	if cfg.OutputExtension == "" {
		cfg.OutputExtension = ".html"
	}
	return cfg, nil
}

// RenderOptions converts the configuration into render options. Fonts of
// the file are added to the default ones.
func (c *Config) RenderOptions() mjml.RenderOptions {
	opts := mjml.DefaultRenderOptions()
	if c.KeepComments != nil {
		opts.KeepComments = *c.KeepComments
	}
	if c.SocialIconOrigin != "" {
		opts.SocialIconOrigin = c.SocialIconOrigin
	}
	if len(c.Fonts) > 0 {
		fonts := make(map[string]string, len(mjml.DefaultFonts)+len(c.Fonts))
		for name, href := range mjml.DefaultFonts {
			fonts[name] = href
		}
		for name, href := range c.Fonts {
			fonts[name] = href
		}
		opts.Fonts = fonts
	}
	return opts
}

// Loader builds the include loader: files, plus HTTP(S) when enabled.
func (c *Config) Loader() mjml.IncludeLoader {
	files := &mjml.FileLoader{Root: c.Include.Root, Allow: c.Include.Allow}
	if len(c.Include.HTTP) == 0 {
		return files
	}
	remote := mjml.NewHTTPLoader(c.Include.Timeout, c.Include.HTTP...)
	return mjml.NewMultiLoader(files).
		Add("http://", remote).
		Add("https://", remote)
}
