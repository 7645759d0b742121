package mjml

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
)

// An IncludeLoader resolves the path of an mj-include directive to markup
// text. Failures should be reported as *IncludeLoaderError.
type IncludeLoader interface {
	Resolve(path string) (string, error)
}

// NoopLoader resolves nothing. It is the default loader of the parser.
type NoopLoader struct{}

func (NoopLoader) Resolve(path string) (string, error) {
	return "", &IncludeLoaderError{Kind: IncludeNotFound, Path: path}
}

// MemoryLoader resolves paths from an in-memory map.
type MemoryLoader map[string]string

func (m MemoryLoader) Resolve(path string) (string, error) {
	if s, ok := m[path]; ok {
		return s, nil
	}
	// include paths written as "./x.mjml" and "x.mjml" are the same entry
	if s, ok := m[strings.TrimPrefix(path, "./")]; ok {
		return s, nil
	}
	return "", &IncludeLoaderError{Kind: IncludeNotFound, Path: path}
}

// FileLoader reads includes from the filesystem. Relative paths are taken
// from Root. When Allow is not empty, only paths matching one of its
// doublestar patterns (relative to Root, slash separated) can be read.
type FileLoader struct {
	Root  string
	Allow []string
}

func (l *FileLoader) Resolve(name string) (string, error) {
	full := name
	if !filepath.IsAbs(full) {
		full = filepath.Join(l.Root, name)
	}
	if len(l.Allow) > 0 && !l.allowed(full) {
		return "", &IncludeLoaderError{Kind: IncludeOther, Path: name, Err: errors.New("path not allowed")}
	}
	buf, err := os.ReadFile(full)
	if errors.Is(err, fs.ErrNotExist) {
		return "", &IncludeLoaderError{Kind: IncludeNotFound, Path: name, Err: err}
	}
	if err != nil {
		return "", &IncludeLoaderError{Kind: IncludeIO, Path: name, Err: err}
	}
	return string(buf), nil
}

func (l *FileLoader) allowed(full string) bool {
	rel := full
	if l.Root != "" {
		r, err := filepath.Rel(l.Root, full)
		if err != nil || strings.HasPrefix(r, "..") {
			return false
		}
		rel = r
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range l.Allow {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// HTTPLoader fetches includes over HTTP(S). When Allow is not empty, only
// URLs starting with one of its prefixes are fetched.
type HTTPLoader struct {
	Client *http.Client
	Allow  []string
}

// NewHTTPLoader returns an HTTPLoader using a client with the given timeout.
func NewHTTPLoader(timeout time.Duration, allow ...string) *HTTPLoader {
	return &HTTPLoader{Client: &http.Client{Timeout: timeout}, Allow: allow}
}

func (l *HTTPLoader) Resolve(rawURL string) (string, error) {
	if len(l.Allow) > 0 {
		ok := false
		for _, prefix := range l.Allow {
			if strings.HasPrefix(rawURL, prefix) {
				ok = true
				break
			}
		}
		if !ok {
			return "", &IncludeLoaderError{Kind: IncludeOther, Path: rawURL, Err: errors.New("url not allowed")}
		}
	}
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Get(rawURL)
	if err != nil {
		return "", &IncludeLoaderError{Kind: IncludeIO, Path: rawURL, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", &IncludeLoaderError{Kind: IncludeNotFound, Path: rawURL}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return "", &IncludeLoaderError{Kind: IncludeOther, Path: rawURL, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &IncludeLoaderError{Kind: IncludeIO, Path: rawURL, Err: err}
	}
	return string(body), nil
}

type prefixLoader struct {
	prefix string
	loader IncludeLoader
}

// MultiLoader dispatches each path to the first loader registered with a
// matching prefix, falling back to Fallback (NotFound when nil).
type MultiLoader struct {
	loaders  []prefixLoader
	Fallback IncludeLoader
}

// NewMultiLoader returns an empty MultiLoader.
func NewMultiLoader(fallback IncludeLoader) *MultiLoader {
	return &MultiLoader{Fallback: fallback}
}

// Add registers a loader for the paths starting with prefix.
func (m *MultiLoader) Add(prefix string, l IncludeLoader) *MultiLoader {
	m.loaders = append(m.loaders, prefixLoader{prefix: prefix, loader: l})
	return m
}

func (m *MultiLoader) Resolve(p string) (string, error) {
	for _, pl := range m.loaders {
		if strings.HasPrefix(p, pl.prefix) {
			return pl.loader.Resolve(p)
		}
	}
	if m.Fallback != nil {
		return m.Fallback.Resolve(p)
	}
	return "", &IncludeLoaderError{Kind: IncludeNotFound, Path: p}
}

// includePath resolves an include path written in file from.
func includePath(from, p string) string {
	if strings.Contains(p, "://") {
		return p
	}
	if strings.Contains(from, "://") {
		base, err := url.Parse(from)
		if err != nil {
			return p
		}
		ref, err := url.Parse(p)
		if err != nil {
			return p
		}
		return base.ResolveReference(ref).String()
	}
	if from == "" || filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(filepath.Dir(from), p)
}
