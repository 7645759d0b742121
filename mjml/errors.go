package mjml

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tdewolff/parse/v2"
)

// Kinds of ParseError, to be used with errors.Is.
var (
	ErrUnexpectedElement   = errors.New("unexpected element")
	ErrUnexpectedAttribute = errors.New("unexpected attribute")
	ErrUnexpectedText      = errors.New("unexpected text")
	ErrUnexpectedComment   = errors.New("unexpected comment")
	ErrMissingAttribute    = errors.New("missing attribute")
	ErrMalformedMarkup     = errors.New("malformed markup")
	ErrIncludeLoader       = errors.New("include loader error")
)

// ErrorNoContent is returned when the input is empty or has no root element.
var ErrorNoContent = errors.New("no content")

// A ParseError is fatal to the whole document. Kind is one of the Err*
// sentinels above; Err carries the wrapped cause, if any.
type ParseError struct {
	Kind     error
	Filename string
	Offset   int
	Line     int
	Column   int
	Name     string
	Msg      string
	Err      error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	if e.Filename != "" {
		b.WriteString(e.Filename)
	} else {
		b.WriteString("<input>")
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, ":%d:%d", e.Line, e.Column)
	} else {
		fmt.Fprintf(&b, ":@%d", e.Offset)
	}
	b.WriteString(": ")
	b.WriteString(e.Kind.Error())
	if e.Name != "" {
		b.WriteString(" ")
		b.WriteString(e.Name)
	}
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Is reports whether target is the kind of this error.
func (e *ParseError) Is(target error) bool {
	return target == e.Kind
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// locate fills in the file name and line/column of e from the source it
// was produced from. Errors that already carry a position are left alone,
// so errors raised inside included files keep pointing into them.
func (e *ParseError) locate(filename, src string) *ParseError {
	if e.Line > 0 {
		return e
	}
	e.Filename = filename
	e.Line, e.Column, _ = parse.Position(strings.NewReader(src), e.Offset)
	return e
}

// IncludeErrorKind classifies the failures of an IncludeLoader.
type IncludeErrorKind int

const (
	IncludeNotFound IncludeErrorKind = iota
	IncludeIO
	IncludeOther
)

func (k IncludeErrorKind) String() string {
	switch k {
	case IncludeNotFound:
		return "not found"
	case IncludeIO:
		return "io"
	}
	return "other"
}

// An IncludeLoaderError is returned by IncludeLoader implementations. The
// parser wraps it in a ParseError of kind ErrIncludeLoader carrying the
// position of the mj-include directive.
type IncludeLoaderError struct {
	Kind IncludeErrorKind
	Path string
	Err  error
}

func (e *IncludeLoaderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("include %s: %s: %v", e.Path, e.Kind, e.Err)
	}
	return fmt.Sprintf("include %s: %s", e.Path, e.Kind)
}

func (e *IncludeLoaderError) Unwrap() error {
	return e.Err
}

// A RenderError reports a failure while rendering a node. Given a
// successfully parsed tree it only happens when parse-time state is
// missing.
type RenderError struct {
	Tag    string
	Offset int
	Msg    string
	Err    error
}

func (e *RenderError) Error() string {
	msg := fmt.Sprintf("rendering <%s> at offset %d", e.Tag, e.Offset)
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
