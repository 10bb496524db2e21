package diagnostic

import (
	"errors"
	"fmt"
	"strings"
)

//go:generate go tool stringer -type=Kind -output=kind_string.go

// Kind classifies a conversion failure.
type Kind int

const (
	_ Kind = iota // zero value is not a valid kind

	FileNotFound
	UnsupportedFormat
	ParseError
	MissingJobDefinition
	MalformedStep
	WriteError
	ReadError
)

// Error implements error so that a bare Kind can be used as an errors.Is target.
func (k Kind) Error() string {
	return k.String()
}

// Error is a single conversion failure.
type Error struct {
	// Kind of the failure.
	Kind Kind
	// Path is the file involved (if any).
	Path string
	// Field locates the offending key inside the pipeline, e.g. "jobs[1].steps[0].script".
	Field string
	// Message is the human-readable description.
	Message string
	// Err is the underlying cause (if any).
	Err error
}

// New creates an Error of the given kind with a formatted message.
func New(kind Kind, field, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates an Error of the given kind around a cause.
func Wrap(kind Kind, path string, err error) *Error {
	return &Error{
		Kind: kind,
		Path: path,
		Err:  err,
	}
}

// Error returns "<Kind>: <path>: <field>: <message>", omitting empty parts.
func (e *Error) Error() string {
	parts := []string{e.Kind.String()}

	if e.Path != "" {
		parts = append(parts, e.Path)
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	msg := e.Message
	if e.Err != nil {
		if msg == "" {
			msg = e.Err.Error()
		} else {
			msg += ": " + e.Err.Error()
		}
	}

	if msg != "" {
		parts = append(parts, msg)
	}

	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the Kind of e.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// KindOf returns the Kind of the first *Error found in err's tree, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return 0
}

// List accumulates errors so that every problem in an input is reported at once.
type List struct {
	errs []error
}

// Add appends an error of the given kind.
func (l *List) Add(kind Kind, field, format string, args ...any) {
	l.errs = append(l.errs, New(kind, field, format, args...))
}

// Append appends an existing error; nil is ignored.
func (l *List) Append(err error) {
	if err != nil {
		l.errs = append(l.errs, err)
	}
}

// Len returns the number of collected errors.
func (l *List) Len() int {
	return len(l.errs)
}

// Err returns nil if nothing was collected, the single error if only one was,
// and an errors.Join of all of them otherwise.
func (l *List) Err() error {
	switch len(l.errs) {
	case 0:
		return nil
	case 1:
		return l.errs[0]
	default:
		return errors.Join(l.errs...)
	}
}

// WithPath sets Path on every *Error in err's tree that does not have one yet
// and returns err.
func WithPath(err error, path string) error {
	switch e := err.(type) {
	case nil:
		return nil
	case *Error:
		if e.Path == "" {
			e.Path = path
		}
	case interface{ Unwrap() []error }:
		for _, inner := range e.Unwrap() {
			WithPath(inner, path)
		}
	case interface{ Unwrap() error }:
		WithPath(e.Unwrap(), path)
	}

	return err
}

// Flatten returns the errors joined in err (one level of errors.Join), or
// err itself when it is not a join.
func Flatten(err error) []error {
	if err == nil {
		return nil
	}

	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}

	return []error{err}
}
