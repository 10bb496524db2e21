package diagnostic

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{FileNotFound, "FileNotFound"},
		{UnsupportedFormat, "UnsupportedFormat"},
		{ParseError, "ParseError"},
		{MissingJobDefinition, "MissingJobDefinition"},
		{MalformedStep, "MalformedStep"},
		{WriteError, "WriteError"},
		{ReadError, "ReadError"},
		{Kind(0), "Kind(0)"},
		{Kind(42), "Kind(42)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.kind.String())
		})
	}
}

func TestErrorMessage(t *testing.T) {
	err := New(MalformedStep, "phases[0].steps[1]", "missing %q", "script")
	assert.Equal(t, `MalformedStep: phases[0].steps[1]: missing "script"`, err.Error())

	err.Path = "azure-pipelines.yml"
	assert.Equal(t, `MalformedStep: azure-pipelines.yml: phases[0].steps[1]: missing "script"`, err.Error())

	wrapped := Wrap(FileNotFound, "missing.json", os.ErrNotExist)
	assert.Equal(t, "FileNotFound: missing.json: file does not exist", wrapped.Error())
}

func TestErrorsIs(t *testing.T) {
	base := Wrap(FileNotFound, "missing.json", os.ErrNotExist)
	wrapped := fmt.Errorf("converting: %w", base)

	assert.ErrorIs(t, wrapped, FileNotFound)
	assert.ErrorIs(t, wrapped, os.ErrNotExist)
	assert.NotErrorIs(t, wrapped, ParseError)
	assert.Equal(t, FileNotFound, KindOf(wrapped))
	assert.Equal(t, Kind(0), KindOf(errors.New("plain")))
}

func TestList(t *testing.T) {
	var l List
	require.NoError(t, l.Err())

	l.Add(MalformedStep, "jobs[0].steps[0]", "missing %q", "displayName")
	require.Equal(t, 1, l.Len())

	var single *Error
	require.ErrorAs(t, l.Err(), &single)
	assert.Equal(t, "jobs[0].steps[0]", single.Field)

	l.Append(nil)
	l.Append(New(MissingJobDefinition, "", "no jobs"))
	require.Equal(t, 2, l.Len())

	err := l.Err()
	assert.ErrorIs(t, err, MalformedStep)
	assert.ErrorIs(t, err, MissingJobDefinition)
	assert.Contains(t, err.Error(), "displayName")
	assert.Contains(t, err.Error(), "no jobs")
}

func TestWithPath(t *testing.T) {
	var l List
	l.Add(MalformedStep, "jobs[0]", "missing steps")
	l.Append(&Error{Kind: ParseError, Path: "other.yml", Message: "bad"})
	l.Append(fmt.Errorf("context: %w", New(MissingJobDefinition, "", "no jobs")))

	err := WithPath(l.Err(), "pipeline.yml")

	parts := Flatten(err)
	require.Len(t, parts, 3)

	var e *Error
	require.ErrorAs(t, parts[0], &e)
	assert.Equal(t, "pipeline.yml", e.Path)

	require.ErrorAs(t, parts[1], &e)
	assert.Equal(t, "other.yml", e.Path)

	require.ErrorAs(t, parts[2], &e)
	assert.Equal(t, "pipeline.yml", e.Path)

	assert.NoError(t, WithPath(nil, "x"))
}

func TestFlatten(t *testing.T) {
	assert.Nil(t, Flatten(nil))

	single := New(WriteError, "", "disk full")
	assert.Equal(t, []error{single}, Flatten(single))

	a, b := errors.New("a"), errors.New("b")
	assert.Equal(t, []error{a, b}, Flatten(errors.Join(a, b)))
}
