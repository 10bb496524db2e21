package azdo

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"azdo-actions-converter/internal/diagnostic"
)

// Format is the encoding of a pipeline file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath selects the format from the file extension, case-insensitively.
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		e := diagnostic.New(diagnostic.UnsupportedFormat, "",
			"extension %q is not one of .json, .yaml, .yml", ext)
		e.Path = path

		return "", e
	}
}

// LoadFile reads a pipeline file and parses it into a generic tree.
// The extension is checked before the file is touched.
func LoadFile(path string) (*yaml.Node, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		// the path is already part of the diagnostic
		cause := err

		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			cause = pathErr.Err
		}

		if errors.Is(err, fs.ErrNotExist) {
			return nil, diagnostic.Wrap(diagnostic.FileNotFound, path, cause)
		}

		return nil, diagnostic.Wrap(diagnostic.ReadError, path, cause)
	}

	doc, err := Parse(data, format)
	if err != nil {
		return nil, diagnostic.WithPath(err, path)
	}

	return doc, nil
}

// Parse parses data in the given format into a document node.
func Parse(data []byte, format Format) (*yaml.Node, error) {
	switch format {
	case FormatJSON:
		root, err := parseJSON(jsonc.ToJSON(data))
		if err != nil {
			return nil, diagnostic.Wrap(diagnostic.ParseError, "", fmt.Errorf("invalid JSON: %w", err))
		}

		return &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}, nil

	case FormatYAML:
		var doc yaml.Node

		err := yaml.Unmarshal(data, &doc)
		if err != nil {
			return nil, diagnostic.Wrap(diagnostic.ParseError, "", fmt.Errorf("invalid YAML: %w", err))
		}

		if doc.Kind == 0 || len(doc.Content) == 0 {
			return nil, diagnostic.New(diagnostic.ParseError, "", "empty document")
		}

		return &doc, nil

	default:
		return nil, diagnostic.New(diagnostic.UnsupportedFormat, "", "unknown format %q", format)
	}
}
