package azdo

import (
	"gopkg.in/yaml.v3"

	"azdo-actions-converter/internal/diagnostic"
)

// Decode decodes a generic tree (as returned by LoadFile or Parse) into a Pipeline.
// Structural mismatches such as a mapping where a name is expected are ParseErrors.
func Decode(doc *yaml.Node) (*Pipeline, error) {
	root := doc
	if root != nil && root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			root = nil
		} else {
			root = root.Content[0]
		}
	}

	if root == nil {
		return nil, diagnostic.New(diagnostic.ParseError, "", "empty document")
	}

	var p Pipeline

	err := root.Decode(&p)
	if err != nil {
		return nil, diagnostic.Wrap(diagnostic.ParseError, "", err)
	}

	return &p, nil
}
