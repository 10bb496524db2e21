package azdo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// parseJSON converts JSON text into a yaml node tree, keeping object key
// order, number spelling and line numbers.
func parseJSON(data []byte) (*yaml.Node, error) {
	p := &jsonParser{
		dec:   json.NewDecoder(bytes.NewReader(data)),
		lines: lineStarts(data),
	}
	p.dec.UseNumber()

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("empty document")
	}

	root, err := p.value()
	if err != nil {
		return nil, p.locate(err)
	}

	if _, err := p.dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("line %d: unexpected data after top-level value", p.line())
	}

	return root, nil
}

type jsonParser struct {
	dec   *json.Decoder
	lines []int64
}

func (p *jsonParser) value() (*yaml.Node, error) {
	tok, err := p.dec.Token()
	if err != nil {
		return nil, err
	}

	line := p.line()

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return p.object(line)
		case '[':
			return p.array(line)
		default:
			return nil, fmt.Errorf("line %d: unexpected %q", line, v)
		}

	case string:
		return scalarNode("!!str", v, line), nil

	case json.Number:
		// integers of any size are !!int; the text is kept as written
		tag := "!!int"
		if strings.ContainsAny(v.String(), ".eE") {
			tag = "!!float"
		}

		return scalarNode(tag, v.String(), line), nil

	case bool:
		return scalarNode("!!bool", strconv.FormatBool(v), line), nil

	case nil:
		return scalarNode("!!null", "null", line), nil

	default:
		return nil, fmt.Errorf("line %d: unexpected token %v", line, tok)
	}
}

// object reads the members of an object. A repeated key keeps its first
// position and takes the last value, as encoding/json does.
func (p *jsonParser) object(line int) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Line: line}
	seen := map[string]int{}

	for p.dec.More() {
		tok, err := p.dec.Token()
		if err != nil {
			return nil, err
		}

		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("line %d: object key must be a string", p.line())
		}

		keyNode := scalarNode("!!str", key, p.line())

		val, err := p.value()
		if err != nil {
			return nil, err
		}

		if i, ok := seen[key]; ok {
			node.Content[i+1] = val
			continue
		}

		seen[key] = len(node.Content)
		node.Content = append(node.Content, keyNode, val)
	}

	// closing '}'
	if _, err := p.dec.Token(); err != nil {
		return nil, err
	}

	return node, nil
}

func (p *jsonParser) array(line int) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Line: line}

	for p.dec.More() {
		val, err := p.value()
		if err != nil {
			return nil, err
		}

		node.Content = append(node.Content, val)
	}

	// closing ']'
	if _, err := p.dec.Token(); err != nil {
		return nil, err
	}

	return node, nil
}

// line returns the 1-based line of the last byte the decoder consumed.
func (p *jsonParser) line() int {
	return lineOf(p.lines, p.dec.InputOffset()-1)
}

// locate prefixes syntax errors with the line they occurred on.
func (p *jsonParser) locate(err error) error {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return fmt.Errorf("line %d: %w", lineOf(p.lines, syntaxErr.Offset-1), err)
	}

	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("line %d: unexpected end of input", p.line())
	}

	return err
}

func scalarNode(tag, value string, line int) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value, Line: line}
}

// lineStarts returns the byte offset at which each line begins.
func lineStarts(data []byte) []int64 {
	starts := []int64{0}

	for i, b := range data {
		if b == '\n' {
			starts = append(starts, int64(i+1))
		}
	}

	return starts
}

func lineOf(starts []int64, offset int64) int {
	if offset < 0 {
		return 1
	}

	// first line start strictly greater than offset
	i := sort.Search(len(starts), func(i int) bool { return starts[i] > offset })

	return i
}
