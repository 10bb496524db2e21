package workflow

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"azdo-actions-converter/internal/diagnostic"
)

const (
	filePerm = 0o644
	indent   = 2
)

// Marshal serializes a workflow to block-style YAML.
func Marshal(w *Workflow) ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)

	err := enc.Encode(w)
	if err != nil {
		return nil, fmt.Errorf("encoding workflow: %w", err)
	}

	err = enc.Close()
	if err != nil {
		return nil, fmt.Errorf("encoding workflow: %w", err)
	}

	return buf.Bytes(), nil
}

// Unmarshal parses workflow YAML, e.g. a file written by WriteFile.
func Unmarshal(data []byte) (*Workflow, error) {
	var w Workflow

	err := yaml.Unmarshal(data, &w)
	if err != nil {
		return nil, fmt.Errorf("parsing workflow: %w", err)
	}

	return &w, nil
}

// WriteFile serializes w and replaces path with the result. The content is
// written to a temporary file in the same directory and renamed into place,
// so path either holds the complete workflow or is left untouched.
func WriteFile(w *Workflow, path string) error {
	data, err := Marshal(w)
	if err != nil {
		return diagnostic.Wrap(diagnostic.WriteError, path, err)
	}

	err = writeAtomic(path, data)
	if err != nil {
		return diagnostic.Wrap(diagnostic.WriteError, path, err)
	}

	return nil
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}

	if err := tmp.Chmod(filePerm); err != nil {
		tmp.Close()
		return fmt.Errorf("setting file mode: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}

	success = true

	return nil
}
