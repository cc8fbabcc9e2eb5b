package load

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/turner-townsend/genyrator"
)

// Extensions lists the file extensions ReadDir picks up.
var Extensions = []string{".yaml", ".yml", ".json"}

// ReadFile loads a schema file. The format is picked by the file extension:
// ".json" is decoded as JSON, everything else as YAML. Unknown keys are
// rejected in both formats.
func ReadFile(path string) (*Schema, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	s, err := Decode(buf, strings.EqualFold(filepath.Ext(path), ".json"))
	if err != nil {
		return nil, fmt.Errorf("load: %s: %w", path, err)
	}
	s.Pos = path
	return s, nil
}

// Decode decodes a single schema document.
func Decode(buf []byte, isJSON bool) (*Schema, error) {
	s := &Schema{}
	if isJSON {
		dec := json.NewDecoder(bytes.NewReader(buf))
		dec.DisallowUnknownFields()
		if err := dec.Decode(s); err != nil {
			return nil, err
		}
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(buf))
		dec.KnownFields(true)
		if err := dec.Decode(s); err != nil {
			return nil, err
		}
	}
	if err := s.check(); err != nil {
		return nil, err
	}
	return s, nil
}

// ReadDir loads every schema file in dir, sorted by file name. Errors of
// individual files are collected and returned together.
func ReadDir(dir string) ([]*Schema, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	var (
		schemas []*Schema
		errs    []error
	)
	for _, e := range entries {
		if e.IsDir() || !slices.Contains(Extensions, strings.ToLower(filepath.Ext(e.Name()))) {
			continue
		}
		s, err := ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		schemas = append(schemas, s)
	}
	if err := genyrator.NewAggregateError(errs...); err != nil {
		return nil, err
	}
	if len(schemas) == 0 {
		return nil, fmt.Errorf("load: no schema files in %s", dir)
	}
	return schemas, nil
}

// Write encodes the schema as YAML into path.
func Write(path string, s *Schema) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("load: encode %s: %w", s.Name, err)
	}
	if err := enc.Close(); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
