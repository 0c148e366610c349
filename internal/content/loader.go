package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrNoConverters reports a document that parsed as JSON but has no
// top-level "converters" array. This is a fatal container condition:
// callers must not attempt per-record validation when they see it.
var ErrNoConverters = errors.New("converters array not found in document")

// Load reads and decodes a site document into the typed model.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", path, err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse document %s: %w", path, err)
	}

	return &doc, nil
}

// LoadRaw reads a site document and returns its converter records as
// loosely-typed maps, preserving input order. Unlike Load, it does not
// assume any record shape beyond "element of the converters array";
// the validator probes everything else itself.
func LoadRaw(path string) ([]map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", path, err)
	}

	return DecodeRaw(data)
}

// DecodeRaw decodes document bytes into raw converter records.
// Returns ErrNoConverters when the top-level converters array is
// missing or is not an array.
func DecodeRaw(data []byte) ([]map[string]any, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	raw, ok := top["converters"]
	if !ok {
		return nil, ErrNoConverters
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil, ErrNoConverters
	}

	records := make([]map[string]any, 0, len(elements))
	for i, element := range elements {
		var record map[string]any
		if err := json.Unmarshal(element, &record); err != nil {
			return nil, fmt.Errorf("converter %d is not an object: %w", i, err)
		}
		records = append(records, record)
	}

	return records, nil
}
