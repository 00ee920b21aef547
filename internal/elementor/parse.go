// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package elementor

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrMalformedTemplate means the stored template is not valid JSON.
	ErrMalformedTemplate = errors.New("elementor: malformed template JSON")

	// ErrUnrecognizedFormat means the JSON is valid but is neither a bare
	// element array nor an export envelope with a content array.
	ErrUnrecognizedFormat = errors.New("elementor: unrecognized export format")
)

// Parse normalizes a stored Elementor template into its top-level
// element list. Two layouts are accepted: the bare element array that
// WordPress stores in _elementor_data, and the full export envelope
// {"content": [...], ...} produced by the template library.
func Parse(raw []byte) ([]*Node, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrMalformedTemplate)
	}

	switch trimmed[0] {
	case '[':
		var nodes []*Node
		if err := json.Unmarshal(trimmed, &nodes); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedTemplate, err)
		}
		return nodes, nil
	case '{':
		var envelope struct {
			Content json.RawMessage `json:"content"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedTemplate, err)
		}
		content := bytes.TrimSpace(envelope.Content)
		if len(content) == 0 || content[0] != '[' {
			return nil, fmt.Errorf("%w: object without content array", ErrUnrecognizedFormat)
		}
		var nodes []*Node
		if err := json.Unmarshal(content, &nodes); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedTemplate, err)
		}
		return nodes, nil
	default:
		if !json.Valid(trimmed) {
			return nil, fmt.Errorf("%w: not valid JSON", ErrMalformedTemplate)
		}
		return nil, fmt.Errorf("%w: top-level value is a scalar", ErrUnrecognizedFormat)
	}
}

// Serialize renders an element list back to the compact JSON string
// WordPress expects in the _elementor_data meta field.
func Serialize(nodes []*Node) (string, error) {
	data, err := json.Marshal(nodes)
	if err != nil {
		return "", fmt.Errorf("serialize elementor tree: %w", err)
	}
	return string(data), nil
}
