package timeline

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidDocument marks a project document that failed to decode or
// failed structural validation after decoding. It is distinguishable from
// runtime logic errors with errors.Is.
var ErrInvalidDocument = errors.New("invalid project document")

// EncodeProject serializes the project tree to the JSON project file
// format. Field names are stable and timestamps are RFC 3339.
func EncodeProject(p *Project) ([]byte, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode project: %w", err)
	}
	return data, nil
}

// DecodeProject parses and validates a project document. Malformed JSON
// and invariant violations both surface wrapped in ErrInvalidDocument.
func DecodeProject(data []byte) (*Project, error) {
	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if p.ID == "" {
		return nil, fmt.Errorf("%w: missing project id", ErrInvalidDocument)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return &p, nil
}
