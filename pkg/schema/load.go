package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load decodes a form definition from JSON or YAML. JSON is the canonical
// wire format; YAML is accepted for hand-authored definitions.
func Load(data []byte) (Form, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Form{}, fmt.Errorf("schema: empty form definition")
	}

	var form Form
	if trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &form); err != nil {
			return Form{}, fmt.Errorf("schema: decode json form: %w", err)
		}
		return form, nil
	}
	// YAML goes through an any round-trip so the json struct tags apply and
	// camelCase keys match.
	var raw any
	if err := yaml.Unmarshal(trimmed, &raw); err != nil {
		return Form{}, fmt.Errorf("schema: decode yaml form: %w", err)
	}
	bridged, err := json.Marshal(raw)
	if err != nil {
		return Form{}, fmt.Errorf("schema: bridge yaml form: %w", err)
	}
	if err := json.Unmarshal(bridged, &form); err != nil {
		return Form{}, fmt.Errorf("schema: decode yaml form: %w", err)
	}
	return form, nil
}

// LoadFile reads and decodes a form definition from disk.
func LoadFile(path string) (Form, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Form{}, fmt.Errorf("schema: read form: %w", err)
	}
	return Load(data)
}

// Marshal encodes the form as indented JSON, the format the forms platform
// stores.
func Marshal(form Form) ([]byte, error) {
	payload, err := json.MarshalIndent(form, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("schema: encode form: %w", err)
	}
	return payload, nil
}
