package params

import (
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

// Schema renders fields as a JSON Schema object describing the tool input.
func Schema(fields []Field) *jsonschema.Schema {
	s := &jsonschema.Schema{
		Type:       "object",
		Properties: make(map[string]*jsonschema.Schema, len(fields)),
		Required:   []string{},
	}
	for _, f := range fields {
		s.Properties[f.Name] = fieldSchema(f)
		if f.Required {
			s.Required = append(s.Required, f.Name)
		}
	}
	return s
}

// RawSchema marshals Schema(fields).
func RawSchema(fields []Field) (json.RawMessage, error) {
	data, err := json.Marshal(Schema(fields))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal input schema: %w", err)
	}
	return data, nil
}

func fieldSchema(f Field) *jsonschema.Schema {
	s := &jsonschema.Schema{
		Type:        f.Kind.String(),
		Description: f.Description,
	}
	for _, e := range f.Enum {
		s.Enum = append(s.Enum, e)
	}
	if f.Default != nil {
		if data, err := json.Marshal(f.Default); err == nil {
			s.Default = data
		}
	}
	if f.Kind == Array && len(f.Items) > 0 {
		s.Items = Schema(f.Items)
		if len(s.Items.Required) == 0 {
			s.Items.Required = nil
		}
	}
	if f.Kind == Object && len(f.Properties) > 0 {
		obj := Schema(f.Properties)
		s.Properties = obj.Properties
	}
	return s
}
