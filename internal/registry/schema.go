// Copyright (c) 2025 Ayga
// Licensed under the MIT License. See LICENSE file in the project root for details.

package registry

import "slices"

// JSON Schema primitive types used by tool arguments.
const (
	TypeString  = "string"
	TypeInteger = "integer"
)

// DefaultTimeoutSeconds is the polling deadline applied when a call omits "timeout".
const DefaultTimeoutSeconds = 90

// MaxTimeoutSeconds bounds the polling deadline a caller may ask for.
const MaxTimeoutSeconds = 86400

// Field describes one accepted argument. Defaults are advisory: they are
// published in the listing but never injected into dispatched options.
type Field struct {
	Name        string
	Type        string
	Description string
	Default     any
	Required    bool
	// NonBlank rejects strings that are empty after trimming.
	NonBlank bool
	Enum     []string
	Minimum  *int
	Maximum  *int
}

func (f Field) clone() Field {
	f.Enum = slices.Clone(f.Enum)
	if f.Minimum != nil {
		f.Minimum = intPtr(*f.Minimum)
	}
	if f.Maximum != nil {
		f.Maximum = intPtr(*f.Maximum)
	}
	return f
}

// Schema is an ordered, immutable set of argument fields.
type Schema struct {
	fields []Field
}

// NewSchema builds a schema from fields in the given order.
func NewSchema(fields ...Field) Schema {
	s := Schema{fields: make([]Field, 0, len(fields))}
	for _, f := range fields {
		s.fields = append(s.fields, f.clone())
	}
	return s
}

// Fields returns a copy of the schema fields.
func (s Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.clone()
	}
	return out
}

// Field looks up a field by name.
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.fields {
		if f.Name == name {
			return f.clone(), true
		}
	}
	return Field{}, false
}

// Has reports whether the schema declares name.
func (s Schema) Has(name string) bool {
	_, ok := s.Field(name)
	return ok
}

// Required lists required field names in declaration order.
func (s Schema) Required() []string {
	var out []string
	for _, f := range s.fields {
		if f.Required {
			out = append(out, f.Name)
		}
	}
	return out
}

// JSONSchema renders the schema as a JSON Schema object. Each call returns
// a freshly built map.
func (s Schema) JSONSchema() map[string]any {
	props := make(map[string]any, len(s.fields))
	for _, f := range s.fields {
		p := map[string]any{"type": f.Type}
		if f.Description != "" {
			p["description"] = f.Description
		}
		if f.Default != nil {
			p["default"] = f.Default
		}
		if len(f.Enum) > 0 {
			p["enum"] = slices.Clone(f.Enum)
		}
		if f.Minimum != nil {
			p["minimum"] = *f.Minimum
		}
		if f.Maximum != nil {
			p["maximum"] = *f.Maximum
		}
		props[f.Name] = p
	}
	out := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if req := s.Required(); len(req) > 0 {
		out["required"] = req
	}
	return out
}

func intPtr(v int) *int { return &v }

// baseFields are present on every parser tool.
func baseFields() []Field {
	return []Field{
		{Name: "query", Type: TypeString, Description: "Search query, prompt, URL or text to process", Required: true, NonBlank: true},
		{Name: "timeout", Type: TypeInteger, Description: "Maximum wait time in seconds", Default: DefaultTimeoutSeconds, Minimum: intPtr(1), Maximum: intPtr(MaxTimeoutSeconds)},
		{Name: "preset", Type: TypeString, Description: "Executor-side preset name (optional)"},
	}
}

// DeriveSchema returns the argument schema for a parser of the given category.
func DeriveSchema(c Category) Schema {
	fields := baseFields()
	fields = append(fields, c.extension()...)
	return NewSchema(fields...)
}
