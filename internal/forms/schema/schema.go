// Package schema models admin-authored form layouts and validates untrusted
// submissions against them. A layout is a recursive tree of field
// descriptors; group descriptors nest further descriptors.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrSchema wraps every layout parse failure.
var ErrSchema = errors.New("invalid form layout")

// FieldType discriminates the descriptor variants.
type FieldType string

const (
	TypeText     FieldType = "text"
	TypeNumber   FieldType = "number"
	TypeEmail    FieldType = "email"
	TypeDropdown FieldType = "dropdown"
	TypeGroup    FieldType = "group"
)

// Field is one descriptor within a layout. Options is populated only for
// dropdowns, Fields only for groups. Types other than the known constants
// are accepted and treated as free text.
type Field struct {
	Name     string
	Label    string
	Type     FieldType
	Required bool
	Options  []string
	Fields   []Field
}

// Layout is the parsed form of a layout document.
type Layout struct {
	fields []Field
}

// Fields returns the top-level descriptors in authoring order. Group
// descriptors expose their children through their own Fields slice.
func (l *Layout) Fields() []Field {
	if l == nil {
		return nil
	}
	return l.fields
}

type layoutDoc struct {
	Fields []fieldDoc `json:"fields"`
}

type fieldDoc struct {
	FieldName *string    `json:"field_name"`
	Label     string     `json:"label"`
	Type      *string    `json:"type"`
	Required  bool       `json:"required"`
	Options   []string   `json:"options"`
	Fields    []fieldDoc `json:"fields"`
}

// Parse decodes and checks a raw layout document. It fails when the top
// level is not an object carrying a fields list, when any descriptor lacks
// field_name or type, when a dropdown lacks options, when a group lacks
// nested fields, or when names repeat within one nesting level.
func Parse(raw []byte) (*Layout, error) {
	var doc layoutDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: not an object: %v", ErrSchema, err)
	}
	if doc.Fields == nil {
		return nil, fmt.Errorf("%w: missing fields list", ErrSchema)
	}
	fields, err := parseFields(doc.Fields, "")
	if err != nil {
		return nil, err
	}
	return &Layout{fields: fields}, nil
}

func parseFields(docs []fieldDoc, path string) ([]Field, error) {
	fields := make([]Field, 0, len(docs))
	seen := make(map[string]struct{}, len(docs))
	for i, d := range docs {
		if d.FieldName == nil || *d.FieldName == "" {
			return nil, fmt.Errorf("%w: descriptor %s%d missing field_name", ErrSchema, path, i)
		}
		name := *d.FieldName
		if d.Type == nil || *d.Type == "" {
			return nil, fmt.Errorf("%w: field %s%s missing type", ErrSchema, path, name)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: duplicate field %s%s", ErrSchema, path, name)
		}
		seen[name] = struct{}{}

		field := Field{
			Name:     name,
			Label:    d.Label,
			Type:     FieldType(*d.Type),
			Required: d.Required,
		}
		switch field.Type {
		case TypeDropdown:
			if d.Options == nil {
				return nil, fmt.Errorf("%w: dropdown %s%s missing options", ErrSchema, path, name)
			}
			field.Options = d.Options
		case TypeGroup:
			if d.Fields == nil {
				return nil, fmt.Errorf("%w: group %s%s missing fields", ErrSchema, path, name)
			}
			children, err := parseFields(d.Fields, path+name+".")
			if err != nil {
				return nil, err
			}
			field.Fields = children
		}
		fields = append(fields, field)
	}
	return fields, nil
}
