package schema

import (
	"encoding/json"
	"strings"
)

// Validation messages match the wording clients already depend on.
const (
	msgRequired = "This field is required."
	msgNumber   = "This field must be a number."
	msgEmail    = "This field must be a valid email."
	msgGroup    = "This field must be an object."
)

// Result is the outcome of validating one submission against a layout.
// Errors maps field names to messages; nested group fields use dotted keys.
type Result struct {
	Errors map[string]string
}

// OK reports whether the submission satisfied the layout.
func (r Result) OK() bool {
	return len(r.Errors) == 0
}

// Validate checks a submitted mapping against the layout. It is a pure
// function: errors are collected per field, never short-circuited, and keys
// present in the submission but absent from the layout are ignored.
//
// Type rules apply whenever a field is present, independent of Required.
// Number fields demand an integer representation; numeric strings and floats
// are rejected. The email rule only requires a string containing '@', a
// weak check kept for parity with existing clients.
func Validate(layout *Layout, submitted map[string]any) Result {
	errs := make(map[string]string)
	validateLevel(layout.Fields(), submitted, "", errs)
	return Result{Errors: errs}
}

func validateLevel(fields []Field, submitted map[string]any, prefix string, errs map[string]string) {
	for _, field := range fields {
		key := prefix + field.Name
		value, present := submitted[field.Name]
		if !present {
			if field.Required {
				errs[key] = msgRequired
			}
			continue
		}

		switch field.Type {
		case TypeNumber:
			if !isInteger(value) {
				errs[key] = msgNumber
			}
		case TypeEmail:
			s, ok := value.(string)
			if !ok || !strings.Contains(s, "@") {
				errs[key] = msgEmail
			}
		case TypeDropdown:
			if !isOption(value, field.Options) {
				errs[key] = "Value must be one of " + formatOptions(field.Options) + "."
			}
		case TypeGroup:
			sub, ok := value.(map[string]any)
			if !ok {
				errs[key] = msgGroup
				continue
			}
			validateLevel(field.Fields, sub, key+".", errs)
		}
	}
}

// isInteger accepts Go integer kinds and json.Number values with integer
// syntax. Floats and numeric strings fail, matching the strict check the
// layout contract promises.
func isInteger(v any) bool {
	switch n := v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case json.Number:
		_, err := n.Int64()
		return err == nil
	default:
		return false
	}
}

func isOption(v any, options []string) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	for _, opt := range options {
		if s == opt {
			return true
		}
	}
	return false
}

func formatOptions(options []string) string {
	if len(options) == 0 {
		return "[]"
	}
	return "['" + strings.Join(options, "', '") + "']"
}
