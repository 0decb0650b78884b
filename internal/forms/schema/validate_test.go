package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, raw string) *Layout {
	t.Helper()
	layout, err := Parse([]byte(raw))
	require.NoError(t, err)
	return layout
}

const leadLayout = `{
	"fields": [
		{"field_name": "age", "label": "Age", "type": "number", "required": true},
		{"field_name": "plan", "label": "Plan", "type": "dropdown", "required": false, "options": ["basic", "pro"]}
	]
}`

func TestValidateAcceptsConformingSubmission(t *testing.T) {
	layout := mustParse(t, leadLayout)
	result := Validate(layout, map[string]any{"age": 30, "plan": "pro"})
	require.True(t, result.OK())
	require.Empty(t, result.Errors)
}

func TestValidateCollectsAllErrors(t *testing.T) {
	layout := mustParse(t, leadLayout)
	result := Validate(layout, map[string]any{"plan": "gold"})
	require.False(t, result.OK())
	require.Equal(t, map[string]string{
		"age":  "This field is required.",
		"plan": "Value must be one of ['basic', 'pro'].",
	}, result.Errors)
}

func TestValidateNumberStrictness(t *testing.T) {
	layout := mustParse(t, `{"fields": [{"field_name": "age", "type": "number", "required": false}]}`)

	cases := []struct {
		name  string
		value any
		ok    bool
	}{
		{"int", 5, true},
		{"int64", int64(5), true},
		{"json integer", json.Number("5"), true},
		{"negative json integer", json.Number("-12"), true},
		{"numeric string", "5", false},
		{"float64", 5.0, false},
		{"json float", json.Number("5.0"), false},
		{"bool", true, false},
		{"nil", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := Validate(layout, map[string]any{"age": tc.value})
			require.Equal(t, tc.ok, result.OK(), "errors: %v", result.Errors)
		})
	}
}

func TestValidateOptionalFieldStillTypeChecked(t *testing.T) {
	// required=false does not exempt a present value from its type rule.
	layout := mustParse(t, leadLayout)
	result := Validate(layout, map[string]any{"age": 30, "plan": "gold"})
	require.Equal(t, map[string]string{"plan": "Value must be one of ['basic', 'pro']."}, result.Errors)
}

func TestValidateEmailRule(t *testing.T) {
	layout := mustParse(t, `{"fields": [{"field_name": "contact", "type": "email", "required": true}]}`)

	require.True(t, Validate(layout, map[string]any{"contact": "a@b"}).OK())
	require.Equal(t, "This field must be a valid email.", Validate(layout, map[string]any{"contact": "nobody"}).Errors["contact"])
	require.Equal(t, "This field must be a valid email.", Validate(layout, map[string]any{"contact": 42}).Errors["contact"])
}

func TestValidateDropdownIsCaseSensitive(t *testing.T) {
	layout := mustParse(t, leadLayout)
	result := Validate(layout, map[string]any{"age": 1, "plan": "PRO"})
	require.Equal(t, "Value must be one of ['basic', 'pro'].", result.Errors["plan"])
}

func TestValidateIgnoresUnknownFields(t *testing.T) {
	layout := mustParse(t, leadLayout)
	base := Validate(layout, map[string]any{"age": 30, "plan": "pro"})
	withExtra := Validate(layout, map[string]any{"age": 30, "plan": "pro", "unknown_key": []int{1, 2}})
	require.Equal(t, base, withExtra)
}

func TestValidateIsIdempotent(t *testing.T) {
	layout := mustParse(t, leadLayout)
	submitted := map[string]any{"plan": "gold"}
	first := Validate(layout, submitted)
	second := Validate(layout, submitted)
	require.Equal(t, first, second)
}

func TestValidateGroupRecursion(t *testing.T) {
	layout := mustParse(t, `{"fields": [
		{"field_name": "contact", "type": "group", "required": true, "fields": [
			{"field_name": "email", "type": "email", "required": true},
			{"field_name": "age", "type": "number", "required": false}
		]}
	]}`)

	ok := Validate(layout, map[string]any{"contact": map[string]any{"email": "a@b"}})
	require.True(t, ok.OK())

	missing := Validate(layout, map[string]any{})
	require.Equal(t, map[string]string{"contact": "This field is required."}, missing.Errors)

	nested := Validate(layout, map[string]any{"contact": map[string]any{"age": "old"}})
	require.Equal(t, map[string]string{
		"contact.email": "This field is required.",
		"contact.age":   "This field must be a number.",
	}, nested.Errors)

	scalar := Validate(layout, map[string]any{"contact": "not an object"})
	require.Equal(t, map[string]string{"contact": "This field must be an object."}, scalar.Errors)
}
