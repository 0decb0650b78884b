package schema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseValidLayout(t *testing.T) {
	raw := []byte(`{
		"fields": [
			{"field_name": "age", "label": "Age", "type": "number", "required": true},
			{"field_name": "plan", "label": "Plan", "type": "dropdown", "required": false, "options": ["basic", "pro"]},
			{"field_name": "contact", "label": "Contact", "type": "group", "fields": [
				{"field_name": "email", "label": "Email", "type": "email", "required": true}
			]}
		]
	}`)

	layout, err := Parse(raw)
	require.NoError(t, err)

	fields := layout.Fields()
	require.Len(t, fields, 3)
	require.Equal(t, "age", fields[0].Name)
	require.Equal(t, TypeNumber, fields[0].Type)
	require.True(t, fields[0].Required)
	require.Equal(t, []string{"basic", "pro"}, fields[1].Options)
	require.Equal(t, TypeGroup, fields[2].Type)
	require.Len(t, fields[2].Fields, 1)
	require.Equal(t, "email", fields[2].Fields[0].Name)
}

func TestParseTraversalIsRestartable(t *testing.T) {
	layout, err := Parse([]byte(`{"fields": [{"field_name": "a", "type": "text"}]}`))
	require.NoError(t, err)
	first := layout.Fields()
	second := layout.Fields()
	require.Equal(t, first, second)
}

func TestParseRejectsMalformedLayouts(t *testing.T) {
	cases := map[string]string{
		"not json":             `[1, 2`,
		"top level array":      `[{"field_name": "a", "type": "text"}]`,
		"missing fields list":  `{"name": "lead form"}`,
		"null fields list":     `{"fields": null}`,
		"missing field_name":   `{"fields": [{"type": "text"}]}`,
		"empty field_name":     `{"fields": [{"field_name": "", "type": "text"}]}`,
		"missing type":         `{"fields": [{"field_name": "a"}]}`,
		"dropdown sans options": `{"fields": [{"field_name": "a", "type": "dropdown"}]}`,
		"group sans fields":    `{"fields": [{"field_name": "a", "type": "group"}]}`,
		"duplicate names":      `{"fields": [{"field_name": "a", "type": "text"}, {"field_name": "a", "type": "number"}]}`,
		"nested duplicate": `{"fields": [{"field_name": "g", "type": "group", "fields": [
			{"field_name": "x", "type": "text"}, {"field_name": "x", "type": "text"}]}]}`,
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(raw))
			require.Error(t, err)
			require.ErrorIs(t, err, ErrSchema)
		})
	}
}

func TestParseAllowsUnknownFieldTypes(t *testing.T) {
	layout, err := Parse([]byte(`{"fields": [{"field_name": "sig", "type": "signature"}]}`))
	require.NoError(t, err)
	require.Equal(t, FieldType("signature"), layout.Fields()[0].Type)
}

func TestParseAllowsDuplicateNamesAcrossLevels(t *testing.T) {
	raw := []byte(`{"fields": [
		{"field_name": "name", "type": "text"},
		{"field_name": "contact", "type": "group", "fields": [{"field_name": "name", "type": "text"}]}
	]}`)
	_, err := Parse(raw)
	require.NoError(t, err)
}
