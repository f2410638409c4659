package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/example/crudgen/internal/core/field"
)

func TestRuleFor(t *testing.T) {
	tests := []struct {
		name  string
		field field.Spec
		want  Rule
	}{
		{"string", field.Spec{Name: "name", Column: field.String}, "required|string|max:255"},
		{"email string", field.Spec{Name: "email", Column: field.String}, "required|string|max:255|email"},
		{"email text", field.Spec{Name: "backup_email", Column: field.Text}, "required|string"},
		{"text", field.Spec{Name: "body", Column: field.Text}, "required|string"},
		{"integer", field.Spec{Name: "stock", Column: field.Integer}, "required|integer"},
		{"bigint", field.Spec{Name: "views", Column: field.BigInt}, "required|integer"},
		{"smallint", field.Spec{Name: "rank", Column: field.SmallInt}, "required|integer"},
		{"tinyint", field.Spec{Name: "level", Column: field.TinyInt}, "required|integer"},
		{"unsigned big", field.Spec{Name: "quantity", Column: field.UnsignedBigInteger}, "required|integer|min:0"},
		{"decimal", field.Spec{Name: "price", Column: field.Decimal}, "required|numeric"},
		{"float", field.Spec{Name: "ratio", Column: field.Float}, "required|numeric"},
		{"double", field.Spec{Name: "lat", Column: field.Double}, "required|numeric"},
		{"boolean", field.Spec{Name: "is_active", Column: field.Boolean}, "required|boolean"},
		{"date", field.Spec{Name: "born_on", Column: field.Date}, "required|date"},
		{"datetime", field.Spec{Name: "starts_at", Column: field.DateTime}, "required|date"},
		{"timestamp", field.Spec{Name: "seen_at", Column: field.Timestamp}, "required|date"},
		{"unknown", field.Spec{Name: "shape", Column: field.Unknown}, "required|string|max:255"},
		{
			"enum wins over type",
			field.Spec{Name: "status", Column: field.String, Enum: &field.Enum{Values: []string{"draft", "live"}, Default: "draft"}},
			"required|in:draft,live",
		},
		{
			"enum wins over _id",
			field.Spec{Name: "kind_id", Column: field.Integer, Enum: &field.Enum{Values: []string{"1", "2"}}},
			"required|in:1,2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RuleFor(tt.field))
		})
	}
}

func TestRuleFor_ForeignKeyIgnoresColumnType(t *testing.T) {
	columns := []field.ColumnType{
		field.Integer, field.BigInt, field.UnsignedBigInteger, field.String, field.Text,
		field.Decimal, field.Boolean, field.Date, field.Timestamp, field.Unknown,
	}
	for _, c := range columns {
		got := RuleFor(field.Spec{Name: "category_id", Column: c})
		assert.Equal(t, Rule("required|integer"), got, "column %s", c)
	}
}

func TestInputFor(t *testing.T) {
	tests := []struct {
		name  string
		field field.Spec
		want  Input
	}{
		{"text", field.Spec{Name: "name", Column: field.String}, Input{Type: InputText}},
		{"email", field.Spec{Name: "email", Column: field.String}, Input{Type: InputEmail}},
		{"checkbox", field.Spec{Name: "is_active", Column: field.Boolean}, Input{Type: InputCheckbox}},
		{"integer", field.Spec{Name: "stock", Column: field.Integer}, Input{Type: InputNumber}},
		{"foreign key", field.Spec{Name: "user_id", Column: field.UnsignedBigInteger}, Input{Type: InputNumber}},
		{"decimal", field.Spec{Name: "price", Column: field.Decimal}, Input{Type: InputNumber, Step: "any"}},
		{"date", field.Spec{Name: "born_on", Column: field.Date}, Input{Type: InputText}},
		{
			"select",
			field.Spec{Name: "status", Column: field.String, Enum: &field.Enum{Values: []string{"draft", "live"}, Default: "live"}},
			Input{Type: InputSelect, Options: []string{"draft", "live"}, Default: "live"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InputFor(tt.field))
		})
	}
}

func TestDeriver_RecordsEnums(t *testing.T) {
	d := NewDeriver()

	d.Derive(field.Spec{Name: "name", Column: field.String})
	d.Derive(field.Spec{Name: "status", Column: field.String, Enum: &field.Enum{Values: []string{"a", "b"}, Default: "b"}})
	d.Derive(field.Spec{Name: "size", Column: field.String, Enum: &field.Enum{Values: []string{"s", "m"}}})

	assert.Equal(t, []string{"status", "size"}, d.EnumFields())

	e, ok := d.EnumFor("status")
	assert.True(t, ok)
	assert.Equal(t, "b", e.Default)

	_, ok = d.EnumFor("name")
	assert.False(t, ok)

	enums := d.Enums()
	enums["status"] = field.Enum{}
	again, _ := d.EnumFor("status")
	assert.Equal(t, []string{"a", "b"}, again.Values, "Enums() must return a copy")
}
