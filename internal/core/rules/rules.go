// Package rules derives validation rules and form inputs from field specs.
// All functions are pure; the only state is the per-run enum scratch map.
package rules

import (
	"strings"

	"github.com/example/crudgen/internal/core/field"
)

// Rule is a pipe-delimited validation expression, e.g. "required|string|max:255".
type Rule string

// InputType is the kind of HTML form control rendered for a field.
type InputType string

// Input types.
const (
	InputText     InputType = "text"
	InputEmail    InputType = "email"
	InputNumber   InputType = "number"
	InputSelect   InputType = "select"
	InputCheckbox InputType = "checkbox"
)

// Input describes the form control for a field.
type Input struct {
	Type    InputType
	Options []string // select only
	Default string   // select only; pre-selected option
	Step    string   // number only; "any" for decimal columns
}

// Deriver derives rules and inputs, recording enum metadata as it goes.
// A Deriver is meant to live for a single command invocation.
type Deriver struct {
	enums map[string]field.Enum
	order []string
}

// NewDeriver creates a Deriver with an empty enum scratch map.
func NewDeriver() *Deriver {
	return &Deriver{enums: make(map[string]field.Enum)}
}

// Derive returns the validation rule and input descriptor for f.
func (d *Deriver) Derive(f field.Spec) (Rule, Input) {
	if f.HasEnum() {
		d.record(f)
	}
	return RuleFor(f), InputFor(f)
}

// Enums returns the enum metadata recorded so far, keyed by field name.
func (d *Deriver) Enums() map[string]field.Enum {
	out := make(map[string]field.Enum, len(d.enums))
	for k, v := range d.enums {
		out[k] = v
	}
	return out
}

// EnumFor returns the recorded enum for a field name.
func (d *Deriver) EnumFor(name string) (field.Enum, bool) {
	e, ok := d.enums[name]
	return e, ok
}

// EnumFields returns recorded field names in first-seen order.
func (d *Deriver) EnumFields() []string {
	return append([]string(nil), d.order...)
}

func (d *Deriver) record(f field.Spec) {
	if _, seen := d.enums[f.Name]; !seen {
		d.order = append(d.order, f.Name)
	}
	d.enums[f.Name] = field.Enum{
		Values:  append([]string(nil), f.Enum.Values...),
		Default: f.Enum.Default,
	}
}

// RuleFor maps a field to its validation rule.
// Priority: enum, then `_id` suffix, then column type.
func RuleFor(f field.Spec) Rule {
	if f.HasEnum() {
		return Rule("required|in:" + strings.Join(f.Enum.Values, ","))
	}
	if f.IsForeignKey() {
		return "required|integer"
	}

	switch {
	case f.Column.IsIntegerFamily():
		return "required|integer"
	case f.Column == field.UnsignedBigInteger:
		return "required|integer|min:0"
	case f.Column == field.String:
		if f.IsEmail() {
			return "required|string|max:255|email"
		}
		return "required|string|max:255"
	case f.Column == field.Text:
		return "required|string"
	case f.Column.IsDecimalFamily():
		return "required|numeric"
	case f.Column == field.Boolean:
		return "required|boolean"
	case f.Column.IsTemporal():
		return "required|date"
	}
	return "required|string|max:255"
}

// InputFor maps a field to its form control.
// Checked in order: enum, email suffix, boolean, integer family, decimal family.
func InputFor(f field.Spec) Input {
	switch {
	case f.HasEnum():
		return Input{
			Type:    InputSelect,
			Options: append([]string(nil), f.Enum.Values...),
			Default: f.Enum.Default,
		}
	case f.IsEmail():
		return Input{Type: InputEmail}
	case f.Column == field.Boolean:
		return Input{Type: InputCheckbox}
	case f.Column.IsIntegerFamily(), f.Column == field.UnsignedBigInteger:
		return Input{Type: InputNumber}
	case f.Column.IsDecimalFamily():
		return Input{Type: InputNumber, Step: "any"}
	}
	return Input{Type: InputText}
}
