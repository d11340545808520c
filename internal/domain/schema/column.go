// Package schema defines department table schemas and the column-resolution
// engine that maps spreadsheet headers onto them. All definitions are
// composed once at startup and never mutated afterwards, so every type in
// this package is safe for concurrent use without locks.
package schema

import (
	"fmt"

	"tabularium/internal/core/apperror"
)

// ColumnType enumerates the value domains a column can carry.
type ColumnType string

const (
	TypeText    ColumnType = "text"
	TypeNumber  ColumnType = "number" // whole numbers
	TypeDecimal ColumnType = "decimal"
	TypeDate    ColumnType = "date"
	TypeBoolean ColumnType = "boolean"
	TypeEnum    ColumnType = "enum"
)

// Valid reports whether t is one of the known column types.
func (t ColumnType) Valid() bool {
	switch t {
	case TypeText, TypeNumber, TypeDecimal, TypeDate, TypeBoolean, TypeEnum:
		return true
	}
	return false
}

// EnumValue is one admissible value of an enum column.
type EnumValue struct {
	// Value is the canonical token stored after validation.
	Value string `json:"value"`

	// Label is the primary display name.
	Label string `json:"label"`

	// LocalizedLabel is the secondary-locale display name.
	LocalizedLabel string `json:"localizedLabel,omitempty"`
}

// ColumnDefinition describes a single column of a table schema.
type ColumnDefinition struct {
	// ID is the canonical machine identifier, unique within a table.
	ID string `json:"id"`

	// Label is the primary display name.
	Label string `json:"label"`

	// LocalizedLabel is the secondary-locale display name.
	LocalizedLabel string `json:"localizedLabel,omitempty"`

	Type     ColumnType `json:"type"`
	Required bool       `json:"required"`

	// Description is free-form authoring documentation.
	Description string `json:"description,omitempty"`

	// Alternatives are header spellings seen in real spreadsheets that
	// should resolve to this column ("SKU" for item_id and so on).
	Alternatives []string `json:"alternatives,omitempty"`

	// EnumValues holds the admissible values for enum columns and must be
	// empty for every other type.
	EnumValues []EnumValue `json:"enumValues,omitempty"`

	// DisplayWidthHint suggests a rendering width in pixels, zero means
	// no preference.
	DisplayWidthHint int `json:"displayWidthHint,omitempty"`

	// Check is an optional CEL expression over the coerced cell value,
	// for example "value >= 0". Compiled once during hub composition.
	Check string `json:"check,omitempty"`
}

// Validate checks structural invariants of a single column definition.
func (c *ColumnDefinition) Validate() error {
	if c.ID == "" {
		return apperror.NewValidation("column id must not be empty")
	}
	if c.Label == "" {
		return apperror.NewValidation(fmt.Sprintf("column %q must have a label", c.ID))
	}
	if !c.Type.Valid() {
		return apperror.NewValidation(fmt.Sprintf("column %q has unknown type %q", c.ID, c.Type)).
			WithDetail("column_id", c.ID)
	}
	if c.Type == TypeEnum && len(c.EnumValues) == 0 {
		return apperror.NewValidation(fmt.Sprintf("enum column %q must define at least one value", c.ID)).
			WithDetail("column_id", c.ID)
	}
	if c.Type != TypeEnum && len(c.EnumValues) > 0 {
		return apperror.NewValidation(fmt.Sprintf("column %q of type %q must not define enum values", c.ID, c.Type)).
			WithDetail("column_id", c.ID)
	}
	seen := make(map[string]struct{}, len(c.EnumValues))
	for _, ev := range c.EnumValues {
		if ev.Value == "" {
			return apperror.NewValidation(fmt.Sprintf("enum column %q has an empty value token", c.ID)).
				WithDetail("column_id", c.ID)
		}
		if _, dup := seen[ev.Value]; dup {
			return apperror.NewValidation(fmt.Sprintf("enum column %q lists value %q more than once", c.ID, ev.Value)).
				WithDetail("column_id", c.ID).
				WithDetail("value", ev.Value)
		}
		seen[ev.Value] = struct{}{}
	}
	if c.DisplayWidthHint < 0 {
		return apperror.NewValidation(fmt.Sprintf("column %q has negative display width", c.ID)).
			WithDetail("column_id", c.ID)
	}
	return nil
}

// EnumValueFor returns the canonical enum value whose token, label or
// localized label equals the normalized input. Comparison happens in
// normalized space, so case and punctuation differences do not matter.
func (c *ColumnDefinition) EnumValueFor(input string) (EnumValue, bool) {
	n := Normalize(input)
	if n == "" {
		return EnumValue{}, false
	}
	for _, ev := range c.EnumValues {
		if Normalize(ev.Value) == n || Normalize(ev.Label) == n || Normalize(ev.LocalizedLabel) == n {
			return ev, true
		}
	}
	return EnumValue{}, false
}

// matchCandidates returns every string the fuzzy tier may compare a header
// against for this column.
func (c *ColumnDefinition) matchCandidates() []string {
	out := make([]string, 0, 3+len(c.Alternatives))
	out = append(out, c.ID, c.Label)
	if c.LocalizedLabel != "" {
		out = append(out, c.LocalizedLabel)
	}
	out = append(out, c.Alternatives...)
	return out
}
