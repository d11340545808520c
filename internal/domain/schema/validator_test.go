package schema

import (
	"testing"

	"github.com/google/cel-go/cel"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textColumn(required bool) *ColumnDefinition {
	return &ColumnDefinition{ID: "notes", Label: "Notes", Type: TypeText, Required: required}
}

func TestValidateText(t *testing.T) {
	v := NewValidator(ValidatorOptions{})

	res := v.Validate(textColumn(false), "  hello world  ")
	require.True(t, res.OK())
	assert.Equal(t, KindText, res.Value.Kind())
	assert.Equal(t, "hello world", res.Value.Text())
}

func TestValidateRequiredAndAbsent(t *testing.T) {
	v := NewValidator(ValidatorOptions{})

	res := v.Validate(textColumn(true), "")
	require.False(t, res.OK())
	assert.Equal(t, FailMissingRequired, res.Failure.Code)

	res = v.Validate(textColumn(true), "   ")
	require.False(t, res.OK())
	assert.Equal(t, FailMissingRequired, res.Failure.Code)

	// A non-required empty cell is the explicit absent marker, not a type
	// failure and not a default.
	res = v.Validate(textColumn(false), "")
	require.True(t, res.OK())
	assert.True(t, res.Value.IsAbsent())
	assert.Equal(t, "", res.Value.String())
}

func TestValidateNumber(t *testing.T) {
	v := NewValidator(ValidatorOptions{})
	col := &ColumnDefinition{ID: "quantity", Label: "Quantity", Type: TypeNumber}

	cases := []struct {
		raw  string
		want int64
	}{
		{"42", 42},
		{"-7", -7},
		{"+15", 15},
		{"1,250", 1250},
		{"1 250 000", 1250000},
	}
	for _, tc := range cases {
		res := v.Validate(col, tc.raw)
		require.True(t, res.OK(), "raw %q: %+v", tc.raw, res.Failure)
		assert.Equal(t, tc.want, res.Value.Number(), "raw %q", tc.raw)
	}

	for _, raw := range []string{"abc", "12.5", "1e3", "12abc"} {
		res := v.Validate(col, raw)
		require.False(t, res.OK(), "raw %q should fail", raw)
		assert.Equal(t, FailTypeMismatch, res.Failure.Code)
	}
}

func TestValidateDecimal(t *testing.T) {
	v := NewValidator(ValidatorOptions{})
	col := &ColumnDefinition{ID: "unit_price", Label: "Unit Price", Type: TypeDecimal}

	cases := []struct {
		raw  string
		want string
	}{
		{"19.99", "19.99"},
		{"$1,299.50", "1299.5"},
		{"€42.00", "42"},
		{"£0.99", "0.99"},
		{"(123.45)", "-123.45"},
		{"1000", "1000"},
	}
	for _, tc := range cases {
		res := v.Validate(col, tc.raw)
		require.True(t, res.OK(), "raw %q: %+v", tc.raw, res.Failure)
		assert.Equal(t, KindDecimal, res.Value.Kind())
		want, err := decimal.NewFromString(tc.want)
		require.NoError(t, err)
		assert.True(t, res.Value.Decimal().Equal(want), "raw %q gave %s", tc.raw, res.Value.Decimal())
	}

	res := v.Validate(col, "not-a-price")
	require.False(t, res.OK())
	assert.Equal(t, FailTypeMismatch, res.Failure.Code)
}

func TestValidateDecimalRoundTrip(t *testing.T) {
	// Currency-grade inputs must re-serialize to the same magnitude; binary
	// floating point would drift on sums like these.
	v := NewValidator(ValidatorOptions{})
	col := &ColumnDefinition{ID: "amount", Label: "Amount", Type: TypeDecimal}

	for _, raw := range []string{"0.01", "19.99", "123456789.99", "0.1"} {
		res := v.Validate(col, raw)
		require.True(t, res.OK())
		assert.Equal(t, raw, res.Value.String(), "round-trip of %q", raw)

		again := v.Validate(col, res.Value.String())
		require.True(t, again.OK())
		assert.True(t, res.Value.Decimal().Equal(again.Value.Decimal()))
	}
}

func TestValidateDate(t *testing.T) {
	v := NewValidator(ValidatorOptions{})
	col := &ColumnDefinition{ID: "received_at", Label: "Received At", Type: TypeDate}

	cases := []struct {
		raw  string
		want string
	}{
		{"2026-03-15", "2026-03-15"},
		{"03/15/2026", "2026-03-15"},
		{"15.03.2026", "2026-03-15"},
		{"31.12.2026", "2026-12-31"},
		{"Mar 15, 2026", "2026-03-15"},
		{"20260315", "2026-03-15"},
		{"3/15/26", "2026-03-15"},
	}
	for _, tc := range cases {
		res := v.Validate(col, tc.raw)
		require.True(t, res.OK(), "raw %q: %+v", tc.raw, res.Failure)
		assert.Equal(t, KindDate, res.Value.Kind())
		assert.Equal(t, tc.want, res.Value.String(), "raw %q", tc.raw)
	}

	res := v.Validate(col, "not a date")
	require.False(t, res.OK())
	assert.Equal(t, FailUnparseableDate, res.Failure.Code)
}

func TestValidateDateTwoDigitYearPivot(t *testing.T) {
	v := NewValidator(ValidatorOptions{})
	col := &ColumnDefinition{ID: "d", Label: "D", Type: TypeDate}

	// A 2-digit year far in the future belongs to the previous century:
	// 69-99 already parse as the 1900s, and years parsed as 20xx but past
	// the pivot get pushed back too.
	res := v.Validate(col, "1/2/75")
	require.True(t, res.OK())
	assert.Equal(t, 1975, res.Value.Date().Year())

	res = v.Validate(col, "1/2/55")
	require.True(t, res.OK())
	assert.Equal(t, 1955, res.Value.Date().Year())
}

func TestValidateBoolean(t *testing.T) {
	v := NewValidator(ValidatorOptions{})
	col := &ColumnDefinition{ID: "in_stock", Label: "In Stock", Type: TypeBoolean}

	truthy := []string{"true", "TRUE", "Yes", "y", "1", "T"}
	for _, raw := range truthy {
		res := v.Validate(col, raw)
		require.True(t, res.OK(), "raw %q", raw)
		assert.True(t, res.Value.Bool(), "raw %q", raw)
	}

	falsy := []string{"false", "No", "n", "0", "F"}
	for _, raw := range falsy {
		res := v.Validate(col, raw)
		require.True(t, res.OK(), "raw %q", raw)
		assert.False(t, res.Value.Bool(), "raw %q", raw)
	}

	res := v.Validate(col, "maybe")
	require.False(t, res.OK())
	assert.Equal(t, FailTypeMismatch, res.Failure.Code)
}

func TestValidateEnum(t *testing.T) {
	v := NewValidator(ValidatorOptions{})
	col := &ColumnDefinition{
		ID: "status", Label: "Status", Type: TypeEnum,
		EnumValues: []EnumValue{
			{Value: "active", Label: "Active", LocalizedLabel: "نشط"},
			{Value: "discontinued", Label: "Discontinued", LocalizedLabel: "موقوف"},
		},
	}

	// Token, label and localized label all resolve to the canonical token.
	for _, raw := range []string{"active", "Active", "ACTIVE", "نشط"} {
		res := v.Validate(col, raw)
		require.True(t, res.OK(), "raw %q", raw)
		assert.Equal(t, KindEnum, res.Value.Kind())
		assert.Equal(t, "active", res.Value.Text(), "raw %q", raw)
	}

	res := v.Validate(col, "retired")
	require.False(t, res.OK())
	assert.Equal(t, FailEnumViolation, res.Failure.Code)
	assert.Equal(t, []string{"active", "discontinued"}, res.Failure.Allowed)
}

func TestValidateCheckExpression(t *testing.T) {
	prg, err := CompileCheck("value >= 0.0")
	require.NoError(t, err)

	v := NewValidator(ValidatorOptions{Checks: map[string]cel.Program{"value >= 0.0": prg}})
	col := &ColumnDefinition{ID: "amount", Label: "Amount", Type: TypeDecimal, Check: "value >= 0.0"}

	res := v.Validate(col, "10.50")
	require.True(t, res.OK())

	res = v.Validate(col, "(3.00)")
	require.False(t, res.OK())
	assert.Equal(t, FailCheckViolation, res.Failure.Code)
}

func TestCompileCheckRejectsBadExpression(t *testing.T) {
	_, err := CompileCheck("value >=")
	assert.Error(t, err)
}
