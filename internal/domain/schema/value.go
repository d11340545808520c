package schema

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the canonical serialization of date values.
const DateLayout = "2006-01-02"

// ValueKind identifies which variant a Value holds.
type ValueKind string

const (
	// KindAbsent marks an empty cell of a non-required column. It is a
	// legitimate outcome, not a failure.
	KindAbsent  ValueKind = "absent"
	KindText    ValueKind = "text"
	KindNumber  ValueKind = "number"
	KindDecimal ValueKind = "decimal"
	KindDate    ValueKind = "date"
	KindBoolean ValueKind = "boolean"
	KindEnum    ValueKind = "enum"
)

// Value is a coerced cell value. Exactly one variant is set, indicated by
// Kind. The zero Value is absent.
type Value struct {
	kind    ValueKind
	text    string
	num     int64
	dec     decimal.Decimal
	date    time.Time
	boolean bool
}

// AbsentValue returns the explicit empty-cell marker.
func AbsentValue() Value {
	return Value{kind: KindAbsent}
}

// TextValue wraps a text cell.
func TextValue(s string) Value {
	return Value{kind: KindText, text: s}
}

// NumberValue wraps a whole-number cell.
func NumberValue(n int64) Value {
	return Value{kind: KindNumber, num: n}
}

// DecimalValue wraps an exact decimal cell.
func DecimalValue(d decimal.Decimal) Value {
	return Value{kind: KindDecimal, dec: d}
}

// DateValue wraps a calendar date. Time of day is discarded.
func DateValue(t time.Time) Value {
	y, m, d := t.Date()
	return Value{kind: KindDate, date: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// BoolValue wraps a boolean cell.
func BoolValue(b bool) Value {
	return Value{kind: KindBoolean, boolean: b}
}

// EnumTokenValue wraps the canonical token of an enum cell.
func EnumTokenValue(token string) Value {
	return Value{kind: KindEnum, text: token}
}

// Kind returns the variant of the value.
func (v Value) Kind() ValueKind {
	if v.kind == "" {
		return KindAbsent
	}
	return v.kind
}

// IsAbsent reports whether the value marks an empty cell.
func (v Value) IsAbsent() bool {
	return v.Kind() == KindAbsent
}

// Text returns the text or enum token variant.
func (v Value) Text() string { return v.text }

// Number returns the whole-number variant.
func (v Value) Number() int64 { return v.num }

// Decimal returns the decimal variant.
func (v Value) Decimal() decimal.Decimal { return v.dec }

// Date returns the date variant, midnight UTC.
func (v Value) Date() time.Time { return v.date }

// Bool returns the boolean variant.
func (v Value) Bool() bool { return v.boolean }

// String renders the canonical text form of the value. Decimals round-trip
// exactly, absent renders empty.
func (v Value) String() string {
	switch v.Kind() {
	case KindAbsent:
		return ""
	case KindText, KindEnum:
		return v.text
	case KindNumber:
		return strconv.FormatInt(v.num, 10)
	case KindDecimal:
		return v.dec.String()
	case KindDate:
		return v.date.Format(DateLayout)
	case KindBoolean:
		return strconv.FormatBool(v.boolean)
	}
	return ""
}

// MarshalJSON renders absent as null, decimals as exact strings and dates
// in DateLayout.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind() {
	case KindAbsent:
		return []byte("null"), nil
	case KindText, KindEnum:
		return json.Marshal(v.text)
	case KindNumber:
		return json.Marshal(v.num)
	case KindDecimal:
		return json.Marshal(v.dec)
	case KindDate:
		return json.Marshal(v.date.Format(DateLayout))
	case KindBoolean:
		return json.Marshal(v.boolean)
	}
	return []byte("null"), nil
}

// native converts the value into the representation check expressions see.
// Decimals are handed over as float64, good enough for range checks.
func (v Value) native() any {
	switch v.Kind() {
	case KindText, KindEnum:
		return v.text
	case KindNumber:
		return v.num
	case KindDecimal:
		return v.dec.InexactFloat64()
	case KindDate:
		return v.date
	case KindBoolean:
		return v.boolean
	}
	return nil
}
