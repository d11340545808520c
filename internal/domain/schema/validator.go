package schema

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/cel-go/cel"
	"github.com/shopspring/decimal"
)

// FailureCode identifies why a cell value was rejected.
type FailureCode string

const (
	FailTypeMismatch    FailureCode = "TYPE_MISMATCH"
	FailUnparseableDate FailureCode = "UNPARSEABLE_DATE"
	FailEnumViolation   FailureCode = "ENUM_VIOLATION"
	FailMissingRequired FailureCode = "MISSING_REQUIRED_FIELD"
	FailCheckViolation  FailureCode = "CHECK_VIOLATION"
)

// Failure describes one rejected cell. It is a value, not an error: bulk
// imports collect every failure of a batch instead of stopping at the first.
type Failure struct {
	Code    FailureCode `json:"code"`
	Message string      `json:"message"`

	// Allowed lists the permitted tokens for enum violations.
	Allowed []string `json:"allowed,omitempty"`
}

// Result is the outcome of validating one raw cell against a column.
type Result struct {
	Column *ColumnDefinition `json:"-"`
	Raw    string            `json:"raw"`
	Value  Value             `json:"value"`

	// Failure is nil when the cell validated.
	Failure *Failure `json:"failure,omitempty"`
}

// OK reports whether the cell validated.
func (r Result) OK() bool {
	return r.Failure == nil
}

// numericPattern accepts an optional sign, digits with optional fractional
// part, and scientific notation, after separators have been stripped.
var numericPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// integerPattern accepts an optional sign and digits only.
var integerPattern = regexp.MustCompile(`^[+-]?\d+$`)

// twoDigitYearPivot bounds how far in the future a 2-digit year may land
// before it is pushed back a century. time.Parse already reads 69-99 as the
// 1900s; the pivot additionally pushes back years it reads as 20xx but more
// than 20 years out: "28" parsed in 2026 stays 2028, "55" becomes 1955.
const twoDigitYearPivot = 20

var (
	fourDigitYearLayouts = []string{
		"2006-01-02", "2006/01/02", "2006.01.02",
		"1/2/2006", "01/02/2006", "1-2-2006", "01-02-2006", "1.2.2006", "01.02.2006",
		// Dotted dates are conventionally European day-first; tried after
		// the month-first forms, so they catch inputs like "15.03.2026"
		// that no month-first layout accepts.
		"2.1.2006", "02.01.2006",
		"Jan 2, 2006", "2 Jan 2006", "January 2, 2006",
		"20060102",
	}
	twoDigitYearLayouts = []string{
		"1/2/06", "01/02/06", "1-2-06", "1.2.06", "01.02.06",
	}
)

// ValidatorOptions tunes cell validation.
type ValidatorOptions struct {
	// DateLayouts replaces the built-in date format list when non-empty.
	// Layouts are tried in order.
	DateLayouts []string

	// Checks maps check expressions to their compiled programs, usually
	// supplied by the hub. A column whose Check has no entry here skips
	// check evaluation.
	Checks map[string]cel.Program
}

// Validator coerces raw cell strings into typed values. It is pure and
// stateless apart from its configuration, so one instance serves any number
// of concurrent rows.
type Validator struct {
	fourDigit []string
	twoDigit  []string
	checks    map[string]cel.Program
}

// NewValidator creates a validator with the given options.
func NewValidator(opts ValidatorOptions) *Validator {
	v := &Validator{
		fourDigit: fourDigitYearLayouts,
		twoDigit:  twoDigitYearLayouts,
		checks:    opts.Checks,
	}
	if len(opts.DateLayouts) > 0 {
		v.fourDigit = opts.DateLayouts
		v.twoDigit = nil
	}
	return v
}

// Validate checks raw against the column's declared type and returns the
// coerced value or a failure. An empty cell fails only for required columns;
// otherwise it coerces to the explicit absent marker so downstream
// aggregation can tell "missing" from "zero".
func (v *Validator) Validate(col *ColumnDefinition, raw string) Result {
	res := Result{Column: col, Raw: raw}

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		if col.Required {
			res.Failure = &Failure{
				Code:    FailMissingRequired,
				Message: fmt.Sprintf("column %q requires a value", col.ID),
			}
			return res
		}
		res.Value = AbsentValue()
		return res
	}

	switch col.Type {
	case TypeText:
		res.Value = TextValue(trimmed)
	case TypeNumber:
		res.Value, res.Failure = v.coerceNumber(col, trimmed)
	case TypeDecimal:
		res.Value, res.Failure = v.coerceDecimal(col, trimmed)
	case TypeDate:
		res.Value, res.Failure = v.coerceDate(col, trimmed)
	case TypeBoolean:
		res.Value, res.Failure = v.coerceBool(col, trimmed)
	case TypeEnum:
		res.Value, res.Failure = v.coerceEnum(col, trimmed)
	default:
		res.Failure = &Failure{
			Code:    FailTypeMismatch,
			Message: fmt.Sprintf("column %q has unsupported type %q", col.ID, col.Type),
		}
	}
	if res.Failure != nil {
		return res
	}

	if col.Check != "" {
		res.Failure = v.runCheck(col, res.Value)
	}
	return res
}

func (v *Validator) coerceNumber(col *ColumnDefinition, s string) (Value, *Failure) {
	cleaned := strings.ReplaceAll(s, ",", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	if !integerPattern.MatchString(cleaned) {
		return Value{}, &Failure{
			Code:    FailTypeMismatch,
			Message: fmt.Sprintf("column %q expects a whole number, got %q", col.ID, s),
		}
	}
	n, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return Value{}, &Failure{
			Code:    FailTypeMismatch,
			Message: fmt.Sprintf("column %q expects a whole number, got %q", col.ID, s),
		}
	}
	return NumberValue(n), nil
}

func (v *Validator) coerceDecimal(col *ColumnDefinition, s string) (Value, *Failure) {
	cleaned := s

	// Accounting notation: "(123.45)" means -123.45.
	negative := false
	if strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
		negative = true
		cleaned = strings.TrimSpace(cleaned[1 : len(cleaned)-1])
	}

	for _, sym := range []string{"$", "€", "£"} {
		cleaned = strings.ReplaceAll(cleaned, sym, "")
	}
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)
	if negative {
		cleaned = "-" + cleaned
	}

	if !numericPattern.MatchString(cleaned) {
		return Value{}, &Failure{
			Code:    FailTypeMismatch,
			Message: fmt.Sprintf("column %q expects a decimal number, got %q", col.ID, s),
		}
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return Value{}, &Failure{
			Code:    FailTypeMismatch,
			Message: fmt.Sprintf("column %q expects a decimal number, got %q", col.ID, s),
		}
	}
	return DecimalValue(d), nil
}

func (v *Validator) coerceDate(col *ColumnDefinition, s string) (Value, *Failure) {
	// Unambiguous 4-digit-year layouts go first.
	for _, layout := range v.fourDigit {
		if t, err := time.Parse(layout, s); err == nil {
			return DateValue(t), nil
		}
	}

	pivot := time.Now().Year() + twoDigitYearPivot
	for _, layout := range v.twoDigit {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if t.Year() > pivot {
			t = t.AddDate(-100, 0, 0)
		}
		return DateValue(t), nil
	}

	return Value{}, &Failure{
		Code:    FailUnparseableDate,
		Message: fmt.Sprintf("column %q cannot parse %q as a date", col.ID, s),
	}
}

func (v *Validator) coerceBool(col *ColumnDefinition, s string) (Value, *Failure) {
	switch strings.ToLower(s) {
	case "true", "t", "yes", "y", "1":
		return BoolValue(true), nil
	case "false", "f", "no", "n", "0":
		return BoolValue(false), nil
	}
	return Value{}, &Failure{
		Code:    FailTypeMismatch,
		Message: fmt.Sprintf("column %q expects a boolean, got %q", col.ID, s),
	}
}

func (v *Validator) coerceEnum(col *ColumnDefinition, s string) (Value, *Failure) {
	if ev, ok := col.EnumValueFor(s); ok {
		return EnumTokenValue(ev.Value), nil
	}
	allowed := make([]string, len(col.EnumValues))
	for i, ev := range col.EnumValues {
		allowed[i] = ev.Value
	}
	return Value{}, &Failure{
		Code:    FailEnumViolation,
		Message: fmt.Sprintf("column %q does not allow value %q", col.ID, s),
		Allowed: allowed,
	}
}

// runCheck evaluates the column's compiled check expression against the
// coerced value. A missing program means the validator was built without
// the hub's compilation pass and the check is skipped.
func (v *Validator) runCheck(col *ColumnDefinition, val Value) *Failure {
	prg, ok := v.checks[col.Check]
	if !ok {
		return nil
	}
	out, _, err := prg.Eval(map[string]any{"value": val.native()})
	if err != nil {
		return &Failure{
			Code:    FailCheckViolation,
			Message: fmt.Sprintf("column %q check %q failed to evaluate: %v", col.ID, col.Check, err),
		}
	}
	if passed, ok := out.Value().(bool); !ok || !passed {
		return &Failure{
			Code:    FailCheckViolation,
			Message: fmt.Sprintf("column %q value %s violates check %q", col.ID, val.String(), col.Check),
		}
	}
	return nil
}

// checkEnv is the CEL environment check expressions compile against: a
// single dynamically typed variable holding the coerced cell value.
var checkEnv *cel.Env

func init() {
	env, err := cel.NewEnv(
		cel.Variable("value", cel.DynType),
		cel.CrossTypeNumericComparisons(true),
	)
	if err != nil {
		panic(fmt.Sprintf("schema: build check environment: %v", err))
	}
	checkEnv = env
}

// CompileCheck compiles a column check expression. The hub calls this once
// per distinct expression during composition, so authoring mistakes surface
// at startup.
func CompileCheck(expr string) (cel.Program, error) {
	ast, iss := checkEnv.Compile(expr)
	if iss != nil && iss.Err() != nil {
		return nil, iss.Err()
	}
	return checkEnv.Program(ast)
}
