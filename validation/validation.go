package validation

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Violations maps a field name to a message key consumable by templates.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

// Int parses a required integer field, recording a violation on failure.
func Int(field, value string, v Violations) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		v[field] = "must_be_integer"
		return 0
	}
	return n
}

// PositiveInt parses an integer field that must be strictly greater than zero.
func PositiveInt(field, value string, v Violations) int {
	n := Int(field, value, v)
	if _, bad := v[field]; bad {
		return 0
	}
	if n <= 0 {
		v[field] = "must_be_positive"
	}
	return n
}

// Reference parses a required foreign-key select value (positive id).
func Reference(field, value string, v Violations) uint {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n <= 0 {
		v[field] = "required"
		return 0
	}
	return uint(n)
}

// Decimal parses a required decimal field, recording a violation on failure.
func Decimal(field, value string, v Violations) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		v[field] = "must_be_number"
		return decimal.Zero
	}
	return d
}

// NonNegativeDecimal parses a decimal field that must be >= 0.
func NonNegativeDecimal(field, value string, v Violations) decimal.Decimal {
	d := Decimal(field, value, v)
	if _, bad := v[field]; bad {
		return decimal.Zero
	}
	if d.IsNegative() {
		v[field] = "must_not_be_negative"
	}
	return d
}
