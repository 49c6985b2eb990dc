// Package calc implements the named arithmetic operations available to
// the "calculation" flow card.
package calc

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Operation selects one of the supported calculations.
type Operation string

const (
	OpAdd        Operation = "add"
	OpSubtract   Operation = "subtract"
	OpMultiply   Operation = "multiply"
	OpDivide     Operation = "divide"
	OpPercentage Operation = "percentage"
)

// Parse normalizes a raw selector coming from a flow card dropdown.
func Parse(raw string) (Operation, error) {
	op := Operation(strings.ToLower(strings.TrimSpace(raw)))
	switch op {
	case OpAdd, OpSubtract, OpMultiply, OpDivide, OpPercentage:
		return op, nil
	default:
		return "", &InvalidOperationError{Op: raw}
	}
}

// Apply runs the named operation on two operands.
// Division and percentage fail explicitly on a zero divisor instead of
// producing Inf/NaN.
func Apply(op Operation, a, b float64) (float64, error) {
	da := decFromFloat(a)
	db := decFromFloat(b)
	switch op {
	case OpAdd:
		return decToFloat(da.Add(db)), nil
	case OpSubtract:
		return decToFloat(da.Sub(db)), nil
	case OpMultiply:
		return decToFloat(da.Mul(db)), nil
	case OpDivide:
		if db.IsZero() {
			return 0, &DivisionByZeroError{Op: op}
		}
		return decToFloat(da.Div(db)), nil
	case OpPercentage:
		if db.IsZero() {
			return 0, &DivisionByZeroError{Op: op}
		}
		return decToFloat(da.Div(db).Mul(decHundred)), nil
	default:
		return 0, &InvalidOperationError{Op: string(op)}
	}
}

// Round2 rounds to two decimal places, the precision published on
// comparison and calculation tokens.
func Round2(v float64) float64 {
	return decToFloat(decFromFloat(v).Round(2))
}

var decHundred = decimal.NewFromInt(100)

func decFromFloat(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}

func decToFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
