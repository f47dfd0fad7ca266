package kernel

import (
	"deliveryapp/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Numeric is the shape of a fixed-point column: Precision significant digits, Scale of
// them after the point.
type Numeric struct {
	Precision int32
	Scale     int32
}

var (
	// Money holds prices, fees and totals.
	Money = Numeric{Precision: 10, Scale: 2}
	// Measure holds weights and distances.
	Measure = Numeric{Precision: 8, Scale: 2}
)

// Max is the largest value the column holds.
func (n Numeric) Max() decimal.Decimal {
	return decimal.New(1, n.Precision-n.Scale).Sub(decimal.New(1, -n.Scale))
}

// Check rounds value to the column scale and reports an out of range error when its
// magnitude exceeds Max.
func (n Numeric) Check(paramName string, value decimal.Decimal) (decimal.Decimal, error) {
	rounded := value.Round(n.Scale)
	if limit := n.Max(); rounded.Abs().GreaterThan(limit) {
		return decimal.Zero, errs.NewValueIsOutOfRangeError(
			paramName, value.String(), limit.Neg().StringFixed(n.Scale), limit.StringFixed(n.Scale))
	}
	return rounded, nil
}

// MaxInt32 is the largest value of an integer column.
const MaxInt32 = 1<<31 - 1

// CheckInt32 reports an out of range error when value does not fit an integer column.
func CheckInt32(paramName string, value int) error {
	if value < -MaxInt32-1 || value > MaxInt32 {
		return errs.NewValueIsOutOfRangeError(paramName, value, -MaxInt32-1, MaxInt32)
	}
	return nil
}
