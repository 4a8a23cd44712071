package errors

import (
	"fmt"
	"math"
)

// CheckScalar returns a ValueError when value is NaN or infinite.
func CheckScalar(operation string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return NewValueError(operation, fmt.Sprintf("non-finite value %v", value))
	}
	return nil
}
