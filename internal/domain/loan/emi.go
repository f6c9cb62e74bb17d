package loan

import (
	"fmt"
	"math"

	"credit-approval/internal/pkg/apperrors"
)

// EMI computes the standard amortizing monthly payment for a principal P at
// an annual percentage rate R over N months:
//
//	r = R / (12 * 100)
//	EMI = P * r * (1+r)^N / ((1+r)^N - 1)
//
// A zero rate reduces to straight division P/N. A degenerate denominator is
// reported as a computation error rather than producing Inf or NaN.
func EMI(principal Money, annualRate Money, tenureMonths int) (Money, error) {
	if tenureMonths <= 0 {
		return 0, fmt.Errorf("%w: tenure must be positive", apperrors.ErrInvalidArgument)
	}

	r := annualRate / (12 * 100)
	if r == 0 {
		return principal / float64(tenureMonths), nil
	}

	compound := math.Pow(1+r, float64(tenureMonths))
	denominator := compound - 1
	if denominator == 0 || math.IsInf(compound, 0) || math.IsNaN(compound) {
		return 0, fmt.Errorf("%w: EMI denominator degenerate for rate %v over %d months",
			apperrors.ErrComputation, annualRate, tenureMonths)
	}

	return principal * r * compound / denominator, nil
}
