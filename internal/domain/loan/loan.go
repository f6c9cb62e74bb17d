package loan

import (
	"fmt"
	"math"
	"time"

	"credit-approval/internal/pkg/apperrors"
)

type Money = float64

type Loan struct {
	ID                 int64
	CustomerID         int64
	LoanAmount         Money
	Tenure             int
	InterestRate       Money
	MonthlyInstallment Money
	EMIsPaidOnTime     int
	StartDate          time.Time
	EndDate            time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewLoan builds a loan starting on startDate with the rate as recorded
// (already corrected by eligibility). End date is tenure months after the
// start date, and the installment is the rounded EMI at that rate.
func NewLoan(customerID int64, amount Money, tenure int, annualInterestRate Money, startDate time.Time) (*Loan, error) {
	if customerID <= 0 {
		return nil, fmt.Errorf("%w: customer ID must be positive", apperrors.ErrInvalidArgument)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: loan amount must be positive", apperrors.ErrInvalidArgument)
	}
	if tenure <= 0 {
		return nil, fmt.Errorf("%w: tenure must be positive", apperrors.ErrInvalidArgument)
	}
	if annualInterestRate < 0 {
		return nil, fmt.Errorf("%w: interest rate cannot be negative", apperrors.ErrInvalidArgument)
	}
	if startDate.IsZero() {
		startDate = DateOnly(time.Now())
	}

	installment, err := EMI(amount, annualInterestRate, tenure)
	if err != nil {
		return nil, err
	}

	start := DateOnly(startDate)
	return &Loan{
		CustomerID:         customerID,
		LoanAmount:         amount,
		Tenure:             tenure,
		InterestRate:       annualInterestRate,
		MonthlyInstallment: roundTo(installment, 2),
		EMIsPaidOnTime:     0,
		StartDate:          start,
		EndDate:            start.AddDate(0, tenure, 0),
	}, nil
}

// IsCurrent reports whether the loan has not yet matured relative to the
// given evaluation time: end_date >= today.
func (l *Loan) IsCurrent(at time.Time) bool {
	return !l.EndDate.Before(DateOnly(at))
}

// RepaymentsLeft may be negative when EMIs were counted beyond the tenure;
// it is deliberately not clamped.
func (l *Loan) RepaymentsLeft() int {
	return l.Tenure - l.EMIsPaidOnTime
}

// DateOnly strips the time-of-day component for calendar-date comparisons.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func roundTo(n float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(n*pow) / pow
}
