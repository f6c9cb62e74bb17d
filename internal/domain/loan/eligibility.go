package loan

import (
	"math"
	"time"

	"credit-approval/internal/domain/customer"
)

type Eligibility struct {
	CustomerID            int64
	Approved              bool
	CreditScore           float64
	InterestRate          Money
	CorrectedInterestRate Money
	Tenure                int
	MonthlyInstallment    Money
}

// Evaluate decides approval and the corrected interest rate for a proposed
// loan. Baseline approval requires a credit score above 50 and total current
// EMIs below half the monthly salary. The rate-correction bands below the
// baseline threshold are kept exactly as the lending policy states them,
// even though approval cannot hold inside them; a corrected rate is still
// reported for those bands.
//
// The installment in the result is computed at the corrected rate and
// rounded to two decimals. Approval is advisory: evaluation never persists
// anything.
func Evaluate(cust *customer.Customer, loans []*Loan, loanAmount Money, interestRate Money, tenure int, now time.Time) (*Eligibility, error) {
	creditScore := CreditScore(cust, loans, now)

	var totalEMI Money
	for _, l := range loans {
		if l.IsCurrent(now) {
			totalEMI += l.MonthlyInstallment
		}
	}
	emiCondition := totalEMI < 0.5*float64(cust.MonthlySalary)

	approved := creditScore > 50 && emiCondition
	correctedRate := interestRate

	switch {
	case creditScore <= 50 && creditScore > 30:
		correctedRate = math.Max(interestRate, 12)
	case creditScore <= 30 && creditScore > 10:
		correctedRate = math.Max(interestRate, 16)
	case creditScore <= 10:
		approved = false
	}

	installment, err := EMI(loanAmount, correctedRate, tenure)
	if err != nil {
		return nil, err
	}

	return &Eligibility{
		CustomerID:            cust.CustomerID,
		Approved:              approved,
		CreditScore:           creditScore,
		InterestRate:          interestRate,
		CorrectedInterestRate: correctedRate,
		Tenure:                tenure,
		MonthlyInstallment:    roundTo(installment, 2),
	}, nil
}
