package loan

import (
	"testing"
	"time"

	"credit-approval/internal/domain/customer"
	"github.com/stretchr/testify/assert"
)

var scoringNow = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

func testCustomer(salary int64) *customer.Customer {
	return &customer.Customer{
		CustomerID:    1,
		FirstName:     "Asha",
		LastName:      "Rao",
		Age:           34,
		PhoneNumber:   9876543210,
		MonthlySalary: salary,
		ApprovedLimit: customer.ApprovedLimitFor(salary),
	}
}

// pastLoan matured well before the evaluation date; paidInFull controls the
// on-time component.
func pastLoan(amount Money, tenure int, paidInFull bool) *Loan {
	emisPaid := 0
	if paidInFull {
		emisPaid = tenure
	}
	start := scoringNow.AddDate(-4, 0, 0)
	return &Loan{
		CustomerID:     1,
		LoanAmount:     amount,
		Tenure:         tenure,
		EMIsPaidOnTime: emisPaid,
		StartDate:      DateOnly(start),
		EndDate:        DateOnly(start.AddDate(0, tenure, 0)),
	}
}

func currentLoan(amount Money, installment Money) *Loan {
	start := scoringNow.AddDate(0, -2, 0)
	return &Loan{
		CustomerID:         1,
		LoanAmount:         amount,
		Tenure:             12,
		MonthlyInstallment: installment,
		StartDate:          DateOnly(start),
		EndDate:            DateOnly(start.AddDate(0, 12, 0)),
	}
}

func TestCreditScoreNoLoansIsZero(t *testing.T) {
	score := CreditScore(testCustomer(100_000), nil, scoringNow)
	assert.Equal(t, 0.0, score)
}

func TestCreditScoreOverrideWhenCurrentDebtExceedsLimit(t *testing.T) {
	cust := testCustomer(10_000) // approved limit 400,000

	loans := []*Loan{
		pastLoan(100_000, 12, true),
		currentLoan(500_000, 5_000),
	}

	score := CreditScore(cust, loans, scoringNow)
	assert.Equal(t, 0.0, score)
}

func TestCreditScoreClampedAt100(t *testing.T) {
	cust := testCustomer(200_000)

	var loans []*Loan
	for i := 0; i < 12; i++ {
		loans = append(loans, pastLoan(500_000, 12, true))
	}

	// on-time 120, count capped 20, volume capped 20: raw 160.
	score := CreditScore(cust, loans, scoringNow)
	assert.Equal(t, 100.0, score)
}

func TestCreditScoreComponentCaps(t *testing.T) {
	cust := testCustomer(200_000)

	var loans []*Loan
	for i := 0; i < 7; i++ {
		loans = append(loans, pastLoan(50_000, 12, false))
	}

	// on-time 0, count min(35, 20) = 20, activity 0, volume 350,000 -> 7.
	score := CreditScore(cust, loans, scoringNow)
	assert.InDelta(t, 27.0, score, 1e-9)
}

func TestCreditScorePreservesFractionalVolume(t *testing.T) {
	cust := testCustomer(200_000)

	loans := []*Loan{pastLoan(120_000, 12, false)}

	// count 5 + volume 120,000/100,000*2 = 2.4.
	score := CreditScore(cust, loans, scoringNow)
	assert.InDelta(t, 7.4, score, 1e-9)
}

func TestCreditScoreRecentActivityComponent(t *testing.T) {
	cust := testCustomer(200_000)

	start := time.Date(scoringNow.Year(), 2, 1, 0, 0, 0, 0, time.UTC)
	thisYear := &Loan{
		CustomerID: 1,
		LoanAmount: 50_000,
		Tenure:     3,
		StartDate:  start,
		EndDate:    start.AddDate(0, 3, 0),
	}

	// Matured in May, started in February: past and recent at once.
	// count 5 + activity 5 + volume 1.
	score := CreditScore(cust, []*Loan{thisYear}, scoringNow)
	assert.InDelta(t, 11.0, score, 1e-9)
}

func TestCreditScoreOnTimeComponentHasNoCap(t *testing.T) {
	cust := testCustomer(500_000)

	var loans []*Loan
	for i := 0; i < 9; i++ {
		loans = append(loans, pastLoan(10_000, 12, true))
	}

	// on-time 90, count capped 20, volume 90,000 -> 1.8; clamp to 100.
	score := CreditScore(cust, loans, scoringNow)
	assert.Equal(t, 100.0, score)
}
