package loan

import (
	"math"
	"time"

	"credit-approval/internal/domain/customer"
)

const maxCreditScore = 100

// CreditScore derives a 0-100 score from the customer's loan history as of
// the given evaluation time. The intermediate sum stays fractional; only the
// final value is clamped.
//
// Components:
//  1. 10 points per past loan fully serviced on schedule (no cap).
//  2. 5 points per past loan, capped at 20.
//  3. 5 points per loan started in the current calendar year, capped at 20.
//  4. 2 points per 100,000 of total loan volume across all loans, capped at 20.
//
// When the sum of current loan amounts exceeds the approved limit the score
// is forced to 0 outright.
func CreditScore(cust *customer.Customer, loans []*Loan, now time.Time) float64 {
	past, current := partitionByMaturity(loans, now)

	var paidOnTimeScore float64
	for _, l := range past {
		if l.EMIsPaidOnTime >= l.Tenure {
			paidOnTimeScore += 10
		}
	}

	numLoansScore := math.Min(float64(len(past))*5, 20)

	var recentCount int
	for _, l := range loans {
		if l.StartDate.Year() == now.Year() {
			recentCount++
		}
	}
	activityScore := math.Min(float64(recentCount)*5, 20)

	var totalVolume Money
	for _, l := range loans {
		totalVolume += l.LoanAmount
	}
	volumeScore := math.Min(totalVolume/100_000*2, 20)

	score := paidOnTimeScore + numLoansScore + activityScore + volumeScore

	var currentDebt Money
	for _, l := range current {
		currentDebt += l.LoanAmount
	}
	if currentDebt > float64(cust.ApprovedLimit) {
		score = 0
	}

	return math.Min(score, maxCreditScore)
}

// partitionByMaturity splits loans into past (matured before today) and
// current (end_date >= today), evaluated against the calendar date of now.
func partitionByMaturity(loans []*Loan, now time.Time) (past, current []*Loan) {
	for _, l := range loans {
		if l.IsCurrent(now) {
			current = append(current, l)
		} else {
			past = append(past, l)
		}
	}
	return past, current
}
