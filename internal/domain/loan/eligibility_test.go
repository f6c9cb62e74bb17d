package loan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// historyScoreAbove50 builds a loan history whose credit score clears the
// approval threshold as of scoringNow. All loans are old and small enough to
// keep the volume component predictable.
func historyScoreAbove50() []*Loan {
	var loans []*Loan
	for i := 0; i < 6; i++ {
		loans = append(loans, pastLoan(50_000, 12, true))
	}
	// on-time 60 + count 20 + volume 6 = 86.
	return loans
}

func TestEvaluateHighScoreKeepsRequestedRate(t *testing.T) {
	cust := testCustomer(100_000)

	result, err := Evaluate(cust, historyScoreAbove50(), 200_000, 10, 12, scoringNow)
	require.NoError(t, err)

	assert.True(t, result.Approved)
	assert.Equal(t, 10.0, result.InterestRate)
	assert.Equal(t, 10.0, result.CorrectedInterestRate)
	assert.Equal(t, 12, result.Tenure)
	assert.Greater(t, result.CreditScore, 50.0)

	expectedEMI, err := EMI(200_000, 10, 12)
	require.NoError(t, err)
	assert.InDelta(t, expectedEMI, result.MonthlyInstallment, 0.005)
}

func TestEvaluateMidBandCorrectsRateTo12ButCannotApprove(t *testing.T) {
	cust := testCustomer(100_000)

	// on-time 30 + count 15 + volume 3 = 48: inside the 30-50 band. The
	// policy still corrects the rate there even though baseline approval
	// requires a score above 50, so approval is structurally false. This
	// is the documented behavior, not a bug.
	var loans []*Loan
	for i := 0; i < 3; i++ {
		loans = append(loans, pastLoan(50_000, 12, true))
	}

	result, err := Evaluate(cust, loans, 200_000, 5, 12, scoringNow)
	require.NoError(t, err)

	assert.InDelta(t, 48.0, result.CreditScore, 1e-9)
	assert.False(t, result.Approved)
	assert.Equal(t, 5.0, result.InterestRate)
	assert.Equal(t, 12.0, result.CorrectedInterestRate)
}

func TestEvaluateLowBandCorrectsRateTo16(t *testing.T) {
	cust := testCustomer(100_000)

	// on-time 10 + count 5 + volume 1 = 16: inside the 10-30 band.
	loans := []*Loan{pastLoan(50_000, 12, true)}

	t.Run("requested rate below floor is raised", func(t *testing.T) {
		result, err := Evaluate(cust, loans, 200_000, 5, 12, scoringNow)
		require.NoError(t, err)

		assert.InDelta(t, 16.0, result.CreditScore, 1e-9)
		assert.False(t, result.Approved)
		assert.Equal(t, 16.0, result.CorrectedInterestRate)

		expectedEMI, err := EMI(200_000, 16, 12)
		require.NoError(t, err)
		assert.InDelta(t, expectedEMI, result.MonthlyInstallment, 0.005)
	})

	t.Run("requested rate above floor is kept", func(t *testing.T) {
		result, err := Evaluate(cust, loans, 200_000, 18, 12, scoringNow)
		require.NoError(t, err)
		assert.Equal(t, 18.0, result.CorrectedInterestRate)
	})
}

func TestEvaluateScoreAtMost10ForcesDecline(t *testing.T) {
	cust := testCustomer(100_000)

	// count 5 + volume 1 = 6: at or below 10 forces a decline even though
	// the EMI condition holds.
	loans := []*Loan{pastLoan(50_000, 12, false)}

	result, err := Evaluate(cust, loans, 200_000, 5, 12, scoringNow)
	require.NoError(t, err)

	assert.LessOrEqual(t, result.CreditScore, 10.0)
	assert.False(t, result.Approved)
	assert.Equal(t, 5.0, result.CorrectedInterestRate)
}

func TestEvaluateEMIConditionBlocksApproval(t *testing.T) {
	cust := testCustomer(100_000)

	loans := historyScoreAbove50()
	loans = append(loans, currentLoan(400_000, 60_000))

	result, err := Evaluate(cust, loans, 200_000, 10, 12, scoringNow)
	require.NoError(t, err)

	// Score is still above 50 but current EMIs eat 60% of the salary.
	assert.Greater(t, result.CreditScore, 50.0)
	assert.False(t, result.Approved)
}

func TestEvaluateIsIdempotent(t *testing.T) {
	cust := testCustomer(100_000)
	loans := historyScoreAbove50()

	first, err := Evaluate(cust, loans, 200_000, 10, 12, scoringNow)
	require.NoError(t, err)
	second, err := Evaluate(cust, loans, 200_000, 10, 12, scoringNow)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEvaluateInstallmentIsRoundedToTwoDecimals(t *testing.T) {
	cust := testCustomer(100_000)

	result, err := Evaluate(cust, historyScoreAbove50(), 123_457, 10.5, 17, scoringNow)
	require.NoError(t, err)

	assert.Equal(t, roundTo(result.MonthlyInstallment, 2), result.MonthlyInstallment)
}
