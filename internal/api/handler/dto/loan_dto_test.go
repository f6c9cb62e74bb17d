package dto

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"credit-approval/internal/domain/loan"
	"credit-approval/internal/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoanRequestValidateNamesMissingField(t *testing.T) {
	customerID := int64(1)
	amount := 100_000.0
	rate := 10.0

	req := LoanRequest{CustomerID: &customerID, LoanAmount: &amount, InterestRate: &rate}
	err := req.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	var vErr *apperrors.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "tenure", vErr.Field)
}

func TestCreateLoanResponseEncodesNullLoanIDOnDecline(t *testing.T) {
	resp := NewCreateLoanResponse(&loan.IssuanceResult{
		CustomerID:         1,
		Approved:           false,
		Message:            "Loan not approved due to eligibility criteria",
		MonthlyInstallment: 8791.59,
	})

	body, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"loan_id":null`)
	assert.Contains(t, string(body), `"loan_approved":false`)
}

func TestNewCustomerLoanItemsComputesRepaymentsLeft(t *testing.T) {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	items := NewCustomerLoanItems([]*loan.Loan{
		{
			ID:                 4,
			LoanAmount:         100_000,
			InterestRate:       10,
			MonthlyInstallment: 8791.594000000001,
			Tenure:             12,
			EMIsPaidOnTime:     5,
			StartDate:          start,
			EndDate:            start.AddDate(0, 12, 0),
		},
	})

	require.Len(t, items, 1)
	assert.Equal(t, int64(4), items[0].LoanID)
	assert.Equal(t, 7, items[0].RepaymentsLeft)
	assert.Equal(t, 8791.59, items[0].MonthlyInstallment)
}
