package dto

import (
	"credit-approval/internal/domain/loan"
	"credit-approval/internal/pkg/apperrors"

	"github.com/shopspring/decimal"
)

// LoanRequest is the shared payload of the eligibility check and loan
// issuance endpoints.
type LoanRequest struct {
	CustomerID   *int64   `json:"customer_id"`
	LoanAmount   *float64 `json:"loan_amount"`
	InterestRate *float64 `json:"interest_rate"`
	Tenure       *int     `json:"tenure"`
}

func (r *LoanRequest) Validate() error {
	if r.CustomerID == nil {
		return apperrors.NewValidationError("customer_id", "customer_id is required")
	}
	if r.LoanAmount == nil {
		return apperrors.NewValidationError("loan_amount", "loan_amount is required")
	}
	if r.InterestRate == nil {
		return apperrors.NewValidationError("interest_rate", "interest_rate is required")
	}
	if r.Tenure == nil {
		return apperrors.NewValidationError("tenure", "tenure is required")
	}
	return nil
}

type EligibilityResponse struct {
	CustomerID            int64   `json:"customer_id"`
	Approval              bool    `json:"approval"`
	InterestRate          float64 `json:"interest_rate"`
	CorrectedInterestRate float64 `json:"corrected_interest_rate"`
	Tenure                int     `json:"tenure"`
	MonthlyInstallment    float64 `json:"monthly_installment"`
}

func NewEligibilityResponse(e *loan.Eligibility) EligibilityResponse {
	if e == nil {
		return EligibilityResponse{}
	}
	return EligibilityResponse{
		CustomerID:            e.CustomerID,
		Approval:              e.Approved,
		InterestRate:          e.InterestRate,
		CorrectedInterestRate: e.CorrectedInterestRate,
		Tenure:                e.Tenure,
		MonthlyInstallment:    moneyAmount(e.MonthlyInstallment),
	}
}

// CreateLoanResponse reports an issuance outcome. LoanID is null when the
// request was declined.
type CreateLoanResponse struct {
	LoanID             *int64  `json:"loan_id"`
	CustomerID         int64   `json:"customer_id"`
	LoanApproved       bool    `json:"loan_approved"`
	Message            string  `json:"message"`
	MonthlyInstallment float64 `json:"monthly_installment"`
}

func NewCreateLoanResponse(result *loan.IssuanceResult) CreateLoanResponse {
	if result == nil {
		return CreateLoanResponse{}
	}
	resp := CreateLoanResponse{
		CustomerID:         result.CustomerID,
		LoanApproved:       result.Approved,
		Message:            result.Message,
		MonthlyInstallment: moneyAmount(result.MonthlyInstallment),
	}
	if result.Loan != nil {
		resp.LoanID = &result.Loan.ID
	}
	return resp
}

// LoanDetailResponse is the single-loan view with its customer embedded.
type LoanDetailResponse struct {
	LoanID             int64           `json:"loan_id"`
	Customer           CustomerSummary `json:"customer"`
	LoanAmount         float64         `json:"loan_amount"`
	InterestRate       float64         `json:"interest_rate"`
	MonthlyInstallment float64         `json:"monthly_installment"`
	Tenure             int             `json:"tenure"`
}

func NewLoanDetailResponse(detail *loan.LoanDetail) LoanDetailResponse {
	if detail == nil || detail.Loan == nil {
		return LoanDetailResponse{}
	}
	return LoanDetailResponse{
		LoanID:             detail.Loan.ID,
		Customer:           NewCustomerSummary(detail.Customer),
		LoanAmount:         moneyAmount(detail.Loan.LoanAmount),
		InterestRate:       detail.Loan.InterestRate,
		MonthlyInstallment: moneyAmount(detail.Loan.MonthlyInstallment),
		Tenure:             detail.Loan.Tenure,
	}
}

// CustomerLoanItem is one entry of the per-customer loan listing.
type CustomerLoanItem struct {
	LoanID             int64   `json:"loan_id"`
	LoanAmount         float64 `json:"loan_amount"`
	InterestRate       float64 `json:"interest_rate"`
	MonthlyInstallment float64 `json:"monthly_installment"`
	RepaymentsLeft     int     `json:"repayments_left"`
}

func NewCustomerLoanItems(loans []*loan.Loan) []CustomerLoanItem {
	items := make([]CustomerLoanItem, 0, len(loans))
	for _, l := range loans {
		items = append(items, CustomerLoanItem{
			LoanID:             l.ID,
			LoanAmount:         moneyAmount(l.LoanAmount),
			InterestRate:       l.InterestRate,
			MonthlyInstallment: moneyAmount(l.MonthlyInstallment),
			RepaymentsLeft:     l.RepaymentsLeft(),
		})
	}
	return items
}

type ErrorDetail struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type TokenRequest struct {
	Username string `json:"username"`
}

// moneyAmount renders a money figure at two decimal places, avoiding the
// float artifacts a plain division can leave behind.
func moneyAmount(amount loan.Money) float64 {
	rounded, _ := decimal.NewFromFloat(float64(amount)).Round(2).Float64()
	return rounded
}
