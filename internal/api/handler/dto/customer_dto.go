package dto

import (
	"strings"

	"credit-approval/internal/domain/customer"
	"credit-approval/internal/pkg/apperrors"
)

// RegisterCustomerRequest carries the registration payload. Fields are
// pointers so a missing key can be told apart from a zero value.
type RegisterCustomerRequest struct {
	FirstName     *string `json:"first_name"`
	LastName      *string `json:"last_name"`
	Age           *int    `json:"age"`
	MonthlyIncome *int64  `json:"monthly_income"`
	PhoneNumber   *int64  `json:"phone_number"`
}

func (r *RegisterCustomerRequest) Validate() error {
	if r.FirstName == nil || strings.TrimSpace(*r.FirstName) == "" {
		return apperrors.NewValidationError("first_name", "first_name is required")
	}
	if r.LastName == nil || strings.TrimSpace(*r.LastName) == "" {
		return apperrors.NewValidationError("last_name", "last_name is required")
	}
	if r.Age == nil {
		return apperrors.NewValidationError("age", "age is required")
	}
	if r.MonthlyIncome == nil {
		return apperrors.NewValidationError("monthly_income", "monthly_income is required")
	}
	if r.PhoneNumber == nil {
		return apperrors.NewValidationError("phone_number", "phone_number is required")
	}
	return nil
}

type RegisterCustomerResponse struct {
	CustomerID    int64  `json:"customer_id"`
	Name          string `json:"name"`
	Age           int    `json:"age"`
	MonthlyIncome int64  `json:"monthly_income"`
	ApprovedLimit int64  `json:"approved_limit"`
	PhoneNumber   int64  `json:"phone_number"`
}

func NewRegisterCustomerResponse(cust *customer.Customer) RegisterCustomerResponse {
	if cust == nil {
		return RegisterCustomerResponse{}
	}
	return RegisterCustomerResponse{
		CustomerID:    cust.CustomerID,
		Name:          cust.FullName(),
		Age:           cust.Age,
		MonthlyIncome: cust.MonthlySalary,
		ApprovedLimit: cust.ApprovedLimit,
		PhoneNumber:   cust.PhoneNumber,
	}
}

// CustomerSummary is the customer block embedded in the single-loan view.
type CustomerSummary struct {
	ID          int64  `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber int64  `json:"phone_number"`
	Age         int    `json:"age"`
}

func NewCustomerSummary(cust *customer.Customer) CustomerSummary {
	if cust == nil {
		return CustomerSummary{}
	}
	return CustomerSummary{
		ID:          cust.CustomerID,
		FirstName:   cust.FirstName,
		LastName:    cust.LastName,
		PhoneNumber: cust.PhoneNumber,
		Age:         cust.Age,
	}
}
