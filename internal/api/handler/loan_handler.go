package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"credit-approval/internal/api/handler/dto"
	"credit-approval/internal/domain/loan"
	"credit-approval/internal/pkg/apperrors"

	"github.com/go-chi/chi/v5"
)

type LoanHandler struct {
	service loan.LoanService
	logger  *slog.Logger
}

func NewLoanHandler(s loan.LoanService, l *slog.Logger) *LoanHandler {
	return &LoanHandler{
		service: s,
		logger:  l.With("component", "LoanHandler"),
	}
}

func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("no request body")
	}
	// Unknown keys are ignored so clients can send payloads with extra
	// fields without being rejected.
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Default().Error("Failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":{"message":"Internal server error"}}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

// respondError maps domain failures to HTTP statuses: missing resources are
// 404, everything else falls through to 400 carrying the error text, so a
// computation or storage failure surfaces its message rather than a silent
// 500.
func respondError(w http.ResponseWriter, err error) {
	status, message, field := http.StatusBadRequest, err.Error(), ""
	var validationError *apperrors.ValidationError

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		status, message = http.StatusNotFound, "Resource not found."
	case errors.As(err, &validationError):
		message, field = validationError.Message, validationError.Field
	case errors.Is(err, apperrors.ErrUnauthorized):
		status, message = http.StatusUnauthorized, "Unauthorized."
	default:
		slog.Default().Warn("Request failed", "error", err)
	}

	resp := dto.ErrorResponse{
		Error: dto.ErrorDetail{
			Message: message,
			Field:   field,
		},
	}
	respondJSON(w, status, resp)
}

func getLoanIDFromURL(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "loanID")
	if idStr == "" {
		return 0, fmt.Errorf("%w: loanID not found in URL path", apperrors.ErrInvalidArgument)
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid loanID format in URL path: %s", apperrors.ErrInvalidArgument, idStr)
	}
	return id, nil
}

func (h *LoanHandler) decodeLoanRequest(w http.ResponseWriter, r *http.Request) (*dto.LoanRequest, bool) {
	var req dto.LoanRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return nil, false
	}
	if err := req.Validate(); err != nil {
		respondError(w, err)
		return nil, false
	}
	return &req, true
}

// CheckEligibility evaluates a loan request without persisting anything.
//
// @Summary Check loan eligibility
// @Description Scores the customer's loan history and reports whether the requested loan would be approved, along with the interest rate the offer would actually carry.
// @Tags Loans
// @Accept json
// @Produce json
// @Param request body dto.LoanRequest true "Eligibility check payload"
// @Success 200 {object} dto.EligibilityResponse "Eligibility evaluated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload or validation error"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Router /check-eligibility [post]
// @Security BearerAuth
func (h *LoanHandler) CheckEligibility(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeLoanRequest(w, r)
	if !ok {
		return
	}

	eligibility, err := h.service.CheckEligibility(r.Context(), *req.CustomerID, *req.LoanAmount, *req.InterestRate, *req.Tenure)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewEligibilityResponse(eligibility))
}

// CreateLoan runs the eligibility evaluation and persists the loan when it
// passes.
//
// @Summary Create a new loan
// @Description Evaluates the request exactly like check-eligibility and, when approved, issues the loan at the corrected interest rate. A declined request returns loan_id null with the decline message.
// @Tags Loans
// @Accept json
// @Produce json
// @Param request body dto.LoanRequest true "Loan issuance payload"
// @Success 200 {object} dto.CreateLoanResponse "Issuance outcome"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload or validation error"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Router /create-loan [post]
// @Security BearerAuth
func (h *LoanHandler) CreateLoan(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeLoanRequest(w, r)
	if !ok {
		return
	}

	result, err := h.service.CreateLoan(r.Context(), *req.CustomerID, *req.LoanAmount, *req.InterestRate, *req.Tenure)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewCreateLoanResponse(result))
}

// ViewLoan retrieves a single loan with its customer embedded.
//
// @Summary Retrieve loan details
// @Description Returns the loan identified by loanID together with a summary of the owning customer.
// @Tags Loans
// @Produce json
// @Param loanID path int true "Loan ID"
// @Success 200 {object} dto.LoanDetailResponse "Loan details"
// @Failure 400 {object} dto.ErrorResponse "Invalid loan ID"
// @Failure 404 {object} dto.ErrorResponse "Loan not found"
// @Router /view-loan/{loanID} [get]
// @Security BearerAuth
func (h *LoanHandler) ViewLoan(w http.ResponseWriter, r *http.Request) {
	loanID, err := getLoanIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	detail, err := h.service.GetLoan(r.Context(), loanID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewLoanDetailResponse(detail))
}

// ViewLoans lists every loan of a customer.
//
// @Summary List a customer's loans
// @Description Returns all loans of the customer identified by customerID, each with the number of repayments left.
// @Tags Loans
// @Produce json
// @Param customerID path int true "Customer ID"
// @Success 200 {array} dto.CustomerLoanItem "Customer's loans"
// @Failure 400 {object} dto.ErrorResponse "Invalid customer ID"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Router /view-loans/{customerID} [get]
// @Security BearerAuth
func (h *LoanHandler) ViewLoans(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	loans, err := h.service.ListCustomerLoans(r.Context(), customerID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewCustomerLoanItems(loans))
}
