package loan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"credit-approval/internal/domain/customer"
	"credit-approval/internal/event"
	"credit-approval/internal/infrastructure/monitoring"
	"credit-approval/internal/pkg/apperrors"
)

const declineMessage = "Loan not approved due to eligibility criteria"

type LoanService interface {
	CheckEligibility(ctx context.Context, customerID int64, loanAmount Money, interestRate Money, tenure int) (*Eligibility, error)

	CreateLoan(ctx context.Context, customerID int64, loanAmount Money, interestRate Money, tenure int) (*IssuanceResult, error)

	GetLoan(ctx context.Context, loanID int64) (*LoanDetail, error)

	ListCustomerLoans(ctx context.Context, customerID int64) ([]*Loan, error)
}

// LoanDetail pairs a loan with its owning customer for the single-loan view.
type LoanDetail struct {
	Loan     *Loan
	Customer *customer.Customer
}

// IssuanceResult reports the outcome of a create-loan request. Loan is nil
// when the request was declined; the installment is still reported for
// information.
type IssuanceResult struct {
	CustomerID         int64
	Loan               *Loan
	Approved           bool
	Message            string
	MonthlyInstallment Money
}

type loanServiceImpl struct {
	repo            Repository
	customerService customer.CustomerService
	pub             event.Publisher
	logger          *slog.Logger
}

func NewLoanService(r Repository, cs customer.CustomerService, pub event.Publisher, logger *slog.Logger) LoanService {
	if pub == nil {
		pub = event.NopPublisher{}
	}
	return &loanServiceImpl{repo: r, customerService: cs, pub: pub, logger: logger.With("component", "loanService")}
}

func (s *loanServiceImpl) CheckEligibility(ctx context.Context, customerID int64, loanAmount Money, interestRate Money, tenure int) (*Eligibility, error) {
	eligibility, _, err := s.evaluate(ctx, customerID, loanAmount, interestRate, tenure)
	if err != nil {
		return nil, err
	}
	return eligibility, nil
}

func (s *loanServiceImpl) CreateLoan(ctx context.Context, customerID int64, loanAmount Money, interestRate Money, tenure int) (*IssuanceResult, error) {
	s.logger.InfoContext(ctx, "Processing loan issuance request", "customerID", customerID)

	eligibility, _, err := s.evaluate(ctx, customerID, loanAmount, interestRate, tenure)
	if err != nil {
		return nil, err
	}

	if !eligibility.Approved {
		monitoring.RecordLoanDecision("declined")
		s.logger.InfoContext(ctx, "Loan declined",
			"customerID", customerID,
			"creditScore", eligibility.CreditScore)
		return &IssuanceResult{
			CustomerID:         customerID,
			Approved:           false,
			Message:            declineMessage,
			MonthlyInstallment: eligibility.MonthlyInstallment,
		}, nil
	}

	newLoan, err := NewLoan(customerID, loanAmount, tenure, eligibility.CorrectedInterestRate, DateOnly(time.Now()))
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to build loan object", "error", err)
		return nil, fmt.Errorf("failed to build loan: %w", err)
	}
	// NewLoan recomputes the EMI at the corrected rate; keep the exact
	// installment the eligibility answer reported.
	newLoan.MonthlyInstallment = eligibility.MonthlyInstallment

	createdLoan, err := s.repo.Create(ctx, newLoan)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to persist loan", "customerID", customerID, "error", err)
		return nil, fmt.Errorf("failed to save loan: %w", err)
	}
	monitoring.RecordLoanDecision("approved")
	s.logger.InfoContext(ctx, "Loan issued", "loanID", createdLoan.ID, "customerID", customerID,
		"interestRate", createdLoan.InterestRate)

	s.publishLoanCreatedEvent(ctx, createdLoan)

	return &IssuanceResult{
		CustomerID:         customerID,
		Loan:               createdLoan,
		Approved:           true,
		Message:            "",
		MonthlyInstallment: createdLoan.MonthlyInstallment,
	}, nil
}

func (s *loanServiceImpl) GetLoan(ctx context.Context, loanID int64) (*LoanDetail, error) {
	if loanID <= 0 {
		return nil, fmt.Errorf("%w: loan ID must be positive", apperrors.ErrInvalidArgument)
	}

	l, err := s.repo.FindByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "Loan not found", "loanID", loanID)
			return nil, fmt.Errorf("%w: loan with ID %d not found", apperrors.ErrNotFound, loanID)
		}
		s.logger.ErrorContext(ctx, "Failed to get loan", "loanID", loanID, "error", err)
		return nil, fmt.Errorf("failed to get loan %d: %w", loanID, err)
	}

	cust, err := s.customerService.GetCustomer(ctx, l.CustomerID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to get owning customer for loan",
			"loanID", loanID, "customerID", l.CustomerID, "error", err)
		return nil, fmt.Errorf("failed to get customer for loan %d: %w", loanID, err)
	}

	return &LoanDetail{Loan: l, Customer: cust}, nil
}

func (s *loanServiceImpl) ListCustomerLoans(ctx context.Context, customerID int64) ([]*Loan, error) {
	// Resolving the customer first distinguishes an unknown customer from
	// one with no loans.
	if _, err := s.customerService.GetCustomer(ctx, customerID); err != nil {
		return nil, err
	}

	loans, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list loans", "customerID", customerID, "error", err)
		return nil, fmt.Errorf("failed to list loans for customer %d: %w", customerID, err)
	}
	return loans, nil
}

// evaluate fetches the customer and full loan history once, then runs the
// pure eligibility computation against the current time.
func (s *loanServiceImpl) evaluate(ctx context.Context, customerID int64, loanAmount Money, interestRate Money, tenure int) (*Eligibility, *customer.Customer, error) {
	if loanAmount <= 0 {
		return nil, nil, apperrors.NewValidationError("loan_amount", "must be a positive number")
	}
	if interestRate < 0 {
		return nil, nil, apperrors.NewValidationError("interest_rate", "cannot be negative")
	}
	if tenure <= 0 {
		return nil, nil, apperrors.NewValidationError("tenure", "must be a positive number")
	}

	cust, err := s.customerService.GetCustomer(ctx, customerID)
	if err != nil {
		if errors.Is(err, customer.ErrNotFound) || errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "Customer not found", "customerID", customerID)
			return nil, nil, fmt.Errorf("%w: customer with ID %d not found", apperrors.ErrNotFound, customerID)
		}
		s.logger.ErrorContext(ctx, "Failed to get customer", "customerID", customerID, "error", err)
		return nil, nil, fmt.Errorf("failed to verify customer: %w", err)
	}

	loans, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to load loan history", "customerID", customerID, "error", err)
		return nil, nil, fmt.Errorf("failed to load loan history for customer %d: %w", customerID, err)
	}

	eligibility, err := Evaluate(cust, loans, loanAmount, interestRate, tenure, time.Now())
	if err != nil {
		s.logger.ErrorContext(ctx, "Eligibility computation failed", "customerID", customerID, "error", err)
		return nil, nil, err
	}
	monitoring.RecordCreditScore(eligibility.CreditScore)

	return eligibility, cust, nil
}

func (s *loanServiceImpl) publishLoanCreatedEvent(ctx context.Context, l *Loan) {
	evt := event.LoanCreatedEvent{
		LoanID:             l.ID,
		CustomerID:         l.CustomerID,
		LoanAmount:         l.LoanAmount,
		InterestRate:       l.InterestRate,
		Tenure:             l.Tenure,
		MonthlyInstallment: l.MonthlyInstallment,
		StartDate:          l.StartDate,
		EndDate:            l.EndDate,
		Timestamp:          time.Now(),
	}

	if err := s.pub.PublishLoanCreated(ctx, evt); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish loan created event", "loanID", l.ID, "error", err)
	}
}
