package customer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"credit-approval/internal/event"
	"credit-approval/internal/infrastructure/monitoring"
	"credit-approval/internal/pkg/apperrors"
)

type CustomerService interface {
	Register(ctx context.Context, firstName, lastName string, age int, phoneNumber, monthlyIncome int64) (*Customer, error)
	GetCustomer(ctx context.Context, customerID int64) (*Customer, error)
}

var _ CustomerService = (*customerService)(nil)

type customerService struct {
	repo   Repository
	pub    event.Publisher
	logger *slog.Logger
}

func NewCustomerService(repo Repository, pub event.Publisher, logger *slog.Logger) CustomerService {
	if repo == nil {
		panic("customer repository cannot be nil")
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerService, using default stderr handler")
	}

	if pub == nil {
		pub = event.NopPublisher{}
	}

	return &customerService{
		repo:   repo,
		pub:    pub,
		logger: logger.With(slog.String("component", "customerService")),
	}
}

func (s *customerService) Register(ctx context.Context, firstName, lastName string, age int, phoneNumber, monthlyIncome int64) (*Customer, error) {
	s.logger.InfoContext(ctx, "Attempting to register new customer")

	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" {
		s.logger.WarnContext(ctx, "Validation failed: first_name is empty")
		return nil, apperrors.NewValidationError("first_name", "cannot be empty")
	}
	if lastName == "" {
		s.logger.WarnContext(ctx, "Validation failed: last_name is empty")
		return nil, apperrors.NewValidationError("last_name", "cannot be empty")
	}
	if age <= 0 {
		s.logger.WarnContext(ctx, "Validation failed: age must be positive", slog.Int("age", age))
		return nil, apperrors.NewValidationError("age", "must be a positive number")
	}
	if phoneNumber <= 0 {
		s.logger.WarnContext(ctx, "Validation failed: phone_number must be positive")
		return nil, apperrors.NewValidationError("phone_number", "must be a positive number")
	}
	if monthlyIncome <= 0 {
		s.logger.WarnContext(ctx, "Validation failed: monthly_income must be positive")
		return nil, apperrors.NewValidationError("monthly_income", "must be a positive number")
	}

	cust := NewCustomer(firstName, lastName, age, phoneNumber, monthlyIncome)

	if err := s.repo.Save(ctx, cust); err != nil {
		s.logger.ErrorContext(ctx, "Failed to save customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save customer: %w", err)
	}
	monitoring.RecordCustomerCreated()
	s.logger.InfoContext(ctx, "Customer registered successfully",
		slog.Int64("customerID", cust.CustomerID),
		slog.Int64("approvedLimit", cust.ApprovedLimit))

	s.publishRegisteredEvent(ctx, cust)

	return cust, nil
}

func (s *customerService) GetCustomer(ctx context.Context, customerID int64) (*Customer, error) {
	if customerID <= 0 {
		return nil, fmt.Errorf("%w: customer ID must be positive", apperrors.ErrInvalidArgument)
	}

	cust, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "Customer not found", slog.Int64("customerID", customerID))
			return nil, fmt.Errorf("%w: customer with ID %d not found", apperrors.ErrNotFound, customerID)
		}
		s.logger.ErrorContext(ctx, "Failed to get customer", slog.Int64("customerID", customerID), slog.Any("error", err))
		return nil, fmt.Errorf("failed to get customer %d: %w", customerID, err)
	}

	return cust, nil
}

func (s *customerService) publishRegisteredEvent(ctx context.Context, cust *Customer) {
	evt := event.CustomerRegisteredEvent{
		CustomerID:    cust.CustomerID,
		Name:          cust.FullName(),
		ApprovedLimit: cust.ApprovedLimit,
		Timestamp:     time.Now(),
	}

	if err := s.pub.PublishCustomerRegistered(ctx, evt); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish customer registered event",
			slog.Int64("customerID", cust.CustomerID), slog.Any("error", err))
	}
}
