package loan

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"credit-approval/internal/domain/customer"
	"credit-approval/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, nil))

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, l *Loan) (*Loan, error) {
	args := m.Called(ctx, l)
	if created, ok := args.Get(0).(*Loan); ok {
		return created, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) Upsert(ctx context.Context, l *Loan) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockRepository) FindByID(ctx context.Context, loanID int64) (*Loan, error) {
	args := m.Called(ctx, loanID)
	if l, ok := args.Get(0).(*Loan); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) ListByCustomer(ctx context.Context, customerID int64) ([]*Loan, error) {
	args := m.Called(ctx, customerID)
	if loans, ok := args.Get(0).([]*Loan); ok {
		return loans, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) Register(ctx context.Context, firstName, lastName string, age int, phoneNumber, monthlyIncome int64) (*customer.Customer, error) {
	args := m.Called(ctx, firstName, lastName, age, phoneNumber, monthlyIncome)
	if cust, ok := args.Get(0).(*customer.Customer); ok {
		return cust, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCustomerService) GetCustomer(ctx context.Context, customerID int64) (*customer.Customer, error) {
	args := m.Called(ctx, customerID)
	if cust, ok := args.Get(0).(*customer.Customer); ok {
		return cust, args.Error(1)
	}
	return nil, args.Error(1)
}

func newTestService(t *testing.T) (*MockRepository, *MockCustomerService, LoanService) {
	t.Helper()
	mockRepo := new(MockRepository)
	mockCustomers := new(MockCustomerService)
	service := NewLoanService(mockRepo, mockCustomers, nil, logger)
	return mockRepo, mockCustomers, service
}

func TestCheckEligibilityUnknownCustomer(t *testing.T) {
	mockRepo, mockCustomers, service := newTestService(t)
	ctx := context.Background()

	mockCustomers.On("GetCustomer", ctx, int64(42)).Return(nil, customer.ErrNotFound)

	_, err := service.CheckEligibility(ctx, 42, 200_000, 10, 12)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	mockRepo.AssertNotCalled(t, "ListByCustomer", mock.Anything, mock.Anything)
}

func TestCheckEligibilityValidationNamesField(t *testing.T) {
	_, _, service := newTestService(t)
	ctx := context.Background()

	_, err := service.CheckEligibility(ctx, 1, -5, 10, 12)
	require.Error(t, err)

	var validationErr *apperrors.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "loan_amount", validationErr.Field)
}

func TestCheckEligibilityApprovesGoodHistory(t *testing.T) {
	mockRepo, mockCustomers, service := newTestService(t)
	ctx := context.Background()

	cust := testCustomer(100_000)
	mockCustomers.On("GetCustomer", ctx, cust.CustomerID).Return(cust, nil)
	mockRepo.On("ListByCustomer", ctx, cust.CustomerID).Return(historyScoreAbove50(), nil)

	result, err := service.CheckEligibility(ctx, cust.CustomerID, 200_000, 10, 12)
	require.NoError(t, err)

	assert.True(t, result.Approved)
	assert.Equal(t, 10.0, result.CorrectedInterestRate)
	mockRepo.AssertExpectations(t)
	mockCustomers.AssertExpectations(t)
}

func TestCreateLoanDeclinedDoesNotPersist(t *testing.T) {
	mockRepo, mockCustomers, service := newTestService(t)
	ctx := context.Background()

	cust := testCustomer(100_000)
	mockCustomers.On("GetCustomer", ctx, cust.CustomerID).Return(cust, nil)
	// No history at all: score 0, guaranteed decline.
	mockRepo.On("ListByCustomer", ctx, cust.CustomerID).Return([]*Loan{}, nil)

	result, err := service.CreateLoan(ctx, cust.CustomerID, 200_000, 10, 12)
	require.NoError(t, err)

	assert.False(t, result.Approved)
	assert.Nil(t, result.Loan)
	assert.Equal(t, declineMessage, result.Message)
	assert.Greater(t, result.MonthlyInstallment, 0.0)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateLoanApprovedPersistsCorrectedRate(t *testing.T) {
	mockRepo, mockCustomers, service := newTestService(t)
	ctx := context.Background()

	cust := testCustomer(100_000)
	mockCustomers.On("GetCustomer", ctx, cust.CustomerID).Return(cust, nil)
	mockRepo.On("ListByCustomer", ctx, cust.CustomerID).Return(historyScoreAbove50(), nil)

	var persisted *Loan
	mockRepo.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
		persisted = args.Get(1).(*Loan)
	}).Return(&Loan{ID: 77, CustomerID: cust.CustomerID, InterestRate: 10, MonthlyInstallment: 17583.18}, nil)

	result, err := service.CreateLoan(ctx, cust.CustomerID, 200_000, 10, 12)
	require.NoError(t, err)

	assert.True(t, result.Approved)
	require.NotNil(t, result.Loan)
	assert.Equal(t, int64(77), result.Loan.ID)
	assert.Empty(t, result.Message)

	require.NotNil(t, persisted)
	assert.Equal(t, 10.0, persisted.InterestRate)
	assert.Equal(t, 12, persisted.Tenure)
	assert.Equal(t, 0, persisted.EMIsPaidOnTime)
	assert.Equal(t, persisted.StartDate.AddDate(0, 12, 0), persisted.EndDate)
	mockRepo.AssertExpectations(t)
}

func TestGetLoanEmbedsCustomer(t *testing.T) {
	mockRepo, mockCustomers, service := newTestService(t)
	ctx := context.Background()

	l := &Loan{ID: 5, CustomerID: 1, LoanAmount: 200_000}
	cust := testCustomer(100_000)

	mockRepo.On("FindByID", ctx, int64(5)).Return(l, nil)
	mockCustomers.On("GetCustomer", ctx, int64(1)).Return(cust, nil)

	detail, err := service.GetLoan(ctx, 5)
	require.NoError(t, err)

	assert.Equal(t, l, detail.Loan)
	assert.Equal(t, cust, detail.Customer)
}

func TestGetLoanNotFound(t *testing.T) {
	mockRepo, _, service := newTestService(t)
	ctx := context.Background()

	mockRepo.On("FindByID", ctx, int64(99)).Return(nil, apperrors.ErrNotFound)

	_, err := service.GetLoan(ctx, 99)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestListCustomerLoansUnknownCustomer(t *testing.T) {
	mockRepo, mockCustomers, service := newTestService(t)
	ctx := context.Background()

	mockCustomers.On("GetCustomer", ctx, int64(42)).Return(nil, apperrors.ErrNotFound)

	_, err := service.ListCustomerLoans(ctx, 42)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	mockRepo.AssertNotCalled(t, "ListByCustomer", mock.Anything, mock.Anything)
}

func TestListCustomerLoans(t *testing.T) {
	mockRepo, mockCustomers, service := newTestService(t)
	ctx := context.Background()

	cust := testCustomer(100_000)
	loans := []*Loan{{ID: 1, Tenure: 12, EMIsPaidOnTime: 5}}

	mockCustomers.On("GetCustomer", ctx, cust.CustomerID).Return(cust, nil)
	mockRepo.On("ListByCustomer", ctx, cust.CustomerID).Return(loans, nil)

	got, err := service.ListCustomerLoans(ctx, cust.CustomerID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 7, got[0].RepaymentsLeft())
}
