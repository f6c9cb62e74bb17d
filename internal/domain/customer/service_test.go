package customer

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"credit-approval/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, nil))

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Save(ctx context.Context, cust *Customer) error {
	args := m.Called(ctx, cust)
	return args.Error(0)
}

func (m *MockRepository) Upsert(ctx context.Context, cust *Customer) error {
	args := m.Called(ctx, cust)
	return args.Error(0)
}

func (m *MockRepository) FindByID(ctx context.Context, customerID int64) (*Customer, error) {
	args := m.Called(ctx, customerID)
	if cust, ok := args.Get(0).(*Customer); ok {
		return cust, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestRegisterDerivesApprovedLimit(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewCustomerService(mockRepo, nil, logger)
	ctx := context.Background()

	mockRepo.On("Save", ctx, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*Customer).CustomerID = 1
	}).Return(nil)

	cust, err := service.Register(ctx, "Asha", "Rao", 34, 9876543210, 100_000)
	require.NoError(t, err)

	assert.Equal(t, int64(1), cust.CustomerID)
	assert.Equal(t, int64(3_600_000), cust.ApprovedLimit)
	assert.Equal(t, 0.0, cust.CurrentDebt)
	mockRepo.AssertExpectations(t)
}

func TestRegisterValidationNamesOffendingField(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewCustomerService(mockRepo, nil, logger)
	ctx := context.Background()

	tests := []struct {
		name      string
		firstName string
		lastName  string
		age       int
		phone     int64
		income    int64
		field     string
	}{
		{name: "missing first name", firstName: "", lastName: "Rao", age: 34, phone: 9876543210, income: 100_000, field: "first_name"},
		{name: "missing last name", firstName: "Asha", lastName: " ", age: 34, phone: 9876543210, income: 100_000, field: "last_name"},
		{name: "non-positive age", firstName: "Asha", lastName: "Rao", age: 0, phone: 9876543210, income: 100_000, field: "age"},
		{name: "non-positive phone", firstName: "Asha", lastName: "Rao", age: 34, phone: 0, income: 100_000, field: "phone_number"},
		{name: "non-positive income", firstName: "Asha", lastName: "Rao", age: 34, phone: 9876543210, income: 0, field: "monthly_income"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Register(ctx, tt.firstName, tt.lastName, tt.age, tt.phone, tt.income)
			require.Error(t, err)

			var validationErr *apperrors.ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, tt.field, validationErr.Field)
		})
	}

	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestGetCustomerNotFound(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewCustomerService(mockRepo, nil, logger)
	ctx := context.Background()

	mockRepo.On("FindByID", ctx, int64(42)).Return(nil, ErrNotFound)

	_, err := service.GetCustomer(ctx, 42)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestGetCustomerRejectsNonPositiveID(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewCustomerService(mockRepo, nil, logger)

	_, err := service.GetCustomer(context.Background(), 0)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidArgument))
	mockRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}
