package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"credit-approval/internal/domain/customer"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) Register(ctx context.Context, firstName, lastName string, age int, phoneNumber, monthlyIncome int64) (*customer.Customer, error) {
	args := m.Called(ctx, firstName, lastName, age, phoneNumber, monthlyIncome)
	cust, _ := args.Get(0).(*customer.Customer)
	return cust, args.Error(1)
}

func (m *MockCustomerService) GetCustomer(ctx context.Context, customerID int64) (*customer.Customer, error) {
	args := m.Called(ctx, customerID)
	cust, _ := args.Get(0).(*customer.Customer)
	return cust, args.Error(1)
}

func newCustomerRouter(svc customer.CustomerService) *chi.Mux {
	h := NewCustomerHandler(svc, testLogger)
	r := chi.NewRouter()
	r.Post("/register", h.Register)
	return r
}

func TestRegisterCustomer(t *testing.T) {
	svc := new(MockCustomerService)
	svc.On("Register", mock.Anything, "Aarav", "Sharma", 32, int64(9876543210), int64(100000)).
		Return(&customer.Customer{
			CustomerID:    1,
			FirstName:     "Aarav",
			LastName:      "Sharma",
			Age:           32,
			PhoneNumber:   9876543210,
			MonthlySalary: 100000,
			ApprovedLimit: 3_600_000,
		}, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(
		`{"first_name": "Aarav", "last_name": "Sharma", "age": 32, "monthly_income": 100000, "phone_number": 9876543210}`))
	newCustomerRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1.0, body["customer_id"])
	assert.Equal(t, "Aarav Sharma", body["name"])
	assert.Equal(t, 3_600_000.0, body["approved_limit"])
	svc.AssertExpectations(t)
}

func TestRegisterCustomerMissingFieldNamesIt(t *testing.T) {
	svc := new(MockCustomerService)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(
		`{"first_name": "Aarav", "last_name": "Sharma", "age": 32, "phone_number": 9876543210}`))
	newCustomerRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "monthly_income")
	svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRegisterCustomerIgnoresUnknownKeys(t *testing.T) {
	svc := new(MockCustomerService)
	svc.On("Register", mock.Anything, "Aarav", "Sharma", 32, int64(9876543210), int64(100000)).
		Return(&customer.Customer{
			CustomerID:    1,
			FirstName:     "Aarav",
			LastName:      "Sharma",
			Age:           32,
			PhoneNumber:   9876543210,
			MonthlySalary: 100000,
			ApprovedLimit: 3_600_000,
		}, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(
		`{"first_name": "Aarav", "last_name": "Sharma", "age": 32, "monthly_income": 100000, "phone_number": 9876543210, "nickname": "AS"}`))
	newCustomerRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	svc.AssertExpectations(t)
}

func TestRegisterCustomerMalformedBody(t *testing.T) {
	svc := new(MockCustomerService)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(`{"first_name": `))
	newCustomerRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
