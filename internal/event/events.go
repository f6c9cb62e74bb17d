package event

import (
	"context"
	"time"
)

// CustomerRegisteredEvent announces a newly registered customer to
// downstream consumers.
type CustomerRegisteredEvent struct {
	CustomerID    int64     `json:"customerId"`
	Name          string    `json:"name"`
	ApprovedLimit int64     `json:"approvedLimit"`
	Timestamp     time.Time `json:"timestamp"`
}

// LoanCreatedEvent announces an issued loan. The external repayment tracker
// consumes it to start counting EMIs paid on time.
type LoanCreatedEvent struct {
	LoanID             int64     `json:"loanId"`
	CustomerID         int64     `json:"customerId"`
	LoanAmount         float64   `json:"loanAmount"`
	InterestRate       float64   `json:"interestRate"`
	Tenure             int       `json:"tenure"`
	MonthlyInstallment float64   `json:"monthlyInstallment"`
	StartDate          time.Time `json:"startDate"`
	EndDate            time.Time `json:"endDate"`
	Timestamp          time.Time `json:"timestamp"`
}

type Publisher interface {
	PublishCustomerRegistered(ctx context.Context, event CustomerRegisteredEvent) error
	PublishLoanCreated(ctx context.Context, event LoanCreatedEvent) error
}

// NopPublisher is used when no message broker is configured.
type NopPublisher struct{}

var _ Publisher = NopPublisher{}

func (NopPublisher) PublishCustomerRegistered(context.Context, CustomerRegisteredEvent) error {
	return nil
}

func (NopPublisher) PublishLoanCreated(context.Context, LoanCreatedEvent) error {
	return nil
}
