package loan

import (
	"context"
)

type Repository interface {
	// Create inserts a newly issued loan and returns it with the
	// store-generated identity filled in.
	Create(ctx context.Context, loan *Loan) (*Loan, error)

	// Upsert writes a loan carrying an externally assigned identity,
	// overwriting any existing row. Used by the bulk loader.
	Upsert(ctx context.Context, loan *Loan) error

	FindByID(ctx context.Context, loanID int64) (*Loan, error)

	// ListByCustomer returns the customer's full loan history, ordered by
	// loan ID. Eligibility partitions the result in memory so each
	// evaluation reads the store exactly once.
	ListByCustomer(ctx context.Context, customerID int64) ([]*Loan, error)
}
