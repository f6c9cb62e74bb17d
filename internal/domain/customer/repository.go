package customer

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("customer not found")
)

type Repository interface {
	// Save inserts the customer and fills in the store-generated identity.
	Save(ctx context.Context, customer *Customer) error

	// Upsert writes a customer carrying an externally assigned identity,
	// overwriting any existing row. Used by the bulk loader.
	Upsert(ctx context.Context, customer *Customer) error

	FindByID(ctx context.Context, customerID int64) (*Customer, error)
}
