package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"credit-approval/internal/domain/customer"
	"credit-approval/internal/infrastructure/monitoring"
	"credit-approval/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pashagolub/pgxmock/v4"
)

type DBPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Acquire(ctx context.Context) (*pgxpool.Conn, error)
	Close()
}

var _ DBPool = (*pgxpool.Pool)(nil)

var _ DBPool = (pgxmock.PgxPoolIface)(nil)

var errMsgFormat = "%w: %w"

type CustomerRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ customer.Repository = (*CustomerRepository)(nil)

func NewCustomerRepository(db DBPool, logger *slog.Logger) *CustomerRepository {
	return &CustomerRepository{db: db, logger: logger.With("component", "CustomerRepository")}
}

func (r *CustomerRepository) Save(ctx context.Context, cust *customer.Customer) error {
	query := `
	INSERT INTO customers (first_name, last_name, age, phone_number, monthly_salary, approved_limit, current_debt, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	RETURNING id, created_at, updated_at`

	status := "success"
	startTime := time.Now()

	err := r.db.QueryRow(ctx, query,
		cust.FirstName, cust.LastName, cust.Age, cust.PhoneNumber,
		cust.MonthlySalary, cust.ApprovedLimit, cust.CurrentDebt,
	).Scan(&cust.CustomerID, &cust.CreatedAt, &cust.UpdatedAt)

	if err != nil {
		status = "error"
	}
	monitoring.RecordDBQuery("SaveCustomer", status, time.Since(startTime))

	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert customer", "error", err)
		return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	r.logger.InfoContext(ctx, "Customer created in DB", "customer_id", cust.CustomerID)
	return nil
}

func (r *CustomerRepository) Upsert(ctx context.Context, cust *customer.Customer) error {
	query := `
	INSERT INTO customers (id, first_name, last_name, age, phone_number, monthly_salary, approved_limit, current_debt, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	ON CONFLICT (id) DO UPDATE SET
		first_name = EXCLUDED.first_name,
		last_name = EXCLUDED.last_name,
		age = EXCLUDED.age,
		phone_number = EXCLUDED.phone_number,
		monthly_salary = EXCLUDED.monthly_salary,
		approved_limit = EXCLUDED.approved_limit,
		current_debt = EXCLUDED.current_debt,
		updated_at = NOW()`

	status := "success"
	startTime := time.Now()

	_, err := r.db.Exec(ctx, query,
		cust.CustomerID, cust.FirstName, cust.LastName, cust.Age,
		cust.PhoneNumber, cust.MonthlySalary, cust.ApprovedLimit, cust.CurrentDebt,
	)

	if err != nil {
		status = "error"
	}
	monitoring.RecordDBQuery("UpsertCustomer", status, time.Since(startTime))

	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to upsert customer", "customer_id", cust.CustomerID, "error", err)
		return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, customerID int64) (*customer.Customer, error) {
	query := `
	SELECT id, first_name, last_name, age, phone_number, monthly_salary, approved_limit, current_debt, created_at, updated_at
	FROM customers
	WHERE id = $1`

	status := "success"
	startTime := time.Now()

	var c customer.Customer
	err := r.db.QueryRow(ctx, query, customerID).Scan(
		&c.CustomerID, &c.FirstName, &c.LastName, &c.Age, &c.PhoneNumber,
		&c.MonthlySalary, &c.ApprovedLimit, &c.CurrentDebt, &c.CreatedAt, &c.UpdatedAt,
	)

	if err != nil {
		status = "error"
	}
	monitoring.RecordDBQuery("FindCustomerByID", status, time.Since(startTime))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Customer not found", "customer_id", customerID)
			return nil, apperrors.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to get customer by ID", "customer_id", customerID, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}

	return &c, nil
}
