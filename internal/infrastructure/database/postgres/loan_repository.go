package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"credit-approval/internal/domain/loan"
	"credit-approval/internal/infrastructure/monitoring"
	"credit-approval/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
)

type LoanRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ loan.Repository = (*LoanRepository)(nil)

func NewLoanRepository(db DBPool, logger *slog.Logger) *LoanRepository {
	return &LoanRepository{db: db, logger: logger.With("component", "LoanRepository")}
}

func (r *LoanRepository) Create(ctx context.Context, newLoan *loan.Loan) (*loan.Loan, error) {
	query := `
	INSERT INTO loans (customer_id, loan_amount, tenure, interest_rate, monthly_installment, emis_paid_on_time, start_date, end_date, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	RETURNING id, customer_id, loan_amount, tenure, interest_rate, monthly_installment, emis_paid_on_time, start_date, end_date, created_at, updated_at`

	status := "success"
	startTime := time.Now()

	var created loan.Loan
	err := r.db.QueryRow(ctx, query,
		newLoan.CustomerID, newLoan.LoanAmount, newLoan.Tenure, newLoan.InterestRate,
		newLoan.MonthlyInstallment, newLoan.EMIsPaidOnTime, newLoan.StartDate, newLoan.EndDate,
	).Scan(
		&created.ID, &created.CustomerID, &created.LoanAmount, &created.Tenure,
		&created.InterestRate, &created.MonthlyInstallment, &created.EMIsPaidOnTime,
		&created.StartDate, &created.EndDate, &created.CreatedAt, &created.UpdatedAt,
	)

	if err != nil {
		status = "error"
	}
	monitoring.RecordDBQuery("CreateLoan", status, time.Since(startTime))

	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert loan", "customer_id", newLoan.CustomerID, "error", err)
		return nil, fmt.Errorf("%w: failed to insert loan: %w", apperrors.ErrDatabase, err)
	}
	r.logger.InfoContext(ctx, "Loan created in DB", "loan_id", created.ID, "customer_id", created.CustomerID)

	return &created, nil
}

func (r *LoanRepository) Upsert(ctx context.Context, l *loan.Loan) error {
	query := `
	INSERT INTO loans (id, customer_id, loan_amount, tenure, interest_rate, monthly_installment, emis_paid_on_time, start_date, end_date, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
	ON CONFLICT (id) DO UPDATE SET
		customer_id = EXCLUDED.customer_id,
		loan_amount = EXCLUDED.loan_amount,
		tenure = EXCLUDED.tenure,
		interest_rate = EXCLUDED.interest_rate,
		monthly_installment = EXCLUDED.monthly_installment,
		emis_paid_on_time = EXCLUDED.emis_paid_on_time,
		start_date = EXCLUDED.start_date,
		end_date = EXCLUDED.end_date,
		updated_at = NOW()`

	status := "success"
	startTime := time.Now()

	_, err := r.db.Exec(ctx, query,
		l.ID, l.CustomerID, l.LoanAmount, l.Tenure, l.InterestRate,
		l.MonthlyInstallment, l.EMIsPaidOnTime, l.StartDate, l.EndDate,
	)

	if err != nil {
		status = "error"
	}
	monitoring.RecordDBQuery("UpsertLoan", status, time.Since(startTime))

	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to upsert loan", "loan_id", l.ID, "error", err)
		return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return nil
}

func (r *LoanRepository) FindByID(ctx context.Context, loanID int64) (*loan.Loan, error) {
	query := `
	SELECT id, customer_id, loan_amount, tenure, interest_rate, monthly_installment, emis_paid_on_time, start_date, end_date, created_at, updated_at
	FROM loans
	WHERE id = $1`

	status := "success"
	startTime := time.Now()

	var l loan.Loan
	err := r.db.QueryRow(ctx, query, loanID).Scan(
		&l.ID, &l.CustomerID, &l.LoanAmount, &l.Tenure, &l.InterestRate,
		&l.MonthlyInstallment, &l.EMIsPaidOnTime, &l.StartDate, &l.EndDate,
		&l.CreatedAt, &l.UpdatedAt,
	)

	if err != nil {
		status = "error"
	}
	monitoring.RecordDBQuery("FindLoanByID", status, time.Since(startTime))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Loan not found", "loan_id", loanID)
			return nil, apperrors.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to get loan by ID", "loan_id", loanID, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}

	return &l, nil
}

func (r *LoanRepository) ListByCustomer(ctx context.Context, customerID int64) ([]*loan.Loan, error) {
	query := `
	SELECT id, customer_id, loan_amount, tenure, interest_rate, monthly_installment, emis_paid_on_time, start_date, end_date, created_at, updated_at
	FROM loans
	WHERE customer_id = $1
	ORDER BY id`

	status := "success"
	startTime := time.Now()

	rows, err := r.db.Query(ctx, query, customerID)
	if err != nil {
		monitoring.RecordDBQuery("ListLoansByCustomer", "error", time.Since(startTime))
		r.logger.ErrorContext(ctx, "Failed to list loans by customer", "customer_id", customerID, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	var loans []*loan.Loan
	for rows.Next() {
		var l loan.Loan
		if err := rows.Scan(
			&l.ID, &l.CustomerID, &l.LoanAmount, &l.Tenure, &l.InterestRate,
			&l.MonthlyInstallment, &l.EMIsPaidOnTime, &l.StartDate, &l.EndDate,
			&l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			monitoring.RecordDBQuery("ListLoansByCustomer", "error", time.Since(startTime))
			r.logger.ErrorContext(ctx, "Failed to scan loan row", "customer_id", customerID, "error", err)
			return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
		}
		loans = append(loans, &l)
	}
	if err := rows.Err(); err != nil {
		monitoring.RecordDBQuery("ListLoansByCustomer", "error", time.Since(startTime))
		r.logger.ErrorContext(ctx, "Row iteration failed listing loans", "customer_id", customerID, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	monitoring.RecordDBQuery("ListLoansByCustomer", status, time.Since(startTime))

	return loans, nil
}
