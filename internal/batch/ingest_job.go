package batch

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"credit-approval/internal/domain/customer"
	"credit-approval/internal/domain/loan"
	"credit-approval/internal/infrastructure/monitoring"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	sourceCustomers = "customers"
	sourceLoans     = "loans"
)

var customerColumns = []string{
	"Customer ID", "First Name", "Last Name", "Age",
	"Phone Number", "Monthly Salary", "Approved Limit",
}

var loanColumns = []string{
	"Loan ID", "Customer ID", "Loan Amount", "Tenure", "Interest Rate",
	"Monthly payment", "EMIs paid on Time", "Date of Approval", "End Date",
}

var dateLayouts = []string{
	"2006-01-02", "1/2/06", "01/02/2006", "2006-01-02 15:04:05", time.RFC3339,
}

// RowError records a single row that could not be ingested. The row index is
// 1-based as shown in a spreadsheet editor, so the header is row 1.
type RowError struct {
	Source string
	Row    int
	Key    string
	Err    error
}

func (e RowError) Error() string {
	return fmt.Sprintf("%s row %d (%s): %v", e.Source, e.Row, e.Key, e.Err)
}

// Result summarizes one ingest run. Failures never abort the run; every
// readable row is attempted independently.
type Result struct {
	CustomersLoaded int
	LoansLoaded     int
	Failures        []RowError
}

// IngestJob loads the seed customer and loan workbooks into the repositories.
// Rows are upserted by their workbook IDs, so re-running the job is safe.
type IngestJob struct {
	customerRepo customer.Repository
	loanRepo     loan.Repository
	customerFile string
	loanFile     string
	logger       *slog.Logger
}

func NewIngestJob(
	customerRepo customer.Repository,
	loanRepo loan.Repository,
	customerFile string,
	loanFile string,
	logger *slog.Logger,
) *IngestJob {
	if customerRepo == nil || loanRepo == nil || logger == nil {
		panic("IngestJob dependencies cannot be nil")
	}
	return &IngestJob{
		customerRepo: customerRepo,
		loanRepo:     loanRepo,
		customerFile: customerFile,
		loanFile:     loanFile,
		logger:       logger.With("job", "Ingest"),
	}
}

// Run ingests customers first so that loan rows referencing them land on
// existing customers, then loans. Row failures are collected, logged and
// counted; only an unreadable workbook aborts the run.
func (j *IngestJob) Run(ctx context.Context) (*Result, error) {
	startTime := time.Now()
	j.logger.InfoContext(ctx, "Starting workbook ingest job.",
		slog.String("customer_file", j.customerFile),
		slog.String("loan_file", j.loanFile),
	)

	result := &Result{}

	if err := j.ingestCustomers(ctx, result); err != nil {
		j.logger.ErrorContext(ctx, "Failed to read customer workbook, aborting job.", slog.Any("error", err))
		return nil, fmt.Errorf("cannot run job, failed to read customer workbook: %w", err)
	}
	if err := j.ingestLoans(ctx, result); err != nil {
		j.logger.ErrorContext(ctx, "Failed to read loan workbook, aborting job.", slog.Any("error", err))
		return nil, fmt.Errorf("cannot run job, failed to read loan workbook: %w", err)
	}

	summaryLog := j.logger.With(
		slog.Duration("duration", time.Since(startTime)),
		slog.Int("customers_loaded", result.CustomersLoaded),
		slog.Int("loans_loaded", result.LoansLoaded),
		slog.Int("rows_failed", len(result.Failures)),
	)
	if len(result.Failures) > 0 {
		summaryLog.WarnContext(ctx, "Workbook ingest job finished with row failures.")
	} else {
		summaryLog.InfoContext(ctx, "Workbook ingest job finished successfully.")
	}
	return result, nil
}

func (j *IngestJob) ingestCustomers(ctx context.Context, result *Result) error {
	rows, err := readSheet(j.customerFile, customerColumns)
	if err != nil {
		return err
	}

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		cust, err := parseCustomerRow(row.cells)
		if err == nil {
			err = j.customerRepo.Upsert(ctx, cust)
		}
		if err != nil {
			j.recordFailure(ctx, result, RowError{
				Source: sourceCustomers,
				Row:    row.index,
				Key:    row.cells["Customer ID"],
				Err:    err,
			})
			continue
		}
		result.CustomersLoaded++
		monitoring.RecordIngestRow(sourceCustomers, "loaded")
	}
	return nil
}

func (j *IngestJob) ingestLoans(ctx context.Context, result *Result) error {
	rows, err := readSheet(j.loanFile, loanColumns)
	if err != nil {
		return err
	}

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		l, err := parseLoanRow(row.cells)
		if err == nil {
			err = j.loanRepo.Upsert(ctx, l)
		}
		if err != nil {
			j.recordFailure(ctx, result, RowError{
				Source: sourceLoans,
				Row:    row.index,
				Key:    row.cells["Loan ID"],
				Err:    err,
			})
			continue
		}
		result.LoansLoaded++
		monitoring.RecordIngestRow(sourceLoans, "loaded")
	}
	return nil
}

func (j *IngestJob) recordFailure(ctx context.Context, result *Result, rowErr RowError) {
	result.Failures = append(result.Failures, rowErr)
	monitoring.RecordIngestRow(rowErr.Source, "failed")
	j.logger.WarnContext(ctx, "Skipping workbook row.",
		slog.String("source", rowErr.Source),
		slog.Int("row", rowErr.Row),
		slog.String("key", rowErr.Key),
		slog.Any("error", rowErr.Err),
	)
}

type sheetRow struct {
	index int
	cells map[string]string
}

// readSheet opens an xlsx workbook and returns the data rows of its first
// sheet keyed by header name. Every expected column must be present in the
// header row; extra columns are ignored.
func readSheet(path string, expected []string) ([]sheetRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}
	raw, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s of %s: %w", sheets[0], path, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("workbook %s has no header row", path)
	}

	position := make(map[string]int, len(raw[0]))
	for i, name := range raw[0] {
		position[strings.TrimSpace(name)] = i
	}
	for _, name := range expected {
		if _, ok := position[name]; !ok {
			return nil, fmt.Errorf("workbook %s is missing column %q", path, name)
		}
	}

	rows := make([]sheetRow, 0, len(raw)-1)
	for i, cells := range raw[1:] {
		if len(cells) == 0 {
			continue
		}
		row := sheetRow{index: i + 2, cells: make(map[string]string, len(expected))}
		for _, name := range expected {
			col := position[name]
			if col < len(cells) {
				row.cells[name] = strings.TrimSpace(cells[col])
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseCustomerRow(cells map[string]string) (*customer.Customer, error) {
	id, err := parseInt(cells, "Customer ID")
	if err != nil {
		return nil, err
	}
	age, err := parseInt(cells, "Age")
	if err != nil {
		return nil, err
	}
	phone, err := parseInt(cells, "Phone Number")
	if err != nil {
		return nil, err
	}
	salary, err := parseMoney(cells, "Monthly Salary")
	if err != nil {
		return nil, err
	}
	limit, err := parseMoney(cells, "Approved Limit")
	if err != nil {
		return nil, err
	}
	first := cells["First Name"]
	last := cells["Last Name"]
	if first == "" || last == "" {
		return nil, fmt.Errorf("customer %d has an empty name", id)
	}

	return &customer.Customer{
		CustomerID:    id,
		FirstName:     first,
		LastName:      last,
		Age:           int(age),
		PhoneNumber:   phone,
		MonthlySalary: salary.IntPart(),
		ApprovedLimit: limit.IntPart(),
	}, nil
}

func parseLoanRow(cells map[string]string) (*loan.Loan, error) {
	id, err := parseInt(cells, "Loan ID")
	if err != nil {
		return nil, err
	}
	customerID, err := parseInt(cells, "Customer ID")
	if err != nil {
		return nil, err
	}
	amount, err := parseMoney(cells, "Loan Amount")
	if err != nil {
		return nil, err
	}
	tenure, err := parseInt(cells, "Tenure")
	if err != nil {
		return nil, err
	}
	rate, err := parseMoney(cells, "Interest Rate")
	if err != nil {
		return nil, err
	}
	installment, err := parseMoney(cells, "Monthly payment")
	if err != nil {
		return nil, err
	}
	paidOnTime, err := parseInt(cells, "EMIs paid on Time")
	if err != nil {
		return nil, err
	}
	start, err := parseDate(cells, "Date of Approval")
	if err != nil {
		return nil, err
	}
	end, err := parseDate(cells, "End Date")
	if err != nil {
		return nil, err
	}

	amountF, _ := amount.Float64()
	rateF, _ := rate.Float64()
	installmentF, _ := installment.Float64()

	return &loan.Loan{
		ID:                 id,
		CustomerID:         customerID,
		LoanAmount:         amountF,
		Tenure:             int(tenure),
		InterestRate:       rateF,
		MonthlyInstallment: installmentF,
		EMIsPaidOnTime:     int(paidOnTime),
		StartDate:          start,
		EndDate:            end,
	}, nil
}

func parseInt(cells map[string]string, column string) (int64, error) {
	v, err := strconv.ParseInt(cells[column], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("column %q: %w", column, err)
	}
	return v, nil
}

// parseMoney tolerates the decimal renderings excelize produces for numeric
// cells, e.g. "50000", "50000.0" or "8.25".
func parseMoney(cells map[string]string, column string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(cells[column])
	if err != nil {
		return decimal.Zero, fmt.Errorf("column %q: %w", column, err)
	}
	return v, nil
}

func parseDate(cells map[string]string, column string) (time.Time, error) {
	raw := cells[column]
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("column %q: unrecognized date %q", column, raw)
}
