package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type DBMetrics struct {
	QueryDuration *prometheus.HistogramVec
}

type BusinessMetrics struct {
	LoanDecisionsTotal  *prometheus.CounterVec
	CustomersCreated    prometheus.Counter
	IngestRowsTotal     *prometheus.CounterVec
	CreditScoreComputed prometheus.Histogram
}

var (
	DB = DBMetrics{
		QueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "credit_approval_db_query_duration_seconds",
				Help:    "Histogram of database query latencies.",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"query_name", "status"},
		),
	}

	Business = BusinessMetrics{
		LoanDecisionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "credit_approval_loan_decisions_total",
				Help: "Total number of loan eligibility decisions, by outcome.",
			},
			[]string{"decision"},
		),
		CustomersCreated: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "credit_approval_customers_created_total",
				Help: "Total number of customers successfully registered.",
			},
		),
		IngestRowsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "credit_approval_ingest_rows_total",
				Help: "Total number of bulk import rows processed, by source and status.",
			},
			[]string{"source", "status"},
		),
		CreditScoreComputed: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "credit_approval_credit_score",
				Help:    "Distribution of computed credit scores.",
				Buckets: []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
			},
		),
	}
)

func RecordDBQuery(queryName, status string, duration time.Duration) {
	DB.QueryDuration.WithLabelValues(queryName, status).Observe(duration.Seconds())
}

func RecordLoanDecision(decision string) {
	Business.LoanDecisionsTotal.WithLabelValues(decision).Inc()
}

func RecordCustomerCreated() {
	Business.CustomersCreated.Inc()
}

func RecordIngestRow(source, status string) {
	Business.IngestRowsTotal.WithLabelValues(source, status).Inc()
}

func RecordCreditScore(score float64) {
	Business.CreditScoreComputed.Observe(score)
}
