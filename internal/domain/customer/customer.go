package customer

import (
	"fmt"
	"math"
	"time"
)

type Customer struct {
	CustomerID    int64     `json:"customerId"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Age           int       `json:"age"`
	PhoneNumber   int64     `json:"phoneNumber"`
	MonthlySalary int64     `json:"monthlySalary"`
	ApprovedLimit int64     `json:"approvedLimit"`
	CurrentDebt   float64   `json:"currentDebt"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ApprovedLimitFor derives the salary-based credit ceiling: 36 times the
// monthly salary, rounded to the nearest multiple of 100,000.
func ApprovedLimitFor(monthlySalary int64) int64 {
	return int64(math.Round(36*float64(monthlySalary)/100_000)) * 100_000
}

func NewCustomer(firstName, lastName string, age int, phoneNumber, monthlySalary int64) *Customer {
	now := time.Now()
	return &Customer{
		FirstName:     firstName,
		LastName:      lastName,
		Age:           age,
		PhoneNumber:   phoneNumber,
		MonthlySalary: monthlySalary,
		ApprovedLimit: ApprovedLimitFor(monthlySalary),
		CurrentDebt:   0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (c *Customer) FullName() string {
	return fmt.Sprintf("%s %s", c.FirstName, c.LastName)
}
