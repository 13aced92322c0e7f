package storage

import "time"

type Payroll struct {
	ID              int64      `json:"id,omitempty"`
	EmployeeID      int64      `json:"employeeId"`
	StartDate       string     `json:"startDate"`
	EndDate         string     `json:"endDate"`
	BaseSalary      float64    `json:"baseSalary"`
	WorkOrdersTotal float64    `json:"workOrdersTotal"`
	TotalAmount     float64    `json:"totalAmount"`
	Notes           string     `json:"notes,omitempty"`
	CreatedAt       *time.Time `json:"createdAt,omitempty"`
}

// PayrollCalculation is the result of prorating an employee's salary over a
// date range. BaseSalary is the prorated amount, Salary the contractual one.
type PayrollCalculation struct {
	EmployeeID      int64            `json:"employeeId"`
	Salary          float64          `json:"salary"`
	PaymentPeriod   string           `json:"paymentPeriod"`
	StartDate       string           `json:"startDate"`
	EndDate         string           `json:"endDate"`
	PeriodDays      int              `json:"periodDays"`
	DailyRate       float64          `json:"dailyRate"`
	BaseSalary      float64          `json:"baseSalary"`
	WorkOrdersTotal float64          `json:"workOrdersTotal"`
	TotalAmount     float64          `json:"totalAmount"`
	BiweeklyDisplay *BiweeklyDisplay `json:"biweeklyDisplay,omitempty"`
}

// BiweeklyDisplay mirrors how the console shows a biweekly salary paid over
// more than 14 days. It is informational and never feeds TotalAmount.
type BiweeklyDisplay struct {
	BaseAmount       float64 `json:"baseAmount"`
	AdditionalDays   int     `json:"additionalDays"`
	AdditionalAmount float64 `json:"additionalAmount"`
}
