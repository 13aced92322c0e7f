package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type Employee struct {
	Salary        float64
	PaymentPeriod PaymentPeriod
}

type Calculation struct {
	PeriodDays       int
	DailyRate        float64
	CalculatedAmount float64
	WorkOrdersTotal  float64
	TotalAmount      float64
}

// CalculatePayroll prorates the employee's salary over [start, end] and adds
// the work-order contribution. The salary is multiplied by the day count
// before dividing, so a range of exactly one period returns the salary.
func CalculatePayroll(emp Employee, start, end time.Time, workOrdersTotal float64) (Calculation, error) {
	days, err := PeriodDays(start, end)
	if err != nil {
		return Calculation{}, err
	}

	salary := salaryAmount(emp.Salary)
	divisor := decimal.NewFromInt(emp.PaymentPeriod.Divisor())
	calculated := salary.Mul(decimal.NewFromInt(int64(days))).Div(divisor)
	workOrders := salaryAmount(workOrdersTotal)

	return Calculation{
		PeriodDays:       days,
		DailyRate:        salary.Div(divisor).InexactFloat64(),
		CalculatedAmount: calculated.InexactFloat64(),
		WorkOrdersTotal:  workOrders.InexactFloat64(),
		TotalAmount:      calculated.Add(workOrders).InexactFloat64(),
	}, nil
}

type BiweeklyBreakdown struct {
	BaseAmount       float64
	AdditionalDays   int
	AdditionalAmount float64
}

// BiweeklyDisplay reproduces the console's split of a biweekly salary paid
// over more than 14 days: the full biweekly salary plus extra days priced at
// salary/30. It is for display only; CalculatePayroll is authoritative.
func BiweeklyDisplay(emp Employee, periodDays int) (BiweeklyBreakdown, bool) {
	biweekly := PeriodBiweekly.Divisor()
	if emp.PaymentPeriod != PeriodBiweekly || int64(periodDays) <= biweekly {
		return BiweeklyBreakdown{}, false
	}

	salary := salaryAmount(emp.Salary)
	extra := int64(periodDays) - biweekly
	monthlyRate := salary.Div(decimal.NewFromInt(PeriodMonthly.Divisor()))

	return BiweeklyBreakdown{
		BaseAmount:       salary.InexactFloat64(),
		AdditionalDays:   int(extra),
		AdditionalAmount: monthlyRate.Mul(decimal.NewFromInt(extra)).InexactFloat64(),
	}, true
}
