package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"agro-cost/internal/storage"
)

type PayrollStorage interface {
	GetEmployee(ctx context.Context, id int64) (*storage.Employee, error)
	SumEmployeeLaborCost(ctx context.Context, employeeID int64, from, to time.Time) (float64, error)
	SavePayroll(ctx context.Context, p storage.Payroll) (int64, error)
}

type PayrollService struct {
	storage PayrollStorage
}

func NewPayrollService(storage PayrollStorage) *PayrollService {
	return &PayrollService{storage: storage}
}

// Calculate prorates the employee's salary over the range and adds the labor
// cost booked for them on work orders dated inside it.
func (s *PayrollService) Calculate(ctx context.Context, employeeID int64, startDate, endDate string) (*storage.PayrollCalculation, error) {
	const op = "service.payroll.Calculate"

	start, end, err := parseRange(startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var (
		employee   *storage.Employee
		workOrders float64
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		employee, err = s.storage.GetEmployee(gCtx, employeeID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return &storage.MissingReferenceError{Kind: storage.RefEmployee, ID: employeeID}
			}
			return fmt.Errorf("employee: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		workOrders, err = s.storage.SumEmployeeLaborCost(gCtx, employeeID, start, end)
		if err != nil {
			return fmt.Errorf("work orders: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	emp := Employee{
		Salary:        employee.Salary,
		PaymentPeriod: ParsePaymentPeriod(employee.PaymentPeriod),
	}

	calc, err := CalculatePayroll(emp, start, end, workOrders)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := &storage.PayrollCalculation{
		EmployeeID:      employeeID,
		Salary:          employee.Salary,
		PaymentPeriod:   string(emp.PaymentPeriod),
		StartDate:       startDate,
		EndDate:         endDate,
		PeriodDays:      calc.PeriodDays,
		DailyRate:       calc.DailyRate,
		BaseSalary:      calc.CalculatedAmount,
		WorkOrdersTotal: calc.WorkOrdersTotal,
		TotalAmount:     calc.TotalAmount,
	}

	if b, ok := BiweeklyDisplay(emp, calc.PeriodDays); ok {
		result.BiweeklyDisplay = &storage.BiweeklyDisplay{
			BaseAmount:       b.BaseAmount,
			AdditionalDays:   b.AdditionalDays,
			AdditionalAmount: b.AdditionalAmount,
		}
	}

	return result, nil
}

// Save recalculates the amounts server side before storing; whatever totals
// the client sent are replaced.
func (s *PayrollService) Save(ctx context.Context, p storage.Payroll) (*storage.Payroll, error) {
	const op = "service.payroll.Save"

	calc, err := s.Calculate(ctx, p.EmployeeID, p.StartDate, p.EndDate)
	if err != nil {
		return nil, err
	}

	p.ID = 0
	p.BaseSalary = calc.BaseSalary
	p.WorkOrdersTotal = calc.WorkOrdersTotal
	p.TotalAmount = calc.TotalAmount

	id, err := s.storage.SavePayroll(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	p.ID = id

	return &p, nil
}

func parseRange(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: startDate %q", ErrInvalidDate, startDate)
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: endDate %q", ErrInvalidDate, endDate)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %s > %s", ErrInvalidRange, startDate, endDate)
	}
	return start, end, nil
}
