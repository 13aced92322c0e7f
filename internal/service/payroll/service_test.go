package payroll

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"agro-cost/internal/storage"
)

type MockPayrollStorage struct {
	mock.Mock
}

func (m *MockPayrollStorage) GetEmployee(ctx context.Context, id int64) (*storage.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	emp, ok := args.Get(0).(*storage.Employee)
	if !ok {
		return nil, fmt.Errorf("expected *storage.Employee, got %T", args.Get(0))
	}
	return emp, args.Error(1)
}

func (m *MockPayrollStorage) SumEmployeeLaborCost(ctx context.Context, employeeID int64, from, to time.Time) (float64, error) {
	args := m.Called(ctx, employeeID, from, to)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockPayrollStorage) SavePayroll(ctx context.Context, p storage.Payroll) (int64, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(int64), args.Error(1)
}

func TestPayrollService_Calculate(t *testing.T) {
	mockStorage := new(MockPayrollStorage)
	mockStorage.On("GetEmployee", mock.Anything, int64(5)).
		Return(&storage.Employee{ID: 5, Salary: 2800, PaymentPeriod: "Biweekly"}, nil)
	mockStorage.On("SumEmployeeLaborCost", mock.Anything, int64(5), date(t, "2024-01-01"), date(t, "2024-01-14")).
		Return(230.0, nil)

	service := NewPayrollService(mockStorage)

	calc, err := service.Calculate(context.Background(), 5, "2024-01-01", "2024-01-14")

	require.NoError(t, err)
	assert.Equal(t, 14, calc.PeriodDays)
	assert.Equal(t, 200.0, calc.DailyRate)
	assert.Equal(t, 2800.0, calc.BaseSalary)
	assert.Equal(t, 230.0, calc.WorkOrdersTotal)
	assert.Equal(t, 3030.0, calc.TotalAmount)
	assert.Equal(t, "Biweekly", calc.PaymentPeriod)
	assert.Nil(t, calc.BiweeklyDisplay)

	mockStorage.AssertExpectations(t)
}

func TestPayrollService_CalculateBiweeklyDisplay(t *testing.T) {
	mockStorage := new(MockPayrollStorage)
	mockStorage.On("GetEmployee", mock.Anything, int64(5)).
		Return(&storage.Employee{ID: 5, Salary: 2800, PaymentPeriod: "2"}, nil)
	mockStorage.On("SumEmployeeLaborCost", mock.Anything, int64(5), mock.Anything, mock.Anything).
		Return(0.0, nil)

	calc, err := NewPayrollService(mockStorage).Calculate(context.Background(), 5, "2024-01-01", "2024-01-16")

	require.NoError(t, err)
	assert.Equal(t, 3200.0, calc.TotalAmount)
	require.NotNil(t, calc.BiweeklyDisplay)
	assert.Equal(t, 2, calc.BiweeklyDisplay.AdditionalDays)
	assert.InDelta(t, 186.6667, calc.BiweeklyDisplay.AdditionalAmount, 1e-4)
}

func TestPayrollService_InvalidRange(t *testing.T) {
	mockStorage := new(MockPayrollStorage)

	_, err := NewPayrollService(mockStorage).Calculate(context.Background(), 5, "2024-01-14", "2024-01-01")

	assert.ErrorIs(t, err, ErrInvalidRange)
	mockStorage.AssertNotCalled(t, "GetEmployee", mock.Anything, mock.Anything)
}

func TestPayrollService_InvalidDate(t *testing.T) {
	_, err := NewPayrollService(new(MockPayrollStorage)).Calculate(context.Background(), 5, "2024-13-01", "2024-01-01")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestPayrollService_EmployeeNotFound(t *testing.T) {
	mockStorage := new(MockPayrollStorage)
	mockStorage.On("GetEmployee", mock.Anything, int64(5)).Return(nil, storage.ErrNotFound)
	mockStorage.On("SumEmployeeLaborCost", mock.Anything, int64(5), mock.Anything, mock.Anything).Return(0.0, nil).Maybe()

	_, err := NewPayrollService(mockStorage).Calculate(context.Background(), 5, "2024-01-01", "2024-01-14")

	assert.ErrorIs(t, err, storage.ErrMissingReference)
}

func TestPayrollService_SaveOverridesClientTotals(t *testing.T) {
	mockStorage := new(MockPayrollStorage)
	mockStorage.On("GetEmployee", mock.Anything, int64(5)).
		Return(&storage.Employee{ID: 5, Salary: 3000, PaymentPeriod: "Monthly"}, nil)
	mockStorage.On("SumEmployeeLaborCost", mock.Anything, int64(5), mock.Anything, mock.Anything).
		Return(50.0, nil)
	mockStorage.On("SavePayroll", mock.Anything, mock.MatchedBy(func(p storage.Payroll) bool {
		return p.BaseSalary == 3000 && p.WorkOrdersTotal == 50 && p.TotalAmount == 3050 && p.ID == 0
	})).Return(int64(77), nil)

	saved, err := NewPayrollService(mockStorage).Save(context.Background(), storage.Payroll{
		ID:          3,
		EmployeeID:  5,
		StartDate:   "2024-04-01",
		EndDate:     "2024-04-30",
		TotalAmount: 1,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(77), saved.ID)
	assert.Equal(t, 3050.0, saved.TotalAmount)
	mockStorage.AssertExpectations(t)
}

func TestPayrollService_SaveStorageError(t *testing.T) {
	mockStorage := new(MockPayrollStorage)
	mockStorage.On("GetEmployee", mock.Anything, int64(5)).
		Return(&storage.Employee{ID: 5, Salary: 3000, PaymentPeriod: "Monthly"}, nil)
	mockStorage.On("SumEmployeeLaborCost", mock.Anything, int64(5), mock.Anything, mock.Anything).Return(0.0, nil)
	mockStorage.On("SavePayroll", mock.Anything, mock.Anything).Return(int64(0), errors.New("deadlock"))

	_, err := NewPayrollService(mockStorage).Save(context.Background(), storage.Payroll{
		EmployeeID: 5, StartDate: "2024-04-01", EndDate: "2024-04-30",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "service.payroll.Save")
}
