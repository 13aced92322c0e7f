package mysql

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"agro-cost/internal/storage"
)

// MySQL error 1062: duplicate entry for a unique key.
const errDuplicateEntry = 1062

func (s *Storage) SavePayroll(ctx context.Context, p storage.Payroll) (int64, error) {
	const op = "storage.mysql.SavePayroll"

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO payrolls (employee_id, start_date, end_date, base_salary, work_orders_total, total_amount, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.EmployeeID, p.StartDate, p.EndDate, p.BaseSalary, p.WorkOrdersTotal, p.TotalAmount, p.Notes)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == errDuplicateEntry {
			return 0, fmt.Errorf("%s: employee id=%d %s..%s: %w", op, p.EmployeeID, p.StartDate, p.EndDate, storage.ErrPayrollExists)
		}
		return 0, fmt.Errorf("%s: %w", op, foreignKeyErr(err))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s: last insert id: %w", op, err)
	}

	return id, nil
}
