package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"agro-cost/internal/storage"
)

// GetWorkOrdersReport returns work orders matching the filter together with
// every employee that has a labor line on at least one of them.
func (s *Storage) GetWorkOrdersReport(ctx context.Context, filter storage.WorkOrderFilter) ([]storage.WorkOrderReportRow, []storage.Employee, error) {
	const op = "storage.mysql.GetWorkOrdersReport"

	whereClause, args := buildWorkOrderFilters(filter)

	query := fmt.Sprintf(`
		SELECT w.id, w.work_date, ph.name, COALESCE(a.name, ''), w.description, w.total_cost
		FROM work_orders w
		JOIN phases ph ON ph.id = w.phase_id
		LEFT JOIN activities a ON a.id = w.activity_id
		%s
		ORDER BY w.work_date, w.id`, whereClause)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: query work orders: %w", op, err)
	}
	defer rows.Close()

	var (
		report   []storage.WorkOrderReportRow
		orderIDs []int64
	)
	index := make(map[int64]int)

	for rows.Next() {
		var r storage.WorkOrderReportRow
		if err := rows.Scan(&r.ID, &r.Date, &r.PhaseName, &r.ActivityName, &r.Description, &r.TotalCost); err != nil {
			return nil, nil, fmt.Errorf("%s: scan work order: %w", op, err)
		}
		r.EmployeeCost = make(map[int64]float64)

		index[r.ID] = len(report)
		report = append(report, r)
		orderIDs = append(orderIDs, r.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	if len(report) == 0 {
		return []storage.WorkOrderReportRow{}, []storage.Employee{}, nil
	}

	costQuery := fmt.Sprintf(`
		SELECT e.work_order_id, e.employee_id, SUM(e.total_cost)
		FROM work_order_employees e
		WHERE e.work_order_id IN (%s)
		GROUP BY e.work_order_id, e.employee_id`, placeholders(len(orderIDs)))

	costRows, err := s.db.QueryContext(ctx, costQuery, toInterfaceSlice(orderIDs)...)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: query employee costs: %w", op, err)
	}
	defer costRows.Close()

	seen := make(map[int64]struct{})
	var employeeIDs []int64

	for costRows.Next() {
		var orderID, employeeID int64
		var cost float64
		if err := costRows.Scan(&orderID, &employeeID, &cost); err != nil {
			return nil, nil, fmt.Errorf("%s: scan employee cost: %w", op, err)
		}
		if idx, ok := index[orderID]; ok {
			report[idx].EmployeeCost[employeeID] = cost
		}
		if _, ok := seen[employeeID]; !ok {
			seen[employeeID] = struct{}{}
			employeeIDs = append(employeeIDs, employeeID)
		}
	}
	if err := costRows.Err(); err != nil {
		return nil, nil, fmt.Errorf("%s: employee cost rows: %w", op, err)
	}

	employees, err := s.getEmployeesByIDs(ctx, employeeIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	return report, employees, nil
}

func (s *Storage) getEmployeesByIDs(ctx context.Context, ids []int64) ([]storage.Employee, error) {
	if len(ids) == 0 {
		return []storage.Employee{}, nil
	}

	query := fmt.Sprintf(`
		SELECT id, first_name, last_name, salary, payment_period, hire_date, is_active
		FROM employees WHERE id IN (%s) ORDER BY first_name, last_name`, placeholders(len(ids)))

	rows, err := s.db.QueryContext(ctx, query, toInterfaceSlice(ids)...)
	if err != nil {
		return nil, fmt.Errorf("employees: %w", err)
	}
	defer rows.Close()

	var employees []storage.Employee
	for rows.Next() {
		var e storage.Employee
		var hireDate sql.NullTime
		if err := rows.Scan(&e.ID, &e.FirstName, &e.LastName, &e.Salary, &e.PaymentPeriod, &hireDate, &e.IsActive); err != nil {
			return nil, fmt.Errorf("employees scan: %w", err)
		}
		if hireDate.Valid {
			e.HireDate = &hireDate.Time
		}
		employees = append(employees, e)
	}

	return employees, rows.Err()
}

func buildWorkOrderFilters(filter storage.WorkOrderFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if !filter.From.IsZero() {
		conditions = append(conditions, "w.work_date >= ?")
		args = append(args, filter.From.Format(dateLayout))
	}

	if !filter.To.IsZero() {
		conditions = append(conditions, "w.work_date < ?")
		args = append(args, filter.To.AddDate(0, 0, 1).Format(dateLayout))
	}

	if filter.PhaseID != 0 {
		conditions = append(conditions, "w.phase_id = ?")
		args = append(args, filter.PhaseID)
	}

	if len(conditions) == 0 {
		return "", nil
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}
