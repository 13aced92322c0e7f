package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"agro-cost/internal/storage"
)

func (s *Storage) GetAllActivitiesAdmin(ctx context.Context) ([]*storage.Activity, error) {
	const op = "storage.mysql.GetAllActivitiesAdmin"

	rows, err := s.db.QueryContext(ctx, `SELECT id, name, unit_cost, daily_activity_cost, is_active FROM activities ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var activities []*storage.Activity

	for rows.Next() {
		a := &storage.Activity{}
		var daily sql.NullFloat64

		if err := rows.Scan(&a.ID, &a.Name, &a.UnitCost, &daily, &a.IsActive); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		if daily.Valid {
			v := daily.Float64
			a.DailyActivityCost = &v
		}

		activities = append(activities, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return activities, nil
}

func (s *Storage) UpdateActivitiesAdmin(ctx context.Context, activities []storage.Activity) error {
	const op = "storage.mysql.UpdateActivitiesAdmin"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		UPDATE activities
		SET unit_cost = ?, daily_activity_cost = ?, is_active = ?
		WHERE id = ?
	`)
	if err != nil {
		return fmt.Errorf("%s: prepare statement: %w", op, err)
	}
	defer stmt.Close()

	for _, a := range activities {
		var daily sql.NullFloat64
		if a.DailyActivityCost != nil {
			daily = sql.NullFloat64{Float64: *a.DailyActivityCost, Valid: true}
		}

		if _, err := stmt.ExecContext(ctx, a.UnitCost, daily, a.IsActive, a.ID); err != nil {
			return fmt.Errorf("%s: update activity id=%d: %w", op, a.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit transaction: %w", op, err)
	}

	return nil
}

func (s *Storage) GetAllEmployeesAdmin(ctx context.Context) ([]*storage.Employee, error) {
	const op = "storage.mysql.GetAllEmployeesAdmin"

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, first_name, last_name, salary, payment_period, hire_date, is_active
		FROM employees ORDER BY first_name, last_name`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var employees []*storage.Employee

	for rows.Next() {
		e := &storage.Employee{}
		var hireDate sql.NullTime

		if err := rows.Scan(&e.ID, &e.FirstName, &e.LastName, &e.Salary, &e.PaymentPeriod, &hireDate, &e.IsActive); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		if hireDate.Valid {
			e.HireDate = &hireDate.Time
		}

		employees = append(employees, e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return employees, nil
}

// UpdateEmployeesAdmin rewrites salary terms; names and hire dates are kept.
func (s *Storage) UpdateEmployeesAdmin(ctx context.Context, employees []storage.Employee) error {
	const op = "storage.mysql.UpdateEmployeesAdmin"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		UPDATE employees
		SET salary = ?, payment_period = ?, is_active = ?
		WHERE id = ?
	`)
	if err != nil {
		return fmt.Errorf("%s: prepare statement: %w", op, err)
	}
	defer stmt.Close()

	for _, e := range employees {
		if _, err := stmt.ExecContext(ctx, e.Salary, e.PaymentPeriod, e.IsActive, e.ID); err != nil {
			return fmt.Errorf("%s: update employee id=%d: %w", op, e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit transaction: %w", op, err)
	}

	return nil
}

func (s *Storage) CreateEmployeeAdmin(ctx context.Context, e storage.Employee) (int64, error) {
	const op = "storage.mysql.CreateEmployeeAdmin"

	var hireDate sql.NullTime
	if e.HireDate != nil {
		hireDate = sql.NullTime{Time: *e.HireDate, Valid: true}
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO employees (first_name, last_name, salary, payment_period, hire_date, is_active)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.FirstName, e.LastName, e.Salary, e.PaymentPeriod, hireDate, e.IsActive)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s: last insert id: %w", op, err)
	}

	return id, nil
}
