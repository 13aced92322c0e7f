package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"agro-cost/internal/storage"
)

func (s *Storage) GetPhase(ctx context.Context, id int64) (*storage.Phase, error) {
	const op = "storage.mysql.GetPhase"

	var p storage.Phase
	err := s.db.QueryRowContext(ctx, `SELECT id, name, is_default FROM phases WHERE id = ?`, id).
		Scan(&p.ID, &p.Name, &p.IsDefault)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: phase id=%d: %w", op, id, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &p, nil
}

func (s *Storage) GetActivity(ctx context.Context, id int64) (*storage.Activity, error) {
	const op = "storage.mysql.GetActivity"

	var (
		a     storage.Activity
		daily sql.NullFloat64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, unit_cost, daily_activity_cost, is_active FROM activities WHERE id = ?`, id).
		Scan(&a.ID, &a.Name, &a.UnitCost, &daily, &a.IsActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: activity id=%d: %w", op, id, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if daily.Valid {
		a.DailyActivityCost = &daily.Float64
	}

	return &a, nil
}

// GetMaterialsByIDs returns the catalog entries that exist; missing ids are
// simply absent from the map.
func (s *Storage) GetMaterialsByIDs(ctx context.Context, ids []int64) (map[int64]storage.Material, error) {
	const op = "storage.mysql.GetMaterialsByIDs"

	res := make(map[int64]storage.Material, len(ids))
	if len(ids) == 0 {
		return res, nil
	}

	query := `SELECT id, name, unit_cost FROM materials WHERE id IN (` + placeholders(len(ids)) + `)`

	rows, err := s.db.QueryContext(ctx, query, toInterfaceSlice(ids)...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	for rows.Next() {
		var m storage.Material
		if err := rows.Scan(&m.ID, &m.Name, &m.UnitCost); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		res[m.ID] = m
	}

	return res, rows.Err()
}

func (s *Storage) GetExtraCostsByIDs(ctx context.Context, ids []int64) (map[int64]storage.ExtraCost, error) {
	const op = "storage.mysql.GetExtraCostsByIDs"

	res := make(map[int64]storage.ExtraCost, len(ids))
	if len(ids) == 0 {
		return res, nil
	}

	query := `SELECT id, name, unit_cost FROM extra_costs WHERE id IN (` + placeholders(len(ids)) + `)`

	rows, err := s.db.QueryContext(ctx, query, toInterfaceSlice(ids)...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	for rows.Next() {
		var c storage.ExtraCost
		if err := rows.Scan(&c.ID, &c.Name, &c.UnitCost); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		res[c.ID] = c
	}

	return res, rows.Err()
}

func (s *Storage) GetEmployee(ctx context.Context, id int64) (*storage.Employee, error) {
	const op = "storage.mysql.GetEmployee"

	var (
		e        storage.Employee
		hireDate sql.NullTime
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, salary, payment_period, hire_date, is_active
		FROM employees WHERE id = ?`, id).
		Scan(&e.ID, &e.FirstName, &e.LastName, &e.Salary, &e.PaymentPeriod, &hireDate, &e.IsActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: employee id=%d: %w", op, id, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if hireDate.Valid {
		e.HireDate = &hireDate.Time
	}

	return &e, nil
}
