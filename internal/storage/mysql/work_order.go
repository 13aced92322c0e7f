package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"

	"agro-cost/internal/storage"
)

const dateLayout = "2006-01-02"

// MySQL error 1452: foreign key constraint fails.
const errForeignKey = 1452

func (s *Storage) SaveWorkOrder(ctx context.Context, order storage.WorkOrder) (int64, error) {
	const op = "storage.mysql.SaveWorkOrder"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO work_orders (phase_id, activity_id, work_date, description, total_cost)
		VALUES (?, ?, ?, ?, ?)`,
		order.PhaseID, nullID(order.ActivityID), order.Date, order.Description, order.TotalCost)
	if err != nil {
		return 0, fmt.Errorf("%s: insert work order: %w", op, foreignKeyErr(err))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s: last insert id: %w", op, err)
	}

	if err := insertLines(ctx, tx, id, order); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: commit transaction: %w", op, err)
	}

	return id, nil
}

// UpdateWorkOrder replaces the header and every line of an existing order.
func (s *Storage) UpdateWorkOrder(ctx context.Context, order storage.WorkOrder) error {
	const op = "storage.mysql.UpdateWorkOrder"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE work_orders
		SET phase_id = ?, activity_id = ?, work_date = ?, description = ?, total_cost = ?
		WHERE id = ?`,
		order.PhaseID, nullID(order.ActivityID), order.Date, order.Description, order.TotalCost, order.ID)
	if err != nil {
		return fmt.Errorf("%s: update work order id=%d: %w", op, order.ID, foreignKeyErr(err))
	}

	// MySQL reports 0 affected rows when nothing changed, so check existence
	// separately.
	if n, _ := res.RowsAffected(); n == 0 {
		var exists bool
		err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM work_orders WHERE id = ?)`, order.ID).Scan(&exists)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if !exists {
			return fmt.Errorf("%s: work order id=%d: %w", op, order.ID, storage.ErrNotFound)
		}
	}

	for _, table := range []string{"work_order_materials", "work_order_extra_costs", "work_order_employees"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE work_order_id = ?", order.ID); err != nil {
			return fmt.Errorf("%s: delete old lines from %s: %w", op, table, err)
		}
	}

	if err := insertLines(ctx, tx, order.ID, order); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit transaction: %w", op, err)
	}

	return nil
}

func insertLines(ctx context.Context, tx *sql.Tx, orderID int64, order storage.WorkOrder) error {
	empStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO work_order_employees
			(work_order_id, position, employee_id, quantity, unit_cost, cost_calculation_mode, days, labor_cost, total_cost)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare employees: %w", err)
	}
	defer empStmt.Close()

	for i, e := range order.Employees {
		var mode sql.NullInt64
		if e.CostCalculationMode != nil {
			mode = sql.NullInt64{Int64: int64(*e.CostCalculationMode), Valid: true}
		}
		var days sql.NullFloat64
		if e.Days != nil {
			days = sql.NullFloat64{Float64: *e.Days, Valid: true}
		}

		res, err := empStmt.ExecContext(ctx, orderID, i, e.EmployeeID, deref(e.Quantity), deref(e.UnitCost),
			mode, days, e.LaborCost, e.TotalCost)
		if err != nil {
			return fmt.Errorf("insert employee line %d (employee_id=%d): %w", i, e.EmployeeID, foreignKeyErr(err))
		}

		lineID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("employee line %d id: %w", i, err)
		}

		if err := insertMaterials(ctx, tx, orderID, sql.NullInt64{Int64: lineID, Valid: true}, e.Materials); err != nil {
			return err
		}
		if err := insertExtraCosts(ctx, tx, orderID, sql.NullInt64{Int64: lineID, Valid: true}, e.ExtraCosts); err != nil {
			return err
		}
	}

	if err := insertMaterials(ctx, tx, orderID, sql.NullInt64{}, order.GlobalMaterials); err != nil {
		return err
	}
	return insertExtraCosts(ctx, tx, orderID, sql.NullInt64{}, order.GlobalExtraCosts)
}

func insertMaterials(ctx context.Context, tx *sql.Tx, orderID int64, lineID sql.NullInt64, lines []storage.MaterialLine) error {
	for i, m := range lines {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO work_order_materials
				(work_order_id, employee_line_id, position, material_id, quantity, unit_cost, subtotal)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			orderID, lineID, i, nullIDPtr(m.MaterialID), deref(m.Quantity), deref(m.UnitCost), m.Subtotal)
		if err != nil {
			return fmt.Errorf("insert material %d: %w", i, err)
		}
	}
	return nil
}

func insertExtraCosts(ctx context.Context, tx *sql.Tx, orderID int64, lineID sql.NullInt64, lines []storage.ExtraCostLine) error {
	for i, c := range lines {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO work_order_extra_costs
				(work_order_id, employee_line_id, position, extra_cost_id, quantity, unit_cost, subtotal)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			orderID, lineID, i, nullIDPtr(c.ExtraCostID), deref(c.Quantity), deref(c.UnitCost), c.Subtotal)
		if err != nil {
			return fmt.Errorf("insert extra cost %d: %w", i, err)
		}
	}
	return nil
}

func (s *Storage) GetWorkOrder(ctx context.Context, id int64) (*storage.WorkOrder, error) {
	const op = "storage.mysql.GetWorkOrder"

	var (
		order      storage.WorkOrder
		activityID sql.NullInt64
		workDate   time.Time
		createdAt  time.Time
		updatedAt  time.Time
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, phase_id, activity_id, work_date, description, total_cost, created_at, updated_at
		FROM work_orders WHERE id = ?`, id).
		Scan(&order.ID, &order.PhaseID, &activityID, &workDate, &order.Description, &order.TotalCost, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: work order id=%d: %w", op, id, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	order.ActivityID = activityID.Int64
	order.Date = workDate.Format(dateLayout)
	order.CreatedAt = &createdAt
	order.UpdatedAt = &updatedAt

	lineIndex, err := s.loadEmployeeLines(ctx, &order)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.loadMaterials(ctx, &order, lineIndex); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.loadExtraCosts(ctx, &order, lineIndex); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &order, nil
}

// loadEmployeeLines fills order.Employees and returns line id → slice index.
func (s *Storage) loadEmployeeLines(ctx context.Context, order *storage.WorkOrder) (map[int64]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, employee_id, quantity, unit_cost, cost_calculation_mode, days, labor_cost, total_cost
		FROM work_order_employees WHERE work_order_id = ? ORDER BY position`, order.ID)
	if err != nil {
		return nil, fmt.Errorf("employees: %w", err)
	}
	defer rows.Close()

	index := make(map[int64]int)
	order.Employees = []storage.EmployeeLine{}

	for rows.Next() {
		var (
			lineID   int64
			e        storage.EmployeeLine
			quantity float64
			unitCost float64
			mode     sql.NullInt64
			days     sql.NullFloat64
		)
		if err := rows.Scan(&lineID, &e.EmployeeID, &quantity, &unitCost, &mode, &days, &e.LaborCost, &e.TotalCost); err != nil {
			return nil, fmt.Errorf("employees scan: %w", err)
		}
		e.Quantity = &quantity
		e.UnitCost = &unitCost
		if mode.Valid {
			m := int(mode.Int64)
			e.CostCalculationMode = &m
		}
		if days.Valid {
			e.Days = &days.Float64
		}
		e.Materials = []storage.MaterialLine{}
		e.ExtraCosts = []storage.ExtraCostLine{}

		index[lineID] = len(order.Employees)
		order.Employees = append(order.Employees, e)
	}

	return index, rows.Err()
}

func (s *Storage) loadMaterials(ctx context.Context, order *storage.WorkOrder, lineIndex map[int64]int) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT employee_line_id, material_id, quantity, unit_cost, subtotal
		FROM work_order_materials WHERE work_order_id = ? ORDER BY employee_line_id, position`, order.ID)
	if err != nil {
		return fmt.Errorf("materials: %w", err)
	}
	defer rows.Close()

	order.GlobalMaterials = []storage.MaterialLine{}

	for rows.Next() {
		var (
			lineID     sql.NullInt64
			materialID sql.NullInt64
			quantity   float64
			unitCost   float64
			m          storage.MaterialLine
		)
		if err := rows.Scan(&lineID, &materialID, &quantity, &unitCost, &m.Subtotal); err != nil {
			return fmt.Errorf("materials scan: %w", err)
		}
		m.Quantity = &quantity
		m.UnitCost = &unitCost
		if materialID.Valid {
			m.MaterialID = &materialID.Int64
		}

		if idx, ok := lineIndex[lineID.Int64]; lineID.Valid && ok {
			order.Employees[idx].Materials = append(order.Employees[idx].Materials, m)
			continue
		}
		order.GlobalMaterials = append(order.GlobalMaterials, m)
	}

	return rows.Err()
}

func (s *Storage) loadExtraCosts(ctx context.Context, order *storage.WorkOrder, lineIndex map[int64]int) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT employee_line_id, extra_cost_id, quantity, unit_cost, subtotal
		FROM work_order_extra_costs WHERE work_order_id = ? ORDER BY employee_line_id, position`, order.ID)
	if err != nil {
		return fmt.Errorf("extra costs: %w", err)
	}
	defer rows.Close()

	order.GlobalExtraCosts = []storage.ExtraCostLine{}

	for rows.Next() {
		var (
			lineID      sql.NullInt64
			extraCostID sql.NullInt64
			quantity    float64
			unitCost    float64
			c           storage.ExtraCostLine
		)
		if err := rows.Scan(&lineID, &extraCostID, &quantity, &unitCost, &c.Subtotal); err != nil {
			return fmt.Errorf("extra costs scan: %w", err)
		}
		c.Quantity = &quantity
		c.UnitCost = &unitCost
		if extraCostID.Valid {
			c.ExtraCostID = &extraCostID.Int64
		}

		if idx, ok := lineIndex[lineID.Int64]; lineID.Valid && ok {
			order.Employees[idx].ExtraCosts = append(order.Employees[idx].ExtraCosts, c)
			continue
		}
		order.GlobalExtraCosts = append(order.GlobalExtraCosts, c)
	}

	return rows.Err()
}

// SumEmployeeLaborCost adds up the labor snapshots booked for the employee on
// work orders dated inside [from, to].
func (s *Storage) SumEmployeeLaborCost(ctx context.Context, employeeID int64, from, to time.Time) (float64, error) {
	const op = "storage.mysql.SumEmployeeLaborCost"

	var total float64
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(e.labor_cost), 0)
		FROM work_order_employees e
		JOIN work_orders w ON w.id = e.work_order_id
		WHERE e.employee_id = ? AND w.work_date BETWEEN ? AND ?`,
		employeeID, from.Format(dateLayout), to.Format(dateLayout)).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return total, nil
}

func foreignKeyErr(err error) error {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == errForeignKey {
		return fmt.Errorf("%w: %s", storage.ErrMissingReference, mysqlErr.Message)
	}
	return err
}

func nullID(id int64) sql.NullInt64 {
	return sql.NullInt64{Int64: id, Valid: id != 0}
}

func nullIDPtr(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return nullID(*id)
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
