package costing

import (
	"fmt"

	"agro-cost/internal/storage"
)

// BuildWorkOrder turns the wire DTO into the calculator's closed types.
// Quantities are required. A missing unit cost is taken from the activity
// for labor lines and from the catalog for materials and extra costs; if no
// such source exists the line is rejected.
func BuildWorkOrder(dto storage.WorkOrder, activity *storage.Activity, materials map[int64]storage.Material, extraCosts map[int64]storage.ExtraCost) (WorkOrder, error) {
	order := WorkOrder{
		Employees: make([]EmployeeLine, 0, len(dto.Employees)),
	}

	for i, e := range dto.Employees {
		field := fmt.Sprintf("employees[%d]", i)

		if e.Quantity == nil {
			return WorkOrder{}, fmt.Errorf("%w: %s.quantity", ErrMissingValue, field)
		}

		var unitCost float64
		switch {
		case e.UnitCost != nil:
			unitCost = *e.UnitCost
		case activity != nil:
			unitCost = activity.UnitCost
		default:
			return WorkOrder{}, fmt.Errorf("%w: %s.unitCost", ErrMissingValue, field)
		}

		mode, err := ParseMode(e.CostCalculationMode)
		if err != nil {
			return WorkOrder{}, fmt.Errorf("%s: %w", field, err)
		}

		var days float64
		if e.Days != nil {
			days = *e.Days
		}

		lineMaterials, err := materialLines(e.Materials, materials, field+".materials")
		if err != nil {
			return WorkOrder{}, err
		}
		lineExtras, err := extraCostLines(e.ExtraCosts, extraCosts, field+".extraCosts")
		if err != nil {
			return WorkOrder{}, err
		}

		order.Employees = append(order.Employees, EmployeeLine{
			EmployeeID: e.EmployeeID,
			Quantity:   *e.Quantity,
			UnitCost:   unitCost,
			Mode:       mode,
			Days:       days,
			Materials:  lineMaterials,
			ExtraCosts: lineExtras,
		})
	}

	var err error
	order.GlobalMaterials, err = materialLines(dto.GlobalMaterials, materials, "globalMaterials")
	if err != nil {
		return WorkOrder{}, err
	}
	order.GlobalExtraCosts, err = extraCostLines(dto.GlobalExtraCosts, extraCosts, "globalExtraCosts")
	if err != nil {
		return WorkOrder{}, err
	}

	return order, nil
}

func materialLines(lines []storage.MaterialLine, catalog map[int64]storage.Material, field string) ([]CostLine, error) {
	out := make([]CostLine, 0, len(lines))
	for i, l := range lines {
		if l.Quantity == nil {
			return nil, fmt.Errorf("%w: %s[%d].quantity", ErrMissingValue, field, i)
		}

		var unitCost float64
		switch {
		case l.UnitCost != nil:
			unitCost = *l.UnitCost
		case l.MaterialID != nil:
			m, ok := catalog[*l.MaterialID]
			if !ok {
				return nil, &storage.MissingReferenceError{Kind: storage.RefMaterial, ID: *l.MaterialID}
			}
			unitCost = m.UnitCost
		default:
			return nil, fmt.Errorf("%w: %s[%d].unitCost", ErrMissingValue, field, i)
		}

		out = append(out, CostLine{Quantity: *l.Quantity, UnitCost: unitCost})
	}
	return out, nil
}

func extraCostLines(lines []storage.ExtraCostLine, catalog map[int64]storage.ExtraCost, field string) ([]CostLine, error) {
	out := make([]CostLine, 0, len(lines))
	for i, l := range lines {
		if l.Quantity == nil {
			return nil, fmt.Errorf("%w: %s[%d].quantity", ErrMissingValue, field, i)
		}

		var unitCost float64
		switch {
		case l.UnitCost != nil:
			unitCost = *l.UnitCost
		case l.ExtraCostID != nil:
			c, ok := catalog[*l.ExtraCostID]
			if !ok {
				return nil, &storage.MissingReferenceError{Kind: storage.RefExtraCost, ID: *l.ExtraCostID}
			}
			unitCost = c.UnitCost
		default:
			return nil, fmt.Errorf("%w: %s[%d].unitCost", ErrMissingValue, field, i)
		}

		out = append(out, CostLine{Quantity: *l.Quantity, UnitCost: unitCost})
	}
	return out, nil
}

// MergeEstimate returns a copy of dto carrying the resolved unit costs and
// the cost snapshots. dto itself is left untouched.
func MergeEstimate(dto storage.WorkOrder, order WorkOrder, est Estimate) storage.WorkOrder {
	out := dto
	out.TotalCost = est.TotalCost

	out.Employees = make([]storage.EmployeeLine, len(dto.Employees))
	for i, e := range dto.Employees {
		line := order.Employees[i]
		e.UnitCost = float64Ptr(line.UnitCost)
		e.LaborCost = est.Employees[i].LaborCost
		e.TotalCost = est.Employees[i].Total
		e.Materials = mergeMaterials(e.Materials, line.Materials)
		e.ExtraCosts = mergeExtraCosts(e.ExtraCosts, line.ExtraCosts)
		out.Employees[i] = e
	}

	out.GlobalMaterials = mergeMaterials(dto.GlobalMaterials, order.GlobalMaterials)
	out.GlobalExtraCosts = mergeExtraCosts(dto.GlobalExtraCosts, order.GlobalExtraCosts)

	return out
}

func mergeMaterials(lines []storage.MaterialLine, resolved []CostLine) []storage.MaterialLine {
	out := make([]storage.MaterialLine, len(lines))
	for i, l := range lines {
		l.UnitCost = float64Ptr(resolved[i].UnitCost)
		l.Subtotal = Subtotal(resolved[i])
		out[i] = l
	}
	return out
}

func mergeExtraCosts(lines []storage.ExtraCostLine, resolved []CostLine) []storage.ExtraCostLine {
	out := make([]storage.ExtraCostLine, len(lines))
	for i, l := range lines {
		l.UnitCost = float64Ptr(resolved[i].UnitCost)
		l.Subtotal = Subtotal(resolved[i])
		out[i] = l
	}
	return out
}

func float64Ptr(v float64) *float64 {
	return &v
}
