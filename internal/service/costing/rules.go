package costing

import (
	"math"

	"github.com/shopspring/decimal"
)

// CostLine is a material or extra cost entry: quantity × unit cost.
type CostLine struct {
	Quantity float64
	UnitCost float64
}

type EmployeeLine struct {
	EmployeeID int64
	Quantity   float64
	UnitCost   float64
	Mode       CostCalculationMode
	Days       float64
	Materials  []CostLine
	ExtraCosts []CostLine
}

type WorkOrder struct {
	Employees        []EmployeeLine
	GlobalMaterials  []CostLine
	GlobalExtraCosts []CostLine
}

// Context holds the reference values the rules depend on: whether the work
// order belongs to the default phase and the activity's daily cost.
type Context struct {
	IsDefaultPhase    bool
	DailyActivityCost float64
}

type EmployeeCost struct {
	EmployeeID     int64   `json:"employeeId"`
	LaborCost      float64 `json:"laborCost"`
	MaterialsCost  float64 `json:"materialsCost"`
	ExtraCostsCost float64 `json:"extraCostsCost"`
	Total          float64 `json:"total"`
}

type Estimate struct {
	Employees            []EmployeeCost `json:"employees"`
	GlobalMaterialsCost  float64        `json:"globalMaterialsCost"`
	GlobalExtraCostsCost float64        `json:"globalExtraCostsCost"`
	TotalCost            float64        `json:"totalCost"`
}

// amount clamps negative and non-finite inputs to zero.
func amount(v float64) decimal.Decimal {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}

func subtotal(l CostLine) decimal.Decimal {
	return amount(l.Quantity).Mul(amount(l.UnitCost))
}

func sumLines(lines []CostLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(subtotal(l))
	}
	return total
}

func laborCost(mode CostCalculationMode, quantity, unitCost, days, dailyActivityCost float64, isDefaultPhase bool) decimal.Decimal {
	byQuantity := amount(quantity).Mul(amount(unitCost))
	byDays := amount(days).Mul(amount(dailyActivityCost))

	switch EffectiveMode(mode, isDefaultPhase) {
	case ModeOnlyDailyCost:
		return byDays
	case ModeCombine:
		return byQuantity.Add(byDays)
	case ModeNo:
		return byQuantity
	}
	return byQuantity
}

// Subtotal is quantity × unit cost, shared by materials and extra costs.
func Subtotal(l CostLine) float64 {
	return subtotal(l).InexactFloat64()
}

// LaborCost prices a labor line. Outside the default phase the mode is
// ignored and the line is always quantity × unit cost.
func LaborCost(mode CostCalculationMode, quantity, unitCost, days, dailyActivityCost float64, isDefaultPhase bool) float64 {
	return laborCost(mode, quantity, unitCost, days, dailyActivityCost, isDefaultPhase).InexactFloat64()
}

func employeeLineCost(line EmployeeLine, ctx Context) (labor, materials, extras decimal.Decimal) {
	labor = laborCost(line.Mode, line.Quantity, line.UnitCost, line.Days, ctx.DailyActivityCost, ctx.IsDefaultPhase)
	materials = sumLines(line.Materials)
	extras = sumLines(line.ExtraCosts)
	return labor, materials, extras
}

func EmployeeLineCost(line EmployeeLine, ctx Context) float64 {
	labor, materials, extras := employeeLineCost(line, ctx)
	return labor.Add(materials).Add(extras).InexactFloat64()
}

func WorkOrderTotal(order WorkOrder, ctx Context) float64 {
	return Recompute(order, ctx).TotalCost
}

// Recompute folds the whole order from scratch. The input is never modified,
// so it is safe to call on every edit.
func Recompute(order WorkOrder, ctx Context) Estimate {
	est := Estimate{Employees: make([]EmployeeCost, 0, len(order.Employees))}
	total := decimal.Zero

	for _, line := range order.Employees {
		labor, materials, extras := employeeLineCost(line, ctx)
		lineTotal := labor.Add(materials).Add(extras)
		total = total.Add(lineTotal)

		est.Employees = append(est.Employees, EmployeeCost{
			EmployeeID:     line.EmployeeID,
			LaborCost:      labor.InexactFloat64(),
			MaterialsCost:  materials.InexactFloat64(),
			ExtraCostsCost: extras.InexactFloat64(),
			Total:          lineTotal.InexactFloat64(),
		})
	}

	globalMaterials := sumLines(order.GlobalMaterials)
	globalExtras := sumLines(order.GlobalExtraCosts)
	total = total.Add(globalMaterials).Add(globalExtras)

	est.GlobalMaterialsCost = globalMaterials.InexactFloat64()
	est.GlobalExtraCostsCost = globalExtras.InexactFloat64()
	est.TotalCost = total.InexactFloat64()

	return est
}
