package costing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLaborCost_Scenarios(t *testing.T) {
	tests := []struct {
		name      string
		mode      CostCalculationMode
		isDefault bool
		want      float64
	}{
		{name: "not default phase, mode No", mode: ModeNo, isDefault: false, want: 80},
		{name: "not default phase ignores OnlyDailyCost", mode: ModeOnlyDailyCost, isDefault: false, want: 80},
		{name: "not default phase ignores Combine", mode: ModeCombine, isDefault: false, want: 80},
		{name: "default phase, mode No", mode: ModeNo, isDefault: true, want: 80},
		{name: "default phase, only daily cost", mode: ModeOnlyDailyCost, isDefault: true, want: 150},
		{name: "default phase, combine", mode: ModeCombine, isDefault: true, want: 230},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LaborCost(tt.mode, 8, 10, 3, 50, tt.isDefault)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLaborCost_UnknownModeBehavesAsNo(t *testing.T) {
	assert.Equal(t, 80.0, LaborCost(CostCalculationMode(7), 8, 10, 3, 50, true))
}

func TestLaborCost_LinearInQuantity(t *testing.T) {
	for _, mode := range []CostCalculationMode{ModeNo, ModeCombine} {
		one := LaborCost(mode, 1, 12.5, 2, 40, true)
		for _, q := range []float64{2, 3, 10} {
			got := LaborCost(mode, q, 12.5, 2, 40, true)
			fixed := LaborCost(mode, 0, 12.5, 2, 40, true)
			assert.InDelta(t, fixed+q*(one-fixed), got, 1e-9, "mode=%s q=%v", mode, q)
		}
	}
}

func TestLaborCost_OnlyDailyCostIgnoresQuantity(t *testing.T) {
	base := LaborCost(ModeOnlyDailyCost, 0, 10, 4, 25, true)
	for _, q := range []float64{1, 5, 1000} {
		assert.Equal(t, base, LaborCost(ModeOnlyDailyCost, q, 10, 4, 25, true))
	}
	assert.Equal(t, 100.0, base)
}

func TestLaborCost_NegativeInputsContributeZero(t *testing.T) {
	assert.Equal(t, 0.0, LaborCost(ModeNo, -8, 10, 0, 0, false))
	assert.Equal(t, 0.0, LaborCost(ModeOnlyDailyCost, 8, 10, -3, 50, true))
	assert.Equal(t, 80.0, LaborCost(ModeCombine, 8, 10, 3, -50, true))
}

func TestSubtotal(t *testing.T) {
	for _, x := range []float64{0, 1, 2.5, 1e6} {
		assert.Equal(t, 0.0, Subtotal(CostLine{Quantity: 0, UnitCost: x}))
		assert.Equal(t, 0.0, Subtotal(CostLine{Quantity: x, UnitCost: 0}))
	}
	assert.Equal(t, 50.0, Subtotal(CostLine{Quantity: 2, UnitCost: 25}))
	assert.Equal(t, 0.0, Subtotal(CostLine{Quantity: -2, UnitCost: 25}))
	assert.Equal(t, 0.0, Subtotal(CostLine{Quantity: 2, UnitCost: -25}))
}

func TestWorkOrderTotal_Empty(t *testing.T) {
	assert.Equal(t, 0.0, WorkOrderTotal(WorkOrder{}, Context{}))
	assert.Equal(t, 0.0, WorkOrderTotal(WorkOrder{}, Context{IsDefaultPhase: true, DailyActivityCost: 99}))

	est := Recompute(WorkOrder{}, Context{})
	assert.Empty(t, est.Employees)
	assert.NotNil(t, est.Employees)
}

func scenarioF() WorkOrder {
	return WorkOrder{
		Employees: []EmployeeLine{
			{EmployeeID: 1, Quantity: 8, UnitCost: 10, Mode: ModeCombine, Days: 3},
		},
		GlobalMaterials:  []CostLine{{Quantity: 2, UnitCost: 25}},
		GlobalExtraCosts: []CostLine{{Quantity: 1, UnitCost: 15}},
	}
}

func TestWorkOrderTotal_GlobalLines(t *testing.T) {
	ctx := Context{IsDefaultPhase: true, DailyActivityCost: 50}

	est := Recompute(scenarioF(), ctx)

	assert.Equal(t, 295.0, est.TotalCost)
	assert.Equal(t, 50.0, est.GlobalMaterialsCost)
	assert.Equal(t, 15.0, est.GlobalExtraCostsCost)
	if assert.Len(t, est.Employees, 1) {
		assert.Equal(t, EmployeeCost{EmployeeID: 1, LaborCost: 230, Total: 230}, est.Employees[0])
	}
}

func TestWorkOrderTotal_Idempotent(t *testing.T) {
	ctx := Context{IsDefaultPhase: true, DailyActivityCost: 50}
	order := scenarioF()
	order.Employees[0].Materials = []CostLine{{Quantity: 0.1, UnitCost: 0.2}, {Quantity: 3, UnitCost: 1.1}}

	first := Recompute(order, ctx)
	second := Recompute(order, ctx)

	assert.Equal(t, first, second)
	assert.Equal(t, scenarioF().Employees[0].Quantity, order.Employees[0].Quantity)
	assert.Len(t, order.Employees[0].Materials, 2)
}

func TestEmployeeLineCost_IncludesNestedLines(t *testing.T) {
	line := EmployeeLine{
		Quantity:   4,
		UnitCost:   5,
		Materials:  []CostLine{{Quantity: 2, UnitCost: 3}, {Quantity: 1, UnitCost: 4}},
		ExtraCosts: []CostLine{{Quantity: 1, UnitCost: 7.5}},
	}

	assert.Equal(t, 20.0+6+4+7.5, EmployeeLineCost(line, Context{}))
}

func TestRecompute_NoFloatDrift(t *testing.T) {
	lines := make([]CostLine, 10)
	for i := range lines {
		lines[i] = CostLine{Quantity: 1, UnitCost: 0.1}
	}

	total := WorkOrderTotal(WorkOrder{GlobalMaterials: lines}, Context{})
	assert.Equal(t, 1.0, total)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode(nil)
	assert.NoError(t, err)
	assert.Equal(t, ModeNo, m)

	two := 2
	m, err = ParseMode(&two)
	assert.NoError(t, err)
	assert.Equal(t, ModeCombine, m)

	bad := 3
	_, err = ParseMode(&bad)
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestEffectiveMode(t *testing.T) {
	assert.Equal(t, ModeNo, EffectiveMode(ModeCombine, false))
	assert.Equal(t, ModeCombine, EffectiveMode(ModeCombine, true))
	assert.Equal(t, ModeOnlyDailyCost, EffectiveMode(ModeOnlyDailyCost, true))
	assert.Equal(t, "OnlyDailyCost", ModeOnlyDailyCost.String())
}
