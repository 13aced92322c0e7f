package storage

import "time"

type WorkOrder struct {
	ID               int64           `json:"id,omitempty"`
	PhaseID          int64           `json:"phaseId"`
	ActivityID       int64           `json:"activityId"`
	Date             string          `json:"date"`
	Description      string          `json:"description"`
	Employees        []EmployeeLine  `json:"employees"`
	GlobalMaterials  []MaterialLine  `json:"globalMaterials"`
	GlobalExtraCosts []ExtraCostLine `json:"globalExtraCosts"`
	TotalCost        float64         `json:"totalCost"`
	CreatedAt        *time.Time      `json:"createdAt,omitempty"`
	UpdatedAt        *time.Time      `json:"updatedAt,omitempty"`
}

// EmployeeLine is a labor assignment on a work order. Pointer fields are
// optional on the wire; LaborCost and TotalCost are snapshots filled on save.
type EmployeeLine struct {
	EmployeeID          int64           `json:"employeeId"`
	Quantity            *float64        `json:"quantity"`
	UnitCost            *float64        `json:"unitCost"`
	CostCalculationMode *int            `json:"costCalculationMode,omitempty"`
	Days                *float64        `json:"days,omitempty"`
	Materials           []MaterialLine  `json:"materials"`
	ExtraCosts          []ExtraCostLine `json:"extraCosts"`
	LaborCost           float64         `json:"laborCost"`
	TotalCost           float64         `json:"totalCost"`
}

type MaterialLine struct {
	MaterialID *int64   `json:"materialId,omitempty"`
	Quantity   *float64 `json:"quantity"`
	UnitCost   *float64 `json:"unitCost"`
	Subtotal   float64  `json:"subtotal"`
}

type ExtraCostLine struct {
	ExtraCostID *int64   `json:"extraCostId,omitempty"`
	Quantity    *float64 `json:"quantity"`
	UnitCost    *float64 `json:"unitCost"`
	Subtotal    float64  `json:"subtotal"`
}

type WorkOrderFilter struct {
	From    time.Time
	To      time.Time
	PhaseID int64
}

// WorkOrderReportRow is one line of the cost report.
type WorkOrderReportRow struct {
	ID           int64     `json:"id"`
	Date         time.Time `json:"date"`
	PhaseName    string    `json:"phase_name"`
	ActivityName string    `json:"activity_name"`
	Description  string    `json:"description"`
	TotalCost    float64   `json:"total_cost"`

	// employee_id → line cost
	EmployeeCost map[int64]float64 `json:"employee_cost"`
}
