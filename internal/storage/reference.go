package storage

import "time"

type Phase struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	IsDefault bool   `json:"isDefault"`
}

type Activity struct {
	ID                int64    `json:"id"`
	Name              string   `json:"name"`
	UnitCost          float64  `json:"unitCost"`
	DailyActivityCost *float64 `json:"dailyActivityCost"`
	IsActive          bool     `json:"isActive"`
}

type Material struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	UnitCost float64 `json:"unitCost"`
}

type ExtraCost struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	UnitCost float64 `json:"unitCost"`
}

type Employee struct {
	ID            int64      `json:"id"`
	FirstName     string     `json:"firstName"`
	LastName      string     `json:"lastName"`
	Salary        float64    `json:"salary"`
	PaymentPeriod string     `json:"paymentPeriod"`
	HireDate      *time.Time `json:"hireDate,omitempty"`
	IsActive      bool       `json:"isActive"`
}

func (e Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}
