package storage

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrMissingReference = errors.New("missing reference data")
	ErrPayrollExists    = errors.New("payroll for this period already exists")
)

const (
	RefPhase     = "phase"
	RefActivity  = "activity"
	RefMaterial  = "material"
	RefExtraCost = "extra cost"
	RefEmployee  = "employee"
)

// MissingReferenceError reports a reference record that a calculation needs
// but storage does not have.
type MissingReferenceError struct {
	Kind string
	ID   int64
}

func (e *MissingReferenceError) Error() string {
	return fmt.Sprintf("%s with id=%d not found", e.Kind, e.ID)
}

func (e *MissingReferenceError) Is(target error) bool {
	return target == ErrMissingReference
}
