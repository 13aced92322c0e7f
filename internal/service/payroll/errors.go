package payroll

import "errors"

var (
	ErrInvalidRange = errors.New("end date precedes start date")
	ErrInvalidDate  = errors.New("invalid date")
)
