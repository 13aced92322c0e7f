package costing

import "errors"

var (
	ErrMissingValue = errors.New("required value is missing")
	ErrUnknownMode  = errors.New("unknown cost calculation mode")
	ErrInvalidDate  = errors.New("invalid work order date")
)
