package costing

import "fmt"

// CostCalculationMode selects how a labor line is priced. It only has an
// effect on work orders of the default (harvest) phase.
type CostCalculationMode int

const (
	ModeNo CostCalculationMode = iota
	ModeOnlyDailyCost
	ModeCombine
)

func (m CostCalculationMode) Valid() bool {
	switch m {
	case ModeNo, ModeOnlyDailyCost, ModeCombine:
		return true
	}
	return false
}

func (m CostCalculationMode) String() string {
	switch m {
	case ModeNo:
		return "No"
	case ModeOnlyDailyCost:
		return "OnlyDailyCost"
	case ModeCombine:
		return "Combine"
	default:
		return fmt.Sprintf("CostCalculationMode(%d)", int(m))
	}
}

// ParseMode converts the wire value. An absent mode is ModeNo.
func ParseMode(v *int) (CostCalculationMode, error) {
	if v == nil {
		return ModeNo, nil
	}
	m := CostCalculationMode(*v)
	if !m.Valid() {
		return ModeNo, fmt.Errorf("%w: %d", ErrUnknownMode, *v)
	}
	return m, nil
}

// EffectiveMode forces ModeNo outside the default phase.
func EffectiveMode(m CostCalculationMode, isDefaultPhase bool) CostCalculationMode {
	if !isDefaultPhase || !m.Valid() {
		return ModeNo
	}
	return m
}
