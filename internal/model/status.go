package model

// Status is a major or volatile battler condition.
type Status int

const (
	StatusNone Status = iota
	StatusPoison
	StatusToxic
	StatusSleep
	StatusFreeze
	StatusParalysis
	StatusBurn
	StatusConfusion
	StatusFlinch
	// StatusCure clears the major status.
	StatusCure
)

func (s Status) String() string {
	switch s {
	case StatusNone:
		return "none"
	case StatusPoison:
		return "poison"
	case StatusToxic:
		return "toxic"
	case StatusSleep:
		return "sleep"
	case StatusFreeze:
		return "freeze"
	case StatusParalysis:
		return "paralysis"
	case StatusBurn:
		return "burn"
	case StatusConfusion:
		return "confusion"
	case StatusFlinch:
		return "flinch"
	case StatusCure:
		return "cure"
	default:
		return "unknown"
	}
}

// Major reports whether s occupies the single major status slot.
func (s Status) Major() bool {
	switch s {
	case StatusPoison, StatusToxic, StatusSleep, StatusFreeze, StatusParalysis, StatusBurn:
		return true
	default:
		return false
	}
}

// Poisoned reports whether s is either poison flavor.
func (s Status) Poisoned() bool {
	return s == StatusPoison || s == StatusToxic
}
