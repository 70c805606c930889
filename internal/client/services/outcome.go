package services

// Outcome is the result of an operation that may be a placeholder for a
// server capability that does not exist yet.
type Outcome int

const (
	OutcomeFailed Outcome = iota
	OutcomeOK
	OutcomeNotImplemented
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeNotImplemented:
		return "not implemented"
	default:
		return "failed"
	}
}
