package checkout

type Status string

const (
	StatusIdle            Status = "IDLE"
	StatusSubmitting      Status = "SUBMITTING"
	StatusSucceeded       Status = "SUCCEEDED"
	StatusAwaitingPayment Status = "AWAITING_PAYMENT"
	StatusFailed          Status = "FAILED"
)

// transitions is the legal edge set of the checkout state machine. Failed
// returns to Idle so the user can retry with the same cart and shipping.
var transitions = map[Status][]Status{
	StatusIdle:            {StatusSubmitting},
	StatusSubmitting:      {StatusSucceeded, StatusAwaitingPayment, StatusFailed},
	StatusFailed:          {StatusIdle},
	StatusAwaitingPayment: {},
	StatusSucceeded:       {},
}

func CanTransitionTo(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the orchestrator has handed control elsewhere:
// to the confirmation view or to the external payment flow.
func (s Status) IsTerminal() bool {
	return s == StatusSucceeded || s == StatusAwaitingPayment
}

func (s Status) String() string {
	return string(s)
}
