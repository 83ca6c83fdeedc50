package domain

// PaymentMethod is an open enumeration; cod and upi are the only values the
// backend currently contracts for.
type PaymentMethod string

const (
	PaymentMethodCOD PaymentMethod = "cod"
	PaymentMethodUPI PaymentMethod = "upi"
)

// Known reports whether this gateway knows how to drive the method's flow.
func (m PaymentMethod) Known() bool {
	return m == PaymentMethodCOD || m == PaymentMethodUPI
}

func (m PaymentMethod) String() string {
	return string(m)
}

// PendingRegistration holds the fields captured between the "request OTP" and
// "verify OTP" registration steps. It is only ever sent to the two
// registration endpoints and is discarded once the flow ends.
type PendingRegistration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
