// Package payment resumes the order flow after the browser returns from an
// external payment redirect. One reconciliation check per invocation, never a
// polling loop; retry is always an explicit user action.
package payment

import (
	"context"
	"fmt"
	"strconv"

	"github.com/KishoreBalajiP/eco-frontend/internal/domain"
)

type Backend interface {
	CheckPaymentStatus(ctx context.Context, orderID int64) (string, error)
}

type Cart interface {
	Clear()
}

// Publisher receives reconciliation outcomes. May be nil.
type Publisher interface {
	PaymentReconciled(ctx context.Context, orderID int64, outcome string)
}

type Outcome string

const (
	OutcomePaid       Outcome = "PAID"
	OutcomeFailed     Outcome = "FAILED"
	OutcomePending    Outcome = "PENDING"
	OutcomeMissingRef Outcome = "MISSING_ORDER_REFERENCE"
	OutcomeUnverified Outcome = "UNVERIFIED"
)

// Decision always carries a navigation target; the callback view never
// strands the user on a spinner.
type Decision struct {
	Outcome  Outcome `json:"outcome"`
	OrderID  int64   `json:"order_id,omitempty"`
	Message  string  `json:"message"`
	Redirect string  `json:"redirect"`
}

type Reconciler struct {
	backend Backend
	cart    Cart
	events  Publisher
}

func NewReconciler(b Backend, c Cart, events Publisher) *Reconciler {
	return &Reconciler{backend: b, cart: c, events: events}
}

// Reconcile maps the payment provider's outcome onto local state. Without an
// order reference it fails immediately and makes no backend call; guessing an
// identifier is worse than sending the user back to checkout.
func (r *Reconciler) Reconcile(ctx context.Context, rawOrderID string) Decision {
	orderID, err := strconv.ParseInt(rawOrderID, 10, 64)
	if rawOrderID == "" || err != nil || orderID <= 0 {
		return Decision{
			Outcome:  OutcomeMissingRef,
			Message:  "missing order reference in payment callback",
			Redirect: "/checkout",
		}
	}

	status, err := r.backend.CheckPaymentStatus(ctx, orderID)
	if err != nil {
		return Decision{
			Outcome:  OutcomeUnverified,
			OrderID:  orderID,
			Message:  "could not verify payment, please try again",
			Redirect: "/checkout",
		}
	}

	var decision Decision
	switch status {
	case string(domain.PaymentStatusPaid):
		// Only now is the order settled; the held-back cart mirror is spent.
		r.cart.Clear()
		decision = Decision{
			Outcome:  OutcomePaid,
			OrderID:  orderID,
			Message:  "payment successful",
			Redirect: fmt.Sprintf("/order-confirmation/%d", orderID),
		}
	case "failed":
		decision = Decision{
			Outcome:  OutcomeFailed,
			OrderID:  orderID,
			Message:  "payment failed, please try again",
			Redirect: "/checkout",
		}
	default:
		decision = Decision{
			Outcome:  OutcomePending,
			OrderID:  orderID,
			Message:  fmt.Sprintf("payment status: %s", status),
			Redirect: "/checkout",
		}
	}

	if r.events != nil {
		r.events.PaymentReconciled(ctx, orderID, string(decision.Outcome))
	}
	return decision
}
