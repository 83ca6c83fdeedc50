// Package checkout turns the current cart into an order. It validates
// preconditions, issues exactly one create-order call per submission and
// branches on the payment method: cash-on-delivery confirms immediately, UPI
// hands the browser to the external payment flow.
package checkout

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/KishoreBalajiP/eco-frontend/internal/backend"
	"github.com/KishoreBalajiP/eco-frontend/internal/domain"
	"github.com/KishoreBalajiP/eco-frontend/internal/fault"
	"github.com/KishoreBalajiP/eco-frontend/internal/orders"
)

// Backend is the slice of the gateway client checkout needs. Create-order
// always completes before payment initiation; the payment call needs the
// order id.
type Backend interface {
	FetchShippingProfile(ctx context.Context) (*domain.ShippingProfile, error)
	CreateOrder(ctx context.Context, shipping domain.ShippingProfile, method domain.PaymentMethod) (*domain.Order, error)
	InitiatePayment(ctx context.Context, orderID int64, amount float64) (*backend.PaymentInitiation, error)
}

// Cart is the synchronizer surface checkout reads and clears.
type Cart interface {
	Lines() []domain.CartLine
	Total() float64
	Empty() bool
	Clear()
}

// Publisher receives order lifecycle events. May be nil.
type Publisher interface {
	OrderPlaced(ctx context.Context, orderID int64, method domain.PaymentMethod, total float64)
}

// Result is what the UI needs after a submission: where to send the user and
// the hand-off state that saves the confirmation view a re-fetch.
type Result struct {
	Status       Status
	Order        *domain.Order
	Confirmation *orders.Confirmation
	// Redirect is an internal navigation target (confirmation or profile).
	Redirect string
	// PaymentURL is the external payment destination for the UPI branch.
	PaymentURL string
	// Warning carries a non-fatal message, e.g. the incomplete-profile notice.
	Warning string
}

type Orchestrator struct {
	backend Backend
	cart    Cart
	events  Publisher

	mu     sync.Mutex
	status Status
}

func NewOrchestrator(b Backend, c Cart, events Publisher) *Orchestrator {
	return &Orchestrator{backend: b, cart: c, events: events, status: StatusIdle}
}

func (o *Orchestrator) Status() Status {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.status
}

// begin moves Idle → Submitting, rejecting a second submission while one is
// already in flight.
func (o *Orchestrator) begin() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.status == StatusSubmitting {
		return fault.Validation("an order submission is already in progress")
	}
	if !CanTransitionTo(o.status, StatusSubmitting) {
		return fault.Validation("checkout already completed")
	}
	o.status = StatusSubmitting
	return nil
}

func (o *Orchestrator) transition(to Status) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !CanTransitionTo(o.status, to) {
		log.Printf("checkout: ignoring illegal transition %s -> %s", o.status, to)
		return
	}
	o.status = to
}

// fail records the failure and returns to Idle so the action stays
// retryable with the same cart and shipping.
func (o *Orchestrator) fail() {
	o.transition(StatusFailed)
	o.transition(StatusIdle)
}

// Submit runs the whole checkout for the selected payment method. Exactly one
// create-order call is issued per successful begin; preconditions that fail
// never reach the network.
func (o *Orchestrator) Submit(ctx context.Context, method domain.PaymentMethod) (*Result, error) {
	if !method.Known() {
		return nil, fault.Validation("unsupported payment method %q", method)
	}
	if o.cart.Empty() {
		return nil, fault.Validation("your cart is empty")
	}

	shipping, err := o.backend.FetchShippingProfile(ctx)
	if err != nil {
		return nil, err
	}
	if !shipping.Complete() {
		// Never proceed with partial shipping data; send the user to the
		// profile editor instead.
		return &Result{
			Status:   o.Status(),
			Redirect: "/profile",
			Warning:  "please add your shipping address first",
		}, nil
	}

	if err := o.begin(); err != nil {
		return nil, err
	}

	// Snapshot before the order consumes the server cart.
	lines := o.cart.Lines()
	total := o.cart.Total()

	order, err := o.backend.CreateOrder(ctx, *shipping, method)
	if err != nil {
		o.fail()
		return nil, fault.Remote("checkout", 0, fault.UserMessage(err, "checkout failed, please try again"), err)
	}

	switch method {
	case domain.PaymentMethodCOD:
		// Payment settles on delivery: the order is final, the cart is spent.
		o.cart.Clear()
		o.transition(StatusSucceeded)
		if o.events != nil {
			o.events.OrderPlaced(ctx, order.ID, method, total)
		}
		return &Result{
			Status:       StatusSucceeded,
			Order:        order,
			Confirmation: orders.ConfirmationFromCart(order.ID, method, lines, *shipping, total),
			Redirect:     fmt.Sprintf("/order-confirmation/%d", order.ID),
		}, nil

	default: // domain.PaymentMethodUPI
		// Payment is not confirmed yet, so the cart mirror stays intact until
		// the callback reconciler sees a paid status.
		initiation, err := o.backend.InitiatePayment(ctx, order.ID, total)
		if err != nil {
			o.fail()
			return nil, fault.Remote("start payment", 0, fault.UserMessage(err, "could not start the payment, please try again"), err)
		}
		o.transition(StatusAwaitingPayment)
		if o.events != nil {
			o.events.OrderPlaced(ctx, order.ID, method, total)
		}
		return &Result{
			Status:     StatusAwaitingPayment,
			Order:      order,
			PaymentURL: initiation.RedirectURL,
		}, nil
	}
}
