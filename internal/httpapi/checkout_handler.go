package httpapi

import (
	"net/http"

	"github.com/KishoreBalajiP/eco-frontend/internal/backend"
	"github.com/KishoreBalajiP/eco-frontend/internal/cart"
	"github.com/KishoreBalajiP/eco-frontend/internal/checkout"
	"github.com/KishoreBalajiP/eco-frontend/internal/domain"
	"github.com/KishoreBalajiP/eco-frontend/internal/events"
	"github.com/KishoreBalajiP/eco-frontend/internal/orders"
)

// CheckoutHandler submits the current cart as an order. The orchestrator is
// built per request; duplicate-submission protection within a request still
// holds, while the backend guards cross-request replays by consuming the cart.
type CheckoutHandler struct {
	backend *backend.Client
	events  *events.Publisher
}

func NewCheckoutHandler(b *backend.Client, ev *events.Publisher) *CheckoutHandler {
	return &CheckoutHandler{backend: b, events: ev}
}

type checkoutRequest struct {
	PaymentMethod domain.PaymentMethod `json:"payment_method"`
}

type checkoutResponse struct {
	Status       checkout.Status      `json:"status"`
	OrderID      int64                `json:"order_id,omitempty"`
	Confirmation *orders.Confirmation `json:"confirmation,omitempty"`
	Redirect     string               `json:"redirect,omitempty"`
	PaymentURL   string               `json:"payment_url,omitempty"`
	Warning      string               `json:"warning,omitempty"`
}

func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err, "")
		return
	}

	sync := cart.NewSynchronizer(h.backend, sessionFrom(r.Context()))
	if err := sync.Fetch(r.Context()); err != nil {
		respondError(w, err, "could not load your cart")
		return
	}

	orch := checkout.NewOrchestrator(h.backend, sync, h.events)
	result, err := orch.Submit(r.Context(), req.PaymentMethod)
	if err != nil {
		respondError(w, err, "checkout failed, please try again")
		return
	}

	resp := checkoutResponse{
		Status:       result.Status,
		Confirmation: result.Confirmation,
		Redirect:     result.Redirect,
		PaymentURL:   result.PaymentURL,
		Warning:      result.Warning,
	}
	if result.Order != nil {
		resp.OrderID = result.Order.ID
	}
	status := http.StatusCreated
	if result.Order == nil {
		// Precondition redirect, nothing was created.
		status = http.StatusOK
	}
	respondJSON(w, status, resp)
}
