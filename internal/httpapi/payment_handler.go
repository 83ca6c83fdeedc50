package httpapi

import (
	"net/http"

	"github.com/KishoreBalajiP/eco-frontend/internal/backend"
	"github.com/KishoreBalajiP/eco-frontend/internal/cart"
	"github.com/KishoreBalajiP/eco-frontend/internal/events"
	"github.com/KishoreBalajiP/eco-frontend/internal/payment"
)

// PaymentHandler resolves the return leg of an external payment redirect.
type PaymentHandler struct {
	backend *backend.Client
	events  *events.Publisher
}

func NewPaymentHandler(b *backend.Client, ev *events.Publisher) *PaymentHandler {
	return &PaymentHandler{backend: b, events: ev}
}

// Callback performs exactly one status check for the referenced order and
// answers with an outcome plus the navigation target. The decision itself is
// always 200; a failed payment is a resolved callback, not a transport error.
func (h *PaymentHandler) Callback(w http.ResponseWriter, r *http.Request) {
	sync := cart.NewSynchronizer(h.backend, sessionFrom(r.Context()))
	rec := payment.NewReconciler(h.backend, sync, h.events)
	decision := rec.Reconcile(r.Context(), r.URL.Query().Get("orderId"))
	respondJSON(w, http.StatusOK, decision)
}
