package httpapi

import (
	"net/http"

	"github.com/KishoreBalajiP/eco-frontend/internal/domain"
	"github.com/KishoreBalajiP/eco-frontend/internal/orders"
)

type OrdersHandler struct {
	svc *orders.Service
}

func NewOrdersHandler(svc *orders.Service) *OrdersHandler {
	return &OrdersHandler{svc: svc}
}

func (h *OrdersHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.History(r.Context())
	if err != nil {
		respondError(w, err, "could not load your orders")
		return
	}
	if list == nil {
		list = []domain.Order{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"orders": list})
}

func (h *OrdersHandler) Get(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathID(r, "orderID")
	if err != nil {
		respondError(w, err, "")
		return
	}
	order, err := h.svc.Get(r.Context(), orderID)
	if err != nil {
		respondError(w, err, "could not load the order")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"order": order})
}

// Confirmation renders the post-checkout summary from the stored order. The
// checkout response already carries the same projection as hand-off state;
// this endpoint covers reloads and deep links.
func (h *OrdersHandler) Confirmation(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathID(r, "orderID")
	if err != nil {
		respondError(w, err, "")
		return
	}
	conf, err := h.svc.Confirmation(r.Context(), orderID, nil)
	if err != nil {
		respondError(w, err, "could not load the order confirmation")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"confirmation": conf})
}

func (h *OrdersHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathID(r, "orderID")
	if err != nil {
		respondError(w, err, "")
		return
	}
	order, err := h.svc.CancelByID(r.Context(), orderID)
	if err != nil {
		respondError(w, err, "could not cancel the order")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"order": order})
}
