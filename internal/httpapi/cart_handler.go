package httpapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/KishoreBalajiP/eco-frontend/internal/backend"
	"github.com/KishoreBalajiP/eco-frontend/internal/cart"
	"github.com/KishoreBalajiP/eco-frontend/internal/domain"
	"github.com/KishoreBalajiP/eco-frontend/internal/fault"
)

// CartHandler serves the cart mirror. Every response carries the full cart as
// returned by the backend, so the client never has to do its own arithmetic.
type CartHandler struct {
	backend *backend.Client
}

func NewCartHandler(b *backend.Client) *CartHandler {
	return &CartHandler{backend: b}
}

type cartItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type cartResponse struct {
	Cart  []domain.CartLine `json:"cart"`
	Total float64           `json:"total"`
}

func (h *CartHandler) sync(r *http.Request) *cart.Synchronizer {
	return cart.NewSynchronizer(h.backend, sessionFrom(r.Context()))
}

func (h *CartHandler) respondCart(w http.ResponseWriter, status int, s *cart.Synchronizer) {
	lines := s.Lines()
	if lines == nil {
		lines = []domain.CartLine{}
	}
	respondJSON(w, status, cartResponse{Cart: lines, Total: s.Total()})
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	s := h.sync(r)
	if err := s.Fetch(r.Context()); err != nil {
		respondError(w, err, "could not load your cart")
		return
	}
	h.respondCart(w, http.StatusOK, s)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err, "")
		return
	}
	if req.ProductID <= 0 {
		respondError(w, fault.Validation("product_id is required"), "")
		return
	}
	if req.Quantity < 1 || req.Quantity > 99 {
		respondError(w, fault.Validation("quantity must be between 1 and 99"), "")
		return
	}
	s := h.sync(r)
	if err := s.Add(r.Context(), req.ProductID, req.Quantity); err != nil {
		respondError(w, err, "could not update your cart")
		return
	}
	h.respondCart(w, http.StatusOK, s)
}

// UpdateItem sets the absolute quantity for one line; zero removes it.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "productID")
	if err != nil {
		respondError(w, err, "")
		return
	}
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err, "")
		return
	}
	if req.Quantity > 99 {
		respondError(w, fault.Validation("quantity must be between 0 and 99"), "")
		return
	}
	s := h.sync(r)
	if err := s.SetQuantity(r.Context(), productID, req.Quantity); err != nil {
		respondError(w, err, "could not update your cart")
		return
	}
	h.respondCart(w, http.StatusOK, s)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "productID")
	if err != nil {
		respondError(w, err, "")
		return
	}
	s := h.sync(r)
	if err := s.Remove(r.Context(), productID); err != nil {
		respondError(w, err, "could not update your cart")
		return
	}
	h.respondCart(w, http.StatusOK, s)
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fault.Validation("invalid %s", name)
	}
	return id, nil
}
