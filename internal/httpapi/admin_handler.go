package httpapi

import (
	"net/http"

	"github.com/KishoreBalajiP/eco-frontend/internal/backend"
	"github.com/KishoreBalajiP/eco-frontend/internal/domain"
	"github.com/KishoreBalajiP/eco-frontend/internal/fault"
)

// AdminHandler wraps the admin console passthroughs. Routes are mounted
// behind RequireAdmin; the backend re-checks the role on every call.
type AdminHandler struct {
	backend *backend.Client
}

func NewAdminHandler(b *backend.Client) *AdminHandler {
	return &AdminHandler{backend: b}
}

func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var product domain.Product
	if err := decodeBody(r, &product); err != nil {
		respondError(w, err, "")
		return
	}
	created, err := h.backend.AdminCreateProduct(r.Context(), product)
	if err != nil {
		respondError(w, err, "could not create the product")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "productID")
	if err != nil {
		respondError(w, err, "")
		return
	}
	var product domain.Product
	if err := decodeBody(r, &product); err != nil {
		respondError(w, err, "")
		return
	}
	product.ID = id
	if err := h.backend.AdminUpdateProduct(r.Context(), product); err != nil {
		respondError(w, err, "could not update the product")
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "productID")
	if err != nil {
		respondError(w, err, "")
		return
	}
	if err := h.backend.AdminDeleteProduct(r.Context(), id); err != nil {
		respondError(w, err, "could not delete the product")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	list, err := h.backend.AdminFetchOrders(r.Context())
	if err != nil {
		respondError(w, err, "could not load orders")
		return
	}
	if list == nil {
		list = []domain.Order{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"orders": list})
}

func (h *AdminHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "orderID")
	if err != nil {
		respondError(w, err, "")
		return
	}
	order, err := h.backend.AdminFetchOrder(r.Context(), id)
	if err != nil {
		respondError(w, err, "could not load the order")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"order": order})
}

// UpdateOrderStatus changes an order's fulfilment status. Cancelled orders are
// frozen: no status edit may revive them.
func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "orderID")
	if err != nil {
		respondError(w, err, "")
		return
	}
	var req struct {
		Status domain.OrderStatus `json:"status"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err, "")
		return
	}
	if !req.Status.Known() {
		respondError(w, fault.Validation("unknown order status %q", req.Status), "")
		return
	}

	current, err := h.backend.AdminFetchOrder(r.Context(), id)
	if err != nil {
		respondError(w, err, "could not load the order")
		return
	}
	if current.Status == domain.OrderStatusCancelled {
		respondError(w, fault.State("cancelled orders cannot be edited"), "")
		return
	}

	if err := h.backend.AdminUpdateOrderStatus(r.Context(), id, req.Status); err != nil {
		respondError(w, err, "could not update the order status")
		return
	}
	current.Status = req.Status
	respondJSON(w, http.StatusOK, map[string]any{"order": current})
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.backend.AdminFetchUsers(r.Context())
	if err != nil {
		respondError(w, err, "could not load users")
		return
	}
	if users == nil {
		users = []domain.Identity{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"users": users})
}

func (h *AdminHandler) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "userID")
	if err != nil {
		respondError(w, err, "")
		return
	}
	var req struct {
		Role string `json:"role"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err, "")
		return
	}
	if req.Role != domain.RoleUser && req.Role != domain.RoleAdmin {
		respondError(w, fault.Validation("unknown role %q", req.Role), "")
		return
	}
	if err := h.backend.AdminUpdateUserRole(r.Context(), id, req.Role); err != nil {
		respondError(w, err, "could not update the user role")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "role updated"})
}
