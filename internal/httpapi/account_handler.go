package httpapi

import (
	"net/http"

	"github.com/KishoreBalajiP/eco-frontend/internal/account"
	"github.com/KishoreBalajiP/eco-frontend/internal/domain"
)

type AccountHandler struct {
	svc *account.Service
}

func NewAccountHandler(svc *account.Service) *AccountHandler {
	return &AccountHandler{svc: svc}
}

func (h *AccountHandler) GetShipping(w http.ResponseWriter, r *http.Request) {
	profile, err := h.svc.ShippingProfile(r.Context())
	if err != nil {
		respondError(w, err, "could not load your shipping details")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"shipping": profile,
		"complete": profile.Complete(),
	})
}

func (h *AccountHandler) UpdateShipping(w http.ResponseWriter, r *http.Request) {
	var profile domain.ShippingProfile
	if err := decodeBody(r, &profile); err != nil {
		respondError(w, err, "")
		return
	}
	if err := h.svc.UpdateShippingProfile(r.Context(), profile); err != nil {
		respondError(w, err, "could not save your shipping details")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"shipping": profile})
}
