package httpapi

import (
	"net/http"
	"strings"

	"github.com/KishoreBalajiP/eco-frontend/internal/backend"
	"github.com/KishoreBalajiP/eco-frontend/internal/fault"
)

// ChatHandler relays support-chat messages to the backend bot.
type ChatHandler struct {
	backend *backend.Client
}

func NewChatHandler(b *backend.Client) *ChatHandler {
	return &ChatHandler{backend: b}
}

func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err, "")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		respondError(w, fault.Validation("message is required"), "")
		return
	}
	reply, err := h.backend.SendChatMessage(r.Context(), req.Message)
	if err != nil {
		respondError(w, err, "the assistant is unavailable right now")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"reply": reply})
}
