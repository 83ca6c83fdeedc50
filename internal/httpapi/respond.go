package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/KishoreBalajiP/eco-frontend/internal/fault"
)

type errorResponse struct {
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Message: message})
}

// respondError maps the fault taxonomy onto HTTP statuses and always renders
// a user-displayable message, preferring the backend's own words.
func respondError(w http.ResponseWriter, err error, fallback string) {
	respondMessage(w, errorStatus(err), fault.UserMessage(err, fallback))
}

func errorStatus(err error) int {
	switch {
	case fault.IsAuth(err):
		return http.StatusUnauthorized
	case fault.IsValidation(err):
		return http.StatusBadRequest
	case fault.IsState(err):
		return http.StatusConflict
	}
	var re *fault.RemoteError
	if errors.As(err, &re) {
		if re.Status >= 400 && re.Status < 500 {
			return re.Status
		}
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func decodeBody(r *http.Request, out any) error {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		return fault.Validation("invalid request body")
	}
	return nil
}
