package httpapi

import (
	"net/http"

	"github.com/KishoreBalajiP/eco-frontend/internal/session"
)

// AuthHandler exposes sign-in, the two-phase OTP registration and password
// recovery.
type AuthHandler struct {
	sessions *session.Manager
}

func NewAuthHandler(sessions *session.Manager) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	AcceptTerms     bool   `json:"accept_terms"`
}

type otpRequest struct {
	OTP string `json:"otp"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err, "")
		return
	}
	sess := sessionFrom(r.Context())
	if err := h.sessions.Login(r.Context(), sess, req.Email, req.Password); err != nil {
		respondError(w, err, "unable to sign in, please try again")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"user": sess.Identity})
}

// Register starts the OTP flow; no account exists until the OTP is verified.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err, "")
		return
	}
	sess := sessionFrom(r.Context())
	err := h.sessions.BeginRegistration(r.Context(), sess, req.Name, req.Email, req.Password, req.ConfirmPassword, req.AcceptTerms)
	if err != nil {
		respondError(w, err, "unable to create account, please try again")
		return
	}
	respondJSON(w, http.StatusAccepted, map[string]string{
		"message": "OTP sent to your email, please verify to complete registration",
	})
}

// VerifyRegistration checks the OTP and, on success, completes the
// registration and signs the session in.
func (h *AuthHandler) VerifyRegistration(w http.ResponseWriter, r *http.Request) {
	var req otpRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err, "")
		return
	}
	sess := sessionFrom(r.Context())
	if err := h.sessions.VerifyRegistrationOTP(r.Context(), sess, req.OTP); err != nil {
		respondError(w, err, "could not verify the code, please try again")
		return
	}
	if err := h.sessions.CompleteRegistration(r.Context(), sess); err != nil {
		respondError(w, err, "unable to complete registration, please try again")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"user": sess.Identity})
}

// AbandonRegistration discards the parked registration fields when the user
// backs out of the OTP step.
func (h *AuthHandler) AbandonRegistration(w http.ResponseWriter, r *http.Request) {
	h.sessions.AbandonRegistration(r.Context(), sessionFrom(r.Context()))
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Logout(r.Context(), sessionFrom(r.Context()))
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	if !sess.Authenticated() {
		respondMessage(w, http.StatusUnauthorized, "authentication required")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"user": sess.Identity})
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err, "")
		return
	}
	sess := sessionFrom(r.Context())
	if err := h.sessions.RequestPasswordReset(r.Context(), sess, req.Email); err != nil {
		respondError(w, err, "could not send the reset code, please try again")
		return
	}
	respondJSON(w, http.StatusAccepted, map[string]string{
		"message": "OTP sent to your email",
	})
}

func (h *AuthHandler) VerifyPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req otpRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err, "")
		return
	}
	sess := sessionFrom(r.Context())
	if err := h.sessions.VerifyPasswordResetOTP(r.Context(), sess, req.OTP); err != nil {
		respondError(w, err, "could not verify the code, please try again")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "code verified"})
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err, "")
		return
	}
	sess := sessionFrom(r.Context())
	if err := h.sessions.ResetPassword(r.Context(), sess, req.NewPassword, req.ConfirmPassword); err != nil {
		respondError(w, err, "could not reset the password, please try again")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "password updated, please sign in"})
}
