package session

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"

	"github.com/KishoreBalajiP/eco-frontend/internal/backend"
	"github.com/KishoreBalajiP/eco-frontend/internal/domain"
	"github.com/KishoreBalajiP/eco-frontend/internal/fault"
)

const minPasswordLen = 6

// Manager drives the session lifecycle: restore on each request, login,
// logout, the two-phase OTP registration and password recovery. All state
// goes through the Store; dependents receive the Session explicitly instead
// of reaching into globals.
type Manager struct {
	store   *Store
	backend *backend.Client

	onAuthenticated   func(ctx context.Context, s *Session)
	onUnauthenticated func(ctx context.Context, s *Session)
}

func NewManager(store *Store, client *backend.Client) *Manager {
	return &Manager{store: store, backend: client}
}

// SetLifecycle registers the named state-transition notifications: the cart
// is fetched when a session becomes authenticated and cleared when it becomes
// unauthenticated. Either hook may be nil.
func (m *Manager) SetLifecycle(onAuth, onUnauth func(ctx context.Context, s *Session)) {
	m.onAuthenticated = onAuth
	m.onUnauthenticated = onUnauth
}

// Restore rehydrates the session from the store. It never fails: a missing
// slot means signed out, and a corrupt identity snapshot is discarded along
// with the credential rather than crashing the request.
func (m *Manager) Restore(ctx context.Context, sid string) *Session {
	sess := &Session{ID: sid, Status: StatusUnauthenticated}

	token, rawIdentity, err := m.store.LoadCredentials(ctx, sid)
	if errors.Is(err, ErrNotFound) {
		return sess
	}
	if err != nil {
		log.Printf("session %s: restore failed: %v", sid, err)
		return sess
	}

	var identity domain.Identity
	if err := json.Unmarshal(rawIdentity, &identity); err != nil || identity.ID == 0 {
		log.Printf("session %s: discarding corrupt identity snapshot", sid)
		if clearErr := m.store.ClearCredentials(ctx, sid); clearErr != nil {
			log.Printf("session %s: clear after corrupt identity failed: %v", sid, clearErr)
		}
		return sess
	}

	sess.Status = StatusAuthenticated
	sess.Credential = token
	sess.Identity = identity
	m.store.Touch(ctx, sid)
	return sess
}

// Login exchanges credentials for a session. Failure leaves both the store
// and the in-memory session untouched.
func (m *Manager) Login(ctx context.Context, sess *Session, email, password string) error {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return fault.Validation("email and password are required")
	}

	result, err := m.backend.Authenticate(ctx, email, password)
	if err != nil {
		return fault.Auth("%s", fault.UserMessage(err, "unable to sign in, please try again"))
	}

	return m.establish(ctx, sess, result)
}

// Logout clears both persisted slots, transient flow state and the in-memory
// session. Safe to call repeatedly and while already signed out. It does not
// navigate; callers decide where to send the user.
func (m *Manager) Logout(ctx context.Context, sess *Session) {
	if err := m.store.ClearAll(ctx, sess.ID); err != nil {
		log.Printf("session %s: logout cleanup failed: %v", sess.ID, err)
	}
	wasAuthenticated := sess.Authenticated()
	sess.reset()
	if wasAuthenticated && m.onUnauthenticated != nil {
		m.onUnauthenticated(ctx, sess)
	}
}

// HandleUnauthorized is wired as the backend client's 401 hook. It mirrors
// Logout's persistence effect for whichever session made the rejected call.
func (m *Manager) HandleUnauthorized(ctx context.Context) {
	sid := backend.SessionIDFrom(ctx)
	if sid == "" {
		return
	}
	if err := m.store.ClearCredentials(ctx, sid); err != nil {
		log.Printf("session %s: clear after 401 failed: %v", sid, err)
	}
}

// BeginRegistration validates the sign-up form, asks the backend to mail an
// OTP and parks the form fields until the OTP is verified. No account exists
// yet after this step.
func (m *Manager) BeginRegistration(ctx context.Context, sess *Session, name, email, password, confirm string, acceptedTerms bool) error {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	switch {
	case !acceptedTerms:
		return fault.Validation("you must agree to the terms and conditions and privacy policy")
	case name == "" || email == "":
		return fault.Validation("name and email are required")
	case len(password) < minPasswordLen:
		return fault.Validation("password must be at least %d characters", minPasswordLen)
	case password != confirm:
		return fault.Validation("passwords do not match")
	}

	if err := m.backend.InitiateRegistrationOTP(ctx, email); err != nil {
		return err
	}

	reg := domain.PendingRegistration{Name: name, Email: email, Password: password}
	if err := m.store.SaveRegistration(ctx, sess.ID, reg); err != nil {
		return err
	}
	return nil
}

// VerifyRegistrationOTP confirms the emailed code against the pending
// registration's email.
func (m *Manager) VerifyRegistrationOTP(ctx context.Context, sess *Session, otp string) error {
	if !validOTP(otp) {
		return fault.Validation("enter the 6-digit code sent to your email")
	}
	reg, err := m.store.LoadRegistration(ctx, sess.ID)
	if errors.Is(err, ErrNotFound) {
		return fault.State("registration data missing, please start again")
	}
	if err != nil {
		return err
	}
	return m.backend.VerifyRegistrationOTP(ctx, reg.Email, otp)
}

// CompleteRegistration creates the account from the parked fields and signs
// the session in exactly as Login does. Missing parked fields mean the flow
// was never started (or already finished) and the user must restart.
func (m *Manager) CompleteRegistration(ctx context.Context, sess *Session) error {
	reg, err := m.store.LoadRegistration(ctx, sess.ID)
	if errors.Is(err, ErrNotFound) {
		return fault.State("registration data missing, please start again")
	}
	if err != nil {
		return err
	}

	result, err := m.backend.CompleteRegistration(ctx, reg.Name, reg.Email, reg.Password)
	if err != nil {
		return err
	}
	if err := m.establish(ctx, sess, result); err != nil {
		return err
	}
	if err := m.store.ClearRegistration(ctx, sess.ID); err != nil {
		log.Printf("session %s: clear registration failed: %v", sess.ID, err)
	}
	return nil
}

// AbandonRegistration discards the parked fields, used when the user backs
// out of the OTP step.
func (m *Manager) AbandonRegistration(ctx context.Context, sess *Session) {
	if err := m.store.ClearRegistration(ctx, sess.ID); err != nil {
		log.Printf("session %s: abandon registration failed: %v", sess.ID, err)
	}
}

// RequestPasswordReset starts the out-of-band recovery flow and remembers the
// email for the later steps.
func (m *Manager) RequestPasswordReset(ctx context.Context, sess *Session, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return fault.Validation("email is required")
	}
	if err := m.backend.RequestPasswordOTP(ctx, email); err != nil {
		return err
	}
	return m.store.SaveResetEmail(ctx, sess.ID, email)
}

func (m *Manager) VerifyPasswordResetOTP(ctx context.Context, sess *Session, otp string) error {
	if !validOTP(otp) {
		return fault.Validation("enter the 6-digit code sent to your email")
	}
	email, err := m.store.LoadResetEmail(ctx, sess.ID)
	if errors.Is(err, ErrNotFound) {
		return fault.State("password reset not in progress, request a new code")
	}
	if err != nil {
		return err
	}
	return m.backend.VerifyPasswordOTP(ctx, email, otp)
}

func (m *Manager) ResetPassword(ctx context.Context, sess *Session, newPassword, confirm string) error {
	if len(newPassword) < minPasswordLen {
		return fault.Validation("password must be at least %d characters", minPasswordLen)
	}
	if newPassword != confirm {
		return fault.Validation("passwords do not match")
	}
	email, err := m.store.LoadResetEmail(ctx, sess.ID)
	if errors.Is(err, ErrNotFound) {
		return fault.State("password reset not in progress, request a new code")
	}
	if err != nil {
		return err
	}
	if err := m.backend.ResetPassword(ctx, email, newPassword); err != nil {
		return err
	}
	if err := m.store.ClearResetEmail(ctx, sess.ID); err != nil {
		log.Printf("session %s: clear reset email failed: %v", sess.ID, err)
	}
	return nil
}

// establish persists the credential pair and flips the session to
// authenticated. Persistence failure leaves the session signed out.
func (m *Manager) establish(ctx context.Context, sess *Session, result *backend.AuthResult) error {
	if err := m.store.SaveCredentials(ctx, sess.ID, result.Token, result.User); err != nil {
		return err
	}
	sess.Status = StatusAuthenticated
	sess.Credential = result.Token
	sess.Identity = result.User
	if m.onAuthenticated != nil {
		m.onAuthenticated(ctx, sess)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validOTP(otp string) bool {
	if len(otp) != 6 {
		return false
	}
	for _, r := range otp {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
