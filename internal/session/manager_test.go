package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KishoreBalajiP/eco-frontend/internal/backend"
	"github.com/KishoreBalajiP/eco-frontend/internal/domain"
	"github.com/KishoreBalajiP/eco-frontend/internal/fault"
)

type managerFixture struct {
	manager *Manager
	store   *Store
	redis   *miniredis.Miniredis
	backend *httptest.Server
}

// newFixture wires a Manager against miniredis and a scripted backend.
func newFixture(t *testing.T, handler http.HandlerFunc) *managerFixture {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	store := NewStore(client, time.Hour)

	if handler == nil {
		handler = func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}
	}
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	api := backend.New(server.URL, 5*time.Second)
	return &managerFixture{
		manager: NewManager(store, api),
		store:   store,
		redis:   mr,
		backend: server,
	}
}

func loginBackend(t *testing.T) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login", "/auth/register":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"token": "jwt-abc",
				"user":  map[string]any{"id": 7, "name": "Asha", "email": "asha@example.com", "role": "user"},
			})
		default:
			w.WriteHeader(http.StatusOK)
		}
	}
}

func TestRestoreUnknownSessionIsSignedOut(t *testing.T) {
	f := newFixture(t, nil)

	sess := f.manager.Restore(context.Background(), "sid-1")

	assert.Equal(t, StatusUnauthenticated, sess.Status)
	assert.Empty(t, sess.Credential)
	assert.False(t, sess.Authenticated())
}

func TestLoginPersistsBothSlotsAndRestoreRehydrates(t *testing.T) {
	f := newFixture(t, loginBackend(t))
	sess := &Session{ID: "sid-1", Status: StatusUnauthenticated}

	require.NoError(t, f.manager.Login(context.Background(), sess, "Asha@Example.com ", "secret1"))

	assert.True(t, sess.Authenticated())
	assert.Equal(t, "jwt-abc", sess.Credential)
	assert.Equal(t, "Asha", sess.Identity.Name)

	restored := f.manager.Restore(context.Background(), "sid-1")
	assert.True(t, restored.Authenticated())
	assert.Equal(t, "jwt-abc", restored.Credential)
	assert.Equal(t, int64(7), restored.Identity.ID)
}

func TestLoginValidatesInput(t *testing.T) {
	f := newFixture(t, nil)
	sess := &Session{ID: "sid-1"}

	err := f.manager.Login(context.Background(), sess, "", "")

	require.Error(t, err)
	assert.True(t, fault.IsValidation(err))
	assert.False(t, sess.Authenticated())
}

func TestLoginBackendRejectionBecomesAuthFault(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "invalid credentials"})
	})
	sess := &Session{ID: "sid-1"}

	err := f.manager.Login(context.Background(), sess, "asha@example.com", "wrong")

	require.Error(t, err)
	assert.True(t, fault.IsAuth(err))
	assert.Equal(t, "invalid credentials", fault.UserMessage(err, "fallback"))
	assert.False(t, sess.Authenticated())

	restored := f.manager.Restore(context.Background(), "sid-1")
	assert.False(t, restored.Authenticated(), "nothing persisted on failed login")
}

func TestRestoreDiscardsCorruptIdentitySnapshot(t *testing.T) {
	f := newFixture(t, nil)
	f.redis.Set("sess:sid-1:token", "jwt-abc")
	f.redis.Set("sess:sid-1:user", "{not json")

	sess := f.manager.Restore(context.Background(), "sid-1")

	assert.False(t, sess.Authenticated())
	assert.Empty(t, sess.Credential)

	// Both slots are gone, not just the bad one.
	assert.False(t, f.redis.Exists("sess:sid-1:token"))
	assert.False(t, f.redis.Exists("sess:sid-1:user"))
}

func TestRestoreDiscardsIdentityWithoutID(t *testing.T) {
	f := newFixture(t, nil)
	f.redis.Set("sess:sid-1:token", "jwt-abc")
	f.redis.Set("sess:sid-1:user", `{"name":"ghost"}`)

	sess := f.manager.Restore(context.Background(), "sid-1")

	assert.False(t, sess.Authenticated())
	assert.False(t, f.redis.Exists("sess:sid-1:token"))
}

func TestLogoutClearsEverythingAndIsIdempotent(t *testing.T) {
	f := newFixture(t, loginBackend(t))
	sess := &Session{ID: "sid-1"}
	require.NoError(t, f.manager.Login(context.Background(), sess, "asha@example.com", "secret1"))

	unauthCalls := 0
	f.manager.SetLifecycle(nil, func(ctx context.Context, s *Session) { unauthCalls++ })

	f.manager.Logout(context.Background(), sess)
	f.manager.Logout(context.Background(), sess)
	f.manager.Logout(context.Background(), sess)

	assert.False(t, sess.Authenticated())
	assert.Empty(t, sess.Credential)
	assert.False(t, f.redis.Exists("sess:sid-1:token"))
	assert.False(t, f.redis.Exists("sess:sid-1:user"))
	assert.Equal(t, 1, unauthCalls, "hook fires only on the authenticated->unauthenticated edge")
}

func TestHandleUnauthorizedClearsPersistedCredentials(t *testing.T) {
	f := newFixture(t, loginBackend(t))
	sess := &Session{ID: "sid-1"}
	require.NoError(t, f.manager.Login(context.Background(), sess, "asha@example.com", "secret1"))

	ctx := backend.WithSession(context.Background(), "sid-1", sess.Credential)
	f.manager.HandleUnauthorized(ctx)

	restored := f.manager.Restore(context.Background(), "sid-1")
	assert.False(t, restored.Authenticated())
}

func TestBeginRegistrationValidation(t *testing.T) {
	f := newFixture(t, nil)
	sess := &Session{ID: "sid-1"}
	ctx := context.Background()

	cases := []struct {
		name                             string
		uname, email, password, confirm string
		terms                            bool
	}{
		{"terms not accepted", "Asha", "a@b.com", "secret1", "secret1", false},
		{"missing name", "", "a@b.com", "secret1", "secret1", true},
		{"short password", "Asha", "a@b.com", "12345", "12345", true},
		{"password mismatch", "Asha", "a@b.com", "secret1", "secret2", true},
	}
	for _, tc := range cases {
		err := f.manager.BeginRegistration(ctx, sess, tc.uname, tc.email, tc.password, tc.confirm, tc.terms)
		require.Error(t, err, tc.name)
		assert.True(t, fault.IsValidation(err), tc.name)
	}
}

func TestRegistrationFlowEndsSignedIn(t *testing.T) {
	var otpEmail string
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/initiate-registration-otp", "/auth/verify-registration-otp":
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			otpEmail = body["email"]
			w.WriteHeader(http.StatusOK)
		case "/auth/register":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"token": "jwt-new",
				"user":  map[string]any{"id": 9, "name": "Asha", "email": "asha@example.com", "role": "user"},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	sess := &Session{ID: "sid-1"}
	ctx := context.Background()

	require.NoError(t, f.manager.BeginRegistration(ctx, sess, "Asha", "Asha@Example.com", "secret1", "secret1", true))
	assert.Equal(t, "asha@example.com", otpEmail, "email is normalized before the backend sees it")
	assert.False(t, sess.Authenticated(), "no account yet after the OTP request")

	require.NoError(t, f.manager.VerifyRegistrationOTP(ctx, sess, "123456"))
	require.NoError(t, f.manager.CompleteRegistration(ctx, sess))

	assert.True(t, sess.Authenticated())
	assert.Equal(t, "jwt-new", sess.Credential)
	assert.False(t, f.redis.Exists("sess:sid-1:registration"), "parked fields cleared after completion")
}

func TestVerifyRegistrationOTPRequiresSixDigits(t *testing.T) {
	f := newFixture(t, nil)
	sess := &Session{ID: "sid-1"}

	for _, otp := range []string{"", "12345", "1234567", "12a456"} {
		err := f.manager.VerifyRegistrationOTP(context.Background(), sess, otp)
		require.Error(t, err, "otp=%q", otp)
		assert.True(t, fault.IsValidation(err), "otp=%q", otp)
	}
}

func TestCompleteRegistrationWithoutParkedFieldsIsStateError(t *testing.T) {
	f := newFixture(t, nil)
	sess := &Session{ID: "sid-1"}

	err := f.manager.CompleteRegistration(context.Background(), sess)

	require.Error(t, err)
	assert.True(t, fault.IsState(err))

	err = f.manager.VerifyRegistrationOTP(context.Background(), sess, "123456")
	require.Error(t, err)
	assert.True(t, fault.IsState(err))
}

func TestPasswordResetFlow(t *testing.T) {
	var resetBody map[string]string
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/reset-password" {
			_ = json.NewDecoder(r.Body).Decode(&resetBody)
		}
		w.WriteHeader(http.StatusOK)
	})
	sess := &Session{ID: "sid-1"}
	ctx := context.Background()

	require.NoError(t, f.manager.RequestPasswordReset(ctx, sess, "asha@example.com"))
	require.NoError(t, f.manager.VerifyPasswordResetOTP(ctx, sess, "654321"))
	require.NoError(t, f.manager.ResetPassword(ctx, sess, "newsecret", "newsecret"))

	assert.Equal(t, "asha@example.com", resetBody["email"])
	assert.Equal(t, "newsecret", resetBody["newPassword"])
	assert.False(t, f.redis.Exists("sess:sid-1:reset_email"))
}

func TestResetPasswordWithoutFlowIsStateError(t *testing.T) {
	f := newFixture(t, nil)
	sess := &Session{ID: "sid-1"}

	err := f.manager.ResetPassword(context.Background(), sess, "newsecret", "newsecret")

	require.Error(t, err)
	assert.True(t, fault.IsState(err))
}

func TestLifecycleHookFiresOnLogin(t *testing.T) {
	f := newFixture(t, loginBackend(t))
	var gotIdentity domain.Identity
	f.manager.SetLifecycle(func(ctx context.Context, s *Session) { gotIdentity = s.Identity }, nil)

	sess := &Session{ID: "sid-1"}
	require.NoError(t, f.manager.Login(context.Background(), sess, "asha@example.com", "secret1"))

	assert.Equal(t, int64(7), gotIdentity.ID)
}
