package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/KishoreBalajiP/eco-frontend/internal/backend"
	"github.com/KishoreBalajiP/eco-frontend/internal/session"
)

const sessionCookie = "jaya_session"

type sessionCtxKey struct{}

// SessionMiddleware restores the caller's session from the cookie (minting a
// new session id when absent) and threads both the session and its credential
// into the request context for downstream backend calls.
func SessionMiddleware(mgr *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sid := ""
			if cookie, err := r.Cookie(sessionCookie); err == nil {
				sid = cookie.Value
			}
			if sid == "" {
				sid = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     sessionCookie,
					Value:    sid,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
					Expires:  time.Now().Add(30 * 24 * time.Hour),
				})
			}

			sess := mgr.Restore(r.Context(), sid)
			ctx := context.WithValue(r.Context(), sessionCtxKey{}, sess)
			ctx = backend.WithSession(ctx, sess.ID, sess.Credential)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// sessionFrom returns the restored session; the middleware guarantees one.
func sessionFrom(ctx context.Context) *session.Session {
	if sess, ok := ctx.Value(sessionCtxKey{}).(*session.Session); ok {
		return sess
	}
	return &session.Session{Status: session.StatusUnauthenticated}
}

// RequireAuth rejects requests from signed-out sessions.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !sessionFrom(r.Context()).Authenticated() {
			respondMessage(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin enforces the single admin role flag on the admin console
// routes. Authorization beyond the flag is the backend's responsibility.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r.Context())
		if !sess.Authenticated() {
			respondMessage(w, http.StatusUnauthorized, "authentication required")
			return
		}
		if !sess.IsAdmin() {
			respondMessage(w, http.StatusForbidden, "forbidden")
			return
		}
		next.ServeHTTP(w, r)
	})
}
