// Package session owns the authenticated identity and bearer credential for
// each browser session. It is the single source of truth for whether a user
// is signed in and what role they have.
package session

import "github.com/KishoreBalajiP/eco-frontend/internal/domain"

type Status string

const (
	StatusUnauthenticated Status = "UNAUTHENTICATED"
	StatusAuthenticated   Status = "AUTHENTICATED"
)

// Session is the in-memory view of one browser session, rehydrated from the
// store on every request.
type Session struct {
	ID         string
	Status     Status
	Credential string
	Identity   domain.Identity
}

func (s *Session) Authenticated() bool {
	return s != nil && s.Status == StatusAuthenticated
}

func (s *Session) IsAdmin() bool {
	return s.Authenticated() && s.Identity.IsAdmin()
}

// reset drops the in-memory identity and credential.
func (s *Session) reset() {
	s.Status = StatusUnauthenticated
	s.Credential = ""
	s.Identity = domain.Identity{}
}
