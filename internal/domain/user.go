package domain

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Identity is the authenticated user snapshot returned by the backend on
// login and persisted alongside the credential.
type Identity struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
