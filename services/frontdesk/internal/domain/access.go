package domain

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleOwner     Role = "owner"
	RoleAttendant Role = "attendant"
)

// Actor is the authenticated principal issuing a request. It is supplied per call
// and never stored.
type Actor struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}
