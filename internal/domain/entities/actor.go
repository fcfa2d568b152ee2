package entities

// Role is the caller role carried by the access token.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleRep   Role = "rep"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleRep
}

// Actor identifies who performs a workflow operation.
type Actor struct {
	ID   string
	Role Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
