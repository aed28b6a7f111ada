package domain

const RoleAdmin = "admin"

// Profile is the backend's view of the signed-in user.
type Profile struct {
	ID    string
	Name  string
	Email string
	Role  string
}

func (p Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}
