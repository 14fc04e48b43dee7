package auth

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleEmployee Role = "USER"
)

// AdminSubject is the token subject of the administrator session.
const AdminSubject = "admin"

// Claims is the identity carried by a verified access token.
type Claims struct {
	Subject    string
	Role       Role
	EmployeeID string
}

func (c Claims) IsAdmin() bool {
	return c.Role == RoleAdmin
}
