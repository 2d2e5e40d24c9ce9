// internal/models/user.go
package models

// Role is the caller's role as passed in job variables.
type Role string

const (
	RoleStudent    Role = "student"
	RoleCounsellor Role = "counsellor"
	RoleAdmin      Role = "admin"
)

// IsStaff reports whether the role may see every student's reports.
func (r Role) IsStaff() bool {
	return r == RoleCounsellor || r == RoleAdmin
}

func (r Role) IsStudent() bool {
	return r == RoleStudent
}
