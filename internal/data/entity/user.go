package entity

type UserRole string

const (
	RoleUser      UserRole = "user"
	RoleModerator UserRole = "moderator"
	RoleAdmin     UserRole = "admin"
)

// ValidRole reports whether role is one of the closed set. Unknown roles
// are rejected at the boundary so access checks never see them.
func ValidRole(role string) bool {
	switch UserRole(role) {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	Base
	Username    string   `db:"username"`
	Email       string   `db:"email"`
	FirstName   string   `db:"first_name"`
	LastName    string   `db:"last_name"`
	Bio         string   `db:"bio"`
	Role        UserRole `db:"role"`
	IsSuperuser bool     `db:"is_superuser"`
}
