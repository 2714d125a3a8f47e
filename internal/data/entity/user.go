package entity

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
	RoleRoot  Role = "root"
)

// ValidRole reports whether r is one of the closed role set.
func ValidRole(r Role) bool {
	switch r {
	case RoleUser, RoleAdmin, RoleRoot:
		return true
	}
	return false
}

type User struct {
	Base
	Audit
	Firstname    string `db:"firstname"`
	Lastname     string `db:"lastname"`
	Email        string `db:"email"`
	PasswordHash string `db:"password"`
	Role         Role   `db:"role"`
}

func (u *User) FullName() string {
	return u.Firstname + " " + u.Lastname
}
