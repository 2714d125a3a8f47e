package request

type RegisterRequest struct {
	Firstname string `json:"firstname" validate:"required,min=2,max=32"`
	Lastname  string `json:"lastname" validate:"required,min=2,max=32"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// CreateAdminRequest is accepted from root only; the created account
// always gets the admin role.
type CreateAdminRequest struct {
	Firstname string `json:"firstname" validate:"required,min=2,max=32"`
	Lastname  string `json:"lastname" validate:"required,min=2,max=32"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
}
