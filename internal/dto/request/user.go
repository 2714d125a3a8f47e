package request

type UpdateUserRequest struct {
	Firstname *string `json:"firstname,omitempty" validate:"omitempty,min=2,max=32"`
	Lastname  *string `json:"lastname,omitempty" validate:"omitempty,min=2,max=32"`
}
