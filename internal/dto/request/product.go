package request

type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Price       float64 `json:"price" validate:"gte=0"`
	Description string  `json:"description" validate:"required,max=2000"`
	OnSale      bool    `json:"onSale"`
	Sale        *string `json:"sale,omitempty" validate:"omitempty,min=2,max=3"`
	Category    string  `json:"category" validate:"required"` // name, slug or id
}

type UpdateProductRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	OnSale      *bool    `json:"onSale,omitempty"`
	Sale        *string  `json:"sale,omitempty" validate:"omitempty,min=2,max=3"`
	Category    *string  `json:"category,omitempty"`
}
