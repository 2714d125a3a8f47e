package response

import (
	"time"

	"github.com/C4ndyFl4mes/dt207g-project/internal/data/entity"
)

type ProductResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Price         float64   `json:"price"`
	Description   string    `json:"description"`
	OnSale        bool      `json:"onSale"`
	Sale          *string   `json:"sale,omitempty"`
	CategoryID    string    `json:"category_id"`
	AverageRating float64   `json:"average_rating"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ProductToResponse shapes a product for clients. averageRating is
// computed fresh by the caller on every read.
func ProductToResponse(product *entity.Product, averageRating float64) ProductResponse {
	return ProductResponse{
		ID:            product.ID.String(),
		Name:          product.Name,
		Slug:          product.Slug,
		Price:         product.Price,
		Description:   product.Description,
		OnSale:        product.OnSale,
		Sale:          product.Sale,
		CategoryID:    product.CategoryID.String(),
		AverageRating: averageRating,
		CreatedAt:     product.CreatedAt,
		UpdatedAt:     product.UpdatedAt,
	}
}
