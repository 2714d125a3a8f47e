package entity

import (
	"github.com/google/uuid"
)

type Product struct {
	Base
	Audit
	Name        string    `db:"name"`
	Slug        string    `db:"slug"`
	Price       float64   `db:"price"` // >= 0
	Description string    `db:"description"`
	OnSale      bool      `db:"on_sale"`
	Sale        *string   `db:"sale"`
	CategoryID  uuid.UUID `db:"category_id"`
}
