package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the catalog row order lines reference. Catalog management is
// handled elsewhere; order reads only need the name and image projection.
type Product struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Name        string          `json:"nombre" gorm:"column:nombre;size:255;not null"`
	Description string          `json:"descripcion,omitempty" gorm:"column:descripcion;size:500"`
	Price       decimal.Decimal `json:"precio" gorm:"column:precio;type:decimal(10,2);not null"`
	ImageURL    string          `json:"imagen_url,omitempty" gorm:"column:imagen_url;size:500"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TableName overrides the GORM default to match the storefront schema.
func (Product) TableName() string { return "productos" }
