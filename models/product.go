package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductType tags what kind of item a product is.
type ProductType string

const (
	ProductTypeDrink ProductType = "drink"
	ProductTypeFood  ProductType = "food"
	ProductTypeOther ProductType = "other"
)

// ParseProductType maps free-form input onto a product type. Unrecognized
// input falls back to "other" instead of failing.
func ParseProductType(s string) ProductType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "drink":
		return ProductTypeDrink
	case "food":
		return ProductTypeFood
	default:
		return ProductTypeOther
	}
}

type Product struct {
	ID         uuid.UUID       `gorm:"type:char(36);primaryKey" json:"id"`
	BarID      uuid.UUID       `gorm:"type:char(36);not null;index" json:"bar_id"`
	Name       string          `gorm:"type:varchar(255);not null" json:"name"`
	Brand      string          `gorm:"type:varchar(255)" json:"brand"`
	Size       float64         `json:"size"`
	Price      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Type       ProductType     `gorm:"type:varchar(20);not null;default:'other'" json:"type"`
	Favorite   bool            `gorm:"not null;default:false" json:"favorite"`
	CategoryID uuid.UUID       `gorm:"type:char(36);not null;index" json:"category_id"`
	CreatedAt  time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"not null" json:"updated_at"`
}

// ProductSpec carries the caller-supplied fields for creating or updating
// a product. Type is parsed leniently, see ParseProductType.
type ProductSpec struct {
	Name       string
	Brand      string
	Size       float64
	Price      decimal.Decimal
	Type       string
	Favorite   bool
	CategoryID uuid.UUID
}

func NewProduct(barID uuid.UUID, spec ProductSpec) Product {
	now := time.Now()
	return Product{
		ID:         uuid.New(),
		BarID:      barID,
		Name:       spec.Name,
		Brand:      spec.Brand,
		Size:       spec.Size,
		Price:      spec.Price,
		Type:       ParseProductType(spec.Type),
		Favorite:   spec.Favorite,
		CategoryID: spec.CategoryID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Apply overwrites the mutable fields from spec. Identity stays stable.
func (p *Product) Apply(spec ProductSpec) {
	p.Name = spec.Name
	p.Brand = spec.Brand
	p.Size = spec.Size
	p.Price = spec.Price
	p.Type = ParseProductType(spec.Type)
	p.Favorite = spec.Favorite
	p.CategoryID = spec.CategoryID
	p.UpdatedAt = time.Now()
}
