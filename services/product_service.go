package services

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tomdewit/bartab-app/models"
)

// ProductService handles catalog product commands and queries.
type ProductService struct {
	Bars *BarService
}

func NewProductService(bars *BarService) *ProductService {
	return &ProductService{Bars: bars}
}

func (ps *ProductService) CreateProduct(barID uuid.UUID, spec models.ProductSpec) (*models.Product, error) {
	var created *models.Product
	err := ps.Bars.ExecuteBarCommand(barID, func(tx *gorm.DB, bar *models.Bar) error {
		product, err := bar.CreateProduct(spec)
		if err != nil {
			return err
		}
		if err := tx.Create(product).Error; err != nil {
			return err
		}
		created = product
		return nil
	})
	return created, err
}

// GetProducts lists a bar's products, optionally filtered by type and/or
// category id. An empty type string means no type filter.
func (ps *ProductService) GetProducts(barID uuid.UUID, productType string, categoryID *uuid.UUID) ([]models.Product, error) {
	bar, err := ps.Bars.GetBar(barID)
	if err != nil {
		return nil, err
	}
	products := bar.Products
	if productType != "" {
		wanted := models.ParseProductType(productType)
		filtered := make([]models.Product, 0, len(products))
		for _, p := range products {
			if p.Type == wanted {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}
	if categoryID != nil {
		if _, err := bar.Category(*categoryID); err != nil {
			return nil, err
		}
		filtered := make([]models.Product, 0, len(products))
		for _, p := range products {
			if p.CategoryID == *categoryID {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}
	return products, nil
}

func (ps *ProductService) GetProduct(barID, productID uuid.UUID) (*models.Product, error) {
	bar, err := ps.Bars.GetBar(barID)
	if err != nil {
		return nil, err
	}
	return bar.Product(productID)
}

func (ps *ProductService) UpdateProduct(barID, productID uuid.UUID, spec models.ProductSpec) (*models.Product, error) {
	var updated *models.Product
	err := ps.Bars.ExecuteBarCommand(barID, func(tx *gorm.DB, bar *models.Bar) error {
		product, err := bar.UpdateProduct(productID, spec)
		if err != nil {
			return err
		}
		if err := tx.Save(product).Error; err != nil {
			return err
		}
		updated = product
		return nil
	})
	return updated, err
}

// DeleteProduct removes a product from the catalog. Products referenced by
// existing orders cannot be removed without orphaning those line items.
func (ps *ProductService) DeleteProduct(barID, productID uuid.UUID) error {
	return ps.Bars.ExecuteBarCommand(barID, func(tx *gorm.DB, bar *models.Bar) error {
		var refs int64
		if err := tx.Model(&models.Order{}).Where("product_id = ?", productID).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return fmt.Errorf("product %s is referenced by %d orders: %w", productID, refs, models.ErrConflict)
		}
		if err := bar.RemoveProduct(productID); err != nil {
			return err
		}
		return tx.Delete(&models.Product{}, "id = ?", productID).Error
	})
}
