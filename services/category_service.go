package services

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tomdewit/bartab-app/models"
)

// CategoryService handles catalog category commands and queries.
type CategoryService struct {
	Bars *BarService
}

func NewCategoryService(bars *BarService) *CategoryService {
	return &CategoryService{Bars: bars}
}

func (cs *CategoryService) CreateCategory(barID uuid.UUID, name string) (*models.Category, error) {
	var created *models.Category
	err := cs.Bars.ExecuteBarCommand(barID, func(tx *gorm.DB, bar *models.Bar) error {
		category, err := bar.CreateCategory(name)
		if err != nil {
			return err
		}
		if err := tx.Create(category).Error; err != nil {
			return err
		}
		created = category
		return nil
	})
	return created, err
}

func (cs *CategoryService) GetCategories(barID uuid.UUID) ([]models.Category, error) {
	bar, err := cs.Bars.GetBar(barID)
	if err != nil {
		return nil, err
	}
	return bar.Categories, nil
}

func (cs *CategoryService) GetCategory(barID, categoryID uuid.UUID) (*models.Category, error) {
	bar, err := cs.Bars.GetBar(barID)
	if err != nil {
		return nil, err
	}
	return bar.Category(categoryID)
}

func (cs *CategoryService) UpdateCategory(barID, categoryID uuid.UUID, name string) (*models.Category, error) {
	var updated *models.Category
	err := cs.Bars.ExecuteBarCommand(barID, func(tx *gorm.DB, bar *models.Bar) error {
		category, err := bar.RenameCategory(categoryID, name)
		if err != nil {
			return err
		}
		if err := tx.Model(&models.Category{}).Where("id = ?", categoryID).Update("name", name).Error; err != nil {
			return err
		}
		updated = category
		return nil
	})
	return updated, err
}

// DeleteCategory removes a category; products that referenced it are moved
// to the bar's sentinel "Uncategorized" category in the same transaction.
func (cs *CategoryService) DeleteCategory(barID, categoryID uuid.UUID) error {
	return cs.Bars.ExecuteBarCommand(barID, func(tx *gorm.DB, bar *models.Bar) error {
		if err := bar.RemoveCategory(categoryID); err != nil {
			return err
		}
		fallback := bar.Uncategorized()
		if err := tx.Model(&models.Product{}).
			Where("bar_id = ? AND category_id = ?", barID, categoryID).
			Update("category_id", fallback.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Category{}, "id = ?", categoryID).Error
	})
}
