package services

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tomdewit/bartab-app/models"
)

// BarService loads and persists whole Bar aggregates. Every mutation of a
// bar or anything it owns goes through ExecuteBarCommand, which serializes
// writers per bar: the one-open-session and one-bill-per-customer invariants
// need check-then-act atomicity across the whole aggregate, so fine-grained
// per-entity locking would race.
type BarService struct {
	DB *gorm.DB

	barLocks sync.Map // uuid.UUID -> *sync.Mutex
}

func NewBarService(db *gorm.DB) *BarService {
	return &BarService{DB: db}
}

func (bs *BarService) lockBar(barID uuid.UUID) *sync.Mutex {
	mu, _ := bs.barLocks.LoadOrStore(barID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// LoadBar fetches a bar with all of its owned collections preloaded, in
// creation order, so aggregate invariants can be checked in memory.
func (bs *BarService) LoadBar(tx *gorm.DB, barID uuid.UUID) (*models.Bar, error) {
	var bar models.Bar
	err := tx.
		Preload("People").
		Preload("Categories").
		Preload("Products").
		Preload("Sessions", func(db *gorm.DB) *gorm.DB { return db.Order("sessions.created_at") }).
		Preload("Sessions.Bills", func(db *gorm.DB) *gorm.DB { return db.Order("bills.created_at") }).
		Preload("Sessions.Bills.Person").
		Preload("Sessions.Bills.Orders", func(db *gorm.DB) *gorm.DB { return db.Order("orders.created_at") }).
		Preload("Sessions.Bills.Orders.Product").
		First(&bar, "id = ?", barID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("no bar with id %s: %w", barID, models.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &bar, nil
}

// ExecuteBarCommand runs fn against the freshly loaded aggregate inside one
// transaction, holding the bar's write lock for the duration. fn does the
// invariant checks and the persistence; a returned error rolls everything
// back, so a failed command leaves no partial effect.
func (bs *BarService) ExecuteBarCommand(barID uuid.UUID, fn func(tx *gorm.DB, bar *models.Bar) error) error {
	mu := bs.lockBar(barID)
	mu.Lock()
	defer mu.Unlock()

	return bs.DB.Transaction(func(tx *gorm.DB) error {
		bar, err := bs.LoadBar(tx, barID)
		if err != nil {
			return err
		}
		return fn(tx, bar)
	})
}

// GetBar is the read path: no lock, reads see a consistent snapshot via the
// surrounding transaction isolation.
func (bs *BarService) GetBar(barID uuid.UUID) (*models.Bar, error) {
	return bs.LoadBar(bs.DB, barID)
}

// GetBarsOwnedBy lists the bars owned by a user, oldest first.
func (bs *BarService) GetBarsOwnedBy(ownerID uuid.UUID) ([]models.Bar, error) {
	var bars []models.Bar
	if err := bs.DB.Where("owner_id = ?", ownerID).Order("created_at").Find(&bars).Error; err != nil {
		return nil, err
	}
	return bars, nil
}

// CreateBar creates a bar plus its sentinel category.
func (bs *BarService) CreateBar(name string, ownerID uuid.UUID) (*models.Bar, error) {
	if name == "" {
		return nil, fmt.Errorf("bar name is required: %w", models.ErrInvalidArgument)
	}
	bar := models.NewBar(name, ownerID)
	if err := bs.DB.Create(&bar).Error; err != nil {
		return nil, err
	}
	return &bar, nil
}

// UpdateBar renames a bar.
func (bs *BarService) UpdateBar(barID uuid.UUID, name string) (*models.Bar, error) {
	if name == "" {
		return nil, fmt.Errorf("bar name is required: %w", models.ErrInvalidArgument)
	}
	var updated *models.Bar
	err := bs.ExecuteBarCommand(barID, func(tx *gorm.DB, bar *models.Bar) error {
		bar.Name = name
		if err := tx.Model(&models.Bar{}).Where("id = ?", barID).Update("name", name).Error; err != nil {
			return err
		}
		updated = bar
		return nil
	})
	return updated, err
}

// DeleteBar removes the bar and everything it owns.
func (bs *BarService) DeleteBar(barID uuid.UUID) error {
	return bs.ExecuteBarCommand(barID, func(tx *gorm.DB, bar *models.Bar) error {
		for i := range bar.Sessions {
			if err := deleteSessionRows(tx, &bar.Sessions[i]); err != nil {
				return err
			}
		}
		if err := tx.Where("bar_id = ?", barID).Delete(&models.Product{}).Error; err != nil {
			return err
		}
		if err := tx.Where("bar_id = ?", barID).Delete(&models.Category{}).Error; err != nil {
			return err
		}
		if err := tx.Where("bar_id = ?", barID).Delete(&models.Person{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Bar{}, "id = ?", barID).Error
	})
}

// deleteSessionRows removes a session row and its owned bills and orders.
func deleteSessionRows(tx *gorm.DB, session *models.Session) error {
	for i := range session.Bills {
		if err := tx.Where("bill_id = ?", session.Bills[i].ID).Delete(&models.Order{}).Error; err != nil {
			return err
		}
	}
	if err := tx.Where("session_id = ?", session.ID).Delete(&models.Bill{}).Error; err != nil {
		return err
	}
	return tx.Delete(&models.Session{}, "id = ?", session.ID).Error
}
