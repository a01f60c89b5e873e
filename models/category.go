package models

import (
	"time"

	"github.com/google/uuid"
)

// UncategorizedName is the name of the per-bar sentinel category that
// products fall back to when their own category is removed.
const UncategorizedName = "Uncategorized"

type Category struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	BarID     uuid.UUID `gorm:"type:char(36);not null;index" json:"bar_id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Sentinel  bool      `gorm:"not null;default:false" json:"sentinel"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func NewCategory(barID uuid.UUID, name string) Category {
	now := time.Now()
	return Category{
		ID:        uuid.New(),
		BarID:     barID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// newSentinelCategory is created once per bar, together with the bar itself.
func newSentinelCategory(barID uuid.UUID) Category {
	c := NewCategory(barID, UncategorizedName)
	c.Sentinel = true
	return c
}
