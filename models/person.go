package models

import (
	"time"

	"github.com/google/uuid"
)

// Person is a customer of a bar. A person may optionally be linked to a
// registered User account, but most bar customers never are.
type Person struct {
	ID          uuid.UUID  `gorm:"type:char(36);primaryKey" json:"id"`
	BarID       uuid.UUID  `gorm:"type:char(36);not null;index" json:"bar_id"`
	Name        string     `gorm:"type:varchar(255);not null" json:"name"`
	PhoneNumber string     `gorm:"type:varchar(50)" json:"phone_number"`
	UserID      *uuid.UUID `gorm:"type:char(36)" json:"user_id,omitempty"`
	User        *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updated_at"`
}

func NewPerson(barID uuid.UUID, name, phoneNumber string) Person {
	now := time.Now()
	return Person{
		ID:          uuid.New(),
		BarID:       barID,
		Name:        name,
		PhoneNumber: phoneNumber,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// LinkUser attaches a registered user account to this person.
func (p *Person) LinkUser(userID uuid.UUID) {
	p.UserID = &userID
	p.UpdatedAt = time.Now()
}
