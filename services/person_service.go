package services

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tomdewit/bartab-app/models"
)

// PersonService handles customer commands and queries for a bar.
type PersonService struct {
	Bars *BarService
}

func NewPersonService(bars *BarService) *PersonService {
	return &PersonService{Bars: bars}
}

func (ps *PersonService) CreateCustomer(barID uuid.UUID, name, phoneNumber string) (*models.Person, error) {
	var created *models.Person
	err := ps.Bars.ExecuteBarCommand(barID, func(tx *gorm.DB, bar *models.Bar) error {
		person, err := bar.CreateCustomer(name, phoneNumber)
		if err != nil {
			return err
		}
		if err := tx.Create(person).Error; err != nil {
			return err
		}
		created = person
		return nil
	})
	return created, err
}

func (ps *PersonService) GetCustomers(barID uuid.UUID) ([]models.Person, error) {
	bar, err := ps.Bars.GetBar(barID)
	if err != nil {
		return nil, err
	}
	return bar.People, nil
}

func (ps *PersonService) GetCustomer(barID, personID uuid.UUID) (*models.Person, error) {
	bar, err := ps.Bars.GetBar(barID)
	if err != nil {
		return nil, err
	}
	return bar.Customer(personID)
}

func (ps *PersonService) UpdateCustomer(barID, personID uuid.UUID, name, phoneNumber string) (*models.Person, error) {
	var updated *models.Person
	err := ps.Bars.ExecuteBarCommand(barID, func(tx *gorm.DB, bar *models.Bar) error {
		person, err := bar.RenameCustomer(personID, name)
		if err != nil {
			return err
		}
		person.PhoneNumber = phoneNumber
		if err := tx.Model(&models.Person{}).Where("id = ?", personID).
			Updates(map[string]interface{}{"name": person.Name, "phone_number": person.PhoneNumber}).Error; err != nil {
			return err
		}
		updated = person
		return nil
	})
	return updated, err
}

// LinkUser attaches a registered user account to a customer.
func (ps *PersonService) LinkUser(barID, personID, userID uuid.UUID) (*models.Person, error) {
	var updated *models.Person
	err := ps.Bars.ExecuteBarCommand(barID, func(tx *gorm.DB, bar *models.Bar) error {
		person, err := bar.Customer(personID)
		if err != nil {
			return err
		}
		person.LinkUser(userID)
		if err := tx.Model(&models.Person{}).Where("id = ?", personID).Update("user_id", userID).Error; err != nil {
			return err
		}
		updated = person
		return nil
	})
	return updated, err
}

func (ps *PersonService) DeleteCustomer(barID, personID uuid.UUID) error {
	return ps.Bars.ExecuteBarCommand(barID, func(tx *gorm.DB, bar *models.Bar) error {
		if err := bar.RemoveCustomer(personID); err != nil {
			return err
		}
		return tx.Delete(&models.Person{}, "id = ?", personID).Error
	})
}
