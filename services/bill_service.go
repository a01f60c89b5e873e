package services

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tomdewit/bartab-app/live"
	"github.com/tomdewit/bartab-app/models"
)

// BillService handles tab commands and queries.
type BillService struct {
	Bars *BarService
}

func NewBillService(bars *BarService) *BillService {
	return &BillService{Bars: bars}
}

// AddCustomerToSession opens a tab for a customer in a session. If the
// customer already has a bill there, the existing bill id is returned
// together with ErrDuplicate so the caller can pick retry-safe or strict
// semantics; no second bill is ever created.
func (bls *BillService) AddCustomerToSession(barID, sessionID, personID uuid.UUID) (*models.Bill, error) {
	var (
		bill    *models.Bill
		created bool
	)
	err := bls.Bars.ExecuteBarCommand(barID, func(tx *gorm.DB, bar *models.Bar) error {
		session, err := bar.Session(sessionID)
		if err != nil {
			return err
		}
		customer, err := bar.Customer(personID)
		if err != nil {
			return err
		}
		bill, created, err = session.AddCustomer(*customer)
		if err != nil {
			return err
		}
		if created {
			return tx.Omit("Person").Create(bill).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !created {
		return bill, fmt.Errorf("customer %s already has bill %s in session %s: %w",
			personID, bill.ID, sessionID, models.ErrDuplicate)
	}
	live.Broadcast(live.EventBillCreated, barID, bill)
	return bill, nil
}

// GetBills lists a session's bills in creation order.
func (bls *BillService) GetBills(barID, sessionID uuid.UUID) ([]models.Bill, error) {
	bar, err := bls.Bars.GetBar(barID)
	if err != nil {
		return nil, err
	}
	session, err := bar.Session(sessionID)
	if err != nil {
		return nil, err
	}
	return session.Bills, nil
}

func (bls *BillService) GetBill(barID, sessionID, billID uuid.UUID) (*models.Bill, error) {
	bar, err := bls.Bars.GetBar(barID)
	if err != nil {
		return nil, err
	}
	session, err := bar.Session(sessionID)
	if err != nil {
		return nil, err
	}
	return session.Bill(billID)
}

// GetBillsOfCustomer lists every bill a customer holds across the bar's
// session history, oldest session first.
func (bls *BillService) GetBillsOfCustomer(barID, personID uuid.UUID) ([]models.Bill, error) {
	bar, err := bls.Bars.GetBar(barID)
	if err != nil {
		return nil, err
	}
	if _, err := bar.Customer(personID); err != nil {
		return nil, err
	}
	var bills []models.Bill
	for i := range bar.Sessions {
		for _, bill := range bar.Sessions[i].Bills {
			if bill.PersonID == personID {
				bills = append(bills, bill)
			}
		}
	}
	return bills, nil
}

// PayBill settles a bill. Settlement is allowed in any session state and
// retrying it is a no-op.
func (bls *BillService) PayBill(barID, sessionID, billID uuid.UUID) (*models.Bill, error) {
	var paid *models.Bill
	err := bls.Bars.ExecuteBarCommand(barID, func(tx *gorm.DB, bar *models.Bar) error {
		session, err := bar.Session(sessionID)
		if err != nil {
			return err
		}
		bill, err := session.Bill(billID)
		if err != nil {
			return err
		}
		bill.Pay()
		if err := tx.Model(&models.Bill{}).Where("id = ?", billID).Update("paid", true).Error; err != nil {
			return err
		}
		paid = bill
		return nil
	})
	if err != nil {
		return nil, err
	}
	live.Broadcast(live.EventBillPaid, barID, paid)
	return paid, nil
}

// DeleteBill removes a bill and its orders from the session.
func (bls *BillService) DeleteBill(barID, sessionID, billID uuid.UUID) error {
	return bls.Bars.ExecuteBarCommand(barID, func(tx *gorm.DB, bar *models.Bar) error {
		session, err := bar.Session(sessionID)
		if err != nil {
			return err
		}
		if err := session.RemoveBill(billID); err != nil {
			return err
		}
		if err := tx.Where("bill_id = ?", billID).Delete(&models.Order{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Bill{}, "id = ?", billID).Error
	})
}
