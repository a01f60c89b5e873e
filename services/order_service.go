package services

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tomdewit/bartab-app/live"
	"github.com/tomdewit/bartab-app/models"
)

// OrderService handles line-item commands and queries.
type OrderService struct {
	Bars *BarService
}

func NewOrderService(bars *BarService) *OrderService {
	return &OrderService{Bars: bars}
}

// AddOrderToBill appends a line item to a bill. The session must still be
// open and the quantity positive; the product must belong to this bar.
func (s *OrderService) AddOrderToBill(barID, sessionID, billID, productID uuid.UUID, quantity int) (*models.Bill, error) {
	var updated *models.Bill
	err := s.Bars.ExecuteBarCommand(barID, func(tx *gorm.DB, bar *models.Bar) error {
		session, err := bar.Session(sessionID)
		if err != nil {
			return err
		}
		if !session.Active() {
			return fmt.Errorf("session %s is not open: %w", sessionID, models.ErrInvalidState)
		}
		bill, err := session.Bill(billID)
		if err != nil {
			return err
		}
		product, err := bar.Product(productID)
		if err != nil {
			return err
		}
		order, err := bill.AddOrder(*product, quantity)
		if err != nil {
			return err
		}
		if err := tx.Omit("Product").Create(order).Error; err != nil {
			return err
		}
		updated = bill
		return nil
	})
	if err != nil {
		return nil, err
	}
	live.Broadcast(live.EventOrderAdded, barID, updated)
	return updated, nil
}

// GetOrders lists a bill's line items in creation order.
func (s *OrderService) GetOrders(barID, sessionID, billID uuid.UUID) ([]models.Order, error) {
	bar, err := s.Bars.GetBar(barID)
	if err != nil {
		return nil, err
	}
	session, err := bar.Session(sessionID)
	if err != nil {
		return nil, err
	}
	bill, err := session.Bill(billID)
	if err != nil {
		return nil, err
	}
	return bill.Orders, nil
}

func (s *OrderService) GetOrder(barID, sessionID, billID, orderID uuid.UUID) (*models.Order, error) {
	bar, err := s.Bars.GetBar(barID)
	if err != nil {
		return nil, err
	}
	session, err := bar.Session(sessionID)
	if err != nil {
		return nil, err
	}
	bill, err := session.Bill(billID)
	if err != nil {
		return nil, err
	}
	return bill.Order(orderID)
}

// DeleteOrder removes a single line item from a bill.
func (s *OrderService) DeleteOrder(barID, sessionID, billID, orderID uuid.UUID) error {
	return s.Bars.ExecuteBarCommand(barID, func(tx *gorm.DB, bar *models.Bar) error {
		session, err := bar.Session(sessionID)
		if err != nil {
			return err
		}
		bill, err := session.Bill(billID)
		if err != nil {
			return err
		}
		if err := bill.RemoveOrder(orderID); err != nil {
			return err
		}
		return tx.Delete(&models.Order{}, "id = ?", orderID).Error
	})
}
