package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Bill is one customer's running tab within a session. It owns its orders
// exclusively; the paid flag is the only settlement state there is.
type Bill struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	SessionID uuid.UUID `gorm:"type:char(36);not null;index" json:"session_id"`
	PersonID  uuid.UUID `gorm:"type:char(36);not null;index" json:"person_id"`
	Person    Person    `gorm:"foreignKey:PersonID" json:"person"`
	Paid      bool      `gorm:"not null;default:false" json:"paid"`
	Orders    []Order   `gorm:"foreignKey:BillID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"orders"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func newBill(sessionID uuid.UUID, customer Person) Bill {
	now := time.Now()
	return Bill{
		ID:        uuid.New(),
		SessionID: sessionID,
		PersonID:  customer.ID,
		Person:    customer,
		Paid:      false,
		Orders:    []Order{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AddOrder appends a line item for quantity units of product. Quantity must
// be a positive integer.
func (b *Bill) AddOrder(product Product, quantity int) (*Order, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive, got %d: %w", quantity, ErrInvalidArgument)
	}
	order := newOrder(b.ID, product, quantity)
	b.Orders = append(b.Orders, order)
	b.UpdatedAt = time.Now()
	return &b.Orders[len(b.Orders)-1], nil
}

// Order returns the line item with the given id.
func (b *Bill) Order(orderID uuid.UUID) (*Order, error) {
	for i := range b.Orders {
		if b.Orders[i].ID == orderID {
			return &b.Orders[i], nil
		}
	}
	return nil, fmt.Errorf("bill has no order with id %s: %w", orderID, ErrNotFound)
}

// RemoveOrder detaches the line item with the given id.
func (b *Bill) RemoveOrder(orderID uuid.UUID) error {
	for i := range b.Orders {
		if b.Orders[i].ID == orderID {
			b.Orders = append(b.Orders[:i], b.Orders[i+1:]...)
			b.UpdatedAt = time.Now()
			return nil
		}
	}
	return fmt.Errorf("bill has no order with id %s: %w", orderID, ErrNotFound)
}

// Pay settles the bill. Paying an already-paid bill is a no-op so that
// settlement retries are always safe.
func (b *Bill) Pay() {
	if b.Paid {
		return
	}
	b.Paid = true
	b.UpdatedAt = time.Now()
}

// TotalPrice recomputes the tab from live product prices on every call.
// The total is never cached: editing a product's price afterwards changes
// what an open historical bill is worth.
func (b *Bill) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for i := range b.Orders {
		total = total.Add(b.Orders[i].LinePrice())
	}
	return total
}
