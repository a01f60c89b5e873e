package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is one line item on a bill: a quantity of a single product.
// Orders are immutable once created; two identical purchases stay two
// distinct line items (equality is by id, never by product+quantity).
type Order struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	BillID    uuid.UUID `gorm:"type:char(36);not null;index" json:"bill_id"`
	ProductID uuid.UUID `gorm:"type:char(36);not null" json:"product_id"`
	// Product is a copy taken when the order was loaded or created. Totals
	// still follow catalog price edits because every command and query
	// reloads the aggregate before reading; within one loaded aggregate the
	// copy is a snapshot.
	Product   Product   `gorm:"foreignKey:ProductID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"product"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func newOrder(billID uuid.UUID, product Product, quantity int) Order {
	return Order{
		ID:        uuid.New(),
		BillID:    billID,
		ProductID: product.ID,
		Product:   product,
		Quantity:  quantity,
		CreatedAt: time.Now(),
	}
}

// LinePrice is the live subtotal of this order: current product price times
// quantity. It follows later price edits, see Bill.TotalPrice.
func (o *Order) LinePrice() decimal.Decimal {
	return o.Product.Price.Mul(decimal.NewFromInt(int64(o.Quantity)))
}
