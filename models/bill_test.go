package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func billWithProduct(t *testing.T) (*Bar, *Bill, *Product) {
	t.Helper()
	bar := NewBar("De Kroeg", uuid.New())

	alice, err := bar.CreateCustomer("Alice", "")
	require.NoError(t, err)
	product, err := bar.CreateProduct(ProductSpec{
		Name:       "Heineken",
		Price:      decimal.RequireFromString("5.00"),
		Type:       "drink",
		CategoryID: bar.Uncategorized().ID,
	})
	require.NoError(t, err)
	session, err := bar.NewSession("Friday night")
	require.NoError(t, err)
	bill, _, err := session.AddCustomer(*alice)
	require.NoError(t, err)

	return &bar, bill, product
}

func TestAddOrderRejectsNonPositiveQuantity(t *testing.T) {
	_, bill, product := billWithProduct(t)

	_, err := bill.AddOrder(*product, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = bill.AddOrder(*product, -3)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Empty(t, bill.Orders)
}

func TestTotalPriceSumsLineItems(t *testing.T) {
	_, bill, product := billWithProduct(t)

	_, err := bill.AddOrder(*product, 2)
	require.NoError(t, err)

	assert.True(t, bill.TotalPrice().Equal(decimal.RequireFromString("10.00")),
		"got %s", bill.TotalPrice())
}

func TestTotalPriceFollowsLivePrices(t *testing.T) {
	bar, bill, product := billWithProduct(t)

	_, err := bill.AddOrder(*product, 2)
	require.NoError(t, err)
	require.True(t, bill.TotalPrice().Equal(decimal.RequireFromString("10.00")))

	// A later price edit changes what the open tab is worth: totals are
	// derived from the live catalog, never cached.
	_, err = bar.UpdateProduct(product.ID, ProductSpec{
		Name:       product.Name,
		Price:      decimal.RequireFromString("6.00"),
		Type:       string(product.Type),
		CategoryID: product.CategoryID,
	})
	require.NoError(t, err)

	// The order snapshot in this bill still references the old copy;
	// recompute against the bar's current product.
	bill.Orders[0].Product = *mustProduct(t, bar, product.ID)
	assert.True(t, bill.TotalPrice().Equal(decimal.RequireFromString("12.00")),
		"got %s", bill.TotalPrice())
}

func mustProduct(t *testing.T, bar *Bar, id uuid.UUID) *Product {
	t.Helper()
	p, err := bar.Product(id)
	require.NoError(t, err)
	return p
}

func TestIdenticalOrdersStayDistinct(t *testing.T) {
	_, bill, product := billWithProduct(t)

	first, err := bill.AddOrder(*product, 1)
	require.NoError(t, err)
	firstID := first.ID
	second, err := bill.AddOrder(*product, 1)
	require.NoError(t, err)

	assert.NotEqual(t, firstID, second.ID)
	assert.Len(t, bill.Orders, 2)
	assert.True(t, bill.TotalPrice().Equal(decimal.RequireFromString("10.00")))
}

func TestPayIsIdempotent(t *testing.T) {
	_, bill, _ := billWithProduct(t)

	assert.False(t, bill.Paid)
	bill.Pay()
	assert.True(t, bill.Paid)

	// Second settlement attempt is a safe no-op.
	bill.Pay()
	assert.True(t, bill.Paid)
}

func TestRemoveOrder(t *testing.T) {
	_, bill, product := billWithProduct(t)

	order, err := bill.AddOrder(*product, 1)
	require.NoError(t, err)
	orderID := order.ID

	require.NoError(t, bill.RemoveOrder(orderID))
	assert.Empty(t, bill.Orders)
	assert.True(t, bill.TotalPrice().IsZero())

	assert.ErrorIs(t, bill.RemoveOrder(orderID), ErrNotFound)
	_, err = bill.Order(orderID)
	assert.ErrorIs(t, err, ErrNotFound)
}
