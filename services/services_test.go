package services

import (
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tomdewit/bartab-app/database"
	"github.com/tomdewit/bartab-app/models"
	"github.com/tomdewit/bartab-app/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}

type testEnv struct {
	bars     *BarService
	people   *PersonService
	catalog  *CategoryService
	products *ProductService
	sessions *SessionService
	bills    *BillService
	orders   *OrderService
	bar      *models.Bar
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	// A named in-memory database keeps every pooled connection on the
	// same schema while isolating tests from each other.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	bars := NewBarService(db)
	bar, err := bars.CreateBar("De Kroeg", uuid.New())
	require.NoError(t, err)

	return &testEnv{
		bars:     bars,
		people:   NewPersonService(bars),
		catalog:  NewCategoryService(bars),
		products: NewProductService(bars),
		sessions: NewSessionService(bars),
		bills:    NewBillService(bars),
		orders:   NewOrderService(bars),
		bar:      bar,
	}
}

func (e *testEnv) seedProduct(t *testing.T, name, price string) *models.Product {
	t.Helper()
	bar, err := e.bars.GetBar(e.bar.ID)
	require.NoError(t, err)
	product, err := e.products.CreateProduct(e.bar.ID, models.ProductSpec{
		Name:       name,
		Price:      decimal.RequireFromString(price),
		Type:       "drink",
		CategoryID: bar.Uncategorized().ID,
	})
	require.NoError(t, err)
	return product
}

func TestCreateSessionConflict(t *testing.T) {
	env := setupEnv(t)

	first, err := env.sessions.CreateSession(env.bar.ID, "Friday night")
	require.NoError(t, err)

	_, err = env.sessions.CreateSession(env.bar.ID, "Saturday night")
	assert.ErrorIs(t, err, models.ErrConflict)

	_, err = env.sessions.EndSession(env.bar.ID, first.ID)
	require.NoError(t, err)

	second, err := env.sessions.CreateSession(env.bar.ID, "Saturday night")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	// The conflict check survives a reload: it is enforced by the
	// aggregate, not by in-memory state of one service call.
	sessions, err := env.sessions.GetSessions(env.bar.ID)
	require.NoError(t, err)
	assert.Len(t, sessions, 2)
}

func TestCreateSessionBarNotFound(t *testing.T) {
	env := setupEnv(t)

	_, err := env.sessions.CreateSession(uuid.New(), "Friday night")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestAddCustomerToSessionIsIdempotent(t *testing.T) {
	env := setupEnv(t)

	alice, err := env.people.CreateCustomer(env.bar.ID, "Alice", "0611111111")
	require.NoError(t, err)
	session, err := env.sessions.CreateSession(env.bar.ID, "Friday night")
	require.NoError(t, err)

	bill, err := env.bills.AddCustomerToSession(env.bar.ID, session.ID, alice.ID)
	require.NoError(t, err)

	// The duplicate add signals an error but still hands back the same
	// bill id, so a retried request recovers its tab.
	again, err := env.bills.AddCustomerToSession(env.bar.ID, session.ID, alice.ID)
	assert.ErrorIs(t, err, models.ErrDuplicate)
	require.NotNil(t, again)
	assert.Equal(t, bill.ID, again.ID)

	bills, err := env.bills.GetBills(env.bar.ID, session.ID)
	require.NoError(t, err)
	assert.Len(t, bills, 1)
}

func TestAddCustomerUnknownIDs(t *testing.T) {
	env := setupEnv(t)

	session, err := env.sessions.CreateSession(env.bar.ID, "Friday night")
	require.NoError(t, err)

	_, err = env.bills.AddCustomerToSession(env.bar.ID, session.ID, uuid.New())
	assert.ErrorIs(t, err, models.ErrNotFound)

	alice, err := env.people.CreateCustomer(env.bar.ID, "Alice", "")
	require.NoError(t, err)
	_, err = env.bills.AddCustomerToSession(env.bar.ID, uuid.New(), alice.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestPayBillPersistsAndIsIdempotent(t *testing.T) {
	env := setupEnv(t)

	alice, err := env.people.CreateCustomer(env.bar.ID, "Alice", "")
	require.NoError(t, err)
	session, err := env.sessions.CreateSession(env.bar.ID, "Friday night")
	require.NoError(t, err)
	bill, err := env.bills.AddCustomerToSession(env.bar.ID, session.ID, alice.ID)
	require.NoError(t, err)

	paid, err := env.bills.PayBill(env.bar.ID, session.ID, bill.ID)
	require.NoError(t, err)
	assert.True(t, paid.Paid)

	// Retry is a no-op, not an error.
	paid, err = env.bills.PayBill(env.bar.ID, session.ID, bill.ID)
	require.NoError(t, err)
	assert.True(t, paid.Paid)

	reloaded, err := env.bills.GetBill(env.bar.ID, session.ID, bill.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.Paid)
}

func TestAddOrderValidation(t *testing.T) {
	env := setupEnv(t)

	alice, err := env.people.CreateCustomer(env.bar.ID, "Alice", "")
	require.NoError(t, err)
	product := env.seedProduct(t, "Heineken", "5.00")
	session, err := env.sessions.CreateSession(env.bar.ID, "Friday night")
	require.NoError(t, err)
	bill, err := env.bills.AddCustomerToSession(env.bar.ID, session.ID, alice.ID)
	require.NoError(t, err)

	_, err = env.orders.AddOrderToBill(env.bar.ID, session.ID, bill.ID, product.ID, 0)
	assert.ErrorIs(t, err, models.ErrInvalidArgument)

	// The failed command left nothing behind.
	orders, err := env.orders.GetOrders(env.bar.ID, session.ID, bill.ID)
	require.NoError(t, err)
	assert.Empty(t, orders)

	updated, err := env.orders.AddOrderToBill(env.bar.ID, session.ID, bill.ID, product.ID, 2)
	require.NoError(t, err)
	assert.True(t, updated.TotalPrice().Equal(decimal.RequireFromString("10.00")))
}

func TestAddOrderOnLockedSession(t *testing.T) {
	env := setupEnv(t)

	alice, err := env.people.CreateCustomer(env.bar.ID, "Alice", "")
	require.NoError(t, err)
	product := env.seedProduct(t, "Heineken", "5.00")
	session, err := env.sessions.CreateSession(env.bar.ID, "Friday night")
	require.NoError(t, err)
	bill, err := env.bills.AddCustomerToSession(env.bar.ID, session.ID, alice.ID)
	require.NoError(t, err)

	_, err = env.sessions.LockSession(env.bar.ID, session.ID)
	require.NoError(t, err)

	_, err = env.orders.AddOrderToBill(env.bar.ID, session.ID, bill.ID, product.ID, 1)
	assert.ErrorIs(t, err, models.ErrInvalidState)

	// Settlement still works on a locked session.
	_, err = env.bills.PayBill(env.bar.ID, session.ID, bill.ID)
	assert.NoError(t, err)
}

func TestBillTotalFollowsLiveCatalogPrice(t *testing.T) {
	env := setupEnv(t)

	alice, err := env.people.CreateCustomer(env.bar.ID, "Alice", "")
	require.NoError(t, err)
	product := env.seedProduct(t, "Heineken", "5.00")
	session, err := env.sessions.CreateSession(env.bar.ID, "Friday night")
	require.NoError(t, err)
	bill, err := env.bills.AddCustomerToSession(env.bar.ID, session.ID, alice.ID)
	require.NoError(t, err)
	_, err = env.orders.AddOrderToBill(env.bar.ID, session.ID, bill.ID, product.ID, 2)
	require.NoError(t, err)

	spec := models.ProductSpec{
		Name:       product.Name,
		Price:      decimal.RequireFromString("6.50"),
		Type:       string(product.Type),
		CategoryID: product.CategoryID,
	}
	_, err = env.products.UpdateProduct(env.bar.ID, product.ID, spec)
	require.NoError(t, err)

	reloaded, err := env.bills.GetBill(env.bar.ID, session.ID, bill.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.TotalPrice().Equal(decimal.RequireFromString("13.00")),
		"got %s", reloaded.TotalPrice())
}

func TestDeleteCategoryRelinksProductsInStore(t *testing.T) {
	env := setupEnv(t)

	beers, err := env.catalog.CreateCategory(env.bar.ID, "Beers")
	require.NoError(t, err)
	product, err := env.products.CreateProduct(env.bar.ID, models.ProductSpec{
		Name:       "Heineken",
		Price:      decimal.RequireFromString("2.50"),
		Type:       "drink",
		CategoryID: beers.ID,
	})
	require.NoError(t, err)

	require.NoError(t, env.catalog.DeleteCategory(env.bar.ID, beers.ID))

	reloaded, err := env.products.GetProduct(env.bar.ID, product.ID)
	require.NoError(t, err)

	bar, err := env.bars.GetBar(env.bar.ID)
	require.NoError(t, err)
	assert.Equal(t, bar.Uncategorized().ID, reloaded.CategoryID)

	_, err = env.catalog.GetCategory(env.bar.ID, beers.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestDeleteProductReferencedByOrders(t *testing.T) {
	env := setupEnv(t)

	alice, err := env.people.CreateCustomer(env.bar.ID, "Alice", "")
	require.NoError(t, err)
	product := env.seedProduct(t, "Heineken", "5.00")
	session, err := env.sessions.CreateSession(env.bar.ID, "Friday night")
	require.NoError(t, err)
	bill, err := env.bills.AddCustomerToSession(env.bar.ID, session.ID, alice.ID)
	require.NoError(t, err)
	_, err = env.orders.AddOrderToBill(env.bar.ID, session.ID, bill.ID, product.ID, 1)
	require.NoError(t, err)

	err = env.products.DeleteProduct(env.bar.ID, product.ID)
	assert.ErrorIs(t, err, models.ErrConflict)
}

func TestDeleteSessionCascades(t *testing.T) {
	env := setupEnv(t)

	alice, err := env.people.CreateCustomer(env.bar.ID, "Alice", "")
	require.NoError(t, err)
	product := env.seedProduct(t, "Heineken", "5.00")
	session, err := env.sessions.CreateSession(env.bar.ID, "Friday night")
	require.NoError(t, err)
	bill, err := env.bills.AddCustomerToSession(env.bar.ID, session.ID, alice.ID)
	require.NoError(t, err)
	_, err = env.orders.AddOrderToBill(env.bar.ID, session.ID, bill.ID, product.ID, 1)
	require.NoError(t, err)

	require.NoError(t, env.sessions.DeleteSession(env.bar.ID, session.ID))

	_, err = env.sessions.GetSession(env.bar.ID, session.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	var billCount, orderCount int64
	require.NoError(t, env.bars.DB.Model(&models.Bill{}).Count(&billCount).Error)
	require.NoError(t, env.bars.DB.Model(&models.Order{}).Count(&orderCount).Error)
	assert.Zero(t, billCount)
	assert.Zero(t, orderCount)
}

func TestGetBillsOfCustomerAcrossSessions(t *testing.T) {
	env := setupEnv(t)

	alice, err := env.people.CreateCustomer(env.bar.ID, "Alice", "")
	require.NoError(t, err)

	first, err := env.sessions.CreateSession(env.bar.ID, "Friday night")
	require.NoError(t, err)
	_, err = env.bills.AddCustomerToSession(env.bar.ID, first.ID, alice.ID)
	require.NoError(t, err)
	_, err = env.sessions.EndSession(env.bar.ID, first.ID)
	require.NoError(t, err)

	second, err := env.sessions.CreateSession(env.bar.ID, "Saturday night")
	require.NoError(t, err)
	_, err = env.bills.AddCustomerToSession(env.bar.ID, second.ID, alice.ID)
	require.NoError(t, err)

	bills, err := env.bills.GetBillsOfCustomer(env.bar.ID, alice.ID)
	require.NoError(t, err)
	assert.Len(t, bills, 2)
}

func TestRenameSessionRules(t *testing.T) {
	env := setupEnv(t)

	session, err := env.sessions.CreateSession(env.bar.ID, "Friday night")
	require.NoError(t, err)

	renamed, err := env.sessions.RenameSession(env.bar.ID, session.ID, "Vrijdagavond")
	require.NoError(t, err)
	assert.Equal(t, "Vrijdagavond", renamed.Name)

	_, err = env.sessions.EndSession(env.bar.ID, session.ID)
	require.NoError(t, err)

	_, err = env.sessions.RenameSession(env.bar.ID, session.ID, "Too late")
	assert.ErrorIs(t, err, models.ErrInvalidState)
}
