package orderControllers

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/junaidrashid-git/marketplace-api/apperrors"
	"github.com/junaidrashid-git/marketplace-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Store{}, &models.Product{}, &models.Category{},
		&models.Cart{}, &models.CartItem{}, &models.Order{}, &models.OrderItem{}, &models.Address{},
	))
	return db
}

type fixture struct {
	buyer    models.User
	storeA   models.Store
	storeB   models.Store
	productA models.Product
	productB models.Product
	order    models.Order
}

// seedOrder creates a pending order with two line items from store A and one
// from store B, mirroring a creation-time stock decrement already applied.
func seedOrder(t *testing.T, db *gorm.DB) fixture {
	t.Helper()

	f := fixture{}
	f.buyer = models.User{ID: "buyer-1", Email: "buyer-1@buyers.test"}
	require.NoError(t, db.Create(&f.buyer).Error)

	f.storeA = models.Store{Name: "Store A", Email: "a@stores.test", Approved: true, Live: true}
	require.NoError(t, db.Create(&f.storeA).Error)
	f.storeB = models.Store{Name: "Store B", Email: "b@stores.test", Approved: true, Live: true}
	require.NoError(t, db.Create(&f.storeB).Error)

	f.productA = models.Product{Name: "widget", PriceCents: 1000, Stock: 8, Active: true, StoreID: f.storeA.ID}
	require.NoError(t, db.Create(&f.productA).Error)
	f.productB = models.Product{Name: "gadget", PriceCents: 500, Stock: 9, Active: true, StoreID: f.storeB.ID}
	require.NoError(t, db.Create(&f.productB).Error)

	addr := models.Address{BuyerID: f.buyer.ID, FirstName: "Ann", Street: "1 Main St", City: "Springfield"}
	require.NoError(t, db.Create(&addr).Error)

	f.order = models.Order{
		OrderNumber:      "ORD-20250101000000-test",
		BuyerID:          f.buyer.ID,
		AddressID:        addr.ID,
		TotalAmountCents: 2500,
		Status:           models.OrderStatusPending,
		PaymentStatus:    models.PaymentStatusPending,
		CreatedAt:        time.Now(),
		Items: []models.OrderItem{
			{ProductID: f.productA.ID, StoreID: f.storeA.ID, ProductName: "widget", PriceCents: 1000, Quantity: 2},
			{ProductID: f.productB.ID, StoreID: f.storeB.ID, ProductName: "gadget", PriceCents: 500, Quantity: 1},
		},
	}
	require.NoError(t, db.Create(&f.order).Error)
	return f
}

func orderID(o models.Order) string { return fmt.Sprint(o.ID) }

func productStock(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()
	var p models.Product
	require.NoError(t, db.First(&p, id).Error)
	return p.Stock
}

func storeSales(t *testing.T, db *gorm.DB, id uint) int64 {
	t.Helper()
	var s models.Store
	require.NoError(t, db.First(&s, id).Error)
	return s.TotalSales
}

func TestConfirmDecrementsStock(t *testing.T) {
	db := openTestDB(t)
	f := seedOrder(t, db)

	order, err := UpdateStatus(db, orderID(f.order), PlatformScope, UpdateStatusRequest{Status: "confirmed"})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusConfirmed, order.Status)

	// Confirmation charges stock again on top of the creation-time decrement.
	assert.Equal(t, 6, productStock(t, db, f.productA.ID))
	assert.Equal(t, 8, productStock(t, db, f.productB.ID))
}

func TestSameStatusIsNoOp(t *testing.T) {
	db := openTestDB(t)
	f := seedOrder(t, db)

	_, err := UpdateStatus(db, orderID(f.order), PlatformScope, UpdateStatusRequest{Status: "confirmed"})
	require.NoError(t, err)
	stockAfterFirst := productStock(t, db, f.productA.ID)

	_, err = UpdateStatus(db, orderID(f.order), PlatformScope, UpdateStatusRequest{Status: "confirmed"})
	require.NoError(t, err)
	assert.Equal(t, stockAfterFirst, productStock(t, db, f.productA.ID), "reapplying a status must not repeat side effects")
	assert.Equal(t, int64(0), storeSales(t, db, f.storeA.ID))
}

func TestCancelRestocks(t *testing.T) {
	db := openTestDB(t)
	f := seedOrder(t, db)

	order, err := UpdateStatus(db, orderID(f.order), PlatformScope, UpdateStatusRequest{Status: "cancelled"})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, order.Status)

	assert.Equal(t, 10, productStock(t, db, f.productA.ID))
	assert.Equal(t, 10, productStock(t, db, f.productB.ID))
}

func TestCancelAfterConfirmRestocksOnce(t *testing.T) {
	db := openTestDB(t)
	f := seedOrder(t, db)

	_, err := UpdateStatus(db, orderID(f.order), PlatformScope, UpdateStatusRequest{Status: "confirmed"})
	require.NoError(t, err)
	require.Equal(t, 6, productStock(t, db, f.productA.ID))

	// The restock inverts the creation-time decrement only; it does not
	// separately invert the confirmation-time one.
	_, err = UpdateStatus(db, orderID(f.order), PlatformScope, UpdateStatusRequest{Status: "cancelled"})
	require.NoError(t, err)
	assert.Equal(t, 8, productStock(t, db, f.productA.ID))
}

func TestDeliveredCountsDistinctStores(t *testing.T) {
	db := openTestDB(t)
	f := seedOrder(t, db)

	// Add two more items from store A: three A-items total, still one order.
	require.NoError(t, db.Create(&models.OrderItem{
		OrderID: f.order.ID, ProductID: f.productA.ID, StoreID: f.storeA.ID,
		ProductName: "widget", PriceCents: 1000, Quantity: 1,
	}).Error)
	require.NoError(t, db.Create(&models.OrderItem{
		OrderID: f.order.ID, ProductID: f.productA.ID, StoreID: f.storeA.ID,
		ProductName: "widget", PriceCents: 1000, Quantity: 1,
	}).Error)

	for _, status := range []string{"confirmed", "shipped", "delivered"} {
		_, err := UpdateStatus(db, orderID(f.order), PlatformScope, UpdateStatusRequest{Status: status})
		require.NoError(t, err)
	}

	assert.Equal(t, int64(1), storeSales(t, db, f.storeA.ID), "one increment per order, not per item")
	assert.Equal(t, int64(1), storeSales(t, db, f.storeB.ID))
}

func TestDeliveredDefaultsPaymentToPaid(t *testing.T) {
	db := openTestDB(t)
	f := seedOrder(t, db)

	for _, status := range []string{"confirmed", "shipped"} {
		_, err := UpdateStatus(db, orderID(f.order), PlatformScope, UpdateStatusRequest{Status: status})
		require.NoError(t, err)
	}

	order, err := UpdateStatus(db, orderID(f.order), PlatformScope, UpdateStatusRequest{Status: "delivered"})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, order.PaymentStatus)
}

func TestDeliveredKeepsExplicitPaymentStatus(t *testing.T) {
	db := openTestDB(t)
	f := seedOrder(t, db)

	for _, status := range []string{"confirmed", "shipped"} {
		_, err := UpdateStatus(db, orderID(f.order), PlatformScope, UpdateStatusRequest{Status: status})
		require.NoError(t, err)
	}

	order, err := UpdateStatus(db, orderID(f.order), PlatformScope, UpdateStatusRequest{
		Status:        "delivered",
		PaymentStatus: "refunded",
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusRefunded, order.PaymentStatus)
}

func TestStoreScopeForbidden(t *testing.T) {
	db := openTestDB(t)
	f := seedOrder(t, db)

	outsider := models.Store{Name: "Outsider", Email: "outsider@stores.test", Approved: true}
	require.NoError(t, db.Create(&outsider).Error)

	_, err := UpdateStatus(db, orderID(f.order), outsider.ID, UpdateStatusRequest{Status: "confirmed"})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))

	// No mutation happened.
	var got models.Order
	require.NoError(t, db.First(&got, f.order.ID).Error)
	assert.Equal(t, models.OrderStatusPending, got.Status)
	assert.Equal(t, 8, productStock(t, db, f.productA.ID))
}

func TestStoreScopeAppliesToWholeOrder(t *testing.T) {
	db := openTestDB(t)
	f := seedOrder(t, db)

	// Store A owns items in the order, so it may transition the whole order.
	order, err := UpdateStatus(db, orderID(f.order), f.storeA.ID, UpdateStatusRequest{Status: "confirmed"})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusConfirmed, order.Status)

	// Store B's item is charged too; there is no per-store partial status.
	assert.Equal(t, 8, productStock(t, db, f.productB.ID))
}

func TestInvalidStatusRejected(t *testing.T) {
	db := openTestDB(t)
	f := seedOrder(t, db)

	_, err := UpdateStatus(db, orderID(f.order), PlatformScope, UpdateStatusRequest{Status: "teleported"})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInvalidStatus, apperrors.KindOf(err))

	var got models.Order
	require.NoError(t, db.First(&got, f.order.ID).Error)
	assert.Equal(t, models.OrderStatusPending, got.Status)
}

func TestTerminalStatesRejectTransitions(t *testing.T) {
	db := openTestDB(t)
	f := seedOrder(t, db)

	_, err := UpdateStatus(db, orderID(f.order), PlatformScope, UpdateStatusRequest{Status: "cancelled"})
	require.NoError(t, err)

	_, err = UpdateStatus(db, orderID(f.order), PlatformScope, UpdateStatusRequest{Status: "confirmed"})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInvalidStatus, apperrors.KindOf(err))
}

func TestUnknownOrderNotFound(t *testing.T) {
	db := openTestDB(t)

	_, err := UpdateStatus(db, "999999", PlatformScope, UpdateStatusRequest{Status: "confirmed"})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestConfirmFailsClosedWhenStockExhausted(t *testing.T) {
	db := openTestDB(t)
	f := seedOrder(t, db)

	// Drain product A behind the order's back.
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", f.productA.ID).Update("stock", 1).Error)

	_, err := UpdateStatus(db, orderID(f.order), PlatformScope, UpdateStatusRequest{Status: "confirmed"})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindOutOfStock, apperrors.KindOf(err))

	// The failed transition rolled back entirely.
	var got models.Order
	require.NoError(t, db.First(&got, f.order.ID).Error)
	assert.Equal(t, models.OrderStatusPending, got.Status)
	assert.Equal(t, 1, productStock(t, db, f.productA.ID))
	assert.Equal(t, 9, productStock(t, db, f.productB.ID))
}
