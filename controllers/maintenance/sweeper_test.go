package maintenanceControllers

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
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

func seedBuyer(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	user := models.User{ID: "buyer-1", Email: "buyer-1@buyers.test"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedOrderAgedDays(t *testing.T, db *gorm.DB, buyer models.User, number string, status models.OrderStatus, ageDays int) models.Order {
	t.Helper()

	addr := models.Address{BuyerID: buyer.ID, FirstName: "Ann", Street: "1 Main St", City: "Springfield"}
	require.NoError(t, db.Create(&addr).Error)

	order := models.Order{
		OrderNumber:      number,
		BuyerID:          buyer.ID,
		AddressID:        addr.ID,
		TotalAmountCents: 1000,
		Status:           status,
		Items: []models.OrderItem{
			{ProductID: 1, StoreID: 1, ProductName: "widget", PriceCents: 1000, Quantity: 1},
		},
	}
	require.NoError(t, db.Create(&order).Error)

	// Backdate past gorm's autoCreateTime.
	createdAt := time.Now().AddDate(0, 0, -ageDays)
	require.NoError(t, db.Model(&models.Order{}).Where("id = ?", order.ID).Update("created_at", createdAt).Error)
	return order
}

func TestSweepCancelledOrdersRespectsWindow(t *testing.T) {
	db := openTestDB(t)
	buyer := seedBuyer(t, db)

	recent := seedOrderAgedDays(t, db, buyer, "ORD-recent", models.OrderStatusCancelled, 10)
	stale := seedOrderAgedDays(t, db, buyer, "ORD-stale", models.OrderStatusCancelled, 120)

	removed, err := SweepCancelledOrders(db, 90*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Where("id = ?", recent.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count, "a 10-day-old cancelled order stays inside a 90-day window")

	require.NoError(t, db.Model(&models.Order{}).Where("id = ?", stale.ID).Count(&count).Error)
	assert.Zero(t, count)

	// The stale order's line items and address go with it.
	require.NoError(t, db.Model(&models.OrderItem{}).Where("order_id = ?", stale.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&models.Address{}).Where("id = ?", stale.AddressID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSweepSkipsNonCancelledOrders(t *testing.T) {
	db := openTestDB(t)
	buyer := seedBuyer(t, db)

	delivered := seedOrderAgedDays(t, db, buyer, "ORD-delivered", models.OrderStatusDelivered, 365)

	removed, err := SweepCancelledOrders(db, 90*24*time.Hour)
	require.NoError(t, err)
	assert.Zero(t, removed)

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Where("id = ?", delivered.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count, "only the cancelled terminal status is swept")
}

func TestSweepCancelledOrdersEmpty(t *testing.T) {
	db := openTestDB(t)

	removed, err := SweepCancelledOrders(db, 90*24*time.Hour)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestSweepCartItems(t *testing.T) {
	db := openTestDB(t)
	buyer := seedBuyer(t, db)

	cart := models.Cart{UserID: buyer.ID}
	require.NoError(t, db.Create(&cart).Error)

	fresh := models.CartItem{CartID: cart.CartID, ProductID: 1, ProductName: "widget", PriceCents: 1000, Quantity: 1, AddedAt: time.Now()}
	require.NoError(t, db.Create(&fresh).Error)
	stale := models.CartItem{CartID: cart.CartID, ProductID: 2, ProductName: "gadget", PriceCents: 500, Quantity: 1, AddedAt: time.Now().AddDate(0, 0, -45)}
	require.NoError(t, db.Create(&stale).Error)

	removed, err := SweepCartItems(db, 30*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	var remaining []models.CartItem
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, fresh.ID, remaining[0].ID)
}

func TestSweepCartItemsKeepsCartRow(t *testing.T) {
	db := openTestDB(t)
	buyer := seedBuyer(t, db)

	cart := models.Cart{UserID: buyer.ID}
	require.NoError(t, db.Create(&cart).Error)
	stale := models.CartItem{CartID: cart.CartID, ProductID: 1, ProductName: "widget", PriceCents: 1000, Quantity: 1, AddedAt: time.Now().AddDate(0, 0, -45)}
	require.NoError(t, db.Create(&stale).Error)

	_, err := SweepCartItems(db, 30*24*time.Hour)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Cart{}).Where("cart_id = ?", cart.CartID).Count(&count).Error)
	assert.Equal(t, int64(1), count, "the cart container itself is not retention-swept")
}
