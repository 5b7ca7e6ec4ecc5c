// Package maintenanceControllers implements the retention sweeper: deletion
// of stale abandoned cart rows and of cancelled orders past their retention
// window. Pure deletion, no business-rule side effects.
package maintenanceControllers

import (
	"time"

	"github.com/junaidrashid-git/marketplace-api/models"
	"gorm.io/gorm"
)

// SweepCartItems deletes cart line rows older than the window.
func SweepCartItems(db *gorm.DB, window time.Duration) (int64, error) {
	cutoff := time.Now().Add(-window)
	res := db.Where("added_at < ?", cutoff).Delete(&models.CartItem{})
	return res.RowsAffected, res.Error
}

// SweepCancelledOrders deletes orders that reached the terminal cancelled
// status before the window, along with their line items and address rows.
func SweepCancelledOrders(db *gorm.DB, window time.Duration) (int64, error) {
	cutoff := time.Now().Add(-window)

	var stale []models.Order
	if err := db.
		Where("status = ? AND created_at < ?", models.OrderStatusCancelled, cutoff).
		Find(&stale).Error; err != nil {
		return 0, err
	}
	if len(stale) == 0 {
		return 0, nil
	}

	orderIDs := make([]uint, 0, len(stale))
	addressIDs := make([]uint, 0, len(stale))
	for _, o := range stale {
		orderIDs = append(orderIDs, o.ID)
		if o.AddressID != 0 {
			addressIDs = append(addressIDs, o.AddressID)
		}
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id IN ?", orderIDs).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		if len(addressIDs) > 0 {
			if err := tx.Where("id IN ?", addressIDs).Delete(&models.Address{}).Error; err != nil {
				return err
			}
		}
		return tx.Where("id IN ?", orderIDs).Delete(&models.Order{}).Error
	})
	if err != nil {
		return 0, err
	}
	return int64(len(stale)), nil
}
