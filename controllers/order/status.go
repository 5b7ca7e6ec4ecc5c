package orderControllers

import (
	"errors"
	"log"
	"strconv"

	"github.com/junaidrashid-git/marketplace-api/apperrors"
	"github.com/junaidrashid-git/marketplace-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UpdateStatusRequest struct {
	Status        string `json:"status" binding:"required"`
	PaymentStatus string `json:"payment_status"`
	Notes         string `json:"notes"`
}

// PlatformScope marks a transition request coming from the platform itself
// (admin) rather than a store-scoped actor.
const PlatformScope uint = 0

// UpdateStatus drives the order lifecycle state machine. Side effects fire
// only when the stored status actually changes:
//
//   - entering confirmed decrements stock for every line item (a second
//     decrement on top of the creation-time one; kept as observed behavior)
//   - entering cancelled restocks every line item once
//   - entering delivered bumps totalSales once per distinct store and
//     defaults the payment status to paid
//
// A store-scoped actor must own at least one line item of the order; the
// update then applies to the whole order, there is no per-store partial
// status. Concurrent transitions are not ordered here: last commit wins.
func UpdateStatus(db *gorm.DB, orderID string, actorStoreID uint, req UpdateStatusRequest) (*models.Order, error) {
	newStatus, ok := models.ParseOrderStatus(req.Status)
	if !ok {
		return nil, apperrors.Newf(apperrors.KindInvalidStatus, "unknown order status %q", req.Status)
	}

	var newPayment models.PaymentStatus
	if req.PaymentStatus != "" {
		newPayment, ok = models.ParsePaymentStatus(req.PaymentStatus)
		if !ok {
			return nil, apperrors.Newf(apperrors.KindInvalidStatus, "unknown payment status %q", req.PaymentStatus)
		}
	}

	var order models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := byOrderIdentifier(tx.Preload("Items"), orderID).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.New(apperrors.KindNotFound, "order not found")
			}
			return err
		}

		if actorStoreID != PlatformScope && !orderTouchesStore(order, actorStoreID) {
			return apperrors.New(apperrors.KindForbidden, "order contains no items from this store")
		}

		prev := order.Status
		if prev != newStatus {
			if !models.CanTransition(prev, newStatus) {
				return apperrors.Newf(apperrors.KindInvalidStatus, "cannot transition order from %q to %q", prev, newStatus)
			}
			if err := applyStatusSideEffects(tx, &order, newStatus, req.PaymentStatus == ""); err != nil {
				return err
			}
			order.Status = newStatus
		}

		if req.PaymentStatus != "" {
			order.PaymentStatus = newPayment
		}
		if req.Notes != "" {
			order.Notes = req.Notes
		}
		return tx.Omit(clause.Associations).Save(&order).Error
	})
	if err != nil {
		if apperrors.KindOf(err) != apperrors.KindUnknown {
			return nil, err
		}
		log.Printf("status update failed for order %s: %v", orderID, err)
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to update order status", err)
	}

	BroadcastOrderStatus(order)
	return &order, nil
}

// byOrderIdentifier scopes a query to the numeric primary key or the
// customer-facing order number, whichever the identifier looks like. Separate
// predicates keep postgres from trying to cast an order number to an integer.
func byOrderIdentifier(tx *gorm.DB, id string) *gorm.DB {
	if _, err := strconv.ParseUint(id, 10, 64); err == nil {
		return tx.Where("id = ?", id)
	}
	return tx.Where("order_number = ?", id)
}

func orderTouchesStore(order models.Order, storeID uint) bool {
	for _, item := range order.Items {
		if item.StoreID == storeID {
			return true
		}
	}
	return false
}

func applyStatusSideEffects(tx *gorm.DB, order *models.Order, newStatus models.OrderStatus, defaultPayment bool) error {
	switch newStatus {
	case models.OrderStatusConfirmed:
		// Stock was already decremented at creation time; confirmation
		// charges inventory again. Observed behavior, preserved on purpose.
		for _, item := range order.Items {
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return apperrors.Newf(apperrors.KindOutOfStock, "insufficient stock to confirm product %q", item.ProductName)
			}
		}

	case models.OrderStatusCancelled:
		// Restock once, the inverse of the creation-time decrement.
		for _, item := range order.Items {
			if err := tx.Model(&models.Product{}).
				Where("id = ?", item.ProductID).
				UpdateColumn("stock", gorm.Expr("stock + ?", item.Quantity)).Error; err != nil {
				return err
			}
		}

	case models.OrderStatusDelivered:
		for _, storeID := range distinctStores(order.Items) {
			if err := tx.Model(&models.Store{}).
				Where("id = ?", storeID).
				UpdateColumn("total_sales", gorm.Expr("total_sales + 1")).Error; err != nil {
				return err
			}
		}
		if defaultPayment {
			order.PaymentStatus = models.PaymentStatusPaid
		}
	}
	return nil
}

func distinctStores(items []models.OrderItem) []uint {
	seen := make(map[uint]bool)
	var stores []uint
	for _, item := range items {
		if item.StoreID == 0 || seen[item.StoreID] {
			continue
		}
		seen[item.StoreID] = true
		stores = append(stores, item.StoreID)
	}
	return stores
}
