package orderControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/marketplace-api/apperrors"
	"github.com/junaidrashid-git/marketplace-api/middleware"
	"github.com/junaidrashid-git/marketplace-api/models"
	"gorm.io/gorm"
)

// -------- Handlers --------

func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Preload("Buyer").
			Preload("Items").
			Preload("Address").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

func GetUserOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("userID")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "userID is required"})
			return
		}
		var orders []models.Order
		if err := db.
			Where("buyer_id = ?", userID).
			Preload("Items").
			Preload("Address").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GetOrderByIDHandler accepts a numeric id or an order number.
func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("orderID")
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}

		var order models.Order
		if err := byOrderIdentifier(db.
			Preload("Buyer").
			Preload("Items").
			Preload("Address"), id).
			First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

// GetStoreOrdersHandler lists orders containing at least one line item owned
// by the authenticated store. The denormalized store_id on order_items makes
// this a single join.
func GetStoreOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		storeID, ok := middleware.StoreIDFromContext(c)
		if !ok {
			c.JSON(http.StatusForbidden, gin.H{"error": "store credentials required"})
			return
		}

		var orders []models.Order
		if err := db.
			Distinct("orders.*").
			Joins("JOIN order_items ON order_items.order_id = orders.id").
			Where("order_items.store_id = ?", storeID).
			Preload("Items").
			Preload("Address").
			Order("orders.created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// UpdateOrderStatusHandler applies a lifecycle transition with platform scope.
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		applyStatusUpdate(c, db, PlatformScope)
	}
}

// UpdateStoreOrderStatusHandler applies a transition scoped to the
// authenticated store.
func UpdateStoreOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		storeID, ok := middleware.StoreIDFromContext(c)
		if !ok {
			c.JSON(http.StatusForbidden, gin.H{"error": "store credentials required"})
			return
		}
		applyStatusUpdate(c, db, storeID)
	}
}

func applyStatusUpdate(c *gin.Context, db *gorm.DB, actorStoreID uint) {
	orderID := c.Param("orderID")
	if orderID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
		return
	}
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := UpdateStatus(db, orderID, actorStoreID, req)
	if err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, order)
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

// UpdatePaymentStatusHandler records the externally-signalled payment state.
func UpdatePaymentStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		if orderID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}
		var req UpdatePaymentStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		newStatus, ok := models.ParsePaymentStatus(req.PaymentStatus)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment status"})
			return
		}
		res := byOrderIdentifier(db.Model(&models.Order{}), orderID).
			Update("payment_status", newStatus)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update payment status"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Payment status updated successfully"})
	}
}
