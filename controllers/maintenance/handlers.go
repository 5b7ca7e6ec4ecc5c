package maintenanceControllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/marketplace-api/config"
	"gorm.io/gorm"
)

type SweepRequest struct {
	// Optional overrides, in days. Zero means use the configured window.
	CartDays           int `json:"cart_days"`
	CancelledOrderDays int `json:"cancelled_order_days"`
}

// SweepHandler is the operator trigger for the retention sweep.
func SweepHandler(db *gorm.DB, cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SweepRequest
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		}

		cartWindow := cfg.CartRetention
		if req.CartDays > 0 {
			cartWindow = time.Duration(req.CartDays) * 24 * time.Hour
		}
		orderWindow := cfg.CancelledOrderRetention
		if req.CancelledOrderDays > 0 {
			orderWindow = time.Duration(req.CancelledOrderDays) * 24 * time.Hour
		}

		cartRows, err := SweepCartItems(db, cartWindow)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sweep cart items"})
			return
		}
		orders, err := SweepCancelledOrders(db, orderWindow)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sweep cancelled orders"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"cart_items_deleted":       cartRows,
			"cancelled_orders_deleted": orders,
		})
	}
}
