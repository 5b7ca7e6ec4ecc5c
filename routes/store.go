package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/junaidrashid-git/marketplace-api/controllers/order"
	storeControllers "github.com/junaidrashid-git/marketplace-api/controllers/store"
	"github.com/junaidrashid-git/marketplace-api/middleware"
	"gorm.io/gorm"
)

// SetupStoreRoutes registers vendor-facing endpoints. Order access is scoped
// to the authenticated store's own line items.
func SetupStoreRoutes(r *gin.Engine, db *gorm.DB) {
	stores := r.Group("/stores")
	{
		stores.POST("/register", storeControllers.RegisterStore(db))
		stores.GET("", storeControllers.GetAllStores(db))
		stores.GET("/:id", storeControllers.GetStore(db))
	}

	scoped := r.Group("/store")
	scoped.Use(middleware.ValidateToken)
	{
		scoped.GET("/orders", orderControllers.GetStoreOrdersHandler(db))
		scoped.PUT("/orders/:orderID/status", orderControllers.UpdateStoreOrderStatusHandler(db))
	}
}
