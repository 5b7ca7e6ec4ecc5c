package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/marketplace-api/cache"
	"github.com/junaidrashid-git/marketplace-api/config"
	checkoutControllers "github.com/junaidrashid-git/marketplace-api/controllers/checkout"
	orderControllers "github.com/junaidrashid-git/marketplace-api/controllers/order"
	"github.com/junaidrashid-git/marketplace-api/middleware"
	"gorm.io/gorm"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config, store cache.Cache) {
	orders := r.Group("/orders")
	{
		// Checkout: turn a cart into a durable order
		orders.POST("/place",
			middleware.RateLimit(store, cfg.CheckoutRateLimit, cfg.CheckoutRateWindow),
			checkoutControllers.PlaceOrderHandler(db, cfg))

		// Websocket endpoint for real-time order events
		orders.GET("/ws", orderControllers.OrderWebSocketHandler)

		// Fetch orders for a specific buyer
		orders.GET("/user/:userID", middleware.ValidateToken, orderControllers.GetUserOrdersHandler(db))

		// Fetch a single order by id or order number
		orders.GET("/:orderID", orderControllers.GetOrderByIDHandler(db))
	}
}
