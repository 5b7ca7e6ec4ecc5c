package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/marketplace-api/cache"
	"github.com/junaidrashid-git/marketplace-api/config"
	adminController "github.com/junaidrashid-git/marketplace-api/controllers/admin"
	auditControllers "github.com/junaidrashid-git/marketplace-api/controllers/audit"
	cartControllers "github.com/junaidrashid-git/marketplace-api/controllers/cart"
	maintenanceControllers "github.com/junaidrashid-git/marketplace-api/controllers/maintenance"
	orderControllers "github.com/junaidrashid-git/marketplace-api/controllers/order"
	productcontroller "github.com/junaidrashid-git/marketplace-api/controllers/product"
	storeControllers "github.com/junaidrashid-git/marketplace-api/controllers/store"
	userControllers "github.com/junaidrashid-git/marketplace-api/controllers/user"
	"github.com/junaidrashid-git/marketplace-api/middleware"
	"gorm.io/gorm"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires API-Key middleware.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config, store cache.Cache) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey)
	{
		// User management
		adminGroup.GET("/users", userControllers.GetAllUsers(db))

		// Product management
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productcontroller.CreateProduct(db))
			productAdmin.PUT("/:id", productcontroller.UpdateProduct(db))
			productAdmin.GET("", productcontroller.GetProducts(db))
			productAdmin.DELETE("/:id", productcontroller.DeleteProduct(db))
		}

		// Category management
		categoryAdmin := adminGroup.Group("/categories")
		{
			categoryAdmin.POST("", productcontroller.CreateCategory(db))
			categoryAdmin.PUT("/:id", productcontroller.UpdateCategory(db))
			categoryAdmin.GET("", productcontroller.GetAllCategories(db))
			categoryAdmin.DELETE("/:id", productcontroller.DeleteCategory(db))
		}

		// Store approval workflow
		storeMgmt := adminGroup.Group("/store-management")
		{
			storeMgmt.GET("/pending", adminController.ListPendingStores(db))
			storeMgmt.POST("/approve", adminController.ApproveStore(db))
			storeMgmt.POST("/reject", adminController.RejectStore(db))
			storeMgmt.PUT("/:id/live", storeControllers.SetStoreLive(db))
		}

		// Order management
		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrdersHandler(db))
			orderAdmin.PUT("/:orderID/status", orderControllers.UpdateOrderStatusHandler(db))
			orderAdmin.PUT("/:orderID/payment-status", orderControllers.UpdatePaymentStatusHandler(db))
			orderAdmin.GET("/export-excel", orderControllers.ExportOrdersToExcel(db))
		}

		// Consistency audit
		auditAdmin := adminGroup.Group("/audit")
		{
			auditAdmin.GET("", auditControllers.AuditHandler(db, store))
			auditAdmin.GET("/last", auditControllers.LastReportHandler(store))
			auditAdmin.POST("/repair", auditControllers.RepairHandler(db))
		}

		// Retention sweep
		adminGroup.POST("/maintenance/sweep", maintenanceControllers.SweepHandler(db, cfg))

		// Cart inspection
		adminGroup.GET("/user-cart/:user_id", cartControllers.GetAdminUserCart(db))
	}
}
