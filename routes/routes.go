package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/marketplace-api/cache"
	"github.com/junaidrashid-git/marketplace-api/config"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up all route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config, store cache.Cache) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, db)

	// Buyer routes (JWT-protected)
	SetupUserRoutes(r, db)

	// Checkout + order routes
	SetupOrderRoutes(r, db, cfg, store)

	// Store (vendor) routes
	SetupStoreRoutes(r, db)

	// Admin routes (API-key-protected), incl. audit and maintenance
	SetupAdminRoutes(r, db, cfg, store)
}
