package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/junaidrashid-git/marketplace-api/cache"
	"github.com/junaidrashid-git/marketplace-api/config"
	maintenanceControllers "github.com/junaidrashid-git/marketplace-api/controllers/maintenance"
	"github.com/junaidrashid-git/marketplace-api/models"
	"github.com/junaidrashid-git/marketplace-api/routes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	log.Println("Starting marketplace API...")

	// Load environment variables
	_ = godotenv.Load()
	cfg := config.Load()

	// Init DB
	db := initDatabase()

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.User{},
		&models.Store{},
		&models.Product{},
		&models.Category{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Address{},
	); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	// Gin setup
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Shared cache for audit reports and rate limiting
	memCache := cache.NewMemory()

	// Setup routes
	routes.SetupRoutes(r, db, cfg, memCache)

	// Optional scheduled retention sweep (disabled unless SWEEP_HOUR is set)
	if cfg.SweepHour >= 0 {
		go startDailySweepAtFixedTime(db, cfg, cfg.SweepHour, 0)
	}

	// Start server
	log.Printf("Server running on port %s...", cfg.HTTPPort)
	if err := r.Run(":" + cfg.HTTPPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase() *gorm.DB {
	gormCfg := &gorm.Config{TranslateError: true}

	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), gormCfg)
		if err != nil {
			log.Fatalf("DB connection failed: %v", err)
		}
		return db
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbname, port,
	)

	db, err := gorm.Open(postgres.Open(dsn), gormCfg)
	if err != nil {
		log.Fatalf("Failed to connect DB: %v", err)
	}
	return db
}

// startDailySweepAtFixedTime runs the retention sweep daily at a fixed hour.
func startDailySweepAtFixedTime(db *gorm.DB, cfg config.Config, hour, min int) {
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, now.Location())
		if !next.After(now) {
			next = next.Add(24 * time.Hour)
		}
		log.Printf("Next retention sweep scheduled at: %s", next.Format("2006-01-02 15:04:05"))
		time.Sleep(next.Sub(now))

		if rows, err := maintenanceControllers.SweepCartItems(db, cfg.CartRetention); err != nil {
			log.Printf("Cart sweep failed: %v", err)
		} else {
			log.Printf("Cart sweep removed %d stale items", rows)
		}

		if orders, err := maintenanceControllers.SweepCancelledOrders(db, cfg.CancelledOrderRetention); err != nil {
			log.Printf("Order sweep failed: %v", err)
		} else {
			log.Printf("Order sweep removed %d cancelled orders", orders)
		}
	}
}
