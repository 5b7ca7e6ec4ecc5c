package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/marketplace-api/models"
	"gorm.io/gorm"
)

type CreateProductInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents" binding:"required"`
	Stock       int    `json:"stock"`
	StoreID     uint   `json:"store_id" binding:"required"`
	CategoryIDs []uint `json:"category_ids"`
	Image       string `json:"image"`
}

// CreateProduct creates a new product under a store with its categories.
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.PriceCents < 0 || input.Stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price_cents and stock must be non-negative"})
			return
		}

		var store models.Store
		if err := db.First(&store, input.StoreID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Store does not exist"})
			return
		}

		var categories []models.Category
		if len(input.CategoryIDs) > 0 {
			if err := db.Where("id IN ?", input.CategoryIDs).Find(&categories).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
				return
			}
		}

		product := models.Product{
			Name:        input.Name,
			Description: input.Description,
			PriceCents:  input.PriceCents,
			Stock:       input.Stock,
			Active:      true,
			StoreID:     store.ID,
			Categories:  categories,
			Image:       input.Image,
		}

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		c.JSON(http.StatusCreated, product)
	}
}
