package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/marketplace-api/models"
	"gorm.io/gorm"
)

type UpdateProductInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	PriceCents  *int64  `json:"price_cents"`
	Stock       *int    `json:"stock"`
	Active      *bool   `json:"active"`
	CategoryIDs []uint  `json:"category_ids"`
	Image       *string `json:"image"`
}

// UpdateProduct updates an existing product by ID. Only provided fields change.
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		idStr := c.Param("id")
		id, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.Preload("Categories").First(&product, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		var input UpdateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.Name != nil {
			product.Name = *input.Name
		}
		if input.Description != nil {
			product.Description = *input.Description
		}
		if input.PriceCents != nil {
			if *input.PriceCents < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "price_cents must be non-negative"})
				return
			}
			product.PriceCents = *input.PriceCents
		}
		if input.Stock != nil {
			if *input.Stock < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "stock must be non-negative"})
				return
			}
			product.Stock = *input.Stock
		}
		if input.Active != nil {
			product.Active = *input.Active
		}
		if input.Image != nil {
			product.Image = *input.Image
		}

		if len(input.CategoryIDs) > 0 {
			var categories []models.Category
			if err := db.Where("id IN ?", input.CategoryIDs).Find(&categories).Error; err == nil {
				if err := db.Model(&product).Association("Categories").Replace(categories); err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update categories"})
					return
				}
			}
		}

		if err := db.Save(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}

		c.JSON(http.StatusOK, product)
	}
}
