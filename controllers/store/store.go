package storeControllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/marketplace-api/models"
	"gorm.io/gorm"
)

type RegisterStoreInput struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone"`
}

// RegisterStore creates a store awaiting admin approval. Duplicate emails are
// a conflict, not an internal failure.
func RegisterStore(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RegisterStoreInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		store := models.Store{
			Name:  input.Name,
			Email: strings.ToLower(input.Email),
			Phone: input.Phone,
		}

		if err := db.Create(&store).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) ||
				strings.Contains(err.Error(), "duplicate key") ||
				strings.Contains(err.Error(), "UNIQUE constraint") {
				c.JSON(http.StatusConflict, gin.H{"error": "A store with this email already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register store"})
			return
		}

		c.JSON(http.StatusCreated, store)
	}
}

func GetStore(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var store models.Store
		if err := db.First(&store, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Store not found"})
			return
		}
		c.JSON(http.StatusOK, store)
	}
}

func GetAllStores(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var stores []models.Store
		if err := db.Order("created_at DESC").Find(&stores).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stores"})
			return
		}
		c.JSON(http.StatusOK, stores)
	}
}

type SetLiveInput struct {
	Live bool `json:"live"`
}

// SetStoreLive toggles store visibility. Only approved stores can go live.
func SetStoreLive(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var store models.Store
		if err := db.First(&store, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Store not found"})
			return
		}

		var input SetLiveInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if input.Live && !store.Approved {
			c.JSON(http.StatusForbidden, gin.H{"error": "Store is not approved yet"})
			return
		}

		if err := db.Model(&store).Update("live", input.Live).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update store"})
			return
		}
		c.JSON(http.StatusOK, store)
	}
}
