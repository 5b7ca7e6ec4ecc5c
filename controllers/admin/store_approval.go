package adminController

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/marketplace-api/models"
	"gorm.io/gorm"
)

// ListPendingStores returns all stores awaiting approval.
func ListPendingStores(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var pending []models.Store
		if err := db.Where("approved = ?", false).Find(&pending).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pending stores"})
			return
		}
		c.JSON(http.StatusOK, pending)
	}
}

func ApproveStore(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email string `json:"email"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}

		var store models.Store
		if err := db.Where("email = ?", req.Email).First(&store).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Store not found"})
			return
		}

		if err := db.Model(&store).Update("approved", true).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve store"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Store approved"})
	}
}

func RejectStore(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email string `json:"email"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}

		if err := db.Where("email = ? AND approved = ?", req.Email, false).Delete(&models.Store{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reject store"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Store rejected"})
	}
}
