package auditControllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/marketplace-api/cache"
	"gorm.io/gorm"
)

const lastReportKey = "audit:last_report"

// AuditHandler runs the consistency pass and caches the result for the
// last-report endpoint.
func AuditHandler(db *gorm.DB, store cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		report, err := RunAudit(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to run consistency audit"})
			return
		}
		store.Set(lastReportKey, report, 24*time.Hour)
		c.JSON(http.StatusOK, report)
	}
}

// LastReportHandler returns the most recent cached report without re-running
// the pass. Reports are stale by nature; see RunAudit.
func LastReportHandler(store cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := store.Get(lastReportKey)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "no audit report available"})
			return
		}
		c.JSON(http.StatusOK, v)
	}
}

type RepairRequest struct {
	Apply bool `json:"apply"`
}

// RepairHandler applies fixes only when the explicit apply flag is set.
func RepairHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RepairRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if !req.Apply {
			c.JSON(http.StatusBadRequest, gin.H{"error": "repair requires the apply flag"})
			return
		}
		result, err := RunRepair(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply repairs"})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}
