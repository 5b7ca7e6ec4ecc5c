package checkoutControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/marketplace-api/apperrors"
	"github.com/junaidrashid-git/marketplace-api/config"
	orderControllers "github.com/junaidrashid-git/marketplace-api/controllers/order"
	"gorm.io/gorm"
)

// PlaceOrderHandler is the checkout endpoint. Failures caught before commit
// return a specific message; post-commit failures stay generic, with detail
// exposed only outside release mode.
func PlaceOrderHandler(db *gorm.DB, cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid checkout request: " + err.Error()})
			return
		}

		order, err := PlaceOrder(db, cfg, req)
		if err != nil {
			body := gin.H{"error": errorMessage(err)}
			if gin.Mode() != gin.ReleaseMode {
				body["detail"] = err.Error()
			}
			c.JSON(apperrors.HTTPStatus(err), body)
			return
		}

		orderControllers.BroadcastOrderCreated(*order)
		c.JSON(http.StatusCreated, order)
	}
}

func errorMessage(err error) string {
	var e *apperrors.Error
	if errors.As(err, &e) && e.Kind != apperrors.KindInternal {
		return e.Message
	}
	return "order could not be created"
}
