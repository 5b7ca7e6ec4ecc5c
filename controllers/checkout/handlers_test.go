package checkoutControllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/marketplace-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCheckoutRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/orders/place", PlaceOrderHandler(db, testConfig()))
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPlaceOrderHandlerCreated(t *testing.T) {
	db := openTestDB(t)
	_, product := seedStoreAndProduct(t, db, "kappa", 1500, 10)
	buyer := seedBuyer(t, db, "buyer-h1")
	r := newCheckoutRouter(db)

	w := postJSON(t, r, "/orders/place", gin.H{
		"buyer_id": buyer.ID,
		"items":    []gin.H{{"product_id": product.ID, "quantity": 2}},
		"shipping_address": gin.H{
			"first_name": "Ann", "address": "1 Main St", "city": "Springfield",
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var got models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, int64(3000), got.TotalAmountCents)
	assert.NotEmpty(t, got.OrderNumber)
	assert.Len(t, got.Items, 1)
}

func TestPlaceOrderHandlerOutOfStock(t *testing.T) {
	db := openTestDB(t)
	_, product := seedStoreAndProduct(t, db, "lambda", 1000, 1)
	buyer := seedBuyer(t, db, "buyer-h2")
	r := newCheckoutRouter(db)

	w := postJSON(t, r, "/orders/place", gin.H{
		"buyer_id": buyer.ID,
		"items":    []gin.H{{"product_id": product.ID, "quantity": 5}},
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "insufficient stock")
}

func TestPlaceOrderHandlerUnknownProduct(t *testing.T) {
	db := openTestDB(t)
	buyer := seedBuyer(t, db, "buyer-h3")
	r := newCheckoutRouter(db)

	w := postJSON(t, r, "/orders/place", gin.H{
		"buyer_id": buyer.ID,
		"items":    []gin.H{{"product_id": 424242, "quantity": 1}},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPlaceOrderHandlerBadRequest(t *testing.T) {
	db := openTestDB(t)
	r := newCheckoutRouter(db)

	// Missing the required items field entirely.
	w := postJSON(t, r, "/orders/place", gin.H{"buyer_id": "whoever"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Malformed JSON.
	req := httptest.NewRequest(http.MethodPost, "/orders/place", bytes.NewReader([]byte("{nope")))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlaceOrderHandlerGuestCheckout(t *testing.T) {
	db := openTestDB(t)
	_, product := seedStoreAndProduct(t, db, "mu", 800, 3)
	r := newCheckoutRouter(db)

	w := postJSON(t, r, "/orders/place", gin.H{
		"items": []gin.H{{"product_id": product.ID, "quantity": 1}},
		"shipping_address": gin.H{
			"first_name": "Walkin", "email": "walkin@example.com",
			"address": "2 Side St", "city": "Springfield",
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var got models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))

	var guest models.User
	require.NoError(t, db.First(&guest, "id = ?", got.BuyerID).Error)
	assert.True(t, guest.Guest)
	assert.Equal(t, "walkin@example.com", guest.Email)
}

func TestPlaceOrderHandlerErrorShape(t *testing.T) {
	db := openTestDB(t)
	buyer := seedBuyer(t, db, "buyer-h4")
	r := newCheckoutRouter(db)

	w := postJSON(t, r, "/orders/place", gin.H{
		"buyer_id": buyer.ID,
		"items":    []gin.H{{"product_id": 1, "quantity": -1}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, fmt.Sprintf("invalid quantity %d for product %d", -1, 1), body["error"])
}
