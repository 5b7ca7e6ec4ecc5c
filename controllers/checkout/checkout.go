package checkoutControllers

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/junaidrashid-git/marketplace-api/apperrors"
	"github.com/junaidrashid-git/marketplace-api/config"
	"github.com/junaidrashid-git/marketplace-api/models"
	"gorm.io/gorm"
)

type PlaceOrderRequest struct {
	BuyerID         string                 `json:"buyer_id"`
	Items           []ItemRequest          `json:"items" binding:"required"`
	PaymentMethod   string                 `json:"payment_method"`
	ShippingAddress ShippingAddressRequest `json:"shipping_address"`
	Notes           string                 `json:"notes"`
}

const orderNumberPrefix = "ORD"

// generateOrderNumber builds the customer-facing order number: fixed prefix,
// creation timestamp, short random suffix. Collisions are tolerated by the
// retry loop in PlaceOrder, not assumed away.
func generateOrderNumber() string {
	suffix := strings.Split(uuid.NewString(), "-")[0]
	return orderNumberPrefix + "-" + time.Now().Format("20060102150405") + "-" + suffix
}

// PlaceOrder turns a cart into a durable order: validates stock, resolves the
// buyer, then atomically inserts the order, its line items and address, and
// decrements inventory. All writes commit together or not at all.
func PlaceOrder(db *gorm.DB, cfg config.Config, req PlaceOrderRequest) (*models.Order, error) {
	lines, err := ValidateItems(db, req.Items)
	if err != nil {
		return nil, err
	}

	buyer, err := ResolveBuyer(db, req.BuyerID, req.ShippingAddress)
	if err != nil {
		return nil, err
	}

	var total int64
	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		total += line.SubtotalCents()
		items = append(items, models.OrderItem{
			ProductID:   line.ProductID,
			StoreID:     line.StoreID,
			ProductName: line.ProductName,
			PriceCents:  line.PriceCents,
			Quantity:    line.Quantity,
			Color:       line.Color,
			Size:        line.Size,
		})
	}

	address := buildAddress(buyer.ID, req.ShippingAddress)

	retries := cfg.OrderNumberRetries
	if retries < 1 {
		retries = 1
	}

	var order *models.Order
	for attempt := 0; attempt < retries; attempt++ {
		order, err = commitOrder(db, buyer, address, items, lines, total, cfg.ShippingCents, req)
		if err == nil {
			return order, nil
		}
		if isDuplicateKey(err) {
			continue // regenerate the order number and try again
		}
		if kind := apperrors.KindOf(err); kind != apperrors.KindUnknown && kind != apperrors.KindInternal {
			return nil, err
		}
		log.Printf("order commit failed: %v", err)
		return nil, apperrors.Wrap(apperrors.KindInternal, "order could not be created", err)
	}
	log.Printf("order number collisions exhausted retries: %v", err)
	return nil, apperrors.New(apperrors.KindConflict, "order could not be created")
}

func commitOrder(db *gorm.DB, buyer *models.User, address models.Address, items []models.OrderItem, lines []ValidatedLine, total, shipping int64, req PlaceOrderRequest) (*models.Order, error) {
	order := models.Order{
		OrderNumber:      generateOrderNumber(),
		BuyerID:          buyer.ID,
		TotalAmountCents: total,
		ShippingCents:    shipping,
		PaymentMethod:    req.PaymentMethod,
		Status:           models.OrderStatusPending,
		PaymentStatus:    models.PaymentStatusPending,
		Notes:            req.Notes,
		CreatedAt:        time.Now(),
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		addr := address
		if err := tx.Create(&addr).Error; err != nil {
			return err
		}
		order.AddressID = addr.ID
		order.Address = addr
		// Fresh copies per attempt so ids assigned by a rolled-back insert
		// never leak into a retry.
		order.Items = make([]models.OrderItem, len(items))
		copy(order.Items, items)

		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		// Re-check stock inside the transaction boundary: the conditional
		// update closes the race left open by the read-only validation pass.
		for _, line := range lines {
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", line.ProductID, line.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", line.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return apperrors.Newf(apperrors.KindOutOfStock, "insufficient stock for product %q", line.ProductName)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	order.Buyer = *buyer
	return &order, nil
}

// buildAddress substitutes defaults for missing required fields; guest
// checkout stays permissive rather than rejecting a malformed address.
func buildAddress(buyerID string, req ShippingAddressRequest) models.Address {
	first := req.FirstName
	if first == "" {
		first = "Guest"
	}
	street := req.Address
	if street == "" {
		street = "unspecified"
	}
	city := req.City
	if city == "" {
		city = "unspecified"
	}
	return models.Address{
		BuyerID:   buyerID,
		FirstName: first,
		LastName:  req.LastName,
		Street:    street,
		City:      city,
		Phone:     req.Phone,
	}
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}
