package checkoutControllers

import (
	"errors"

	"github.com/junaidrashid-git/marketplace-api/apperrors"
	"github.com/junaidrashid-git/marketplace-api/models"
	"gorm.io/gorm"
)

type ItemRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
	Color     string `json:"color"`
	Size      string `json:"size"`
}

// ValidatedLine carries the price snapshot and owning store taken at
// validation time. Later price edits never affect an in-flight order.
type ValidatedLine struct {
	ProductID   uint
	StoreID     uint
	ProductName string
	PriceCents  int64
	Quantity    int
	Color       string
	Size        string
}

func (l ValidatedLine) SubtotalCents() int64 {
	return l.PriceCents * int64(l.Quantity)
}

// ValidateItems checks each requested line against the catalog: the product
// must exist, be sellable, and have sufficient stock. Read-only; the
// authoritative stock check happens again inside the commit transaction.
func ValidateItems(db *gorm.DB, items []ItemRequest) ([]ValidatedLine, error) {
	if len(items) == 0 {
		return nil, apperrors.New(apperrors.KindInvalidInput, "order must contain at least one item")
	}

	lines := make([]ValidatedLine, 0, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, apperrors.Newf(apperrors.KindInvalidInput, "invalid quantity %d for product %d", item.Quantity, item.ProductID)
		}

		var product models.Product
		if err := db.First(&product, "id = ?", item.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.Newf(apperrors.KindNotFound, "product %d not found", item.ProductID)
			}
			return nil, apperrors.Wrap(apperrors.KindInternal, "failed to look up product", err)
		}
		if !product.Active {
			return nil, apperrors.Newf(apperrors.KindNotFound, "product %q is no longer available", product.Name)
		}
		if product.Stock < item.Quantity {
			return nil, apperrors.Newf(apperrors.KindOutOfStock, "insufficient stock for product %q", product.Name)
		}

		lines = append(lines, ValidatedLine{
			ProductID:   product.ID,
			StoreID:     product.StoreID,
			ProductName: product.Name,
			PriceCents:  product.PriceCents,
			Quantity:    item.Quantity,
			Color:       item.Color,
			Size:        item.Size,
		})
	}
	return lines, nil
}
