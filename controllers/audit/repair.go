package auditControllers

import (
	"fmt"

	"github.com/junaidrashid-git/marketplace-api/models"
	"gorm.io/gorm"
)

type RepairResult struct {
	FixesApplied       []string `json:"fixes_applied"`
	ProductsDeactivated int64   `json:"products_deactivated"`
	StoresTakenOffline  int64   `json:"stores_taken_offline"`
	StockClamped        int64   `json:"stock_clamped"`
}

// RunRepair applies the narrow, conservative subset of fixes: deactivate
// products with no category, take live stores with no active products
// offline, and clamp negative stock to zero. Order-total mismatches are left
// alone: recomputing a stored total could mask a corrupted line item, so the
// auditor only reports them.
func RunRepair(db *gorm.DB) (*RepairResult, error) {
	result := &RepairResult{FixesApplied: []string{}}

	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Product{}).
			Where("active = ?", true).
			Where("id NOT IN (SELECT product_id FROM product_categories)").
			Update("active", false)
		if res.Error != nil {
			return res.Error
		}
		result.ProductsDeactivated = res.RowsAffected

		res = tx.Model(&models.Store{}).
			Where("live = ?", true).
			Where("id NOT IN (SELECT store_id FROM products WHERE active = ? AND deleted_at IS NULL)", true).
			Update("live", false)
		if res.Error != nil {
			return res.Error
		}
		result.StoresTakenOffline = res.RowsAffected

		res = tx.Model(&models.Product{}).
			Where("stock < 0").
			Update("stock", 0)
		if res.Error != nil {
			return res.Error
		}
		result.StockClamped = res.RowsAffected
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.ProductsDeactivated > 0 {
		result.FixesApplied = append(result.FixesApplied, fmt.Sprintf("deactivated %d products with no category", result.ProductsDeactivated))
	}
	if result.StoresTakenOffline > 0 {
		result.FixesApplied = append(result.FixesApplied, fmt.Sprintf("took %d stores with no active products offline", result.StoresTakenOffline))
	}
	if result.StockClamped > 0 {
		result.FixesApplied = append(result.FixesApplied, fmt.Sprintf("clamped negative stock to zero on %d products", result.StockClamped))
	}
	return result, nil
}
