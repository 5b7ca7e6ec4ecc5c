// Package auditControllers implements the consistency auditor: a read-only
// pass that detects structural drift between inventory, orders, and catalog
// state, and a separate, explicitly-invoked repair pass for a conservative
// subset of findings.
package auditControllers

import (
	"fmt"
	"time"

	"github.com/junaidrashid-git/marketplace-api/models"
	"gorm.io/gorm"
)

// totalToleranceCents allows for rounding drift of one minor unit before an
// order total counts as mismatched.
const totalToleranceCents = 1

type Report struct {
	Consistent        bool      `json:"consistent"`
	Issues            []string  `json:"issues"`
	ProductsChecked   int64     `json:"products_checked"`
	OrdersChecked     int64     `json:"orders_checked"`
	StoresChecked     int64     `json:"stores_checked"`
	CategoriesChecked int64     `json:"categories_checked"`
	GeneratedAt       time.Time `json:"generated_at"`
}

// RunAudit verifies the dataset and reports findings. It never mutates state;
// findings are data, not errors. The dataset may change underneath the pass,
// so the report is eventually consistent by design.
func RunAudit(db *gorm.DB) (*Report, error) {
	report := &Report{Issues: []string{}, GeneratedAt: time.Now()}

	if err := db.Model(&models.Product{}).Count(&report.ProductsChecked).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Order{}).Count(&report.OrdersChecked).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Store{}).Count(&report.StoresChecked).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Category{}).Count(&report.CategoriesChecked).Error; err != nil {
		return nil, err
	}

	if err := auditProducts(db, report); err != nil {
		return nil, err
	}
	if err := auditStores(db, report); err != nil {
		return nil, err
	}
	if err := auditOrderTotals(db, report); err != nil {
		return nil, err
	}
	if err := auditCategories(db, report); err != nil {
		return nil, err
	}

	report.Consistent = len(report.Issues) == 0
	return report, nil
}

func auditProducts(db *gorm.DB, report *Report) error {
	var orphaned []models.Product
	if err := db.Where("active = ?", true).
		Where("store_id = 0 OR store_id NOT IN (SELECT id FROM stores)").
		Find(&orphaned).Error; err != nil {
		return err
	}
	for _, p := range orphaned {
		report.Issues = append(report.Issues, fmt.Sprintf("active product %d (%s) has no owning store", p.ID, p.Name))
	}

	var uncategorized []models.Product
	if err := db.Where("active = ?", true).
		Where("id NOT IN (SELECT product_id FROM product_categories)").
		Find(&uncategorized).Error; err != nil {
		return err
	}
	for _, p := range uncategorized {
		report.Issues = append(report.Issues, fmt.Sprintf("active product %d (%s) has no category", p.ID, p.Name))
	}

	var negative []models.Product
	if err := db.Unscoped().Where("price_cents < 0 OR stock < 0").Find(&negative).Error; err != nil {
		return err
	}
	for _, p := range negative {
		if p.PriceCents < 0 {
			report.Issues = append(report.Issues, fmt.Sprintf("product %d (%s) has negative price %d", p.ID, p.Name, p.PriceCents))
		}
		if p.Stock < 0 {
			report.Issues = append(report.Issues, fmt.Sprintf("product %d (%s) has negative stock %d", p.ID, p.Name, p.Stock))
		}
	}
	return nil
}

func auditStores(db *gorm.DB, report *Report) error {
	var deadStores []models.Store
	if err := db.Where("live = ?", true).
		Where("id NOT IN (SELECT store_id FROM products WHERE active = ? AND deleted_at IS NULL)", true).
		Find(&deadStores).Error; err != nil {
		return err
	}
	for _, s := range deadStores {
		report.Issues = append(report.Issues, fmt.Sprintf("live store %d (%s) has no active products", s.ID, s.Name))
	}
	return nil
}

func auditOrderTotals(db *gorm.DB, report *Report) error {
	// Batched so a large order table does not get loaded at once.
	var orders []models.Order
	result := db.Preload("Items").FindInBatches(&orders, 200, func(tx *gorm.DB, _ int) error {
		for _, o := range orders {
			var sum int64
			for _, item := range o.Items {
				sum += item.PriceCents * int64(item.Quantity)
				if item.Quantity <= 0 {
					report.Issues = append(report.Issues, fmt.Sprintf("order %s has non-positive quantity on product %d", o.OrderNumber, item.ProductID))
				}
				if item.PriceCents < 0 {
					report.Issues = append(report.Issues, fmt.Sprintf("order %s has negative price on product %d", o.OrderNumber, item.ProductID))
				}
			}
			diff := sum - o.TotalAmountCents
			if diff < 0 {
				diff = -diff
			}
			if diff > totalToleranceCents {
				report.Issues = append(report.Issues, fmt.Sprintf("order %s total %d does not match recomputed %d", o.OrderNumber, o.TotalAmountCents, sum))
			}
		}
		return nil
	})
	return result.Error
}

func auditCategories(db *gorm.DB, report *Report) error {
	var empty []models.Category
	if err := db.Where("id NOT IN (SELECT category_id FROM product_categories)").
		Find(&empty).Error; err != nil {
		return err
	}
	for _, cat := range empty {
		report.Issues = append(report.Issues, fmt.Sprintf("category %d (%s) has no products", cat.ID, cat.Name))
	}
	return nil
}
