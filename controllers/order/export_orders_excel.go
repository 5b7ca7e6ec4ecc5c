package orderControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/marketplace-api/models"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

// ExportOrdersToExcel produces a back-office download of all orders with one
// row per line item. Amounts stay in minor units in the sheet.
func ExportOrdersToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.Preload("Items").Preload("Address").Order("created_at DESC").Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Orders")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headers := []string{
			"OrderNumber", "BuyerID", "Status", "PaymentStatus", "PaymentMethod",
			"TotalAmountCents", "ShippingCents", "StoreID", "ProductID", "Product",
			"PriceCents", "Quantity", "City", "CreatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, o := range orders {
			for _, item := range o.Items {
				row := sheet.AddRow()
				row.AddCell().SetValue(o.OrderNumber)
				row.AddCell().SetValue(o.BuyerID)
				row.AddCell().SetValue(string(o.Status))
				row.AddCell().SetValue(string(o.PaymentStatus))
				row.AddCell().SetValue(o.PaymentMethod)
				row.AddCell().SetValue(strconv.FormatInt(o.TotalAmountCents, 10))
				row.AddCell().SetValue(strconv.FormatInt(o.ShippingCents, 10))
				row.AddCell().SetValue(item.StoreID)
				row.AddCell().SetValue(item.ProductID)
				row.AddCell().SetValue(item.ProductName)
				row.AddCell().SetValue(strconv.FormatInt(item.PriceCents, 10))
				row.AddCell().SetValue(item.Quantity)
				row.AddCell().SetValue(o.Address.City)
				row.AddCell().SetValue(o.CreatedAt.Format("2006-01-02 15:04:05"))
			}
		}

		c.Header("Content-Disposition", "attachment; filename=orders.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}
