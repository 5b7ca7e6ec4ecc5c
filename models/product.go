package models

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	// Prices are stored in minor currency units (cents) to avoid float rounding.
	PriceCents int64      `gorm:"not null" json:"price_cents"`
	Stock      int        `json:"stock"`
	Active     bool       `gorm:"default:true" json:"active"`
	StoreID    uint       `gorm:"index" json:"store_id"`
	Store      Store      `gorm:"foreignKey:StoreID" json:"-"`
	Categories []Category `gorm:"many2many:product_categories;" json:"categories"`
	Image      string     `json:"image"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
