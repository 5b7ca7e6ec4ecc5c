package models

import "time"

type Store struct {
	ID    uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name  string `gorm:"not null" json:"name"`
	Email string `gorm:"unique;not null" json:"email"`
	Phone string `json:"phone"`
	// Live means the store is visible to buyers. Approved is set by the
	// admin approval workflow; a store cannot go live before approval.
	Live     bool `json:"live"`
	Approved bool `json:"approved"`
	// TotalSales counts delivered orders that touched this store, one per
	// order regardless of how many line items the store contributed.
	TotalSales int64     `json:"total_sales"`
	Products   []Product `gorm:"foreignKey:StoreID" json:"products,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
