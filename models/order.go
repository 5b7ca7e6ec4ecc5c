package models

import "time"

type Order struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	OrderNumber string `gorm:"uniqueIndex;not null" json:"order_number"`
	BuyerID     string `gorm:"not null;index" json:"buyer_id"`
	Buyer       User   `gorm:"foreignKey:BuyerID" json:"buyer,omitempty"`
	AddressID   uint   `json:"address_id"`
	Address     Address `gorm:"foreignKey:AddressID" json:"address"`
	Items       []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	// TotalAmountCents is the sum of item price snapshots times quantities,
	// excluding shipping. Minor currency units throughout.
	TotalAmountCents int64         `json:"total_amount_cents"`
	ShippingCents    int64         `json:"shipping_cents"`
	PaymentMethod    string        `json:"payment_method"` // e.g. "card", "cod"
	Status           OrderStatus   `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	PaymentStatus    PaymentStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"payment_status"`
	Notes            string        `json:"notes,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// OrderItem is a line item. StoreID is denormalized from the product at
// creation time so per-store order queries never need a join through products.
// Line items are immutable after creation.
type OrderItem struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	OrderID     uint   `gorm:"index" json:"order_id"`
	ProductID   uint   `json:"product_id"`
	StoreID     uint   `gorm:"index" json:"store_id"`
	ProductName string `json:"product_name"`
	PriceCents  int64  `json:"price_cents"` // price snapshot at purchase time
	Quantity    int    `json:"quantity"`
	Color       string `json:"color,omitempty"`
	Size        string `json:"size,omitempty"`
}

// Address is created fresh for every order and owned by it.
type Address struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	BuyerID   string `gorm:"index" json:"buyer_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Street    string `json:"street"`
	City      string `json:"city"`
	Phone     string `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}
