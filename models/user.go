package models

import "time"

type User struct {
	ID    string `gorm:"primaryKey" json:"id"`
	Email string `gorm:"unique;not null" json:"email"`
	// Phone is optional; uniqueness is enforced when present.
	Phone *string `gorm:"uniqueIndex" json:"phone,omitempty"`
	Name  string  `json:"name"`
	// PasswordHash is a non-functional placeholder for guest accounts;
	// guests cannot log in without going through a reset flow first.
	PasswordHash string    `json:"-"`
	Verified     bool      `json:"verified"`
	Guest        bool      `json:"guest"`
	Cart         Cart      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"cart,omitempty"`
	Orders       []Order   `gorm:"foreignKey:BuyerID" json:"orders,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
