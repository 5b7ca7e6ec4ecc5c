package checkoutControllers

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/junaidrashid-git/marketplace-api/apperrors"
	"github.com/junaidrashid-git/marketplace-api/models"
	"gorm.io/gorm"
)

// GuestUserID is the shared fallback account id for anonymous checkouts that
// carry no contact details at all.
const GuestUserID = "guest"

type ShippingAddressRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
}

// ResolveBuyer maps a checkout request onto a buyer account. Lookup order:
// explicit id, the well-known guest id, the shipping email, the shipping
// phone. Only when all of those miss is a placeholder account created, so
// repeated guest checkouts with the same contact details reuse one record.
func ResolveBuyer(db *gorm.DB, buyerID string, addr ShippingAddressRequest) (*models.User, error) {
	var user models.User

	if buyerID != "" {
		err := db.First(&user, "id = ?", buyerID).Error
		if err == nil {
			return &user, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Wrap(apperrors.KindInternal, "failed to look up buyer", err)
		}
	}

	if buyerID == GuestUserID || buyerID == "" {
		err := db.First(&user, "id = ?", GuestUserID).Error
		if err == nil && addr.Email == "" && addr.Phone == "" {
			return &user, nil
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Wrap(apperrors.KindInternal, "failed to look up guest account", err)
		}
	}

	if addr.Email != "" {
		err := db.First(&user, "email = ?", addr.Email).Error
		if err == nil {
			return &user, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Wrap(apperrors.KindInternal, "failed to look up buyer by email", err)
		}
	}

	if addr.Phone != "" {
		err := db.First(&user, "phone = ?", addr.Phone).Error
		if err == nil {
			return &user, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Wrap(apperrors.KindInternal, "failed to look up buyer by phone", err)
		}
	}

	return createGuestBuyer(db, addr)
}

func createGuestBuyer(db *gorm.DB, addr ShippingAddressRequest) (*models.User, error) {
	id := "guest_" + generateRandomString(16)

	email := addr.Email
	if email == "" {
		email = fmt.Sprintf("%s@guests.local", id)
	}

	guest := models.User{
		ID:    id,
		Email: email,
		Name:  addr.FirstName + " " + addr.LastName,
		// Random placeholder hash; not a usable credential.
		PasswordHash: generateRandomString(32),
		Verified:     false,
		Guest:        true,
	}
	if addr.Phone != "" {
		phone := addr.Phone
		guest.Phone = &phone
	}

	if err := db.Create(&guest).Error; err != nil {
		// Concurrent checkout with the same contact details may have won the
		// insert; reuse that record instead of failing the order.
		if addr.Email != "" {
			var existing models.User
			if lookupErr := db.First(&existing, "email = ?", addr.Email).Error; lookupErr == nil {
				return &existing, nil
			}
		}
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to create guest buyer", err)
	}
	return &guest, nil
}

func generateRandomString(n int) string {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		return "rand_guest"
	}
	return hex.EncodeToString(bytes)
}
