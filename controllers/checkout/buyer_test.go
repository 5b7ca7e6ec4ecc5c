package checkoutControllers

import (
	"testing"

	"github.com/junaidrashid-git/marketplace-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveBuyerByID(t *testing.T) {
	db := openTestDB(t)
	user := seedBuyer(t, db, "known-user")

	got, err := ResolveBuyer(db, user.ID, ShippingAddressRequest{})
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestResolveBuyerByEmail(t *testing.T) {
	db := openTestDB(t)
	user := seedBuyer(t, db, "email-user")

	got, err := ResolveBuyer(db, "", ShippingAddressRequest{Email: user.Email})
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestResolveBuyerByPhone(t *testing.T) {
	db := openTestDB(t)
	phone := "+15550100"
	user := models.User{ID: "phone-user", Email: "phone@buyers.test", Phone: &phone}
	require.NoError(t, db.Create(&user).Error)

	got, err := ResolveBuyer(db, "", ShippingAddressRequest{Phone: phone})
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestResolveBuyerCreatesGuest(t *testing.T) {
	db := openTestDB(t)

	got, err := ResolveBuyer(db, "", ShippingAddressRequest{
		FirstName: "New",
		LastName:  "Guest",
		Email:     "new.guest@example.com",
	})
	require.NoError(t, err)
	assert.True(t, got.Guest)
	assert.False(t, got.Verified)
	assert.Equal(t, "new.guest@example.com", got.Email)
	assert.NotEmpty(t, got.PasswordHash)
}

func TestResolveBuyerGuestIdempotent(t *testing.T) {
	db := openTestDB(t)

	addr := ShippingAddressRequest{FirstName: "Repeat", Email: "repeat@example.com"}
	first, err := ResolveBuyer(db, "", addr)
	require.NoError(t, err)
	second, err := ResolveBuyer(db, "", addr)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "repeated guest checkouts must reuse the buyer record")

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("email = ?", addr.Email).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestResolveBuyerUnknownIDFallsThrough(t *testing.T) {
	db := openTestDB(t)
	user := seedBuyer(t, db, "fallback-user")

	// A stale buyer id with a matching email still reaches the right account.
	got, err := ResolveBuyer(db, "gone-user", ShippingAddressRequest{Email: user.Email})
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestResolveBuyerWellKnownGuest(t *testing.T) {
	db := openTestDB(t)
	shared := models.User{ID: GuestUserID, Email: "guest@guests.local", Guest: true}
	require.NoError(t, db.Create(&shared).Error)

	// Contact-free anonymous checkout lands on the shared guest account.
	got, err := ResolveBuyer(db, "", ShippingAddressRequest{})
	require.NoError(t, err)
	assert.Equal(t, GuestUserID, got.ID)
}
