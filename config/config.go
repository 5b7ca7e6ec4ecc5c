// Package config provides runtime configuration values for the service.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds configuration knobs for the HTTP server and the engine.
type Config struct {
	HTTPPort string

	// ShippingCents is the flat shipping cost added on top of line subtotals.
	ShippingCents int64

	// OrderNumberRetries bounds regeneration attempts on a uniqueness conflict.
	OrderNumberRetries int

	// CartRetention and CancelledOrderRetention are the sweeper windows.
	CartRetention           time.Duration
	CancelledOrderRetention time.Duration

	// SweepHour schedules the optional daily sweep (local time); -1 disables it.
	SweepHour int

	// Checkout rate limiting, counted per client IP.
	CheckoutRateLimit  int
	CheckoutRateWindow time.Duration
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func dayenv(key string, defDays int) time.Duration {
	return time.Duration(atoienv(key, defDays)) * 24 * time.Hour
}

// Load collects configuration from environment with defaults.
func Load() Config {
	return Config{
		HTTPPort:                getenv("PORT", "8080"),
		ShippingCents:           int64(atoienv("SHIPPING_CENTS", 500)),
		OrderNumberRetries:      atoienv("ORDER_NUMBER_RETRIES", 3),
		CartRetention:           dayenv("CART_RETENTION_DAYS", 30),
		CancelledOrderRetention: dayenv("CANCELLED_ORDER_RETENTION_DAYS", 90),
		SweepHour:               atoienv("SWEEP_HOUR", -1),
		CheckoutRateLimit:       atoienv("CHECKOUT_RATE_LIMIT", 30),
		CheckoutRateWindow:      time.Duration(atoienv("CHECKOUT_RATE_WINDOW_SEC", 60)) * time.Second,
	}
}
