package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Backend base URL; everything the client calls lives under it.
	BaseURL     string
	HTTPTimeout time.Duration

	// BuyerID identifies the signed-in buyer. Passed explicitly to the
	// checkout pieces instead of being re-read from a shared slot.
	BuyerID int

	// CartStore picks the cart backend: "file" (default) or "redis".
	CartStore string
	CartFile  string
	RedisAddr string
}

func Load() Config {
	cfg := Config{
		BaseURL:     getenv("BASE_URL", "http://localhost:5000"),
		HTTPTimeout: parseDuration(getenv("HTTP_TIMEOUT", "10s"), 10*time.Second),
		BuyerID:     parseInt(getenv("BUYER_ID", "0"), 0),
		CartStore:   getenv("CART_STORE", "file"),
		CartFile:    getenv("CART_FILE", defaultCartFile()),
		RedisAddr:   getenv("REDIS_ADDR", "localhost:6379"),
	}
	return cfg
}

func defaultCartFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "cart.json"
	}
	return filepath.Join(dir, "storefront", "cart.json")
}

func getenv(k, def string) string {
	if v := os.Getenv(k); strings.TrimSpace(v) != "" {
		return v
	}
	return def
}

func parseDuration(v string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func parseInt(v string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return n
}
