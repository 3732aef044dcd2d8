package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is the process configuration, read once at startup.
type Config struct {
	AppEnv string
	Port   string

	MaxSize        int
	DefaultSize    int
	DefaultMargin  int
	ImageMaxEdge   int
	ImageBudget    int
	UploadMaxBytes int64
}

// Load reads .env and .env.local when present, then the environment.
func Load() Config {
	// Missing env files are fine.
	_ = godotenv.Load(".env", ".env.local")
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() Config {
	c := Config{
		AppEnv:         getenv("APP_ENV", "production"),
		Port:           getenv("PORT", "8080"),
		MaxSize:        getenvInt("QR_MAX_SIZE", 2048),
		DefaultSize:    getenvInt("QR_DEFAULT_SIZE", 300),
		DefaultMargin:  getenvInt("QR_DEFAULT_MARGIN", 2),
		ImageMaxEdge:   getenvInt("IMAGE_MAX_EDGE", 48),
		ImageBudget:    getenvInt("IMAGE_BUDGET_BYTES", 1000),
		UploadMaxBytes: int64(getenvInt("UPLOAD_MAX_BYTES", 5<<20)),
	}
	if c.DefaultSize > c.MaxSize {
		c.DefaultSize = c.MaxSize
	}
	return c
}

func (c Config) Development() bool {
	return c.AppEnv == "development"
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i >= 0 {
			return i
		}
	}
	return def
}
