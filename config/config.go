// file: config/config.go
package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds everything read from the environment. Load it once in main
// after godotenv has had a chance to populate os.Environ.
type Config struct {
	ListenAddr string

	MySQLDSN      string
	RedisAddr     string
	RedisPassword string

	// Razorpay credentials. Both must be present for the payment
	// subsystem to be considered configured.
	RazorpayKeyID     string
	RazorpayKeySecret string

	JWTSecret string

	// Fixed event-wide registration fee, in paise.
	RegistrationFeePaise int64
	Currency             string

	CORSOrigins []string
}

func Load() *Config {
	return &Config{
		ListenAddr:           getEnv("LISTEN_ADDR", ":8080"),
		MySQLDSN:             getEnv("MYSQL_DSN", "root:123456@tcp(localhost:3306)/gen201?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:            getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:        os.Getenv("REDIS_PASSWORD"),
		RazorpayKeyID:        os.Getenv("RAZORPAY_KEY_ID"),
		RazorpayKeySecret:    os.Getenv("RAZORPAY_KEY_SECRET"),
		JWTSecret:            getEnv("JWT_SECRET", "dev-secret-change-me"),
		RegistrationFeePaise: getEnvInt64("REGISTRATION_FEE_PAISE", 5000),
		Currency:             getEnv("PAYMENT_CURRENCY", "INR"),
		CORSOrigins:          splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000")),
	}
}

// PaymentConfigured reports whether both gateway credentials are set.
func (c *Config) PaymentConfigured() bool {
	return c.RazorpayKeyID != "" && c.RazorpayKeySecret != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
