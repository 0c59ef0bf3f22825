// config/config.go - Environment-backed application configuration
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type SMTP struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

type Config struct {
	Port        string
	AppEnv      string
	DatabaseURL string
	CORSOrigins string

	JWTSecret      string
	AdminSecretKey string
	AdminEmail     string
	AdminPassword  string

	PaymentAmount   int
	PaymentCurrency string
	TeamMaxSize     int

	DuplicateCheckEnabled bool

	SMTP SMTP
}

// Load reads configuration from the environment. A .env file is honored when
// present but never required.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	var c Config
	c.Port = getEnv("PORT", "4000")
	c.AppEnv = getEnv("APP_ENV", "development")
	c.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	c.CORSOrigins = getEnv("CORS_ORIGINS", "http://localhost:5173")

	c.JWTSecret = strings.TrimSpace(os.Getenv("JWT_SECRET"))
	c.AdminSecretKey = strings.TrimSpace(os.Getenv("ADMIN_SECRET_KEY"))
	c.AdminEmail = getEnv("ADMIN_EMAIL", "admin@hackathon.local")
	c.AdminPassword = getEnv("ADMIN_PASSWORD", "")

	c.PaymentAmount = getEnvInt("PAYMENT_AMOUNT", 500)
	c.PaymentCurrency = getEnv("PAYMENT_CURRENCY", "INR")
	c.TeamMaxSize = getEnvInt("TEAM_MAX_SIZE", 4)
	c.DuplicateCheckEnabled = getEnvBool("DUPLICATE_CHECK_ENABLED", true)

	c.SMTP = SMTP{
		Host: getEnv("SMTP_HOST", "localhost"),
		Port: getEnvInt("SMTP_PORT", 1025),
		User: strings.TrimSpace(os.Getenv("SMTP_USER")),
		Pass: strings.TrimSpace(os.Getenv("SMTP_PASS")),
		From: getEnv("MAIL_FROM", "noreply@hackathon.local"),
	}

	if c.JWTSecret == "" {
		return c, fmt.Errorf("JWT_SECRET environment variable must be set. Generate one with: openssl rand -base64 64")
	}
	if len(c.JWTSecret) < 32 {
		return c, fmt.Errorf("JWT_SECRET must be at least 32 characters long")
	}
	if c.AdminSecretKey == "" {
		return c, fmt.Errorf("ADMIN_SECRET_KEY environment variable must be set")
	}
	if c.AppEnv == "production" && strings.Contains(c.CORSOrigins, "localhost") {
		log.Println("WARNING: CORS_ORIGINS not properly configured for production")
	}

	return c, nil
}

// Configured reports whether SMTP credentials are present. Without them the
// mailer logs messages instead of sending.
func (s SMTP) Configured() bool {
	return s.User != "" && s.Pass != ""
}

func getEnv(key, defaultVal string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	val := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	switch val {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}
