package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	MongoURI       string
	DBName         string
	Port           string
	JWTSecret      string
	AccessTokenTTL time.Duration
	AllowedOrigins []string

	StripeSecretKey     string
	StripeWebhookSecret string
	CheckoutSuccessURL  string
	CheckoutCancelURL   string

	RazorpayKeyID     string
	RazorpayKeySecret string

	CloudinaryURL string
	UploadDir     string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = Config{
		MongoURI:       getEnvOrDefault("MONGO_URI", ""),
		DBName:         getEnvOrDefault("DB_NAME", "sambhai"),
		Port:           getEnvOrDefault("PORT", "8080"),
		JWTSecret:      getEnvOrDefault("JWT_SECRET", ""),
		AccessTokenTTL: getDurationEnv("ACCESS_TOKEN_TTL", 24, time.Hour),
		AllowedOrigins: getListEnv("ALLOWED_ORIGINS", []string{"http://localhost:5173"}),

		StripeSecretKey:     getEnvOrDefault("STRIPE_SECRET_KEY", ""),
		StripeWebhookSecret: getEnvOrDefault("STRIPE_WEBHOOK_SECRET", ""),
		CheckoutSuccessURL:  getEnvOrDefault("CHECKOUT_SUCCESS_URL", "http://localhost:5173/order-success"),
		CheckoutCancelURL:   getEnvOrDefault("CHECKOUT_CANCEL_URL", "http://localhost:5173/checkout"),

		RazorpayKeyID:     getEnvOrDefault("RAZORPAY_KEY_ID", ""),
		RazorpayKeySecret: getEnvOrDefault("RAZORPAY_KEY_SECRET", ""),

		CloudinaryURL: getEnvOrDefault("CLOUDINARY_URL", ""),
		UploadDir:     getEnvOrDefault("UPLOAD_DIR", "./public"),

		SMTPHost: getEnvOrDefault("SMTP_HOST", ""),
		SMTPPort: getIntEnv("SMTP_PORT", 587),
		SMTPUser: getEnvOrDefault("SMTP_USER", ""),
		SMTPPass: getEnvOrDefault("SMTP_PASS", ""),
		MailFrom: getEnvOrDefault("MAIL_FROM", ""),
	}

	if AppEnv.JWTSecret == "" {
		log.Println("[CONFIG] [WARN] JWT_SECRET is empty, issued tokens will not be secure")
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}

func getListEnv(key string, defaultValue []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
