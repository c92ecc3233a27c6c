package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv   string
	LogLevel string

	HTTPPort int

	BackendURL     string
	BackendTimeout time.Duration

	SessionSecret string
	SessionTTL    time.Duration

	// empty means sessions and payments are kept in memory
	DatabaseURL string

	CORSOrigins []string

	MidtransServerKey   string
	StripeSecretKey     string
	StripeWebhookSecret string

	// optional: order confirmation mails and the registration email check
	ResendAPIKey        string
	MailFrom            string
	AbstractEmailAPIKey string

	CartFetchConcurrency int
}

func (c Config) Production() bool {
	return c.AppEnv == "prod" || c.AppEnv == "production"
}

// Load reads an optional .env file and then the environment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppEnv:               getEnv("APP_ENV", "dev"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		HTTPPort:             getEnvInt("HTTP_PORT", 8080),
		BackendURL:           getEnv("BACKEND_URL", "http://localhost:5000/api"),
		BackendTimeout:       getEnvDuration("BACKEND_TIMEOUT", 10*time.Second),
		SessionSecret:        getEnv("SESSION_SECRET", ""),
		SessionTTL:           time.Duration(getEnvInt("SESSION_TTL_HOURS", 24*7)) * time.Hour,
		DatabaseURL:          getEnv("DATABASE_URL", ""),
		CORSOrigins:          getEnvList("CORS_ORIGINS"),
		MidtransServerKey:    getEnv("MIDTRANS_SERVER_KEY", ""),
		StripeSecretKey:      getEnv("STRIPE_SECRET_KEY", ""),
		StripeWebhookSecret:  getEnv("STRIPE_WEBHOOK_SECRET", ""),
		ResendAPIKey:         getEnv("RESEND_API_KEY", ""),
		MailFrom:             getEnv("MAIL_FROM", "Storefront <onboarding@resend.dev>"),
		AbstractEmailAPIKey:  getEnv("ABSTRACT_EMAIL_API_KEY", ""),
		CartFetchConcurrency: getEnvInt("CART_FETCH_CONCURRENCY", 8),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
