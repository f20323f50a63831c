package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the full set of environment knobs for the storefront.
type Config struct {
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	RedisHost string
	RedisPort string

	AMQPURL      string
	AMQPExchange string

	JWTSecret string

	ImageStoreURL string

	PaymentGatewayURL   string
	PaymentGatewayToken string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	EmailFrom    string

	// PaymentWindow is how long a PENDING order may wait for payment
	// before the expiry sweep cancels it. Zero disables the sweep.
	PaymentWindow time.Duration

	// FreeStatusTransitions disables the order status transition table,
	// letting admins move an order between any two states.
	FreeStatusTransitions bool

	SeedOnBoot        bool
	SeedAdminEmail    string
	SeedAdminPassword string
	SeedAdminName     string
}

// Load reads the environment, merging in a .env file when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:                  getenv("PORT", "8080"),
		DBHost:                getenv("POSTGRES_HOST", "localhost"),
		DBPort:                getenv("POSTGRES_PORT", "5432"),
		DBUser:                getenv("POSTGRES_USER", "postgres"),
		DBPassword:            os.Getenv("POSTGRES_PASSWORD"),
		DBName:                getenv("POSTGRES_DB", "techstore"),
		DBSSLMode:             getenv("POSTGRES_SSLMODE", "disable"),
		RedisHost:             getenv("REDIS_HOST", "localhost"),
		RedisPort:             getenv("REDIS_PORT", "6379"),
		AMQPURL:               os.Getenv("RABBITMQ_URL"),
		AMQPExchange:          getenv("RABBITMQ_EXCHANGE", "store.events"),
		JWTSecret:             os.Getenv("JWT_SECRET"),
		ImageStoreURL:         os.Getenv("IMAGE_STORE_URL"),
		PaymentGatewayURL:     os.Getenv("PAYMENT_GATEWAY_URL"),
		PaymentGatewayToken:   os.Getenv("PAYMENT_GATEWAY_TOKEN"),
		SMTPHost:              os.Getenv("EMAIL_HOST"),
		SMTPPort:              getint("EMAIL_PORT", 587),
		SMTPUser:              os.Getenv("EMAIL_USER"),
		SMTPPassword:          os.Getenv("EMAIL_PASSWORD"),
		EmailFrom:             os.Getenv("EMAIL_FROM"),
		PaymentWindow:         getduration("ORDER_PAYMENT_WINDOW", 0),
		FreeStatusTransitions: getbool("ORDER_STATUS_FREE_TRANSITIONS"),
		SeedOnBoot:            getbool("SEED_ON_BOOT"),
		SeedAdminEmail:        getenv("SEED_ADMIN_EMAIL", "admin@techstore.local"),
		SeedAdminPassword:     os.Getenv("SEED_ADMIN_PASSWORD"),
		SeedAdminName:         getenv("SEED_ADMIN_NAME", "Administrator"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getint(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getbool(key string) bool {
	v, _ := strconv.ParseBool(os.Getenv(key))
	return v
}

func getduration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
