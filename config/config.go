package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	Environment    string
	LogLevel       string
	DBUrl          string
	FrontendURL    string
	TrustedProxies []string
	SwaggerEnabled bool
	// Identity provider token verification
	JWTSecret string
	JWKSURL   string
	// SMTP Configuration
	SMTPHost       string
	SMTPPort       string
	SMTPUsername   string
	SMTPPassword   string
	SMTPFromEmail  string
	ContactEmailTo string
	// Redis Configuration
	RedisURL      string
	RedisPassword string
	// Object storage (S3 compatible)
	S3Endpoint        string
	S3Region          string
	S3Bucket          string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3PublicBaseURL   string
	S3PresignTTL      time.Duration
	// clamd address for upload scanning; empty disables it
	ClamAVAddr string
	// Task queue
	RabbitMQURL   string
	WorkerCount   int
	WorkerBacklog int
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitGlobalThreshold int
	// Plans & payments
	PlanFreeLimit         int
	PlanStarterLimit      int
	PlanProfessionalLimit int
	PlanDurationDays      int
	PaymentWebhookSecret  string
	// Views
	ViewDedupWindow time.Duration
	// Scheduler
	PlanReminderCron     string
	PlanReminderLeadDays int
}

func LoadConfig() (*Config, error) {
	// .env is only present locally
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		Environment:    getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "debug"),
		DBUrl:          getEnv("DATABASE_URL", ""),
		FrontendURL:    strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		TrustedProxies: getEnvList("TRUSTED_PROXIES", nil),
		SwaggerEnabled: getEnvBool("SWAGGER_ENABLED", true),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		JWKSURL:        getEnv("JWKS_URL", ""),
		// SMTP Configuration
		SMTPHost:       getEnv("SMTP_HOST", "smtp-relay.brevo.com"),
		SMTPPort:       getEnv("SMTP_PORT", "587"),
		SMTPUsername:   getEnv("SMTP_USERNAME", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		SMTPFromEmail:  getEnv("SMTP_FROM_EMAIL", "noreply@jobboard.local"),
		ContactEmailTo: getEnv("CONTACT_EMAIL_TO", "hello@jobboard.local"),
		// Redis Configuration
		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		// Object storage
		S3Endpoint:        getEnv("S3_ENDPOINT", ""),
		S3Region:          getEnv("S3_REGION", "us-east-1"),
		S3Bucket:          getEnv("S3_BUCKET", "jobboard-uploads"),
		S3AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
		S3PublicBaseURL:   strings.TrimRight(getEnv("S3_PUBLIC_BASE_URL", ""), "/"),
		S3PresignTTL:      getEnvDuration("S3_PRESIGN_TTL", 15*time.Minute),
		ClamAVAddr:        getEnv("CLAMAV_ADDR", ""),
		// Task queue
		RabbitMQURL:   getEnv("RABBITMQ_URL", ""),
		WorkerCount:   getEnvInt("WORKER_COUNT", 4),
		WorkerBacklog: getEnvInt("WORKER_BACKLOG", 256),
		// Rate Limiting Configuration
		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
		// Plans & payments
		PlanFreeLimit:         getEnvInt("PLAN_FREE_LIMIT", 5),
		PlanStarterLimit:      getEnvInt("PLAN_STARTER_LIMIT", 10),
		PlanProfessionalLimit: getEnvInt("PLAN_PROFESSIONAL_LIMIT", 50),
		PlanDurationDays:      getEnvInt("PLAN_DURATION_DAYS", 30),
		PaymentWebhookSecret:  getEnv("PAYMENT_WEBHOOK_SECRET", ""),
		// Views
		ViewDedupWindow: getEnvDuration("VIEW_DEDUP_WINDOW", time.Hour),
		// Scheduler
		PlanReminderCron:     getEnv("PLAN_REMINDER_CRON", "0 9 * * *"),
		PlanReminderLeadDays: getEnvInt("PLAN_REMINDER_LEAD_DAYS", 3),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}
	if cfg.RabbitMQURL == "" {
		log.Println("WARNING: RABBITMQ_URL not configured. Background tasks run in-process.")
	}
	if cfg.PaymentWebhookSecret == "" {
		log.Println("WARNING: PAYMENT_WEBHOOK_SECRET not configured. Payment webhooks will be rejected.")
	}

	return cfg, nil
}

// IsProduction reports whether the service runs with production settings
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// getEnvDuration accepts Go duration strings ("90s", "1h")
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

// getEnvList splits a comma separated variable, dropping empty entries
func getEnvList(key string, fallback []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
