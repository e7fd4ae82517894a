package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EmailProviderEmailJS = "emailjs"
	EmailProviderSMTP    = "smtp"
)

type Config struct {
	Port           string
	Environment    string
	AllowedOrigins []string
	LogLevel       string
	// Audit log file, stdout only when empty
	AuditLogFile string
	// Email delivery
	EmailProvider string
	EmailTimeout  time.Duration
	// EmailJS Configuration
	EmailJSBaseURL       string
	EmailJSServiceID     string
	EmailJSTemplateOwner string
	EmailJSTemplateUser  string
	EmailJSPublicKey     string
	EmailJSPrivateKey    string
	// SMTP Configuration
	SMTPHost       string
	SMTPPort       string
	SMTPUsername   string
	SMTPPassword   string
	SMTPFromEmail  string
	SMTPTLS        bool
	ContactEmailTo string
	// Redis Configuration
	RedisURL      string
	RedisPassword string
	// Rate Limiting Configuration
	RateLimitContact       int
	RateLimitWindowSeconds int
}

func LoadConfig() (*Config, error) {
	// .env is only present locally
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		Environment:    getEnv("APP_ENV", "development"),
		AllowedOrigins: getEnvList("ALLOWED_ORIGINS", []string{"http://localhost:5173", "http://localhost:3000"}),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AuditLogFile:   getEnv("AUDIT_LOG_FILE", ""),
		EmailProvider:  strings.ToLower(getEnv("EMAIL_PROVIDER", EmailProviderEmailJS)),
		EmailTimeout:   getEnvDuration("EMAIL_TIMEOUT", 10*time.Second),
		// EmailJS Configuration
		EmailJSBaseURL:       strings.TrimRight(getEnv("EMAILJS_BASE_URL", "https://api.emailjs.com"), "/"),
		EmailJSServiceID:     getEnv("EMAILJS_SERVICE_ID", ""),
		EmailJSTemplateOwner: getEnv("EMAILJS_TEMPLATE_OWNER", ""),
		EmailJSTemplateUser:  getEnv("EMAILJS_TEMPLATE_USER", ""),
		EmailJSPublicKey:     getEnv("EMAILJS_PUBLIC_KEY", ""),
		EmailJSPrivateKey:    getEnv("EMAILJS_PRIVATE_KEY", ""),
		// SMTP Configuration
		SMTPHost:       getEnv("SMTP_HOST", ""),
		SMTPPort:       getEnv("SMTP_PORT", "587"),
		SMTPUsername:   getEnv("SMTP_USERNAME", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		SMTPFromEmail:  getEnv("SMTP_FROM_EMAIL", ""),
		SMTPTLS:        getEnvBool("SMTP_TLS", false),
		ContactEmailTo: getEnv("CONTACT_EMAIL_TO", "info@taxproservices.in"),
		// Redis Configuration
		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		// Rate Limiting Configuration
		RateLimitContact:       getEnvInt("RATE_LIMIT_CONTACT", 5),         // 5 submissions per window
		RateLimitWindowSeconds: getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60), // 1 minute window
	}

	if cfg.SMTPFromEmail == "" {
		cfg.SMTPFromEmail = cfg.SMTPUsername
	}

	if cfg.EmailProvider != EmailProviderEmailJS && cfg.EmailProvider != EmailProviderSMTP {
		log.Printf("WARNING: unknown EMAIL_PROVIDER %q, falling back to %s", cfg.EmailProvider, EmailProviderEmailJS)
		cfg.EmailProvider = EmailProviderEmailJS
	}

	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

// IsProduction enables HSTS and secure cookies
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// RateLimitWindow returns the rate limit window as a duration
func (c *Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimitWindowSeconds) * time.Second
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

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
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
			out = append(out, strings.TrimRight(p, "/"))
		}
	}
	return out
}
