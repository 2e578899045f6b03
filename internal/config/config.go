package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string
	MySQLDSN   string
	RedisAddr  string
	RedisDB    int
	RedisPass  string
	JWTSecret  string

	// SMTP settings for order status notifications.
	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string
	// SMTPForceIPv4 dials the SMTP host over tcp4 only. Some hosting
	// providers hand out IPv6 routes that time out against Gmail.
	SMTPForceIPv4 bool
	// SMTPSkipTLSVerify relaxes certificate validation for networks with
	// intercepting proxies.
	SMTPSkipTLSVerify bool

	NotifyQueueSize int
	RateLimitRPS    float64
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		MySQLDSN:   getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/tambo?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:  getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:    getEnvInt("REDIS_DB", 0),
		RedisPass:  os.Getenv("REDIS_PASSWORD"),
		JWTSecret:  getEnv("JWT_SECRET", "change-me"),

		SMTPHost:          getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:          getEnvInt("SMTP_PORT", 587),
		SMTPUser:          os.Getenv("EMAIL_USER"),
		SMTPPass:          os.Getenv("EMAIL_PASS"),
		MailFrom:          getEnv("MAIL_FROM", "El Tambo Cañetano <noreply@eltambo.com>"),
		SMTPForceIPv4:     getEnvBool("SMTP_FORCE_IPV4", true),
		SMTPSkipTLSVerify: getEnvBool("SMTP_SKIP_TLS_VERIFY", true),

		NotifyQueueSize: getEnvInt("NOTIFY_QUEUE_SIZE", 64),
		RateLimitRPS:    float64(getEnvInt("RATE_LIMIT_RPS", 20)),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}
