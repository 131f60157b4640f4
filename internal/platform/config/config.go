package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// Session token policy. The refresh lifetime must always outlive the
	// access lifetime; the remember variant stretches the refresh window.
	AccessTokenDuration          time.Duration
	RefreshTokenDuration         time.Duration
	RememberRefreshTokenDuration time.Duration

	// OTP policy: codes older than this are rejected as mismatches.
	OTPExpiryDuration time.Duration

	// Cookie flags. Secure defaults on; disable only for local HTTP dev.
	CookieSecure bool

	CORSAllowedOrigins []string

	// Notification dispatch queue.
	AMQPURL         string
	NotifyQueueName string

	LoginRateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("ACCESS_TOKEN_DURATION", "5m")
	viper.SetDefault("REFRESH_TOKEN_DURATION", "24h")
	viper.SetDefault("REMEMBER_REFRESH_TOKEN_DURATION", "720h")
	viper.SetDefault("OTP_EXPIRY_DURATION", "5m")
	viper.SetDefault("COOKIE_SECURE", true)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("AMQP_URL", "")
	viper.SetDefault("NOTIFY_QUEUE_NAME", "notify.dispatch")
	viper.SetDefault("LOGIN_RATE_LIMIT", "5-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.AccessTokenDuration = parseDurationOr("ACCESS_TOKEN_DURATION", 5*time.Minute)
	cfg.RefreshTokenDuration = parseDurationOr("REFRESH_TOKEN_DURATION", 24*time.Hour)
	cfg.RememberRefreshTokenDuration = parseDurationOr("REMEMBER_REFRESH_TOKEN_DURATION", 720*time.Hour)
	cfg.OTPExpiryDuration = parseDurationOr("OTP_EXPIRY_DURATION", 5*time.Minute)

	if cfg.RefreshTokenDuration <= cfg.AccessTokenDuration {
		log.Printf("Warning: REFRESH_TOKEN_DURATION (%s) does not outlive ACCESS_TOKEN_DURATION (%s); falling back to 24h.\n",
			cfg.RefreshTokenDuration, cfg.AccessTokenDuration)
		cfg.RefreshTokenDuration = 24 * time.Hour
	}

	cfg.CookieSecure = viper.GetBool("COOKIE_SECURE")
	cfg.CORSAllowedOrigins = splitAndTrim(viper.GetString("CORS_ALLOWED_ORIGINS"))

	cfg.AMQPURL = viper.GetString("AMQP_URL")
	if cfg.AMQPURL == "" {
		log.Println("Warning: AMQP_URL not set. Notifications will only be logged.")
	}
	cfg.NotifyQueueName = viper.GetString("NOTIFY_QUEUE_NAME")
	cfg.LoginRateLimit = viper.GetString("LOGIN_RATE_LIMIT")

	return cfg, nil
}

func parseDurationOr(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		}
		return fallback
	}
	return d
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
