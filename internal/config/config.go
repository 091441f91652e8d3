package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the backend server configuration
type Config struct {
	Port        int
	APIKey      string // API key for admin endpoints
	LogLevel    string
	LogFormat   string
	Environment string

	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration

	// WSAllowedOrigins restricts the Origin header accepted by /ws; "*" allows any
	WSAllowedOrigins []string
	// TrustedProxies may set X-Forwarded-For for rate limiting
	TrustedProxies []string

	EventMaxRetries     int
	EventRetryDelay     time.Duration
	EventDeadLetterPath string

	ProfileCacheSize int
	ProfileCacheTTL  time.Duration
}

// NotifierConfig holds the terminal notifier client configuration
type NotifierConfig struct {
	Origin    string
	UserID    string
	Locale    string
	LogLevel  string
	LogFormat string

	DiscordToken     string
	DiscordChannelID string
}

// Load loads the server configuration from environment variables
func Load() (*Config, error) {
	// .env is optional, real env vars win
	_ = godotenv.Load()

	cfg := &Config{
		APIKey:              getEnv("API_KEY", ""),
		LogLevel:            strings.ToLower(getEnv("LOG_LEVEL", DefaultLogLevel)),
		LogFormat:           strings.ToLower(getEnv("LOG_FORMAT", DefaultLogFormat)),
		Environment:         getEnv("ENVIRONMENT", DefaultEnvironment),
		DBUser:              getEnv("DB_USER", "postgres"),
		DBPassword:          getEnv("DB_PASSWORD", "postgres"),
		DBHost:              getEnv("DB_HOST", "localhost"),
		DBPort:              getEnv("DB_PORT", "5432"),
		DBName:              getEnv("DB_NAME", DefaultDBName),
		DBMaxConns:          getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxConnIdleTime:   getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
		DBMaxConnLifetime:   getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
		WSAllowedOrigins:    splitList(getEnv("WS_ALLOWED_ORIGINS", DefaultAllowedOriginsAll)),
		TrustedProxies:      splitList(getEnv("TRUSTED_PROXIES", "")),
		EventMaxRetries:     getEnvAsInt("EVENT_MAX_RETRIES", DefaultEventMaxRetries),
		EventRetryDelay:     getEnvAsDuration("EVENT_RETRY_DELAY", DefaultEventRetryDelay),
		EventDeadLetterPath: getEnv("EVENT_DEADLETTER_PATH", DefaultEventDeadLetterPath),
		ProfileCacheSize:    getEnvAsInt("PROFILE_CACHE_SIZE", DefaultProfileCacheSize),
		ProfileCacheTTL:     getEnvAsDuration("PROFILE_CACHE_TTL", 5*time.Minute),
	}

	port, err := strconv.Atoi(getEnv("PORT", strconv.Itoa(DefaultPort)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgInvalidPort, err)
	}
	cfg.Port = port

	if cfg.APIKey == "" {
		return nil, errors.New(ErrMsgAPIKeyRequired)
	}
	if cfg.ProfileCacheSize <= 0 {
		return nil, errors.New(ErrMsgInvalidCacheSize)
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, errors.New(ErrMsgUnsupportedLogForm)
	}

	return cfg, nil
}

// LoadNotifier loads the notifier client configuration from environment variables
func LoadNotifier() (*NotifierConfig, error) {
	_ = godotenv.Load()

	cfg := &NotifierConfig{
		Origin:           getEnv("NOTIFIER_ORIGIN", DefaultNotifierOrigin),
		UserID:           getEnv("NOTIFIER_USER_ID", ""),
		Locale:           getEnv("NOTIFIER_LOCALE", DefaultNotifierLocale),
		LogLevel:         strings.ToLower(getEnv("LOG_LEVEL", DefaultLogLevel)),
		LogFormat:        strings.ToLower(getEnv("LOG_FORMAT", DefaultLogFormat)),
		DiscordToken:     getEnv("DISCORD_TOKEN", ""),
		DiscordChannelID: getEnv("DISCORD_NOTIFICATION_CHANNEL_ID", ""),
	}

	if cfg.UserID == "" {
		return nil, errors.New(ErrMsgNotifierUserID)
	}
	if cfg.DiscordToken != "" && cfg.DiscordChannelID == "" {
		return nil, errors.New(ErrMsgDiscordChannelID)
	}

	return cfg, nil
}

// DiscordEnabled reports whether toasts should be mirrored to Discord
func (c *NotifierConfig) DiscordEnabled() bool {
	return c.DiscordToken != "" && c.DiscordChannelID != ""
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
