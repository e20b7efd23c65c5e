package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration values
type Config struct {
	Port        string
	Environment string
	LogLevel    string

	DatastoreDriver  string
	SupabaseURL      string
	SupabaseAnonKey  string
	DatabaseURL      string
	SubmissionsTable string
	HTTPTimeout      time.Duration

	RedisURL string

	RabbitMQURL        string
	FollowupExchange   string
	FollowupRoutingKey string

	StoriesDir string

	ResetDelay      time.Duration
	SessionTTL      time.Duration
	RateLimitSubmit int
	RateLimitWindow time.Duration
	AllowedOrigins  []string
	CookieSecure    bool
}

// LoadConfig reads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Port:               getEnv("PORT", "8080"),
		Environment:        getEnv("APP_ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		DatastoreDriver:    strings.ToLower(getEnv("DATASTORE_DRIVER", "supabase")),
		SupabaseURL:        os.Getenv("SUPABASE_URL"),
		SupabaseAnonKey:    os.Getenv("SUPABASE_ANON_KEY"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		SubmissionsTable:   getEnv("SUBMISSIONS_TABLE", "contact_form_submissions"),
		HTTPTimeout:        getEnvAsDuration("HTTP_TIMEOUT", 10*time.Second),
		RedisURL:           os.Getenv("REDIS_URL"),
		RabbitMQURL:        os.Getenv("RABBITMQ_URL"),
		FollowupExchange:   getEnv("FOLLOWUP_EXCHANGE", "rentaid.leads"),
		FollowupRoutingKey: getEnv("FOLLOWUP_ROUTING_KEY", "lead.created"),
		StoriesDir:         getEnv("STORIES_DIR", "data"),
		ResetDelay:         getEnvAsDuration("RESET_DELAY", 3*time.Second),
		SessionTTL:         getEnvAsDuration("SESSION_TTL", 30*time.Minute),
		RateLimitSubmit:    getEnvAsInt("RATE_LIMIT_SUBMIT", 5),
		RateLimitWindow:    getEnvAsDuration("RATE_LIMIT_WINDOW", time.Minute),
		AllowedOrigins:     getEnvAsList("ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		CookieSecure:       getEnvAsBool("COOKIE_SECURE", false),
	}
}

// IsProduction reports whether APP_ENV is production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

// getEnvAsDuration accepts Go durations ("3s") or plain milliseconds ("3000")
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if ms, err := strconv.Atoi(v); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvAsList(key string, fallback []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
