package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// CasdoorConfig holds the Casdoor application the service authenticates against
type CasdoorConfig struct {
	Endpoint     string
	ClientID     string
	ClientSecret string
	Cert         string
	Organization string
	Application  string
}

// KafkaConfig holds event broker settings. With no brokers the service
// publishes to an in-process channel instead.
type KafkaConfig struct {
	Brokers     []string
	TopicPrefix string
}

// Enabled reports whether a Kafka broker is configured
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	DatabaseURL string
	RedisURL    string

	Casdoor CasdoorConfig
	Kafka   KafkaConfig

	// Coursework dashboard
	UpcomingWindow time.Duration

	// Item analysis
	AnalysisCacheTTL time.Duration
}

// LoadConfig reads configuration from the environment, loading a .env file
// first when one exists. Variables already set in the environment win.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getenvDefault("PORT", "8080"),
		Environment: getenvDefault("ENVIRONMENT", "development"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
		Casdoor: CasdoorConfig{
			Endpoint:     os.Getenv("CASDOOR_ENDPOINT"),
			ClientID:     os.Getenv("CASDOOR_CLIENT_ID"),
			ClientSecret: os.Getenv("CASDOOR_CLIENT_SECRET"),
			Cert:         os.Getenv("CASDOOR_CERT"),
			Organization: os.Getenv("CASDOOR_ORGANIZATION"),
			Application:  os.Getenv("CASDOOR_APPLICATION"),
		},
		Kafka: KafkaConfig{
			Brokers:     splitList(os.Getenv("KAFKA_BROKERS")),
			TopicPrefix: getenvDefault("KAFKA_TOPIC_PREFIX", "coursework."),
		},
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("config: required environment variable DATABASE_URL is not set")
	}

	var err error
	if cfg.LogLevel, err = parseLevel(getenvDefault("LOG_LEVEL", "info")); err != nil {
		return nil, err
	}
	if cfg.UpcomingWindow, err = getDuration("UPCOMING_WINDOW", 7*24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.AnalysisCacheTTL, err = getDuration("ANALYSIS_CACHE_TTL", 5*time.Minute); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}

func getDuration(k string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q is not a valid duration: %w", k, v, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("config: %s must be positive, got %s", k, d)
	}
	return d, nil
}

func parseLevel(v string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(v)); err != nil {
		return 0, fmt.Errorf("config: LOG_LEVEL=%q is not a valid level: %w", v, err)
	}
	return level, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
