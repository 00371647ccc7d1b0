package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr           string
	LogLevel           string
	LogFormat          string
	ShutdownTimeout    time.Duration
	CORSAllowedOrigins []string

	// Upstream lookup configuration.
	UserAgent        string
	GeocoderBaseURL  string
	GeocoderTimeout  time.Duration
	ElevationTimeout time.Duration
	RainfallTimeout  time.Duration
	AlertTimeout     time.Duration
	ReferenceYear    int

	// OpenAI advice configuration (advice disabled when the key is empty).
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAITimeout time.Duration

	// Kafka advisory publishing (disabled when no brokers are set).
	KafkaBrokers       []string
	KafkaAdvisoryTopic string
}

// AdviceEnabled reports whether the OpenAI advice endpoint can be served.
func (c *Config) AdviceEnabled() bool { return c.OpenAIAPIKey != "" }

// PublisherEnabled reports whether completed assessments are published to Kafka.
func (c *Config) PublisherEnabled() bool { return len(c.KafkaBrokers) > 0 }

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := envDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	geocoderTimeout, err := envDuration("GEOCODER_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	elevationTimeout, err := envDuration("ELEVATION_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	rainfallTimeout, err := envDuration("RAINFALL_TIMEOUT", 20*time.Second)
	if err != nil {
		return nil, err
	}
	alertTimeout, err := envDuration("ALERT_TIMEOUT", 8*time.Second)
	if err != nil {
		return nil, err
	}
	openAITimeout, err := envDuration("OPENAI_TIMEOUT", 20*time.Second)
	if err != nil {
		return nil, err
	}

	referenceYear, err := envInt("REFERENCE_YEAR", 2022)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:           envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:           envOrDefault("LOG_LEVEL", "info"),
		LogFormat:          envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:    shutdownTimeout,
		CORSAllowedOrigins: splitCommaList(envOrDefault("CORS_ALLOWED_ORIGINS", "*")),

		UserAgent:        envOrDefault("USER_AGENT", "aquaalert-backend/1.0"),
		GeocoderBaseURL:  envOrDefault("GEOCODER_BASE_URL", "https://nominatim.openstreetmap.org"),
		GeocoderTimeout:  geocoderTimeout,
		ElevationTimeout: elevationTimeout,
		RainfallTimeout:  rainfallTimeout,
		AlertTimeout:     alertTimeout,
		ReferenceYear:    referenceYear,

		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   envOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAITimeout: openAITimeout,

		KafkaBrokers:       splitCommaList(os.Getenv("KAFKA_BROKERS")),
		KafkaAdvisoryTopic: envOrDefault("KAFKA_ADVISORY_TOPIC", "flood-risk-assessments"),
	}

	if cfg.GeocoderBaseURL == "" {
		return nil, errors.New("GEOCODER_BASE_URL is required")
	}
	// Open-Meteo's archive starts in 1940; a future year would return an
	// empty series and skew every classification toward "no rain".
	if cfg.ReferenceYear < 1940 || cfg.ReferenceYear > time.Now().Year() {
		return nil, fmt.Errorf("REFERENCE_YEAR %d out of range", cfg.ReferenceYear)
	}
	if cfg.PublisherEnabled() && cfg.KafkaAdvisoryTopic == "" {
		return nil, errors.New("KAFKA_ADVISORY_TOPIC is required when KAFKA_BROKERS is set")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}

func envInt(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return n, nil
}

func splitCommaList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
