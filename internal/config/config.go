package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Product ProductConfig
	Reviews ReviewsConfig
	Browser BrowserConfig
	Session SessionConfig
	Server  ServerConfig
	Logging LoggingConfig
}

type ProductConfig struct {
	// MaxAttempts is total attempts including the first; kept low because
	// the caller is itself time-bounded.
	MaxAttempts int
	RetryDelay  time.Duration
}

type ReviewsConfig struct {
	MaxAttempts    int
	RetryDelay     time.Duration
	MaxPages       int
	SampleLimit    int
	RequestTimeout time.Duration
	InterPageMin   time.Duration
	InterPageMax   time.Duration
}

type BrowserConfig struct {
	Headless          bool
	NavigationTimeout time.Duration
	TitleWaitTimeout  time.Duration
}

type SessionConfig struct {
	UserAgents []string
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type LoggingConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	cfg := &Config{
		Product: ProductConfig{
			MaxAttempts: getIntOrDefault("PRODUCT_MAX_ATTEMPTS", 2),
			RetryDelay:  getDurationOrDefault("PRODUCT_RETRY_DELAY", 3*time.Second),
		},
		Reviews: ReviewsConfig{
			MaxAttempts:    getIntOrDefault("REVIEWS_MAX_ATTEMPTS", 3),
			RetryDelay:     getDurationOrDefault("REVIEWS_RETRY_DELAY", 2*time.Second),
			MaxPages:       getIntOrDefault("REVIEWS_MAX_PAGES", 3),
			SampleLimit:    getIntOrDefault("REVIEWS_SAMPLE_LIMIT", 25),
			RequestTimeout: getDurationOrDefault("REVIEWS_REQUEST_TIMEOUT", 30*time.Second),
			InterPageMin:   getDurationOrDefault("REVIEWS_INTER_PAGE_MIN", 500*time.Millisecond),
			InterPageMax:   getDurationOrDefault("REVIEWS_INTER_PAGE_MAX", 1500*time.Millisecond),
		},
		Browser: BrowserConfig{
			Headless:          getBoolOrDefault("BROWSER_HEADLESS", true),
			NavigationTimeout: getDurationOrDefault("BROWSER_NAVIGATION_TIMEOUT", 30*time.Second),
			TitleWaitTimeout:  getDurationOrDefault("BROWSER_TITLE_WAIT_TIMEOUT", 15*time.Second),
		},
		Session: SessionConfig{
			UserAgents: getStringSliceOrDefault("SESSION_USER_AGENTS", nil),
		},
		Server: ServerConfig{
			Port:            getEnvOrDefault("SERVER_PORT", "8080"),
			Host:            getEnvOrDefault("SERVER_HOST", "0.0.0.0"),
			ReadTimeout:     getDurationOrDefault("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getDurationOrDefault("SERVER_WRITE_TIMEOUT", 120*time.Second),
			ShutdownTimeout: getDurationOrDefault("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Logging: LoggingConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "text"),
		},
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Product.MaxAttempts < 1 {
		return fmt.Errorf("PRODUCT_MAX_ATTEMPTS must be at least 1")
	}

	if c.Reviews.MaxAttempts < 1 {
		return fmt.Errorf("REVIEWS_MAX_ATTEMPTS must be at least 1")
	}

	if c.Reviews.MaxPages < 1 {
		return fmt.Errorf("REVIEWS_MAX_PAGES must be at least 1")
	}

	if c.Reviews.SampleLimit < 1 {
		return fmt.Errorf("REVIEWS_SAMPLE_LIMIT must be at least 1")
	}

	if c.Reviews.InterPageMin > c.Reviews.InterPageMax {
		return fmt.Errorf("REVIEWS_INTER_PAGE_MIN cannot be greater than REVIEWS_INTER_PAGE_MAX")
	}

	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getStringSliceOrDefault(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}
