package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	Env string // development, staging, production

	// Output files
	SignalPath   string
	CalendarPath string

	// Market snapshot
	Market MarketConfig

	// Impact window
	Window WindowConfig

	// Calendar feed
	Calendar CalendarConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// MarketConfig holds market snapshot fetcher configuration
type MarketConfig struct {
	BaseURL      string
	LookbackDays int
	Timeout      time.Duration
	RulesPath    string // per-instrument scoring rules (YAML)
}

// WindowConfig holds impact-window classifier configuration
type WindowConfig struct {
	StartHourUTC int // inclusive
	EndHourUTC   int // inclusive
	HorizonHours int
	Currency     string
	Impacts      []string
}

// CalendarConfig holds calendar fetcher configuration
type CalendarConfig struct {
	FeedURLs      []string // tried in order, first success wins
	SourceDelay   time.Duration
	Timeout       time.Duration
	EventBuffer   time.Duration // how long an event stays "live" after start
	LocalTimezone string        // feed-local timezone, normalized to UTC
	MergeHolidays bool
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Env: getEnv("ENV", "development"),

		SignalPath:   getEnv("SIGNAL_PATH", "macro_signal.csv"),
		CalendarPath: getEnv("CALENDAR_PATH", "news_calendar.csv"),

		Market: MarketConfig{
			BaseURL:      getEnv("MARKET_BASE_URL", "https://query1.finance.yahoo.com"),
			LookbackDays: getEnvAsInt("MARKET_LOOKBACK_DAYS", 5),
			Timeout:      getEnvAsDuration("MARKET_TIMEOUT", "20s"),
			RulesPath:    getEnv("SIGNAL_RULES_PATH", "config/macro_gold_v2.yaml"),
		},

		Window: WindowConfig{
			StartHourUTC: getEnvAsInt("WINDOW_START_HOUR_UTC", 12),
			EndHourUTC:   getEnvAsInt("WINDOW_END_HOUR_UTC", 15),
			HorizonHours: getEnvAsInt("WINDOW_HORIZON_HOURS", 6),
			Currency:     getEnv("WINDOW_CURRENCY", "USD"),
			Impacts:      getEnvAsList("WINDOW_IMPACTS", "High,Medium"),
		},

		Calendar: CalendarConfig{
			FeedURLs: getEnvAsList("CALENDAR_FEED_URLS",
				"https://nfs.faireconomy.media/ff_calendar_thisweek.xml"),
			SourceDelay:   getEnvAsDuration("CALENDAR_SOURCE_DELAY", "2s"),
			Timeout:       getEnvAsDuration("CALENDAR_TIMEOUT", "20s"),
			EventBuffer:   getEnvAsDuration("CALENDAR_EVENT_BUFFER", "30m"),
			LocalTimezone: getEnv("CALENDAR_LOCAL_TZ", "America/New_York"),
			MergeHolidays: getEnvAsBool("CALENDAR_MERGE_HOLIDAYS", true),
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.SignalPath == "" {
		return fmt.Errorf("SIGNAL_PATH is required")
	}
	if c.CalendarPath == "" {
		return fmt.Errorf("CALENDAR_PATH is required")
	}

	if c.Market.LookbackDays < 2 {
		return fmt.Errorf("MARKET_LOOKBACK_DAYS must be at least 2 (got %d)", c.Market.LookbackDays)
	}

	if c.Window.StartHourUTC < 0 || c.Window.StartHourUTC > 23 ||
		c.Window.EndHourUTC < 0 || c.Window.EndHourUTC > 23 {
		return fmt.Errorf("window hours must be within 0-23")
	}
	if c.Window.StartHourUTC > c.Window.EndHourUTC {
		return fmt.Errorf("WINDOW_START_HOUR_UTC must not be after WINDOW_END_HOUR_UTC")
	}
	if c.Window.HorizonHours < 0 {
		return fmt.Errorf("WINDOW_HORIZON_HOURS must not be negative")
	}

	if len(c.Calendar.FeedURLs) == 0 {
		return fmt.Errorf("CALENDAR_FEED_URLS is required")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}

func getEnvAsList(key string, defaultValue string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
