// Package config loads and validates service configuration via Viper.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/pfrederiksen/abs-calendar/internal/calendar"
	"github.com/pfrederiksen/abs-calendar/internal/scraper"
)

// EnvPrefix namespaces environment overrides, e.g. ABS_CALENDAR_SERVER_PORT=9090
const EnvPrefix = "ABS_CALENDAR"

// Config captures all service configuration knobs loaded via Viper.
// It is loaded once at startup and passed by value.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Scraper  ScraperConfig  `mapstructure:"scraper"`
	Calendar CalendarConfig `mapstructure:"calendar"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig controls HTTP server behavior.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// ScraperConfig points the scraper at the upstream calendar.
type ScraperConfig struct {
	CalendarURL string `mapstructure:"calendar_url"`
	UserAgent   string `mapstructure:"user_agent"`
	// RequestTimeout of zero disables the upstream request timeout.
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// CalendarConfig holds the fixed properties of generated calendars.
type CalendarConfig struct {
	ProductID       string `mapstructure:"product_id"`
	Name            string `mapstructure:"name"`
	DefaultTimezone string `mapstructure:"default_timezone"`
	Filename        string `mapstructure:"filename"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool   `mapstructure:"development"`
	Level       string `mapstructure:"level"`
}

// Load builds a Config from a .env file, an optional config file and the
// environment. A missing .env file is not an error.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("scraper.calendar_url", scraper.CalendarURL)
	v.SetDefault("scraper.user_agent", scraper.UserAgent)
	v.SetDefault("scraper.request_timeout", "0s")
	v.SetDefault("calendar.product_id", calendar.DefaultProductID)
	v.SetDefault("calendar.name", calendar.DefaultName)
	v.SetDefault("calendar.default_timezone", calendar.DefaultTimezone)
	v.SetDefault("calendar.filename", calendar.DefaultFilename)
	v.SetDefault("logging.development", false)
	v.SetDefault("logging.level", "info")
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be > 0")
	}
	u, err := url.Parse(c.Scraper.CalendarURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("scraper.calendar_url must be an absolute URL")
	}
	if c.Scraper.RequestTimeout < 0 {
		return fmt.Errorf("scraper.request_timeout must be >= 0")
	}
	if c.Calendar.DefaultTimezone == calendar.AllDayDisabled {
		return nil
	}
	if _, err := time.LoadLocation(c.Calendar.DefaultTimezone); err != nil {
		return fmt.Errorf("calendar.default_timezone: %w", err)
	}
	return nil
}
