package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

const devSessionSecret = "devblog-insecure-session-secret"

type Config struct {
	AppURL     string
	ServerAddr string
	GinMode    string
	LogLevel   string

	// ContentDir replaces the embedded articles when set.
	ContentDir string
	// ContentWatch reloads ContentDir on change while serving.
	ContentWatch bool

	SessionSecret string

	ContactDelay      time.Duration
	ContactResetAfter time.Duration
	ContactRateRPS    float64
	ContactRateBurst  int
	ContactRateWindow time.Duration

	// RedisAddr switches contact rate limiting to a shared Redis counter.
	RedisAddr string
}

// Load reads .env (if present) and the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found or error loading it.")
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_URL", "http://localhost:8080")
	v.SetDefault("SERVER_ADDR", ":8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CONTENT_DIR", "")
	v.SetDefault("SESSION_SECRET", "")
	v.SetDefault("CONTACT_DELAY", "1s")
	v.SetDefault("CONTACT_RESET_AFTER", "3s")
	v.SetDefault("CONTACT_RATE_RPS", 0.2)
	v.SetDefault("CONTACT_RATE_BURST", 3)
	v.SetDefault("CONTACT_RATE_WINDOW", "1m")
	v.SetDefault("CONTENT_WATCH", false)
	v.SetDefault("REDIS_ADDR", "")

	delay, err := durationValue(v, "CONTACT_DELAY")
	if err != nil {
		return nil, err
	}
	resetAfter, err := durationValue(v, "CONTACT_RESET_AFTER")
	if err != nil {
		return nil, err
	}
	window, err := durationValue(v, "CONTACT_RATE_WINDOW")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		AppURL:            v.GetString("APP_URL"),
		ServerAddr:        v.GetString("SERVER_ADDR"),
		GinMode:           v.GetString("GIN_MODE"),
		LogLevel:          v.GetString("LOG_LEVEL"),
		ContentDir:        v.GetString("CONTENT_DIR"),
		ContentWatch:      v.GetBool("CONTENT_WATCH"),
		SessionSecret:     v.GetString("SESSION_SECRET"),
		ContactDelay:      delay,
		ContactResetAfter: resetAfter,
		ContactRateRPS:    v.GetFloat64("CONTACT_RATE_RPS"),
		ContactRateBurst:  v.GetInt("CONTACT_RATE_BURST"),
		ContactRateWindow: window,
		RedisAddr:         v.GetString("REDIS_ADDR"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// durationValue reads key as a duration. viper's GetDuration turns a typo
// into 0, so parse errors are returned instead.
func durationValue(v *viper.Viper, key string) (time.Duration, error) {
	d, err := cast.ToDurationE(v.Get(key))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

// Validate rejects values the server cannot run with and fills in the dev
// session secret when none is configured.
func (c *Config) Validate() error {
	if c.ServerAddr == "" {
		return fmt.Errorf("SERVER_ADDR must not be empty")
	}
	if c.ContactDelay < 0 {
		return fmt.Errorf("CONTACT_DELAY must not be negative, got %s", c.ContactDelay)
	}
	if c.ContactResetAfter < 0 {
		return fmt.Errorf("CONTACT_RESET_AFTER must not be negative, got %s", c.ContactResetAfter)
	}
	if c.ContactRateRPS <= 0 || c.ContactRateBurst <= 0 {
		return fmt.Errorf("CONTACT_RATE_RPS and CONTACT_RATE_BURST must be positive")
	}
	if c.RedisAddr != "" && c.ContactRateWindow < time.Second {
		return fmt.Errorf("CONTACT_RATE_WINDOW must be at least 1s with REDIS_ADDR, got %s", c.ContactRateWindow)
	}
	if c.ContentWatch && c.ContentDir == "" {
		return fmt.Errorf("CONTENT_WATCH needs CONTENT_DIR")
	}
	if c.SessionSecret == "" {
		c.SessionSecret = devSessionSecret
	}
	return nil
}

// UsingDevSecret reports whether sessions are signed with the built-in secret.
func (c *Config) UsingDevSecret() bool {
	return c.SessionSecret == devSessionSecret
}
