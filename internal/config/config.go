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

// Config holds runtime configuration parsed from environment variables.
type Config struct {
	HTTPAddr        string
	DatabaseURL     string
	DatabaseKey     string
	ShutdownTimeout time.Duration
	StoreTimeout    time.Duration

	Email EmailConfig
	Alert AlertConfig
	Log   LogConfig
}

type EmailConfig struct {
	Driver   string
	APIKey   string
	SMTPHost string
	SMTPPort int
	SMTPUser string
	Timeout  time.Duration
}

type AlertConfig struct {
	From     string
	To       string
	Cron     string
	Timezone string
}

type LogConfig struct {
	Mode string
	File string
}

// Load reads an optional .env file and then builds Config from the environment.
func Load(files ...string) Config {
	// a missing .env is normal outside local development
	_ = godotenv.Load(files...)
	return FromEnv()
}

// FromEnv builds Config with defaults, overridden by environment variables.
func FromEnv() Config {
	return Config{
		HTTPAddr:        ":" + envOrDefault("PORT", "3000"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		DatabaseKey:     os.Getenv("DATABASE_KEY"),
		ShutdownTimeout: envDuration("SHUTDOWN_TIMEOUT_SECONDS", 10*time.Second),
		StoreTimeout:    envDuration("STORE_TIMEOUT_SECONDS", 10*time.Second),
		Email: EmailConfig{
			Driver:   strings.ToLower(envOrDefault("EMAIL_DRIVER", "resend")),
			APIKey:   os.Getenv("EMAIL_API_KEY"),
			SMTPHost: os.Getenv("SMTP_HOST"),
			SMTPPort: envInt("SMTP_PORT", 587),
			SMTPUser: os.Getenv("SMTP_USER"),
			Timeout:  envDuration("EMAIL_TIMEOUT_SECONDS", 10*time.Second),
		},
		Alert: AlertConfig{
			From:     envOrDefault("ALERT_FROM", "onboarding@resend.dev"),
			To:       envOrDefault("ALERT_TO", "alerts@example.com"),
			Cron:     envOrDefault("ALERT_CRON", "0 8 * * *"),
			Timezone: os.Getenv("TIMEZONE"),
		},
		Log: LogConfig{
			Mode: envOrDefault("LOG_MODE", "development"),
			File: os.Getenv("LOG_FILE"),
		},
	}
}

// Validate checks the settings the API cannot start without.
func (c Config) Validate() error {
	var missing []string
	if c.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.DatabaseKey == "" {
		missing = append(missing, "DATABASE_KEY")
	}
	if c.Email.APIKey == "" {
		missing = append(missing, "EMAIL_API_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required settings: %s", strings.Join(missing, ", "))
	}
	switch c.Email.Driver {
	case "resend":
	case "smtp":
		if c.Email.SMTPHost == "" {
			return errors.New("SMTP_HOST is required when EMAIL_DRIVER=smtp")
		}
	default:
		return fmt.Errorf("unknown EMAIL_DRIVER %q", c.Email.Driver)
	}
	return nil
}

// Location resolves the alert timezone, falling back to the process local zone.
func (c AlertConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		seconds, err := strconv.Atoi(v)
		if err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return def
}
