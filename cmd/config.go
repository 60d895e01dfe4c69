package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"tracker/internal/pkg/errs"
)

// Defaults applied by LoadConfig when a variable is unset.
const (
	DefaultHTTPPort          = "8080"
	DefaultDBSslMode         = "disable"
	DefaultDispatchSchedule  = "*/10 * * * * *"
	DefaultDispatchBatchSize = 100
	DefaultLockTTL           = 10 * time.Second
	DefaultNtfyTopicPrefix   = "tracker"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// RedisAddr enables the per-component write lock. Empty disables it and
	// leaves concurrent writers to the optimistic version check.
	RedisAddr string
	LockTTL   time.Duration

	// NtfyURL is the ntfy server. Empty disables delivery; requests still
	// accumulate in the outbox.
	NtfyURL         string
	NtfyTopicPrefix string
	NtfyToken       string

	// LinkBaseURL prefixes the deep links carried by notifications.
	LinkBaseURL string

	DispatchSchedule  string
	DispatchBatchSize int
}

// LoadConfig reads the configuration through getenv, usually os.Getenv after
// the .env file was loaded.
func LoadConfig(getenv func(string) string) (Config, error) {
	value := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	cfg := Config{
		HTTPPort:         value("HTTP_PORT", DefaultHTTPPort),
		DBHost:           value("DB_HOST", ""),
		DBPort:           value("DB_PORT", "5432"),
		DBUser:           value("DB_USER", ""),
		DBPassword:       getenv("DB_PASSWORD"),
		DBName:           value("DB_NAME", ""),
		DBSslMode:        value("DB_SSLMODE", DefaultDBSslMode),
		RedisAddr:        value("REDIS_ADDR", ""),
		NtfyURL:          value("NTFY_URL", ""),
		NtfyTopicPrefix:  value("NTFY_TOPIC_PREFIX", DefaultNtfyTopicPrefix),
		NtfyToken:        value("NTFY_TOKEN", ""),
		LinkBaseURL:      value("LINK_BASE_URL", ""),
		DispatchSchedule: value("DISPATCH_SCHEDULE", DefaultDispatchSchedule),
	}

	var lockErr, batchErr error
	cfg.LockTTL, lockErr = parseDuration("LOCK_TTL", value("LOCK_TTL", ""), DefaultLockTTL)
	cfg.DispatchBatchSize, batchErr = parseInt("DISPATCH_BATCH_SIZE", value("DISPATCH_BATCH_SIZE", ""), DefaultDispatchBatchSize)

	if err := errors.Join(lockErr, batchErr); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings needed to reach the database.
func (c Config) Validate() error {
	var problems []error
	for name, v := range map[string]string{
		"DB_HOST": c.DBHost,
		"DB_USER": c.DBUser,
		"DB_NAME": c.DBName,
	} {
		if v == "" {
			problems = append(problems, errs.NewValueIsRequiredError(name))
		}
	}
	return errors.Join(problems...)
}

// DSN returns the postgres connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func parseDuration(name, raw string, fallback time.Duration) (time.Duration, error) {
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	if d <= 0 {
		return 0, errs.NewValueIsOutOfRangeError(name, d, time.Millisecond, time.Duration(1<<63-1))
	}
	return d, nil
}

func parseInt(name, raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return n, nil
}
