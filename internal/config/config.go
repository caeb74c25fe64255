package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/MJE43/roulette-odds-go/internal/wheel"
)

type Config struct {
	HTTPAddr       string
	LogLevel       slog.Level
	LogFormat      string
	DefaultWheel   wheel.Type
	RequestTimeout time.Duration
	CORSOrigin     string
}

// Load reads the environment, after applying envFiles (default ".env") when they exist.
// Variables already set in the environment win over file values.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	c := Config{
		HTTPAddr:       envOr("HTTP_ADDR", ":8080"),
		CORSOrigin:     envOr("CORS_ORIGIN", "*"),
		RequestTimeout: 30 * time.Second,
	}

	if v := os.Getenv("REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid REQUEST_TIMEOUT %q: %w", v, err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("invalid REQUEST_TIMEOUT %q: must be positive", v)
		}
		c.RequestTimeout = d
	}

	level, err := parseLogLevel(envOr("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, err
	}
	c.LogLevel = level

	format, err := parseLogFormat(envOr("LOG_FORMAT", "json"))
	if err != nil {
		return Config{}, err
	}
	c.LogFormat = format

	w, err := wheel.ParseType(envOr("DEFAULT_WHEEL", string(wheel.European)))
	if err != nil {
		return Config{}, fmt.Errorf("invalid DEFAULT_WHEEL: %w", err)
	}
	c.DefaultWheel = w

	return c, nil
}

// NewLogger builds the process logger for c.
func (c Config) NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if c.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
}

func parseLogFormat(s string) (string, error) {
	switch f := strings.ToLower(s); f {
	case "json", "text":
		return f, nil
	default:
		return "", fmt.Errorf("invalid LOG_FORMAT %q", s)
	}
}
