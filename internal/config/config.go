// Package config loads effortlog settings from defaults, an optional YAML
// file and EFFORTLOG_* environment variables.
package config

import (
	"errors"
	"log/slog"
	"strings"
)

var (
	// ErrInvalidConfig wraps every Validate failure.
	ErrInvalidConfig = errors.New("invalid effortlog config")
	// ErrLoadConfig wraps failures reading the config file or environment.
	ErrLoadConfig = errors.New("loading effortlog config")
)

// Config contains process configuration.
type Config struct {
	// DBPath is the SQLite file. ":memory:" keeps everything in process.
	DBPath string `koanf:"db_path"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogUseCases writes one service_use_case line per service call to stderr.
	LogUseCases bool `koanf:"log_use_cases"`

	// Timezone is the IANA zone of the wall clock used for the Friday
	// summary check, e.g. "Asia/Kolkata".
	Timezone string `koanf:"timezone"`

	// ActingUser is the default user id recorded as updated-by on writes.
	ActingUser string `koanf:"acting_user"`

	// NotifyLog logs every notification to stderr.
	NotifyLog bool `koanf:"notify_log"`

	// SMTP settings. Email is disabled unless SMTPAddr and SMTPTo are set.
	SMTPAddr     string `koanf:"smtp_addr"`
	SMTPFrom     string `koanf:"smtp_from"`
	SMTPTo       string `koanf:"smtp_to"`
	SMTPUsername string `koanf:"smtp_username"`
	SMTPPassword string `koanf:"smtp_password"`

	// MetricsTextfile, when set, receives a Prometheus textfile on exit.
	MetricsTextfile string `koanf:"metrics_textfile"`
}

// New returns a Config populated with defaults. DBPath stays empty so the
// caller can derive it from the home directory.
func New() *Config {
	return &Config{
		LogLevel:  "info",
		Timezone:  "UTC",
		NotifyLog: true,
		SMTPFrom:  "effortlog@localhost",
	}
}

// Recipients splits SMTPTo on commas, dropping blanks.
func (c *Config) Recipients() []string {
	var out []string
	for _, addr := range strings.Split(c.SMTPTo, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

// EmailEnabled reports whether enough SMTP settings are present to send mail.
func (c *Config) EmailEnabled() bool {
	return c.SMTPAddr != "" && len(c.Recipients()) > 0
}

// SlogLevel maps LogLevel onto a slog level. Unknown values fall back to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
