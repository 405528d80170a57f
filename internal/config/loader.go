package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata" // zone lookups work on hosts without zoneinfo

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix  = "EFFORTLOG_"
	envFileVar = "EFFORTLOG_CONFIG"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if EFFORTLOG_CONFIG is set
//  3. env (prefix EFFORTLOG_)
func Load(ctx context.Context) (*Config, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	base := New()

	k := koanf.New(".")

	if path := os.Getenv(envFileVar); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", ErrLoadConfig, path, err)
		}
	}

	// EFFORTLOG_SMTP_ADDR -> smtp_addr. Underscores are kept to match the
	// flat koanf tags.
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: reading environment: %v", ErrLoadConfig, err)
	}
	// The file pointer is not a setting.
	k.Delete("config")

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would otherwise fail late, after a write.
func (c *Config) Validate() error {
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("%w: timezone %q: %v", ErrInvalidConfig, c.Timezone, err)
	}
	if c.SMTPAddr != "" && !strings.Contains(c.SMTPAddr, ":") {
		return fmt.Errorf("%w: smtp_addr %q must be host:port", ErrInvalidConfig, c.SMTPAddr)
	}
	if c.SMTPAddr != "" && c.SMTPFrom == "" {
		return fmt.Errorf("%w: smtp_from must not be empty when smtp_addr is set", ErrInvalidConfig)
	}
	return nil
}

// Location returns the configured time zone. It falls back to UTC for a
// value that Validate would reject.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
