package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/heartmarshall/wudao-dict/internal/domain"
)

var (
	logLevels    = []string{"debug", "info", "warn", "warning", "error"}
	logFormats   = []string{"json", "text"}
	sourceModes  = []string{ModeOnline, ModeOffline, ModeAuto}
	outputFormat = []string{"terminal", "plain", "json", "yaml", "html"}
	colorModes   = []string{"auto", "always", "never"}
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically. Enumerated
// values are lowercased in place. All problems are reported together as a
// *domain.ValidationError.
func (c *Config) Validate() error {
	for _, v := range []*string{&c.Log.Level, &c.Log.Format, &c.Source.Mode, &c.Render.Format, &c.Render.Color} {
		*v = strings.ToLower(strings.TrimSpace(*v))
	}

	var errs []domain.FieldError
	add := func(field, format string, args ...any) {
		errs = append(errs, domain.FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
	}
	oneOf := func(field, value string, allowed []string) {
		if !slices.Contains(allowed, value) {
			add(field, "must be one of %s (got %q)", strings.Join(allowed, ", "), value)
		}
	}

	oneOf("log.level", c.Log.Level, logLevels)
	oneOf("log.format", c.Log.Format, logFormats)
	oneOf("source.mode", c.Source.Mode, sourceModes)
	oneOf("render.format", c.Render.Format, outputFormat)
	oneOf("render.color", c.Render.Color, colorModes)

	if c.Source.Mode == ModeOffline && c.Source.LocalPath == "" {
		add("source.local_path", "required when source.mode is offline")
	}
	if c.Source.Mode != ModeOffline && c.Source.BaseURL == "" {
		add("source.base_url", "required for online lookups")
	}
	if c.Source.Timeout <= 0 {
		add("source.timeout", "must be > 0 (got %v)", c.Source.Timeout)
	}

	if c.Lookup.MaxParallel < 1 {
		add("lookup.max_parallel", "must be >= 1 (got %d)", c.Lookup.MaxParallel)
	}
	if c.Lookup.Timeout <= 0 {
		add("lookup.timeout", "must be > 0 (got %v)", c.Lookup.Timeout)
	}

	if c.History.Enabled() {
		if c.History.MaxConns < 1 {
			add("history.max_conns", "must be >= 1 (got %d)", c.History.MaxConns)
		}
		if c.History.MinConns < 0 || c.History.MinConns > c.History.MaxConns {
			add("history.min_conns", "must be between 0 and max_conns (got %d)", c.History.MinConns)
		}
	}
	if c.History.ListLimit < 1 {
		add("history.list_limit", "must be >= 1 (got %d)", c.History.ListLimit)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		add("server.port", "must be in 1..65535 (got %d)", c.Server.Port)
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
