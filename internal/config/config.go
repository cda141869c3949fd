// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Load(ctx) layers a YAML file and FINALS_* environment variables on top.
// - Validation failures wrap ErrInvalidConfig; source failures wrap ErrLoadConfig.
package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/okian/finals/internal/domain/narrate"
	"github.com/okian/finals/internal/domain/types"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// Locale is the BCP 47 tag used for display messages and entity ordering.
	Locale string `koanf:"locale"`

	// DefaultEntity and DefaultYear are the initial dashboard selections.
	DefaultEntity string `koanf:"default_entity"`
	DefaultYear   int    `koanf:"default_year"`

	// MapTitle overrides the localized choropleth title when set.
	MapTitle string `koanf:"map_title"`

	// ColorScale names the continuous color scale for the map, e.g. "Plasma".
	ColorScale string `koanf:"color_scale"`

	// MCPEnabled mounts the MCP streamable HTTP endpoint at MCPPath.
	MCPEnabled bool   `koanf:"mcp_enabled"`
	MCPPath    string `koanf:"mcp_path"`
}

// New creates a Config populated with defaults. Context is accepted first to
// follow the project-wide convention and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:      "info",
		LogFormat:     "text",
		Addr:          ":9080",
		Locale:        "en",
		DefaultEntity: "Brazil",
		DefaultYear:   2022,
		ColorScale:    "Plasma",
		MCPEnabled:    true,
		MCPPath:       "/mcp",
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if _, err := narrate.ParseLocale(c.Locale); err != nil {
		return fmt.Errorf("%w: locale %q: %w", ErrInvalidConfig, c.Locale, err)
	}
	if _, ok := types.ColorScale(c.ColorScale); !ok {
		return fmt.Errorf("%w: color_scale %q is not one of %s",
			ErrInvalidConfig, c.ColorScale, strings.Join(types.ColorScaleNames(), ", "))
	}
	if c.MCPEnabled && !strings.HasPrefix(c.MCPPath, "/") {
		return fmt.Errorf("%w: mcp_path must start with /", ErrInvalidConfig)
	}
	return nil
}
