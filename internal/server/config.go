package server

import (
	"fmt"
	"strings"
	"time"

	"github.com/ironsheep/colorthief-mcp/internal/imaging"
	"github.com/ironsheep/colorthief-mcp/internal/mmcq"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvLogLevel      = "COLORTHIEF_MCP_LOG_LEVEL"
	EnvFetchTimeout  = "COLORTHIEF_MCP_FETCH_TIMEOUT"
	EnvFallbackColor = "COLORTHIEF_MCP_FALLBACK_COLOR"
)

// Config holds the server settings.
type Config struct {
	// Debug enables per-request logging on stderr.
	Debug bool

	// FetchTimeout bounds each URL download.
	FetchTimeout time.Duration

	// FallbackColor, when set, is returned by color_dominant instead of an
	// absent color. It never applies to palettes.
	FallbackColor *mmcq.Pixel
}

// DefaultConfig returns the settings used when no environment is set.
func DefaultConfig() Config {
	return Config{FetchTimeout: imaging.DefaultFetchTimeout}
}

// ConfigFromEnv builds a Config from environment variables looked up with
// getenv (os.Getenv in production).
func ConfigFromEnv(getenv func(string) string) (Config, error) {
	cfg := DefaultConfig()

	cfg.Debug = strings.EqualFold(getenv(EnvLogLevel), "debug")

	if v := getenv(EnvFetchTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvFetchTimeout, err)
		}
		if d <= 0 {
			return cfg, fmt.Errorf("%s: must be positive, got %s", EnvFetchTimeout, v)
		}
		cfg.FetchTimeout = d
	}

	if v := getenv(EnvFallbackColor); v != "" {
		p, err := imaging.ParseHexColor(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvFallbackColor, err)
		}
		cfg.FallbackColor = &p
	}

	return cfg, nil
}
