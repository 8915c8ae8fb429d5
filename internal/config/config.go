package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Collector info modes.
const (
	CollectorDefault    = "default"
	CollectorModern     = "modern"
	CollectorArtistOnly = "artist-only"
)

// Expansion symbol modes.
const (
	SymbolDisabled = "disabled"
	SymbolFont     = "font"
	SymbolSVG      = "svg"
)

// Output file types.
const (
	FiletypePNG = "png"
	FiletypePSD = "psd"
	FiletypeJPG = "jpg"
)

// Config represents the application configuration.
type Config struct {
	// Application paths and services
	App AppConfig `toml:"app"`

	// Render behavior
	Render RenderConfig `toml:"render"`
}

// AppConfig contains paths and service endpoints.
type AppConfig struct {
	ScryfallURL  string `toml:"scryfall_url"`  // Scryfall API base URL
	CacheTTL     string `toml:"cache_ttl"`     // Card cache TTL (e.g., "168h")
	TemplatesDir string `toml:"templates_dir"` // Template document folder
	ArtDir       string `toml:"art_dir"`       // Artwork input folder
	OutputDir    string `toml:"output_dir"`    // Rendered card output folder
	AssetsDir    string `toml:"assets_dir"`    // Fonts, symbols, watermarks
}

// RenderConfig contains per-render behavior settings.
type RenderConfig struct {
	RemoveFlavor       bool   `toml:"remove_flavor"`        // Drop flavor text
	RemoveReminder     bool   `toml:"remove_reminder"`      // Strip reminder text
	CollectorMode      string `toml:"collector_mode"`       // default, modern, artist-only
	SymbolMode         string `toml:"symbol_mode"`          // disabled, font, svg
	SymbolDefault      string `toml:"symbol_default"`       // Fallback expansion symbol code
	SymbolForceDefault bool   `toml:"symbol_force_default"` // Always use the fallback symbol
	SymbolStroke       int    `toml:"symbol_stroke"`        // Symbol outline width in pixels
	BorderColor        string `toml:"border_color"`         // black, white, silver, gold
	OutputFiletype     string `toml:"output_filetype"`      // png, psd, jpg
	OverwriteDuplicate bool   `toml:"overwrite_duplicate"`  // Replace existing renders
	SaveArtistName     bool   `toml:"save_artist_name"`     // Append artist to filename
	EnableWatermark    bool   `toml:"enable_watermark"`     // Render set watermark
	WatermarkOpacity   int    `toml:"watermark_opacity"`    // Watermark opacity (0-100)
	ImportScryfallScan bool   `toml:"import_scryfall_scan"` // Paste reference scan
	ExitEarly          bool   `toml:"exit_early"`           // Pause before save
	TestMode           bool   `toml:"test_mode"`            // Skip pauses, divert output
	VerticalFullart    bool   `toml:"vertical_fullart"`     // Prefer vertical framing
	GenerativeFill     bool   `toml:"generative_fill"`      // Extend art to fill frame
	FlavorDivider      bool   `toml:"flavor_divider"`       // Divider above flavor text
	Language           string `toml:"language"`             // Print language (e.g., "en")
	ColorLimitOverride int    `toml:"color_limit_override"` // Blend limit override (0 = template default)
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		App: AppConfig{
			ScryfallURL:  "https://api.scryfall.com",
			CacheTTL:     "168h",
			TemplatesDir: "templates",
			ArtDir:       "art",
			OutputDir:    "out",
			AssetsDir:    "assets",
		},
		Render: RenderConfig{
			RemoveFlavor:       false,
			RemoveReminder:     false,
			CollectorMode:      CollectorDefault,
			SymbolMode:         SymbolFont,
			SymbolDefault:      "MTG",
			SymbolForceDefault: false,
			SymbolStroke:       6,
			BorderColor:        "black",
			OutputFiletype:     FiletypePNG,
			OverwriteDuplicate: true,
			SaveArtistName:     false,
			EnableWatermark:    false,
			WatermarkOpacity:   40,
			ImportScryfallScan: false,
			ExitEarly:          false,
			TestMode:           false,
			VerticalFullart:    false,
			GenerativeFill:     false,
			FlavorDivider:      false,
			Language:           "en",
			ColorLimitOverride: 0,
		},
	}
}

// configPath returns the path to the configuration file.
func configPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".proxyforge")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}

	return filepath.Join(configDir, "config.toml"), nil
}

// Load loads the configuration from the default location. Returns default
// config if the file doesn't exist.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom loads the configuration from the given path. Returns default
// config if the file doesn't exist.
func LoadFrom(path string) (*Config, error) {
	// If file doesn't exist, return default config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	// Read file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// Parse TOML
	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return &config, nil
}

// Save saves the configuration to the default location.
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo saves the configuration to the given path.
func (c *Config) SaveTo(path string) error {
	// Marshal to TOML
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	// Validate cache TTL
	if _, err := time.ParseDuration(c.App.CacheTTL); err != nil {
		return fmt.Errorf("invalid cache TTL %q: %w", c.App.CacheTTL, err)
	}

	// Validate collector mode
	switch c.Render.CollectorMode {
	case CollectorDefault, CollectorModern, CollectorArtistOnly:
	default:
		return fmt.Errorf("invalid collector mode %q", c.Render.CollectorMode)
	}

	// Validate symbol mode
	switch c.Render.SymbolMode {
	case SymbolDisabled, SymbolFont, SymbolSVG:
	default:
		return fmt.Errorf("invalid symbol mode %q", c.Render.SymbolMode)
	}

	// Validate output filetype
	switch c.Render.OutputFiletype {
	case FiletypePNG, FiletypePSD, FiletypeJPG:
	default:
		return fmt.Errorf("invalid output filetype %q", c.Render.OutputFiletype)
	}

	// Validate watermark opacity
	if c.Render.WatermarkOpacity < 0 || c.Render.WatermarkOpacity > 100 {
		return fmt.Errorf("watermark opacity must be between 0 and 100: %d", c.Render.WatermarkOpacity)
	}

	// Validate color limit override
	if c.Render.ColorLimitOverride < 0 {
		return fmt.Errorf("color limit override cannot be negative: %d", c.Render.ColorLimitOverride)
	}

	// Validate language
	if c.Render.Language == "" {
		return fmt.Errorf("language cannot be empty")
	}

	return nil
}

// GetCacheTTL returns the cache TTL as a duration.
func (c *Config) GetCacheTTL() (time.Duration, error) {
	return time.ParseDuration(c.App.CacheTTL)
}
