// Package config loads and persists photostamp's TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Nomadcxx/photostamp/internal/dateparse"
	"github.com/Nomadcxx/photostamp/internal/logging"
	"github.com/Nomadcxx/photostamp/internal/paths"
)

// Config is the full photostamp configuration.
type Config struct {
	Reference ReferenceConfig `mapstructure:"reference"`
	Stamp     StampConfig     `mapstructure:"stamp"`
	Options   OptionsConfig   `mapstructure:"options"`
	Logging   logging.Config  `mapstructure:"logging"`
}

// ReferenceConfig holds the birth date ages are measured against.
type ReferenceConfig struct {
	// BirthDate in YYYY-MM-DD form.
	BirthDate string `mapstructure:"birth_date"`
}

// StampConfig controls how labels are drawn.
type StampConfig struct {
	// Fonts is the ordered list of font files to try. CJK-capable fonts
	// must come first or age labels will not render.
	Fonts       []string `mapstructure:"fonts"`
	JPEGQuality int      `mapstructure:"jpeg_quality"`
}

// OptionsConfig contains general options.
type OptionsConfig struct {
	// OutputDir overrides the default <input>/output destination.
	OutputDir string `mapstructure:"output_dir"`
	// EXIFFallback reads the capture date from EXIF when the filename
	// carries none. Off by default: only filename dates are trusted.
	EXIFFallback bool `mapstructure:"exif_fallback"`
	// Overwrite re-stamps files already present in the output directory.
	Overwrite bool `mapstructure:"overwrite"`
}

// DefaultFontPaths lists well-known CJK-capable fonts across platforms,
// ending with Times New Roman as a latin-only last resort.
func DefaultFontPaths() []string {
	return []string{
		`C:\Windows\Fonts\msyh.ttc`,
		`C:\Windows\Fonts\msyh.ttf`,
		`C:\Windows\Fonts\simhei.ttf`,
		`C:\Windows\Fonts\simsun.ttc`,
		"/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc",
		"/usr/share/fonts/noto-cjk/NotoSansCJK-Regular.ttc",
		"/usr/share/fonts/truetype/wqy/wqy-microhei.ttc",
		"/System/Library/Fonts/PingFang.ttc",
		"/System/Library/Fonts/STHeiti Light.ttc",
		`C:\Windows\Fonts\times.ttf`,
	}
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Reference: ReferenceConfig{
			BirthDate: "2025-09-02",
		},
		Stamp: StampConfig{
			Fonts:       DefaultFontPaths(),
			JPEGQuality: 95,
		},
		Options: OptionsConfig{
			OutputDir:    "",
			EXIFFallback: false,
			Overwrite:    true,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load reads configuration from file, or returns defaults when the file
// does not exist. An empty path means the default location.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path == "" {
		var err error
		path, err = paths.ConfigPath()
		if err != nil {
			return nil, fmt.Errorf("unable to get config path: %w", err)
		}
	}
	v.SetConfigFile(path)

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("unable to read config file: %w", err)
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config: %w", err)
	}

	return cfg, nil
}

// ParseBirthDate parses the configured birth date.
func (c *Config) ParseBirthDate() (dateparse.Date, error) {
	t, err := time.Parse("2006-01-02", c.Reference.BirthDate)
	if err != nil {
		return dateparse.Date{}, fmt.Errorf("invalid birth_date %q (want YYYY-MM-DD)", c.Reference.BirthDate)
	}
	return dateparse.Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}, nil
}

// Save writes the configuration to the default location.
func (c *Config) Save() error {
	configFile, err := paths.ConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return fmt.Errorf("unable to create config dir: %w", err)
	}

	return os.WriteFile(configFile, []byte(c.ToTOML()), 0644)
}

// ConfigExists reports whether a config file is already present.
func ConfigExists() bool {
	path, err := paths.ConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// ToTOML renders the configuration as a commented TOML document.
func (c *Config) ToTOML() string {
	return fmt.Sprintf(`# photostamp configuration
# Generated by: photostamp config init

# ============================================================================
# REFERENCE DATE
# The birth date age labels are measured against.
# ============================================================================
[reference]
birth_date = "%s"

# ============================================================================
# STAMP APPEARANCE
# Fonts are tried in order; the first readable file wins. Keep a font with
# CJK glyphs first or age labels will render as boxes.
# ============================================================================
[stamp]
fonts = %s
jpeg_quality = %d

# ============================================================================
# GENERAL OPTIONS
# ============================================================================
[options]
# Where stamped copies go. Empty = an "output" folder inside the input dir.
output_dir = "%s"

# Read the capture date from EXIF when the filename has no date.
exif_fallback = %v

# Re-stamp photos already present in the output folder.
overwrite = %v

# ============================================================================
# LOGGING
# ============================================================================
[logging]
level = "%s"
file = "%s"
max_size_mb = %d
max_backups = %d
`,
		c.Reference.BirthDate,
		formatStringSlice(c.Stamp.Fonts),
		c.Stamp.JPEGQuality,
		c.Options.OutputDir,
		c.Options.EXIFFallback,
		c.Options.Overwrite,
		c.Logging.Level,
		c.Logging.File,
		c.Logging.MaxSizeMB,
		c.Logging.MaxBackups,
	)
}

func formatStringSlice(s []string) string {
	if len(s) == 0 {
		return "[]"
	}
	quoted := make([]string, len(s))
	for i, v := range s {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
