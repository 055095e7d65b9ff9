package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Nomadcxx/photostamp/internal/dateparse"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Reference.BirthDate != "2025-09-02" {
		t.Errorf("default birth_date = %q, want 2025-09-02", cfg.Reference.BirthDate)
	}
	if cfg.Stamp.JPEGQuality != 95 {
		t.Errorf("default jpeg_quality = %d, want 95", cfg.Stamp.JPEGQuality)
	}
	if cfg.Options.EXIFFallback {
		t.Error("exif_fallback should default to off")
	}
	if len(cfg.Stamp.Fonts) == 0 {
		t.Error("default font list is empty")
	}
}

func TestParseBirthDate(t *testing.T) {
	cfg := DefaultConfig()

	d, err := cfg.ParseBirthDate()
	if err != nil {
		t.Fatalf("ParseBirthDate() error = %v", err)
	}
	want := dateparse.Date{Year: 2025, Month: 9, Day: 2}
	if d != want {
		t.Errorf("ParseBirthDate() = %v, want %v", d, want)
	}

	cfg.Reference.BirthDate = "02/09/2025"
	if _, err := cfg.ParseBirthDate(); err == nil {
		t.Error("ParseBirthDate() accepted a malformed date")
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Reference.BirthDate != DefaultConfig().Reference.BirthDate {
		t.Errorf("Load() did not fall back to defaults")
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[reference]
birth_date = "2024-01-15"

[stamp]
jpeg_quality = 80

[options]
exif_fallback = true
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Reference.BirthDate != "2024-01-15" {
		t.Errorf("birth_date = %q, want override", cfg.Reference.BirthDate)
	}
	if cfg.Stamp.JPEGQuality != 80 {
		t.Errorf("jpeg_quality = %d, want 80", cfg.Stamp.JPEGQuality)
	}
	if !cfg.Options.EXIFFallback {
		t.Error("exif_fallback override not applied")
	}
	// Untouched keys keep their defaults.
	if len(cfg.Stamp.Fonts) == 0 {
		t.Error("fonts default lost on partial config")
	}
}

func TestToTOML_RoundTrips(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Reference.BirthDate = "2023-06-30"
	cfg.Options.OutputDir = "/tmp/stamped"

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(cfg.ToTOML()), 0644); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Reference.BirthDate != "2023-06-30" {
		t.Errorf("round-tripped birth_date = %q", loaded.Reference.BirthDate)
	}
	if loaded.Options.OutputDir != "/tmp/stamped" {
		t.Errorf("round-tripped output_dir = %q", loaded.Options.OutputDir)
	}
	if len(loaded.Stamp.Fonts) != len(cfg.Stamp.Fonts) {
		t.Errorf("round-tripped fonts = %d entries, want %d", len(loaded.Stamp.Fonts), len(cfg.Stamp.Fonts))
	}
}
