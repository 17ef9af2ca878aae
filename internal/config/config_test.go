package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Matching.DurationToleranceMS != 3000 {
		t.Fatalf("tolerance = %d", cfg.Matching.DurationToleranceMS)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, path, exists, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatal("reported a file that does not exist")
	}
	if path == "" {
		t.Fatal("expected resolved path")
	}
	if cfg.Logging.Format != "console" {
		t.Fatalf("format = %q", cfg.Logging.Format)
	}
}

func TestLoadParsesAndExpands(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
music_dir = "~/Tunes"

[matching]
duration_tolerance_ms = 5000
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("file not detected")
	}
	if cfg.Matching.DurationToleranceMS != 5000 {
		t.Fatalf("tolerance = %d", cfg.Matching.DurationToleranceMS)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("home: %v", err)
	}
	if cfg.Paths.MusicDir != filepath.Join(home, "Tunes") {
		t.Fatalf("music dir not expanded: %q", cfg.Paths.MusicDir)
	}
	// Untouched sections keep defaults.
	if cfg.Ingest.PlaylistDropbox != "To Playlist" {
		t.Fatalf("dropbox = %q", cfg.Ingest.PlaylistDropbox)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative tolerance", func(c *Config) { c.Matching.DurationToleranceMS = -1 }},
		{"bad format", func(c *Config) { c.Logging.Format = "yaml" }},
		{"bad level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"no music dir", func(c *Config) { c.Paths.MusicDir = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			if err := cfg.normalize(); err != nil {
				t.Fatalf("normalize: %v", err)
			}
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestWriteSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := WriteSample(path); err != nil {
		t.Fatalf("WriteSample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "duration_tolerance_ms") {
		t.Fatal("sample missing matching section")
	}

	// The sample must itself parse and validate.
	if _, _, _, err := Load(path); err != nil {
		t.Fatalf("sample does not load: %v", err)
	}
}

func TestCanonicalizerToggle(t *testing.T) {
	cfg := Default()
	with := cfg.Canonicalizer()
	if with.Text("Song (feat. X)") != "song" {
		t.Fatal("noise not stripped with default config")
	}
	cfg.Canonical.StripNoise = false
	without := cfg.Canonicalizer()
	if without.Text("Song (feat. X)") != "song feat x" {
		t.Fatal("noise stripped despite disabled ruleset")
	}
}
