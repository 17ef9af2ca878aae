package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"resonate/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.MusicDir = filepath.Join(base, "music")
	cfg.Paths.PlaylistsDir = filepath.Join(base, "playlists")
	cfg.Paths.StagingDir = filepath.Join(base, "staging")
	cfg.Paths.ReportsDir = filepath.Join(base, "reports")
	cfg.Paths.ExportDir = filepath.Join(base, "exports")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Logging.Format = "json"

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	if err := os.MkdirAll(cfg.Paths.PlaylistsDir, 0o755); err != nil {
		t.Fatalf("mkdir playlists dir: %v", err)
	}
	return &cfg
}

// WithDurationTolerance overrides the duration gate on the test config.
func WithDurationTolerance(ms int64) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Matching.DurationToleranceMS = ms
	}
}

// WithoutNoiseStripping disables the versioned noise ruleset so keys keep
// their parenthetical and dash suffixes.
func WithoutNoiseStripping() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Canonical.StripNoise = false
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.MusicDir)
}
