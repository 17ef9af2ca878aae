package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"resonate/internal/canonical"
	"resonate/internal/pipeline"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains the directory layout.
type Paths struct {
	// MusicDir is the canonical Artist/Album/Title.ext library tree.
	MusicDir string `toml:"music_dir"`
	// PlaylistsDir holds the streaming-service CSV exports.
	PlaylistsDir string `toml:"playlists_dir"`
	// StagingDir is the dropbox for new downloads awaiting ingestion.
	StagingDir string `toml:"staging_dir"`
	// ReportsDir receives shopping-list and orphan CSV snapshots.
	ReportsDir string `toml:"reports_dir"`
	// ExportDir receives the device-ready .m3u8 playlists.
	ExportDir string `toml:"export_dir"`
	LogDir    string `toml:"log_dir"`
}

// Matching contains the join policy knobs.
type Matching struct {
	DurationToleranceMS int64    `toml:"duration_tolerance_ms"`
	ArtistSeparators    []string `toml:"artist_separators"`
}

// Canonical contains canonicalization ruleset configuration.
type Canonical struct {
	// StripNoise applies the versioned noise ruleset (feat/remaster/live
	// decorations). Disabling it compares folded text verbatim.
	StripNoise bool `toml:"strip_noise"`
}

// Ingest contains staging ingestion configuration.
type Ingest struct {
	// PlaylistDropbox is the staging subfolder whose per-playlist
	// children mirror the CSV exports.
	PlaylistDropbox string `toml:"playlist_dropbox"`
	// RemoveEmptyDirs prunes staging directories left empty after a
	// batch.
	RemoveEmptyDirs bool `toml:"remove_empty_dirs"`
}

// Logging contains log output configuration.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values.
type Config struct {
	Paths     Paths     `toml:"paths"`
	Matching  Matching  `toml:"matching"`
	Canonical Canonical `toml:"canonical"`
	Ingest    Ingest    `toml:"ingest"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/resonate/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded. The boolean reports whether a file
// was found; without one the defaults apply.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		if err := toml.NewDecoder(file).Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, pipeline.Wrap(pipeline.ErrConfiguration, "config", "normalize", resolvedPath, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, pipeline.Wrap(pipeline.ErrConfiguration, "config", "validate", resolvedPath, err)
	}
	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	return defaultPath, false, nil
}

// WriteSample writes the annotated sample configuration to path.
func WriteSample(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure config dir: %w", err)
	}
	return os.WriteFile(path, []byte(sampleConfig), 0o644)
}

// EnsureDirectories creates every configured directory that the pipeline
// writes into.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.MusicDir, c.Paths.StagingDir, c.Paths.ReportsDir, c.Paths.ExportDir, c.Paths.LogDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// Canonicalizer builds the canonicalizer the configuration asks for.
func (c *Config) Canonicalizer() *canonical.Canonicalizer {
	if c.Canonical.StripNoise {
		return canonical.Default()
	}
	return canonical.New(canonical.EmptyRuleset())
}

// MusicDirName returns the final path element of the music directory, used
// as the library folder reference inside exported playlists.
func (c *Config) MusicDirName() string {
	return filepath.Base(c.Paths.MusicDir)
}

// LedgerPath returns the run-ledger database location.
func (c *Config) LedgerPath() string {
	return filepath.Join(c.Paths.LogDir, "runs.db")
}

// ExpandPath resolves a leading "~" against the user's home directory and
// makes the result absolute.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if path == "~" || len(path) >= 2 && path[0] == '~' && path[1] == '/' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if path == "~" {
			return home, nil
		}
		return filepath.Join(home, path[2:]), nil
	}
	return filepath.Abs(path)
}
