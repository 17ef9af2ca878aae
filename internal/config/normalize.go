package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeMatching()
	c.normalizeIngest()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.MusicDir, err = expandPath(c.Paths.MusicDir); err != nil {
		return fmt.Errorf("paths.music_dir: %w", err)
	}
	if c.Paths.PlaylistsDir, err = expandPath(c.Paths.PlaylistsDir); err != nil {
		return fmt.Errorf("paths.playlists_dir: %w", err)
	}
	if c.Paths.StagingDir, err = expandPath(c.Paths.StagingDir); err != nil {
		return fmt.Errorf("paths.staging_dir: %w", err)
	}
	if c.Paths.ReportsDir, err = expandPath(c.Paths.ReportsDir); err != nil {
		return fmt.Errorf("paths.reports_dir: %w", err)
	}
	if c.Paths.ExportDir, err = expandPath(c.Paths.ExportDir); err != nil {
		return fmt.Errorf("paths.export_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeMatching() {
	separators := make([]string, 0, len(c.Matching.ArtistSeparators))
	for _, sep := range c.Matching.ArtistSeparators {
		if sep != "" {
			separators = append(separators, sep)
		}
	}
	if len(separators) == 0 {
		separators = []string{",", ";"}
	}
	c.Matching.ArtistSeparators = separators
}

func (c *Config) normalizeIngest() {
	c.Ingest.PlaylistDropbox = strings.TrimSpace(c.Ingest.PlaylistDropbox)
	if c.Ingest.PlaylistDropbox == "" {
		c.Ingest.PlaylistDropbox = defaultPlaylistDropbox
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
