package config

const (
	defaultMusicDir            = "~/Music"
	defaultPlaylistsDir        = "~/playlist_exports"
	defaultStagingDir          = "~/Add"
	defaultReportsDir          = "~/shopping_lists"
	defaultExportDir           = "~/Playlists"
	defaultLogDir              = "~/.local/share/resonate/logs"
	defaultDurationToleranceMS = 3000
	defaultPlaylistDropbox     = "To Playlist"
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			MusicDir:     defaultMusicDir,
			PlaylistsDir: defaultPlaylistsDir,
			StagingDir:   defaultStagingDir,
			ReportsDir:   defaultReportsDir,
			ExportDir:    defaultExportDir,
			LogDir:       defaultLogDir,
		},
		Matching: Matching{
			DurationToleranceMS: defaultDurationToleranceMS,
			ArtistSeparators:    []string{",", ";"},
		},
		Canonical: Canonical{
			StripNoise: true,
		},
		Ingest: Ingest{
			PlaylistDropbox: defaultPlaylistDropbox,
			RemoveEmptyDirs: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
