package export

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"resonate/internal/canonical"
	"resonate/internal/logging"
	"resonate/internal/match"
	"resonate/internal/pipeline"
)

// ExportedPlaylist reports one written playlist file.
type ExportedPlaylist struct {
	Name    string
	Path    string
	Written int
	// Skipped counts unresolved rows omitted from the file.
	Skipped int
}

// Exporter writes .m3u8 playlist files into the export directory.
type Exporter struct {
	dir string
	// musicDirName is the library folder name referenced from the
	// playlist files, e.g. "Music" yields "../Music/<relpath>" entries.
	musicDirName string
	logger       *slog.Logger
}

// NewExporter constructs an exporter targeting dir.
func NewExporter(dir, musicDirName string, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Exporter{dir: dir, musicDirName: musicDirName, logger: logger.With(logging.String(logging.FieldComponent, "export"))}
}

// WriteAll groups results by playlist and writes one file per playlist.
// Playlists with zero resolved rows still produce a file; an empty
// playlist on the device is more informative than a missing one.
func (e *Exporter) WriteAll(results []match.Result) ([]ExportedPlaylist, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return nil, pipeline.Wrap(pipeline.ErrEnvironment, "export", "ensure export dir", e.dir, err)
	}

	grouped := make(map[string][]match.Result)
	var order []string
	for _, result := range results {
		name := result.Row.PlaylistName
		if _, ok := grouped[name]; !ok {
			order = append(order, name)
		}
		grouped[name] = append(grouped[name], result)
	}
	sort.Strings(order)

	exports := make([]ExportedPlaylist, 0, len(order))
	for _, name := range order {
		export, err := e.WritePlaylist(name, grouped[name])
		if err != nil {
			return exports, err
		}
		exports = append(exports, export)
	}
	return exports, nil
}

// WritePlaylist writes one playlist. Rows order by Position ascending;
// rows without a position keep their relative input order after all
// positioned rows. Unresolved rows are counted and omitted.
func (e *Exporter) WritePlaylist(name string, results []match.Result) (ExportedPlaylist, error) {
	safeName := canonical.SafePathComponent(name, "Playlist")
	path := filepath.Join(e.dir, safeName+".m3u8")
	export := ExportedPlaylist{Name: name, Path: path}

	ordered := make([]match.Result, len(results))
	copy(ordered, results)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i].Row, ordered[j].Row
		if a.HasPosition() != b.HasPosition() {
			return a.HasPosition()
		}
		if !a.HasPosition() {
			return false
		}
		return a.Position < b.Position
	})

	file, err := os.Create(path)
	if err != nil {
		return export, pipeline.Wrap(pipeline.ErrEnvironment, "export", "create playlist", path, err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	fmt.Fprintln(w, "#EXTM3U")
	for _, result := range ordered {
		if !result.Resolved() {
			export.Skipped++
			continue
		}
		row := result.Row
		seconds := int64(-1)
		switch {
		case row.HasDuration():
			seconds = (row.DurationMS + 500) / 1000
		case result.LocalDurationMS > 0:
			seconds = (result.LocalDurationMS + 500) / 1000
		}
		artist := row.PrimaryArtistRaw
		if artist == "" {
			artist = "Unknown Artist"
		}
		fmt.Fprintf(w, "#EXTINF:%d,%s - %s\n", seconds, artist, row.TrackTitleRaw)
		fmt.Fprintf(w, "../%s/%s\n", e.musicDirName, strings.TrimPrefix(filepath.ToSlash(result.ResolvedPath), "/"))
		export.Written++
	}
	if err := w.Flush(); err != nil {
		return export, pipeline.Wrap(pipeline.ErrEnvironment, "export", "flush playlist", path, err)
	}
	if err := file.Close(); err != nil {
		return export, pipeline.Wrap(pipeline.ErrEnvironment, "export", "close playlist", path, err)
	}

	e.logger.Info("playlist exported",
		logging.String("playlist", name),
		logging.Int("written", export.Written),
		logging.Int("skipped", export.Skipped),
	)
	return export, nil
}
