package remote

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"resonate/internal/canonical"
	"resonate/internal/logging"
	"resonate/internal/pipeline"
)

// Export column names as written by the playlist export tool.
const (
	colTrackName = "Track Name"
	colArtists   = "Artist Name(s)"
	colAlbumName = "Album Name"
	colDuration  = "Duration (ms)"
	colPosition  = "Position"
)

var requiredColumns = []string{colTrackName, colArtists, colAlbumName, colDuration}

// Loader reads playlist export CSVs into annotated rows.
type Loader struct {
	canon   *canonical.Canonicalizer
	artists ArtistPolicy
	logger  *slog.Logger
}

// NewLoader constructs a loader with the given canonicalizer and artist
// selection policy.
func NewLoader(canon *canonical.Canonicalizer, artists ArtistPolicy, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Loader{canon: canon, artists: artists, logger: logger.With(logging.String(logging.FieldComponent, "remote"))}
}

// LoadDir reads every *.csv in dir, in name order, and returns the combined
// row set. A malformed file (missing required columns, broken CSV framing)
// is structural and halts the load; a row whose title canonicalizes to
// nothing is likewise structural, because silently dropping it would skew
// every downstream aggregate.
func (l *Loader) LoadDir(dir string) ([]Row, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, pipeline.Wrap(pipeline.ErrEnvironment, "remote", "read playlists dir", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".csv") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var rows []Row
	for _, name := range names {
		fileRows, err := l.LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		rows = append(rows, fileRows...)
	}

	l.logger.Info("playlist exports loaded",
		logging.Int("playlists", len(names)),
		logging.Int("rows", len(rows)),
	)
	return rows, nil
}

// PlaylistNamesInDir lists the playlist names implied by the export files
// in dir, in name order, without parsing the files themselves.
func PlaylistNamesInDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, pipeline.Wrap(pipeline.ErrEnvironment, "remote", "read playlists dir", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".csv") {
			continue
		}
		names = append(names, PlaylistNameFromFile(entry.Name()))
	}
	sort.Strings(names)
	return names, nil
}

// LoadFile reads a single playlist export.
func (l *Loader) LoadFile(path string) ([]Row, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, pipeline.Wrap(pipeline.ErrEnvironment, "remote", "open export", path, err)
	}
	defer file.Close()

	playlist := PlaylistNameFromFile(filepath.Base(path))
	liked := IsLikedExport(playlist)
	top := IsTopSongsExport(playlist)

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, pipeline.Wrap(pipeline.ErrStructural, "remote", "read header", path, err)
	}
	columns, err := mapColumns(header)
	if err != nil {
		return nil, pipeline.Wrap(pipeline.ErrStructural, "remote", "map columns", path, err)
	}

	var rows []Row
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, pipeline.Wrap(pipeline.ErrStructural, "remote", "read row", fmt.Sprintf("%s line %d", path, line+1), err)
		}
		line++

		row, err := l.buildRow(columns, record, playlist, liked, top)
		if err != nil {
			return nil, pipeline.Wrap(pipeline.ErrStructural, "remote", "canonicalize row", fmt.Sprintf("%s line %d", path, line), err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

type columnMap map[string]int

func mapColumns(header []string) (columnMap, error) {
	columns := make(columnMap, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	var missing []string
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return columns, nil
}

func (c columnMap) value(record []string, name string) string {
	idx, ok := c[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func (l *Loader) buildRow(columns columnMap, record []string, playlist string, liked, top bool) (Row, error) {
	title := columns.value(record, colTrackName)
	artist := l.artists.Primary(columns.value(record, colArtists))

	key, err := l.canon.Key(artist, title)
	if err != nil {
		return Row{}, err
	}

	var duration int64
	if raw := columns.value(record, colDuration); raw != "" {
		if parsed, parseErr := strconv.ParseInt(raw, 10, 64); parseErr == nil && parsed > 0 {
			duration = parsed
		}
	}
	var position int
	if raw := columns.value(record, colPosition); raw != "" {
		if parsed, parseErr := strconv.Atoi(raw); parseErr == nil && parsed > 0 {
			position = parsed
		}
	}

	return Row{
		TrackTitleRaw:    title,
		PrimaryArtistRaw: artist,
		AlbumRaw:         columns.value(record, colAlbumName),
		DurationMS:       duration,
		PlaylistName:     playlist,
		Position:         position,
		IsLiked:          liked,
		IsTopSongs:       top,
		Key:              key,
	}, nil
}
