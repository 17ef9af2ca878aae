package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"resonate/internal/library"
	"resonate/internal/pipeline"
)

// TimestampFormat orders report file names lexicographically by generation
// time.
const TimestampFormat = "2006-01-02-15-04-05"

// MissingFileName returns the shopping-list file name for the given moment.
func MissingFileName(at time.Time) string {
	return fmt.Sprintf("shopping_list_%s.csv", at.Format(TimestampFormat))
}

// OrphansFileName returns the orphaned-tracks file name for the given
// moment.
func OrphansFileName(at time.Time) string {
	return fmt.Sprintf("orphaned_tracks_%s.csv", at.Format(TimestampFormat))
}

var missingHeader = []string{
	"Artist", "Title", "Album", "Duration_ms",
	"Playlists_Count", "Playlists", "Is_Liked", "Is_Top_Songs",
}

// WriteMissingCSV writes the shopping list into dir and returns the full
// path of the file it created.
func WriteMissingCSV(missing []MissingTrack, dir string, at time.Time) (string, error) {
	path := filepath.Join(dir, MissingFileName(at))
	rows := make([][]string, 0, len(missing))
	for _, track := range missing {
		duration := ""
		if track.DurationMS > 0 {
			duration = strconv.FormatInt(track.DurationMS, 10)
		}
		rows = append(rows, []string{
			track.Artist,
			track.Title,
			track.Album,
			duration,
			strconv.Itoa(track.PlaylistsCount),
			strings.Join(track.Playlists, "; "),
			strconv.FormatBool(track.IsLiked),
			strconv.FormatBool(track.IsTopSongs),
		})
	}
	if err := writeCSV(path, missingHeader, rows); err != nil {
		return "", err
	}
	return path, nil
}

var orphansHeader = []string{
	"Artist", "Title", "Album", "Duration_ms", "File_Path",
	"Artist_Canonical", "Title_Canonical",
}

// WriteOrphansCSV writes the orphaned-tracks report into dir and returns
// the full path of the file it created.
func WriteOrphansCSV(orphans []library.Record, dir string, at time.Time) (string, error) {
	path := filepath.Join(dir, OrphansFileName(at))
	rows := make([][]string, 0, len(orphans))
	for _, rec := range orphans {
		duration := ""
		if rec.HasDuration() {
			duration = strconv.FormatInt(rec.DurationMS, 10)
		}
		rows = append(rows, []string{
			rec.ArtistRaw,
			rec.TitleRaw,
			rec.AlbumRaw,
			duration,
			rec.RelPath,
			rec.Key.Artist,
			rec.Key.Title,
		})
	}
	if err := writeCSV(path, orphansHeader, rows); err != nil {
		return "", err
	}
	return path, nil
}

func writeCSV(path string, header []string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return pipeline.Wrap(pipeline.ErrEnvironment, "report", "create csv", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(header); err != nil {
		return pipeline.Wrap(pipeline.ErrEnvironment, "report", "write csv header", path, err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return pipeline.Wrap(pipeline.ErrEnvironment, "report", "write csv row", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return pipeline.Wrap(pipeline.ErrEnvironment, "report", "flush csv", path, err)
	}
	return file.Close()
}
