package library

import (
	"encoding/csv"
	"os"
	"strconv"

	"resonate/internal/pipeline"
)

// snapshotHeader describes the columns of the index snapshot CSV.
var snapshotHeader = []string{
	"file_path", "artist_raw", "title_raw", "album_raw",
	"artist_canonical", "title_canonical", "duration_ms",
}

// WriteSnapshot persists the index to an auditable CSV. The snapshot is a
// byproduct for human inspection, never the source of truth: a rescan
// always rebuilds the index from the files themselves.
func WriteSnapshot(idx *Index, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return pipeline.Wrap(pipeline.ErrEnvironment, "library", "create snapshot", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(snapshotHeader); err != nil {
		return pipeline.Wrap(pipeline.ErrEnvironment, "library", "write snapshot header", path, err)
	}
	for _, rec := range idx.All() {
		duration := ""
		if rec.HasDuration() {
			duration = strconv.FormatInt(rec.DurationMS, 10)
		}
		row := []string{
			rec.RelPath, rec.ArtistRaw, rec.TitleRaw, rec.AlbumRaw,
			rec.Key.Artist, rec.Key.Title, duration,
		}
		if err := w.Write(row); err != nil {
			return pipeline.Wrap(pipeline.ErrEnvironment, "library", "write snapshot row", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return pipeline.Wrap(pipeline.ErrEnvironment, "library", "flush snapshot", path, err)
	}
	return file.Close()
}
