package library

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"resonate/internal/canonical"
	"resonate/internal/logging"
	"resonate/internal/pipeline"
	"resonate/internal/tags"
)

// FileError pairs a scanned path with the reason it was left out of the
// index.
type FileError struct {
	RelPath string
	Err     error
}

// ScanReport summarizes one full library scan.
type ScanReport struct {
	FilesSeen int
	Indexed   int
	Skipped   []FileError
}

// Scanner walks the music root and builds the library index.
type Scanner struct {
	root   string
	reader tags.Reader
	canon  *canonical.Canonicalizer
	logger *slog.Logger
}

// NewScanner constructs a scanner rooted at the music directory.
func NewScanner(root string, reader tags.Reader, canon *canonical.Canonicalizer, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Scanner{root: root, reader: reader, canon: canon, logger: logger.With(logging.String(logging.FieldComponent, "scanner"))}
}

// Scan reads every audio file under the root and returns the resulting
// index. Files whose metadata cannot produce a canonical key are skipped
// and reported; a missing root is an environmental error.
func (s *Scanner) Scan(ctx context.Context) (*Index, *ScanReport, error) {
	if _, err := os.Stat(s.root); err != nil {
		return nil, nil, pipeline.Wrap(pipeline.ErrEnvironment, "scanner", "stat music root", s.root, err)
	}

	report := &ScanReport{}
	var records []Record

	err := filepath.WalkDir(s.root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if entry.IsDir() || !tags.IsAudioPath(path) {
			return nil
		}
		report.FilesSeen++

		rel, relErr := filepath.Rel(s.root, path)
		if relErr != nil {
			rel = entry.Name()
		}

		reading := s.reader.Read(path)
		record, recErr := NewRecord(s.canon, rel, reading)
		if recErr != nil {
			report.Skipped = append(report.Skipped, FileError{RelPath: filepath.ToSlash(rel), Err: recErr})
			s.logger.Warn("skipping unindexable file",
				logging.String("path", rel),
				logging.Error(recErr),
			)
			return nil
		}
		records = append(records, record)
		return nil
	})
	if err != nil {
		return nil, nil, pipeline.Wrap(pipeline.ErrEnvironment, "scanner", "walk music root", s.root, err)
	}

	report.Indexed = len(records)
	s.logger.Info("library scan complete",
		logging.Int("files_seen", report.FilesSeen),
		logging.Int("indexed", report.Indexed),
		logging.Int("skipped", len(report.Skipped)),
	)
	return NewIndex(records), report, nil
}
