package ingest

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gofrs/flock"

	"resonate/internal/canonical"
	"resonate/internal/fileutil"
	"resonate/internal/library"
	"resonate/internal/logging"
	"resonate/internal/pipeline"
	"resonate/internal/tags"
)

// Status classifies the outcome of one staged file.
type Status string

const (
	StatusMoved                 Status = "moved"
	StatusSkippedExists         Status = "skipped_exists"
	StatusSkippedDuplicateTitle Status = "skipped_duplicate_title"
	StatusSkippedUnknownArtist  Status = "skipped_unknown_artist"
	StatusSkippedUnknownAlbum   Status = "skipped_unknown_album"
	StatusSkippedMissingTags    Status = "skipped_missing_tags"
	StatusErrorKey              Status = "error_key"
	StatusErrorMove             Status = "error_move"
)

// Action records what happened to one staged file. Source is relative to
// the staging root, Destination and Conflict relative to the music root;
// all three are slash-separated.
type Action struct {
	Source      string
	Destination string
	Conflict    string
	Playlist    string
	Artist      string
	Album       string
	Title       string
	Status      Status
	Detail      string
}

// Report summarizes one ingest batch.
type Report struct {
	Actions     []Action
	PerPlaylist map[string]int
	RemovedDirs []string
}

// Count returns how many actions finished with the given status.
func (r *Report) Count(status Status) int {
	n := 0
	for _, action := range r.Actions {
		if action.Status == status {
			n++
		}
	}
	return n
}

// Moved returns the destination paths of every successfully moved file.
func (r *Report) Moved() []string {
	var paths []string
	for _, action := range r.Actions {
		if action.Status == StatusMoved {
			paths = append(paths, action.Destination)
		}
	}
	return paths
}

// Options configures an Ingestor.
type Options struct {
	StagingRoot     string
	MusicRoot       string
	DropboxName     string
	RemoveEmptyDirs bool
	Reader          tags.Reader
	Canonicalizer   *canonical.Canonicalizer
	Logger          *slog.Logger
}

// Ingestor classifies staged audio files and moves accepted ones into the
// Artist/Album/Title layout of the music root.
type Ingestor struct {
	stagingRoot     string
	musicRoot       string
	dropboxName     string
	removeEmptyDirs bool
	reader          tags.Reader
	canon           *canonical.Canonicalizer
	logger          *slog.Logger

	// playlistNames maps sanitized dropbox folder names back to the
	// playlist names they were created for.
	playlistNames map[string]string
}

// NewIngestor constructs an ingestor from opts.
func NewIngestor(opts Options) *Ingestor {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	canon := opts.Canonicalizer
	if canon == nil {
		canon = canonical.Default()
	}
	return &Ingestor{
		stagingRoot:     opts.StagingRoot,
		musicRoot:       opts.MusicRoot,
		dropboxName:     opts.DropboxName,
		removeEmptyDirs: opts.RemoveEmptyDirs,
		reader:          opts.Reader,
		canon:           canon,
		logger:          logger.With(logging.String(logging.FieldComponent, "ingestor")),
		playlistNames:   make(map[string]string),
	}
}

// Run processes every staged audio file exactly once and returns the batch
// report. Applied moves are final; collisions and per-file errors are
// reported without touching either file. A second Run against the same
// staging root fails until the first releases the batch lock.
func (ing *Ingestor) Run(ctx context.Context) (*Report, error) {
	if id, ok := pipeline.RunIDFromContext(ctx); ok {
		ing.logger = ing.logger.With(logging.String("run_id", id))
	}

	report := &Report{PerPlaylist: make(map[string]int)}

	if _, err := os.Stat(ing.stagingRoot); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			ing.logger.Info("staging root absent, nothing to ingest",
				logging.String("path", ing.stagingRoot))
			return report, nil
		}
		return nil, pipeline.Wrap(pipeline.ErrEnvironment, "ingestor", "stat staging root", ing.stagingRoot, err)
	}

	lock := flock.New(filepath.Join(ing.stagingRoot, ".resonate.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, pipeline.Wrap(pipeline.ErrEnvironment, "ingestor", "acquire batch lock", lock.Path(), err)
	}
	if !locked {
		return nil, pipeline.Wrap(pipeline.ErrEnvironment, "ingestor", "acquire batch lock", "another ingest run holds the staging lock", nil)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	staged, err := ing.collectStaged()
	if err != nil {
		return nil, err
	}

	for _, rel := range staged {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return report, pipeline.Wrap(pipeline.ErrEnvironment, "ingestor", "process batch", "canceled between files", ctxErr)
		}
		report.Actions = append(report.Actions, ing.processFile(rel))
	}

	for _, action := range report.Actions {
		if action.Status == StatusMoved && action.Playlist != "" {
			report.PerPlaylist[action.Playlist]++
		}
	}

	if ing.removeEmptyDirs {
		removed, err := ing.pruneEmptyDirs()
		if err != nil {
			ing.logger.Warn("staging cleanup incomplete", logging.Error(err))
		}
		report.RemovedDirs = removed
	}

	ing.logger.Info("ingest batch complete",
		logging.Int("staged", len(staged)),
		logging.Int("moved", report.Count(StatusMoved)),
		logging.Int("skipped_exists", report.Count(StatusSkippedExists)),
		logging.Int("skipped_duplicate_title", report.Count(StatusSkippedDuplicateTitle)),
		logging.Int("errors", report.Count(StatusErrorKey)+report.Count(StatusErrorMove)),
	)
	return report, nil
}

// collectStaged returns the slash-separated relative paths of every staged
// audio file, sorted so batches replay in a stable order.
func (ing *Ingestor) collectStaged() ([]string, error) {
	var staged []string
	err := filepath.WalkDir(ing.stagingRoot, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !tags.IsAudioPath(path) {
			return nil
		}
		rel, relErr := filepath.Rel(ing.stagingRoot, path)
		if relErr != nil {
			return relErr
		}
		staged = append(staged, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, pipeline.Wrap(pipeline.ErrEnvironment, "ingestor", "walk staging root", ing.stagingRoot, err)
	}
	sort.Strings(staged)
	return staged, nil
}

func (ing *Ingestor) processFile(rel string) Action {
	action := Action{Source: rel, Playlist: ing.playlistFor(rel)}
	absSource := filepath.Join(ing.stagingRoot, filepath.FromSlash(rel))

	reading := ing.reader.Read(absSource)
	action.Artist = strings.TrimSpace(reading.Artist)
	action.Album = strings.TrimSpace(reading.Album)
	action.Title = strings.TrimSpace(reading.Title)

	// Files staged as Artist/Album/file.ext lend their path structure to
	// absent tags. Dropbox paths don't: those folders name playlists.
	if action.Playlist == "" {
		parts := strings.Split(rel, "/")
		if len(parts) >= 3 {
			if action.Artist == "" {
				action.Artist = strings.TrimSpace(parts[0])
			}
			if action.Album == "" {
				action.Album = strings.TrimSpace(parts[1])
			}
		}
	}
	if action.Title == "" {
		action.Title = library.TitleFromStem(rel)
	}

	switch {
	case action.Artist == "":
		action.Status = StatusSkippedUnknownArtist
		action.Detail = "no artist tag"
	case action.Album == "":
		action.Status = StatusSkippedUnknownAlbum
		action.Detail = "no album tag"
	case action.Title == "":
		action.Status = StatusSkippedMissingTags
		action.Detail = "no usable title"
	}
	if action.Status != "" {
		ing.logger.Warn("staged file skipped",
			logging.String("path", rel),
			logging.String("status", string(action.Status)),
		)
		return action
	}

	key, err := ing.canon.Key(action.Artist, action.Title)
	if err != nil {
		action.Status = StatusErrorKey
		action.Detail = err.Error()
		ing.logger.Warn("staged file has no canonical key",
			logging.String("path", rel),
			logging.Error(err),
		)
		return action
	}

	destDir := filepath.Join(
		canonical.SafePathComponent(action.Artist, "Unknown Artist"),
		canonical.SafePathComponent(action.Album, "Unknown Album"),
	)
	fileName := canonical.SafePathComponent(action.Title, "Untitled") + strings.ToLower(filepath.Ext(rel))
	action.Destination = filepath.ToSlash(filepath.Join(destDir, fileName))

	absDest := filepath.Join(ing.musicRoot, destDir, fileName)
	if _, statErr := os.Stat(absDest); statErr == nil {
		action.Status = StatusSkippedExists
		action.Conflict = action.Destination
		action.Detail = "destination already exists"
		return action
	}

	if conflict := ing.findTitleConflict(destDir, key); conflict != "" {
		action.Status = StatusSkippedDuplicateTitle
		action.Conflict = conflict
		action.Detail = "album folder already has this title"
		ing.logger.Warn("duplicate title in destination album",
			logging.String("source", rel),
			logging.String("existing", conflict),
		)
		return action
	}

	if err := fileutil.MoveFile(absSource, absDest); err != nil {
		action.Status = StatusErrorMove
		action.Detail = err.Error()
		ing.logger.Error("move failed",
			logging.String("source", rel),
			logging.String("destination", action.Destination),
			logging.Error(err),
		)
		return action
	}

	action.Status = StatusMoved
	ing.logger.Info("staged file moved",
		logging.String("source", rel),
		logging.String("destination", action.Destination),
	)
	return action
}

// findTitleConflict scans the destination album folder for an existing
// audio file whose stem canonicalizes to the same title. Stems go through
// the track-prefix trim so legacy files like "01 - Song Title.mp3" still
// collide with "Song Title.mp3".
func (ing *Ingestor) findTitleConflict(destDir string, key canonical.Key) string {
	entries, err := os.ReadDir(filepath.Join(ing.musicRoot, destDir))
	if err != nil {
		return ""
	}
	for _, entry := range entries {
		if entry.IsDir() || !tags.IsAudioPath(entry.Name()) {
			continue
		}
		existing := ing.canon.Text(library.TitleFromStem(entry.Name()))
		if existing != "" && existing == key.Title {
			return filepath.ToSlash(filepath.Join(destDir, entry.Name()))
		}
	}
	return ""
}

// playlistFor maps a staged path to the playlist its dropbox folder was
// created for, or "" when the file was staged outside any dropbox.
func (ing *Ingestor) playlistFor(rel string) string {
	if ing.dropboxName == "" {
		return ""
	}
	parts := strings.Split(rel, "/")
	if len(parts) < 3 || parts[0] != ing.dropboxName {
		return ""
	}
	if name, ok := ing.playlistNames[parts[1]]; ok {
		return name
	}
	return parts[1]
}

// pruneEmptyDirs removes directories left empty after the batch, deepest
// first. The staging root itself and the dropbox root survive so the next
// batch has somewhere to land.
func (ing *Ingestor) pruneEmptyDirs() ([]string, error) {
	var dirs []string
	err := filepath.WalkDir(ing.stagingRoot, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() || path == ing.stagingRoot {
			return nil
		}
		dirs = append(dirs, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Sort(sort.Reverse(sort.StringSlice(dirs)))

	keep := make(map[string]struct{})
	if ing.dropboxName != "" {
		dropboxRoot := filepath.Join(ing.stagingRoot, ing.dropboxName)
		keep[dropboxRoot] = struct{}{}
		for safe := range ing.playlistNames {
			keep[filepath.Join(dropboxRoot, safe)] = struct{}{}
		}
	}

	var removed []string
	for _, dir := range dirs {
		if _, ok := keep[dir]; ok {
			continue
		}
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			continue
		}
		if err := os.Remove(dir); err != nil {
			continue
		}
		rel, relErr := filepath.Rel(ing.stagingRoot, dir)
		if relErr != nil {
			rel = dir
		}
		removed = append(removed, filepath.ToSlash(rel))
	}
	sort.Strings(removed)
	return removed, nil
}
