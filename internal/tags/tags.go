package tags

import (
	"path/filepath"
	"strings"
)

// Reading holds the tag fields of one audio file. Empty strings mean the
// tag is absent; a zero DurationMS means the duration is unknown.
type Reading struct {
	Artist     string
	Title      string
	Album      string
	DurationMS int64
}

// HasDuration reports whether the file's duration could be determined.
func (r Reading) HasDuration() bool {
	return r.DurationMS > 0
}

// Reader extracts a Reading from an audio file. Implementations must not
// return errors for unreadable metadata; they return a zero Reading instead.
type Reader interface {
	Read(path string) Reading
}

// AudioExtensions lists the file suffixes treated as audio content during
// scans and staging ingestion.
var AudioExtensions = map[string]struct{}{
	".mp3":  {},
	".flac": {},
	".m4a":  {},
	".aac":  {},
	".ogg":  {},
	".opus": {},
	".wav":  {},
	".aiff": {},
}

// IsAudioPath reports whether path has a recognized audio extension.
func IsAudioPath(path string) bool {
	_, ok := AudioExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}
