// Package tags reads artist/title/album/duration metadata from audio files.
//
// Readers never fail for unreadable metadata: a file with corrupt or absent
// tags yields an empty Reading and the caller falls back to path-derived
// values. This keeps a single bad download from aborting a library scan or
// staging batch.
package tags
