// Package remote loads streaming-service playlist exports.
//
// Each CSV file under the playlists directory is one playlist snapshot; a
// row is one occurrence of a track inside that playlist, so the same track
// legitimately appears in several rows. File names carry meaning: the stem
// becomes the playlist name, the liked-songs export and the yearly
// top-songs exports set per-row flags used when ranking missing tracks.
package remote
