// Package export writes device-ready extended-M3U playlists from matched
// rows. Entries reference library files relative to the playlist directory
// so the exported tree stays valid when copied to a player alongside the
// music folder.
package export
