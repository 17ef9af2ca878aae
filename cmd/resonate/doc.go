// Command resonate reconciles a local music library against streaming
// playlist exports: it ingests staged downloads, scans the library,
// reports missing and orphaned tracks, and writes device-ready playlists.
package main
