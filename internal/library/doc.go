// Package library builds and queries the in-memory index of local audio
// files.
//
// The index maps canonical (artist, title) keys to every file carrying that
// key; duplicate rips are preserved, not collapsed, because choosing among
// them is matcher and ingest policy. The index owns its records: it is
// rebuilt by a scan and never mutated piecemeal by other components.
package library
