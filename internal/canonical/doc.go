// Package canonical turns messy track metadata into stable comparison keys.
//
// Remote playlist exports and local file tags spell the same track in
// different ways (diacritics, "(feat. ...)" decorations, remaster suffixes).
// The canonicalizer applies one normalization pipeline to both sides so the
// join between them is symmetric: fold to ASCII, strip noise decorations
// from a versioned ruleset, lowercase, and collapse punctuation.
//
// The package also produces filesystem-safe path components using the same
// folding, for laying files out as Artist/Album/Title.ext.
package canonical
