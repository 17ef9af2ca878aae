// Package ingest moves staged downloads into the canonical library tree.
//
// Each staged audio file is classified exactly once per run: moved into
// Artist/Album/Title.ext, or skipped with a reason a human can act on.
// Collisions never mutate either file; the batch reports both paths and
// leaves resolution to the operator. A file lock around the batch keeps two
// runs from racing over the same staging files, and applied moves are
// final: a failed run is resumed by running again, not rolled back.
package ingest
