// Package match joins remote playlist rows against the local library index.
//
// Matching is per-row and local: each row gets exactly one resolution
// attempt against the candidates sharing its canonical key, gated by an
// optional duration tolerance. No global optimization is attempted; the
// policy is deliberately simple so every match decision can be explained
// from the row and its candidates alone, and re-running always reproduces
// the same answer.
package match
