package canonical

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrEmptyKey reports raw text that normalizes to nothing. Callers must not
// treat an empty key as matchable; two empty keys matching each other would
// silently join unrelated records.
var ErrEmptyKey = errors.New("empty canonical key")

// Key is the normalized (artist, title) pair used to join remote playlist
// rows against local library records. Keys are plain comparable values;
// they are computed once and never mutated.
type Key struct {
	Artist string
	Title  string
}

// IsZero reports whether the key carries no normalized text at all.
func (k Key) IsZero() bool {
	return k.Artist == "" && k.Title == ""
}

func (k Key) String() string {
	return k.Artist + " | " + k.Title
}

var nonAlnumRun = regexp.MustCompile(`[^a-z0-9]+`)

// Canonicalizer normalizes raw metadata text under a fixed ruleset.
// The zero value is not usable; construct with New or Default.
type Canonicalizer struct {
	rules Ruleset
}

// New returns a canonicalizer bound to the given noise ruleset.
func New(rules Ruleset) *Canonicalizer {
	return &Canonicalizer{rules: rules}
}

// Default returns a canonicalizer with the built-in ruleset.
func Default() *Canonicalizer {
	return New(DefaultRuleset())
}

// RulesVersion returns the version tag of the active ruleset.
func (c *Canonicalizer) RulesVersion() string {
	return c.rules.Version
}

// Key canonicalizes an artist/title pair. A title that normalizes to the
// empty string is a structural error; an empty artist is tolerated because
// compilation rips legitimately omit it.
func (c *Canonicalizer) Key(rawArtist, rawTitle string) (Key, error) {
	title := c.Text(rawTitle)
	if title == "" {
		return Key{}, fmt.Errorf("%w: title %q", ErrEmptyKey, rawTitle)
	}
	return Key{Artist: c.Text(rawArtist), Title: title}, nil
}

// Text applies the canonicalization pipeline to a single field: fold
// diacritics to ASCII, strip ruleset noise, lowercase, replace runs of
// anything non-alphanumeric with a single space, and trim. The function is
// idempotent: Text(Text(s)) == Text(s).
func (c *Canonicalizer) Text(value string) string {
	value = foldASCII(value)
	value = c.rules.strip(value)
	value = strings.ToLower(value)
	value = nonAlnumRun.ReplaceAllString(value, " ")
	return strings.TrimSpace(value)
}

// foldTransformer decomposes characters and drops combining marks, turning
// "Beyoncé" into "Beyonce". Runes with no ASCII decomposition pass through
// and are later collapsed to spaces by the non-alphanumeric pass.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func foldASCII(value string) string {
	folded, _, err := transform.String(foldTransformer, value)
	if err != nil {
		return value
	}
	return folded
}
