package canonical

import "strings"

// pathReplacer handles characters that are illegal or hazardous in file
// names across the filesystems a portable player may use. Separators become
// dashes so "AC/DC" stays readable; the rest are dropped.
var pathReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SafePathComponent converts raw metadata text into a single path component
// for the Artist/Album/Title.ext library layout. Diacritics are folded the
// same way Key folds them so the on-disk tree and the canonical keys agree
// on spelling. Returns fallback when nothing survives.
func SafePathComponent(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	value = foldASCII(value)
	value = pathReplacer.Replace(value)
	value = strings.Trim(value, " .")
	if value == "" {
		return fallback
	}
	return value
}
