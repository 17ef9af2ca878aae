package canonical

import "regexp"

// Ruleset is the versioned allow-list of noise patterns stripped during
// canonicalization. The version string changes whenever a pattern is added
// or altered so reports generated under different rules are distinguishable.
type Ruleset struct {
	Version  string
	patterns []*regexp.Regexp
}

// RulesetVersion identifies the built-in pattern set.
const RulesetVersion = "2025.1"

var defaultPatterns = []*regexp.Regexp{
	// Featured-artist decorations: "(feat. X)", "(ft. X)", "[feat. X]".
	regexp.MustCompile(`(?i)[(\[]\s*f(ea)?t\.?\s[^)\]]*[)\]]`),
	// Dash-suffixed release decorations: "- Remastered 2011", "- Live",
	// "- Mono", "- Single Version", "- Radio Edit", "- Club Mix".
	regexp.MustCompile(`(?i)-\s*(remaster(ed)?|remix|edit|mix|live|mono|single version|radio edit).*$`),
}

// DefaultRuleset returns the built-in noise patterns.
func DefaultRuleset() Ruleset {
	return Ruleset{Version: RulesetVersion, patterns: defaultPatterns}
}

// EmptyRuleset strips nothing; matching then compares folded text verbatim.
func EmptyRuleset() Ruleset {
	return Ruleset{Version: "none"}
}

func (r Ruleset) strip(value string) string {
	for _, pattern := range r.patterns {
		value = pattern.ReplaceAllString(value, "")
	}
	return value
}
