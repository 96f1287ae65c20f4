package cv

import (
	"regexp"
	"strings"
)

// PII scrub for free-text CV fields (summary, experience descriptions).
// An ordered list of pattern substitutions applied over the whole string,
// each rule independent of the previous ones, then whitespace cleanup.
//
// This is best-effort masking, not security-grade redaction: uncapitalized
// names, foreign address formats and creative spellings pass through.

const (
	confidentialMark = "[confidentiel]"
	phoneMask        = "[téléphone masqué]"
	emailMask        = "[email masqué]"
)

type scrubRule struct {
	re   *regexp.Regexp
	repl string
}

var scrubRules = []scrubRule{
	// "Pharmacie Dupont", "Pharmacie De La Gare"
	{regexp.MustCompile(`Pharmacie\s+\p{Lu}[\p{L}'’-]*(?:\s+\p{Lu}[\p{L}'’-]*)*`), "Pharmacie " + confidentialMark},
	// "Dupont Pharma", "Grande Pharmacie"
	{regexp.MustCompile(`\b\p{Lu}[\p{L}'’-]*\s+Pharma(?:cie)?\b`), confidentialMark},
	// bare postal codes
	{regexp.MustCompile(`\b\d{5}\b`), ""},
	// French phone numbers: 0X XX XX XX XX and +33 X XX XX XX XX, separators optional
	{regexp.MustCompile(`(?:\+33[\s.-]?|0)[1-9](?:[\s.-]?\d{2}){4}`), phoneMask},
	// email-like tokens
	{regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`), emailMask},
	// street addresses: "<number> rue/avenue/... <words>"
	{regexp.MustCompile(`(?i)\b\d{1,4}\s*(?:,\s*)?(?:bis\s+|ter\s+)?(?:rue|avenue|boulevard|bd|impasse|allée|place|chemin|quai|cours|route)\s+(?:de\s+|du\s+|des\s+|la\s+|le\s+|l')*[\p{L}'’-]+(?:\s+[\p{L}'’-]+){0,2}`), ""},
}

var (
	scrubSpaces   = regexp.MustCompile(`[ \t\r\f\v]+`)
	scrubNewlines = regexp.MustCompile(`\n+`)
)

// ScrubPII applies the masking rules in their fixed order and collapses the
// whitespace left behind by removals. Applying it twice yields the same
// result as applying it once.
func ScrubPII(s string) string {
	if s == "" {
		return ""
	}
	for _, rule := range scrubRules {
		s = rule.re.ReplaceAllString(s, rule.repl)
	}
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = scrubSpaces.ReplaceAllString(s, " ")
	s = scrubNewlines.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}
