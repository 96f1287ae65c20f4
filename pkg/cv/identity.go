package cv

import (
	"strings"
	"unicode"

	"github.com/pharmalink/cv/pkg/profile"
)

// PlaceholderName is shown when a profile carries no usable name at all.
const PlaceholderName = "Utilisateur"

// DisplayName resolves the name shown for a profile. In anonymous mode the
// nickname wins, then the first name alone; the full name is never exposed.
func DisplayName(p profile.Profile, anonymous bool) string {
	if anonymous {
		if n := strings.TrimSpace(p.Nickname); n != "" {
			return n
		}
		if f := strings.TrimSpace(p.FirstName); f != "" {
			return f
		}
		return PlaceholderName
	}
	full := strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))
	if full == "" {
		return PlaceholderName
	}
	return full
}

// Initials derives 1-2 uppercase characters from the resolved display name:
// first letters of the first and last token, or the first two letters of a
// single token.
func Initials(p profile.Profile, anonymous bool) string {
	name := DisplayName(p, anonymous)
	tokens := strings.Fields(name)
	if len(tokens) == 0 {
		return ""
	}
	if len(tokens) >= 2 {
		first := []rune(tokens[0])
		last := []rune(tokens[len(tokens)-1])
		return string(unicode.ToUpper(first[0])) + string(unicode.ToUpper(last[0]))
	}
	runes := []rune(tokens[0])
	if len(runes) == 1 {
		return string(unicode.ToUpper(runes[0]))
	}
	return string(unicode.ToUpper(runes[0])) + string(unicode.ToUpper(runes[1]))
}
