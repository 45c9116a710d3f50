package parameterservice

import (
	"strings"

	platformservice "github.com/redjax/kparams/internal/services/platformService"
)

// Pattern is a device or build matching rule.
type Pattern string

// Wildcard matches any value, including the empty string.
const Wildcard Pattern = "*"

// Matcher decides whether a platform value satisfies a pattern.
type Matcher interface {
	Match(value string, pattern Pattern) bool
}

// SubstringMatcher matches when the value contains the pattern, so a pattern
// like "iPhone11," covers a whole device family.
type SubstringMatcher struct{}

func (SubstringMatcher) Match(value string, pattern Pattern) bool {
	if pattern == Wildcard {
		return true
	}
	// strings.Contains reports true for an empty pattern; an empty pattern
	// is a placeholder and must never match.
	if pattern == "" {
		return false
	}
	return strings.Contains(value, string(pattern))
}

// ExactMatcher only accepts the wildcard or a value equal to the pattern.
type ExactMatcher struct{}

func (ExactMatcher) Match(value string, pattern Pattern) bool {
	if pattern == Wildcard {
		return true
	}
	if pattern == "" {
		return false
	}
	return value == string(pattern)
}

// MatcherByName returns the matcher registered under name ("substring" or "exact").
// An empty name selects the substring matcher.
func MatcherByName(name string) (Matcher, bool) {
	switch strings.ToLower(name) {
	case "", "substring":
		return SubstringMatcher{}, true
	case "exact":
		return ExactMatcher{}, true
	default:
		return nil, false
	}
}

// RecordMatches reports whether both of the record's patterns match the identity.
func RecordMatches(m Matcher, id platformservice.Identity, rec Record) bool {
	return m.Match(id.Device, rec.Device) && m.Match(id.Build, rec.Build)
}
