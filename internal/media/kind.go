package media

import "strings"

// Kind represents the type of a catalog record
type Kind string

const (
	// KindAll is the absence of a search filter
	KindAll     Kind = ""
	KindMovie   Kind = "movie"
	KindShow    Kind = "show"
	KindEpisode Kind = "episode"
	KindPerson  Kind = "person"
)

// SearchKinds lists the kinds that may be used as a search filter, in the
// order they are presented to the user.
var SearchKinds = []Kind{KindMovie, KindShow, KindEpisode}

// String returns the kind name, or "all" for KindAll.
func (k Kind) String() string {
	if k == KindAll {
		return "all"
	}
	return string(k)
}

// IsFilter reports whether k is one of SearchKinds.
func (k Kind) IsFilter() bool {
	for _, s := range SearchKinds {
		if k == s {
			return true
		}
	}
	return false
}

// ParseKind parses a search filter name. Matching is case-insensitive and
// "all" or an empty string yields KindAll.
func ParseKind(s string) (Kind, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "all" {
		return KindAll, true
	}
	k := Kind(s)
	if k.IsFilter() {
		return k, true
	}
	return KindAll, false
}
