package media

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// DefaultHost is the catalog website host.
const DefaultHost = "trakt.tv"

// ErrInvalidURL is returned when a URL path does not point at a movie, show
// or episode.
var ErrInvalidURL = errors.New("invalid URL parts")

// ParseOption configures ParseURL and ParseQuery.
type ParseOption func(*parseOptions)

type parseOptions struct {
	host string
	warn func(string)
}

// WithHost overrides the expected catalog host.
func WithHost(host string) ParseOption {
	return func(o *parseOptions) {
		if host != "" {
			o.host = host
		}
	}
}

// WithWarn sets the function that receives non-fatal warnings.
func WithWarn(fn func(string)) ParseOption {
	return func(o *parseOptions) {
		o.warn = fn
	}
}

func newParseOptions(opts []ParseOption) parseOptions {
	o := parseOptions{host: DefaultHost, warn: func(string) {}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.warn == nil {
		o.warn = func(string) {}
	}
	return o
}

// ParseURL resolves a catalog URL into a Reference. A host other than the
// expected one only produces a warning.
func ParseURL(rawURL string, opts ...ParseOption) (Reference, error) {
	o := newParseOptions(opts)

	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Host != o.host {
		o.warn(fmt.Sprintf("Warning; Invalid URL netloc: '%s', expected %s", u.Host, o.host))
	}

	parts := pathParts(u.Path)

	switch {
	case len(parts) >= 2 && parts[0] == "movies":
		return MovieID{ID: parts[1]}, nil
	case len(parts) >= 6 && parts[0] == "shows" && parts[2] == "seasons" && parts[4] == "episodes":
		season, err := parseNumber(parts[3])
		if err != nil {
			return nil, fmt.Errorf("%w: %q: season: %v", ErrInvalidURL, parts, err)
		}
		episode, err := parseNumber(parts[5])
		if err != nil {
			return nil, fmt.Errorf("%w: %q: episode: %v", ErrInvalidURL, parts, err)
		}
		return EpisodeID{ShowID: parts[1], Season: season, Episode: episode}, nil
	case len(parts) >= 2 && parts[0] == "shows":
		return ShowID{ID: parts[1]}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrInvalidURL, parts)
}

func pathParts(p string) []string {
	var parts []string
	for _, s := range strings.Split(p, "/") {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return parts
}

func parseNumber(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative number %d", n)
	}
	return n, nil
}

// Query is a search request parsed from a query scheme.
type Query struct {
	Text string
	Kind Kind
}

// ParseQuery parses the q:// and q+<kind>:// search schemes. Anything else,
// including ordinary URLs and bare phrases, reports false.
func ParseQuery(s string, opts ...ParseOption) (Query, bool) {
	scheme, term, found := strings.Cut(s, "://")
	if !found || (scheme == "" && term == "") {
		return Query{}, false
	}

	if scheme == "q" {
		return Query{Text: term}, true
	}
	for _, k := range SearchKinds {
		if scheme == "q+"+string(k) {
			return Query{Text: term, Kind: k}, true
		}
	}

	if strings.Contains(scheme, "+") {
		o := newParseOptions(opts)
		known := make([]string, len(SearchKinds))
		for i, k := range SearchKinds {
			known[i] = "q+" + string(k)
		}
		o.warn(fmt.Sprintf("Warning: '+' in scheme '%s', but did not match known media schemes: %s",
			scheme, strings.Join(known, ", ")))
	}
	return Query{}, false
}
