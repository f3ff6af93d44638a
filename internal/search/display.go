package search

import (
	"errors"
	"fmt"

	"github.com/Digital-Shane/trakt-watch/internal/media"
)

// ErrUnknownEntryKind is returned when an entry cannot be rendered.
var ErrUnknownEntryKind = errors.New("invalid entry type")

// DisplayEntry renders one search result on a single line. With showURLs,
// the catalog URL is appended when one can be built.
func DisplayEntry(e media.Entry, showURLs bool, host string) (string, error) {
	var line string
	switch e.Kind {
	case media.KindMovie:
		line = fmt.Sprintf("Movie:\t%s (%d)", e.Title, e.Year)
	case media.KindEpisode:
		line = fmt.Sprintf("Episode:\t%s", EpisodeLabel(e))
	case media.KindShow:
		line = fmt.Sprintf("Show:\t%s (%d)", e.Title, e.Year)
	case media.KindPerson:
		line = fmt.Sprintf("Person:\t%s", e.Title)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEntryKind, e.Kind)
	}

	if !showURLs {
		return line, nil
	}
	if u := EntryURL(e, host); u != "" {
		line += " | " + u
	}
	return line, nil
}

// EpisodeLabel formats an episode as "<show> S<season>E<number> - <title>".
func EpisodeLabel(e media.Entry) string {
	return fmt.Sprintf("%s S%dE%d - %s", e.Show, e.Season, e.Number, e.Title)
}

var slugPrefixes = map[media.Kind]string{
	media.KindMovie:  "movies/",
	media.KindShow:   "shows/",
	media.KindPerson: "people/",
}

// EntryURL returns the catalog website URL of e, or "" when neither a slug
// nor an Ext path is known. The slug form is preferred; episodes have none.
func EntryURL(e media.Entry, host string) string {
	path := e.Ext
	if prefix, ok := slugPrefixes[e.Kind]; ok && e.IDs.Slug != "" {
		path = prefix + e.IDs.Slug
	}
	if path == "" {
		return ""
	}
	return media.WebURL(host, path)
}
