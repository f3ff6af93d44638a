package media

import "context"

// IDs holds the identifiers the catalog reports for a record
type IDs struct {
	Trakt int    `json:"trakt"`
	Slug  string `json:"slug"`
	IMDB  string `json:"imdb"`
	TMDB  int    `json:"tmdb"`
	TVDB  int    `json:"tvdb"`
}

// Entry is a catalog record as returned by a search or a lookup.
type Entry struct {
	Kind Kind

	// Title holds the movie, show or episode title, or a person's name.
	Title string
	Year  int

	// Episode-only fields
	Show     string
	ShowSlug string
	Season   int
	Number   int

	IDs IDs

	// Ext is the generic path of the record on the catalog website, e.g.
	// "shows/futurama/seasons/1/episodes/1".
	Ext string
}

// Catalog is the remote media catalog. Search with KindAll searches every
// kind, including people.
type Catalog interface {
	Search(ctx context.Context, query string, kind Kind) ([]Entry, error)
	Movie(ctx context.Context, id string) (*Entry, error)
	Show(ctx context.Context, id string) (*Entry, error)
	Episode(ctx context.Context, showID string, season, episode int) (*Entry, error)
	Person(ctx context.Context, id string) (*Entry, error)
}

// Lookup fetches the full record for an entry returned by a search.
func Lookup(ctx context.Context, c Catalog, e Entry) (*Entry, error) {
	id := e.IDs.Slug
	if id == "" && e.IDs.Trakt != 0 {
		id = itoa(e.IDs.Trakt)
	}
	switch e.Kind {
	case KindMovie:
		return c.Movie(ctx, id)
	case KindShow:
		return c.Show(ctx, id)
	case KindEpisode:
		return c.Episode(ctx, e.ShowSlug, e.Season, e.Number)
	case KindPerson:
		return c.Person(ctx, id)
	default:
		return nil, &KindError{Kind: e.Kind}
	}
}

// KindError reports an entry whose kind is not one of the known kinds.
type KindError struct {
	Kind Kind
}

func (e *KindError) Error() string {
	return "invalid entry type: " + string(e.Kind)
}
