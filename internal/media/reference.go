package media

import (
	"context"
	"fmt"
	"strconv"
)

// Reference is a resolved pointer to a single movie, show or episode in the
// catalog. Implementations are small comparable values.
type Reference interface {
	Kind() Kind
	// Path returns the record's path on the catalog website.
	Path() string
	// Fetch retrieves the full record from the catalog.
	Fetch(ctx context.Context, c Catalog) (*Entry, error)
}

// MovieID references a movie by catalog id or slug.
type MovieID struct {
	ID string
}

func (m MovieID) Kind() Kind   { return KindMovie }
func (m MovieID) Path() string { return "movies/" + m.ID }

func (m MovieID) Fetch(ctx context.Context, c Catalog) (*Entry, error) {
	return c.Movie(ctx, m.ID)
}

func (m MovieID) String() string { return fmt.Sprintf("MovieID(%s)", m.ID) }

// ShowID references a TV show by catalog id or slug.
type ShowID struct {
	ID string
}

func (s ShowID) Kind() Kind   { return KindShow }
func (s ShowID) Path() string { return "shows/" + s.ID }

func (s ShowID) Fetch(ctx context.Context, c Catalog) (*Entry, error) {
	return c.Show(ctx, s.ID)
}

func (s ShowID) String() string { return fmt.Sprintf("ShowID(%s)", s.ID) }

// EpisodeID references a single episode of a show.
type EpisodeID struct {
	ShowID  string
	Season  int
	Episode int
}

func (e EpisodeID) Kind() Kind { return KindEpisode }

func (e EpisodeID) Path() string {
	return fmt.Sprintf("shows/%s/seasons/%d/episodes/%d", e.ShowID, e.Season, e.Episode)
}

func (e EpisodeID) Fetch(ctx context.Context, c Catalog) (*Entry, error) {
	return c.Episode(ctx, e.ShowID, e.Season, e.Episode)
}

func (e EpisodeID) String() string {
	return fmt.Sprintf("EpisodeID(%s, S%dE%d)", e.ShowID, e.Season, e.Episode)
}

// ReferenceID returns the show or movie id carried by r.
func ReferenceID(r Reference) string {
	switch v := r.(type) {
	case MovieID:
		return v.ID
	case ShowID:
		return v.ID
	case EpisodeID:
		return v.ShowID
	}
	return ""
}

// WebURL joins a catalog host and a record path.
func WebURL(host, path string) string {
	return "https://" + host + "/" + path
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
