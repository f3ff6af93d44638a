package trakt

import (
	"context"
	"fmt"
	"net/url"

	"github.com/Digital-Shane/trakt-watch/internal/media"
)

// allSearchTypes is the type list used when searching without a filter.
const allSearchTypes = "movie,show,episode,person"

var extendedFull = url.Values{"extended": {"full"}}

// Search queries the catalog. KindAll searches movies, shows, episodes and
// people. Results with an unrecognised type are skipped.
func (c *Client) Search(ctx context.Context, query string, kind media.Kind) ([]media.Entry, error) {
	types := allSearchTypes
	if kind.IsFilter() {
		types = string(kind)
	}

	var results []searchResult
	if err := c.get(ctx, "search/"+types, url.Values{"query": {query}}, &results); err != nil {
		return nil, err
	}

	entries := make([]media.Entry, 0, len(results))
	for _, r := range results {
		e, ok := r.entry()
		if !ok {
			c.log.Debug().Str("type", r.Type).Msg("skipping search result")
			continue
		}
		entries = append(entries, e)
	}
	c.log.Debug().Str("query", query).Str("kind", kind.String()).Int("results", len(entries)).Msg("search")
	return entries, nil
}

// Movie fetches a single movie by trakt id or slug.
func (c *Client) Movie(ctx context.Context, id string) (*media.Entry, error) {
	var m apiMovie
	if err := c.get(ctx, "movies/"+url.PathEscape(id), extendedFull, &m); err != nil {
		return nil, err
	}
	e := movieEntry(m)
	return &e, nil
}

// Show fetches a single show by trakt id or slug.
func (c *Client) Show(ctx context.Context, id string) (*media.Entry, error) {
	var s apiShow
	if err := c.get(ctx, "shows/"+url.PathEscape(id), extendedFull, &s); err != nil {
		return nil, err
	}
	e := showEntry(s)
	return &e, nil
}

// Episode fetches a single episode. The show is fetched as well to fill in
// the show title and slug.
func (c *Client) Episode(ctx context.Context, showID string, season, episode int) (*media.Entry, error) {
	var show apiShow
	if err := c.get(ctx, "shows/"+url.PathEscape(showID), nil, &show); err != nil {
		return nil, err
	}

	path := fmt.Sprintf("shows/%s/seasons/%d/episodes/%d", url.PathEscape(showID), season, episode)
	var ep apiEpisode
	if err := c.get(ctx, path, extendedFull, &ep); err != nil {
		return nil, err
	}
	e := episodeEntry(show, ep)
	return &e, nil
}

// Person fetches a single person by trakt id or slug.
func (c *Client) Person(ctx context.Context, id string) (*media.Entry, error) {
	var p apiPerson
	if err := c.get(ctx, "people/"+url.PathEscape(id), extendedFull, &p); err != nil {
		return nil, err
	}
	e := personEntry(p)
	return &e, nil
}
