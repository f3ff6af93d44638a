package trakt

import (
	"fmt"

	"github.com/Digital-Shane/trakt-watch/internal/media"
)

type apiIDs struct {
	Trakt int    `json:"trakt"`
	Slug  string `json:"slug"`
	IMDB  string `json:"imdb"`
	TMDB  int    `json:"tmdb"`
	TVDB  int    `json:"tvdb"`
}

func (ids apiIDs) toMedia() media.IDs {
	return media.IDs{Trakt: ids.Trakt, Slug: ids.Slug, IMDB: ids.IMDB, TMDB: ids.TMDB, TVDB: ids.TVDB}
}

// slugOrID prefers the slug and falls back to the numeric trakt id.
func (ids apiIDs) slugOrID() string {
	if ids.Slug != "" {
		return ids.Slug
	}
	if ids.Trakt != 0 {
		return fmt.Sprint(ids.Trakt)
	}
	return ""
}

type apiMovie struct {
	Title string `json:"title"`
	Year  int    `json:"year"`
	IDs   apiIDs `json:"ids"`
}

type apiShow struct {
	Title string `json:"title"`
	Year  int    `json:"year"`
	IDs   apiIDs `json:"ids"`
}

type apiEpisode struct {
	Season int    `json:"season"`
	Number int    `json:"number"`
	Title  string `json:"title"`
	IDs    apiIDs `json:"ids"`
}

type apiPerson struct {
	Name string `json:"name"`
	IDs  apiIDs `json:"ids"`
}

// searchResult is one element of a /search response.
type searchResult struct {
	Type    string      `json:"type"`
	Score   float64     `json:"score"`
	Movie   *apiMovie   `json:"movie"`
	Show    *apiShow    `json:"show"`
	Episode *apiEpisode `json:"episode"`
	Person  *apiPerson  `json:"person"`
}

func movieEntry(m apiMovie) media.Entry {
	e := media.Entry{
		Kind:  media.KindMovie,
		Title: m.Title,
		Year:  m.Year,
		IDs:   m.IDs.toMedia(),
	}
	if id := m.IDs.slugOrID(); id != "" {
		e.Ext = "movies/" + id
	}
	return e
}

func showEntry(s apiShow) media.Entry {
	e := media.Entry{
		Kind:  media.KindShow,
		Title: s.Title,
		Year:  s.Year,
		IDs:   s.IDs.toMedia(),
	}
	if id := s.IDs.slugOrID(); id != "" {
		e.Ext = "shows/" + id
	}
	return e
}

func episodeEntry(show apiShow, ep apiEpisode) media.Entry {
	e := media.Entry{
		Kind:     media.KindEpisode,
		Title:    ep.Title,
		Year:     show.Year,
		Show:     show.Title,
		ShowSlug: show.IDs.slugOrID(),
		Season:   ep.Season,
		Number:   ep.Number,
		IDs:      ep.IDs.toMedia(),
	}
	if e.ShowSlug != "" {
		e.Ext = fmt.Sprintf("shows/%s/seasons/%d/episodes/%d", e.ShowSlug, ep.Season, ep.Number)
	}
	return e
}

func personEntry(p apiPerson) media.Entry {
	e := media.Entry{
		Kind:  media.KindPerson,
		Title: p.Name,
		IDs:   p.IDs.toMedia(),
	}
	if id := p.IDs.slugOrID(); id != "" {
		e.Ext = "people/" + id
	}
	return e
}

// entry converts a search result, reporting false for results whose
// payload does not match their type.
func (r searchResult) entry() (media.Entry, bool) {
	switch r.Type {
	case "movie":
		if r.Movie != nil {
			return movieEntry(*r.Movie), true
		}
	case "show":
		if r.Show != nil {
			return showEntry(*r.Show), true
		}
	case "episode":
		if r.Episode != nil && r.Show != nil {
			return episodeEntry(*r.Show, *r.Episode), true
		}
	case "person":
		if r.Person != nil {
			return personEntry(*r.Person), true
		}
	}
	return media.Entry{}, false
}
