// Package search resolves user input into a single catalog reference,
// asking the user to narrow things down where needed.
package search

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/Digital-Shane/trakt-watch/internal/media"
	"github.com/Digital-Shane/trakt-watch/internal/picker"
	"github.com/rs/zerolog"
)

// ErrNoResults is returned when a search yields nothing.
var ErrNoResults = errors.New("no results found")

// allowedKeys lists the menu keys in the order they are reported.
var allowedKeys = []string{"M", "S", "I", "E", "A", "U"}

var keyKinds = map[string]media.Kind{
	"M": media.KindMovie,
	"S": media.KindShow,
	"I": media.KindShow,
	"E": media.KindEpisode,
	"A": media.KindAll,
}

// Console is the interactive surface used by the flow.
type Console interface {
	Key(k string) string
	ReadKey(prompt string) (string, error)
	Prompt(label, def string) (string, error)
	PromptNumber(label string) (int, error)
	Header(msg string)
	Println(a ...any)
	Info(msg string)
	Warn(msg string)
	Error(msg string)
}

// Flow resolves queries against a catalog.
type Flow struct {
	Catalog media.Catalog
	Console Console

	// PinnedShow is a show URL. When set, every resolution asks for an
	// episode of that show and nothing else.
	PinnedShow string

	// Host is the catalog website host. Empty means media.DefaultHost.
	Host string

	Log zerolog.Logger
}

// Options are the inputs of a single resolution.
type Options struct {
	// DefaultKind skips the type menu when it is a valid filter.
	DefaultKind media.Kind
	// Query is searched without prompting when non-blank.
	Query string
}

func (f *Flow) host() string {
	if f.Host == "" {
		return media.DefaultHost
	}
	return f.Host
}

// menu lists the media types with their hotkeys highlighted.
func (f *Flow) menu() string {
	k := f.Console.Key
	return k("M") + "ovie\n" +
		k("S") + "how\n" +
		k("E") + "pisode name\n" +
		"Ep" + k("I") + "sode - Show w/ Season/Episode num\n" +
		k("U") + "rl\n" +
		k("A") + "ll\n" +
		"What type of media do you want to search for? "
}

func (f *Flow) parseURL(raw string) (media.Reference, error) {
	return media.ParseURL(raw, media.WithHost(f.host()), media.WithWarn(f.Console.Warn))
}

// Resolve returns exactly one reference. User cancellation is reported as
// prompt.ErrAborted.
func (f *Flow) Resolve(ctx context.Context, opts Options) (media.Reference, error) {
	if f.PinnedShow != "" {
		return f.resolvePinned()
	}

	kind := opts.DefaultKind
	var pressed string
	if !kind.IsFilter() {
		key, err := f.Console.ReadKey(f.menu())
		if err != nil {
			return nil, err
		}
		pressed = strings.ToUpper(strings.TrimSpace(key))

		switch {
		case pressed == "":
			f.Console.Error("No input")
		case !slices.Contains(allowedKeys, pressed):
			f.Console.Error(fmt.Sprintf("'%s', should be one of (%s)", pressed, strings.Join(allowedKeys, ", ")))
		case pressed == "U":
			raw, err := f.Console.Prompt("Url", "")
			if err != nil {
				return nil, err
			}
			return f.parseURL(raw)
		}
		// Anything but a known filter key searches everything.
		kind = keyKinds[pressed]
	}

	query := strings.TrimSpace(opts.Query)
	for query == "" {
		answer, err := f.Console.Prompt("Search for "+kind.String(), "")
		if err != nil {
			return nil, err
		}
		query = strings.TrimSpace(answer)
	}

	results, err := f.Catalog.Search(ctx, query, kind)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	if len(results) == 0 {
		return nil, ErrNoResults
	}

	picked, err := picker.Pick(f.Console, results, picker.Options[media.Entry]{
		Prefix:  "Pick result",
		Display: f.display,
	})
	if err != nil {
		return nil, err
	}

	full, err := media.Lookup(ctx, f.Catalog, picked)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", picked.Title, err)
	}

	ref, err := f.parseURL(media.WebURL(f.host(), full.Ext))
	if err != nil {
		return nil, err
	}
	f.Log.Debug().Str("reference", fmt.Sprint(ref)).Msg("resolved")

	if pressed == "I" {
		return f.promptEpisode(media.ReferenceID(ref))
	}
	return ref, nil
}

func (f *Flow) resolvePinned() (media.Reference, error) {
	ref, err := f.parseURL(f.PinnedShow)
	if err != nil {
		return nil, fmt.Errorf("pinned show: %w", err)
	}
	id := media.ReferenceID(ref)
	f.Console.Info("Show: " + id)
	return f.promptEpisode(id)
}

func (f *Flow) promptEpisode(showID string) (media.Reference, error) {
	season, err := f.Console.PromptNumber("Season")
	if err != nil {
		return nil, err
	}
	episode, err := f.Console.PromptNumber("Episode")
	if err != nil {
		return nil, err
	}
	return media.EpisodeID{ShowID: showID, Season: season, Episode: episode}, nil
}

func (f *Flow) display(showURLs bool, items []media.Entry) error {
	f.Console.Header("Results:")
	for i, e := range items {
		line, err := DisplayEntry(e, showURLs, f.host())
		if err != nil {
			return err
		}
		f.Console.Println(fmt.Sprintf("%d: %s", i+1, line))
	}
	return nil
}
