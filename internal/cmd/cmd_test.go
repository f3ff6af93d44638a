package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/Digital-Shane/trakt-watch/internal/config"
	"github.com/Digital-Shane/trakt-watch/internal/media"
	"github.com/Digital-Shane/trakt-watch/internal/prompt"
	"github.com/Digital-Shane/trakt-watch/internal/search"
	"github.com/Digital-Shane/trakt-watch/internal/trakt"
	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
)

type stubCatalog struct {
	results []media.Entry
	records map[string]media.Entry
}

func (c *stubCatalog) Search(context.Context, string, media.Kind) ([]media.Entry, error) {
	return c.results, nil
}

func (c *stubCatalog) lookup(id string) (*media.Entry, error) {
	e, ok := c.records[id]
	if !ok {
		return nil, &trakt.APIError{Code: trakt.CodeNotFound, Status: 404, Path: id, Message: "not found"}
	}
	return &e, nil
}

func (c *stubCatalog) Movie(_ context.Context, id string) (*media.Entry, error) { return c.lookup(id) }
func (c *stubCatalog) Show(_ context.Context, id string) (*media.Entry, error) { return c.lookup(id) }
func (c *stubCatalog) Person(_ context.Context, id string) (*media.Entry, error) { return c.lookup(id) }

func (c *stubCatalog) Episode(_ context.Context, show string, season, episode int) (*media.Entry, error) {
	return c.lookup(show + "/" + strconv.Itoa(season) + "/" + strconv.Itoa(episode))
}

var (
	alien = media.Entry{
		Kind:  media.KindMovie,
		Title: "Alien",
		Year:  1979,
		IDs:   media.IDs{Trakt: 1, Slug: "alien-1979", TMDB: 348},
		Ext:   "movies/alien-1979",
	}
	futurama = media.Entry{
		Kind:  media.KindShow,
		Title: "Futurama",
		Year:  1999,
		IDs:   media.IDs{Trakt: 614, Slug: "futurama", TMDB: 615},
		Ext:   "shows/futurama",
	}
	spacePilot = media.Entry{
		Kind:     media.KindEpisode,
		Title:    "Space Pilot 3000",
		Year:     1999,
		Show:     "Futurama",
		ShowSlug: "futurama",
		Season:   1,
		Number:   1,
		IDs:      media.IDs{Trakt: 500, TMDB: 9},
		Ext:      "shows/futurama/seasons/1/episodes/1",
	}
)

func newStubCatalog(results ...media.Entry) *stubCatalog {
	return &stubCatalog{
		results: results,
		records: map[string]media.Entry{
			"alien-1979":   alien,
			"futurama":     futurama,
			"futurama/1/1": spacePilot,
		},
	}
}

type cliResult struct {
	stdout string
	stderr string
	opened []string
	err    error
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"TRAKT_CLIENT_ID", "TRAKT_WATCH_CLIENT_ID", "TRAKT_WATCH_SHOW", "TRAKT_WATCH_PINNED_SHOW", "TRAKT_WATCH_LOG_LEVEL"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func runCLI(t *testing.T, cat media.Catalog, stdin string, args ...string) cliResult {
	t.Helper()

	var res cliResult
	ctx := newCommandContext()
	if cat != nil {
		ctx.newCatalog = func(*config.Config, zerolog.Logger) (media.Catalog, error) { return cat, nil }
	}
	ctx.openURL = func(rawURL string) error {
		res.opened = append(res.opened, rawURL)
		return nil
	}

	root := newRootCommand(ctx)
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))

	hasConfig := false
	for _, a := range args {
		if a == "--config" {
			hasConfig = true
		}
	}
	if !hasConfig {
		args = append([]string{"--config", filepath.Join(t.TempDir(), "config.json")}, args...)
	}
	root.SetArgs(args)

	res.err = root.ExecuteContext(context.Background())
	res.stdout = stdout.String()
	res.stderr = stderr.String()
	return res
}

func TestResolveCommand(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		stdin string
		want  []string
	}{
		{
			name: "url flag",
			args: []string{"resolve", "--url", "https://trakt.tv/movies/alien-1979"},
			want: []string{"MovieID(alien-1979)", "https://trakt.tv/movies/alien-1979"},
		},
		{
			name: "url argument",
			args: []string{"resolve", "https://trakt.tv/shows/futurama/seasons/1/episodes/1"},
			want: []string{"EpisodeID(futurama, S1E1)", "https://trakt.tv/shows/futurama/seasons/1/episodes/1"},
		},
		{
			name:  "typed query scheme",
			args:  []string{"resolve", "q+show://futurama"},
			stdin: "\n",
			want:  []string{"ShowID(futurama)", "https://trakt.tv/shows/futurama"},
		},
		{
			name:  "type flag picks second result",
			args:  []string{"resolve", "-t", "movie", "alien"},
			stdin: "2\n",
			want:  []string{"MovieID(alien-1979)", "https://trakt.tv/movies/alien-1979"},
		},
		{
			name:  "menu and query prompt",
			args:  []string{"resolve"},
			stdin: "s\nfuturama\n1\n",
			want:  []string{"ShowID(futurama)", "https://trakt.tv/shows/futurama"},
		},
		{
			name:  "episode by numbers",
			args:  []string{"resolve", "futurama"},
			stdin: "i\n1\n4\n7\n",
			want:  []string{"EpisodeID(futurama, S4E7)", "https://trakt.tv/shows/futurama/seasons/4/episodes/7"},
		},
		{
			name: "fetch",
			args: []string{"resolve", "--fetch", "--url", "https://trakt.tv/movies/alien-1979"},
			want: []string{"MovieID(alien-1979)", "https://trakt.tv/movies/alien-1979", "Movie:\tAlien (1979)"},
		},
		{
			name:  "type flag overrides scheme",
			args:  []string{"resolve", "-t", "show", "q+movie://futurama"},
			stdin: "\n",
			want:  []string{"ShowID(futurama)", "https://trakt.tv/shows/futurama"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			res := runCLI(t, newStubCatalog(futurama, alien), tt.stdin, tt.args...)
			if res.err != nil {
				t.Fatalf("resolve error = %v\nstderr: %s", res.err, res.stderr)
			}
			if diff := cmp.Diff(strings.Join(tt.want, "\n")+"\n", res.stdout); diff != "" {
				t.Errorf("stdout mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolveCommandPinnedShow(t *testing.T) {
	clearEnv(t)
	t.Setenv("TRAKT_WATCH_SHOW", "https://trakt.tv/shows/futurama")

	res := runCLI(t, newStubCatalog(), "2\n5\n", "resolve", "anything")
	if res.err != nil {
		t.Fatalf("resolve error = %v", res.err)
	}
	want := "EpisodeID(futurama, S2E5)\nhttps://trakt.tv/shows/futurama/seasons/2/episodes/5\n"
	if diff := cmp.Diff(want, res.stdout); diff != "" {
		t.Errorf("stdout mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(res.stderr, "Show: futurama") {
		t.Errorf("stderr = %q, want Show: futurama", res.stderr)
	}
}

func TestResolveCommandErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		stdin   string
		results []media.Entry
		wantIs  error
		wantMsg string
	}{
		{name: "aborted at menu", args: []string{"resolve"}, wantIs: prompt.ErrAborted},
		{name: "quit picker", args: []string{"resolve", "-t", "show", "x"}, stdin: "q\n", results: []media.Entry{futurama}, wantIs: prompt.ErrAborted},
		{name: "no results", args: []string{"resolve", "-t", "movie", "zzz"}, wantIs: search.ErrNoResults},
		{name: "invalid url", args: []string{"resolve", "--url", "https://trakt.tv/users/me"}, wantIs: media.ErrInvalidURL},
		{name: "invalid type", args: []string{"resolve", "-t", "person", "x"}, wantMsg: "invalid type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			res := runCLI(t, newStubCatalog(tt.results...), tt.stdin, tt.args...)
			if res.err == nil {
				t.Fatal("resolve error = nil, want error")
			}
			if tt.wantIs != nil && !errors.Is(res.err, tt.wantIs) {
				t.Errorf("resolve error = %v, want %v", res.err, tt.wantIs)
			}
			if tt.wantMsg != "" && !strings.Contains(res.err.Error(), tt.wantMsg) {
				t.Errorf("resolve error = %v, want message containing %q", res.err, tt.wantMsg)
			}
		})
	}
}

func TestResolveCommandPromptsStayOffStdout(t *testing.T) {
	clearEnv(t)
	res := runCLI(t, newStubCatalog(futurama, alien), "m\nalien\n2\n", "resolve")
	if res.err != nil {
		t.Fatalf("resolve error = %v\nstderr: %s", res.err, res.stderr)
	}
	if got, want := res.stdout, "MovieID(alien-1979)\nhttps://trakt.tv/movies/alien-1979\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
	for _, want := range []string{
		"[M]ovie\n",
		"What type of media do you want to search for? \n",
		"Search for movie: \n",
		"Results:\n",
		"Pick result, enter 1-2",
		"URLs [1]: \n",
	} {
		if !strings.Contains(res.stderr, want) {
			t.Errorf("stderr = %q, want it to contain %q", res.stderr, want)
		}
	}
}

func TestResolveCommandSchemeKindWithoutTypeFlag(t *testing.T) {
	clearEnv(t)
	// With the filter taken from the scheme, no menu is read, so the
	// only input line picks the second result.
	res := runCLI(t, newStubCatalog(futurama, alien), "2\n", "resolve", "q+movie://alien")
	if res.err != nil {
		t.Fatalf("resolve error = %v\nstderr: %s", res.err, res.stderr)
	}
	if got, want := res.stdout, "MovieID(alien-1979)\nhttps://trakt.tv/movies/alien-1979\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}

	// An explicit empty --type drops the scheme's filter and shows the menu.
	res = runCLI(t, newStubCatalog(futurama, alien), "", "resolve", "-t", "", "q+movie://alien")
	if !errors.Is(res.err, prompt.ErrAborted) {
		t.Errorf("resolve error = %v, want ErrAborted at the menu", res.err)
	}
	if !strings.Contains(res.stderr, "What type of media") {
		t.Errorf("stderr = %q, want the type menu", res.stderr)
	}
}

func TestResolveCommandMissingClientID(t *testing.T) {
	clearEnv(t)
	res := runCLI(t, nil, "", "resolve", "--url", "https://trakt.tv/movies/alien-1979")
	if res.err != nil {
		t.Fatalf("resolve --url error = %v, want none without a client id", res.err)
	}
	if got, want := res.stdout, "MovieID(alien-1979)\nhttps://trakt.tv/movies/alien-1979\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}

	res = runCLI(t, nil, "", "resolve", "--fetch", "--url", "https://trakt.tv/movies/alien-1979")
	if !errors.Is(res.err, trakt.ErrMissingClientID) {
		t.Errorf("resolve --fetch error = %v, want ErrMissingClientID", res.err)
	}
}

func TestFetchNotFound(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "resolve", args: []string{"resolve", "--fetch", "--url", "https://trakt.tv/movies/alien-2099"}, want: "no such movie at https://trakt.tv/movies/alien-2099"},
		{name: "letterboxd", args: []string{"letterboxd", "--url", "https://trakt.tv/shows/lost"}, want: "no such show at https://trakt.tv/shows/lost"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			res := runCLI(t, newStubCatalog(), "", tt.args...)
			if res.err == nil || !strings.Contains(res.err.Error(), tt.want) {
				t.Errorf("%s error = %v, want message containing %q", tt.name, res.err, tt.want)
			}
			if !trakt.IsNotFound(res.err) {
				t.Errorf("%s error = %v, want a wrapped not-found APIError", tt.name, res.err)
			}
		})
	}
}

func TestRenderTableRightAlignsListedColumns(t *testing.T) {
	got := renderTable([]string{"#", "Title"}, [][]string{{"1", "Alien"}, {"10", "Futurama"}}, 1)
	for _, want := range []string{"│ #  │ TITLE    │", "│  1 │ Alien    │", "│ 10 │ Futurama │"} {
		if !strings.Contains(got, want) {
			t.Errorf("renderTable() = \n%s\nwant it to contain %q", got, want)
		}
	}
	if got := renderTable(nil, nil); got != "" {
		t.Errorf("renderTable(nil) = %q, want empty", got)
	}
}

func TestSearchCommand(t *testing.T) {
	clearEnv(t)
	res := runCLI(t, newStubCatalog(alien, futurama, spacePilot), "", "search", "-t", "all", "futurama")
	if res.err != nil {
		t.Fatalf("search error = %v", res.err)
	}
	for _, want := range []string{
		"Alien",
		"https://trakt.tv/movies/alien-1979",
		"Futurama S1E1 - Space Pilot 3000",
		"https://trakt.tv/shows/futurama/seasons/1/episodes/1",
		"episode",
	} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("search output missing %q:\n%s", want, res.stdout)
		}
	}
}

func TestSearchCommandErrors(t *testing.T) {
	clearEnv(t)

	res := runCLI(t, newStubCatalog(), "", "search", "nothing")
	if !errors.Is(res.err, search.ErrNoResults) {
		t.Errorf("search error = %v, want ErrNoResults", res.err)
	}

	res = runCLI(t, newStubCatalog(), "", "search")
	if res.err == nil {
		t.Error("search without query error = nil, want error")
	}

	res = runCLI(t, newStubCatalog(), "", "search", "-t", "songs", "x")
	if res.err == nil || !strings.Contains(res.err.Error(), "invalid type") {
		t.Errorf("search error = %v, want invalid type", res.err)
	}
}

func TestLetterboxdCommand(t *testing.T) {
	clearEnv(t)

	res := runCLI(t, newStubCatalog(), "", "letterboxd", "--url", "https://trakt.tv/movies/alien-1979")
	if res.err != nil {
		t.Fatalf("letterboxd error = %v", res.err)
	}
	if got := strings.TrimSpace(res.stdout); got != "https://letterboxd.com/tmdb/348/" {
		t.Errorf("stdout = %q", got)
	}
	if len(res.opened) != 0 {
		t.Errorf("opened %v without --open", res.opened)
	}

	res = runCLI(t, newStubCatalog(), "", "letterboxd", "--open", "https://trakt.tv/shows/futurama")
	if res.err != nil {
		t.Fatalf("letterboxd --open error = %v", res.err)
	}
	if diff := cmp.Diff([]string{"https://letterboxd.com/tmdb/615/"}, res.opened); diff != "" {
		t.Errorf("opened mismatch (-want +got):\n%s", diff)
	}

	res = runCLI(t, newStubCatalog(), "", "letterboxd", "https://trakt.tv/shows/futurama/seasons/1/episodes/1")
	if !errors.Is(res.err, errNoLetterboxdURL) {
		t.Errorf("letterboxd episode error = %v, want errNoLetterboxdURL", res.err)
	}
}

func TestLetterboxdURL(t *testing.T) {
	tests := []struct {
		name    string
		entry   media.Entry
		want    string
		wantErr bool
	}{
		{name: "movie", entry: alien, want: "https://letterboxd.com/tmdb/348/"},
		{name: "show", entry: futurama, want: "https://letterboxd.com/tmdb/615/"},
		{name: "episode", entry: spacePilot, wantErr: true},
		{name: "no tmdb id", entry: media.Entry{Kind: media.KindMovie, Title: "Obscure"}, wantErr: true},
		{name: "person", entry: media.Entry{Kind: media.KindPerson, IDs: media.IDs{TMDB: 1}}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := letterboxdURL(&tt.entry)
			if (err != nil) != tt.wantErr {
				t.Fatalf("letterboxdURL() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("letterboxdURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConfigCommands(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "cfg", "config.json")

	res := runCLI(t, nil, "", "--config", path, "config", "path")
	if res.err != nil {
		t.Fatalf("config path error = %v", res.err)
	}
	if got := strings.TrimSpace(res.stdout); got != path {
		t.Errorf("config path = %q, want %q", got, path)
	}

	res = runCLI(t, nil, "", "--config", path, "config", "set", "client_id", "supersecretid")
	if res.err != nil {
		t.Fatalf("config set error = %v", res.err)
	}

	res = runCLI(t, nil, "", "--config", path, "config", "show")
	if res.err != nil {
		t.Fatalf("config show error = %v", res.err)
	}
	if strings.Contains(res.stdout, "supersecretid") {
		t.Errorf("config show leaked client id:\n%s", res.stdout)
	}
	for _, want := range []string{"*********etid", "api_url", "https://api.trakt.tv"} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("config show missing %q:\n%s", want, res.stdout)
		}
	}

	res = runCLI(t, nil, "", "--config", path, "config", "set", "colour", "blue")
	if !errors.Is(res.err, config.ErrUnknownKey) {
		t.Errorf("config set unknown error = %v, want ErrUnknownKey", res.err)
	}
}
