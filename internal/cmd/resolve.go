package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/Digital-Shane/trakt-watch/internal/media"
	"github.com/Digital-Shane/trakt-watch/internal/search"
	"github.com/Digital-Shane/trakt-watch/internal/trakt"
	"github.com/spf13/cobra"
)

// inputFlags are shared by every command that resolves a single reference.
type inputFlags struct {
	url  string
	kind string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.url, "url", "", "trakt.tv URL to resolve instead of searching")
	cmd.Flags().StringVarP(&f.kind, "type", "t", "", "Search filter: movie, show, episode or all (overrides a q+<type>:// argument)")
}

// resolve turns flags and arguments into one reference. A --url or an
// https argument is parsed directly, a q:// argument sets the query and
// filter, anything else is handed to the interactive search. A --type
// given on the command line, even an empty one, beats the scheme's type.
func (f *inputFlags) resolve(cmd *cobra.Command, s *session, args []string) (media.Reference, error) {
	if raw := strings.TrimSpace(f.url); raw != "" {
		return s.parseURL(raw)
	}

	kind, ok := media.ParseKind(f.kind)
	if !ok {
		return nil, fmt.Errorf("invalid type %q, expected one of movie, show, episode, all", f.kind)
	}

	text := strings.TrimSpace(strings.Join(args, " "))
	if q, ok := media.ParseQuery(text, media.WithWarn(s.console.Warn)); ok {
		text = q.Text
		if !cmd.Flags().Changed("type") {
			kind = q.Kind
		}
	} else if strings.HasPrefix(text, "https://") || strings.HasPrefix(text, "http://") {
		return s.parseURL(text)
	}

	ref, err := s.flow.Resolve(cmd.Context(), search.Options{DefaultKind: kind, Query: text})
	if err != nil {
		return nil, err
	}
	s.log.Debug().Str("reference", fmt.Sprint(ref)).Msg("resolved input")
	return ref, nil
}

// fetchEntry loads the full record behind ref.
func fetchEntry(ctx context.Context, s *session, ref media.Reference) (*media.Entry, error) {
	entry, err := ref.Fetch(ctx, s.catalog)
	if trakt.IsNotFound(err) {
		return nil, fmt.Errorf("no such %s at %s: %w", ref.Kind(), media.WebURL(s.host(), ref.Path()), err)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch %v: %w", ref, err)
	}
	return entry, nil
}

func newResolveCommand(ctx *commandContext) *cobra.Command {
	var (
		input inputFlags
		fetch bool
	)

	cmd := &cobra.Command{
		Use:   "resolve [query...]",
		Short: "Resolve a query or URL to a single movie, show or episode",
		Long: `Resolve a search query, a q:// or q+<type>:// scheme, or a trakt.tv URL into a
single reference and print it with its canonical URL.

Examples:
  trakt-watch resolve the princess bride
  trakt-watch resolve q+show://futurama
  trakt-watch resolve https://trakt.tv/shows/futurama/seasons/1/episodes/1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.session(cmd)
			if err != nil {
				return err
			}

			ref, err := input.resolve(cmd, s, args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ref)
			fmt.Fprintln(out, media.WebURL(s.host(), ref.Path()))

			if !fetch {
				return nil
			}
			entry, err := fetchEntry(cmd.Context(), s, ref)
			if err != nil {
				return err
			}
			line, err := search.DisplayEntry(*entry, false, s.host())
			if err != nil {
				return err
			}
			fmt.Fprintln(out, line)
			return nil
		},
	}

	input.register(cmd)
	cmd.Flags().BoolVar(&fetch, "fetch", false, "Fetch and print the full record")
	return cmd
}
