package cmd

import (
	"errors"
	"fmt"

	"github.com/Digital-Shane/trakt-watch/internal/media"
	"github.com/spf13/cobra"
)

var errNoLetterboxdURL = errors.New("cannot determine Letterboxd URL for entry")

// letterboxdURL returns the letterboxd.com page for a movie or show. Whole
// shows are sometimes listed there, episodes and people never are.
func letterboxdURL(e *media.Entry) (string, error) {
	if e.Kind != media.KindMovie && e.Kind != media.KindShow {
		return "", errNoLetterboxdURL
	}
	if e.IDs.TMDB == 0 {
		return "", errNoLetterboxdURL
	}
	return fmt.Sprintf("https://letterboxd.com/tmdb/%d/", e.IDs.TMDB), nil
}

func newLetterboxdCommand(ctx *commandContext) *cobra.Command {
	var (
		input inputFlags
		open  bool
	)

	cmd := &cobra.Command{
		Use:   "letterboxd [query...]",
		Short: "Print or open the letterboxd.com entry for a movie or show",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.session(cmd)
			if err != nil {
				return err
			}

			ref, err := input.resolve(cmd, s, args)
			if err != nil {
				return err
			}
			entry, err := fetchEntry(cmd.Context(), s, ref)
			if err != nil {
				return err
			}

			url, err := letterboxdURL(entry)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), url)

			if !open {
				return nil
			}
			if err := ctx.openURL(url); err != nil {
				return fmt.Errorf("could not open Letterboxd URL: %w", err)
			}
			return nil
		},
	}

	input.register(cmd)
	cmd.Flags().BoolVar(&open, "open", false, "Open the page in a browser (honours URL_OPENER)")
	return cmd
}
