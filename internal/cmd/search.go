package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Digital-Shane/trakt-watch/internal/media"
	"github.com/Digital-Shane/trakt-watch/internal/search"
	"github.com/Digital-Shane/trakt-watch/internal/tui/theme"
	"github.com/spf13/cobra"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var kindFlag string

	cmd := &cobra.Command{
		Use:   "search <query...>",
		Short: "List search results without picking one",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, ok := media.ParseKind(kindFlag)
			if !ok {
				return fmt.Errorf("invalid type %q, expected one of movie, show, episode, all", kindFlag)
			}

			s, err := ctx.session(cmd)
			if err != nil {
				return err
			}

			query := strings.Join(args, " ")
			entries, err := s.catalog.Search(cmd.Context(), query, kind)
			if err != nil {
				return fmt.Errorf("search %q: %w", query, err)
			}
			if len(entries) == 0 {
				return search.ErrNoResults
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderEntries(entries, s.host(), s.console.Theme()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&kindFlag, "type", "t", "", "Search filter: movie, show, episode or all")
	return cmd
}

func renderEntries(entries []media.Entry, host string, th theme.Theme) string {
	rows := make([][]string, 0, len(entries))
	for i, e := range entries {
		title := e.Title
		if e.Kind == media.KindEpisode {
			title = search.EpisodeLabel(e)
		}
		year := ""
		if e.Year > 0 {
			year = strconv.Itoa(e.Year)
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			strings.TrimSpace(th.Icon(string(e.Kind)) + " " + string(e.Kind)),
			title,
			year,
			search.EntryURL(e, host),
		})
	}
	return renderTable([]string{"#", "Type", "Title", "Year", "URL"}, rows, 1, 4)
}
