package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Digital-Shane/trakt-watch/internal/prompt"
	"github.com/spf13/cobra"
)

// abortGrace is how long an interrupted command may take to unwind before
// the process exits.
const abortGrace = 500 * time.Millisecond

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(newCommandContext())
}

func newRootCommand(ctx *commandContext) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "trakt-watch",
		Short: "Resolve trakt.tv movies, shows and episodes from the terminal",
		Long: `trakt-watch resolves a search query, a q:// query scheme or a pasted trakt.tv
URL into exactly one movie, show or episode, asking you to pick among search
results where needed.

Set TRAKT_WATCH_SHOW to a show URL to only ever pick episodes of that show.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&ctx.configFlag, "config", "c", "", "Configuration file path (default ~/.trakt-watch/config.json)")
	rootCmd.PersistentFlags().StringVar(&ctx.logLevelFlag, "log-level", "", "Log level: trace, debug, info, warn, error")

	rootCmd.AddCommand(newResolveCommand(ctx))
	rootCmd.AddCommand(newSearchCommand(ctx))
	rootCmd.AddCommand(newLetterboxdCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}

// Execute runs the root command and exits non-zero on failure. It is called
// by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	done := make(chan struct{})
	go func() {
		select {
		case <-done:
		case <-ctx.Done():
			// Terminal reads do not observe ctx, so give in-flight requests a
			// moment to unwind and then leave.
			select {
			case <-done:
			case <-time.After(abortGrace):
				fmt.Fprintln(os.Stderr)
				fmt.Fprintln(os.Stderr, "Aborted!")
				os.Exit(1)
			}
		}
	}()

	err := NewRootCommand().ExecuteContext(ctx)
	close(done)
	if err == nil {
		return
	}

	if errors.Is(err, prompt.ErrAborted) || errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "Aborted!")
	} else {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(1)
}
