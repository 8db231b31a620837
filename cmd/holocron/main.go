package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/holocron/internal/app"
	"github.com/five82/holocron/internal/logging"
	"github.com/five82/holocron/internal/ui"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "holocron: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var opts app.Options

	cmd := &cobra.Command{
		Use:   "holocron",
		Short: "Browse the species that appear in a Star Wars film",
		Long: `Holocron loads a film from the Star Wars API, fetches every species
that appears in it, and shows them as cards in the terminal.

When stdout is not a terminal, or --plain is given, the cards are
printed once as text.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.Stdout = cmd.OutOrStdout()
			return app.Run(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.ConfigPath, "config", "c", "", "config file (default is ~/.config/holocron/config.toml)")
	flags.StringVar(&opts.PrefsPath, "prefs", "", "preferences file (default is ~/.config/holocron/prefs.toml)")
	flags.StringVar(&opts.FilmURL, "film-url", "", "film resource to load (default https://swapi.dev/api/films/2/)")
	flags.BoolVar(&opts.Plain, "plain", false, "print the species once as plain text")
	flags.StringVar(&opts.Theme, "theme", "", fmt.Sprintf("color theme %v", ui.ThemeNames()))
	flags.DurationVar(&opts.Timeout, "timeout", 0, "per-request timeout (default 10s)")
	flags.StringVar(&opts.LogLevel, "log-level", "", fmt.Sprintf("log level %v", logging.ValidLevels()))

	return cmd
}
