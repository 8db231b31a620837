package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/five82/holocron/internal/config"
	"github.com/five82/holocron/internal/logging"
	"github.com/five82/holocron/internal/prefs"
	"github.com/five82/holocron/internal/state"
	"github.com/five82/holocron/internal/swapi"
	"github.com/five82/holocron/internal/ui"
)

// Options configure the holocron application. Zero values defer to the
// config file and environment.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/holocron/prefs.toml
	FilmURL    string
	Theme      string
	Timeout    time.Duration
	LogLevel   string
	Plain      bool
	Stdout     io.Writer // defaults to os.Stdout
}

// Run loads the species for the configured film and renders them until the
// user quits, or once when output is plain.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyOverrides(&cfg, opts)

	if _, err := swapi.ParseResourceURL(cfg.FilmURL); err != nil {
		return fmt.Errorf("film url: %w", err)
	}

	logger, err := logging.New(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Close() }()

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs, err := prefs.Load(prefsPath)
	if err != nil {
		logger.Warn("prefs unreadable, using defaults", "error", err, "path", prefsPath)
	}
	if opts.Theme != "" {
		userPrefs.Theme = opts.Theme
	}

	client := swapi.NewClient(swapi.Options{
		Timeout:        cfg.Timeout,
		MaxConcurrency: cfg.MaxConcurrency,
	})

	store := &state.Store{}
	store.Subscribe(logTransitions(logger))

	logger.Info("holocron starting",
		"film_url", cfg.FilmURL,
		"timeout", cfg.Timeout.String(),
		"max_concurrency", cfg.MaxConcurrency,
	)

	out := opts.Stdout
	if out == nil {
		out = os.Stdout
	}

	if opts.Plain || !isTerminal(out) {
		st := Load(ctx, store, client, cfg.FilmURL, logger)
		if err := ui.RenderPlain(out, cfg.Title, st); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		if st.HasError {
			return fmt.Errorf("load species: %w", st.Err)
		}
		return nil
	}

	return ui.Run(ui.Options{
		Context: ctx,
		Store:   store,
		Load: func(ctx context.Context) state.LoadState {
			return Load(ctx, store, client, cfg.FilmURL, logger)
		},
		Title:     cfg.Title,
		ThemeName: userPrefs.Theme,
		Layout:    userPrefs.Layout,
		PrefsPath: prefsPath,
		LogPath:   cfg.LogPath(),
		Logger:    logger,
	})
}

func applyOverrides(cfg *config.Config, opts Options) {
	if v := strings.TrimSpace(opts.FilmURL); v != "" {
		cfg.FilmURL = v
	}
	if opts.Timeout > 0 {
		cfg.Timeout = opts.Timeout
	}
	if v := strings.TrimSpace(opts.LogLevel); v != "" {
		cfg.LogLevel = strings.ToUpper(v)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
