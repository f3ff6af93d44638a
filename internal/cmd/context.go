package cmd

import (
	"context"
	"strings"
	"sync"

	"github.com/Digital-Shane/trakt-watch/internal/config"
	"github.com/Digital-Shane/trakt-watch/internal/logging"
	"github.com/Digital-Shane/trakt-watch/internal/media"
	"github.com/Digital-Shane/trakt-watch/internal/prompt"
	"github.com/Digital-Shane/trakt-watch/internal/search"
	"github.com/Digital-Shane/trakt-watch/internal/trakt"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// catalogFactory builds the catalog used by a command.
type catalogFactory func(cfg *config.Config, log zerolog.Logger) (media.Catalog, error)

type commandContext struct {
	configFlag   string
	logLevelFlag string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	newCatalog catalogFactory
	openURL    func(rawURL string) error
}

func newCommandContext() *commandContext {
	return &commandContext{
		newCatalog: newTraktCatalog,
		openURL:    openURL,
	}
}

func newTraktCatalog(cfg *config.Config, log zerolog.Logger) (media.Catalog, error) {
	return trakt.New(trakt.Options{
		BaseURL:   cfg.APIURL,
		ClientID:  cfg.ClientID,
		Timeout:   cfg.Timeout(),
		CacheTTL:  cfg.TTL(),
		RateLimit: cfg.RateLimit,
		Logger:    log,
	})
}

func (c *commandContext) configPath() (string, error) {
	if p := strings.TrimSpace(c.configFlag); p != "" {
		return p, nil
	}
	return config.ConfigPath()
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		c.config, c.configErr = config.Load(strings.TrimSpace(c.configFlag))
	})
	return c.config, c.configErr
}

// lazyCatalog defers building the catalog until a command first talks to
// it, so URL parsing works without a client id.
type lazyCatalog struct {
	build func() (media.Catalog, error)

	once sync.Once
	cat  media.Catalog
	err  error
}

func (l *lazyCatalog) get() (media.Catalog, error) {
	l.once.Do(func() {
		l.cat, l.err = l.build()
	})
	return l.cat, l.err
}

func (l *lazyCatalog) Search(ctx context.Context, query string, kind media.Kind) ([]media.Entry, error) {
	c, err := l.get()
	if err != nil {
		return nil, err
	}
	return c.Search(ctx, query, kind)
}

func (l *lazyCatalog) Movie(ctx context.Context, id string) (*media.Entry, error) {
	c, err := l.get()
	if err != nil {
		return nil, err
	}
	return c.Movie(ctx, id)
}

func (l *lazyCatalog) Show(ctx context.Context, id string) (*media.Entry, error) {
	c, err := l.get()
	if err != nil {
		return nil, err
	}
	return c.Show(ctx, id)
}

func (l *lazyCatalog) Episode(ctx context.Context, showID string, season, episode int) (*media.Entry, error) {
	c, err := l.get()
	if err != nil {
		return nil, err
	}
	return c.Episode(ctx, showID, season, episode)
}

func (l *lazyCatalog) Person(ctx context.Context, id string) (*media.Entry, error) {
	c, err := l.get()
	if err != nil {
		return nil, err
	}
	return c.Person(ctx, id)
}

// session bundles what an interactive command needs.
type session struct {
	cfg     *config.Config
	log     zerolog.Logger
	console *prompt.Console
	catalog media.Catalog
	flow    *search.Flow
}

func (s *session) host() string {
	return s.cfg.WebHost
}

func (s *session) parseURL(raw string) (media.Reference, error) {
	return media.ParseURL(raw, media.WithHost(s.host()), media.WithWarn(s.console.Warn))
}

func (c *commandContext) session(cmd *cobra.Command) (*session, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}

	level := cfg.LogLevel
	if c.logLevelFlag != "" {
		level = c.logLevelFlag
	}
	log := logging.New(level, cmd.ErrOrStderr())

	catalog := &lazyCatalog{build: func() (media.Catalog, error) {
		return c.newCatalog(cfg, log)
	}}

	// Menus, prompts and result lists go to stderr; stdout carries only
	// the command's answer.
	console := prompt.New(cmd.InOrStdin(), cmd.ErrOrStderr(), prompt.WithLogger(log))
	return &session{
		cfg:     cfg,
		log:     log,
		console: console,
		catalog: catalog,
		flow: &search.Flow{
			Catalog:    catalog,
			Console:    console,
			PinnedShow: cfg.PinnedShow,
			Host:       cfg.WebHost,
			Log:        log,
		},
	}, nil
}
