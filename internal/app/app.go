package app

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/sirupsen/logrus"

	"github.com/five82/tally/internal/api"
	"github.com/five82/tally/internal/config"
	"github.com/five82/tally/internal/logging"
	"github.com/five82/tally/internal/prefs"
	"github.com/five82/tally/internal/state"
	"github.com/five82/tally/internal/ui"
)

// Options configure the Tally application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/tally/prefs.toml
	PageSize   int    // zero keeps the configured page size
	LogLevel   string // empty keeps the configured level
}

// runtime holds everything Run wires before the UI starts.
type runtime struct {
	cfg       config.Config
	log       *logrus.Logger
	resources api.Resources
	store     *state.Store
	prefs     prefs.Prefs
	prefsPath string
	closers   []io.Closer
}

func (r *runtime) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		_ = r.closers[i].Close()
	}
}

// Run boots the Tally TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	rt, err := setup(ctx, opts)
	if err != nil {
		return err
	}
	defer rt.Close()

	rt.log.WithField("api", rt.cfg.APIBase).Info("tally starting")
	err = ui.Run(ui.Options{
		Context:   ctx,
		Resources: rt.resources,
		Store:     rt.store,
		Config:    rt.cfg,
		Prefs:     rt.prefs,
		PrefsPath: rt.prefsPath,
		LogPath:   logging.Path(rt.cfg.LogDir),
		Logger:    rt.log,
	})
	if err != nil {
		rt.log.WithError(err).Error("ui exited")
		return fmt.Errorf("run ui: %w", err)
	}
	rt.log.Info("tally stopped")
	return nil
}

func setup(ctx context.Context, opts Options) (*runtime, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg, err = cfg.WithPageSize(opts.PageSize)
	if err != nil {
		return nil, fmt.Errorf("page size flag: %w", err)
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}

	logger, logFile, err := logging.New(logging.Options{Dir: cfg.LogDir, Level: cfg.LogLevel})
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}
	rt := &runtime{cfg: cfg, log: logger, closers: []io.Closer{logFile}}

	// Libraries that log through the standard logger must not write over the UI.
	stdlog := logger.WriterLevel(logrus.WarnLevel)
	log.SetOutput(stdlog)
	rt.closers = append(rt.closers, stdlog)

	client, err := api.NewClient(cfg.APIBase, api.Options{
		Token:     cfg.APIToken,
		Timeout:   cfg.RequestTimeout,
		RateLimit: cfg.RateLimit,
		Logger:    logger,
	})
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("init api client: %w", err)
	}
	rt.resources = api.NewResources(client)

	var mirror *state.Mirror
	if cfg.RedisAddr != "" {
		mirror, err = state.Dial(ctx, cfg.RedisAddr, cfg.CacheTTL, logger)
		if err != nil {
			logger.WithError(err).Warn("redis cache unavailable, using memory only")
			mirror = nil
		}
	}
	rt.store = state.NewStore(mirror)
	rt.closers = append(rt.closers, rt.store)

	rt.prefsPath = opts.PrefsPath
	if rt.prefsPath == "" {
		rt.prefsPath = config.PrefsPath()
	}
	userPrefs, err := prefs.Load(rt.prefsPath)
	if err != nil {
		logger.WithError(err).Warn("load preferences, using defaults")
	}
	rt.prefs = userPrefs

	return rt, nil
}
