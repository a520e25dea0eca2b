package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/specialistvlad/nodesim/internal/addressspace"
	"github.com/specialistvlad/nodesim/internal/config"
	"github.com/specialistvlad/nodesim/internal/hclconfig"
	"github.com/specialistvlad/nodesim/internal/jsonconfig"
	"github.com/specialistvlad/nodesim/internal/publisher"
	"github.com/specialistvlad/nodesim/internal/scheduler"
	"github.com/specialistvlad/nodesim/internal/timer"
)

// Connector opens the NATS connection used for change mirroring. The returned
// close function releases it.
type Connector func(ctx context.Context, url string, logger *slog.Logger) (conn publisher.Conn, closeFn func() error, err error)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config

	space     *addressspace.Space
	timers    scheduler.Timers
	loaders   map[string]config.Loader
	fallback  config.Loader
	connector Connector

	mu         sync.Mutex
	scheduler  *scheduler.Scheduler
	publisher  *publisher.Publisher
	httpServer *http.Server
	// started is closed once Run has started the simulation.
	started   chan struct{}
	startOnce sync.Once
}

// Option configures an App.
type Option func(*App)

// WithTimers replaces the timer service driving the simulation.
func WithTimers(t scheduler.Timers) Option {
	return func(a *App) { a.timers = t }
}

// WithLoader registers a loader for a file extension such as ".toml".
func WithLoader(ext string, l config.Loader) Option {
	return func(a *App) { a.loaders[ext] = l }
}

// WithConnector replaces the NATS connector.
func WithConnector(c Connector) Option {
	return func(a *App) { a.connector = c }
}

// NewApp is the constructor for the main application. It returns an App with
// its own isolated logger and an address space holding only the root folder.
func NewApp(outW io.Writer, cfg *Config, opts ...Option) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	jsonLoader := jsonconfig.NewLoader()
	a := &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		space:  addressspace.New(),
		timers: timer.NewService(),
		loaders: map[string]config.Loader{
			".json": jsonLoader,
			".yaml": jsonLoader,
			".yml":  jsonLoader,
			".hcl":  hclconfig.NewLoader(),
		},
		fallback:  jsonLoader,
		connector: connectNATS,
		started:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Space returns the application's address space. This is primarily for testing.
func (a *App) Space() *addressspace.Space {
	return a.space
}

// Started is closed once Run has started the simulation.
func (a *App) Started() <-chan struct{} {
	return a.started
}

// Stats returns the scheduler counters, or zero before Run started it.
func (a *App) Stats() scheduler.Stats {
	a.mu.Lock()
	s := a.scheduler
	a.mu.Unlock()
	if s == nil {
		return scheduler.Stats{}
	}
	return s.Stats()
}

func connectNATS(ctx context.Context, url string, logger *slog.Logger) (publisher.Conn, func() error, error) {
	conn, err := publisher.Connect(ctx, publisher.DefaultConnectionConfig(url), logger)
	if err != nil {
		return nil, nil, err
	}
	return conn, func() error { return publisher.Close(conn) }, nil
}
