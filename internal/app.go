package internal

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/starford/glosa/internal/analyzer"
	"github.com/starford/glosa/internal/dictionary"
	"github.com/starford/glosa/internal/images"
	"github.com/starford/glosa/internal/noteservice"
	"github.com/starford/glosa/internal/sse"
	"github.com/starford/glosa/internal/store"
)

// components is the wired object graph shared by every command.
type components struct {
	db       *store.DB
	resolver *dictionary.Resolver
	analyzer *analyzer.Service
	notes    *noteservice.Service
	images   *images.Client
	broker   *sse.Broker
}

func newApplication(opts []Option) (*application, error) {
	app := &application{logOutput: os.Stdout}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	return app, nil
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// build opens the database and wires services. The SSE broker is created
// only when withEvents is set; other commands have no subscribers.
func build(cfg *Config, logger *slog.Logger, withEvents bool) (*components, error) {
	db, err := store.Open(cfg.SQLite.Path)
	if err != nil {
		return nil, fmt.Errorf("init store: %w", err)
	}

	c := &components{db: db}
	if withEvents {
		c.broker = sse.NewBroker(cfg.SSE.EventThrottle)
	}

	client := dictionary.NewClient(cfg.Dictionary.ClientOptions(), logger)
	c.resolver = dictionary.NewResolver(client, db.Words(), logger)

	batch := analyzer.NewBatch(c.resolver, cfg.Analysis.Pacing(), logger)
	var analysisEvents analyzer.Events
	var noteEvents noteservice.Events
	if c.broker != nil {
		analysisEvents = c.broker
		noteEvents = c.broker
	}
	c.analyzer = analyzer.NewService(db, batch, analysisEvents, logger)
	c.notes = noteservice.NewService(db, noteEvents, logger)
	c.images = images.NewClient(cfg.Images.BaseURL, cfg.Images.AccessKey, cfg.Images.Timeout, logger)
	return c, nil
}

func (c *components) Close() {
	if c.broker != nil {
		c.broker.Close()
	}
	_ = c.db.Close()
}
