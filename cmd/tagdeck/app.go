package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mmcdole/tagdeck/internal/adapter"
	"github.com/mmcdole/tagdeck/internal/domain"
	"github.com/mmcdole/tagdeck/internal/mediaserver/mpd"
	"github.com/mmcdole/tagdeck/internal/service"
	"github.com/mmcdole/tagdeck/internal/store"
)

// app bundles the services shared by all subcommands
type app struct {
	cfg    *adapter.Config
	logger *slog.Logger

	store   *store.SongStore
	tags    *service.TagService
	library *service.LibraryService

	logCloser io.Closer
}

// newApp loads the configuration and wires the services.
// negotiator may be nil when no tag negotiation is wanted.
func newApp(negotiator domain.TagNegotiator) (*app, error) {
	cfg, err := adapter.LoadConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	a := &app{cfg: cfg}

	logger, closer, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	}
	a.logger, a.logCloser = logger, closer
	slog.SetDefault(logger)

	logger.Info("starting tagdeck", "version", Version)

	storePath, err := adapter.ExpandHome(cfg.Store.Path)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.store, err = store.NewSongStore(storePath, cfg.Server.URL)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to open song cache: %w", err)
	}

	a.tags = service.NewTagService(negotiator, logger)
	a.library = service.NewLibraryService(a.store, a.tags, logger)
	return a, nil
}

// configureTags applies the configured tag lists. allowed overrides the
// server.tagtypes setting when it is non-nil.
func (a *app) configureTags(allowed *domain.TagSet) error {
	var set domain.TagSet
	if allowed != nil {
		set = *allowed
	} else {
		set = service.ParseEnabledTags(a.logger, "server tags", a.cfg.Server.TagTypes, domain.AllTags())
	}
	_, err := a.tags.Configure(set, a.cfg.Server.TagsEnabled, a.cfg.Tags.Columns, a.cfg.Tags.Search)
	return err
}

// loadCatalog publishes the cached songs
func (a *app) loadCatalog() error {
	if !a.library.LoadCached(0) {
		return fmt.Errorf("no cached catalog, run 'tagdeck ingest' first")
	}
	return nil
}

func (a *app) Close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Error("failed to close song cache", "error", err)
		}
	}
	a.logger.Info("shutting down")
	if a.logCloser != nil {
		a.logCloser.Close()
	}
}

// readTagTypes reads a "tagtypes" response from path
func readTagTypes(path string) (*domain.TagSet, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open tagtypes response: %w", err)
	}
	defer f.Close()

	set, err := mpd.ParseTagTypes(f)
	if err != nil {
		return nil, err
	}
	return &set, nil
}
