package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mamoruimade/basicChatFeature/internal/config"
	"github.com/mamoruimade/basicChatFeature/internal/contextsource"
	"github.com/mamoruimade/basicChatFeature/internal/logging"
	"github.com/mamoruimade/basicChatFeature/store/sqlite"
)

// setup loads configuration and opens the application log.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	logger, err := logging.New(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log: %w", err)
	}
	return cfg, logger, nil
}

// openSource builds the prompt and document source. The extraction cache is
// optional: when it cannot be opened documents are extracted on every use.
func openSource(cfg *config.Config, logger *zap.Logger) (*contextsource.Source, func()) {
	opts := []contextsource.Option{contextsource.WithLogger(logger)}
	closer := func() {}

	cache, err := sqlite.New(cfg.CachePath)
	if err != nil {
		logger.Warn("extraction cache unavailable", zap.String("path", cfg.CachePath), zap.Error(err))
	} else {
		opts = append(opts, contextsource.WithCache(cache))
		closer = func() { cache.Close() }
	}
	return contextsource.New(cfg.PromptDir, cfg.PaperDir, opts...), closer
}
