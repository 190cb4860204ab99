package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/yacademy/researchsite/internal/anchor"
	"github.com/yacademy/researchsite/internal/config"
	"github.com/yacademy/researchsite/internal/content"
	"github.com/yacademy/researchsite/internal/db"
	"github.com/yacademy/researchsite/internal/search"
	"github.com/yacademy/researchsite/internal/site"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `researchsite init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newLogger builds the process logger. Logs always go to stderr so that
// stdout stays free for command output and the MCP protocol.
func newLogger() (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	if verbose {
		zc = zap.NewDevelopmentConfig()
	}
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	return zc.Build()
}

func newLoader(cfg *config.Config, logger *zap.Logger) *content.Loader {
	loader := content.NewLoader(cfg.ContentDir, logger)
	if len(cfg.Include) > 0 {
		loader.Include = cfg.Include
	}
	loader.Exclude = cfg.Exclude
	return loader
}

// loadCorpus reads the corpus from the snapshot at snapshotPath when it is
// set, otherwise from the content directory.
func loadCorpus(ctx context.Context, cfg *config.Config, snapshotPath string, logger *zap.Logger) (*content.Corpus, error) {
	if snapshotPath == "" {
		return newLoader(cfg, logger).Load(ctx)
	}
	if _, err := os.Stat(snapshotPath); err != nil {
		return nil, fmt.Errorf("snapshot %s: %w\nRun `researchsite index` first", snapshotPath, err)
	}
	database, err := db.Open(snapshotPath)
	if err != nil {
		return nil, err
	}
	defer database.Close()
	return content.NewStore(database).Load(ctx)
}

// loadCorpusOrWarn is loadCorpus for the interactive surfaces: a missing
// corpus still serves the synthesized home and fallback pages.
func loadCorpusOrWarn(ctx context.Context, cfg *config.Config, snapshotPath string, logger *zap.Logger) *content.Corpus {
	corpus, err := loadCorpus(ctx, cfg, snapshotPath, logger)
	if err != nil {
		if errors.Is(err, content.ErrNoContent) {
			logger.Warn("no research content found, serving built-in pages only", zap.String("dir", cfg.ContentDir))
		} else {
			logger.Warn("could not load content, serving built-in pages only", zap.Error(err))
		}
		return nil
	}
	return corpus
}

func scrollConfig(cfg *config.Config) anchor.Config {
	s := cfg.Scroll
	return anchor.Config{
		InitialDelay:  s.InitialDelay,
		NavigateDelay: s.NavigateDelay,
		RetryInterval: s.RetryInterval,
		MaxRetries:    s.MaxRetries,
		HeaderOffset:  float64(s.HeaderOffset),
	}
}

func renderOptions(cfg *config.Config) site.Options {
	return site.Options{
		SiteTitle:    cfg.SiteTitle,
		Logo:         cfg.Logo,
		Base:         cfg.BasePath(),
		MaxResults:   cfg.Search.MaxResults,
		HighlightTag: cfg.Search.HighlightTag,
		Scroll:       scrollConfig(cfg),
	}
}

func searchOptions(cfg *config.Config, logger *zap.Logger) []search.Option {
	return []search.Option{
		search.WithLimit(cfg.Search.MaxResults),
		search.WithTag(cfg.Search.HighlightTag),
		search.WithLogger(logger),
	}
}
