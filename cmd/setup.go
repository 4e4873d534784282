package cmd

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/fqhc-resume/internal/ai"
	"github.com/spigell/fqhc-resume/internal/ai/gemini"
	"github.com/spigell/fqhc-resume/internal/catalog"
	"github.com/spigell/fqhc-resume/internal/content"
	"github.com/spigell/fqhc-resume/internal/filtering"
	"github.com/spigell/fqhc-resume/internal/logger"
	"github.com/spigell/fqhc-resume/internal/recommend"
	"github.com/spigell/fqhc-resume/internal/resume"
	"github.com/spigell/fqhc-resume/internal/secrets"
)

const geminiKeyEnv = "GEMINI_API_KEY"

// env bundles what every command needs after startup.
type env struct {
	config  *Config
	logger  *zap.Logger
	catalog *catalog.Catalog
	store   *content.Store
}

// setup builds the logger, reads the config and loads the data files. Failures are fatal.
func setup() *env {
	logger, err := newLogger()
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	c, err := loadCatalog(config.CatalogFile)
	if err != nil {
		logger.Fatal("loading question catalog", zap.String("path", config.CatalogFile), zap.Error(err))
	}

	store, err := loadStore(config.ContentFile)
	if err != nil {
		logger.Fatal("loading content blocks", zap.String("path", config.ContentFile), zap.Error(err))
	}

	return &env{config: config, logger: logger, catalog: c, store: store}
}

func newLogger() (*zap.Logger, error) {
	return logger.New(viper.GetBool("json"), viper.GetBool("debug"))
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(path)
}

func loadStore(path string) (*content.Store, error) {
	if strings.TrimSpace(path) == "" {
		return content.Default(), nil
	}
	return content.Load(path)
}

func prepareFilters(config *Config, lg *zap.Logger) *filtering.Filtering {
	var excluded []string
	if config.Exclude != nil {
		excluded = config.Exclude.Blocks
	}

	return filtering.New([]filtering.Filter{
		filtering.NewExcludedBlocks(excluded, lg),
		filtering.NewDismissedFile(config.DismissedFile, lg),
		filtering.NewLimit(config.MaxBullets, lg),
	}, lg)
}

// prepareSummarizer returns nil when AI summaries are disabled.
func prepareSummarizer(ctx context.Context, config *Config, lg *zap.Logger) (ai.Summarizer, error) {
	if config.AI == nil || !config.AI.Enabled {
		return nil, nil
	}

	provider := strings.ToLower(strings.TrimSpace(config.AI.Provider))
	if provider != "" && provider != gemini.Provider {
		return nil, fmt.Errorf("unsupported ai provider %q", config.AI.Provider)
	}

	geminiCfg := config.AI.Gemini
	if geminiCfg == nil {
		geminiCfg = &GeminiConfig{}
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: geminiCfg.APIKey,
		File:  geminiCfg.APIKeyFile,
		Env:   geminiKeyEnv,
	})
	if err != nil {
		return nil, err
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, geminiCfg.Model, geminiCfg.MaxRetries, lg)
	if err != nil {
		return nil, err
	}

	lg.Info("ai summaries enabled", logger.AIFields(gemini.Provider, generator.Model())...)

	return gemini.NewSummarizer(generator, lg, geminiCfg.MaxLogLength), nil
}

// newBuilder wires the full pipeline, including the summarizer when ai.enabled is set.
func (e *env) newBuilder(ctx context.Context) *resume.Builder {
	summarizer, err := prepareSummarizer(ctx, e.config, e.logger)
	if err != nil {
		e.logger.Fatal("preparing ai summarizer", zap.Error(err),
			zap.String("hint", "set GEMINI_API_KEY or ai.gemini.api-key-file, or disable ai.enabled"),
		)
	}

	return resume.NewBuilder(
		recommend.NewResolver(e.catalog),
		e.store,
		prepareFilters(e.config, e.logger),
		summarizer,
		e.logger,
	)
}

func (e *env) language(flag string) content.Language {
	value := flag
	if value == "" {
		value = e.config.Language
	}
	lang, err := content.ParseLanguage(value)
	if err != nil {
		e.logger.Fatal("parsing language", zap.Error(err))
	}
	return lang
}
