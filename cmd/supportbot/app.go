package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/fundedfolk/supportbot/internal/config"
	"github.com/fundedfolk/supportbot/internal/db"
	dbRedis "github.com/fundedfolk/supportbot/internal/db/redis"
	"github.com/fundedfolk/supportbot/internal/domain"
	"github.com/fundedfolk/supportbot/internal/index"
	logpkg "github.com/fundedfolk/supportbot/internal/logger"
	"github.com/fundedfolk/supportbot/internal/metrics"
	budgetrepo "github.com/fundedfolk/supportbot/internal/repository/budget"
	"github.com/fundedfolk/supportbot/internal/repository/embcache"
	"github.com/fundedfolk/supportbot/internal/repository/pagecache"
	openaiEmb "github.com/fundedfolk/supportbot/internal/transport/openai"
	"github.com/fundedfolk/supportbot/internal/transport/openrouter"
	"github.com/fundedfolk/supportbot/internal/transport/scrape"
	chatuc "github.com/fundedfolk/supportbot/internal/usecase/chat"
	embeddinguc "github.com/fundedfolk/supportbot/internal/usecase/embedding"
	"github.com/fundedfolk/supportbot/internal/usecase/generate"
	healthuc "github.com/fundedfolk/supportbot/internal/usecase/health"
	retrievaluc "github.com/fundedfolk/supportbot/internal/usecase/retrieval"
	"github.com/fundedfolk/supportbot/internal/usecase/router"
	"github.com/fundedfolk/supportbot/internal/version"
)

// Service identity reported by the banner and health endpoints.
const (
	apiName    = "Funded Folk RAG Chatbot API"
	apiVersion = "1.0.0"
)

// embeddingProvider labels metrics and budget counters.
const embeddingProvider = "openai"

// Budget counter TTLs: generous slack past the period they cover so a
// restart near midnight never resurrects expired counters.
const (
	budgetDailyTTL = 48 * time.Hour
	budgetMonthTTL = 62 * 24 * time.Hour
)

// app is the composition root shared by the serve, chat and index
// commands. Close releases what bootstrap opened.
type app struct {
	env    string
	cfg    config.Config
	logger *zap.Logger
	store  db.Store

	index  *index.Store
	chat   *chatuc.Service
	health *healthuc.Service
}

// bootstrap loads configuration and assembles the full service graph.
// The index is not loaded here; callers decide between LoadOrBuild and
// Rebuild.
func bootstrap(ctx context.Context, env, envFile string) (*app, error) {
	if err := loadDotenv(envFile); err != nil {
		return nil, err
	}
	if env == "" {
		env = config.GetEnv()
	}

	cfg, err := config.Load(env)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	logger.Info("Starting supportbot",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.String("corpus", cfg.Corpus.Path),
		zap.String("index_dir", cfg.Index.Dir),
		zap.Bool("cache", cfg.Cache.Enabled),
	)

	// Optional Redis cache. Everything degrades gracefully without it:
	// in-memory budget counters, no embedding cache, live page fetches.
	var store db.Store
	if cfg.Cache.Enabled {
		redisStore, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
		if err != nil {
			return nil, fmt.Errorf("create cache store: %w", err)
		}
		readiness := time.Duration(cfg.Cache.ReadinessTimeout) * time.Second
		if err := redisStore.WaitForReady(ctx, readiness); err != nil {
			redisStore.Close()
			return nil, fmt.Errorf("cache not ready: %w", err)
		}
		store = redisStore
		logger.Info("Connected to cache", zap.Strings("addrs", cfg.Cache.Addrs))
	}

	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterChatMetrics()

	// Single BudgetTracker shared by the build and query embedders.
	var budget *embeddinguc.BudgetTracker
	budgetCfg := cfg.Embedding.Budget
	if budgetCfg.DailyTokenLimit > 0 || budgetCfg.MonthlyTokenLimit > 0 {
		action := embeddinguc.BudgetActionWarn
		if budgetCfg.Action == "reject" {
			action = embeddinguc.BudgetActionReject
		}
		budget = embeddinguc.NewBudgetTracker(
			embeddingProvider, budgetCfg.DailyTokenLimit, budgetCfg.MonthlyTokenLimit, action, logger,
		)
		if store != nil {
			// Connect persistence store — loads current counters from Redis.
			budget.WithStore(ctx, budgetrepo.New(store, budgetDailyTTL, budgetMonthTTL))
		}
	}

	// Pass nil interface (not typed nil pointer!) if budget is not configured.
	// Go gotcha: (*BudgetTracker)(nil) wrapped in BudgetChecker != nil.
	var budgetChecker embeddinguc.BudgetChecker
	if budget != nil {
		budgetChecker = budget
	}

	embedder := buildEmbedder(cfg, store, budgetChecker, logger)
	logger.Info("Embedder created",
		zap.String("provider", embeddingProvider),
		zap.String("model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
	)

	indexStore := index.New(
		cfg.Index.Dir, cfg.Corpus.Path,
		cfg.Embedding.Dimensions, cfg.Index.MaxChunkChars,
		embedder, logger,
	)

	retriever := retrievaluc.New(indexStore, embedder)

	var pages generate.PageFetcher = scrape.NewFetcher(&scrape.Config{
		BaseURL: cfg.Scrape.BaseURL,
		Timeout: time.Duration(cfg.Scrape.TimeoutSec) * time.Second,
	})
	if store != nil {
		pageTTL := time.Duration(cfg.Cache.PageTTLSec) * time.Second
		pages = pagecache.NewFetcher(pages, store, pageTTL, logger)
	}

	completer := openrouter.NewCompleter(&openrouter.Config{
		APIKey:  cfg.Completion.APIKey,
		BaseURL: cfg.Completion.BaseURL,
		Timeout: time.Duration(cfg.Completion.RequestTimeoutSec) * time.Second,
		Logger:  logger,
	})
	models := domain.ModelSet{
		Simple:  cfg.Completion.SimpleModel,
		Complex: cfg.Completion.ComplexModel,
	}
	routerSvc := router.New(completer, models, router.NewState(), logger)

	generator := generate.New(pages, routerSvc, logger)

	return &app{
		env:    env,
		cfg:    cfg,
		logger: logger,
		store:  store,
		index:  indexStore,
		chat:   chatuc.New(retriever, generator, logger),
		health: healthuc.New(apiName, apiVersion, indexStore),
	}, nil
}

// close releases bootstrap resources. Safe on a partially built app.
func (a *app) close() {
	if a.store != nil {
		a.store.Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// buildEmbedder assembles the decorator chain:
// OpenAI -> Cached -> [Instruction] -> Instrumented -> Batched.
func buildEmbedder(
	cfg config.Config, store db.Store,
	budget embeddinguc.BudgetChecker, logger *zap.Logger,
) *embeddinguc.BatchedEmbedder {
	base := openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:        cfg.Embedding.APIKey,
		BaseURL:       cfg.Embedding.BaseURL,
		Model:         cfg.Embedding.Model,
		Dimensions:    cfg.Embedding.Dimensions,
		MaxInputChars: cfg.Index.MaxChunkChars,
		Provider:      embeddingProvider,
		Logger:        logger,
	})

	// Cached
	var embedder domain.Embedder = base
	if store != nil {
		embedder = embcache.New(base, store, metrics.EmbeddingCacheTotal, logger)
	}

	// Instruction prefix sits outside the cache so cached vectors are
	// keyed on the text the provider actually saw.
	if cfg.Embedding.Instruction != "" {
		embedder = domain.NewInstructionEmbedder(embedder, cfg.Embedding.Instruction)
	}

	// Instrumented (budget + metrics)
	embedder = embeddinguc.NewInstrumentedEmbedder(
		embedder, embeddingProvider, cfg.Embedding.Model, budget, logger,
	)

	// Batched (outermost — provides EmbedAll with zero-vector degradation)
	return embeddinguc.NewBatchedEmbedder(
		embedder, cfg.Embedding.BatchSize, cfg.Embedding.Dimensions,
		embeddingProvider, cfg.Embedding.Model, logger,
	)
}

// loadDotenv loads envFile into the process environment. A missing
// file is fine; the environment may already carry everything.
func loadDotenv(envFile string) error {
	if envFile == "" {
		return nil
	}
	if err := godotenv.Load(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("load %s: %w", envFile, err)
	}
	return nil
}
