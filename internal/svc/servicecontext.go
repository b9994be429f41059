package svc

import (
	"log"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx driver
	gocache "github.com/zeromicro/go-zero/core/stores/cache"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
	"github.com/zeromicro/go-zero/core/syncx"

	cachekeys "pulse-api/internal/cache"
	"pulse-api/internal/config"
	"pulse-api/internal/model"
	"pulse-api/internal/repo"
	analyzerpkg "pulse-api/pkg/analyzer"
	"pulse-api/pkg/confkit"
	llmpkg "pulse-api/pkg/llm"
	marketpkg "pulse-api/pkg/market"
	_ "pulse-api/pkg/market/coingecko"
	rewriterpkg "pulse-api/pkg/rewriter"
)

type ServiceContext struct {
	Config config.Config

	LLMConfig    *llmpkg.Config
	Provider     llmpkg.Provider
	MarketConfig *marketpkg.Config
	MarketSource marketpkg.Source

	Analyzer *analyzerpkg.Analyzer
	Rewriter *rewriterpkg.Rewriter

	DBConn        sqlx.SqlConn
	AnalysesModel model.AnalysesModel
	Cache         gocache.Cache
	TTL           cachekeys.TTLSet
	Analyses      repo.AnalysisStore
}

func NewServiceContext(c config.Config, mainConfigPath string) *ServiceContext {
	svc := &ServiceContext{
		Config: c,
		TTL:    cachekeys.NewTTLSet(c.TTL),
	}

	baseDir := confkit.BaseDir(mainConfigPath)

	// Load LLM config if specified. Absent config selects offline mode:
	// analyses still run, summaries come from the deterministic fallback.
	if c.LLM.File != "" {
		llmCfg, err := llmpkg.LoadConfig(confkit.ResolvePath(baseDir, c.LLM.File))
		if err != nil {
			log.Fatalf("failed to load llm config: %v", err)
		}
		client, err := llmpkg.NewClient(llmCfg)
		if err != nil {
			log.Fatalf("failed to build llm client: %v", err)
		}
		provider, err := llmpkg.NewProvider(client)
		if err != nil {
			log.Fatalf("failed to build llm provider: %v", err)
		}
		svc.LLMConfig = llmCfg
		svc.Provider = provider
	}

	// Load Market config if specified
	if c.Market.File != "" {
		marketCfg, err := marketpkg.LoadConfig(confkit.ResolvePath(baseDir, c.Market.File))
		if err != nil {
			log.Fatalf("failed to load market config: %v", err)
		}
		source, err := marketCfg.BuildDefault()
		if err != nil {
			log.Fatalf("failed to build market source: %v", err)
		}
		svc.MarketConfig = marketCfg
		svc.MarketSource = source
	}

	if svc.MarketSource != nil {
		a, err := analyzerpkg.New(svc.MarketSource, svc.Provider,
			analyzerpkg.WithModel(c.Analysis.Model),
			analyzerpkg.WithTemperature(c.Analysis.Temperature),
			analyzerpkg.WithMaxTokens(c.Analysis.MaxTokens),
			analyzerpkg.WithRecentWindow(c.Analysis.RecentWindow),
		)
		if err != nil {
			log.Fatalf("failed to build analyzer: %v", err)
		}
		svc.Analyzer = a
	}

	if svc.Provider != nil {
		rw, err := rewriterpkg.New(svc.Provider, c.Rewrite.Model)
		if err != nil {
			log.Fatalf("failed to build rewriter: %v", err)
		}
		svc.Rewriter = rw
	}

	// Only inject storage when a DSN is provided; the pipeline works without it.
	if c.Postgres.DSN != "" {
		conn := sqlx.NewSqlConn("pgx", c.Postgres.DSN)
		svc.DBConn = conn
		svc.AnalysesModel = model.NewAnalysesModel(conn)
	}

	if strings.TrimSpace(c.Redis.Host) != "" {
		cacheConf := gocache.CacheConf{{RedisConf: c.Redis, Weight: 100}}
		svc.Cache = gocache.New(cacheConf, syncx.NewSingleFlight(), gocache.NewStat(cachekeys.Namespace), model.ErrNotFound)
	}

	if svc.AnalysesModel != nil {
		store, err := repo.NewAnalysisStore(svc.AnalysesModel, svc.Cache, svc.TTL)
		if err != nil {
			log.Fatalf("failed to build analysis store: %v", err)
		}
		svc.Analyses = store
	}

	return svc
}
