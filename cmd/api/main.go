package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/LJTian/MarketCards/internal/api"
	"github.com/LJTian/MarketCards/internal/cache"
	"github.com/LJTian/MarketCards/internal/collector"
	"github.com/LJTian/MarketCards/internal/config"
	"github.com/LJTian/MarketCards/internal/generator"
	"github.com/LJTian/MarketCards/internal/logger"
	"github.com/LJTian/MarketCards/internal/pipeline"
	"github.com/LJTian/MarketCards/internal/scheduler"
	"github.com/LJTian/MarketCards/internal/storage"
)

func main() {
	cfg := config.Load()
	lg := logger.New(cfg.LogLevel, cfg.LogFile)

	if cfg.GeminiAPIKey == "" {
		log.Fatalf("GEMINI_API_KEY is required")
	}

	sources, err := config.LoadSources(cfg.SourcesFile)
	if err != nil {
		log.Fatalf("load sources failed: %v", err)
	}
	lg.Infof("loaded %d feeds", len(sources.Feeds))

	p := newPipeline(cfg, sources, lg)

	load := cache.Loader(p.Run)
	// 配置了 Redis 时多副本共享最近一次结果
	if cfg.RedisAddr != "" {
		rdb := storage.Dial(cfg.RedisAddr, lg)
		defer rdb.Close()
		load = storage.NewSnapshotStore(rdb, cfg.SnapshotMaxAge, lg).Wrap(p.Run)
	}
	c := cache.New(load, cfg.CacheTTL, config.Now, lg)

	if cfg.WarmCron != "" {
		s, err := scheduler.New(cfg.WarmCron, c, lg)
		if err != nil {
			log.Fatalf("init scheduler failed: %v", err)
		}
		// 延迟首轮预热，避免与进程启动争抢资源
		s.Start(15 * time.Second)
		defer s.Stop()
	}

	r := gin.Default()
	api.NewServer(c).RegisterRoutes(r)

	addr := ":" + cfg.AppPort
	lg.Infof("starting api server at %s ...", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server exit: %v", err)
	}
}

func newPipeline(cfg *config.Config, sources *config.Sources, lg *logrus.Logger) *pipeline.Pipeline {
	provider := generator.NewGeminiProvider(cfg.GeminiBaseURL, cfg.GeminiModel, cfg.GeminiAPIKey)
	tr := generator.NewTransformer(provider, generator.Options{
		Policy:  generator.DefaultRetryPolicy,
		Timeout: cfg.TransformTimeout,
		RPS:     cfg.TransformRPS,
		Logger:  lg,
	})
	in := pipeline.NewIngestor(
		collector.NewFeedCollector(cfg.FetchTimeout),
		tr,
		sources.TagsFor,
		config.Now,
		cfg.TransformConcurrency,
	)
	return pipeline.New(sources.Feeds, in, cfg.MaxPerCategory, cfg.FetchConcurrency, lg)
}
