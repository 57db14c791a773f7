package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"

	"github.com/LJTian/MarketCards/internal/collector"
	"github.com/LJTian/MarketCards/internal/config"
	"github.com/LJTian/MarketCards/internal/generator"
	"github.com/LJTian/MarketCards/internal/logger"
	"github.com/LJTian/MarketCards/internal/pipeline"
)

// 只执行一轮聚合并把结果打印到 stdout，适合手动触发或调试订阅源
func main() {
	cfg := config.Load()
	// 日志走 stderr，stdout 只留 JSON
	lg := logger.New(cfg.LogLevel, cfg.LogFile)
	lg.SetOutput(os.Stderr)

	if cfg.GeminiAPIKey == "" {
		log.Fatalf("GEMINI_API_KEY is required")
	}
	sources, err := config.LoadSources(cfg.SourcesFile)
	if err != nil {
		log.Fatalf("load sources failed: %v", err)
	}

	tr := generator.NewTransformer(
		generator.NewGeminiProvider(cfg.GeminiBaseURL, cfg.GeminiModel, cfg.GeminiAPIKey),
		generator.Options{Timeout: cfg.TransformTimeout, RPS: cfg.TransformRPS, Logger: lg},
	)
	in := pipeline.NewIngestor(collector.NewFeedCollector(cfg.FetchTimeout), tr, sources.TagsFor, config.Now, cfg.TransformConcurrency)
	p := pipeline.New(sources.Feeds, in, cfg.MaxPerCategory, cfg.FetchConcurrency, lg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	col, err := p.Run(ctx)
	if err != nil {
		log.Fatalf("collect failed: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(col); err != nil {
		log.Fatalf("encode failed: %v", err)
	}
}
