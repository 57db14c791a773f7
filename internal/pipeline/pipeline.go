package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/LJTian/MarketCards/internal/config"
	"github.com/LJTian/MarketCards/internal/processor"
)

// Stats 一次聚合的统计，不输出到接口
type Stats struct {
	RunID         string
	Sources       int
	FailedSources int
	Entries       int
	Degraded      int
	Markets       int
	Duration      time.Duration
}

// Pipeline 遍历全部订阅源，按分类去重限量后拼成最终集合
type Pipeline struct {
	sources        []config.Source
	ingestor       *Ingestor
	maxPerCategory int
	concurrency    int
	log            logrus.FieldLogger

	// OnRun 每次聚合结束后回调，可为 nil
	OnRun func(Stats)
}

func New(sources []config.Source, ingestor *Ingestor, maxPerCategory, concurrency int, log logrus.FieldLogger) *Pipeline {
	if concurrency <= 0 {
		concurrency = 1
	}
	if maxPerCategory <= 0 {
		maxPerCategory = processor.DefaultMaxPerCategory
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Pipeline{
		sources:        sources,
		ingestor:       ingestor,
		maxPerCategory: maxPerCategory,
		concurrency:    concurrency,
		log:            log.WithField("component", "pipeline"),
	}
}

// Run 执行一次完整聚合。单个源失败只记录日志并跳过；只有 ctx 取消才返回错误
func (p *Pipeline) Run(ctx context.Context) (processor.Collection, error) {
	start := time.Now()
	runID := uuid.NewString()
	log := p.log.WithField("run_id", runID)
	log.Infof("start collect job, %d sources", len(p.sources))

	// 并发抓取，按配置下标落位，保证输出顺序与到达顺序无关
	results := make([]SourceResult, len(p.sources))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	stats := Stats{RunID: runID, Sources: len(p.sources)}
	failed := make([]bool, len(p.sources))

	for i, src := range p.sources {
		i, src := i, src
		g.Go(func() error {
			res, err := p.ingestor.Ingest(gctx, src)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				log.WithError(err).WithField("category", src.Category).Warnf("skip source %s", src.URL)
				failed[i] = true
				return nil
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return processor.Collection{}, err
	}
	if err := ctx.Err(); err != nil {
		return processor.Collection{}, err
	}

	// 分类顺序 = 配置中首次出现的顺序
	var order []string
	grouped := make(map[string][]processor.Market)
	for i, src := range p.sources {
		if failed[i] {
			stats.FailedSources++
		}
		if _, ok := grouped[src.Category]; !ok {
			order = append(order, src.Category)
			grouped[src.Category] = nil
		}
		grouped[src.Category] = append(grouped[src.Category], results[i].Markets...)
		stats.Entries += results[i].Entries
		stats.Degraded += results[i].Degraded
	}

	final := make([]processor.Market, 0, len(order)*p.maxPerCategory)
	for _, category := range order {
		unique := processor.DedupAndCap(grouped[category], p.maxPerCategory)
		log.Infof("%s: %d cards collected", category, len(unique))
		final = append(final, unique...)
	}

	stats.Markets = len(final)
	stats.Duration = time.Since(start)
	log.WithFields(logrus.Fields{
		"markets":        stats.Markets,
		"entries":        stats.Entries,
		"degraded":       stats.Degraded,
		"failed_sources": stats.FailedSources,
		"duration":       stats.Duration.String(),
	}).Info("collect job done (all sources)")

	if p.OnRun != nil {
		p.OnRun(stats)
	}
	return processor.NewCollection(final), nil
}
