package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/LJTian/MarketCards/internal/collector"
	"github.com/LJTian/MarketCards/internal/config"
	"github.com/LJTian/MarketCards/internal/generator"
	"github.com/LJTian/MarketCards/internal/processor"
)

// Transformer 把一段提示词转成问题与解释，失败时返回占位内容
type Transformer interface {
	Transform(ctx context.Context, prompt string) generator.Result
}

// Ingestor 处理单个订阅源：抓取 → 提示词 → 模型 → 组装卡片
type Ingestor struct {
	fetcher     collector.FeedFetcher
	transformer Transformer
	tagsFor     func(category string) []string
	now         func() time.Time
	// 所有订阅源共享，限制模型调用的总并发
	sem chan struct{}
}

func NewIngestor(f collector.FeedFetcher, t Transformer, tagsFor func(string) []string, now func() time.Time, concurrency int) *Ingestor {
	if concurrency <= 0 {
		concurrency = 1
	}
	if now == nil {
		now = time.Now
	}
	return &Ingestor{
		fetcher:     f,
		transformer: t,
		tagsFor:     tagsFor,
		now:         now,
		sem:         make(chan struct{}, concurrency),
	}
}

// SourceResult 单个订阅源的产出
type SourceResult struct {
	Markets  []processor.Market
	Entries  int
	Degraded int
}

// Ingest 抓取失败返回错误；单条转换失败只会产出占位卡片，输出保持源内顺序
func (in *Ingestor) Ingest(ctx context.Context, src config.Source) (SourceResult, error) {
	items, err := in.fetcher.Fetch(ctx, src.URL)
	if err != nil {
		return SourceResult{}, fmt.Errorf("pipeline: fetch %s: %w", src.URL, err)
	}
	if len(items) == 0 {
		return SourceResult{Markets: []processor.Market{}}, nil
	}

	tags := in.tagsFor(src.Category)
	markets := make([]processor.Market, len(items))
	degraded := make([]bool, len(items))

	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		in.sem <- struct{}{}
		go func(idx int, item processor.RawItem) {
			defer wg.Done()
			defer func() { <-in.sem }()

			res := in.transformer.Transform(ctx, generator.BuildPrompt(item.Title, item.Summary))
			// 每张卡片持有自己的标签切片
			cardTags := make([]string, len(tags))
			copy(cardTags, tags)
			markets[idx] = processor.BuildMarket(res.Transformed, src.Category, cardTags, item, in.now())
			degraded[idx] = res.Degraded
		}(i, item)
	}
	wg.Wait()

	out := SourceResult{Markets: markets, Entries: len(items)}
	for _, d := range degraded {
		if d {
			out.Degraded++
		}
	}
	return out, nil
}
