package collector

import (
	"context"

	"github.com/LJTian/MarketCards/internal/processor"
)

// DefaultTitle 条目缺少标题时使用
const DefaultTitle = "Untitled"

// FeedFetcher 抽象一个订阅源的抓取与解析：给定 URL 返回按源顺序排列的条目
type FeedFetcher interface {
	Fetch(ctx context.Context, url string) ([]processor.RawItem, error)
}
