package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/LJTian/MarketCards/internal/processor"
)

const (
	feedUserAgent      = "MarketCardsBot/1.0"
	feedDefaultTimeout = 15 * time.Second
)

// FeedCollector 用 colly 抓取 RSS 2.0 / RDF / Atom 订阅源
type FeedCollector struct {
	Timeout time.Duration
}

func NewFeedCollector(timeout time.Duration) *FeedCollector {
	if timeout <= 0 {
		timeout = feedDefaultTimeout
	}
	return &FeedCollector{Timeout: timeout}
}

func (f *FeedCollector) Fetch(ctx context.Context, url string) ([]processor.RawItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 每次抓取新建 collector，避免 colly 的已访问 URL 去重
	c := colly.NewCollector(colly.UserAgent(feedUserAgent))
	c.SetRequestTimeout(f.Timeout)

	items := make([]processor.RawItem, 0, 32)

	// 订阅源常以 text/html 或 text/plain 返回，统一按 XML 解析
	c.OnResponse(func(r *colly.Response) {
		r.Headers.Set("Content-Type", "application/xml")
	})

	// RSS 2.0 / RSS 1.0(RDF)
	c.OnXML("//item", func(e *colly.XMLElement) {
		items = append(items, processor.RawItem{
			Title:   titleOrDefault(e.ChildText("title")),
			Summary: firstNonEmpty(e.ChildText("description"), e.ChildText("summary")),
			Link:    firstNonEmpty(e.ChildText("link"), e.ChildAttr("link", "href"), e.ChildText("guid")),
		})
	})

	// Atom 1.0
	c.OnXML("//entry", func(e *colly.XMLElement) {
		items = append(items, processor.RawItem{
			Title:   titleOrDefault(e.ChildText("title")),
			Summary: firstNonEmpty(e.ChildText("summary"), e.ChildText("content")),
			Link:    firstNonEmpty(e.ChildAttr("link[@rel='alternate']", "href"), e.ChildAttr("link", "href")),
		})
	})

	if err := c.Visit(url); err != nil {
		return nil, fmt.Errorf("feed: visit %s: %w", url, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func titleOrDefault(title string) string {
	if title == "" {
		return DefaultTitle
	}
	return title
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
