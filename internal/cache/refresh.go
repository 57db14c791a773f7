// Package cache 持有最近一次聚合结果的单槽 TTL 缓存
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/LJTian/MarketCards/internal/processor"
)

// DefaultTTL 缓存有效期
const DefaultTTL = 30 * time.Minute

// Loader 重新计算集合，通常是 Pipeline.Run
type Loader func(ctx context.Context) (processor.Collection, error)

// RefreshCache 两个状态：空 / 已填充(value, expiry)。
// 检查过期、重算、写入在同一把锁内完成，并发读者等待并复用同一次重算的结果
type RefreshCache struct {
	mu     sync.Mutex
	ttl    time.Duration
	load   Loader
	now    func() time.Time
	log    logrus.FieldLogger
	filled bool
	value  processor.Collection
	expiry time.Time
}

func New(load Loader, ttl time.Duration, now func() time.Time, log logrus.FieldLogger) *RefreshCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &RefreshCache{
		ttl:  ttl,
		load: load,
		now:  now,
		log:  log.WithField("component", "cache"),
	}
}

// Get 未过期直接返回缓存；否则同步重算并写入。重算失败时状态不变并返回错误
func (c *RefreshCache) Get(ctx context.Context) (processor.Collection, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.filled && c.now().Before(c.expiry) {
		c.log.Debug("using cached version")
		return c.value, nil
	}

	c.log.Info("refreshing cache...")
	// 调用方断开不应中断已经开始的重算，等待中的其他读者还要用这次结果
	v, err := c.load(context.WithoutCancel(ctx))
	if err != nil {
		c.log.WithError(err).Error("refresh failed")
		return processor.Collection{}, err
	}

	c.value = v
	c.expiry = c.now().Add(c.ttl)
	c.filled = true
	return v, nil
}

// Expiry 返回当前缓存的过期时间；未填充时 ok 为 false
func (c *RefreshCache) Expiry() (t time.Time, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.expiry, c.filled
}
