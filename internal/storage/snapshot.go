package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/LJTian/MarketCards/internal/processor"
)

const snapshotKey = "marketcards:snapshot"

// SnapshotStore 多副本部署时共享最近一次聚合结果。
// 键自带较短的 TTL，重启或长时间无人刷新后自然消失，不做持久化
type SnapshotStore struct {
	rdb    *redis.Client
	maxAge time.Duration
	log    logrus.FieldLogger
}

func NewSnapshotStore(rdb *redis.Client, maxAge time.Duration, log logrus.FieldLogger) *SnapshotStore {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &SnapshotStore{rdb: rdb, maxAge: maxAge, log: log.WithField("component", "snapshot")}
}

// Dial 连接 Redis；ping 失败只告警，后续读写失败会回退到直接计算
func Dial(addr string, log logrus.FieldLogger) *redis.Client {
	rdb := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil && log != nil {
		log.WithError(err).Warn("redis ping failed")
	}
	return rdb
}

// Load 返回仍在有效期内的快照；不存在时 ok 为 false
func (s *SnapshotStore) Load(ctx context.Context) (processor.Collection, bool, error) {
	bs, err := s.rdb.Get(ctx, snapshotKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return processor.Collection{}, false, nil
		}
		return processor.Collection{}, false, fmt.Errorf("redis: get snapshot: %w", err)
	}

	var c processor.Collection
	if err := json.Unmarshal(bs, &c); err != nil {
		return processor.Collection{}, false, fmt.Errorf("redis: unmarshal snapshot: %w", err)
	}
	return c, true, nil
}

func (s *SnapshotStore) Save(ctx context.Context, c processor.Collection) error {
	bs, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("redis: marshal snapshot: %w", err)
	}
	if err := s.rdb.Set(ctx, snapshotKey, bs, s.maxAge).Err(); err != nil {
		return fmt.Errorf("redis: set snapshot: %w", err)
	}
	return nil
}

// Wrap 在 load 之前先查共享快照，计算完成后回写。Redis 出错不影响结果
func (s *SnapshotStore) Wrap(load func(context.Context) (processor.Collection, error)) func(context.Context) (processor.Collection, error) {
	return func(ctx context.Context) (processor.Collection, error) {
		c, ok, err := s.Load(ctx)
		if err != nil {
			s.log.WithError(err).Warn("load snapshot failed, recomputing")
		} else if ok {
			s.log.Info("using shared snapshot")
			return c, nil
		}

		c, err = load(ctx)
		if err != nil {
			return c, err
		}
		if err := s.Save(ctx, c); err != nil {
			s.log.WithError(err).Warn("save snapshot failed")
		}
		return c, nil
	}
}
