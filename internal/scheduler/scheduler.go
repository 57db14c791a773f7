package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/LJTian/MarketCards/internal/processor"
)

// Reader 通过缓存读取集合；缓存未过期时不会触发重算
type Reader interface {
	Get(ctx context.Context) (processor.Collection, error)
}

// Scheduler 按 cron 周期读一次缓存，过期时由这次读取承担重算，用户请求不必等待
type Scheduler struct {
	cron   *cron.Cron
	reader Reader
	log    logrus.FieldLogger
}

func New(spec string, reader Reader, log logrus.FieldLogger) (*Scheduler, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	c := cron.New()

	s := &Scheduler{
		cron:   c,
		reader: reader,
		log:    log.WithField("component", "scheduler"),
	}

	if _, err := c.AddFunc(spec, s.runOnce); err != nil {
		return nil, err
	}
	return s, nil
}

// Start 启动 cron，并在 startupDelay 后做一次预热；startupDelay <= 0 表示不预热
func (s *Scheduler) Start(startupDelay time.Duration) {
	s.cron.Start()
	if startupDelay > 0 {
		time.AfterFunc(startupDelay, s.runOnce)
	}
}

// Stop 停止调度并等待正在执行的任务结束
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// RunOnce 对外暴露的单次执行入口，方便手动触发
func (s *Scheduler) RunOnce() {
	s.runOnce()
}

func (s *Scheduler) runOnce() {
	start := time.Now()
	c, err := s.reader.Get(context.Background())
	if err != nil {
		s.log.WithError(err).Error("warm cache failed")
		return
	}
	s.log.Infof("warm cache done, markets=%d took=%s", len(c.Markets()), time.Since(start).Round(time.Millisecond))
}
