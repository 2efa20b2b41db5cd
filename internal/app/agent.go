package app

import (
	"context"
	"time"

	"github.com/nmoreaux/instalens-go/internal/domain"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

const warmConcurrency = 4

// Agent keeps the dashboard's data layer warm: it prefetches every resource
// on start, refreshes them on an interval, and forwards live feed events
// into the monitor. Failures never stop the agent - the UI shows the last
// known good value under a warning banner.
type Agent struct {
	container *Container
	logger    *zap.Logger

	unsubscribe func()
}

func NewAgent(container *Container) *Agent {
	return &Agent{
		container: container,
		logger:    container.Logger,
	}
}

// Start blocks until ctx is cancelled.
func (a *Agent) Start(ctx context.Context) error {
	cfg := a.container.Config

	if cfg.Agent.WarmOnStart {
		a.Warm(ctx)
	}

	if a.container.Feed != nil {
		a.unsubscribe = a.container.Feed.OnEvent(func(event *domain.Event) {
			if alert, ok := a.container.Monitor.Record(*event); ok {
				a.logger.Info("Monitoring alert",
					zap.String("type", alert.Type.String()),
					zap.String("message", alert.Message),
				)
			}
		})
		if err := a.container.Feed.Connect(ctx); err != nil {
			a.logger.Warn("Activity feed unavailable, continuing without it", zap.Error(err))
		}
	}

	ticker := time.NewTicker(cfg.Agent.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.Stop()
			return ctx.Err()
		case <-ticker.C:
			a.Warm(ctx)
		}
	}
}

// Warm prefetches every resource concurrently. Each fetch failure is logged
// and skipped; a cold resource is a banner in the UI, not a crash.
func (a *Agent) Warm(ctx context.Context) {
	started := time.Now()
	funcs := a.container.Resources.warmFuncs()

	p := pool.New().WithMaxGoroutines(warmConcurrency)
	for _, fn := range funcs {
		fn := fn
		p.Go(func() {
			if err := fn(ctx); err != nil {
				a.logger.Warn("Resource warm-up failed", zap.Error(err))
			}
		})
	}
	p.Wait()

	a.logger.Info("Resources warmed",
		zap.Int("resources", len(funcs)),
		zap.Duration("took", time.Since(started)),
	)
}

func (a *Agent) Stop() {
	if a.unsubscribe != nil {
		a.unsubscribe()
		a.unsubscribe = nil
	}
	if a.container.Feed != nil {
		_ = a.container.Feed.Disconnect()
	}
}
