package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/jentrix/cityscout/internal/logger"
)

// WeatherPruner removes stale weather rows and reports how many went.
type WeatherPruner interface {
	DeleteStale(ctx context.Context, maxAge time.Duration) (int64, error)
}

// Sweeper periodically prunes weather rows past the staleness threshold.
// The read path performs its own staleness check; the sweeper only reclaims
// rows nobody asks for again.
type Sweeper struct {
	scheduler *gocron.Scheduler
	pruner    WeatherPruner
	maxAge    time.Duration
	interval  time.Duration
	log       *zap.SugaredLogger
}

// New creates a new Sweeper.
func New(pruner WeatherPruner, maxAge, interval time.Duration) *Sweeper {
	return &Sweeper{
		scheduler: gocron.NewScheduler(time.UTC),
		pruner:    pruner,
		maxAge:    maxAge,
		interval:  interval,
		log:       logger.GetLogger("sweeper"),
	}
}

// Start schedules the periodic prune job and starts the underlying
// scheduler. A zero interval disables the sweeper.
func (s *Sweeper) Start() error {
	if s.interval <= 0 {
		s.log.Info("sweeper disabled")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		pruned, err := s.pruner.DeleteStale(ctx, s.maxAge)
		if err != nil {
			s.log.Errorf("prune failed: %v", err)
			return
		}
		if pruned > 0 {
			s.log.Infof("pruned %d stale weather rows", pruned)
		}
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Sweeper) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
