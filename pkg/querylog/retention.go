package querylog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Pruner removes records older than the retention window.
type Pruner struct {
	store         Store
	retentionDays int
	logger        *slog.Logger
}

// NewPruner creates a pruner keeping retentionDays of records.
func NewPruner(store Store, retentionDays int) *Pruner {
	return &Pruner{
		store:         store,
		retentionDays: retentionDays,
		logger:        slog.Default().With("component", "querylog.pruner"),
	}
}

// Prune deletes records past the retention window and returns how many were
// removed. A retention of zero days disables pruning.
func (p *Pruner) Prune(ctx context.Context) (int64, error) {
	if p.retentionDays <= 0 {
		return 0, nil
	}

	cutoff := time.Now().AddDate(0, 0, -p.retentionDays)

	removed, err := p.store.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("pruning failed: %w", err)
	}

	if removed > 0 {
		p.logger.Info("pruned query log records",
			"removed", removed,
			"cutoff", cutoff.Format(time.RFC3339),
		)
	}

	return removed, nil
}

// Scheduler runs the pruner on a cron schedule.
type Scheduler struct {
	pruner   *Pruner
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger

	mu      sync.Mutex
	running bool
}

// NewScheduler creates a retention scheduler. schedule is a standard cron
// expression; empty disables scheduling.
func NewScheduler(pruner *Pruner, schedule string) *Scheduler {
	return &Scheduler{
		pruner:   pruner,
		schedule: schedule,
		cron:     cron.New(),
		logger:   slog.Default().With("component", "querylog.scheduler"),
	}
}

// Start begins scheduled pruning. It validates the cron expression and
// returns immediately; pruning runs in the cron goroutine until Stop.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.schedule == "" {
		s.logger.Info("prune schedule not configured, skipping scheduler")
		return nil
	}
	if s.running {
		return fmt.Errorf("scheduler already running")
	}

	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.schedule, err)
	}

	_, err := s.cron.AddFunc(s.schedule, func() {
		if _, err := s.pruner.Prune(ctx); err != nil {
			s.logger.Error("scheduled pruning failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule pruning: %w", err)
	}

	s.cron.Start()
	s.running = true
	s.logger.Info("retention scheduler started", "schedule", s.schedule)

	return nil
}

// Stop halts scheduled pruning, waiting for an in-flight run to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	<-s.cron.Stop().Done()
	s.running = false
	s.logger.Info("retention scheduler stopped")
}
