package scheduler

import (
	"context"
	"sync"
	"time"

	billingapp "github.com/propman/backend/internal/application/billing"
	"github.com/propman/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// RunStatus represents the status of one scheduled billing run
type RunStatus string

const (
	RunStatusRunning RunStatus = "RUNNING"
	RunStatusSuccess RunStatus = "SUCCESS"
	RunStatusFailed  RunStatus = "FAILED"
)

// RunRecord captures one billing run for inspection
type RunRecord struct {
	StartedAt   time.Time
	CompletedAt *time.Time
	PeriodStart time.Time
	Status      RunStatus
	Error       string
	Summary     *billingapp.GenerationSummary
}

// BillRunner generates bills for every billable unit in one period
type BillRunner interface {
	GenerateForBillableUnits(ctx context.Context, periodStart time.Time) (*billingapp.GenerationSummary, error)
}

// BillingScheduler fires the recurring billing run on a cron schedule.
// It polls once a minute and deduplicates by the matched minute, so a slow
// run never fires twice for the same slot.
type BillingScheduler struct {
	schedule      CronSchedule
	jobTimeout    time.Duration
	checkInterval time.Duration
	runner        BillRunner
	logger        *zap.Logger

	cancel     context.CancelFunc
	wg         sync.WaitGroup
	mu         sync.Mutex
	isRunning  bool
	lastRunKey string
	lastRecord *RunRecord
}

// NewBillingScheduler creates a scheduler from billing configuration
func NewBillingScheduler(cfg config.BillingConfig, runner BillRunner, logger *zap.Logger) (*BillingScheduler, error) {
	schedule, err := ParseCronSchedule(cfg.CronSchedule)
	if err != nil {
		return nil, err
	}

	return &BillingScheduler{
		schedule:      schedule,
		jobTimeout:    cfg.JobTimeout,
		checkInterval: time.Minute,
		runner:        runner,
		logger:        logger,
	}, nil
}

// Start starts the scheduler loop
func (s *BillingScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.runLoop(ctx)

	s.logger.Info("Billing scheduler started",
		zap.Duration("check_interval", s.checkInterval),
		zap.Duration("job_timeout", s.jobTimeout),
	)
	return nil
}

// Stop stops the scheduler and waits for an in-flight run to finish
func (s *BillingScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Billing scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// LastRun returns the most recent run record, or nil before the first run
func (s *BillingScheduler) LastRun() *RunRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastRecord == nil {
		return nil
	}
	record := *s.lastRecord
	return &record
}

// TriggerManualRun runs billing for the given period outside the schedule
func (s *BillingScheduler) TriggerManualRun(ctx context.Context, periodStart time.Time) (*billingapp.GenerationSummary, error) {
	return s.execute(ctx, periodStart)
}

func (s *BillingScheduler) runLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.checkAndRun(ctx)
		}
	}
}

func (s *BillingScheduler) checkAndRun(ctx context.Context) {
	now := time.Now()
	if !s.schedule.Matches(now) {
		return
	}

	runKey := now.Format("2006-01-02 15:04")
	s.mu.Lock()
	if s.lastRunKey == runKey {
		s.mu.Unlock()
		return
	}
	s.lastRunKey = runKey
	s.mu.Unlock()

	periodStart := PeriodStartFor(now)
	s.logger.Info("Triggering scheduled billing run",
		zap.Time("period_start", periodStart),
	)
	if _, err := s.execute(ctx, periodStart); err != nil {
		s.logger.Error("Scheduled billing run failed", zap.Error(err))
	}
}

func (s *BillingScheduler) execute(ctx context.Context, periodStart time.Time) (*billingapp.GenerationSummary, error) {
	record := &RunRecord{
		StartedAt:   time.Now(),
		PeriodStart: periodStart,
		Status:      RunStatusRunning,
	}
	s.mu.Lock()
	s.lastRecord = record
	s.mu.Unlock()

	if s.jobTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.jobTimeout)
		defer cancel()
	}

	summary, err := s.runner.GenerateForBillableUnits(ctx, periodStart)

	now := time.Now()
	s.mu.Lock()
	record.CompletedAt = &now
	if err != nil {
		record.Status = RunStatusFailed
		record.Error = err.Error()
	} else {
		record.Status = RunStatusSuccess
		record.Summary = summary
	}
	s.mu.Unlock()

	return summary, err
}

// PeriodStartFor returns the billing period a run at the given instant
// covers: midnight on the first of that month.
func PeriodStartFor(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
