package scheduler

import (
	"log/slog"
	"time"

	"talentplay/internal/config"
)

// Reconciler heals inconsistent result records.
type Reconciler interface {
	Reconcile() (int, error)
}

// ExpiryCounter counts lapsed invitations.
type ExpiryCounter interface {
	CountExpired(now time.Time) (int, error)
}

// Scheduler runs periodic maintenance tasks: the reconciliation sweep
// that backs up the on-read self-healing, and an expiry sweep that logs
// how many invitations lapsed unanswered.
type Scheduler struct {
	reconciler Reconciler
	expiries   ExpiryCounter
	config     *config.SchedulerConfig
	stopChan   chan struct{}
}

// NewScheduler creates a new scheduler
func NewScheduler(reconciler Reconciler, expiries ExpiryCounter, cfg *config.SchedulerConfig) *Scheduler {
	return &Scheduler{
		reconciler: reconciler,
		expiries:   expiries,
		config:     cfg,
		stopChan:   make(chan struct{}),
	}
}

// Start launches all enabled tasks
func (s *Scheduler) Start() {
	slog.Info("Starting scheduler",
		"reconcile_enabled", s.config.EnableReconcile,
		"expiry_sweep_enabled", s.config.EnableExpirySweep)

	if s.config.EnableReconcile {
		go s.runInterval("reconcile", s.config.ReconcileInterval, s.runReconcile)
	}

	if s.config.EnableExpirySweep {
		go s.runInterval("expiry_sweep", s.config.ExpirySweepInterval, s.runExpirySweep)
	}
}

// Stop terminates all running tasks
func (s *Scheduler) Stop() {
	close(s.stopChan)
	slog.Info("Scheduler stopped")
}

func (s *Scheduler) runInterval(name string, interval time.Duration, task func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			slog.Debug("Running scheduled task", "task", name)
			task()
		}
	}
}

func (s *Scheduler) runReconcile() {
	healed, err := s.reconciler.Reconcile()
	if err != nil {
		slog.Error("Reconciliation sweep failed", "error", err)
		return
	}
	if healed > 0 {
		slog.Warn("Reconciliation sweep healed stale results", "count", healed)
	}
}

func (s *Scheduler) runExpirySweep() {
	count, err := s.expiries.CountExpired(time.Now())
	if err != nil {
		slog.Error("Expiry sweep failed", "error", err)
		return
	}
	if count > 0 {
		slog.Info("Invitations lapsed without completion", "count", count)
	}
}
