package service

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"talentplay/internal/live"
	"talentplay/internal/models"
	"talentplay/internal/repository"
)

// ResultStore is the persistence surface the result service needs.
// Implemented by repository.ResultRepository; faked in tests.
type ResultStore interface {
	Create(result *models.EvaluationResult) error
	GetByCode(code string) (*models.EvaluationResult, error)
	List() ([]models.EvaluationResult, error)
	ListInconsistent() ([]models.EvaluationResult, error)
	UpdateStatus(code string, from, to models.Status, completionDate *time.Time) error
	Delete(code string) error
}

// EventPublisher pushes change notifications to connected dashboards.
type EventPublisher interface {
	Broadcast(event live.Event)
}

// ResultService owns the evaluation result lifecycle: creation, the
// forward-only status machine, reconciliation of stale records, and
// deletion.
type ResultService struct {
	store     ResultStore
	publisher EventPublisher
	now       func() time.Time
}

// NewResultService creates a new result service
func NewResultService(store ResultStore, publisher EventPublisher) *ResultService {
	return &ResultService{
		store:     store,
		publisher: publisher,
		now:       time.Now,
	}
}

// Create issues a new assessment invitation record. The code is generated
// here and never reused; sentDate is stamped at creation and immutable.
func (s *ResultService) Create(name string, expiryDate time.Time) (*models.EvaluationResult, error) {
	now := s.now()
	result := &models.EvaluationResult{
		Code:       uuid.NewString(),
		Name:       name,
		Status:     models.StatusPending,
		SentDate:   now,
		ExpiryDate: expiryDate,
	}

	if err := s.store.Create(result); err != nil {
		return nil, fmt.Errorf("failed to create result: %w", err)
	}

	result.Derive()
	s.publisher.Broadcast(live.Event{Type: live.EventNewResult, Code: result.Code})

	return result, nil
}

// Get returns a single result by code, reconciled and with derived fields
// filled in.
func (s *ResultService) Get(code string) (*models.EvaluationResult, error) {
	result, err := s.store.GetByCode(code)
	if errors.Is(err, repository.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	s.reconcile(result)
	result.Derive()

	return result, nil
}

// List returns all results, reconciled and with derived fields filled in.
func (s *ResultService) List() ([]models.EvaluationResult, error) {
	results, err := s.store.List()
	if err != nil {
		return nil, err
	}

	for i := range results {
		s.reconcile(&results[i])
		results[i].Derive()
	}

	return results, nil
}

// Transition advances a result's lifecycle status. Only forward moves are
// accepted: pending → inProgress, inProgress → completed, or the direct
// pending → completed skip. Entering completed stamps the completion date
// exactly once. A successful transition is broadcast on the live channel.
func (s *ResultService) Transition(code string, target models.Status) error {
	if !target.Valid() {
		return ErrInvalidTransition
	}

	result, err := s.store.GetByCode(code)
	if errors.Is(err, repository.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if !result.Status.CanTransitionTo(target) {
		return ErrInvalidTransition
	}

	var completionDate *time.Time
	if target == models.StatusCompleted && result.CompletionDate == nil {
		now := s.now()
		completionDate = &now
	}

	err = s.store.UpdateStatus(code, result.Status, target, completionDate)
	if errors.Is(err, repository.ErrNoRows) {
		// A concurrent transition won the compare-and-swap. Reject rather
		// than overwrite; the caller can re-read and retry if it still
		// makes sense.
		return ErrInvalidTransition
	}
	if err != nil {
		return err
	}

	s.publisher.Broadcast(live.Event{Type: live.EventResultUpdate, Code: code})

	return nil
}

// Delete removes a result. Deliberately emits no live event: the deleting
// dashboard re-fetches on the confirmed response, and other viewers catch
// up on the next poll cycle.
func (s *ResultService) Delete(code string) error {
	err := s.store.Delete(code)
	if errors.Is(err, repository.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// Reconcile sweeps for records stuck in pending with a completion
// timestamp and heals them. Returns how many records were corrected.
func (s *ResultService) Reconcile() (int, error) {
	results, err := s.store.ListInconsistent()
	if err != nil {
		return 0, err
	}

	healed := 0
	for i := range results {
		if s.reconcile(&results[i]) {
			healed++
		}
	}

	return healed, nil
}

// reconcile self-heals a record observed as pending but already carrying a
// completion timestamp, forcing it to completed and emitting a correcting
// update. Returns whether a correction was persisted. Failures are logged,
// not propagated: a read must not fail because a repair did.
func (s *ResultService) reconcile(result *models.EvaluationResult) bool {
	if !result.NeedsReconciliation() {
		return false
	}

	err := s.store.UpdateStatus(result.Code, result.Status, models.StatusCompleted, result.CompletionDate)
	if errors.Is(err, repository.ErrNoRows) {
		// Another reader healed it first.
		result.Status = models.StatusCompleted
		return false
	}
	if err != nil {
		slog.Error("Failed to reconcile stale result", "code", result.Code, "error", err)
		return false
	}

	result.Status = models.StatusCompleted
	slog.Warn("Healed inconsistent result", "code", result.Code)
	s.publisher.Broadcast(live.Event{Type: live.EventResultUpdate, Code: result.Code})

	return true
}
