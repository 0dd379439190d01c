package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"talentplay/internal/models"
)

// ErrNoRows is returned when a lookup matches no record. The service
// layer translates it into its own not-found error.
var ErrNoRows = errors.New("no matching record")

const resultColumns = `code, name, status, sent_date, completion_date, expiry_date,
		general_evaluation, strengths, development_areas,
		interview_questions, why_these_questions, development_suggestions,
		created_at, updated_at`

// ResultRepository handles evaluation result database operations
type ResultRepository struct {
	db *sql.DB
}

// NewResultRepository creates a new result repository
func NewResultRepository(db *sql.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

// Create inserts a new evaluation result
func (r *ResultRepository) Create(result *models.EvaluationResult) error {
	query := `
		INSERT INTO evaluation_results (code, name, status, sent_date, completion_date, expiry_date,
			general_evaluation, strengths, development_areas,
			interview_questions, why_these_questions, development_suggestions,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	now := time.Now()
	_, err := r.db.Exec(
		query,
		result.Code,
		result.Name,
		result.Status,
		result.SentDate,
		result.CompletionDate,
		result.ExpiryDate,
		result.GeneralEvaluation,
		result.Strengths,
		result.DevelopmentAreas,
		result.InterviewQuestions,
		result.WhyTheseQuestions,
		result.DevelopmentSuggestions,
		now,
		now,
	)

	if err != nil {
		return fmt.Errorf("failed to create evaluation result: %w", err)
	}

	return nil
}

// GetByCode retrieves a single evaluation result by its code
func (r *ResultRepository) GetByCode(code string) (*models.EvaluationResult, error) {
	query := `SELECT ` + resultColumns + ` FROM evaluation_results WHERE code = $1`

	result := &models.EvaluationResult{}
	err := scanResult(r.db.QueryRow(query, code), result)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoRows
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get evaluation result: %w", err)
	}

	return result, nil
}

// List retrieves all evaluation results, most recently sent first
func (r *ResultRepository) List() ([]models.EvaluationResult, error) {
	query := `SELECT ` + resultColumns + ` FROM evaluation_results ORDER BY sent_date DESC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list evaluation results: %w", err)
	}
	defer rows.Close()

	var results []models.EvaluationResult
	for rows.Next() {
		var result models.EvaluationResult
		if err := scanResult(rows, &result); err != nil {
			return nil, fmt.Errorf("failed to scan evaluation result: %w", err)
		}
		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read evaluation results: %w", err)
	}

	return results, nil
}

// ListInconsistent retrieves records marked pending that already carry a
// completion timestamp. Used by the reconciliation sweep.
func (r *ResultRepository) ListInconsistent() ([]models.EvaluationResult, error) {
	query := `SELECT ` + resultColumns + ` FROM evaluation_results
		WHERE status = $1 AND completion_date IS NOT NULL`

	rows, err := r.db.Query(query, models.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to list inconsistent results: %w", err)
	}
	defer rows.Close()

	var results []models.EvaluationResult
	for rows.Next() {
		var result models.EvaluationResult
		if err := scanResult(rows, &result); err != nil {
			return nil, fmt.Errorf("failed to scan evaluation result: %w", err)
		}
		results = append(results, result)
	}

	return results, rows.Err()
}

// CountExpired counts records whose invitation has lapsed without completion
func (r *ResultRepository) CountExpired(now time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM evaluation_results
		WHERE expiry_date < $1 AND status <> $2`

	var count int
	if err := r.db.QueryRow(query, now, models.StatusCompleted).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count expired results: %w", err)
	}

	return count, nil
}

// UpdateStatus persists a status change with a compare-and-swap on the
// previously observed status. A concurrent transition that got there first
// leaves zero rows matched and the caller gets ErrNoRows, never a silent
// overwrite.
func (r *ResultRepository) UpdateStatus(code string, from, to models.Status, completionDate *time.Time) error {
	query := `
		UPDATE evaluation_results
		SET status = $1,
		    completion_date = COALESCE(completion_date, $2),
		    updated_at = $3
		WHERE code = $4 AND status = $5
	`

	res, err := r.db.Exec(query, to, completionDate, time.Now(), code, from)
	if err != nil {
		return fmt.Errorf("failed to update result status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNoRows
	}

	return nil
}

// Delete removes an evaluation result. Hard delete, no tombstone.
func (r *ResultRepository) Delete(code string) error {
	res, err := r.db.Exec(`DELETE FROM evaluation_results WHERE code = $1`, code)
	if err != nil {
		return fmt.Errorf("failed to delete evaluation result: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNoRows
	}

	return nil
}

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func scanResult(s scanner, result *models.EvaluationResult) error {
	return s.Scan(
		&result.Code,
		&result.Name,
		&result.Status,
		&result.SentDate,
		&result.CompletionDate,
		&result.ExpiryDate,
		&result.GeneralEvaluation,
		&result.Strengths,
		&result.DevelopmentAreas,
		&result.InterviewQuestions,
		&result.WhyTheseQuestions,
		&result.DevelopmentSuggestions,
		&result.CreatedAt,
		&result.UpdatedAt,
	)
}
