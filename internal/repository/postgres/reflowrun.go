package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/naologic/reflow/internal/entity"
	"github.com/naologic/reflow/internal/repository"
)

// ReflowRunRepository implements repository.ReflowRunRepository for
// PostgreSQL. The result payload is stored as JSON since its shape (work
// orders, change list, explanation) has no relational structure worth
// normalizing for an audit record.
type ReflowRunRepository struct {
	db querier
}

// NewReflowRunRepository creates a new ReflowRunRepository.
func NewReflowRunRepository(db querier) *ReflowRunRepository {
	return &ReflowRunRepository{db: db}
}

// Create inserts a new reflow run record.
func (r *ReflowRunRepository) Create(ctx context.Context, run *entity.ReflowRun) error {
	resultJSON, err := encodeResult(run.Result)
	if err != nil {
		return fmt.Errorf("failed to encode reflow result: %w", err)
	}

	query := `
		INSERT INTO reflow_runs (id, status, requested_at, completed_at, result, error)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = r.db.ExecContext(ctx, query, run.ID, run.Status, run.RequestedAt, run.CompletedAt, resultJSON, run.Error)
	if err != nil {
		return fmt.Errorf("failed to create reflow run: %w", err)
	}
	return nil
}

// GetByID retrieves a reflow run by id.
func (r *ReflowRunRepository) GetByID(ctx context.Context, id string) (*entity.ReflowRun, error) {
	query := `SELECT id, status, requested_at, completed_at, result, error FROM reflow_runs WHERE id = $1`

	var resultJSON []byte
	run := &entity.ReflowRun{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&run.ID, &run.Status, &run.RequestedAt, &run.CompletedAt, &resultJSON, &run.Error)
	if err == sql.ErrNoRows {
		return nil, &repository.NotFoundError{ResourceType: "ReflowRun", ResourceID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reflow run: %w", err)
	}

	if run.Result, err = decodeResult(resultJSON); err != nil {
		return nil, fmt.Errorf("failed to decode reflow result: %w", err)
	}
	return run, nil
}

// Update replaces an existing reflow run's status and result.
func (r *ReflowRunRepository) Update(ctx context.Context, run *entity.ReflowRun) error {
	resultJSON, err := encodeResult(run.Result)
	if err != nil {
		return fmt.Errorf("failed to encode reflow result: %w", err)
	}

	query := `
		UPDATE reflow_runs
		SET status = $2, completed_at = $3, result = $4, error = $5
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, run.ID, run.Status, run.CompletedAt, resultJSON, run.Error)
	if err != nil {
		return fmt.Errorf("failed to update reflow run: %w", err)
	}
	return requireRowsAffected(result, "ReflowRun", run.ID)
}

// ListRecent returns up to limit reflow runs, most recently requested first.
func (r *ReflowRunRepository) ListRecent(ctx context.Context, limit int) ([]*entity.ReflowRun, error) {
	query := `SELECT id, status, requested_at, completed_at, result, error FROM reflow_runs ORDER BY requested_at DESC LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query reflow runs: %w", err)
	}
	defer rows.Close()

	var result []*entity.ReflowRun
	for rows.Next() {
		var resultJSON []byte
		run := &entity.ReflowRun{}
		if err := rows.Scan(&run.ID, &run.Status, &run.RequestedAt, &run.CompletedAt, &resultJSON, &run.Error); err != nil {
			return nil, fmt.Errorf("failed to scan reflow run: %w", err)
		}
		if run.Result, err = decodeResult(resultJSON); err != nil {
			return nil, fmt.Errorf("failed to decode reflow result: %w", err)
		}
		result = append(result, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reflow runs: %w", err)
	}
	return result, nil
}

// Count returns the number of recorded reflow runs.
func (r *ReflowRunRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reflow_runs`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count reflow runs: %w", err)
	}
	return count, nil
}

func encodeResult(result *entity.ReflowResult) ([]byte, error) {
	if result == nil {
		return nil, nil
	}
	return json.Marshal(result)
}

func decodeResult(raw []byte) (*entity.ReflowResult, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var result entity.ReflowResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
