package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkledger/inkledger_backend/internal/apperrors"
	"github.com/inkledger/inkledger_backend/internal/core/domain"
	portsrepo "github.com/inkledger/inkledger_backend/internal/core/ports/repositories"
	"github.com/inkledger/inkledger_backend/internal/utils/pagination"
)

// PgxAssignmentRepository implements assignment persistence using pgxpool.
type PgxAssignmentRepository struct {
	pool *pgxpool.Pool
}

// NewPgxAssignmentRepository creates a new repository for assignment data.
func NewPgxAssignmentRepository(pool *pgxpool.Pool) portsrepo.AssignmentRepositoryFacade {
	return &PgxAssignmentRepository{pool: pool}
}

var _ portsrepo.AssignmentRepositoryFacade = (*PgxAssignmentRepository)(nil)

const assignmentColumns = `assignment_id, client_id, super_agent_id, agent_id, super_worker_id, worker_id,
	title, word_count, requested_at, deadline,
	base_price_gbp, agent_fee_gbp, urgency_charge_gbp, total_price_gbp, urgency_level,
	status, version, created_at, created_by, last_updated_at, last_updated_by`

func scanAssignment(row pgx.Row) (*domain.Assignment, error) {
	var a domain.Assignment
	err := row.Scan(
		&a.AssignmentID,
		&a.ClientID,
		&a.Chain.SuperAgentID,
		&a.Chain.AgentID,
		&a.Chain.SuperWorkerID,
		&a.Chain.WorkerID,
		&a.Title,
		&a.WordCount,
		&a.RequestedAt,
		&a.Deadline,
		&a.Breakdown.BasePriceGBP,
		&a.Breakdown.AgentFeeGBP,
		&a.Breakdown.UrgencyChargeGBP,
		&a.Breakdown.TotalPriceGBP,
		&a.Breakdown.UrgencyLevel,
		&a.Status,
		&a.Version,
		&a.CreatedAt,
		&a.CreatedBy,
		&a.LastUpdatedAt,
		&a.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// SaveAssignment inserts a new assignment with its frozen price breakdown.
func (r *PgxAssignmentRepository) SaveAssignment(ctx context.Context, assignment domain.Assignment) error {
	query := `
		INSERT INTO assignments (assignment_id, client_id, super_agent_id, agent_id, super_worker_id, worker_id,
		                         title, word_count, requested_at, deadline,
		                         base_price_gbp, agent_fee_gbp, urgency_charge_gbp, total_price_gbp, urgency_level,
		                         status, version, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);
	`
	_, err := r.pool.Exec(ctx, query,
		assignment.AssignmentID,
		assignment.ClientID,
		assignment.Chain.SuperAgentID,
		assignment.Chain.AgentID,
		assignment.Chain.SuperWorkerID,
		assignment.Chain.WorkerID,
		assignment.Title,
		assignment.WordCount,
		assignment.RequestedAt,
		assignment.Deadline,
		assignment.Breakdown.BasePriceGBP,
		assignment.Breakdown.AgentFeeGBP,
		assignment.Breakdown.UrgencyChargeGBP,
		assignment.Breakdown.TotalPriceGBP,
		assignment.Breakdown.UrgencyLevel,
		assignment.Status,
		assignment.Version,
		assignment.CreatedAt,
		assignment.CreatedBy,
		assignment.LastUpdatedAt,
		assignment.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: assignment %s", apperrors.ErrDuplicate, assignment.AssignmentID)
		}
		return fmt.Errorf("failed to insert assignment %s: %w", assignment.AssignmentID, err)
	}
	return nil
}

// FindAssignmentByID retrieves an assignment by its ID.
func (r *PgxAssignmentRepository) FindAssignmentByID(ctx context.Context, assignmentID string) (*domain.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE assignment_id = $1;`
	a, err := scanAssignment(r.pool.QueryRow(ctx, query, assignmentID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find assignment %s: %w", assignmentID, err)
	}
	return a, nil
}

// ListAssignmentsByClient pages a client's assignments newest-first using keyset
// pagination on (created_at, assignment_id).
func (r *PgxAssignmentRepository) ListAssignmentsByClient(ctx context.Context, clientID string, limit int, nextToken *string) ([]domain.Assignment, *string, error) {
	args := []any{clientID, limit + 1}
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE client_id = $1`
	if nextToken != nil && *nextToken != "" {
		afterTime, afterID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		query += ` AND (created_at, assignment_id) < ($3, $4)`
		args = append(args, afterTime, afterID)
	}
	query += ` ORDER BY created_at DESC, assignment_id DESC LIMIT $2;`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list assignments for client %s: %w", clientID, err)
	}
	defer rows.Close()

	var assignments []domain.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan assignment row: %w", err)
		}
		assignments = append(assignments, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	var token *string
	if len(assignments) > limit {
		assignments = assignments[:limit]
		last := assignments[len(assignments)-1]
		t := pagination.EncodeToken(last.CreatedAt, last.AssignmentID)
		token = &t
	}
	return assignments, token, nil
}

// UpdateAssignmentStatus moves an assignment to a new status, guarded by the
// version the caller read. Zero rows affected means the version moved on.
func (r *PgxAssignmentRepository) UpdateAssignmentStatus(ctx context.Context, assignmentID string, status domain.AssignmentStatus, expectedVersion int64, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE assignments
		SET status = $2, version = version + 1, last_updated_at = $3, last_updated_by = $4
		WHERE assignment_id = $1 AND version = $5;
	`
	tag, err := r.pool.Exec(ctx, query, assignmentID, status, updatedAt, updatedBy, expectedVersion)
	if err != nil {
		return fmt.Errorf("failed to update status of assignment %s: %w", assignmentID, err)
	}
	if tag.RowsAffected() == 0 {
		return r.staleOrMissing(ctx, assignmentID)
	}
	return nil
}

// ReplaceBreakdown swaps in a re-quoted word count and frozen breakdown, guarded
// by the version the caller read.
func (r *PgxAssignmentRepository) ReplaceBreakdown(ctx context.Context, assignmentID string, wordCount int, breakdown domain.PriceBreakdown, expectedVersion int64, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE assignments
		SET word_count = $2,
		    base_price_gbp = $3, agent_fee_gbp = $4, urgency_charge_gbp = $5, total_price_gbp = $6, urgency_level = $7,
		    version = version + 1, last_updated_at = $8, last_updated_by = $9
		WHERE assignment_id = $1 AND version = $10;
	`
	tag, err := r.pool.Exec(ctx, query,
		assignmentID,
		wordCount,
		breakdown.BasePriceGBP,
		breakdown.AgentFeeGBP,
		breakdown.UrgencyChargeGBP,
		breakdown.TotalPriceGBP,
		breakdown.UrgencyLevel,
		updatedAt,
		updatedBy,
		expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("failed to replace breakdown of assignment %s: %w", assignmentID, err)
	}
	if tag.RowsAffected() == 0 {
		return r.staleOrMissing(ctx, assignmentID)
	}
	return nil
}

// staleOrMissing tells apart a version conflict from a missing row after a
// guarded update touched nothing.
func (r *PgxAssignmentRepository) staleOrMissing(ctx context.Context, assignmentID string) error {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM assignments WHERE assignment_id = $1);`, assignmentID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check assignment %s: %w", assignmentID, err)
	}
	if !exists {
		return apperrors.ErrNotFound
	}
	return fmt.Errorf("%w: assignment %s", apperrors.ErrStaleVersion, assignmentID)
}
