package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkledger/inkledger_backend/internal/apperrors"
	"github.com/inkledger/inkledger_backend/internal/core/domain"
	portsrepo "github.com/inkledger/inkledger_backend/internal/core/ports/repositories"
)

// PgxPartyRepository implements party persistence using pgxpool.
type PgxPartyRepository struct {
	pool *pgxpool.Pool
}

// NewPgxPartyRepository creates a new repository for party data.
func NewPgxPartyRepository(pool *pgxpool.Pool) portsrepo.PartyRepositoryFacade {
	return &PgxPartyRepository{pool: pool}
}

var _ portsrepo.PartyRepositoryFacade = (*PgxPartyRepository)(nil)

const partyColumns = `party_id, name, email, password_hash, role, parent_party_id, created_at, created_by, last_updated_at, last_updated_by, deleted_at`

func scanParty(row pgx.Row) (*domain.Party, error) {
	var p domain.Party
	err := row.Scan(
		&p.PartyID,
		&p.Name,
		&p.Email,
		&p.PasswordHash,
		&p.Role,
		&p.ParentPartyID,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.LastUpdatedAt,
		&p.LastUpdatedBy,
		&p.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// SaveParty inserts a new party.
func (r *PgxPartyRepository) SaveParty(ctx context.Context, party domain.Party) error {
	query := `
		INSERT INTO parties (party_id, name, email, password_hash, role, parent_party_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.pool.Exec(ctx, query,
		party.PartyID,
		party.Name,
		strings.ToLower(party.Email),
		party.PasswordHash,
		party.Role,
		party.ParentPartyID,
		party.CreatedAt,
		party.CreatedBy,
		party.LastUpdatedAt,
		party.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: party email %s", apperrors.ErrDuplicate, party.Email)
		}
		return fmt.Errorf("failed to insert party %s: %w", party.PartyID, err)
	}
	return nil
}

// FindPartyByID retrieves a party by its ID. Soft-deleted parties are excluded.
func (r *PgxPartyRepository) FindPartyByID(ctx context.Context, partyID string) (*domain.Party, error) {
	query := `SELECT ` + partyColumns + ` FROM parties WHERE party_id = $1 AND deleted_at IS NULL;`
	party, err := scanParty(r.pool.QueryRow(ctx, query, partyID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find party by ID %s: %w", partyID, err)
	}
	return party, nil
}

// FindPartyByEmail retrieves a party by email, case-insensitively.
func (r *PgxPartyRepository) FindPartyByEmail(ctx context.Context, email string) (*domain.Party, error) {
	query := `SELECT ` + partyColumns + ` FROM parties WHERE email = $1 AND deleted_at IS NULL;`
	party, err := scanParty(r.pool.QueryRow(ctx, query, strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find party by email: %w", err)
	}
	return party, nil
}

// ListPartiesByRole retrieves parties of one role with limit/offset pagination.
func (r *PgxPartyRepository) ListPartiesByRole(ctx context.Context, role domain.Role, limit int, offset int) ([]domain.Party, error) {
	query := `
		SELECT ` + partyColumns + `
		FROM parties
		WHERE role = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC, party_id
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.pool.Query(ctx, query, role, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list parties by role %s: %w", role, err)
	}
	defer rows.Close()

	var parties []domain.Party
	for rows.Next() {
		party, err := scanParty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan party row: %w", err)
		}
		parties = append(parties, *party)
	}
	return parties, rows.Err()
}

// ListChildren retrieves the active parties recruited by a parent.
func (r *PgxPartyRepository) ListChildren(ctx context.Context, parentPartyID string) ([]domain.Party, error) {
	query := `SELECT ` + partyColumns + ` FROM parties WHERE parent_party_id = $1 AND deleted_at IS NULL;`
	rows, err := r.pool.Query(ctx, query, parentPartyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list children of %s: %w", parentPartyID, err)
	}
	defer rows.Close()

	var parties []domain.Party
	for rows.Next() {
		party, err := scanParty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan party row: %w", err)
		}
		parties = append(parties, *party)
	}
	return parties, rows.Err()
}

// UpdateParty updates a party's mutable fields.
func (r *PgxPartyRepository) UpdateParty(ctx context.Context, party domain.Party) error {
	query := `
		UPDATE parties
		SET name = $2, email = $3, last_updated_at = $4, last_updated_by = $5
		WHERE party_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.pool.Exec(ctx, query,
		party.PartyID,
		party.Name,
		strings.ToLower(party.Email),
		party.LastUpdatedAt,
		party.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update party %s: %w", party.PartyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// MarkPartyDeleted soft deletes a party.
func (r *PgxPartyRepository) MarkPartyDeleted(ctx context.Context, partyID string, deletedBy string) error {
	now := time.Now().UTC()
	query := `
		UPDATE parties
		SET deleted_at = $2, last_updated_at = $2, last_updated_by = $3
		WHERE party_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.pool.Exec(ctx, query, partyID, now, deletedBy)
	if err != nil {
		return fmt.Errorf("failed to soft delete party %s: %w", partyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
