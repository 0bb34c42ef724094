package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkledger/inkledger_backend/internal/apperrors"
	"github.com/inkledger/inkledger_backend/internal/core/domain"
	portsrepo "github.com/inkledger/inkledger_backend/internal/core/ports/repositories"
)

// PgxPricingRepository persists agent custom rate tables.
type PgxPricingRepository struct {
	pool *pgxpool.Pool
}

// NewPgxPricingRepository creates a new repository for agent rate tables.
func NewPgxPricingRepository(pool *pgxpool.Pool) portsrepo.PricingRepositoryFacade {
	return &PgxPricingRepository{pool: pool}
}

var _ portsrepo.PricingRepositoryFacade = (*PgxPricingRepository)(nil)

// FindAgentRateTable retrieves an agent's custom rate table.
func (r *PgxPricingRepository) FindAgentRateTable(ctx context.Context, agentID string) (*domain.AgentRateTable, error) {
	query := `
		SELECT agent_id, min_words, max_words, base_rate_per_500_words, agent_fee_percent,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM agent_rate_tables
		WHERE agent_id = $1;
	`
	var t domain.AgentRateTable
	err := r.pool.QueryRow(ctx, query, agentID).Scan(
		&t.AgentID,
		&t.MinWords,
		&t.MaxWords,
		&t.BaseRatePer500Words,
		&t.AgentFeePercent,
		&t.CreatedAt,
		&t.CreatedBy,
		&t.LastUpdatedAt,
		&t.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find rate table for agent %s: %w", agentID, err)
	}
	return &t, nil
}

// SaveAgentRateTable inserts or replaces an agent's rate table. Tables are one
// row per agent, so an upsert keeps the latest configuration in place.
func (r *PgxPricingRepository) SaveAgentRateTable(ctx context.Context, table domain.AgentRateTable) error {
	query := `
		INSERT INTO agent_rate_tables (agent_id, min_words, max_words, base_rate_per_500_words, agent_fee_percent,
		                               created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (agent_id) DO UPDATE
		SET min_words = EXCLUDED.min_words,
		    max_words = EXCLUDED.max_words,
		    base_rate_per_500_words = EXCLUDED.base_rate_per_500_words,
		    agent_fee_percent = EXCLUDED.agent_fee_percent,
		    last_updated_at = EXCLUDED.last_updated_at,
		    last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.pool.Exec(ctx, query,
		table.AgentID,
		table.MinWords,
		table.MaxWords,
		table.BaseRatePer500Words,
		table.AgentFeePercent,
		table.CreatedAt,
		table.CreatedBy,
		table.LastUpdatedAt,
		table.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save rate table for agent %s: %w", table.AgentID, err)
	}
	return nil
}
