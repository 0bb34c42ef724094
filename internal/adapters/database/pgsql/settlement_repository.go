package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/inkledger/inkledger_backend/internal/apperrors"
	"github.com/inkledger/inkledger_backend/internal/core/domain"
	portsrepo "github.com/inkledger/inkledger_backend/internal/core/ports/repositories"
)

// PgxSettlementRepository implements the append-only settlement ledger on
// PostgreSQL. Records are never updated or deleted; refunds append compensating
// rows.
type PgxSettlementRepository struct {
	pool *pgxpool.Pool
}

// NewPgxSettlementRepository creates a new repository for settlement records.
func NewPgxSettlementRepository(pool *pgxpool.Pool) portsrepo.SettlementRepositoryFacade {
	return &PgxSettlementRepository{pool: pool}
}

var _ portsrepo.SettlementRepositoryFacade = (*PgxSettlementRepository)(nil)

// SaveSettlementSet writes all records of one settlement in a single
// transaction. A failure anywhere rolls back the whole set.
func (r *PgxSettlementRepository) SaveSettlementSet(ctx context.Context, records []domain.SettlementRecord) error {
	if len(records) == 0 {
		return fmt.Errorf("%w: empty settlement set", apperrors.ErrValidation)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin settlement transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO settlement_records (settlement_id, assignment_id, payee_role, payee_id,
		                                earnings_gbp, earnings_inr, fees_paid_gbp, net_profit_gbp,
		                                rate_value, rate_as_of, rate_source, rate_stale,
		                                kind, computed_at, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`

	batch := &pgx.Batch{}
	for _, rec := range records {
		var rateValue *decimal.Decimal
		var rateAsOf *time.Time
		var rateSource *domain.RateSource
		var rateStale *bool
		if rec.RateSnapshot != nil {
			rateValue = &rec.RateSnapshot.Rate
			rateAsOf = &rec.RateSnapshot.AsOf
			rateSource = &rec.RateSnapshot.Source
			rateStale = &rec.RateSnapshot.Stale
		}
		batch.Queue(query,
			rec.SettlementID,
			rec.AssignmentID,
			rec.PayeeRole,
			rec.PayeeID,
			rec.EarningsGBP,
			rec.EarningsINR,
			rec.FeesPaidGBP,
			rec.NetProfitGBP,
			rateValue,
			rateAsOf,
			rateSource,
			rateStale,
			rec.Kind,
			rec.ComputedAt,
			rec.CreatedAt,
			rec.CreatedBy,
			rec.LastUpdatedAt,
			rec.LastUpdatedBy,
		)
	}

	results := tx.SendBatch(ctx, batch)
	for range records {
		if _, err := results.Exec(); err != nil {
			results.Close()
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: settlement record already exists", apperrors.ErrDuplicate)
			}
			return fmt.Errorf("failed to insert settlement record: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("failed to close settlement batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit settlement set: %w", err)
	}
	return nil
}

// FindSettlementsByAssignmentID retrieves every ledger entry for one assignment,
// oldest first.
func (r *PgxSettlementRepository) FindSettlementsByAssignmentID(ctx context.Context, assignmentID string) ([]domain.SettlementRecord, error) {
	query := `
		SELECT settlement_id, assignment_id, payee_role, payee_id,
		       earnings_gbp, earnings_inr, fees_paid_gbp, net_profit_gbp,
		       rate_value, rate_as_of, rate_source, rate_stale,
		       kind, computed_at, created_at, created_by, last_updated_at, last_updated_by
		FROM settlement_records
		WHERE assignment_id = $1
		ORDER BY computed_at, settlement_id;
	`
	rows, err := r.pool.Query(ctx, query, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find settlements for assignment %s: %w", assignmentID, err)
	}
	defer rows.Close()

	var records []domain.SettlementRecord
	for rows.Next() {
		var rec domain.SettlementRecord
		var rateValue *decimal.Decimal
		var rateAsOf *time.Time
		var rateSource *domain.RateSource
		var rateStale *bool
		err := rows.Scan(
			&rec.SettlementID,
			&rec.AssignmentID,
			&rec.PayeeRole,
			&rec.PayeeID,
			&rec.EarningsGBP,
			&rec.EarningsINR,
			&rec.FeesPaidGBP,
			&rec.NetProfitGBP,
			&rateValue,
			&rateAsOf,
			&rateSource,
			&rateStale,
			&rec.Kind,
			&rec.ComputedAt,
			&rec.CreatedAt,
			&rec.CreatedBy,
			&rec.LastUpdatedAt,
			&rec.LastUpdatedBy,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.ErrNotFound
			}
			return nil, fmt.Errorf("failed to scan settlement row: %w", err)
		}
		if rateValue != nil && rateAsOf != nil && rateSource != nil {
			snapshot := domain.ExchangeRateSnapshot{Rate: *rateValue, AsOf: *rateAsOf, Source: *rateSource}
			if rateStale != nil {
				snapshot.Stale = *rateStale
			}
			rec.RateSnapshot = &snapshot
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// SumSettlementsByPayee aggregates ledger entries for one payee over a
// computed_at window. Compensating records sum in as negative amounts.
func (r *PgxSettlementRepository) SumSettlementsByPayee(ctx context.Context, payeeID string, role domain.Role, from, to time.Time) (domain.SettlementTotals, error) {
	query := `
		SELECT COALESCE(SUM(earnings_gbp), 0),
		       COALESCE(SUM(fees_paid_gbp), 0),
		       COALESCE(SUM(net_profit_gbp), 0)
		FROM settlement_records
		WHERE payee_id = $1 AND payee_role = $2 AND computed_at >= $3 AND computed_at < $4;
	`
	var totals domain.SettlementTotals
	err := r.pool.QueryRow(ctx, query, payeeID, role, from, to).Scan(
		&totals.TotalRevenueGBP,
		&totals.TotalFeesPaidGBP,
		&totals.TotalProfitGBP,
	)
	if err != nil {
		return domain.SettlementTotals{}, fmt.Errorf("failed to sum settlements for payee %s: %w", payeeID, err)
	}
	return totals, nil
}

// MonthlySettlementTotals groups a payee's ledger entries by calendar month of
// computed_at, ascending.
func (r *PgxSettlementRepository) MonthlySettlementTotals(ctx context.Context, payeeID string, role domain.Role, from, to time.Time) ([]domain.MonthlyTotals, error) {
	query := `
		SELECT date_trunc('month', computed_at AT TIME ZONE 'UTC') AS month,
		       COALESCE(SUM(earnings_gbp), 0),
		       COALESCE(SUM(fees_paid_gbp), 0),
		       COALESCE(SUM(net_profit_gbp), 0)
		FROM settlement_records
		WHERE payee_id = $1 AND payee_role = $2 AND computed_at >= $3 AND computed_at < $4
		GROUP BY month
		ORDER BY month;
	`
	rows, err := r.pool.Query(ctx, query, payeeID, role, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate monthly settlements for payee %s: %w", payeeID, err)
	}
	defer rows.Close()

	var months []domain.MonthlyTotals
	for rows.Next() {
		var m domain.MonthlyTotals
		err := rows.Scan(&m.Month, &m.TotalRevenueGBP, &m.TotalFeesPaidGBP, &m.TotalProfitGBP)
		if err != nil {
			return nil, fmt.Errorf("failed to scan monthly totals row: %w", err)
		}
		m.Month = m.Month.UTC()
		months = append(months, m)
	}
	return months, rows.Err()
}
