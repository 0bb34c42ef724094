package services

import (
	"context"
	"fmt"
	"time"

	"github.com/inkledger/inkledger_backend/internal/apperrors"
	"github.com/inkledger/inkledger_backend/internal/core/domain"
	portsrepo "github.com/inkledger/inkledger_backend/internal/core/ports/repositories"
	portssvc "github.com/inkledger/inkledger_backend/internal/core/ports/services"
	"github.com/inkledger/inkledger_backend/internal/dto"
	"github.com/inkledger/inkledger_backend/internal/middleware"
)

// analyticsService rolls settlement ledger entries up into windowed summaries.
// Aggregation happens SQL-side; this service resolves windows and enforces
// role visibility.
type analyticsService struct {
	settlementRepo portsrepo.SettlementRepositoryFacade
	now            func() time.Time
}

// NewAnalyticsService creates a new analytics service.
func NewAnalyticsService(settlementRepo portsrepo.SettlementRepositoryFacade) portssvc.AnalyticsSvcFacade {
	return &analyticsService{
		settlementRepo: settlementRepo,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

var _ portssvc.AnalyticsSvcFacade = (*analyticsService)(nil)

// resolveWindow turns a window selector into a concrete [from, to) range.
func (s *analyticsService) resolveWindow(q dto.AnalyticsQuery) (time.Time, time.Time, error) {
	now := s.now()
	switch q.Window {
	case dto.WindowWeek:
		return now.AddDate(0, 0, -7), now, nil
	case dto.WindowMonth:
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		return monthStart, now, nil
	case dto.WindowCustom:
		if q.From.IsZero() || q.To.IsZero() || !q.To.After(q.From) {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: custom window requires from < to", apperrors.ErrValidation)
		}
		return q.From, q.To, nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("%w: unknown window %q", apperrors.ErrValidation, q.Window)
	}
}

// Report sums the party's ledger entries recorded within the window. Refunds
// count in the window their compensating records were recorded in, never
// retroactively in the original settlement's window.
func (s *analyticsService) Report(ctx context.Context, payeeID string, role domain.Role, q dto.AnalyticsQuery) (*domain.AnalyticsReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	switch role {
	case domain.RoleSuperAgent, domain.RoleAgent, domain.RoleSuperWorker:
		// Ledger payee roles.
	case domain.RoleWorker:
		return nil, fmt.Errorf("%w: workers have no financial visibility", apperrors.ErrForbidden)
	case domain.RoleClient:
		return nil, fmt.Errorf("%w: clients have no settlement ledger", apperrors.ErrValidation)
	default:
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, role)
	}

	from, to, err := s.resolveWindow(q)
	if err != nil {
		return nil, err
	}

	summary, err := s.settlementRepo.SumSettlementsByPayee(ctx, payeeID, role, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate settlements: %w", err)
	}

	monthly, err := s.settlementRepo.MonthlySettlementTotals(ctx, payeeID, role, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate monthly settlements: %w", err)
	}

	logger.Debug("Analytics report generated", "payee_id", payeeID, "months", len(monthly))
	return &domain.AnalyticsReport{
		PayeeID:   payeeID,
		PayeeRole: role,
		From:      from,
		To:        to,
		Summary:   summary,
		Monthly:   monthly,
	}, nil
}
