package services

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/inkledger/inkledger_backend/internal/core/domain"
	portsrepo "github.com/inkledger/inkledger_backend/internal/core/ports/repositories"
	portssvc "github.com/inkledger/inkledger_backend/internal/core/ports/services"
)

// ContainerConfig carries the process configuration the services need: the
// fixed super-agent table, the urgency policy, and the currency settings.
type ContainerConfig struct {
	FixedTable    domain.FixedPricingTable
	UrgencyPolicy domain.UrgencyPolicy
	StaticRate    decimal.Decimal // zero means not configured
	RateCacheTTL  time.Duration
}

// NewServiceContainer wires all services with their repository dependencies.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, cfg ContainerConfig) *portssvc.ServiceContainer {
	hierarchySvc := NewHierarchyService(repos.PartyRepo, repos.PricingRepo, cfg.FixedTable)
	pricingSvc := NewPricingService(hierarchySvc, repos.PricingRepo, repos.PartyRepo, cfg.UrgencyPolicy)
	currencySvc := NewCurrencyService(cfg.StaticRate, repos.RateCache, cfg.RateCacheTTL)
	settlementSvc := NewSettlementService(repos.AssignmentRepo, repos.SettlementRepo, currencySvc)
	assignmentSvc := NewAssignmentService(repos.AssignmentRepo, hierarchySvc, pricingSvc, settlementSvc, cfg.UrgencyPolicy)

	return &portssvc.ServiceContainer{
		Party:      NewPartyService(repos.PartyRepo),
		Hierarchy:  hierarchySvc,
		Pricing:    pricingSvc,
		Currency:   currencySvc,
		Assignment: assignmentSvc,
		Settlement: settlementSvc,
		Analytics:  NewAnalyticsService(repos.SettlementRepo),
	}
}
