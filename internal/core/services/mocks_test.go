package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/inkledger/inkledger_backend/internal/core/domain"
	"github.com/inkledger/inkledger_backend/internal/dto"
)

// --- Mock PartyRepository ---

type MockPartyRepository struct {
	mock.Mock
}

func (m *MockPartyRepository) SaveParty(ctx context.Context, party domain.Party) error {
	args := m.Called(ctx, party)
	return args.Error(0)
}

func (m *MockPartyRepository) FindPartyByID(ctx context.Context, partyID string) (*domain.Party, error) {
	args := m.Called(ctx, partyID)
	var party *domain.Party
	if args.Get(0) != nil {
		party = args.Get(0).(*domain.Party)
	}
	return party, args.Error(1)
}

func (m *MockPartyRepository) FindPartyByEmail(ctx context.Context, email string) (*domain.Party, error) {
	args := m.Called(ctx, email)
	var party *domain.Party
	if args.Get(0) != nil {
		party = args.Get(0).(*domain.Party)
	}
	return party, args.Error(1)
}

func (m *MockPartyRepository) ListPartiesByRole(ctx context.Context, role domain.Role, limit, offset int) ([]domain.Party, error) {
	args := m.Called(ctx, role, limit, offset)
	var parties []domain.Party
	if args.Get(0) != nil {
		parties = args.Get(0).([]domain.Party)
	}
	return parties, args.Error(1)
}

func (m *MockPartyRepository) ListChildren(ctx context.Context, parentPartyID string) ([]domain.Party, error) {
	args := m.Called(ctx, parentPartyID)
	var parties []domain.Party
	if args.Get(0) != nil {
		parties = args.Get(0).([]domain.Party)
	}
	return parties, args.Error(1)
}

func (m *MockPartyRepository) UpdateParty(ctx context.Context, party domain.Party) error {
	args := m.Called(ctx, party)
	return args.Error(0)
}

func (m *MockPartyRepository) MarkPartyDeleted(ctx context.Context, partyID string, deletedBy string) error {
	args := m.Called(ctx, partyID, deletedBy)
	return args.Error(0)
}

// --- Mock PricingRepository ---

type MockPricingRepository struct {
	mock.Mock
}

func (m *MockPricingRepository) FindAgentRateTable(ctx context.Context, agentID string) (*domain.AgentRateTable, error) {
	args := m.Called(ctx, agentID)
	var table *domain.AgentRateTable
	if args.Get(0) != nil {
		table = args.Get(0).(*domain.AgentRateTable)
	}
	return table, args.Error(1)
}

func (m *MockPricingRepository) SaveAgentRateTable(ctx context.Context, table domain.AgentRateTable) error {
	args := m.Called(ctx, table)
	return args.Error(0)
}

// --- Mock AssignmentRepository ---

type MockAssignmentRepository struct {
	mock.Mock
}

func (m *MockAssignmentRepository) FindAssignmentByID(ctx context.Context, assignmentID string) (*domain.Assignment, error) {
	args := m.Called(ctx, assignmentID)
	var assignment *domain.Assignment
	if args.Get(0) != nil {
		assignment = args.Get(0).(*domain.Assignment)
	}
	return assignment, args.Error(1)
}

func (m *MockAssignmentRepository) ListAssignmentsByClient(ctx context.Context, clientID string, limit int, nextToken *string) ([]domain.Assignment, *string, error) {
	args := m.Called(ctx, clientID, limit, nextToken)
	var assignments []domain.Assignment
	if args.Get(0) != nil {
		assignments = args.Get(0).([]domain.Assignment)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return assignments, token, args.Error(2)
}

func (m *MockAssignmentRepository) SaveAssignment(ctx context.Context, assignment domain.Assignment) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

func (m *MockAssignmentRepository) UpdateAssignmentStatus(ctx context.Context, assignmentID string, status domain.AssignmentStatus, expectedVersion int64, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, assignmentID, status, expectedVersion, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockAssignmentRepository) ReplaceBreakdown(ctx context.Context, assignmentID string, wordCount int, breakdown domain.PriceBreakdown, expectedVersion int64, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, assignmentID, wordCount, breakdown, expectedVersion, updatedBy, updatedAt)
	return args.Error(0)
}

// --- Mock SettlementRepository ---

type MockSettlementRepository struct {
	mock.Mock
}

func (m *MockSettlementRepository) SaveSettlementSet(ctx context.Context, records []domain.SettlementRecord) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

func (m *MockSettlementRepository) FindSettlementsByAssignmentID(ctx context.Context, assignmentID string) ([]domain.SettlementRecord, error) {
	args := m.Called(ctx, assignmentID)
	var records []domain.SettlementRecord
	if args.Get(0) != nil {
		records = args.Get(0).([]domain.SettlementRecord)
	}
	return records, args.Error(1)
}

func (m *MockSettlementRepository) SumSettlementsByPayee(ctx context.Context, payeeID string, role domain.Role, from, to time.Time) (domain.SettlementTotals, error) {
	args := m.Called(ctx, payeeID, role, from, to)
	var totals domain.SettlementTotals
	if args.Get(0) != nil {
		totals = args.Get(0).(domain.SettlementTotals)
	}
	return totals, args.Error(1)
}

func (m *MockSettlementRepository) MonthlySettlementTotals(ctx context.Context, payeeID string, role domain.Role, from, to time.Time) ([]domain.MonthlyTotals, error) {
	args := m.Called(ctx, payeeID, role, from, to)
	var months []domain.MonthlyTotals
	if args.Get(0) != nil {
		months = args.Get(0).([]domain.MonthlyTotals)
	}
	return months, args.Error(1)
}

// --- Mock RateCache ---

type MockRateCache struct {
	mock.Mock
}

func (m *MockRateCache) FetchCachedRate(ctx context.Context) (decimal.Decimal, time.Time, error) {
	args := m.Called(ctx)
	var rate decimal.Decimal
	if args.Get(0) != nil {
		rate = args.Get(0).(decimal.Decimal)
	}
	var asOf time.Time
	if args.Get(1) != nil {
		asOf = args.Get(1).(time.Time)
	}
	return rate, asOf, args.Error(2)
}

func (m *MockRateCache) StoreCachedRate(ctx context.Context, rate decimal.Decimal, asOf time.Time) error {
	args := m.Called(ctx, rate, asOf)
	return args.Error(0)
}

// --- Mock HierarchyService ---

type MockHierarchyService struct {
	mock.Mock
}

func (m *MockHierarchyService) ResolveChain(ctx context.Context, clientID, superWorkerID string, workerID *string) (*domain.HierarchyChain, error) {
	args := m.Called(ctx, clientID, superWorkerID, workerID)
	var chain *domain.HierarchyChain
	if args.Get(0) != nil {
		chain = args.Get(0).(*domain.HierarchyChain)
	}
	return chain, args.Error(1)
}

func (m *MockHierarchyService) EffectivePricingSource(ctx context.Context, clientID string) (*domain.PricingSource, error) {
	args := m.Called(ctx, clientID)
	var source *domain.PricingSource
	if args.Get(0) != nil {
		source = args.Get(0).(*domain.PricingSource)
	}
	return source, args.Error(1)
}

// --- Mock PricingService ---

type MockPricingService struct {
	mock.Mock
}

func (m *MockPricingService) QuoteForClient(ctx context.Context, clientID string, req dto.QuoteRequest) (*domain.PriceBreakdown, error) {
	args := m.Called(ctx, clientID, req)
	var breakdown *domain.PriceBreakdown
	if args.Get(0) != nil {
		breakdown = args.Get(0).(*domain.PriceBreakdown)
	}
	return breakdown, args.Error(1)
}

func (m *MockPricingService) UpsertAgentRateTable(ctx context.Context, agentID string, req dto.UpsertAgentRateTableRequest, actorID string) (*domain.AgentRateTable, error) {
	args := m.Called(ctx, agentID, req, actorID)
	var table *domain.AgentRateTable
	if args.Get(0) != nil {
		table = args.Get(0).(*domain.AgentRateTable)
	}
	return table, args.Error(1)
}

func (m *MockPricingService) GetAgentRateTable(ctx context.Context, agentID string) (*domain.AgentRateTable, error) {
	args := m.Called(ctx, agentID)
	var table *domain.AgentRateTable
	if args.Get(0) != nil {
		table = args.Get(0).(*domain.AgentRateTable)
	}
	return table, args.Error(1)
}

// --- Mock SettlementService ---

type MockSettlementService struct {
	mock.Mock
}

func (m *MockSettlementService) SettleAssignment(ctx context.Context, assignmentID string, actorID string) ([]domain.SettlementRecord, error) {
	args := m.Called(ctx, assignmentID, actorID)
	var records []domain.SettlementRecord
	if args.Get(0) != nil {
		records = args.Get(0).([]domain.SettlementRecord)
	}
	return records, args.Error(1)
}

func (m *MockSettlementService) CompensateAssignment(ctx context.Context, assignmentID string, actorID string) ([]domain.SettlementRecord, error) {
	args := m.Called(ctx, assignmentID, actorID)
	var records []domain.SettlementRecord
	if args.Get(0) != nil {
		records = args.Get(0).([]domain.SettlementRecord)
	}
	return records, args.Error(1)
}

func (m *MockSettlementService) GetSettlementsForAssignment(ctx context.Context, assignmentID string) ([]domain.SettlementRecord, error) {
	args := m.Called(ctx, assignmentID)
	var records []domain.SettlementRecord
	if args.Get(0) != nil {
		records = args.Get(0).([]domain.SettlementRecord)
	}
	return records, args.Error(1)
}
