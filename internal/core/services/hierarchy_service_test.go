package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/inkledger/inkledger_backend/internal/apperrors"
	"github.com/inkledger/inkledger_backend/internal/core/domain"
	portssvc "github.com/inkledger/inkledger_backend/internal/core/ports/services"
	"github.com/inkledger/inkledger_backend/internal/core/services"
)

type HierarchyServiceTestSuite struct {
	suite.Suite
	mockPartyRepo   *MockPartyRepository
	mockPricingRepo *MockPricingRepository
	service         portssvc.HierarchySvcFacade
	ctx             context.Context
}

func (s *HierarchyServiceTestSuite) SetupTest() {
	s.mockPartyRepo = new(MockPartyRepository)
	s.mockPricingRepo = new(MockPricingRepository)
	s.service = services.NewHierarchyService(s.mockPartyRepo, s.mockPricingRepo, domain.DefaultSuperAgentTable("system"))
	s.ctx = context.Background()
}

func strPtr(v string) *string { return &v }

func (s *HierarchyServiceTestSuite) party(id string, role domain.Role, parentID *string) *domain.Party {
	return &domain.Party{PartyID: id, Role: role, ParentPartyID: parentID}
}

func (s *HierarchyServiceTestSuite) TestResolveChainThroughAgent() {
	s.mockPartyRepo.On("FindPartyByID", s.ctx, "client-1").Return(s.party("client-1", domain.RoleClient, strPtr("agent-1")), nil)
	s.mockPartyRepo.On("FindPartyByID", s.ctx, "agent-1").Return(s.party("agent-1", domain.RoleAgent, strPtr("sa-1")), nil)
	s.mockPartyRepo.On("FindPartyByID", s.ctx, "sw-1").Return(s.party("sw-1", domain.RoleSuperWorker, nil), nil)

	chain, err := s.service.ResolveChain(s.ctx, "client-1", "sw-1", nil)
	s.Require().NoError(err)
	s.Equal("sa-1", chain.SuperAgentID)
	s.Require().NotNil(chain.AgentID)
	s.Equal("agent-1", *chain.AgentID)
	s.Equal("sw-1", chain.SuperWorkerID)
	s.Nil(chain.WorkerID)
	s.True(chain.RoutedThroughAgent())
}

func (s *HierarchyServiceTestSuite) TestResolveChainDirectClient() {
	s.mockPartyRepo.On("FindPartyByID", s.ctx, "client-1").Return(s.party("client-1", domain.RoleClient, strPtr("sa-1")), nil)
	s.mockPartyRepo.On("FindPartyByID", s.ctx, "sa-1").Return(s.party("sa-1", domain.RoleSuperAgent, nil), nil)
	s.mockPartyRepo.On("FindPartyByID", s.ctx, "sw-1").Return(s.party("sw-1", domain.RoleSuperWorker, nil), nil)

	chain, err := s.service.ResolveChain(s.ctx, "client-1", "sw-1", nil)
	s.Require().NoError(err)
	s.Equal("sa-1", chain.SuperAgentID)
	s.Nil(chain.AgentID)
	s.False(chain.RoutedThroughAgent())
}

func (s *HierarchyServiceTestSuite) TestResolveChainWithSubWorker() {
	s.mockPartyRepo.On("FindPartyByID", s.ctx, "client-1").Return(s.party("client-1", domain.RoleClient, strPtr("sa-1")), nil)
	s.mockPartyRepo.On("FindPartyByID", s.ctx, "sa-1").Return(s.party("sa-1", domain.RoleSuperAgent, nil), nil)
	s.mockPartyRepo.On("FindPartyByID", s.ctx, "sw-1").Return(s.party("sw-1", domain.RoleSuperWorker, nil), nil)
	s.mockPartyRepo.On("FindPartyByID", s.ctx, "w-1").Return(s.party("w-1", domain.RoleWorker, strPtr("sw-1")), nil)

	chain, err := s.service.ResolveChain(s.ctx, "client-1", "sw-1", strPtr("w-1"))
	s.Require().NoError(err)
	s.Require().NotNil(chain.WorkerID)
	s.Equal("w-1", *chain.WorkerID)
}

func (s *HierarchyServiceTestSuite) TestResolveChainForeignSubWorker() {
	s.mockPartyRepo.On("FindPartyByID", s.ctx, "client-1").Return(s.party("client-1", domain.RoleClient, strPtr("sa-1")), nil)
	s.mockPartyRepo.On("FindPartyByID", s.ctx, "sa-1").Return(s.party("sa-1", domain.RoleSuperAgent, nil), nil)
	s.mockPartyRepo.On("FindPartyByID", s.ctx, "sw-1").Return(s.party("sw-1", domain.RoleSuperWorker, nil), nil)
	s.mockPartyRepo.On("FindPartyByID", s.ctx, "w-other").Return(s.party("w-other", domain.RoleWorker, strPtr("sw-2")), nil)

	_, err := s.service.ResolveChain(s.ctx, "client-1", "sw-1", strPtr("w-other"))
	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (s *HierarchyServiceTestSuite) TestResolveChainUnparentedClient() {
	s.mockPartyRepo.On("FindPartyByID", s.ctx, "client-1").Return(s.party("client-1", domain.RoleClient, nil), nil)

	_, err := s.service.ResolveChain(s.ctx, "client-1", "sw-1", nil)
	s.Require().ErrorIs(err, apperrors.ErrHierarchyUnassigned)
}

func (s *HierarchyServiceTestSuite) TestEffectivePricingSourceDirectClient() {
	s.mockPartyRepo.On("FindPartyByID", s.ctx, "client-1").Return(s.party("client-1", domain.RoleClient, strPtr("sa-1")), nil)
	s.mockPartyRepo.On("FindPartyByID", s.ctx, "sa-1").Return(s.party("sa-1", domain.RoleSuperAgent, nil), nil)

	source, err := s.service.EffectivePricingSource(s.ctx, "client-1")
	s.Require().NoError(err)
	s.Require().NotNil(source.Fixed)
	s.Nil(source.AgentRate)
}

func (s *HierarchyServiceTestSuite) TestEffectivePricingSourceAgentTable() {
	s.mockPartyRepo.On("FindPartyByID", s.ctx, "client-1").Return(s.party("client-1", domain.RoleClient, strPtr("agent-1")), nil)
	s.mockPartyRepo.On("FindPartyByID", s.ctx, "agent-1").Return(s.party("agent-1", domain.RoleAgent, strPtr("sa-1")), nil)
	table := &domain.AgentRateTable{AgentID: "agent-1", BaseRatePer500Words: gbp("6.25")}
	s.mockPricingRepo.On("FindAgentRateTable", s.ctx, "agent-1").Return(table, nil)

	source, err := s.service.EffectivePricingSource(s.ctx, "client-1")
	s.Require().NoError(err)
	s.Require().NotNil(source.AgentRate)
	s.Equal("agent-1", source.AgentRate.AgentID)
}

func (s *HierarchyServiceTestSuite) TestEffectivePricingSourceSubstitutesDefault() {
	s.mockPartyRepo.On("FindPartyByID", s.ctx, "client-1").Return(s.party("client-1", domain.RoleClient, strPtr("agent-1")), nil)
	s.mockPartyRepo.On("FindPartyByID", s.ctx, "agent-1").Return(s.party("agent-1", domain.RoleAgent, strPtr("sa-1")), nil)
	s.mockPricingRepo.On("FindAgentRateTable", s.ctx, "agent-1").Return(nil, apperrors.ErrNotFound)

	// An agent with no configured table falls back to the default fixed
	// table; the quote succeeds.
	source, err := s.service.EffectivePricingSource(s.ctx, "client-1")
	s.Require().NoError(err)
	s.Require().NotNil(source.Fixed)
	s.Nil(source.AgentRate)
}

func TestHierarchyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(HierarchyServiceTestSuite))
}

func TestResolveChainSuperWorkerRoleCheck(t *testing.T) {
	mockPartyRepo := new(MockPartyRepository)
	mockPricingRepo := new(MockPricingRepository)
	service := services.NewHierarchyService(mockPartyRepo, mockPricingRepo, domain.DefaultSuperAgentTable("system"))
	ctx := context.Background()

	mockPartyRepo.On("FindPartyByID", ctx, "client-1").Return(&domain.Party{PartyID: "client-1", Role: domain.RoleClient, ParentPartyID: strPtr("sa-1")}, nil)
	mockPartyRepo.On("FindPartyByID", ctx, "sa-1").Return(&domain.Party{PartyID: "sa-1", Role: domain.RoleSuperAgent}, nil)
	mockPartyRepo.On("FindPartyByID", ctx, "not-a-sw").Return(&domain.Party{PartyID: "not-a-sw", Role: domain.RoleWorker}, nil)

	_, err := service.ResolveChain(ctx, "client-1", "not-a-sw", nil)
	require.ErrorIs(t, err, apperrors.ErrValidation)
}
