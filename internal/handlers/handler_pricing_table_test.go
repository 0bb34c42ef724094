package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/inkledger/inkledger_backend/internal/core/domain"
	portssvc "github.com/inkledger/inkledger_backend/internal/core/ports/services"
	"github.com/inkledger/inkledger_backend/internal/dto"
	"github.com/inkledger/inkledger_backend/internal/handlers"
	"github.com/inkledger/inkledger_backend/internal/middleware"
	"github.com/inkledger/inkledger_backend/internal/utils"
)

// --- Mock PricingService ---

type MockPricingService struct {
	mock.Mock
}

func (m *MockPricingService) QuoteForClient(ctx context.Context, clientID string, req dto.QuoteRequest) (*domain.PriceBreakdown, error) {
	args := m.Called(ctx, clientID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PriceBreakdown), args.Error(1)
}

func (m *MockPricingService) UpsertAgentRateTable(ctx context.Context, agentID string, req dto.UpsertAgentRateTableRequest, actorID string) (*domain.AgentRateTable, error) {
	args := m.Called(ctx, agentID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AgentRateTable), args.Error(1)
}

func (m *MockPricingService) GetAgentRateTable(ctx context.Context, agentID string) (*domain.AgentRateTable, error) {
	args := m.Called(ctx, agentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AgentRateTable), args.Error(1)
}

var _ portssvc.PricingSvcFacade = (*MockPricingService)(nil)

// --- Test Suite ---

type PricingTableHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockPricingService *MockPricingService
	jwtSecret          string
}

func (suite *PricingTableHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockPricingService = new(MockPricingService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterPricingTableRoutes(v1, suite.mockPricingService)
}

func (suite *PricingTableHandlerTestSuite) generateTestToken(partyID string, role domain.Role) string {
	token, err := utils.GenerateJWT(partyID, string(role), suite.jwtSecret, time.Hour, "test-issuer")
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

func (suite *PricingTableHandlerTestSuite) getTableAs(partyID string, role domain.Role, agentID string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/agents/"+agentID+"/rate-table", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(partyID, role))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *PricingTableHandlerTestSuite) TestGetTableOwnership() {
	table := &domain.AgentRateTable{
		AgentID:             "agent-1",
		MinWords:            1,
		MaxWords:            5000,
		BaseRatePer500Words: decimal.RequireFromString("6.25"),
		AgentFeePercent:     decimal.RequireFromString("15"),
	}
	suite.mockPricingService.On("GetAgentRateTable", mock.Anything, "agent-1").Return(table, nil)

	// The owning agent reads its own table.
	w := suite.getTableAs("agent-1", domain.RoleAgent, "agent-1")
	suite.Equal(http.StatusOK, w.Code)

	// Another agent is rejected before the service runs.
	w = suite.getTableAs("agent-2", domain.RoleAgent, "agent-1")
	suite.Equal(http.StatusForbidden, w.Code)

	// The super agent reads any table.
	w = suite.getTableAs("sa-1", domain.RoleSuperAgent, "agent-1")
	suite.Equal(http.StatusOK, w.Code)

	suite.mockPricingService.AssertNumberOfCalls(suite.T(), "GetAgentRateTable", 2)
}

func (suite *PricingTableHandlerTestSuite) TestUpsertTableOwnership() {
	// An agent cannot replace another agent's table.
	body := jsonBody(`{"minWords":1,"maxWords":5000,"baseRatePer500Words":"6.25","agentFeePercent":"15"}`)
	req, _ := http.NewRequest(http.MethodPut, "/api/v1/agents/agent-1/rate-table", body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken("agent-2", domain.RoleAgent))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockPricingService.AssertNotCalled(suite.T(), "UpsertAgentRateTable",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PricingTableHandlerTestSuite) TestGetTableRoleGate() {
	w := suite.getTableAs("client-1", domain.RoleClient, "agent-1")
	suite.Equal(http.StatusForbidden, w.Code)
}

func TestPricingTableHandler(t *testing.T) {
	suite.Run(t, new(PricingTableHandlerTestSuite))
}
