package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inkledger/inkledger_backend/internal/core/domain"
	portssvc "github.com/inkledger/inkledger_backend/internal/core/ports/services"
	"github.com/inkledger/inkledger_backend/internal/dto"
	"github.com/inkledger/inkledger_backend/internal/middleware"
)

// pricingTableHandler manages agent custom rate tables.
type pricingTableHandler struct {
	pricingService portssvc.PricingSvcFacade
}

func newPricingTableHandler(ps portssvc.PricingSvcFacade) *pricingTableHandler {
	return &pricingTableHandler{pricingService: ps}
}

// RegisterPricingTableRoutes registers the agent rate table routes.
func RegisterPricingTableRoutes(rg *gin.RouterGroup, pricingService portssvc.PricingSvcFacade) {
	h := newPricingTableHandler(pricingService)

	managers := middleware.RequireRoles(domain.RoleSuperAgent, domain.RoleAgent)
	tables := rg.Group("/agents/:agentID/rate-table", managers)
	{
		tables.PUT("", h.upsertTable)
		tables.GET("", h.getTable)
	}
}

// upsertTable godoc
// @Summary Create or replace an agent's rate table
// @Description Replaces the agent's custom pricing table. Already-created assignments keep their frozen breakdowns.
// @Tags pricing
// @Accept json
// @Produce json
// @Param agentID path string true "Agent ID"
// @Param table body dto.UpsertAgentRateTableRequest true "Rate table"
// @Success 200 {object} dto.AgentRateTableResponse
// @Failure 400 {object} ErrorResponse "Invalid table"
// @Failure 403 {object} ErrorResponse "Agents may only manage their own table"
// @Security BearerAuth
// @Router /agents/{agentID}/rate-table [put]
func (h *pricingTableHandler) upsertTable(c *gin.Context) {
	var req dto.UpsertAgentRateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetPartyIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	role, _ := middleware.GetPartyRoleFromContext(c)
	agentID := c.Param("agentID")
	if role == domain.RoleAgent && actorID != agentID {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Agents may only manage their own rate table"})
		return
	}

	table, err := h.pricingService.UpsertAgentRateTable(c.Request.Context(), agentID, req, actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to upsert agent rate table")
		return
	}
	c.JSON(http.StatusOK, dto.ToAgentRateTableResponse(table))
}

// getTable godoc
// @Summary Get an agent's rate table
// @Tags pricing
// @Produce json
// @Param agentID path string true "Agent ID"
// @Success 200 {object} dto.AgentRateTableResponse
// @Failure 403 {object} ErrorResponse "Agents may only read their own table"
// @Failure 422 {object} ErrorResponse "Agent has no custom table"
// @Security BearerAuth
// @Router /agents/{agentID}/rate-table [get]
func (h *pricingTableHandler) getTable(c *gin.Context) {
	actorID, ok := middleware.GetPartyIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	role, _ := middleware.GetPartyRoleFromContext(c)
	agentID := c.Param("agentID")
	if role == domain.RoleAgent && actorID != agentID {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Agents may only read their own rate table"})
		return
	}

	table, err := h.pricingService.GetAgentRateTable(c.Request.Context(), agentID)
	if err != nil {
		respondServiceError(c, err, "Failed to get agent rate table")
		return
	}
	c.JSON(http.StatusOK, dto.ToAgentRateTableResponse(table))
}
