package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/inkledger/inkledger_backend/internal/core/domain"
	portssvc "github.com/inkledger/inkledger_backend/internal/core/ports/services"
	"github.com/inkledger/inkledger_backend/internal/dto"
	"github.com/inkledger/inkledger_backend/internal/middleware"
)

// partyHandler handles HTTP requests for the party registry.
type partyHandler struct {
	partyService portssvc.PartySvcFacade
}

func newPartyHandler(ps portssvc.PartySvcFacade) *partyHandler {
	return &partyHandler{partyService: ps}
}

// registerPartyRoutes registers all party-related routes.
func registerPartyRoutes(rg *gin.RouterGroup, partyService portssvc.PartySvcFacade) {
	h := newPartyHandler(partyService)

	parties := rg.Group("/parties")
	{
		recruiters := middleware.RequireRoles(domain.RoleSuperAgent, domain.RoleAgent, domain.RoleSuperWorker)
		parties.POST("", recruiters, h.registerParty)
		parties.GET("/:id", h.getParty)
		parties.PUT("/:id", h.updateParty)
		parties.GET("", middleware.RequireRoles(domain.RoleSuperAgent), h.listParties)
		parties.DELETE("/:id", middleware.RequireRoles(domain.RoleSuperAgent), h.deactivateParty)
	}
}

// registerParty godoc
// @Summary Register a party
// @Description Registers a new party into the recruitment hierarchy. When the new role needs a parent and none is given, the caller becomes the parent.
// @Tags parties
// @Accept json
// @Produce json
// @Param party body dto.RegisterPartyRequest true "Party details"
// @Success 201 {object} dto.PartyResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Security BearerAuth
// @Router /parties [post]
func (h *partyHandler) registerParty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RegisterPartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorID, ok := middleware.GetPartyIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	// A recruiter registering a child defaults to being its parent.
	if req.ParentPartyID == nil && req.Role.RequiresParent() {
		req.ParentPartyID = &creatorID
	}

	party, err := h.partyService.RegisterParty(c.Request.Context(), req, creatorID)
	if err != nil {
		respondServiceError(c, err, "Failed to register party")
		return
	}

	logger.Info("Party registered", slog.String("party_id", party.PartyID), slog.String("role", string(party.Role)))
	c.JSON(http.StatusCreated, dto.ToPartyResponse(party))
}

// getParty godoc
// @Summary Get a party by ID
// @Tags parties
// @Produce json
// @Param id path string true "Party ID"
// @Success 200 {object} dto.PartyResponse
// @Failure 404 {object} ErrorResponse "Party not found"
// @Security BearerAuth
// @Router /parties/{id} [get]
func (h *partyHandler) getParty(c *gin.Context) {
	party, err := h.partyService.GetPartyByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to get party")
		return
	}
	c.JSON(http.StatusOK, dto.ToPartyResponse(party))
}

// updateParty godoc
// @Summary Update a party's details
// @Description Updates a party's mutable fields. Parties may update themselves; the Super Agent may update anyone.
// @Tags parties
// @Accept json
// @Produce json
// @Param id path string true "Party ID"
// @Param party body dto.UpdatePartyRequest true "Fields to update"
// @Success 200 {object} dto.PartyResponse
// @Failure 403 {object} ErrorResponse "Not the party itself or the Super Agent"
// @Failure 404 {object} ErrorResponse "Party not found"
// @Security BearerAuth
// @Router /parties/{id} [put]
func (h *partyHandler) updateParty(c *gin.Context) {
	var req dto.UpdatePartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetPartyIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	role, ok := middleware.GetPartyRoleFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	targetID := c.Param("id")
	if targetID != actorID && role != domain.RoleSuperAgent {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
		return
	}

	party, err := h.partyService.UpdatePartyDetails(c.Request.Context(), targetID, req, actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to update party")
		return
	}
	c.JSON(http.StatusOK, dto.ToPartyResponse(party))
}

// listParties godoc
// @Summary List parties by role
// @Tags parties
// @Produce json
// @Param role query string true "Party role"
// @Param limit query int false "Page size (default 20)"
// @Param offset query int false "Offset"
// @Success 200 {array} dto.PartyResponse
// @Failure 400 {object} ErrorResponse "Invalid role"
// @Security BearerAuth
// @Router /parties [get]
func (h *partyHandler) listParties(c *gin.Context) {
	role := domain.Role(c.Query("role"))
	if !role.Valid() {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid or missing role parameter"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	parties, err := h.partyService.ListPartiesByRole(c.Request.Context(), role, limit, offset)
	if err != nil {
		respondServiceError(c, err, "Failed to list parties")
		return
	}
	c.JSON(http.StatusOK, dto.ToPartyResponses(parties))
}

// deactivateParty godoc
// @Summary Deactivate a party
// @Description Soft deletes a party. Fails while the party still has active recruits.
// @Tags parties
// @Produce json
// @Param id path string true "Party ID"
// @Success 204 "Deactivated"
// @Failure 404 {object} ErrorResponse "Party not found"
// @Failure 409 {object} ErrorResponse "Party still has active recruits"
// @Security BearerAuth
// @Router /parties/{id} [delete]
func (h *partyHandler) deactivateParty(c *gin.Context) {
	actorID, ok := middleware.GetPartyIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	if err := h.partyService.DeactivateParty(c.Request.Context(), c.Param("id"), actorID); err != nil {
		respondServiceError(c, err, "Failed to deactivate party")
		return
	}
	c.Status(http.StatusNoContent)
}
