package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inkledger/inkledger_backend/internal/core/domain"
	portssvc "github.com/inkledger/inkledger_backend/internal/core/ports/services"
	"github.com/inkledger/inkledger_backend/internal/dto"
	"github.com/inkledger/inkledger_backend/internal/middleware"
)

// assignmentHandler handles HTTP requests for the assignment lifecycle.
type assignmentHandler struct {
	assignmentService portssvc.AssignmentSvcFacade
	settlementService portssvc.SettlementSvcFacade
}

func newAssignmentHandler(as portssvc.AssignmentSvcFacade, ss portssvc.SettlementSvcFacade) *assignmentHandler {
	return &assignmentHandler{assignmentService: as, settlementService: ss}
}

// RegisterAssignmentRoutes registers all assignment-related routes.
func RegisterAssignmentRoutes(rg *gin.RouterGroup, assignmentService portssvc.AssignmentSvcFacade, settlementService portssvc.SettlementSvcFacade) {
	h := newAssignmentHandler(assignmentService, settlementService)

	assignments := rg.Group("/assignments")
	{
		assignments.POST("", middleware.RequireRoles(domain.RoleClient), h.createAssignment)
		assignments.GET("", middleware.RequireRoles(domain.RoleClient), h.listAssignments)
		assignments.GET("/:id", h.getAssignment)

		operators := middleware.RequireRoles(domain.RoleSuperAgent, domain.RoleAgent, domain.RoleSuperWorker)
		assignments.POST("/:id/status", operators, h.transitionStatus)
		assignments.POST("/:id/word-count", middleware.RequireRoles(domain.RoleSuperAgent, domain.RoleAgent), h.adjustWordCount)

		assignments.POST("/:id/settle", middleware.RequireRoles(domain.RoleSuperAgent), h.settle)
		assignments.GET("/:id/settlements", middleware.RequireRoles(domain.RoleSuperAgent, domain.RoleAgent, domain.RoleSuperWorker), h.getSettlements)
	}
}

// createAssignment godoc
// @Summary Create an assignment
// @Description Resolves the caller's hierarchy chain, quotes the price and freezes the breakdown.
// @Tags assignments
// @Accept json
// @Produce json
// @Param assignment body dto.CreateAssignmentRequest true "Assignment details"
// @Success 201 {object} dto.AssignmentResponse
// @Failure 400 {object} ErrorResponse "Invalid input or word count outside the table range"
// @Failure 422 {object} ErrorResponse "Unresolvable hierarchy or pricing source"
// @Security BearerAuth
// @Router /assignments [post]
func (h *assignmentHandler) createAssignment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	clientID, ok := middleware.GetPartyIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	assignment, err := h.assignmentService.CreateAssignment(c.Request.Context(), clientID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to create assignment")
		return
	}

	logger.Info("Assignment created",
		slog.String("assignment_id", assignment.AssignmentID),
		slog.Int("word_count", assignment.WordCount),
		slog.String("total_gbp", assignment.Breakdown.TotalPriceGBP.String()),
	)
	c.JSON(http.StatusCreated, dto.ToAssignmentResponse(assignment))
}

// listAssignments godoc
// @Summary List the caller's assignments
// @Tags assignments
// @Produce json
// @Param limit query int false "Page size (default 20)"
// @Param nextToken query string false "Pagination token from the previous page"
// @Success 200 {object} dto.ListAssignmentsResponse
// @Security BearerAuth
// @Router /assignments [get]
func (h *assignmentHandler) listAssignments(c *gin.Context) {
	var params dto.ListAssignmentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	clientID, ok := middleware.GetPartyIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	page, err := h.assignmentService.ListAssignmentsByClient(c.Request.Context(), clientID, params)
	if err != nil {
		respondServiceError(c, err, "Failed to list assignments")
		return
	}
	c.JSON(http.StatusOK, page)
}

// getAssignment godoc
// @Summary Get an assignment
// @Description Returns the full financial view to parties in the assignment's chain. Workers get a view without any monetary fields.
// @Tags assignments
// @Produce json
// @Param id path string true "Assignment ID"
// @Success 200 {object} dto.AssignmentResponse
// @Failure 403 {object} ErrorResponse "Caller is not part of the assignment"
// @Failure 404 {object} ErrorResponse "Assignment not found"
// @Security BearerAuth
// @Router /assignments/{id} [get]
func (h *assignmentHandler) getAssignment(c *gin.Context) {
	partyID, ok := middleware.GetPartyIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	role, ok := middleware.GetPartyRoleFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	assignment, err := h.assignmentService.GetAssignment(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to get assignment")
		return
	}

	if !partOfAssignment(assignment, partyID, role) {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Party not part of assignment",
			slog.String("assignment_id", assignment.AssignmentID))
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
		return
	}

	if !role.SeesFinancials() {
		c.JSON(http.StatusOK, dto.ToWorkerAssignmentResponse(assignment))
		return
	}
	c.JSON(http.StatusOK, dto.ToAssignmentResponse(assignment))
}

// partOfAssignment reports whether the party participates in the assignment's
// chain in its claimed role.
func partOfAssignment(a *domain.Assignment, partyID string, role domain.Role) bool {
	switch role {
	case domain.RoleSuperAgent:
		return a.Chain.SuperAgentID == partyID
	case domain.RoleAgent:
		return a.Chain.AgentID != nil && *a.Chain.AgentID == partyID
	case domain.RoleClient:
		return a.ClientID == partyID
	case domain.RoleSuperWorker:
		return a.Chain.SuperWorkerID == partyID
	case domain.RoleWorker:
		return a.Chain.WorkerID != nil && *a.Chain.WorkerID == partyID
	}
	return false
}

// transitionStatus godoc
// @Summary Transition an assignment's status
// @Description Moves the assignment along its lifecycle. Transitioning into PAID settles it; transitioning into REFUNDED emits compensating ledger entries.
// @Tags assignments
// @Accept json
// @Produce json
// @Param id path string true "Assignment ID"
// @Param transition body dto.TransitionStatusRequest true "Target status and the version read"
// @Success 200 {object} dto.AssignmentResponse
// @Failure 409 {object} ErrorResponse "Illegal transition or stale version"
// @Security BearerAuth
// @Router /assignments/{id}/status [post]
func (h *assignmentHandler) transitionStatus(c *gin.Context) {
	var req dto.TransitionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetPartyIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	assignment, err := h.assignmentService.TransitionStatus(c.Request.Context(), c.Param("id"), req, actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to transition assignment status")
		return
	}
	c.JSON(http.StatusOK, dto.ToAssignmentResponse(assignment))
}

// adjustWordCount godoc
// @Summary Apply an approved word-count adjustment
// @Description Re-quotes the assignment at the new word count and freezes the replacement breakdown. The urgency tier from the original request dates is kept.
// @Tags assignments
// @Accept json
// @Produce json
// @Param id path string true "Assignment ID"
// @Param adjustment body dto.AdjustWordCountRequest true "New word count and the version read"
// @Success 200 {object} dto.AssignmentResponse
// @Failure 409 {object} ErrorResponse "Assignment already finalized or stale version"
// @Security BearerAuth
// @Router /assignments/{id}/word-count [post]
func (h *assignmentHandler) adjustWordCount(c *gin.Context) {
	var req dto.AdjustWordCountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetPartyIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	assignment, err := h.assignmentService.ApproveWordCountAdjustment(c.Request.Context(), c.Param("id"), req, actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to adjust word count")
		return
	}
	c.JSON(http.StatusOK, dto.ToAssignmentResponse(assignment))
}

// settle godoc
// @Summary Settle an assignment
// @Description Computes and persists the settlement set for a paid assignment. Idempotent; mainly a reconciliation path when the automatic settlement on payment failed.
// @Tags settlements
// @Produce json
// @Param id path string true "Assignment ID"
// @Success 200 {array} dto.SettlementRecordResponse
// @Failure 409 {object} ErrorResponse "Assignment not in a payable status"
// @Failure 503 {object} ErrorResponse "No exchange rate available for settlement"
// @Security BearerAuth
// @Router /assignments/{id}/settle [post]
func (h *assignmentHandler) settle(c *gin.Context) {
	actorID, ok := middleware.GetPartyIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	records, err := h.settlementService.SettleAssignment(c.Request.Context(), c.Param("id"), actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to settle assignment")
		return
	}
	c.JSON(http.StatusOK, dto.ToSettlementRecordResponses(records))
}

// getSettlements godoc
// @Summary Get an assignment's settlement ledger entries
// @Description Only parties in the assignment's chain may read its ledger.
// @Tags settlements
// @Produce json
// @Param id path string true "Assignment ID"
// @Success 200 {array} dto.SettlementRecordResponse
// @Failure 403 {object} ErrorResponse "Caller is not part of the assignment"
// @Failure 404 {object} ErrorResponse "Assignment not found"
// @Security BearerAuth
// @Router /assignments/{id}/settlements [get]
func (h *assignmentHandler) getSettlements(c *gin.Context) {
	partyID, ok := middleware.GetPartyIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	role, ok := middleware.GetPartyRoleFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	assignment, err := h.assignmentService.GetAssignment(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to get assignment for settlements")
		return
	}
	if !partOfAssignment(assignment, partyID, role) {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Party not part of assignment",
			slog.String("assignment_id", assignment.AssignmentID))
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
		return
	}

	records, err := h.settlementService.GetSettlementsForAssignment(c.Request.Context(), assignment.AssignmentID)
	if err != nil {
		respondServiceError(c, err, "Failed to get settlements")
		return
	}
	c.JSON(http.StatusOK, dto.ToSettlementRecordResponses(records))
}
