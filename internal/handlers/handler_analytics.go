package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/inkledger/inkledger_backend/internal/core/domain"
	portssvc "github.com/inkledger/inkledger_backend/internal/core/ports/services"
	"github.com/inkledger/inkledger_backend/internal/dto"
	"github.com/inkledger/inkledger_backend/internal/middleware"
)

// analyticsHandler serves windowed ledger rollups to financial parties.
type analyticsHandler struct {
	analyticsService portssvc.AnalyticsSvcFacade
}

func newAnalyticsHandler(as portssvc.AnalyticsSvcFacade) *analyticsHandler {
	return &analyticsHandler{analyticsService: as}
}

// registerAnalyticsRoutes registers the analytics routes. Workers are excluded
// at the routing layer; the service rejects them again.
func registerAnalyticsRoutes(rg *gin.RouterGroup, analyticsService portssvc.AnalyticsSvcFacade) {
	h := newAnalyticsHandler(analyticsService)
	financial := middleware.RequireRoles(domain.RoleSuperAgent, domain.RoleAgent, domain.RoleSuperWorker)
	rg.GET("/analytics/earnings", financial, h.earnings)
}

// earnings godoc
// @Summary Earnings and profit report
// @Description Sums the caller's settlement ledger over the chosen window, with a per-month breakdown. Refunds count against the window they were recorded in.
// @Tags analytics
// @Produce json
// @Param window query string false "week, month or custom (default month)"
// @Param from query string false "RFC 3339 start, custom window only"
// @Param to query string false "RFC 3339 end, custom window only"
// @Success 200 {object} dto.AnalyticsReportResponse
// @Failure 400 {object} ErrorResponse "Invalid window parameters"
// @Failure 403 {object} ErrorResponse "Caller has no financial visibility"
// @Security BearerAuth
// @Router /analytics/earnings [get]
func (h *analyticsHandler) earnings(c *gin.Context) {
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

	q := dto.AnalyticsQuery{Window: dto.AnalyticsWindow(c.DefaultQuery("window", string(dto.WindowMonth)))}
	if q.Window == dto.WindowCustom {
		var err error
		q.From, err = time.Parse(time.RFC3339, c.Query("from"))
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid from parameter, expected RFC 3339"})
			return
		}
		q.To, err = time.Parse(time.RFC3339, c.Query("to"))
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid to parameter, expected RFC 3339"})
			return
		}
	}

	report, err := h.analyticsService.Report(c.Request.Context(), partyID, role, q)
	if err != nil {
		respondServiceError(c, err, "Failed to build analytics report")
		return
	}
	c.JSON(http.StatusOK, dto.ToAnalyticsReportResponse(report))
}
