package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inkledger/inkledger_backend/internal/core/domain"
	portssvc "github.com/inkledger/inkledger_backend/internal/core/ports/services"
	"github.com/inkledger/inkledger_backend/internal/dto"
	"github.com/inkledger/inkledger_backend/internal/middleware"
)

// quoteHandler serves stateless price previews.
type quoteHandler struct {
	pricingService  portssvc.PricingSvcFacade
	currencyService portssvc.CurrencySvcFacade
}

func newQuoteHandler(ps portssvc.PricingSvcFacade, cs portssvc.CurrencySvcFacade) *quoteHandler {
	return &quoteHandler{pricingService: ps, currencyService: cs}
}

// registerQuoteRoutes registers the quote preview route.
func registerQuoteRoutes(rg *gin.RouterGroup, pricingService portssvc.PricingSvcFacade, currencyService portssvc.CurrencySvcFacade) {
	h := newQuoteHandler(pricingService, currencyService)
	rg.POST("/quotes", middleware.RequireRoles(domain.RoleClient), h.quote)
}

// quote godoc
// @Summary Preview a price
// @Description Computes the price breakdown a new assignment would freeze, without creating anything. Includes an indicative INR total when any exchange rate is available.
// @Tags quotes
// @Accept json
// @Produce json
// @Param quote body dto.QuoteRequest true "Quote parameters"
// @Success 200 {object} dto.PriceBreakdownResponse
// @Failure 400 {object} ErrorResponse "Invalid input or word count outside the table range"
// @Failure 422 {object} ErrorResponse "Client has no resolvable pricing source"
// @Security BearerAuth
// @Router /quotes [post]
func (h *quoteHandler) quote(c *gin.Context) {
	var req dto.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	clientID, ok := middleware.GetPartyIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	breakdown, err := h.pricingService.QuoteForClient(c.Request.Context(), clientID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to compute quote")
		return
	}

	// INR total is indicative only; a quote without any rate still succeeds.
	resp := dto.ToPriceBreakdownResponse(*breakdown, nil, false)
	if inr, snapshot, err := h.currencyService.ConvertForDisplay(c.Request.Context(), breakdown.TotalPriceGBP); err == nil {
		resp.TotalPriceINR = &inr
		resp.RateStale = snapshot.Stale
	}
	c.JSON(http.StatusOK, resp)
}
