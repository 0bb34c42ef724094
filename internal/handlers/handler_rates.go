package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/inkledger/inkledger_backend/internal/core/domain"
	portssvc "github.com/inkledger/inkledger_backend/internal/core/ports/services"
	"github.com/inkledger/inkledger_backend/internal/dto"
	"github.com/inkledger/inkledger_backend/internal/middleware"
)

// rateHandler exposes the GBP→INR exchange rate surface.
type rateHandler struct {
	currencyService portssvc.CurrencySvcFacade
}

func newRateHandler(cs portssvc.CurrencySvcFacade) *rateHandler {
	return &rateHandler{currencyService: cs}
}

// registerRateRoutes registers the exchange rate routes.
func registerRateRoutes(rg *gin.RouterGroup, currencyService portssvc.CurrencySvcFacade) {
	h := newRateHandler(currencyService)

	rates := rg.Group("/rates")
	{
		rates.GET("/gbp-inr", h.currentRate)
		rates.PUT("/gbp-inr", middleware.RequireRoles(domain.RoleSuperAgent), h.updateCachedRate)
	}
}

// currentRate godoc
// @Summary Current GBP to INR rate
// @Description Reports the rate a conversion would use right now and where it came from.
// @Tags rates
// @Produce json
// @Success 200 {object} dto.RateResponse
// @Failure 503 {object} ErrorResponse "No rate available from any source"
// @Security BearerAuth
// @Router /rates/gbp-inr [get]
func (h *rateHandler) currentRate(c *gin.Context) {
	snapshot, err := h.currencyService.CurrentRate(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to resolve current rate")
		return
	}
	c.JSON(http.StatusOK, dto.ToRateResponse(snapshot))
}

// updateCachedRate godoc
// @Summary Store a freshly fetched live rate
// @Description Writes a live GBP to INR rate into the cache. Already-settled records keep the snapshot they were computed with.
// @Tags rates
// @Accept json
// @Produce json
// @Param rate body dto.UpdateCachedRateRequest true "Live rate"
// @Success 200 {object} dto.RateResponse
// @Failure 400 {object} ErrorResponse "Invalid rate"
// @Security BearerAuth
// @Router /rates/gbp-inr [put]
func (h *rateHandler) updateCachedRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateCachedRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	if !req.Rate.IsPositive() {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Rate must be positive"})
		return
	}

	asOf := time.Now().UTC()
	if err := h.currencyService.StoreLiveRate(c.Request.Context(), req.Rate, asOf); err != nil {
		respondServiceError(c, err, "Failed to store live rate")
		return
	}

	logger.Info("Live exchange rate updated", slog.String("rate", req.Rate.String()))
	c.JSON(http.StatusOK, dto.RateResponse{Rate: req.Rate, AsOf: asOf, Source: domain.RateSourceCached})
}
