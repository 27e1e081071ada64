package handlers

import (
	"errors"
	"fmt"
	"kumpisahko/internal/cost"
	"kumpisahko/internal/models"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// CostHandler prices consumption against the stored spot prices
type CostHandler struct {
	service    *cost.Service
	maxEntries int
	logger     zerolog.Logger
}

// NewCostHandler creates a new CostHandler. maxEntries caps the intervals of one request.
func NewCostHandler(service *cost.Service, maxEntries int, logger zerolog.Logger) *CostHandler {
	return &CostHandler{
		service:    service,
		maxEntries: maxEntries,
		logger:     logger,
	}
}

// CalculateCost godoc
// @Summary Calculate electricity cost
// @Description Prices each consumption interval at the VAT-inclusive spot price and optionally compares the total with a fixed unit price. Hourly and 15-minute consumption and prices can be mixed. Missing prices count as zero.
// @Tags cost
// @Accept json
// @Produce json
// @Param request body models.CalculateCostRequest true "Consumption intervals"
// @Success 200 {object} models.CalculateCostResponse
// @Failure 400 {object} models.ErrorResponse "Malformed consumption"
// @Failure 413 {object} models.ErrorResponse "Request body too large"
// @Failure 429 {object} models.ErrorResponse "Rate limit exceeded"
// @Failure 503 {object} models.ErrorResponse "Spot prices unavailable"
// @Failure 500 {object} models.ErrorResponse "Internal Server Error"
// @Router /calculate-cost [post]
func (h *CostHandler) CalculateCost(c *gin.Context) {
	var req models.CalculateCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse{Error: "request body too large"})
			return
		}
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	if len(req.Consumption) > h.maxEntries {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: fmt.Sprintf("too many consumption entries, maximum is %d", h.maxEntries),
		})
		return
	}

	result, err := h.service.Calculate(c.Request.Context(), req.Intervals(), req.ConstantPricePerUnit)
	if errors.Is(err, cost.ErrPriceLookup) {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "spot prices unavailable"})
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Msg("cost calculation failed")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to calculate cost"})
		return
	}

	c.JSON(http.StatusOK, models.NewCalculateCostResponse(result.Report, result.FixedCost))
}
