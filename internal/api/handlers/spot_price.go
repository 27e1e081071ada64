package handlers

import (
	"errors"
	"kumpisahko/internal/metrics"
	"kumpisahko/internal/models"
	"kumpisahko/internal/repository"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// maxListRange bounds the time range of a single list request
	maxListRange = 31 * 24 * time.Hour
	// maxListLimit allows 15-minute prices for the whole range
	maxListLimit = 3000
)

// SpotPriceHandler handles spot price-related requests
type SpotPriceHandler struct {
	repo    repository.SpotPriceRepository
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// NewSpotPriceHandler creates a new SpotPriceHandler. m may be nil.
func NewSpotPriceHandler(repo repository.SpotPriceRepository, m *metrics.Metrics, logger zerolog.Logger) *SpotPriceHandler {
	return &SpotPriceHandler{
		repo:    repo,
		metrics: m,
		logger:  logger,
	}
}

// ListSpotPrices godoc
// @Summary List spot prices
// @Description Returns the VAT-exclusive spot prices (c/kWh) within a date range (max 31 days)
// @Tags spot-prices
// @Accept json
// @Produce json
// @Param start_time query string true "Start time (RFC3339)"
// @Param end_time query string true "End time (RFC3339)"
// @Param order_desc query boolean false "Order descending"
// @Success 200 {array} models.SpotPrice
// @Failure 400 {object} models.ErrorResponse "Invalid parameters or date range exceeds 31 days"
// @Failure 429 {object} models.ErrorResponse "Rate limit exceeded"
// @Failure 500 {object} models.ErrorResponse "Internal Server Error"
// @Router /spot-prices [get]
func (h *SpotPriceHandler) ListSpotPrices(c *gin.Context) {
	filter := repository.SpotPriceFilter{}

	startTimeStr := c.Query("start_time")
	if startTimeStr == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "start_time is required"})
		return
	}
	startTime, err := time.Parse(time.RFC3339, startTimeStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid start time format, use RFC3339"})
		return
	}
	filter.StartTime = &startTime

	endTimeStr := c.Query("end_time")
	if endTimeStr == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "end_time is required"})
		return
	}
	endTime, err := time.Parse(time.RFC3339, endTimeStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid end time format, use RFC3339"})
		return
	}
	filter.EndTime = &endTime

	if endTime.Before(startTime) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "end_time must be after start_time"})
		return
	}

	if endTime.Sub(startTime) > maxListRange {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "date range cannot exceed 31 days"})
		return
	}

	if desc := c.Query("order_desc"); desc == "true" {
		filter.OrderDesc = true
	}

	limit := maxListLimit
	filter.Limit = &limit

	spotPrices, err := h.repo.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list spot prices")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to fetch spot prices"})
		return
	}

	c.JSON(http.StatusOK, spotPrices)
}

// LatestSpotPrice godoc
// @Summary Get the latest spot price
// @Description Returns the spot price with the greatest timestamp
// @Tags spot-prices
// @Accept json
// @Produce json
// @Success 200 {object} models.SpotPrice
// @Failure 404 {object} models.ErrorResponse "No spot prices stored"
// @Failure 429 {object} models.ErrorResponse "Rate limit exceeded"
// @Failure 500 {object} models.ErrorResponse "Internal Server Error"
// @Router /spot-prices/latest [get]
func (h *SpotPriceHandler) LatestSpotPrice(c *gin.Context) {
	spotPrice, err := h.repo.Latest(c.Request.Context())
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "no spot prices stored"})
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to fetch latest spot price")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to fetch spot price"})
		return
	}

	c.JSON(http.StatusOK, spotPrice)
}

// GetSpotPrice godoc
// @Summary Get a spot price by ID
// @Description Returns a spot price by its ID
// @Tags spot-prices
// @Accept json
// @Produce json
// @Param id path string true "Spot Price ID"
// @Success 200 {object} models.SpotPrice
// @Failure 400 {object} models.ErrorResponse "Invalid spot price ID"
// @Failure 404 {object} models.ErrorResponse "Spot price not found"
// @Failure 429 {object} models.ErrorResponse "Rate limit exceeded"
// @Failure 500 {object} models.ErrorResponse "Internal Server Error"
// @Router /spot-prices/{id} [get]
func (h *SpotPriceHandler) GetSpotPrice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid spot price ID"})
		return
	}

	spotPrice, err := h.repo.GetByID(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "spot price not found"})
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Str("id", id.String()).Msg("failed to fetch spot price")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to fetch spot price"})
		return
	}

	c.JSON(http.StatusOK, spotPrice)
}

// UpsertSpotPrices godoc
// @Summary Create or update spot prices (Admin only)
// @Description Creates or updates one or more spot prices in a single transaction. A price stored at the same timestamp is replaced. Negative prices are accepted. Requires admin privileges.
// @Tags spot-prices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param spot_prices body models.CreateSpotPricesRequest true "Spot prices to create or update"
// @Success 201 {array} models.SpotPrice
// @Failure 400 {object} models.ErrorResponse "Invalid request body"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 403 {object} models.ErrorResponse "Permission denied - admin only"
// @Failure 429 {object} models.ErrorResponse "Rate limit exceeded"
// @Failure 500 {object} models.ErrorResponse "Internal Server Error"
// @Router /spot-prices [post]
func (h *SpotPriceHandler) UpsertSpotPrices(c *gin.Context) {
	var req models.CreateSpotPricesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	spotPrices := make([]models.SpotPrice, len(req.SpotPrices))
	for i, sp := range req.SpotPrices {
		spotPrices[i] = models.SpotPrice{
			Timestamp: sp.Timestamp.UTC(),
			Price:     *sp.Price,
		}
	}

	if err := h.repo.UpsertBatch(c.Request.Context(), spotPrices); err != nil {
		h.logger.Error().Err(err).Int("count", len(spotPrices)).Msg("failed to upsert spot prices")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to store spot prices"})
		return
	}

	if h.metrics != nil {
		h.metrics.AddUpsertedPrices(len(spotPrices))
	}
	h.logger.Info().Int("count", len(spotPrices)).Msg("spot prices upserted")

	c.JSON(http.StatusCreated, spotPrices)
}

// DeleteSpotPrice godoc
// @Summary Delete a spot price (Admin only)
// @Description Deletes an existing spot price. Requires admin privileges.
// @Tags spot-prices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Spot Price ID"
// @Success 204 "Spot price deleted"
// @Failure 400 {object} models.ErrorResponse "Invalid spot price ID"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 403 {object} models.ErrorResponse "Permission denied - admin only"
// @Failure 404 {object} models.ErrorResponse "Spot price not found"
// @Failure 429 {object} models.ErrorResponse "Rate limit exceeded"
// @Failure 500 {object} models.ErrorResponse "Internal Server Error"
// @Router /spot-prices/{id} [delete]
func (h *SpotPriceHandler) DeleteSpotPrice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid spot price ID"})
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "spot price not found"})
		return
	} else if err != nil {
		h.logger.Error().Err(err).Str("id", id.String()).Msg("failed to delete spot price")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to delete spot price"})
		return
	}

	c.Status(http.StatusNoContent)
}
