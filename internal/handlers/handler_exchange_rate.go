package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/saifipay/saifi-backend/internal/apperrors"
	portssvc "github.com/saifipay/saifi-backend/internal/core/ports/services"
	"github.com/saifipay/saifi-backend/internal/dto"
	"github.com/saifipay/saifi-backend/internal/middleware"
)

// exchangeRateHandler handles HTTP requests related to exchange rates.
type exchangeRateHandler struct {
	exchangeRateService portssvc.ExchangeRateSvcFacade
}

func newExchangeRateHandler(ers portssvc.ExchangeRateSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{exchangeRateService: ers}
}

// registerExchangeRateRoutes registers routes related to exchange rates.
func registerExchangeRateRoutes(rg *gin.RouterGroup, exchangeRateService portssvc.ExchangeRateSvcFacade) {
	h := newExchangeRateHandler(exchangeRateService)

	exchangeRates := rg.Group("/exchange-rates")
	{
		exchangeRates.POST("", h.upsertExchangeRate)
		exchangeRates.GET("", h.listExchangeRates)
		exchangeRates.GET("/:from/:to", h.getExchangeRate)
	}
}

// upsertExchangeRate godoc
// @Summary Create or replace an exchange rate
// @Description Sets the buy and sell rates for an ordered currency pair and marks the row active.
// @Tags exchange rates
// @Accept json
// @Produce json
// @Param rate body dto.UpsertExchangeRateRequest true "Exchange rate details"
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /exchange-rates [post]
func (h *exchangeRateHandler) upsertExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpsertExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	rate, err := h.exchangeRateService.UpsertRate(c.Request.Context(), req, actorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to upsert exchange rate", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to save exchange rate"})
		return
	}

	logger.Info("Exchange rate saved",
		slog.String("from", rate.FromCurrencyCode),
		slog.String("to", rate.ToCurrencyCode),
	)
	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}

// listExchangeRates godoc
// @Summary List exchange rates
// @Description Lists exchange rate rows, optionally restricted to active ones.
// @Tags exchange rates
// @Produce json
// @Param active query bool false "Only return active rates"
// @Success 200 {array} dto.ExchangeRateResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /exchange-rates [get]
func (h *exchangeRateHandler) listExchangeRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	activeOnly := strings.EqualFold(c.Query("active"), "true")

	rates, err := h.exchangeRateService.ListRates(c.Request.Context(), activeOnly)
	if err != nil {
		logger.Error("Failed to list exchange rates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list exchange rates"})
		return
	}

	c.JSON(http.StatusOK, dto.ToExchangeRateResponses(rates))
}

// getExchangeRate godoc
// @Summary Get the active exchange rate
// @Description Retrieves the active exchange rate for an ordered currency pair.
// @Tags exchange rates
// @Produce json
// @Param from path string true "Source currency code"
// @Param to path string true "Target currency code"
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "No active rate for this pair"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /exchange-rates/{from}/{to} [get]
func (h *exchangeRateHandler) getExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	from := strings.ToUpper(c.Param("from"))
	to := strings.ToUpper(c.Param("to"))

	rate, err := h.exchangeRateService.GetActiveRate(c.Request.Context(), from, to)
	if err != nil {
		if errors.Is(err, apperrors.ErrRateUnavailable) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to fetch exchange rate", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch exchange rate"})
		return
	}

	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}
