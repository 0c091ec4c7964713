package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/saifipay/saifi-backend/internal/apperrors"
	portssvc "github.com/saifipay/saifi-backend/internal/core/ports/services"
	"github.com/saifipay/saifi-backend/internal/dto"
	"github.com/saifipay/saifi-backend/internal/middleware"
)

// treasuryHandler handles HTTP requests related to company treasuries.
type treasuryHandler struct {
	treasuryService portssvc.TreasurySvcFacade
}

func newTreasuryHandler(ts portssvc.TreasurySvcFacade) *treasuryHandler {
	return &treasuryHandler{treasuryService: ts}
}

// registerTreasuryRoutes registers routes related to treasuries.
func registerTreasuryRoutes(rg *gin.RouterGroup, treasuryService portssvc.TreasurySvcFacade) {
	h := newTreasuryHandler(treasuryService)

	treasuries := rg.Group("/treasuries")
	{
		treasuries.POST("", h.createTreasury)
		treasuries.GET("", h.listTreasuries)
		treasuries.POST("/capital", h.addCapital)
		treasuries.GET("/:treasuryID/movements", h.listMovements)
	}
}

// listMovements godoc
// @Summary List treasury movements
// @Description Returns one treasury's company movement log, newest first.
// @Tags treasuries
// @Produce json
// @Param treasuryID path string true "Treasury ID"
// @Param limit query int false "Maximum rows to return" default(50)
// @Success 200 {array} dto.TreasuryMovementResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Treasury not found"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /treasuries/{treasuryID}/movements [get]
func (h *treasuryHandler) listMovements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	treasuryID := c.Param("treasuryID")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	movements, err := h.treasuryService.ListMovements(c.Request.Context(), treasuryID, limit)
	if err != nil {
		if errors.Is(err, apperrors.ErrTreasuryNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to list treasury movements", slog.String("treasury_id", treasuryID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list treasury movements"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTreasuryMovementResponses(movements))
}

// createTreasury godoc
// @Summary Create a treasury
// @Description Creates a company treasury. A non-zero initial balance is recorded as the opening movement.
// @Tags treasuries
// @Accept json
// @Produce json
// @Param treasury body dto.CreateTreasuryRequest true "Treasury details"
// @Success 201 {object} dto.TreasuryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /treasuries [post]
func (h *treasuryHandler) createTreasury(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateTreasuryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	treasury, err := h.treasuryService.CreateTreasury(c.Request.Context(), req, actorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to create treasury", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create treasury"})
		}
		return
	}

	logger.Info("Treasury created",
		slog.String("treasury_id", treasury.TreasuryID),
		slog.String("currency", treasury.CurrencyCode),
	)
	c.JSON(http.StatusCreated, dto.ToTreasuryResponse(treasury))
}

// listTreasuries godoc
// @Summary List treasuries
// @Description Returns all company treasuries with their balances.
// @Tags treasuries
// @Produce json
// @Success 200 {array} dto.TreasuryResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /treasuries [get]
func (h *treasuryHandler) listTreasuries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	treasuries, err := h.treasuryService.ListTreasuries(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list treasuries", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list treasuries"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTreasuryResponses(treasuries))
}

// addCapital godoc
// @Summary Inject capital into a treasury
// @Description Credits a treasury and logs the capital source in the movement log.
// @Tags treasuries
// @Accept json
// @Produce json
// @Param capital body dto.AddCapitalRequest true "Capital injection details"
// @Success 200 {object} dto.AddCapitalResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Treasury not found"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /treasuries/capital [post]
func (h *treasuryHandler) addCapital(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.AddCapitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	treasury, err := h.treasuryService.AddCapital(c.Request.Context(), req, actorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrTreasuryNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrInvalidAmount), errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to add capital", slog.String("treasury_id", req.TreasuryID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to add capital"})
		}
		return
	}

	logger.Info("Capital injected", slog.String("treasury_id", treasury.TreasuryID))
	c.JSON(http.StatusOK, dto.AddCapitalResponse{
		TreasuryID: treasury.TreasuryID,
		NewBalance: treasury.Balance,
	})
}
