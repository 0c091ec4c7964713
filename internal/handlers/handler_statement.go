package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/saifipay/saifi-backend/internal/core/ports/services"
	"github.com/saifipay/saifi-backend/internal/dto"
	"github.com/saifipay/saifi-backend/internal/middleware"
)

// statementHandler handles HTTP requests for the unified account statement.
type statementHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newStatementHandler(ls portssvc.LedgerSvcFacade) *statementHandler {
	return &statementHandler{ledgerService: ls}
}

// registerStatementRoutes registers routes related to the account statement.
func registerStatementRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newStatementHandler(ledgerService)

	rg.GET("/statement", h.listStatement)
}

// listStatement godoc
// @Summary Get account statement
// @Description Returns the caller's unified feed of ledger entries and conversions, newest first, with optional currency, type and date filters.
// @Tags statement
// @Produce json
// @Param currency query string false "Filter by currency code"
// @Param type query string false "Filter by entry type" Enums(DEPOSIT, WITHDRAW, TRANSFER, EXCHANGE)
// @Param from query string false "Only rows at or after this instant (RFC3339)"
// @Param to query string false "Only rows before this instant (RFC3339)"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Rows to skip" default(0)
// @Success 200 {object} dto.StatementResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /statement [get]
func (h *statementHandler) listStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	params := dto.ListStatementParams{
		CurrencyCode: strings.ToUpper(c.Query("currency")),
		Kind:         strings.ToUpper(c.Query("type")),
	}
	params.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "0"))
	params.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid 'from' timestamp, expected RFC3339"})
			return
		}
		params.From = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid 'to' timestamp, expected RFC3339"})
			return
		}
		params.To = &t
	}

	resp, err := h.ledgerService.ListStatement(c.Request.Context(), userID, params)
	if err != nil {
		logger.Error("Failed to build statement", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build statement"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
