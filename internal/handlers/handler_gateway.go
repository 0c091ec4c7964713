package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/saifipay/saifi-backend/internal/core/ports/services"
	"github.com/saifipay/saifi-backend/internal/middleware"
)

// gatewayHandler exposes provider-side lookups for operators: the agent
// balance held at the payment provider and the status of past payments.
type gatewayHandler struct {
	gateway portssvc.PaymentGateway
}

func newGatewayHandler(gw portssvc.PaymentGateway) *gatewayHandler {
	return &gatewayHandler{gateway: gw}
}

// registerGatewayRoutes registers provider lookup routes.
func registerGatewayRoutes(rg *gin.RouterGroup, gateway portssvc.PaymentGateway) {
	h := newGatewayHandler(gateway)

	gw := rg.Group("/gateway")
	{
		gw.GET("/balance", h.getAgentBalance)
		gw.GET("/transactions/:reference", h.getTransactionStatus)
	}
}

// getAgentBalance godoc
// @Summary Get provider agent balance
// @Description Queries the payment provider for the company's agent balance.
// @Tags gateway
// @Produce json
// @Success 200 {object} services.PaymentResult
// @Failure 401 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse "Provider unreachable"
// @Security BearerAuth
// @Router /gateway/balance [get]
func (h *gatewayHandler) getAgentBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	result, err := h.gateway.AgentBalance(c.Request.Context())
	if err != nil {
		logger.Error("Agent balance query failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "Payment provider unreachable"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// getTransactionStatus godoc
// @Summary Check a payment's provider status
// @Description Queries the payment provider for the state of a past payment by reference.
// @Tags gateway
// @Produce json
// @Param reference path string true "Provider payment reference"
// @Success 200 {object} services.PaymentResult
// @Failure 401 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse "Provider unreachable"
// @Security BearerAuth
// @Router /gateway/transactions/{reference} [get]
func (h *gatewayHandler) getTransactionStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	reference := c.Param("reference")

	result, err := h.gateway.TransactionStatus(c.Request.Context(), reference)
	if err != nil {
		logger.Error("Transaction status query failed",
			slog.String("reference", reference),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "Payment provider unreachable"})
		return
	}

	c.JSON(http.StatusOK, result)
}
