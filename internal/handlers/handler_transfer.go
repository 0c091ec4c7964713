package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/saifipay/saifi-backend/internal/apperrors"
	portssvc "github.com/saifipay/saifi-backend/internal/core/ports/services"
	"github.com/saifipay/saifi-backend/internal/dto"
	"github.com/saifipay/saifi-backend/internal/middleware"
	"github.com/saifipay/saifi-backend/pkg/config"
)

// transferHandler handles HTTP requests that move money.
type transferHandler struct {
	transferService portssvc.TransferSvcFacade
}

func newTransferHandler(ts portssvc.TransferSvcFacade) *transferHandler {
	return &transferHandler{transferService: ts}
}

// defaultTransferRateLimit is the fallback when TRANSFER_RATE_LIMIT cannot
// be parsed.
const defaultTransferRateLimit = "30-M"

// registerTransferRoutes registers routes related to transfers. The whole
// group is rate limited by client IP.
func registerTransferRoutes(rg *gin.RouterGroup, cfg *config.Config, transferService portssvc.TransferSvcFacade) {
	h := newTransferHandler(transferService)

	rate, err := limiter.NewRateFromFormatted(cfg.TransferRateLimit)
	if err != nil {
		slog.Warn("Invalid transfer rate limit, using default",
			slog.String("configured", cfg.TransferRateLimit),
			slog.String("default", defaultTransferRateLimit),
			slog.String("error", err.Error()))
		rate, _ = limiter.NewRateFromFormatted(defaultTransferRateLimit)
	}
	store := memory.NewStore()
	ipLimiter := limiter.New(store, rate)

	transfers := rg.Group("/transfers", middleware.RateLimit(ipLimiter))
	{
		transfers.POST("/p2p", h.transferP2P)
		transfers.POST("/deposit", h.deposit)
		transfers.POST("/withdraw", h.withdraw)
	}
}

// respondTransferError maps transfer engine errors to HTTP responses. The
// error message is only echoed for client-side faults; internal failures get
// a generic body.
func respondTransferError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	switch {
	case errors.Is(err, apperrors.ErrInvalidAmount),
		errors.Is(err, apperrors.ErrSelfTransfer),
		errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrRecipientNotFound),
		errors.Is(err, apperrors.ErrWalletNotFound),
		errors.Is(err, apperrors.ErrTreasuryNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrInsufficientFunds):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrLockTimeout):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "Account busy, please retry"})
	case errors.Is(err, apperrors.ErrReconciliationGap):
		// The operator alert already fired in the service layer.
		logger.Error("Reconciliation gap surfaced to client", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Payment accepted by provider but not yet recorded; support has been notified"})
	default:
		logger.Error("Transfer failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Transfer failed"})
	}
}

// transferP2P godoc
// @Summary Send money to another user
// @Description Moves money from the caller's wallet to another user's wallet in the same currency. The recipient is identified by user ID or phone number.
// @Tags transfers
// @Accept json
// @Produce json
// @Param transfer body dto.P2PTransferRequest true "Transfer details"
// @Success 200 {object} dto.TransferResponse
// @Failure 400 {object} ErrorResponse "Invalid input, self transfer or gateway decline"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Recipient or wallet not found"
// @Failure 422 {object} ErrorResponse "Insufficient funds"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transfers/p2p [post]
func (h *transferHandler) transferP2P(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.P2PTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	senderUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	resp, err := h.transferService.TransferP2P(c.Request.Context(), senderUserID, req)
	if err != nil {
		respondTransferError(c, err)
		return
	}

	logger.Info("P2P transfer completed",
		slog.String("reference", resp.ReferenceNumber),
		slog.String("currency", resp.CurrencyCode),
	)
	c.JSON(http.StatusOK, resp)
}

// deposit godoc
// @Summary Deposit into a user wallet
// @Description Moves money from a company treasury into a user wallet, in the treasury's currency.
// @Tags transfers
// @Accept json
// @Produce json
// @Param deposit body dto.DepositRequest true "Deposit details"
// @Success 200 {object} dto.DepositResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Treasury or recipient not found"
// @Failure 422 {object} ErrorResponse "Insufficient treasury funds"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transfers/deposit [post]
func (h *transferHandler) deposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	resp, err := h.transferService.Deposit(c.Request.Context(), req, actorUserID)
	if err != nil {
		respondTransferError(c, err)
		return
	}

	logger.Info("Deposit completed",
		slog.String("reference", resp.ReferenceNumber),
		slog.String("treasury_id", req.TreasuryID),
	)
	c.JSON(http.StatusOK, resp)
}

// withdraw godoc
// @Summary Pay an external service
// @Description Pays an external service through the payment gateway and debits the caller's YER wallet after the provider confirms.
// @Tags transfers
// @Accept json
// @Produce json
// @Param withdraw body dto.WithdrawRequest true "Withdrawal details"
// @Success 200 {object} dto.TransferResponse
// @Failure 400 {object} ErrorResponse "Invalid input or provider decline"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Insufficient funds"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transfers/withdraw [post]
func (h *transferHandler) withdraw(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	resp, err := h.transferService.Withdraw(c.Request.Context(), userID, req)
	if err != nil {
		respondTransferError(c, err)
		return
	}

	logger.Info("Withdrawal completed",
		slog.String("reference", resp.ReferenceNumber),
		slog.String("service_code", req.ServiceCode),
	)
	c.JSON(http.StatusOK, resp)
}
