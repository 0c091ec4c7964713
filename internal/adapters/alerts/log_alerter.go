// Package alerts delivers operator escalations.
package alerts

import (
	"context"
	"log/slog"

	portssvc "github.com/saifipay/saifi-backend/internal/core/ports/services"
	"github.com/saifipay/saifi-backend/internal/middleware"
)

// LogAlerter reports reconciliation gaps on the structured log at error
// level, tagged for alert routing. Log-based delivery is the escalation
// channel until a paging integration exists; the alert tag is what the
// on-call tooling matches on.
type LogAlerter struct{}

// NewLogAlerter creates a log-backed operator alerter.
func NewLogAlerter() *LogAlerter {
	return &LogAlerter{}
}

var _ portssvc.OperatorAlerter = (*LogAlerter)(nil)

func (a *LogAlerter) ReconciliationGap(ctx context.Context, alert portssvc.ReconciliationAlert) {
	logger := middleware.GetLoggerFromCtx(ctx)
	logger.Error("RECONCILIATION GAP: provider debited but local ledger did not",
		slog.String("alert", "reconciliation_gap"),
		slog.String("user_id", alert.UserID),
		slog.String("gateway_reference", alert.GatewayReference),
		slog.String("amount", alert.Amount.String()),
		slog.String("currency", alert.CurrencyCode),
		slog.String("detail", alert.Detail),
	)
}
