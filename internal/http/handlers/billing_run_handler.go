package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"
)

// CycleRunner triggers one billing cycle.
type CycleRunner interface {
	ChargeAccounts(ctx context.Context) (int, error)
}

// NewBillingRunHandler handles POST /ops/billing/run.
func NewBillingRunHandler(billing CycleRunner, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		charged, err := billing.ChargeAccounts(r.Context())
		if err != nil {
			logger.Error("billing cycle failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "billing cycle failed")
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"customers_charged": charged,
		})
	}
}
