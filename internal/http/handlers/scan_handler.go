package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"farehub/internal/service"
)

type scanRequest struct {
	CardID    uuid.UUID `json:"card_id"`
	ReaderID  uuid.UUID `json:"reader_id"`
	ScannedAt time.Time `json:"scanned_at"`
}

// NewScanHandler handles POST /internal/scan, the HTTP ingestion path for
// readers that do not hold a websocket connection.
func NewScanHandler(tracker *service.TravelTracker, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req scanRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}
		if req.CardID == uuid.Nil || req.ReaderID == uuid.Nil {
			writeError(w, http.StatusBadRequest, "card_id and reader_id are required")
			return
		}

		if err := tracker.RecordScan(r.Context(), req.CardID, req.ReaderID, req.ScannedAt); err != nil {
			if errors.Is(err, service.ErrUnknownCard) {
				writeError(w, http.StatusUnprocessableEntity, "unknown card")
				return
			}
			logger.Error("failed to record scan", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to record scan")
			return
		}

		writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
	}
}
