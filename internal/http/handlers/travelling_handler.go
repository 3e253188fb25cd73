package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"farehub/internal/models"
	redisstore "farehub/internal/redis"
)

// TravellingLister exposes the cards currently mid-journey.
type TravellingLister interface {
	Travelling() []models.CardID
}

// ActiveJourneyGetter looks up the cached in-flight journey for a card.
type ActiveJourneyGetter interface {
	Get(ctx context.Context, cardID models.CardID) (*redisstore.ActiveJourney, error)
}

// NewTravellingHandler handles GET /ops/travelling. Without a card_id query
// parameter it lists every travelling card; with one it reports that card,
// enriched from the journey cache when a mirror is configured.
func NewTravellingHandler(tracker TravellingLister, mirror ActiveJourneyGetter, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawCard := r.URL.Query().Get("card_id")
		if rawCard == "" {
			cards := tracker.Travelling()
			ids := make([]string, 0, len(cards))
			for _, card := range cards {
				ids = append(ids, card.String())
			}

			writeJSON(w, http.StatusOK, map[string]interface{}{
				"travelling": ids,
				"count":      len(ids),
			})
			return
		}

		cardID, err := uuid.Parse(rawCard)
		if err != nil {
			writeError(w, http.StatusBadRequest, "card_id must be a uuid")
			return
		}

		travelling := false
		for _, card := range tracker.Travelling() {
			if card == cardID {
				travelling = true
				break
			}
		}
		if !travelling {
			writeError(w, http.StatusNotFound, "card is not travelling")
			return
		}

		resp := map[string]interface{}{
			"card_id":    cardID.String(),
			"travelling": true,
		}
		if mirror != nil {
			journey, err := mirror.Get(r.Context(), cardID)
			if err != nil {
				logger.Warn("journey cache lookup failed", zap.String("card_id", cardID.String()), zap.Error(err))
			} else if journey != nil {
				resp["start_reader"] = journey.StartReader
				resp["started_at"] = journey.StartedAt
			}
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
