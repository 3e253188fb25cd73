package service

import "farehub/internal/models"

// JourneysFor reconstructs the journeys of one card from a log snapshot.
// Events are scanned in log order keeping a pending-start slot: a Start fills
// the slot (discarding any earlier unmatched Start), an End with a pending
// Start emits a journey and clears the slot, and an End without one is
// dropped. A trailing unmatched Start means the rider is still travelling at
// billing time; the event stays in the log and completes in a later cycle.
func JourneysFor(events []models.ScanEvent, cardID models.CardID) []models.Journey {
	var journeys []models.Journey
	var pending *models.ScanEvent

	for i := range events {
		event := events[i]
		if event.CardID != cardID {
			continue
		}
		switch event.Kind {
		case models.EventStart:
			pending = &event
		case models.EventEnd:
			if pending != nil {
				journeys = append(journeys, models.NewJourney(*pending, event))
				pending = nil
			}
		}
	}

	return journeys
}
