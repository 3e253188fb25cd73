package models

import "time"

// Journey pairs a start scan with the matching end scan for one card. It is
// derived at billing time and never stored.
type Journey struct {
	CardID      CardID    `json:"card_id"`
	StartReader ReaderID  `json:"start_reader"`
	EndReader   ReaderID  `json:"end_reader"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
}

// NewJourney builds a journey from a matched start/end event pair.
func NewJourney(start, end ScanEvent) Journey {
	return Journey{
		CardID:      start.CardID,
		StartReader: start.ReaderID,
		EndReader:   end.ReaderID,
		StartTime:   start.OccurredAt,
		EndTime:     end.OccurredAt,
	}
}

// DurationSeconds is EndTime - StartTime in whole seconds. Clock skew can
// make this negative; such journeys are kept and priced as short rather than
// rejected.
func (j Journey) DurationSeconds() int64 {
	return int64(j.EndTime.Sub(j.StartTime) / time.Second)
}
