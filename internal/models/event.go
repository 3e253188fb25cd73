package models

import (
	"time"

	"github.com/google/uuid"
)

// CardID identifies a physical fare card.
type CardID = uuid.UUID

// ReaderID identifies the gate reader that produced a scan.
type ReaderID = uuid.UUID

// EventKind tags a scan event as the start or the end of a journey.
type EventKind string

// Event kinds.
const (
	EventStart EventKind = "start"
	EventEnd   EventKind = "end"
)

// ScanEvent is one entry of the append-only scan log. Events are immutable
// once appended and are never deleted; the log is the audit trail journeys
// are reconstructed from.
type ScanEvent struct {
	Kind       EventKind `json:"kind"`
	CardID     CardID    `json:"card_id"`
	ReaderID   ReaderID  `json:"reader_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
