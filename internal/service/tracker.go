package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"farehub/internal/models"
)

// ErrUnknownCard is returned when a scan arrives from a card that is not in
// the customer directory. The scan is rejected; no state is touched.
var ErrUnknownCard = errors.New("tracker: unknown card")

// RegistrationChecker is the slice of the customer directory the tracker
// needs per scan.
type RegistrationChecker interface {
	IsRegistered(ctx context.Context, cardID models.CardID) (bool, error)
}

// TravellingStore mirrors the in-flight travelling set into an external cache
// for dashboards. Calls are best-effort; the in-memory set stays
// authoritative.
type TravellingStore interface {
	MarkTravelling(ctx context.Context, cardID models.CardID, readerID models.ReaderID, since time.Time) error
	ClearTravelling(ctx context.Context, cardID models.CardID) error
}

// ScanAuditLog persists accepted scans out of band. Billing never reads it.
type ScanAuditLog interface {
	Append(ctx context.Context, event models.ScanEvent) error
}

// TravelTracker owns the append-only scan-event log and the travelling set.
// A scan from a card that is not mid-journey opens a journey; the next scan
// from the same card, whatever the reader, closes it. A single mutex keeps
// the log append and the set update atomic as one unit.
type TravelTracker struct {
	directory RegistrationChecker
	mirror    TravellingStore
	audit     ScanAuditLog
	logger    *zap.Logger

	mu         sync.RWMutex
	eventLog   []models.ScanEvent
	travelling map[models.CardID]struct{}
}

// NewTravelTracker builds a tracker. mirror and audit may be nil.
func NewTravelTracker(directory RegistrationChecker, mirror TravellingStore, audit ScanAuditLog, logger *zap.Logger) *TravelTracker {
	return &TravelTracker{
		directory:  directory,
		mirror:     mirror,
		audit:      audit,
		logger:     logger,
		travelling: make(map[models.CardID]struct{}),
	}
}

// RecordScan ingests one card scan. A zero timestamp is taken as now.
func (t *TravelTracker) RecordScan(ctx context.Context, cardID models.CardID, readerID models.ReaderID, scannedAt time.Time) error {
	if scannedAt.IsZero() {
		scannedAt = time.Now().UTC()
	}

	t.mu.Lock()
	_, midJourney := t.travelling[cardID]

	var event models.ScanEvent
	if midJourney {
		event = models.ScanEvent{Kind: models.EventEnd, CardID: cardID, ReaderID: readerID, OccurredAt: scannedAt}
		t.eventLog = append(t.eventLog, event)
		delete(t.travelling, cardID)
		t.mu.Unlock()

		t.logger.Info("journey ended",
			zap.String("card_id", cardID.String()),
			zap.String("reader_id", readerID.String()),
		)
	} else {
		registered, err := t.directory.IsRegistered(ctx, cardID)
		if err != nil {
			t.mu.Unlock()
			return fmt.Errorf("tracker: registration lookup: %w", err)
		}
		if !registered {
			t.mu.Unlock()
			return fmt.Errorf("%w: %s", ErrUnknownCard, cardID)
		}

		event = models.ScanEvent{Kind: models.EventStart, CardID: cardID, ReaderID: readerID, OccurredAt: scannedAt}
		t.eventLog = append(t.eventLog, event)
		t.travelling[cardID] = struct{}{}
		t.mu.Unlock()

		t.logger.Info("journey started",
			zap.String("card_id", cardID.String()),
			zap.String("reader_id", readerID.String()),
		)
	}

	t.mirrorScan(ctx, event)
	t.auditScan(ctx, event)
	return nil
}

func (t *TravelTracker) mirrorScan(ctx context.Context, event models.ScanEvent) {
	if t.mirror == nil {
		return
	}
	var err error
	if event.Kind == models.EventStart {
		err = t.mirror.MarkTravelling(ctx, event.CardID, event.ReaderID, event.OccurredAt)
	} else {
		err = t.mirror.ClearTravelling(ctx, event.CardID)
	}
	if err != nil {
		t.logger.Warn("failed to mirror travelling state",
			zap.String("card_id", event.CardID.String()),
			zap.Error(err),
		)
	}
}

func (t *TravelTracker) auditScan(ctx context.Context, event models.ScanEvent) {
	if t.audit == nil {
		return
	}
	if err := t.audit.Append(ctx, event); err != nil {
		t.logger.Warn("failed to persist scan audit entry",
			zap.String("card_id", event.CardID.String()),
			zap.Error(err),
		)
	}
}

// Snapshot returns a copy of the event log taken under the lock, so a billing
// pass never observes a partial append.
func (t *TravelTracker) Snapshot() []models.ScanEvent {
	t.mu.RLock()
	defer t.mu.RUnlock()
	snapshot := make([]models.ScanEvent, len(t.eventLog))
	copy(snapshot, t.eventLog)
	return snapshot
}

// Travelling returns the cards currently mid-journey.
func (t *TravelTracker) Travelling() []models.CardID {
	t.mu.RLock()
	defer t.mu.RUnlock()
	cards := make([]models.CardID, 0, len(t.travelling))
	for card := range t.travelling {
		cards = append(cards, card)
	}
	return cards
}
