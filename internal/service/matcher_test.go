package service_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farehub/internal/models"
	"farehub/internal/service"
)

func scanAt(kind models.EventKind, card models.CardID, minute int) models.ScanEvent {
	base := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	return models.ScanEvent{
		Kind:       kind,
		CardID:     card,
		ReaderID:   uuid.New(),
		OccurredAt: base.Add(time.Duration(minute) * time.Minute),
	}
}

func TestJourneysFor_PairsStartWithNextEnd(t *testing.T) {
	card := uuid.New()
	start := scanAt(models.EventStart, card, 0)
	end := scanAt(models.EventEnd, card, 20)

	journeys := service.JourneysFor([]models.ScanEvent{start, end}, card)

	require.Len(t, journeys, 1)
	assert.Equal(t, start.OccurredAt, journeys[0].StartTime)
	assert.Equal(t, end.OccurredAt, journeys[0].EndTime)
	assert.Equal(t, start.ReaderID, journeys[0].StartReader)
	assert.Equal(t, end.ReaderID, journeys[0].EndReader)
}

func TestJourneysFor_IgnoresOtherCards(t *testing.T) {
	card := uuid.New()
	other := uuid.New()

	events := []models.ScanEvent{
		scanAt(models.EventStart, card, 0),
		scanAt(models.EventStart, other, 5),
		scanAt(models.EventEnd, other, 15),
		scanAt(models.EventEnd, card, 20),
	}

	journeys := service.JourneysFor(events, card)
	require.Len(t, journeys, 1)
	assert.Equal(t, card, journeys[0].CardID)
	assert.Equal(t, int64(1200), journeys[0].DurationSeconds())
}

func TestJourneysFor_NewerStartDiscardsUnmatchedStart(t *testing.T) {
	card := uuid.New()
	first := scanAt(models.EventStart, card, 0)
	second := scanAt(models.EventStart, card, 30)
	end := scanAt(models.EventEnd, card, 45)

	journeys := service.JourneysFor([]models.ScanEvent{first, second, end}, card)

	require.Len(t, journeys, 1)
	assert.Equal(t, second.OccurredAt, journeys[0].StartTime)
}

func TestJourneysFor_EndWithoutStartIsDropped(t *testing.T) {
	card := uuid.New()
	events := []models.ScanEvent{
		scanAt(models.EventEnd, card, 0),
		scanAt(models.EventStart, card, 10),
		scanAt(models.EventEnd, card, 25),
	}

	journeys := service.JourneysFor(events, card)
	require.Len(t, journeys, 1)
	assert.Equal(t, int64(900), journeys[0].DurationSeconds())
}

func TestJourneysFor_TrailingStartCarriesToNextCycle(t *testing.T) {
	card := uuid.New()
	events := []models.ScanEvent{
		scanAt(models.EventStart, card, 0),
		scanAt(models.EventEnd, card, 15),
		scanAt(models.EventStart, card, 30),
	}

	journeys := service.JourneysFor(events, card)
	require.Len(t, journeys, 1)

	// once the end arrives, a later pass over the grown log completes it
	events = append(events, scanAt(models.EventEnd, card, 50))
	journeys = service.JourneysFor(events, card)
	require.Len(t, journeys, 2)
	assert.Equal(t, int64(1200), journeys[1].DurationSeconds())
}

func TestJourneysFor_EmptyLog(t *testing.T) {
	assert.Empty(t, service.JourneysFor(nil, uuid.New()))
}
