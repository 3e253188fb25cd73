package fares_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farehub/internal/fares"
	"farehub/internal/models"
)

func journeyAt(t *testing.T, start, end string) models.Journey {
	t.Helper()
	startTime, err := time.Parse(time.RFC3339, start)
	require.NoError(t, err)
	endTime, err := time.Parse(time.RFC3339, end)
	require.NoError(t, err)
	return models.Journey{
		CardID:    uuid.New(),
		StartTime: startTime,
		EndTime:   endTime,
	}
}

func TestIsPeak_HourBoundaries(t *testing.T) {
	classifier := fares.NewClassifier(time.UTC)

	cases := []struct {
		name  string
		start string
		end   string
		peak  bool
	}{
		{"six sharp is peak", "2026-03-02T06:00:00Z", "2026-03-02T06:10:00Z", true},
		{"last minute of nine is peak", "2026-03-02T09:59:00Z", "2026-03-02T10:20:00Z", true},
		{"ten sharp is off-peak", "2026-03-02T10:00:00Z", "2026-03-02T10:20:00Z", false},
		{"five to five pm is off-peak", "2026-03-02T16:55:00Z", "2026-03-02T16:59:00Z", false},
		{"seventeen sharp is peak", "2026-03-02T17:00:00Z", "2026-03-02T17:10:00Z", true},
		// The rule keys on the hour field alone, so every minute of hour 19
		// counts as peak, 19:01 included.
		{"nineteen oh one is peak", "2026-03-02T19:01:00Z", "2026-03-02T19:20:00Z", true},
		{"twenty sharp is off-peak", "2026-03-02T20:00:00Z", "2026-03-02T20:30:00Z", false},
		{"before six is off-peak", "2026-03-02T05:30:00Z", "2026-03-02T05:50:00Z", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.peak, classifier.IsPeak(journeyAt(t, tc.start, tc.end)))
		})
	}
}

func TestIsPeak_EitherBoundarySuffices(t *testing.T) {
	classifier := fares.NewClassifier(time.UTC)

	endsInPeak := journeyAt(t, "2026-03-02T16:30:00Z", "2026-03-02T17:05:00Z")
	assert.True(t, classifier.IsPeak(endsInPeak))

	startsInPeak := journeyAt(t, "2026-03-02T09:50:00Z", "2026-03-02T11:00:00Z")
	assert.True(t, classifier.IsPeak(startsInPeak))

	spansNoPeak := journeyAt(t, "2026-03-02T12:00:00Z", "2026-03-02T13:00:00Z")
	assert.False(t, classifier.IsPeak(spansNoPeak))
}

func TestIsPeak_UsesConfiguredLocation(t *testing.T) {
	// 06:30 UTC is 08:30 in Athens (UTC+2 in winter): off-peak start hour in
	// UTC terms would still be peak, but here both ends must be read in the
	// configured zone.
	athens, err := time.LoadLocation("Europe/Athens")
	require.NoError(t, err)
	classifier := fares.NewClassifier(athens)

	// 10:30 UTC = 12:30 Athens, off-peak there even though hour 10 is
	// off-peak in UTC too; pick one that differs: 04:30 UTC = 06:30 Athens.
	journey := journeyAt(t, "2026-01-12T04:30:00Z", "2026-01-12T04:50:00Z")
	assert.True(t, classifier.IsPeak(journey))

	utcClassifier := fares.NewClassifier(time.UTC)
	assert.False(t, utcClassifier.IsPeak(journey))
}

func TestIsLong_DurationBoundary(t *testing.T) {
	classifier := fares.NewClassifier(time.UTC)

	exactly1500 := journeyAt(t, "2026-03-02T12:00:00Z", "2026-03-02T12:25:00Z")
	assert.False(t, classifier.IsLong(exactly1500))

	oneSecondOver := journeyAt(t, "2026-03-02T12:00:00Z", "2026-03-02T12:25:01Z")
	assert.True(t, classifier.IsLong(oneSecondOver))
}

func TestIsLong_NegativeDurationIsShort(t *testing.T) {
	classifier := fares.NewClassifier(time.UTC)

	// Clock skew can put the end before the start; such journeys are kept
	// and priced as short.
	skewed := journeyAt(t, "2026-03-02T12:30:00Z", "2026-03-02T12:00:00Z")
	assert.False(t, classifier.IsLong(skewed))
}
