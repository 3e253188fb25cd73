package fares

import (
	"time"

	"farehub/internal/models"
)

// Peak windows in local hours, inclusive on both endpoints.
const (
	morningPeakFrom = 6
	morningPeakTo   = 9
	eveningPeakFrom = 17
	eveningPeakTo   = 19
)

// A journey longer than this many seconds is charged the long rate.
const longJourneySeconds = 1500

// Classifier derives the peak and long flags for a journey. Hour extraction
// uses the configured location so tests and deployments in other zones see
// consistent results.
type Classifier struct {
	loc *time.Location
}

// NewClassifier builds a classifier for the given location; nil means UTC.
func NewClassifier(loc *time.Location) *Classifier {
	if loc == nil {
		loc = time.UTC
	}
	return &Classifier{loc: loc}
}

// IsPeak reports whether the journey touches a peak window. A journey is peak
// when either its start hour or its end hour lands in a window, even if most
// of its duration is off-peak.
func (c *Classifier) IsPeak(j models.Journey) bool {
	return c.peakHour(j.StartTime) || c.peakHour(j.EndTime)
}

func (c *Classifier) peakHour(t time.Time) bool {
	hour := t.In(c.loc).Hour()
	return (hour >= morningPeakFrom && hour <= morningPeakTo) ||
		(hour >= eveningPeakFrom && hour <= eveningPeakTo)
}

// IsLong reports whether the journey exceeds the long-journey threshold.
// Exactly 1500 seconds is still short.
func (c *Classifier) IsLong(j models.Journey) bool {
	return j.DurationSeconds() > longJourneySeconds
}
