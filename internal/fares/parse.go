package fares

import (
	"fmt"

	"farehub/internal/money"
)

// ScheduleOverrides carries tariff values as decimal strings, typically from
// config. Empty fields keep the default.
type ScheduleOverrides struct {
	PeakLong     string
	PeakShort    string
	OffPeakLong  string
	OffPeakShort string
	PeakCap      string
	OffPeakCap   string
}

// ParseSchedule applies overrides on top of the default tariff.
func ParseSchedule(overrides ScheduleOverrides) (Schedule, error) {
	schedule := DefaultSchedule()

	fields := []struct {
		name  string
		value string
		dst   *money.Amount
	}{
		{"peak_long", overrides.PeakLong, &schedule.PeakLong},
		{"peak_short", overrides.PeakShort, &schedule.PeakShort},
		{"off_peak_long", overrides.OffPeakLong, &schedule.OffPeakLong},
		{"off_peak_short", overrides.OffPeakShort, &schedule.OffPeakShort},
		{"peak_cap", overrides.PeakCap, &schedule.PeakCap},
		{"off_peak_cap", overrides.OffPeakCap, &schedule.OffPeakCap},
	}

	for _, f := range fields {
		if f.value == "" {
			continue
		}
		amount, err := money.Parse(f.value)
		if err != nil {
			return Schedule{}, fmt.Errorf("fares: %s: %w", f.name, err)
		}
		*f.dst = amount
	}

	return schedule, nil
}
