package fares

import "farehub/internal/money"

// Schedule is the static fare table: one unit price per (peak, long)
// combination plus the two daily caps.
type Schedule struct {
	PeakLong     money.Amount
	PeakShort    money.Amount
	OffPeakLong  money.Amount
	OffPeakShort money.Amount

	PeakCap    money.Amount
	OffPeakCap money.Amount
}

// DefaultSchedule returns the standard tariff.
func DefaultSchedule() Schedule {
	return Schedule{
		PeakLong:     money.MustParse("3.80"),
		PeakShort:    money.MustParse("2.90"),
		OffPeakLong:  money.MustParse("2.70"),
		OffPeakShort: money.MustParse("1.60"),
		PeakCap:      money.MustParse("9.00"),
		OffPeakCap:   money.MustParse("7.00"),
	}
}

// Price returns the unit fare for the given classification.
func (s Schedule) Price(peak, long bool) money.Amount {
	switch {
	case peak && long:
		return s.PeakLong
	case peak:
		return s.PeakShort
	case long:
		return s.OffPeakLong
	default:
		return s.OffPeakShort
	}
}
