package money

import (
	"errors"
	"fmt"
	"strings"
)

// Amount is a monetary value in whole pence. Fare arithmetic stays exact:
// additions and comparisons never leave the integer domain, so the 2-decimal
// round-half-up required at the billing boundary happens once, when a decimal
// string enters the system through Parse.
type Amount int64

// ErrInvalidAmount is returned by Parse for malformed decimal strings.
var ErrInvalidAmount = errors.New("money: invalid amount")

// Parse converts a decimal string such as "3.80" into pence. Digits beyond
// the second decimal place are rounded half-up. Negative amounts are
// rejected; fares and caps are never negative.
func Parse(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty string", ErrInvalidAmount)
	}
	if strings.HasPrefix(s, "-") {
		return 0, fmt.Errorf("%w: negative amount %q", ErrInvalidAmount, s)
	}

	whole := s
	frac := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if whole == "" {
		whole = "0"
	}

	var pence int64
	for _, r := range whole {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
		}
		pence = pence*10 + int64(r-'0')*100
	}

	for i, r := range frac {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
		}
		digit := int64(r - '0')
		switch i {
		case 0:
			pence += digit * 10
		case 1:
			pence += digit
		case 2:
			// round half-up on the third decimal
			if digit >= 5 {
				pence++
			}
		}
	}

	return Amount(pence), nil
}

// MustParse is Parse for trusted literals; it panics on malformed input.
func MustParse(s string) Amount {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

// FromPence wraps a raw pence value.
func FromPence(p int64) Amount {
	return Amount(p)
}

// Pence returns the raw pence value.
func (a Amount) Pence() int64 {
	return int64(a)
}

// Add returns a + b.
func (a Amount) Add(b Amount) Amount {
	return a + b
}

// GreaterThan reports a > b.
func (a Amount) GreaterThan(b Amount) bool {
	return a > b
}

// String renders the amount with two decimal places, e.g. "8.30".
func (a Amount) String() string {
	sign := ""
	v := int64(a)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// MarshalJSON encodes the amount as a decimal string to keep payment payloads
// free of binary floating point.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", a.String())), nil
}
