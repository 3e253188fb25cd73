package money_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farehub/internal/money"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"1.60", 160},
		{"2.70", 270},
		{"2.90", 290},
		{"3.80", 380},
		{"9.00", 900},
		{"7", 700},
		{"0.5", 50},
		{"0", 0},
		{".75", 75},
		{"12.00", 1200}, // multi-digit whole parts
		{"10.50", 1050},
		{"100", 10000},
		{"12.345", 1235}, // half-up on the third decimal
		{"12.344", 1234},
		{"12.3449", 1234}, // digits past the third decimal are ignored
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := money.Parse(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.Pence())
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, in := range []string{"", "abc", "1.2x", "-1.60", "1,60"} {
		t.Run(in, func(t *testing.T) {
			_, err := money.Parse(in)
			require.Error(t, err)
			assert.ErrorIs(t, err, money.ErrInvalidAmount)
		})
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "8.30", money.FromPence(830).String())
	assert.Equal(t, "0.05", money.FromPence(5).String())
	assert.Equal(t, "0.00", money.FromPence(0).String())
	assert.Equal(t, "-1.60", money.FromPence(-160).String())
}

func TestArithmetic(t *testing.T) {
	a := money.MustParse("3.80")
	b := money.MustParse("2.90")

	assert.Equal(t, int64(670), a.Add(b).Pence())
	assert.True(t, a.GreaterThan(b))
	assert.False(t, b.GreaterThan(a))
	assert.False(t, a.GreaterThan(a))
}

func TestMarshalJSON(t *testing.T) {
	data, err := json.Marshal(money.MustParse("8.30"))
	require.NoError(t, err)
	assert.Equal(t, `"8.30"`, string(data))
}
