package money_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maghsala/maghsala-api/pkg/money"
)

func TestRound2(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{143.75, 143.75},
		{10.004, 10.00},
		{10.005, 10.01}, // half-up at the cent
		{10.0049999, 10.00},
		{99.999, 100.00},
		{-10.005, -10.01},
		{0.1 + 0.2, 0.30}, // float artifacts collapse to cents
	}

	for _, tc := range cases {
		assert.InDelta(t, tc.want, money.Round2(tc.in), 1e-9, "Round2(%v)", tc.in)
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "143.75", money.Format(143.75))
	assert.Equal(t, "0.00", money.Format(0))
	assert.Equal(t, "18.75", money.Format(18.75))
	assert.Equal(t, "100.00", money.Format(99.999))
	assert.Equal(t, "1500.00", money.Format(1500)) // no thousands separator
}

func TestSum2(t *testing.T) {
	// Summing rounded parts must match the reported total exactly.
	assert.InDelta(t, 300.00, money.Sum2(200, 100, 0), 1e-9)
	assert.InDelta(t, 0.30, money.Sum2(0.1, 0.2), 1e-9)
	assert.InDelta(t, 0, money.Sum2(), 1e-9)
}

func TestIsValidAmount(t *testing.T) {
	assert.True(t, money.IsValidAmount(0))
	assert.True(t, money.IsValidAmount(200))
	assert.False(t, money.IsValidAmount(-0.01))
	assert.False(t, money.IsValidAmount(math.NaN()))
	assert.False(t, money.IsValidAmount(math.Inf(1)))
}
