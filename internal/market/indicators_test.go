package market

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMA(t *testing.T) {
	out := SMA([]float64{1, 2, 3, 4, 5}, 3)
	require.Len(t, out, 5)
	assert.True(t, math.IsNaN(out[0]))
	assert.True(t, math.IsNaN(out[1]))
	assert.InDelta(t, 2, out[2], 1e-9)
	assert.InDelta(t, 3, out[3], 1e-9)
	assert.InDelta(t, 4, out[4], 1e-9)
}

func TestSMAWindowLargerThanSeries(t *testing.T) {
	out := SMA([]float64{1, 2}, 5)
	for _, v := range out {
		assert.True(t, math.IsNaN(v))
	}
}

func TestEMA(t *testing.T) {
	// span 3 gives alpha 0.5, seeded with the first value.
	out := EMA([]float64{2, 4, 6}, 3)
	require.Len(t, out, 3)
	assert.InDelta(t, 2, out[0], 1e-9)
	assert.InDelta(t, 3, out[1], 1e-9)
	assert.InDelta(t, 4.5, out[2], 1e-9)
}

func TestRSIExtremes(t *testing.T) {
	up := make([]float64, 20)
	down := make([]float64, 20)
	for i := range up {
		up[i] = float64(100 + i)
		down[i] = float64(100 - i)
	}

	rsiUp := RSI(up, 14)
	assert.InDelta(t, 100, rsiUp[len(rsiUp)-1], 1e-9)

	rsiDown := RSI(down, 14)
	assert.InDelta(t, 0, rsiDown[len(rsiDown)-1], 1e-9)
}

func TestRSIBalanced(t *testing.T) {
	// Alternating equal gains and losses sit exactly at 50.
	out := RSI([]float64{1, 2, 1, 2, 1}, 2)
	assert.InDelta(t, 50, out[2], 1e-9)
	assert.InDelta(t, 50, out[3], 1e-9)
	assert.True(t, math.IsNaN(out[0]))
}

func TestMACDFlatSeries(t *testing.T) {
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 50
	}
	macd, signal := MACD(closes)
	assert.InDelta(t, 0, macd[len(macd)-1], 1e-9)
	assert.InDelta(t, 0, signal[len(signal)-1], 1e-9)
}

func TestBollinger(t *testing.T) {
	upper, middle, lower := Bollinger([]float64{1, 2, 3, 4, 5}, 3)
	// sample stddev of {1,2,3} is 1
	assert.InDelta(t, 2, middle[2], 1e-9)
	assert.InDelta(t, 4, upper[2], 1e-9)
	assert.InDelta(t, 0, lower[2], 1e-9)
	assert.InDelta(t, 6, upper[4], 1e-9)
	assert.InDelta(t, 2, lower[4], 1e-9)
}

func TestTechnicalsShortHistory(t *testing.T) {
	snap, err := Technicals([]Candle{{Open: 10, High: 12, Low: 9, Close: 11, Volume: 1000}})
	require.NoError(t, err)
	assert.Equal(t, 11.0, snap.Price.Current)
	assert.Equal(t, int64(1000), snap.Price.Volume)
	// Indicators that need more bars collapse to zero, not NaN.
	assert.Equal(t, 0.0, snap.MovingAverages.SMA200)
	assert.Equal(t, 0.0, snap.Momentum.RSI)
}

func TestTechnicalsEmpty(t *testing.T) {
	_, err := Technicals(nil)
	assert.Error(t, err)
}
