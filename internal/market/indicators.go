package market

import (
	"fmt"
	"math"
)

// Indicator math mirrors the usual pandas constructions: rolling means
// use simple windows (NaN until the window fills), EMAs use the
// recursive form with alpha = 2/(span+1), and rolling standard
// deviations are sample deviations.

// SMA returns the simple moving average with the given window. Entries
// before the window fills are NaN.
func SMA(values []float64, window int) []float64 {
	out := nanSlice(len(values))
	if window <= 0 || len(values) < window {
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			out[i] = sum / float64(window)
		}
	}
	return out
}

// EMA returns the exponential moving average with the given span.
func EMA(values []float64, span int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	alpha := 2.0 / (float64(span) + 1.0)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}

// RSI returns the relative strength index computed from simple rolling
// means of gains and losses, valid from index period onward.
func RSI(closes []float64, period int) []float64 {
	out := nanSlice(len(closes))
	if len(closes) <= period {
		return out
	}

	gains := make([]float64, len(closes))
	losses := make([]float64, len(closes))
	for i := 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gains[i] = delta
		} else {
			losses[i] = -delta
		}
	}

	var gainSum, lossSum float64
	for i := 1; i < len(closes); i++ {
		gainSum += gains[i]
		lossSum += losses[i]
		if i > period {
			gainSum -= gains[i-period]
			lossSum -= losses[i-period]
		}
		if i >= period {
			avgGain := gainSum / float64(period)
			avgLoss := lossSum / float64(period)
			if avgLoss == 0 {
				out[i] = 100
				continue
			}
			rs := avgGain / avgLoss
			out[i] = 100 - 100/(1+rs)
		}
	}
	return out
}

// MACD returns the MACD line (EMA12 - EMA26) and its 9-period signal line.
func MACD(closes []float64) (macd, signal []float64) {
	fast := EMA(closes, 12)
	slow := EMA(closes, 26)
	macd = make([]float64, len(closes))
	for i := range closes {
		macd[i] = fast[i] - slow[i]
	}
	signal = EMA(macd, 9)
	return macd, signal
}

// Bollinger returns the 20-period middle band and upper/lower bands at
// two sample standard deviations.
func Bollinger(closes []float64, window int) (upper, middle, lower []float64) {
	middle = SMA(closes, window)
	upper = nanSlice(len(closes))
	lower = nanSlice(len(closes))
	for i := window - 1; i < len(closes); i++ {
		sd := sampleStdDev(closes[i-window+1 : i+1])
		upper[i] = middle[i] + 2*sd
		lower[i] = middle[i] - 2*sd
	}
	return upper, middle, lower
}

// TechnicalSnapshot is the latest-bar indicator view handed to the
// technical analysis agent.
type TechnicalSnapshot struct {
	Price struct {
		Current float64 `json:"current"`
		Open    float64 `json:"open"`
		High    float64 `json:"high"`
		Low     float64 `json:"low"`
		Volume  int64   `json:"volume"`
	} `json:"price"`
	MovingAverages struct {
		SMA20  float64 `json:"sma_20"`
		SMA50  float64 `json:"sma_50"`
		SMA200 float64 `json:"sma_200"`
	} `json:"moving_averages"`
	Momentum struct {
		RSI        float64 `json:"rsi"`
		MACD       float64 `json:"macd"`
		SignalLine float64 `json:"signal_line"`
	} `json:"momentum"`
	Volatility struct {
		BollingerUpper  float64 `json:"bollinger_upper"`
		BollingerMiddle float64 `json:"bollinger_middle"`
		BollingerLower  float64 `json:"bollinger_lower"`
	} `json:"volatility"`
}

// Technicals computes the indicator snapshot from daily candles.
func Technicals(candles []Candle) (*TechnicalSnapshot, error) {
	if len(candles) == 0 {
		return nil, fmt.Errorf("no price history")
	}

	closes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}

	sma20 := SMA(closes, 20)
	sma50 := SMA(closes, 50)
	sma200 := SMA(closes, 200)
	rsi := RSI(closes, 14)
	macd, signal := MACD(closes)
	bbUpper, bbMiddle, bbLower := Bollinger(closes, 20)

	last := len(candles) - 1
	snap := &TechnicalSnapshot{}
	snap.Price.Current = candles[last].Close
	snap.Price.Open = candles[last].Open
	snap.Price.High = candles[last].High
	snap.Price.Low = candles[last].Low
	snap.Price.Volume = candles[last].Volume
	snap.MovingAverages.SMA20 = zeroNaN(sma20[last])
	snap.MovingAverages.SMA50 = zeroNaN(sma50[last])
	snap.MovingAverages.SMA200 = zeroNaN(sma200[last])
	snap.Momentum.RSI = zeroNaN(rsi[last])
	snap.Momentum.MACD = zeroNaN(macd[last])
	snap.Momentum.SignalLine = zeroNaN(signal[last])
	snap.Volatility.BollingerUpper = zeroNaN(bbUpper[last])
	snap.Volatility.BollingerMiddle = zeroNaN(bbMiddle[last])
	snap.Volatility.BollingerLower = zeroNaN(bbLower[last])
	return snap, nil
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

// zeroNaN maps undefined indicator values to 0 so snapshots stay JSON
// encodable with short histories.
func zeroNaN(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}

func sampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	var mean float64
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	var ss float64
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)-1))
}
