package market

import (
	"fmt"
	"math"
	"sort"
)

const tradingDaysPerYear = 252

// VolatilityMetrics summarizes distributional risk of daily returns.
type VolatilityMetrics struct {
	DailyVolatility      float64 `json:"daily_volatility"`
	AnnualizedVolatility float64 `json:"annualized_volatility"`
	VaR95                float64 `json:"var_95"`
	VaR99                float64 `json:"var_99"`
	MaxDrawdown          float64 `json:"max_drawdown"`
}

// RiskSnapshot is the full risk view handed to the risk analysis agent.
type RiskSnapshot struct {
	Volatility VolatilityMetrics `json:"volatility_metrics"`

	Financial struct {
		DebtToEquity float64 `json:"debt_to_equity"`
		CurrentRatio float64 `json:"current_ratio"`
		QuickRatio   float64 `json:"quick_ratio"`
		TotalDebt    float64 `json:"total_debt"`
		TotalCash    float64 `json:"total_cash"`
	} `json:"financial_risk"`

	Market struct {
		Beta              float64 `json:"beta"`
		FiftyTwoWeekHigh  float64 `json:"52_week_high"`
		FiftyTwoWeekLow   float64 `json:"52_week_low"`
		SharesOutstanding float64 `json:"shares_outstanding"`
		FloatShares       float64 `json:"float_shares"`
	} `json:"market_risk"`

	Liquidity struct {
		AverageVolume       float64 `json:"average_volume"`
		AverageVolume10Days float64 `json:"average_volume_10days"`
		Bid                 float64 `json:"bid"`
		Ask                 float64 `json:"ask"`
		BidSize             float64 `json:"bid_size"`
		AskSize             float64 `json:"ask_size"`
	} `json:"liquidity_risk"`

	Concentration struct {
		InstitutionalConcentration float64 `json:"institutional_concentration"`
		InstitutionalHolderCount   int     `json:"institutional_holders_count"`
	} `json:"concentration_risk"`
}

// Returns computes day-over-day fractional price changes.
func Returns(closes []float64) []float64 {
	if len(closes) < 2 {
		return nil
	}
	out := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		if closes[i-1] == 0 {
			continue
		}
		out = append(out, closes[i]/closes[i-1]-1)
	}
	return out
}

// Volatility computes the volatility metric group from daily closes.
// Daily volatility is the sample standard deviation of returns,
// annualized with sqrt(252); VaR at 95/99 is the 5th/1st percentile of
// daily returns (linear interpolation between order statistics).
func Volatility(closes []float64) (VolatilityMetrics, error) {
	returns := Returns(closes)
	if len(returns) < 2 {
		return VolatilityMetrics{}, fmt.Errorf("not enough price history")
	}

	daily := sampleStdDev(returns)
	return VolatilityMetrics{
		DailyVolatility:      daily,
		AnnualizedVolatility: daily * math.Sqrt(tradingDaysPerYear),
		VaR95:                Percentile(returns, 5),
		VaR99:                Percentile(returns, 1),
		MaxDrawdown:          MaxDrawdown(closes),
	}, nil
}

// Percentile returns the p-th percentile (0-100) of values using linear
// interpolation between closest ranks.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// MaxDrawdown returns the worst peak-to-trough fractional loss.
func MaxDrawdown(closes []float64) float64 {
	var peak, worst float64
	for _, p := range closes {
		if p > peak {
			peak = p
		}
		if peak > 0 {
			dd := (p - peak) / peak
			if dd < worst {
				worst = dd
			}
		}
	}
	return worst
}

// Risk assembles the full risk snapshot from price history and summary data.
func Risk(candles []Candle, s *Summary) (*RiskSnapshot, error) {
	closes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}

	vol, err := Volatility(closes)
	if err != nil {
		return nil, err
	}

	snap := &RiskSnapshot{Volatility: vol}
	snap.Financial.DebtToEquity = s.Quote.DebtToEquity
	snap.Financial.CurrentRatio = s.Quote.CurrentRatio
	snap.Financial.QuickRatio = s.Quote.QuickRatio
	snap.Financial.TotalDebt = s.Quote.TotalDebt
	snap.Financial.TotalCash = s.Quote.TotalCash
	snap.Market.Beta = s.Quote.Beta
	snap.Market.FiftyTwoWeekHigh = s.Quote.FiftyTwoWeekHigh
	snap.Market.FiftyTwoWeekLow = s.Quote.FiftyTwoWeekLow
	snap.Market.SharesOutstanding = s.Quote.SharesOutstanding
	snap.Market.FloatShares = s.Quote.FloatShares
	snap.Liquidity.AverageVolume = s.Quote.AverageVolume
	snap.Liquidity.AverageVolume10Days = s.Quote.AverageVolume10Days
	snap.Liquidity.Bid = s.Quote.Bid
	snap.Liquidity.Ask = s.Quote.Ask
	snap.Liquidity.BidSize = s.Quote.BidSize
	snap.Liquidity.AskSize = s.Quote.AskSize
	snap.Concentration.InstitutionalConcentration = institutionalConcentration(s.Holders)
	snap.Concentration.InstitutionalHolderCount = len(s.Holders)
	return snap, nil
}

// institutionalConcentration is the share of reported institutional
// holdings held by the top five holders.
func institutionalConcentration(holders []Holder) float64 {
	if len(holders) == 0 {
		return 0
	}
	sorted := make([]Holder, len(holders))
	copy(sorted, holders)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Shares > sorted[j].Shares })

	var total, top float64
	for i, h := range sorted {
		total += h.Shares
		if i < 5 {
			top += h.Shares
		}
	}
	if total == 0 {
		return 0
	}
	return top / total
}
