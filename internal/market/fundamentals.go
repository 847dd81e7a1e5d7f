package market

// FundamentalSnapshot groups the metric families the fundamental
// analysis agent reports on.
type FundamentalSnapshot struct {
	KeyRatios struct {
		PERatio       float64 `json:"pe_ratio"`
		ForwardPE     float64 `json:"forward_pe"`
		PEGRatio      float64 `json:"peg_ratio"`
		PriceToBook   float64 `json:"price_to_book"`
		PriceToSales  float64 `json:"price_to_sales"`
		DividendYield float64 `json:"dividend_yield"`
		Beta          float64 `json:"beta"`
	} `json:"key_ratios"`

	Growth struct {
		RevenueGrowth           float64 `json:"revenue_growth"`
		EarningsGrowth          float64 `json:"earnings_growth"`
		EarningsQuarterlyGrowth float64 `json:"earnings_quarterly_growth"`
	} `json:"growth_metrics"`

	Efficiency struct {
		ReturnOnEquity   float64 `json:"return_on_equity"`
		ReturnOnAssets   float64 `json:"return_on_assets"`
		ProfitMargins    float64 `json:"profit_margins"`
		OperatingMargins float64 `json:"operating_margins"`
	} `json:"efficiency_metrics"`

	Profitability struct {
		GrossProfit     float64 `json:"gross_profit"`
		OperatingIncome float64 `json:"operating_income"`
		NetIncome       float64 `json:"net_income"`
		EBITDA          float64 `json:"ebitda"`
	} `json:"profitability_metrics"`

	Liquidity struct {
		CurrentRatio   float64 `json:"current_ratio"`
		QuickRatio     float64 `json:"quick_ratio"`
		WorkingCapital float64 `json:"working_capital"`
	} `json:"liquidity_metrics"`

	Leverage struct {
		DebtToEquity float64 `json:"debt_to_equity"`
		LongTermDebt float64 `json:"long_term_debt"`
		TotalDebt    float64 `json:"total_debt"`
	} `json:"leverage_metrics"`
}

// Fundamentals extracts the fundamental metric groups from a summary.
func Fundamentals(s *Summary) *FundamentalSnapshot {
	q := s.Quote
	snap := &FundamentalSnapshot{}
	snap.KeyRatios.PERatio = q.TrailingPE
	snap.KeyRatios.ForwardPE = q.ForwardPE
	snap.KeyRatios.PEGRatio = q.PEGRatio
	snap.KeyRatios.PriceToBook = q.PriceToBook
	snap.KeyRatios.PriceToSales = q.PriceToSales
	snap.KeyRatios.DividendYield = q.DividendYield
	snap.KeyRatios.Beta = q.Beta
	snap.Growth.RevenueGrowth = q.RevenueGrowth
	snap.Growth.EarningsGrowth = q.EarningsGrowth
	snap.Growth.EarningsQuarterlyGrowth = q.EarningsQuarterlyGrowth
	snap.Efficiency.ReturnOnEquity = q.ReturnOnEquity
	snap.Efficiency.ReturnOnAssets = q.ReturnOnAssets
	snap.Efficiency.ProfitMargins = q.ProfitMargins
	snap.Efficiency.OperatingMargins = q.OperatingMargins
	snap.Profitability.GrossProfit = q.GrossProfit
	snap.Profitability.OperatingIncome = q.OperatingIncome
	snap.Profitability.NetIncome = q.NetIncome
	snap.Profitability.EBITDA = q.EBITDA
	snap.Liquidity.CurrentRatio = q.CurrentRatio
	snap.Liquidity.QuickRatio = q.QuickRatio
	snap.Liquidity.WorkingCapital = q.WorkingCapital
	snap.Leverage.DebtToEquity = q.DebtToEquity
	snap.Leverage.LongTermDebt = q.LongTermDebt
	snap.Leverage.TotalDebt = q.TotalDebt
	return snap
}
