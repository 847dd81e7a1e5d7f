package market

import "time"

// Candle is one bar of daily price history.
type Candle struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// Quote holds the flat metric fields used by the analysis tools. Zero
// values stand in for fields the upstream API did not return, matching
// the `info.get(key, 0)` behavior the agents' prompts assume.
type Quote struct {
	Symbol string `json:"symbol"`

	// Valuation
	TrailingPE     float64 `json:"trailing_pe"`
	ForwardPE      float64 `json:"forward_pe"`
	PEGRatio       float64 `json:"peg_ratio"`
	PriceToBook    float64 `json:"price_to_book"`
	PriceToSales   float64 `json:"price_to_sales"`
	DividendYield  float64 `json:"dividend_yield"`
	Beta           float64 `json:"beta"`
	MarketCap      float64 `json:"market_cap"`

	// Growth
	RevenueGrowth           float64 `json:"revenue_growth"`
	EarningsGrowth          float64 `json:"earnings_growth"`
	EarningsQuarterlyGrowth float64 `json:"earnings_quarterly_growth"`

	// Efficiency and profitability
	ReturnOnEquity   float64 `json:"return_on_equity"`
	ReturnOnAssets   float64 `json:"return_on_assets"`
	ProfitMargins    float64 `json:"profit_margins"`
	OperatingMargins float64 `json:"operating_margins"`
	GrossProfit      float64 `json:"gross_profit"`
	OperatingIncome  float64 `json:"operating_income"`
	NetIncome        float64 `json:"net_income"`
	EBITDA           float64 `json:"ebitda"`

	// Liquidity and leverage
	CurrentRatio   float64 `json:"current_ratio"`
	QuickRatio     float64 `json:"quick_ratio"`
	WorkingCapital float64 `json:"working_capital"`
	DebtToEquity   float64 `json:"debt_to_equity"`
	LongTermDebt   float64 `json:"long_term_debt"`
	TotalDebt      float64 `json:"total_debt"`
	TotalCash      float64 `json:"total_cash"`

	// Market risk
	FiftyTwoWeekHigh  float64 `json:"fifty_two_week_high"`
	FiftyTwoWeekLow   float64 `json:"fifty_two_week_low"`
	SharesOutstanding float64 `json:"shares_outstanding"`
	FloatShares       float64 `json:"float_shares"`

	// Liquidity risk
	AverageVolume       float64 `json:"average_volume"`
	AverageVolume10Days float64 `json:"average_volume_10days"`
	Bid                 float64 `json:"bid"`
	Ask                 float64 `json:"ask"`
	BidSize             float64 `json:"bid_size"`
	AskSize             float64 `json:"ask_size"`

	// Short interest
	ShortRatio            float64 `json:"short_ratio"`
	ShortPercentOfFloat   float64 `json:"short_percent_of_float"`
	SharesShort           float64 `json:"shares_short"`
	SharesShortPriorMonth float64 `json:"shares_short_prior_month"`

	// Regular market
	Price         float64 `json:"price"`
	PreviousClose float64 `json:"previous_close"`
	Open          float64 `json:"open"`
	DayHigh       float64 `json:"day_high"`
	DayLow        float64 `json:"day_low"`
	Volume        float64 `json:"volume"`
}

// CompanyProfile holds descriptive company information.
type CompanyProfile struct {
	Name        string `json:"name"`
	Sector      string `json:"sector"`
	Industry    string `json:"industry"`
	Description string `json:"description"`
	Website     string `json:"website"`
	Employees   int    `json:"employees"`
	Country     string `json:"country"`
	City        string `json:"city"`
	State       string `json:"state"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
}

// Holder is one institutional position.
type Holder struct {
	Organization string  `json:"organization"`
	Shares       float64 `json:"shares"`
	Value        float64 `json:"value"`
}

// Recommendation is one analyst grade change.
type Recommendation struct {
	Firm      string `json:"firm"`
	ToGrade   string `json:"to_grade"`
	FromGrade string `json:"from_grade"`
	Action    string `json:"action"`
}

// NewsItem is one headline about a symbol.
type NewsItem struct {
	Title     string    `json:"title"`
	Publisher string    `json:"publisher"`
	Link      string    `json:"link"`
	Published time.Time `json:"published"`
}

// Summary bundles everything the analysis tools need for one symbol.
type Summary struct {
	Quote           Quote            `json:"quote"`
	Profile         CompanyProfile   `json:"profile"`
	Holders         []Holder         `json:"holders"`
	Recommendations []Recommendation `json:"recommendations"`
}
