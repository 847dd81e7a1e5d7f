package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const defaultBaseURL = "https://query1.finance.yahoo.com"

// Client speaks the Yahoo Finance JSON endpoints: v8 chart for daily
// candles, v10 quoteSummary for company metrics and v1 search for news.
// The base URL is configurable so tests can stub the upstream.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout:   30 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// History returns daily candles for the symbol over the given range
// (e.g. "1y") and interval (e.g. "1d").
func (c *Client) History(ctx context.Context, symbol, rng, interval string) ([]Candle, error) {
	if rng == "" {
		rng = "1y"
	}
	if interval == "" {
		interval = "1d"
	}

	u := fmt.Sprintf("%s/v8/finance/chart/%s?range=%s&interval=%s",
		c.baseURL, url.PathEscape(symbol), url.QueryEscape(rng), url.QueryEscape(interval))

	var body chartResponse
	if err := c.getJSON(ctx, u, &body); err != nil {
		return nil, fmt.Errorf("fetching chart for %s: %w", symbol, err)
	}
	if body.Chart.Error != nil {
		return nil, fmt.Errorf("chart %s: %s", symbol, body.Chart.Error.Description)
	}
	if len(body.Chart.Result) == 0 {
		return nil, fmt.Errorf("chart %s: empty result", symbol)
	}

	res := body.Chart.Result[0]
	if len(res.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("chart %s: no quote data", symbol)
	}
	q := res.Indicators.Quote[0]

	candles := make([]Candle, 0, len(res.Timestamp))
	for i, ts := range res.Timestamp {
		if i >= len(q.Close) || q.Close[i] == 0 {
			continue
		}
		candles = append(candles, Candle{
			Date:   time.Unix(ts, 0).UTC(),
			Open:   at(q.Open, i),
			High:   at(q.High, i),
			Low:    at(q.Low, i),
			Close:  q.Close[i],
			Volume: atInt(q.Volume, i),
		})
	}

	slog.Debug("market: history fetched", "symbol", symbol, "candles", len(candles))
	return candles, nil
}

// Summary returns the quote summary modules flattened into a Summary.
func (c *Client) Summary(ctx context.Context, symbol string) (*Summary, error) {
	modules := "summaryDetail,defaultKeyStatistics,financialData,assetProfile,price,institutionOwnership,upgradeDowngradeHistory"
	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=%s",
		c.baseURL, url.PathEscape(symbol), url.QueryEscape(modules))

	var body summaryResponse
	if err := c.getJSON(ctx, u, &body); err != nil {
		return nil, fmt.Errorf("fetching summary for %s: %w", symbol, err)
	}
	if body.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("summary %s: %s", symbol, body.QuoteSummary.Error.Description)
	}
	if len(body.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("summary %s: empty result", symbol)
	}

	return body.QuoteSummary.Result[0].toSummary(symbol), nil
}

// News returns recent headlines for the symbol.
func (c *Client) News(ctx context.Context, symbol string) ([]NewsItem, error) {
	u := fmt.Sprintf("%s/v1/finance/search?q=%s&newsCount=10", c.baseURL, url.QueryEscape(symbol))

	var body struct {
		News []struct {
			Title               string `json:"title"`
			Publisher           string `json:"publisher"`
			Link                string `json:"link"`
			ProviderPublishTime int64  `json:"providerPublishTime"`
		} `json:"news"`
	}
	if err := c.getJSON(ctx, u, &body); err != nil {
		return nil, fmt.Errorf("fetching news for %s: %w", symbol, err)
	}

	items := make([]NewsItem, 0, len(body.News))
	for _, n := range body.News {
		items = append(items, NewsItem{
			Title:     n.Title,
			Publisher: n.Publisher,
			Link:      n.Link,
			Published: time.Unix(n.ProviderPublishTime, 0).UTC(),
		})
	}
	return items, nil
}

func (c *Client) getJSON(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", "finch/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("HTTP %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	return json.Unmarshal(body, out)
}

func at(values []float64, i int) float64 {
	if i < len(values) {
		return values[i]
	}
	return 0
}

func atInt(values []int64, i int) int64 {
	if i < len(values) {
		return values[i]
	}
	return 0
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []float64 `json:"open"`
					High   []float64 `json:"high"`
					Low    []float64 `json:"low"`
					Close  []float64 `json:"close"`
					Volume []int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *apiError `json:"error"`
	} `json:"chart"`
}

type summaryResponse struct {
	QuoteSummary struct {
		Result []summaryResult `json:"result"`
		Error  *apiError       `json:"error"`
	} `json:"quoteSummary"`
}

type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// num unmarshals Yahoo's numeric fields, which arrive either as bare
// numbers or as {"raw": n, "fmt": "..."} wrappers, and as {} when absent.
type num float64

func (n *num) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '{' {
		var wrapped struct {
			Raw float64 `json:"raw"`
		}
		if err := json.Unmarshal(b, &wrapped); err != nil {
			return err
		}
		*n = num(wrapped.Raw)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*n = num(f)
	return nil
}

type summaryResult struct {
	SummaryDetail struct {
		TrailingPE          num `json:"trailingPE"`
		ForwardPE           num `json:"forwardPE"`
		PriceToSales        num `json:"priceToSalesTrailing12Months"`
		DividendYield       num `json:"dividendYield"`
		Beta                num `json:"beta"`
		MarketCap           num `json:"marketCap"`
		FiftyTwoWeekHigh    num `json:"fiftyTwoWeekHigh"`
		FiftyTwoWeekLow     num `json:"fiftyTwoWeekLow"`
		AverageVolume       num `json:"averageVolume"`
		AverageVolume10Days num `json:"averageVolume10days"`
		Bid                 num `json:"bid"`
		Ask                 num `json:"ask"`
		BidSize             num `json:"bidSize"`
		AskSize             num `json:"askSize"`
		ShortRatio          num `json:"shortRatio"`
		PreviousClose       num `json:"previousClose"`
		Open                num `json:"open"`
		DayHigh             num `json:"dayHigh"`
		DayLow              num `json:"dayLow"`
		Volume              num `json:"volume"`
	} `json:"summaryDetail"`
	KeyStatistics struct {
		PEGRatio                num `json:"pegRatio"`
		PriceToBook             num `json:"priceToBook"`
		SharesOutstanding       num `json:"sharesOutstanding"`
		FloatShares             num `json:"floatShares"`
		ShortPercentOfFloat     num `json:"shortPercentOfFloat"`
		SharesShort             num `json:"sharesShort"`
		SharesShortPriorMonth   num `json:"sharesShortPriorMonth"`
		EarningsQuarterlyGrowth num `json:"earningsQuarterlyGrowth"`
		NetIncomeToCommon       num `json:"netIncomeToCommon"`
	} `json:"defaultKeyStatistics"`
	FinancialData struct {
		RevenueGrowth    num `json:"revenueGrowth"`
		EarningsGrowth   num `json:"earningsGrowth"`
		ReturnOnEquity   num `json:"returnOnEquity"`
		ReturnOnAssets   num `json:"returnOnAssets"`
		ProfitMargins    num `json:"profitMargins"`
		OperatingMargins num `json:"operatingMargins"`
		GrossProfits     num `json:"grossProfits"`
		EBITDA           num `json:"ebitda"`
		CurrentRatio     num `json:"currentRatio"`
		QuickRatio       num `json:"quickRatio"`
		DebtToEquity     num `json:"debtToEquity"`
		TotalDebt        num `json:"totalDebt"`
		TotalCash        num `json:"totalCash"`
		CurrentPrice     num `json:"currentPrice"`
	} `json:"financialData"`
	AssetProfile struct {
		LongBusinessSummary string `json:"longBusinessSummary"`
		Sector              string `json:"sector"`
		Industry            string `json:"industry"`
		Website             string `json:"website"`
		FullTimeEmployees   int    `json:"fullTimeEmployees"`
		Country             string `json:"country"`
		City                string `json:"city"`
		State               string `json:"state"`
		Address1            string `json:"address1"`
		Phone               string `json:"phone"`
	} `json:"assetProfile"`
	Price struct {
		LongName string `json:"longName"`
	} `json:"price"`
	InstitutionOwnership struct {
		OwnershipList []struct {
			Organization string `json:"organization"`
			Position     num    `json:"position"`
			Value        num    `json:"value"`
		} `json:"ownershipList"`
	} `json:"institutionOwnership"`
	UpgradeDowngradeHistory struct {
		History []struct {
			Firm      string `json:"firm"`
			ToGrade   string `json:"toGrade"`
			FromGrade string `json:"fromGrade"`
			Action    string `json:"action"`
		} `json:"history"`
	} `json:"upgradeDowngradeHistory"`
}

func (r *summaryResult) toSummary(symbol string) *Summary {
	s := &Summary{
		Quote: Quote{
			Symbol:                  symbol,
			TrailingPE:              float64(r.SummaryDetail.TrailingPE),
			ForwardPE:               float64(r.SummaryDetail.ForwardPE),
			PEGRatio:                float64(r.KeyStatistics.PEGRatio),
			PriceToBook:             float64(r.KeyStatistics.PriceToBook),
			PriceToSales:            float64(r.SummaryDetail.PriceToSales),
			DividendYield:           float64(r.SummaryDetail.DividendYield),
			Beta:                    float64(r.SummaryDetail.Beta),
			MarketCap:               float64(r.SummaryDetail.MarketCap),
			RevenueGrowth:           float64(r.FinancialData.RevenueGrowth),
			EarningsGrowth:          float64(r.FinancialData.EarningsGrowth),
			EarningsQuarterlyGrowth: float64(r.KeyStatistics.EarningsQuarterlyGrowth),
			ReturnOnEquity:          float64(r.FinancialData.ReturnOnEquity),
			ReturnOnAssets:          float64(r.FinancialData.ReturnOnAssets),
			ProfitMargins:           float64(r.FinancialData.ProfitMargins),
			OperatingMargins:        float64(r.FinancialData.OperatingMargins),
			GrossProfit:             float64(r.FinancialData.GrossProfits),
			NetIncome:               float64(r.KeyStatistics.NetIncomeToCommon),
			EBITDA:                  float64(r.FinancialData.EBITDA),
			CurrentRatio:            float64(r.FinancialData.CurrentRatio),
			QuickRatio:              float64(r.FinancialData.QuickRatio),
			DebtToEquity:            float64(r.FinancialData.DebtToEquity),
			TotalDebt:               float64(r.FinancialData.TotalDebt),
			TotalCash:               float64(r.FinancialData.TotalCash),
			FiftyTwoWeekHigh:        float64(r.SummaryDetail.FiftyTwoWeekHigh),
			FiftyTwoWeekLow:         float64(r.SummaryDetail.FiftyTwoWeekLow),
			SharesOutstanding:       float64(r.KeyStatistics.SharesOutstanding),
			FloatShares:             float64(r.KeyStatistics.FloatShares),
			AverageVolume:           float64(r.SummaryDetail.AverageVolume),
			AverageVolume10Days:     float64(r.SummaryDetail.AverageVolume10Days),
			Bid:                     float64(r.SummaryDetail.Bid),
			Ask:                     float64(r.SummaryDetail.Ask),
			BidSize:                 float64(r.SummaryDetail.BidSize),
			AskSize:                 float64(r.SummaryDetail.AskSize),
			ShortRatio:              float64(r.SummaryDetail.ShortRatio),
			ShortPercentOfFloat:     float64(r.KeyStatistics.ShortPercentOfFloat),
			SharesShort:             float64(r.KeyStatistics.SharesShort),
			SharesShortPriorMonth:   float64(r.KeyStatistics.SharesShortPriorMonth),
			Price:                   float64(r.FinancialData.CurrentPrice),
			PreviousClose:           float64(r.SummaryDetail.PreviousClose),
			Open:                    float64(r.SummaryDetail.Open),
			DayHigh:                 float64(r.SummaryDetail.DayHigh),
			DayLow:                  float64(r.SummaryDetail.DayLow),
			Volume:                  float64(r.SummaryDetail.Volume),
		},
		Profile: CompanyProfile{
			Name:        r.Price.LongName,
			Sector:      r.AssetProfile.Sector,
			Industry:    r.AssetProfile.Industry,
			Description: r.AssetProfile.LongBusinessSummary,
			Website:     r.AssetProfile.Website,
			Employees:   r.AssetProfile.FullTimeEmployees,
			Country:     r.AssetProfile.Country,
			City:        r.AssetProfile.City,
			State:       r.AssetProfile.State,
			Address:     r.AssetProfile.Address1,
			Phone:       r.AssetProfile.Phone,
		},
	}

	for _, h := range r.InstitutionOwnership.OwnershipList {
		s.Holders = append(s.Holders, Holder{
			Organization: h.Organization,
			Shares:       float64(h.Position),
			Value:        float64(h.Value),
		})
	}
	for _, g := range r.UpgradeDowngradeHistory.History {
		s.Recommendations = append(s.Recommendations, Recommendation{
			Firm:      g.Firm,
			ToGrade:   g.ToGrade,
			FromGrade: g.FromGrade,
			Action:    g.Action,
		})
	}
	return s
}
