package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"finch/internal/datastore"
	"finch/internal/market"
)

// snapshotMaxAge is how long a stored info snapshot counts as fresh.
const snapshotMaxAge = 24 * time.Hour

// Corporate fetches and stores corporate info snapshots, and finds the
// latest stored one so agents can reuse fresh data instead of
// refetching.
type Corporate struct {
	client *market.Client
	store  *datastore.Store
}

func NewCorporate(client *market.Client, store *datastore.Store) *Corporate {
	return &Corporate{client: client, store: store}
}

func (c *Corporate) Name() string { return "corporate_info" }
func (c *Corporate) Description() string {
	return "Fetch corporate information for a stock symbol and store it as a local JSON snapshot, or find the latest stored snapshot and whether it is still fresh (less than 24 hours old)"
}

func (c *Corporate) InputSchema() any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"action": map[string]any{
				"type":        "string",
				"enum":        []string{"fetch", "latest"},
				"description": "fetch: download and store a new snapshot; latest: locate the newest stored snapshot",
			},
			"symbol": map[string]any{
				"type":        "string",
				"description": "Stock ticker symbol, e.g. MSFT",
			},
		},
		"required":             []string{"action", "symbol"},
		"additionalProperties": false,
	}
}

type corporateSnapshot struct {
	Symbol      string                 `json:"symbol"`
	CompanyInfo market.CompanyProfile  `json:"company_info"`
	Ownership   struct {
		InstitutionalHolders []market.Holder `json:"institutional_holders"`
	} `json:"ownership"`
	PriceData priceData `json:"price_data"`
}

type priceData struct {
	Current struct {
		Price              float64 `json:"price"`
		PreviousClose      float64 `json:"previous_close"`
		Open               float64 `json:"open"`
		DayHigh            float64 `json:"day_high"`
		DayLow             float64 `json:"day_low"`
		Volume             float64 `json:"volume"`
		DailyChange        float64 `json:"daily_change"`
		DailyChangePercent float64 `json:"daily_change_percent"`
	} `json:"current"`
	Periods map[string]periodStats `json:"periods"`
}

type periodStats struct {
	Start         float64 `json:"start"`
	End           float64 `json:"end"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
}

func (c *Corporate) Execute(ctx context.Context, input string) (string, error) {
	var args struct {
		Action string `json:"action"`
		Symbol string `json:"symbol"`
	}
	if err := json.Unmarshal([]byte(input), &args); err != nil {
		return "", fmt.Errorf("parsing corporate_info input: %w", err)
	}
	if args.Symbol == "" {
		return "", fmt.Errorf("symbol is required")
	}

	switch args.Action {
	case "fetch":
		return c.fetch(ctx, args.Symbol)
	case "latest":
		return latestSnapshot(c.store, args.Symbol, "corporate_info")
	default:
		return "", fmt.Errorf("unknown action: %s", args.Action)
	}
}

func (c *Corporate) fetch(ctx context.Context, symbol string) (string, error) {
	summary, err := c.client.Summary(ctx, symbol)
	if err != nil {
		return "", err
	}
	candles, err := c.client.History(ctx, symbol, "1y", "1d")
	if err != nil {
		return "", err
	}

	snap := corporateSnapshot{
		Symbol:      symbol,
		CompanyInfo: summary.Profile,
	}
	snap.Ownership.InstitutionalHolders = summary.Holders
	snap.PriceData = buildPriceData(summary.Quote, candles)

	path, err := c.store.Put(symbol, "corporate_info", snap)
	if err != nil {
		return "", err
	}

	slog.Debug("corporate_info stored", "symbol", symbol, "path", path)
	return fmt.Sprintf("stored corporate info snapshot at %s", path), nil
}

func buildPriceData(q market.Quote, candles []market.Candle) priceData {
	var pd priceData
	pd.Current.Price = q.Price
	pd.Current.PreviousClose = q.PreviousClose
	pd.Current.Open = q.Open
	pd.Current.DayHigh = q.DayHigh
	pd.Current.DayLow = q.DayLow
	pd.Current.Volume = q.Volume
	pd.Current.DailyChange = q.Price - q.PreviousClose
	if q.PreviousClose != 0 {
		pd.Current.DailyChangePercent = pd.Current.DailyChange / q.PreviousClose * 100
	}

	pd.Periods = map[string]periodStats{
		"1w": lastPeriodStats(candles, 5),
		"1m": lastPeriodStats(candles, 21),
		"3m": lastPeriodStats(candles, 63),
		"6m": lastPeriodStats(candles, 126),
		"1y": lastPeriodStats(candles, len(candles)),
	}
	return pd
}

// lastPeriodStats summarizes the trailing n trading days.
func lastPeriodStats(candles []market.Candle, n int) periodStats {
	if len(candles) == 0 || n <= 0 {
		return periodStats{}
	}
	if n > len(candles) {
		n = len(candles)
	}
	window := candles[len(candles)-n:]
	start := window[0].Close
	end := window[len(window)-1].Close

	ps := periodStats{Start: start, End: end, Change: end - start}
	if start != 0 {
		ps.ChangePercent = ps.Change / start * 100
	}
	return ps
}

// latestSnapshot reports the newest stored snapshot for a symbol/prefix
// and whether it is still fresh.
func latestSnapshot(store *datastore.Store, symbol, prefix string) (string, error) {
	path, age, ok := store.Latest(symbol, prefix)
	if !ok {
		return fmt.Sprintf("no stored %s snapshot for %s", prefix, symbol), nil
	}

	out := map[string]any{
		"path":      path,
		"age_hours": age.Hours(),
		"fresh":     age < snapshotMaxAge,
	}
	return asJSON(out)
}
