package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"finch/internal/datastore"
	"finch/internal/market"
)

// Industry fetches and stores industry info snapshots for the sector a
// symbol belongs to.
type Industry struct {
	client *market.Client
	store  *datastore.Store
}

func NewIndustry(client *market.Client, store *datastore.Store) *Industry {
	return &Industry{client: client, store: store}
}

func (i *Industry) Name() string { return "industry_info" }
func (i *Industry) Description() string {
	return "Fetch industry and sector information for a stock symbol and store it as a local JSON snapshot, or find the latest stored snapshot and whether it is still fresh (less than 24 hours old)"
}

func (i *Industry) InputSchema() any {
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

type industrySnapshot struct {
	Symbol       string `json:"symbol"`
	MarketTrends struct {
		Industry string `json:"industry"`
		Sector   string `json:"sector"`
	} `json:"market_trends"`
	IndustryMetrics struct {
		PERatio       float64 `json:"pe_ratio"`
		ProfitMargins float64 `json:"profit_margins"`
		RevenueGrowth float64 `json:"revenue_growth"`
	} `json:"industry_metrics"`
	GrowthOpportunities struct {
		MarketCap      float64 `json:"market_cap"`
		RevenueGrowth  float64 `json:"revenue_growth"`
		EarningsGrowth float64 `json:"earnings_growth"`
	} `json:"growth_opportunities"`
}

func (i *Industry) Execute(ctx context.Context, input string) (string, error) {
	var args struct {
		Action string `json:"action"`
		Symbol string `json:"symbol"`
	}
	if err := json.Unmarshal([]byte(input), &args); err != nil {
		return "", fmt.Errorf("parsing industry_info input: %w", err)
	}
	if args.Symbol == "" {
		return "", fmt.Errorf("symbol is required")
	}

	switch args.Action {
	case "fetch":
		return i.fetch(ctx, args.Symbol)
	case "latest":
		return latestSnapshot(i.store, args.Symbol, "industry_info")
	default:
		return "", fmt.Errorf("unknown action: %s", args.Action)
	}
}

func (i *Industry) fetch(ctx context.Context, symbol string) (string, error) {
	summary, err := i.client.Summary(ctx, symbol)
	if err != nil {
		return "", err
	}

	snap := industrySnapshot{Symbol: symbol}
	snap.MarketTrends.Industry = summary.Profile.Industry
	snap.MarketTrends.Sector = summary.Profile.Sector
	snap.IndustryMetrics.PERatio = summary.Quote.TrailingPE
	snap.IndustryMetrics.ProfitMargins = summary.Quote.ProfitMargins
	snap.IndustryMetrics.RevenueGrowth = summary.Quote.RevenueGrowth
	snap.GrowthOpportunities.MarketCap = summary.Quote.MarketCap
	snap.GrowthOpportunities.RevenueGrowth = summary.Quote.RevenueGrowth
	snap.GrowthOpportunities.EarningsGrowth = summary.Quote.EarningsGrowth

	path, err := i.store.Put(symbol, "industry_info", snap)
	if err != nil {
		return "", err
	}

	slog.Debug("industry_info stored", "symbol", symbol, "path", path)
	return fmt.Sprintf("stored industry info snapshot at %s", path), nil
}
