package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"finch/internal/market"
)

// Risk exposes the risk metric groups for a symbol.
type Risk struct {
	client *market.Client
}

func NewRisk(client *market.Client) *Risk {
	return &Risk{client: client}
}

func (r *Risk) Name() string { return "analyze_risk" }
func (r *Risk) Description() string {
	return "Get risk data for a stock symbol: volatility, VaR, max drawdown, and financial, market, liquidity and concentration risk metrics"
}

func (r *Risk) InputSchema() any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"symbol": map[string]any{
				"type":        "string",
				"description": "Stock ticker symbol, e.g. MSFT",
			},
			"range": map[string]any{
				"type":        "string",
				"description": "History range for volatility metrics (default 1y)",
			},
		},
		"required":             []string{"symbol", "range"},
		"additionalProperties": false,
	}
}

func (r *Risk) Execute(ctx context.Context, input string) (string, error) {
	var args struct {
		Symbol string `json:"symbol"`
		Range  string `json:"range"`
	}
	if err := json.Unmarshal([]byte(input), &args); err != nil {
		return "", fmt.Errorf("parsing analyze_risk input: %w", err)
	}
	if args.Symbol == "" {
		return "", fmt.Errorf("symbol is required")
	}

	candles, err := r.client.History(ctx, args.Symbol, args.Range, "1d")
	if err != nil {
		return "", err
	}
	summary, err := r.client.Summary(ctx, args.Symbol)
	if err != nil {
		return "", err
	}

	snap, err := market.Risk(candles, summary)
	if err != nil {
		return "", err
	}

	slog.Debug("analyze_risk done", "symbol", args.Symbol)
	return asJSON(snap)
}
