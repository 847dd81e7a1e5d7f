package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"finch/internal/market"
)

// Fundamental exposes the fundamental metric groups for a symbol.
type Fundamental struct {
	client *market.Client
}

func NewFundamental(client *market.Client) *Fundamental {
	return &Fundamental{client: client}
}

func (f *Fundamental) Name() string { return "analyze_stock" }
func (f *Fundamental) Description() string {
	return "Get comprehensive fundamental data for a stock symbol: key ratios, growth, efficiency, profitability, liquidity and leverage metrics"
}

func (f *Fundamental) InputSchema() any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"symbol": map[string]any{
				"type":        "string",
				"description": "Stock ticker symbol, e.g. MSFT",
			},
		},
		"required":             []string{"symbol"},
		"additionalProperties": false,
	}
}

func (f *Fundamental) Execute(ctx context.Context, input string) (string, error) {
	var args struct {
		Symbol string `json:"symbol"`
	}
	if err := json.Unmarshal([]byte(input), &args); err != nil {
		return "", fmt.Errorf("parsing analyze_stock input: %w", err)
	}
	if args.Symbol == "" {
		return "", fmt.Errorf("symbol is required")
	}

	summary, err := f.client.Summary(ctx, args.Symbol)
	if err != nil {
		return "", err
	}

	slog.Debug("analyze_stock done", "symbol", args.Symbol)
	return asJSON(market.Fundamentals(summary))
}
