package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"finch/internal/market"
)

// Technical exposes price-history indicators for a symbol.
type Technical struct {
	client *market.Client
}

func NewTechnical(client *market.Client) *Technical {
	return &Technical{client: client}
}

func (t *Technical) Name() string { return "analyze_technical" }
func (t *Technical) Description() string {
	return "Get technical indicators for a stock symbol: moving averages, RSI, MACD, Bollinger bands and the latest price action"
}

func (t *Technical) InputSchema() any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"symbol": map[string]any{
				"type":        "string",
				"description": "Stock ticker symbol, e.g. MSFT",
			},
			"range": map[string]any{
				"type":        "string",
				"description": "History range (default 1y)",
			},
			"interval": map[string]any{
				"type":        "string",
				"description": "Bar interval (default 1d)",
			},
		},
		"required":             []string{"symbol", "range", "interval"},
		"additionalProperties": false,
	}
}

func (t *Technical) Execute(ctx context.Context, input string) (string, error) {
	var args struct {
		Symbol   string `json:"symbol"`
		Range    string `json:"range"`
		Interval string `json:"interval"`
	}
	if err := json.Unmarshal([]byte(input), &args); err != nil {
		return "", fmt.Errorf("parsing analyze_technical input: %w", err)
	}
	if args.Symbol == "" {
		return "", fmt.Errorf("symbol is required")
	}

	candles, err := t.client.History(ctx, args.Symbol, args.Range, args.Interval)
	if err != nil {
		return "", err
	}

	snap, err := market.Technicals(candles)
	if err != nil {
		return "", err
	}

	slog.Debug("analyze_technical done", "symbol", args.Symbol, "candles", len(candles))
	return asJSON(snap)
}
