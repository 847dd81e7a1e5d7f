package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"finch/internal/market"
)

// Sentiment exposes news, analyst and short-interest sentiment for a
// symbol.
type Sentiment struct {
	client *market.Client
}

func NewSentiment(client *market.Client) *Sentiment {
	return &Sentiment{client: client}
}

func (s *Sentiment) Name() string { return "analyze_sentiment" }
func (s *Sentiment) Description() string {
	return "Get sentiment data for a stock symbol: news sentiment, analyst recommendations, institutional ownership and short interest"
}

func (s *Sentiment) InputSchema() any {
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

func (s *Sentiment) Execute(ctx context.Context, input string) (string, error) {
	var args struct {
		Symbol string `json:"symbol"`
	}
	if err := json.Unmarshal([]byte(input), &args); err != nil {
		return "", fmt.Errorf("parsing analyze_sentiment input: %w", err)
	}
	if args.Symbol == "" {
		return "", fmt.Errorf("symbol is required")
	}

	summary, err := s.client.Summary(ctx, args.Symbol)
	if err != nil {
		return "", err
	}

	// Headlines are best-effort; sentiment still works from analyst
	// grades and short interest when the news endpoint fails.
	news, err := s.client.News(ctx, args.Symbol)
	if err != nil {
		slog.Warn("analyze_sentiment: news fetch failed", "symbol", args.Symbol, "error", err)
	}

	slog.Debug("analyze_sentiment done", "symbol", args.Symbol, "headlines", len(news))
	return asJSON(market.Sentiment(news, summary))
}
