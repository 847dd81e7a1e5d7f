package market

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chartBody = `{
  "chart": {
    "result": [{
      "timestamp": [1700000000, 1700086400, 1700172800],
      "indicators": {
        "quote": [{
          "open":   [10.0, 10.5, 0],
          "high":   [11.0, 11.5, 0],
          "low":    [9.5, 10.0, 0],
          "close":  [10.5, 11.0, 0],
          "volume": [1000, 2000, 0]
        }]
      }
    }],
    "error": null
  }
}`

const summaryBody = `{
  "quoteSummary": {
    "result": [{
      "summaryDetail": {
        "trailingPE": {"raw": 24.5, "fmt": "24.50"},
        "beta": 1.1,
        "dividendYield": {},
        "fiftyTwoWeekHigh": {"raw": 199.5}
      },
      "defaultKeyStatistics": {
        "pegRatio": {"raw": 2.1},
        "sharesOutstanding": {"raw": 1000000}
      },
      "financialData": {
        "currentPrice": {"raw": 150.0},
        "debtToEquity": {"raw": 140.2},
        "revenueGrowth": {"raw": 0.12}
      },
      "assetProfile": {
        "sector": "Technology",
        "industry": "Software",
        "fullTimeEmployees": 221000
      },
      "price": {"longName": "Example Corp"},
      "institutionOwnership": {
        "ownershipList": [
          {"organization": "Fund A", "position": {"raw": 500}, "value": {"raw": 75000}}
        ]
      },
      "upgradeDowngradeHistory": {
        "history": [
          {"firm": "Broker", "toGrade": "Buy", "fromGrade": "Hold", "action": "up"}
        ]
      }
    }],
    "error": null
  }
}`

const newsBody = `{
  "news": [
    {"title": "Example Corp posts strong growth", "publisher": "Wire", "link": "https://example.com/a", "providerPublishTime": 1700000000}
  ]
}`

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/v8/finance/chart/"):
			fmt.Fprint(w, chartBody)
		case strings.HasPrefix(r.URL.Path, "/v10/finance/quoteSummary/"):
			fmt.Fprint(w, summaryBody)
		case strings.HasPrefix(r.URL.Path, "/v1/finance/search"):
			fmt.Fprint(w, newsBody)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClientHistory(t *testing.T) {
	c := NewClient(testServer(t).URL)

	candles, err := c.History(context.Background(), "EXMP", "1y", "1d")
	require.NoError(t, err)
	// The zero-close bar is dropped.
	require.Len(t, candles, 2)
	assert.Equal(t, 10.5, candles[0].Close)
	assert.Equal(t, 11.0, candles[1].Close)
	assert.Equal(t, int64(2000), candles[1].Volume)
}

func TestClientSummary(t *testing.T) {
	c := NewClient(testServer(t).URL)

	s, err := c.Summary(context.Background(), "EXMP")
	require.NoError(t, err)

	// Wrapped, bare, and empty-object numbers all parse.
	assert.InDelta(t, 24.5, s.Quote.TrailingPE, 1e-9)
	assert.InDelta(t, 1.1, s.Quote.Beta, 1e-9)
	assert.Equal(t, 0.0, s.Quote.DividendYield)
	assert.InDelta(t, 199.5, s.Quote.FiftyTwoWeekHigh, 1e-9)
	assert.InDelta(t, 2.1, s.Quote.PEGRatio, 1e-9)
	assert.InDelta(t, 150.0, s.Quote.Price, 1e-9)
	assert.InDelta(t, 0.12, s.Quote.RevenueGrowth, 1e-9)

	assert.Equal(t, "Example Corp", s.Profile.Name)
	assert.Equal(t, "Technology", s.Profile.Sector)
	assert.Equal(t, 221000, s.Profile.Employees)

	require.Len(t, s.Holders, 1)
	assert.Equal(t, "Fund A", s.Holders[0].Organization)
	assert.Equal(t, 500.0, s.Holders[0].Shares)

	require.Len(t, s.Recommendations, 1)
	assert.Equal(t, "Buy", s.Recommendations[0].ToGrade)
}

func TestClientNews(t *testing.T) {
	c := NewClient(testServer(t).URL)

	news, err := c.News(context.Background(), "EXMP")
	require.NoError(t, err)
	require.Len(t, news, 1)
	assert.Equal(t, "Example Corp posts strong growth", news[0].Title)
	assert.Equal(t, "Wire", news[0].Publisher)
}

func TestClientUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL)
	_, err := c.History(context.Background(), "EXMP", "", "")
	assert.Error(t, err)
}
