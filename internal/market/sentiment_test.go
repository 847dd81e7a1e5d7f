package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextSentiment(t *testing.T) {
	tests := []struct {
		text string
		want float64
	}{
		{"Strong growth drives gains", 1},    // three positives, clamped
		{"Shares down after weak quarter", -1},
		{"Quarterly results announced", 0},
		{"Stock up today", 0.5},
		{"Heavy loss reported", -0.5},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, TextSentiment(tt.text), 1e-9, tt.text)
	}
}

func TestGradeScore(t *testing.T) {
	assert.Equal(t, 1.0, GradeScore("Strong Buy"))
	assert.Equal(t, 0.75, GradeScore("Buy"))
	assert.Equal(t, 0.5, GradeScore("Hold"))
	assert.Equal(t, 0.25, GradeScore("Sell"))
	assert.Equal(t, 0.0, GradeScore("Strong Sell"))
	assert.Equal(t, 0.5, GradeScore("Overweight"))
}

func TestSentiment(t *testing.T) {
	news := []NewsItem{
		{Title: "Shares up on earnings"},
		{Title: "Analysts warn of loss"},
	}
	s := &Summary{
		Quote: Quote{ShortRatio: 2.5, SharesShort: 1e6},
		Recommendations: []Recommendation{
			{ToGrade: "Strong Buy"},
			{ToGrade: "Sell"},
		},
		Holders: []Holder{{}, {}, {}},
	}

	snap := Sentiment(news, s)
	assert.InDelta(t, 0, snap.News.SentimentScore, 1e-9)
	assert.Equal(t, 2, snap.News.ArticleCount)
	assert.InDelta(t, 0.625, snap.Recommendations.SentimentScore, 1e-9)
	assert.Equal(t, 2, snap.Recommendations.RecommendationCount)
	assert.Equal(t, 0.5, snap.Institutional.SentimentScore)
	assert.Equal(t, 3, snap.Institutional.HolderCount)
	assert.Equal(t, 2.5, snap.Market.ShortRatio)
}

func TestSentimentEmpty(t *testing.T) {
	snap := Sentiment(nil, &Summary{})
	assert.Equal(t, 0.0, snap.News.SentimentScore)
	assert.Equal(t, 0, snap.News.ArticleCount)
	assert.Equal(t, 0.0, snap.Institutional.SentimentScore)
}

func TestSentimentCapsNewsAtTen(t *testing.T) {
	var news []NewsItem
	for range 15 {
		news = append(news, NewsItem{Title: "gain"})
	}
	snap := Sentiment(news, &Summary{})
	assert.Equal(t, 10, snap.News.ArticleCount)
	assert.InDelta(t, 0.5, snap.News.SentimentScore, 1e-9)
}
