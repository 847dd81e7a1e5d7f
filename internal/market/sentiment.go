package market

import "strings"

var (
	positiveKeywords = []string{"gain", "growth", "positive", "up", "bull", "strong"}
	negativeKeywords = []string{"loss", "decline", "negative", "down", "bear", "weak"}

	// gradeScores maps analyst grades onto a 0..1 bullishness scale.
	gradeScores = map[string]float64{
		"Strong Buy":  1.0,
		"Buy":         0.75,
		"Hold":        0.5,
		"Sell":        0.25,
		"Strong Sell": 0.0,
	}
)

const neutralScore = 0.5

// SentimentSnapshot is the sentiment view handed to the sentiment agent.
type SentimentSnapshot struct {
	News struct {
		SentimentScore float64 `json:"sentiment_score"`
		ArticleCount   int     `json:"article_count"`
	} `json:"news_sentiment"`

	Recommendations struct {
		SentimentScore      float64 `json:"sentiment_score"`
		RecommendationCount int     `json:"recommendation_count"`
	} `json:"recommendation_sentiment"`

	Institutional struct {
		SentimentScore float64 `json:"sentiment_score"`
		HolderCount    int     `json:"holder_count"`
	} `json:"institutional_sentiment"`

	Market struct {
		ShortRatio            float64 `json:"short_ratio"`
		ShortPercentOfFloat   float64 `json:"short_percent_float"`
		SharesShort           float64 `json:"shares_short"`
		SharesShortPriorMonth float64 `json:"shares_short_prior_month"`
	} `json:"market_sentiment"`
}

// TextSentiment scores a headline by keyword matching, clamped to [-1, 1].
func TextSentiment(text string) float64 {
	lower := strings.ToLower(text)
	score := 0
	for _, w := range positiveKeywords {
		if strings.Contains(lower, w) {
			score++
		}
	}
	for _, w := range negativeKeywords {
		if strings.Contains(lower, w) {
			score--
		}
	}
	v := float64(score) / 2
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

// GradeScore maps an analyst grade onto [0, 1]; unknown grades are neutral.
func GradeScore(grade string) float64 {
	if v, ok := gradeScores[grade]; ok {
		return v
	}
	return neutralScore
}

// Sentiment computes the sentiment snapshot from headlines and summary
// data. At most the ten most recent headlines are scored.
func Sentiment(news []NewsItem, s *Summary) *SentimentSnapshot {
	snap := &SentimentSnapshot{}

	if len(news) > 10 {
		news = news[:10]
	}
	if len(news) > 0 {
		var sum float64
		for _, n := range news {
			sum += TextSentiment(n.Title)
		}
		snap.News.SentimentScore = sum / float64(len(news))
		snap.News.ArticleCount = len(news)
	}

	if len(s.Recommendations) > 0 {
		var sum float64
		for _, r := range s.Recommendations {
			sum += GradeScore(r.ToGrade)
		}
		snap.Recommendations.SentimentScore = sum / float64(len(s.Recommendations))
		snap.Recommendations.RecommendationCount = len(s.Recommendations)
	}

	if len(s.Holders) > 0 {
		snap.Institutional.SentimentScore = neutralScore
		snap.Institutional.HolderCount = len(s.Holders)
	}

	snap.Market.ShortRatio = s.Quote.ShortRatio
	snap.Market.ShortPercentOfFloat = s.Quote.ShortPercentOfFloat
	snap.Market.SharesShort = s.Quote.SharesShort
	snap.Market.SharesShortPriorMonth = s.Quote.SharesShortPriorMonth
	return snap
}
