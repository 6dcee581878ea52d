package ai

import "strings"

// Sentiment is a coarse sentiment label.
type Sentiment string

const (
	SentimentPositive Sentiment = "POSITIVE"
	SentimentNegative Sentiment = "NEGATIVE"
	SentimentNeutral  Sentiment = "NEUTRAL"
)

// ParseSentiment maps model output onto a Sentiment. Unrecognized labels
// are reported as neutral with ok set to false.
func ParseSentiment(s string) (Sentiment, bool) {
	switch strings.ToUpper(strings.Trim(strings.TrimSpace(s), `"'.`)) {
	case "POSITIVE", "POS":
		return SentimentPositive, true
	case "NEGATIVE", "NEG":
		return SentimentNegative, true
	case "NEUTRAL":
		return SentimentNeutral, true
	}
	return SentimentNeutral, false
}

// ScoreDelta is the ranking adjustment a sentiment contributes.
func (s Sentiment) ScoreDelta() int {
	switch s {
	case SentimentPositive:
		return 5
	case SentimentNegative:
		return -5
	}
	return 0
}
