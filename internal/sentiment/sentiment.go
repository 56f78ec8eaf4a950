// Package sentiment scores review text and turns scores and ratings into
// Positive/Neutral/Negative labels.
package sentiment

import "review-crawler/internal/models"

// Scorer returns a polarity in [-1, 1] for a text.
type Scorer interface {
	Polarity(text string) float64
}

// ScorerFunc adapts a plain function to Scorer.
type ScorerFunc func(text string) float64

func (f ScorerFunc) Polarity(text string) float64 { return f(text) }

type Classifier struct {
	scorer Scorer
}

func NewClassifier(s Scorer) *Classifier {
	return &Classifier{scorer: s}
}

// ClassifyPolarity labels a text from its polarity alone.
func (c *Classifier) ClassifyPolarity(body string) models.Sentiment {
	return FromPolarity(c.scorer.Polarity(body))
}

// ClassifyCombined labels a review from its star rating and body polarity.
// The checks run in a fixed order: any rating of 4 or more is Positive
// whatever the text says.
func (c *Classifier) ClassifyCombined(rating int, body string) models.Sentiment {
	polarity := c.scorer.Polarity(body)
	switch {
	case rating >= 4:
		return models.Positive
	case rating == 3 && polarity > 0:
		return models.Positive
	case polarity > 0:
		return models.Positive
	case polarity == 0:
		return models.Neutral
	default:
		return models.Negative
	}
}

func FromPolarity(p float64) models.Sentiment {
	switch {
	case p > 0:
		return models.Positive
	case p == 0:
		return models.Neutral
	default:
		return models.Negative
	}
}
