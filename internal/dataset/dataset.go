
package dataset

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/rs/zerolog"

	"review-crawler/internal/models"
	"review-crawler/internal/sentiment"
)

type Processor struct {
	sentiment *sentiment.Classifier
	log       zerolog.Logger
}

func NewProcessor(sc *sentiment.Classifier, log zerolog.Logger) *Processor {
	return &Processor{sentiment: sc, log: log}
}

type dedupKey struct {
	title, body string
}

// Clean turns ingested reviews into dataset rows: dates are parsed (bad
// ones become null), month and satisfaction are derived, duplicate
// (title, body) pairs are dropped keeping the first, and sentiment is
// recomputed from rating and text.
func (p *Processor) Clean(reviews []models.Review) []models.CleanedReview {
	seen := make(map[dedupKey]struct{}, len(reviews))
	out := make([]models.CleanedReview, 0, len(reviews))
	invalidDates := 0
	for _, r := range reviews {
		k := dedupKey{r.Title, r.Body}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}

		date := ParseDate(r.Date)
		if !date.Valid {
			invalidDates++
		}
		out = append(out, models.CleanedReview{
			Title:       r.Title,
			Rating:      r.Rating,
			Date:        date,
			Body:        r.Body,
			Sentiment:   p.sentiment.ClassifyCombined(r.Rating, r.Body),
			Category:    r.Category,
			MonthPeriod: models.MonthOf(date),
			Satisfied:   Satisfied(r.Rating),
		})
	}
	p.log.Info().
		Int("in", len(reviews)).
		Int("out", len(out)).
		Int("duplicates", len(reviews)-len(out)).
		Int("invalid_dates", invalidDates).
		Msg("dataset cleaned")
	return out
}

func Satisfied(rating int) bool { return rating >= 4 }

// ParseDate accepts any common date layout. Zone offsets are dropped
// after parsing: the wall-clock reading is kept as a naive time.
func ParseDate(s string) (nt models.NullTime) {
	s = strings.TrimSpace(s)
	if s == "" {
		return models.NullTime{}
	}
	defer func() {
		// dateparse can panic on some garbage input
		if recover() != nil {
			nt = models.NullTime{}
		}
	}()
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return models.NullTime{}
	}
	naive := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	return models.NullTime{Time: naive, Valid: true}
}

// Corpus joins title and body of every row for keyword extraction.
func Corpus(rows []models.CleanedReview) string {
	parts := make([]string, len(rows))
	for i, r := range rows {
		parts[i] = r.Title + " " + r.Body
	}
	return strings.Join(parts, " ")
}
