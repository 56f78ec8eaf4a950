package dataset

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"review-crawler/internal/models"
	"review-crawler/internal/sentiment"
)

var zero = sentiment.ScorerFunc(func(string) float64 { return 0 })

func newProcessor() *Processor {
	return NewProcessor(sentiment.NewClassifier(zero), zerolog.Nop())
}

func TestSatisfied(t *testing.T) {
	for r := 0; r <= 5; r++ {
		assert.Equal(t, r >= 4, Satisfied(r), "rating %d", r)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"2024-03-15T00:00:00.000Z", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), true},
		{"2024-03-15T23:30:00+02:00", time.Date(2024, 3, 15, 23, 30, 0, 0, time.UTC), true},
		{"2024-03-15", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), true},
		{"No Date", time.Time{}, false},
		{"", time.Time{}, false},
		{"not a date at all", time.Time{}, false},
	}
	for _, tt := range tests {
		got := ParseDate(tt.in)
		require.Equal(t, tt.ok, got.Valid, "%q", tt.in)
		if tt.ok {
			assert.True(t, tt.want.Equal(got.Time), "%q: want %v, got %v", tt.in, tt.want, got.Time)
			assert.Equal(t, time.UTC, got.Time.Location())
		}
	}
}

func TestClean_InvalidDateBecomesNull(t *testing.T) {
	in := []models.Review{
		{Title: "a", Rating: 5, Date: "2024-01-10T00:00:00.000Z", Body: "one"},
		{Title: "b", Rating: 3, Date: "No Date", Body: "two"},
		{Title: "c", Rating: 1, Date: "2024-02-01T12:00:00.000Z", Body: "three"},
	}
	out := newProcessor().Clean(in)
	require.Len(t, out, 3)

	assert.True(t, out[0].Date.Valid)
	assert.False(t, out[1].Date.Valid)
	assert.False(t, out[1].MonthPeriod.Valid)
	assert.True(t, out[2].MonthPeriod.Valid)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), out[2].MonthPeriod.Month)
}

func TestClean_DedupKeepsFirst(t *testing.T) {
	in := []models.Review{
		{Title: "same", Rating: 5, Date: "2024-01-01", Body: "text"},
		{Title: "other", Rating: 2, Date: "2024-01-02", Body: "text"},
		{Title: "same", Rating: 1, Date: "2023-05-05", Body: "text"},
		{Title: "same", Rating: 3, Date: "2023-05-05", Body: "different"},
	}
	out := newProcessor().Clean(in)
	require.Len(t, out, 3)
	assert.Equal(t, "same", out[0].Title)
	assert.Equal(t, 5, out[0].Rating)
	assert.Equal(t, "other", out[1].Title)
	assert.Equal(t, "different", out[2].Body)
}

func TestClean_OverwritesSentimentAndDerives(t *testing.T) {
	in := []models.Review{
		{Title: "x", Rating: 4, Date: "2024-01-01", Body: "b1", Sentiment: models.Neutral, Category: "Food"},
		{Title: "y", Rating: 2, Date: "2024-01-01", Body: "b2", Sentiment: models.Positive, Category: "Textile"},
	}
	out := newProcessor().Clean(in)
	require.Len(t, out, 2)

	assert.Equal(t, models.Positive, out[0].Sentiment)
	assert.True(t, out[0].Satisfied)
	assert.Equal(t, "Food", out[0].Category)

	assert.Equal(t, models.Neutral, out[1].Sentiment)
	assert.False(t, out[1].Satisfied)
}

func TestCorpus(t *testing.T) {
	rows := []models.CleanedReview{{Title: "Top", Body: "Rapide"}, {Title: "Bof", Body: "Lent"}}
	assert.Equal(t, "Top Rapide Bof Lent", Corpus(rows))
	assert.Equal(t, "", Corpus(nil))
}
