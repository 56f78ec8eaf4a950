// Package ingest walks the review listing pages one at a time and turns
// their raw items into annotated reviews.
package ingest

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"review-crawler/internal/classifier"
	"review-crawler/internal/models"
	"review-crawler/internal/observability"
	"review-crawler/internal/sentiment"
)

type PageFetcher interface {
	FetchPage(ctx context.Context, baseURL string, page int) ([]any, error)
}

// Pacer blocks between pages.
type Pacer interface {
	Wait(ctx context.Context) error
}

// SleepPacer pauses for the full delay on every call, however long the
// page before it took.
type SleepPacer struct {
	delay time.Duration
}

func NewPacer(delay time.Duration) *SleepPacer {
	return &SleepPacer{delay: delay}
}

// Wait returns ctx.Err() if ctx ends before the delay has passed.
func (p *SleepPacer) Wait(ctx context.Context) error {
	if p.delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(p.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

type Ingestor struct {
	fetcher     PageFetcher
	categorizer *classifier.Categorizer
	sentiment   *sentiment.Classifier
	pacer       Pacer
	log         zerolog.Logger
}

func New(f PageFetcher, cat *classifier.Categorizer, sc *sentiment.Classifier, p Pacer, log zerolog.Logger) *Ingestor {
	return &Ingestor{fetcher: f, categorizer: cat, sentiment: sc, pacer: p, log: log}
}

// Ingest fetches pages 1..pageCount in order and returns every review it
// could extract. Failed pages and malformed items are logged, counted in
// the report and skipped; the loop never stops early on failures. It
// only ends before pageCount when ctx is done.
func (in *Ingestor) Ingest(ctx context.Context, baseURL string, pageCount int) ([]models.Review, models.RunReport) {
	report := models.RunReport{
		RunID:        ulid.Make().String(),
		StartedAt:    time.Now(),
		PagesSkipped: map[models.SkipReason]int{},
		ItemsSkipped: map[models.SkipReason]int{},
	}
	log := in.log.With().Str("run", report.RunID).Logger()

	var reviews []models.Review
	for page := 1; page <= pageCount; page++ {
		report.PagesAttempted++
		items, err := in.fetcher.FetchPage(ctx, baseURL, page)
		if err != nil {
			reason := models.SkipReasonFor(err)
			report.PagesSkipped[reason]++
			observability.ObservePage(string(reason))
			log.Warn().Err(err).Int("page", page).Str("reason", string(reason)).Msg("page skipped")
		} else {
			observability.ObservePage("ok")
			for i, item := range items {
				res := in.Extract(item)
				if res.Skipped() {
					report.ItemsSkipped[res.Skip]++
					observability.ObserveItem(string(res.Skip))
					log.Warn().Err(res.Err).Int("page", page).Int("item", i).Msg("review skipped")
					continue
				}
				observability.ObserveItem("ingested")
				reviews = append(reviews, res.Review)
			}
			log.Debug().Int("page", page).Int("items", len(items)).Msg("page processed")
		}

		if err := in.pacer.Wait(ctx); err != nil {
			report.Canceled = true
			log.Warn().Err(err).Int("page", page).Msg("ingestion stopped")
			break
		}
	}

	report.ItemsIngested = len(reviews)
	report.FinishedAt = time.Now()
	return reviews, report
}

// Extract reads one raw item and annotates it. Missing or null fields get
// their defaults; fields of the wrong type make the item malformed.
// Sentiment here comes from the body polarity alone.
func (in *Ingestor) Extract(item any) models.ItemResult {
	r, err := extractFields(item)
	if err != nil {
		return models.ItemResult{Skip: models.SkipMalformedItem, Err: err}
	}
	r.Sentiment = in.sentiment.ClassifyPolarity(r.Body)
	r.Category = in.categorizer.Categorize(r.Body)
	return models.ItemResult{Review: r}
}

func extractFields(item any) (models.Review, error) {
	obj, ok := item.(map[string]any)
	if !ok {
		return models.Review{}, fmt.Errorf("item is %T: %w", item, models.ErrMalformedItem)
	}
	var r models.Review
	var err error
	if r.Title, err = stringField(obj, "title", models.DefaultTitle); err != nil {
		return models.Review{}, err
	}
	if r.Rating, err = ratingField(obj, "rating"); err != nil {
		return models.Review{}, err
	}
	r.Date = models.DefaultDate
	switch dates := obj["dates"].(type) {
	case nil:
	case map[string]any:
		if r.Date, err = stringField(dates, "experiencedDate", models.DefaultDate); err != nil {
			return models.Review{}, err
		}
	default:
		return models.Review{}, fmt.Errorf("dates is %T: %w", dates, models.ErrMalformedItem)
	}
	if r.Body, err = stringField(obj, "text", models.DefaultBody); err != nil {
		return models.Review{}, err
	}
	return r, nil
}

func stringField(obj map[string]any, key, def string) (string, error) {
	switch v := obj[key].(type) {
	case nil:
		return def, nil
	case string:
		return v, nil
	default:
		return "", fmt.Errorf("%s is %T: %w", key, v, models.ErrMalformedItem)
	}
}

func ratingField(obj map[string]any, key string) (int, error) {
	switch v := obj[key].(type) {
	case nil:
		return 0, nil
	case float64:
		if v != math.Trunc(v) || v < 0 || v > 5 {
			return 0, fmt.Errorf("%s %v out of range: %w", key, v, models.ErrMalformedItem)
		}
		return int(v), nil
	default:
		return 0, fmt.Errorf("%s is %T: %w", key, v, models.ErrMalformedItem)
	}
}
