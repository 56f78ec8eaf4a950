package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"review-crawler/internal/classifier"
	"review-crawler/internal/config"
	"review-crawler/internal/crawler"
	"review-crawler/internal/dataset"
	"review-crawler/internal/ingest"
	"review-crawler/internal/ioformats"
	"review-crawler/internal/models"
	"review-crawler/internal/observability"
	"review-crawler/internal/parser"
	"review-crawler/internal/report"
	"review-crawler/internal/sentiment"
	"review-crawler/pkg/logger"
)

type app struct {
	settings  *config.Settings
	taxonomy  *config.Taxonomy
	sentiment *sentiment.Classifier
	registry  *prometheus.Registry
	log       zerolog.Logger
	out       io.Writer
}

func newApp(cfgPath string, debug bool, out, errOut io.Writer) (*app, error) {
	s, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	level := s.LogLevel
	if debug {
		level = "debug"
	}
	log := logger.WithLevel(logger.New(s.AppEnv, errOut), level)

	tax, err := config.LoadTaxonomy(s.Analysis.TaxonomyPath)
	if err != nil {
		return nil, fmt.Errorf("load taxonomy: %w", err)
	}

	lex, err := loadLexicon(s.Analysis.LexiconPath)
	if err != nil {
		return nil, err
	}

	return &app{
		settings:  s,
		taxonomy:  tax,
		sentiment: sentiment.NewClassifier(sentiment.NewLexiconScorer(lex)),
		registry:  observability.InitRegistry(),
		log:       log,
		out:       out,
	}, nil
}

func loadLexicon(path string) (*sentiment.Lexicon, error) {
	if path == "" {
		return sentiment.DefaultLexicon()
	}
	lex, err := sentiment.LoadLexicon(path)
	if err != nil {
		return nil, fmt.Errorf("load lexicon: %w", err)
	}
	return lex, nil
}

func (a *app) scrape(ctx context.Context) ([]models.Review, models.RunReport) {
	s := a.settings
	fetcher := crawler.NewPageFetcher(crawler.NewHTTPClient(s.Crawler()), parser.New(), a.log)
	in := ingest.New(
		fetcher,
		classifier.New(a.taxonomy.Categories),
		a.sentiment,
		ingest.NewPacer(s.Scrape.Delay),
		a.log,
	)

	a.log.Info().Str("url", s.Scrape.BaseURL).Int("pages", s.Scrape.Pages).Dur("delay", s.Scrape.Delay).Msg("scraping")
	reviews, run := in.Ingest(ctx, s.Scrape.BaseURL, s.Scrape.Pages)
	a.log.Info().
		Str("run", run.RunID).
		Int("pages", run.PagesAttempted).
		Int("pages_skipped", run.TotalPagesSkipped()).
		Int("reviews", run.ItemsIngested).
		Int("reviews_skipped", run.TotalItemsSkipped()).
		Bool("canceled", run.Canceled).
		Dur("took", run.FinishedAt.Sub(run.StartedAt)).
		Msg("scrape finished")
	return reviews, run
}

func (a *app) dumpRaw(reviews []models.Review) error {
	path := a.settings.Output.Raw
	if path == "" {
		return nil
	}
	if err := ioformats.WriteReviewsNDJSON(path, reviews); err != nil {
		return fmt.Errorf("write raw dump: %w", err)
	}
	a.log.Info().Str("path", path).Int("reviews", len(reviews)).Msg("raw dump written")
	return nil
}

func (a *app) loadRaw(path string) ([]models.Review, error) {
	reviews, err := ioformats.ReadReviewsNDJSON(path)
	if err != nil {
		return nil, fmt.Errorf("read raw dump: %w", err)
	}
	a.log.Info().Str("path", path).Int("reviews", len(reviews)).Msg("raw dump loaded")
	return reviews, nil
}

// finish cleans reviews, saves the dataset and prints the analysis. run
// is nil when no scrape happened in this process.
func (a *app) finish(reviews []models.Review, run *models.RunReport) error {
	s := a.settings

	rows := dataset.NewProcessor(a.sentiment, a.log).Clean(reviews)
	observability.SetCleanedRows(len(rows))

	if err := ioformats.WriteCleanedCSV(s.Output.CSV, rows); err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}
	a.log.Info().Msgf("Data saved to %s", s.Output.CSV)

	stop := classifier.StopWords(a.taxonomy.StopWords)
	keywords := classifier.TopKeywords(dataset.Corpus(rows), stop, s.Analysis.TopN)
	report.PrintKeywords(a.out, keywords)

	rep := report.Build(rows)
	report.PrintMonthly(a.out, rep)
	if s.Output.Chart != "" {
		err := report.Render(rep, s.Output.Chart)
		switch {
		case errors.Is(err, models.ErrNoData):
			a.log.Warn().Msg("no dated reviews, chart skipped")
		case err != nil:
			return fmt.Errorf("render chart: %w", err)
		default:
			a.log.Info().Str("path", s.Output.Chart).Msg("chart saved")
		}
	}

	if run != nil {
		report.PrintRun(a.out, *run)
	}
	if err := observability.WriteTextfile(s.Output.MetricsFile, a.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
