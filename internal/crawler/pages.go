
package crawler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"

	"review-crawler/internal/models"
	"review-crawler/internal/observability"
)

// PayloadExtractor pulls the raw review array out of an HTML document.
type PayloadExtractor interface {
	Extract(r io.Reader, contentType string) ([]any, error)
}

// PageFetcher downloads one listing page and returns its embedded reviews.
type PageFetcher struct {
	client *HTTPClient
	parser PayloadExtractor
	log    zerolog.Logger
}

func NewPageFetcher(client *HTTPClient, parser PayloadExtractor, log zerolog.Logger) *PageFetcher {
	return &PageFetcher{client: client, parser: parser, log: log}
}

// FetchPage requests baseURL?page=n once. Failed requests wrap
// models.ErrTransportFailure; pages without a usable payload wrap
// models.ErrMissingPayload. There is no retry.
func (f *PageFetcher) FetchPage(ctx context.Context, baseURL string, page int) ([]any, error) {
	resp, err := f.client.Fetch(ctx, baseURL, url.Values{"page": {strconv.Itoa(page)}})
	if errors.Is(err, ErrNonHTML) {
		return nil, fmt.Errorf("page %d: %v: %w", page, err, models.ErrMissingPayload)
	}
	if err != nil {
		return nil, fmt.Errorf("page %d: %v: %w", page, err, models.ErrTransportFailure)
	}
	defer resp.Body.Close()
	observability.ObserveFetch(resp.Elapsed)

	f.log.Debug().
		Int("page", page).
		Str("url", resp.FinalURL).
		Dur("elapsed", resp.Elapsed).
		Msg("page fetched")

	items, err := f.parser.Extract(resp.Body, resp.ContentType)
	if errors.Is(err, models.ErrMissingPayload) {
		return nil, fmt.Errorf("page %d: %w", page, err)
	}
	if err != nil {
		return nil, fmt.Errorf("page %d: read body: %v: %w", page, err, models.ErrTransportFailure)
	}
	return items, nil
}
