
package crawler

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultUserAgent is a desktop Chrome string; the review site rejects
// unbranded clients.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

type Config struct {
	Timeout     time.Duration
	DialTimeout time.Duration
	SizeCap     int64
	UserAgent   string
}

func DefaultConfig() Config {
	return Config{
		Timeout:     15 * time.Second,
		DialTimeout: 5 * time.Second,
		SizeCap:     5 * 1024 * 1024,
		UserAgent:   DefaultUserAgent,
	}
}

// StatusError reports a response outside the 2xx/3xx range.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string { return fmt.Sprintf("http status %d", e.Code) }

var ErrNonHTML = errors.New("non-html content")

type HTTPClient struct {
	client  *resty.Client
	sizeCap int64
}

// Response is a fetched HTML body capped at the configured size.
type Response struct {
	Body        io.ReadCloser
	FinalURL    string
	ContentType string
	Elapsed     time.Duration
}

func NewHTTPClient(cfg Config) *HTTPClient {
	def := DefaultConfig()
	if cfg.Timeout == 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.DialTimeout == 0 {
		cfg.DialTimeout = def.DialTimeout
	}
	if cfg.SizeCap == 0 {
		cfg.SizeCap = def.SizeCap
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = def.UserAgent
	}
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.DialTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	client := resty.New().
		SetTransport(transport).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8").
		SetHeader("Accept-Encoding", "gzip").
		SetHeader("User-Agent", cfg.UserAgent)
	return &HTTPClient{client: client, sizeCap: cfg.SizeCap}
}

// Fetch issues one GET with the given extra query parameters. The caller
// closes Body.
func (h *HTTPClient) Fetch(ctx context.Context, rawURL string, query url.Values) (*Response, error) {
	start := time.Now()
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid url %q", rawURL)
	}

	resp, err := h.client.R().
		SetContext(ctx).
		SetQueryParamsFromValues(query).
		SetDoNotParseResponse(true).
		Get(u.String())
	if err != nil {
		return nil, err
	}
	raw := resp.RawBody()
	if resp.StatusCode() < 200 || resp.StatusCode() >= 400 {
		raw.Close()
		return nil, &StatusError{Code: resp.StatusCode()}
	}

	var body io.Reader = raw
	closers := []io.Closer{raw}
	if strings.EqualFold(resp.Header().Get("Content-Encoding"), "gzip") {
		gz, err := gzip.NewReader(raw)
		if err != nil {
			raw.Close()
			return nil, err
		}
		body = gz
		closers = []io.Closer{gz, raw}
	}

	contentType := resp.Header().Get("Content-Type")
	mediaType, _, _ := mime.ParseMediaType(contentType)
	// a missing Content-Type is let through to the parser
	if mediaType != "" && !strings.Contains(mediaType, "text/html") && !strings.Contains(mediaType, "application/xhtml+xml") {
		for _, c := range closers {
			c.Close()
		}
		return nil, ErrNonHTML
	}

	finalURL := u.String()
	if resp.RawResponse != nil && resp.RawResponse.Request != nil {
		finalURL = resp.RawResponse.Request.URL.String()
	}
	return &Response{
		Body:        readCloser{Reader: io.LimitReader(body, h.sizeCap), closers: closers},
		FinalURL:    finalURL,
		ContentType: contentType,
		Elapsed:     time.Since(start),
	}, nil
}

type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (r readCloser) Close() error {
	var errs []error
	for _, c := range r.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
