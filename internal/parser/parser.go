
package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"

	"review-crawler/internal/models"
)

// DefaultPayloadSelector locates the Next.js data block of a listing page.
const DefaultPayloadSelector = "script#__NEXT_DATA__"

// DefaultReviewsPath is the JSON path of the reviews array in the payload.
var DefaultReviewsPath = []string{"props", "pageProps", "reviews"}

type Parser struct {
	selector string
	path     []string
}

func New() *Parser {
	return &Parser{selector: DefaultPayloadSelector, path: DefaultReviewsPath}
}

// NewWith overrides the payload selector and JSON path.
func NewWith(selector string, path []string) *Parser {
	return &Parser{selector: selector, path: path}
}

// Extract returns the raw review objects embedded in an HTML page. Any
// missing piece (script element, valid JSON, path, array) yields an error
// wrapping models.ErrMissingPayload. Items are returned as decoded, with
// no schema checks.
func (p *Parser) Extract(r io.Reader, contentType string) ([]any, error) {
	// Decode to UTF-8 if needed
	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, r); err != nil {
		return nil, err
	}
	data := buf.Bytes()

	enc, _, _ := charset.DetermineEncoding(data, contentType)
	utf8data, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		if !utf8.Valid(data) {
			return nil, err
		}
		utf8data = data
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(utf8data))
	if err != nil {
		return nil, err
	}

	script := doc.Find(p.selector).First()
	if script.Length() == 0 {
		return nil, fmt.Errorf("%s not found: %w", p.selector, models.ErrMissingPayload)
	}
	raw := strings.TrimSpace(script.Text())
	if raw == "" {
		return nil, fmt.Errorf("%s is empty: %w", p.selector, models.ErrMissingPayload)
	}

	var payload any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("decode %s: %v: %w", p.selector, err, models.ErrMissingPayload)
	}

	node := payload
	for _, key := range p.path {
		obj, ok := node.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("path %s: %w", strings.Join(p.path, "."), models.ErrMissingPayload)
		}
		if node, ok = obj[key]; !ok {
			return nil, fmt.Errorf("path %s: %w", strings.Join(p.path, "."), models.ErrMissingPayload)
		}
	}
	items, ok := node.([]any)
	if !ok {
		return nil, fmt.Errorf("path %s is not an array: %w", strings.Join(p.path, "."), models.ErrMissingPayload)
	}
	return items, nil
}
