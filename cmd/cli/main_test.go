package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"review-crawler/internal/ioformats"
	"review-crawler/internal/models"
)

const pageTemplate = `<html><head><script id="__NEXT_DATA__" type="application/json">
{"props":{"pageProps":{"reviews":[
 {"title":"Page %[1]s","rating":5,"dates":{"experiencedDate":"2024-0%[1]s-10T00:00:00.000Z"},"text":"livraison rapide, excellent"},
 {"title":"Doublon","rating":1,"dates":{"experiencedDate":"2024-01-05T00:00:00.000Z"},"text":"colis perdu"},
 {"title":42}
]}}}
</script></head><body></body></html>`

func writeConfig(t *testing.T, dir, baseURL string) string {
	t.Helper()
	cfg := fmt.Sprintf(`
app_env: production
scrape:
  base_url: %s
  pages: 3
  delay: 0s
output:
  csv: %s
  chart: %s
  raw: %s
  metrics_file: %s
analysis:
  top_n: 5
`, baseURL,
		filepath.Join(dir, "cleaned.csv"),
		filepath.Join(dir, "viz.png"),
		filepath.Join(dir, "raw.ndjson"),
		filepath.Join(dir, "reviews.prom"))
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestRunCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		if page == "2" {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, pageTemplate, page)
	}))
	defer srv.Close()

	dir := t.TempDir()
	cfg := writeConfig(t, dir, srv.URL+"/review/www.cdiscount.com")

	out, logs, err := execute(t, "run", "--config", cfg)
	require.NoError(t, err, logs)
	assert.Contains(t, logs, "Data saved to "+filepath.Join(dir, "cleaned.csv"))
	assert.Contains(t, logs, "page skipped")

	raw, err := ioformats.ReadReviewsNDJSON(filepath.Join(dir, "raw.ndjson"))
	require.NoError(t, err)
	assert.Len(t, raw, 4, "two good reviews from pages 1 and 3")

	rows, err := ioformats.ReadCleanedCSV(filepath.Join(dir, "cleaned.csv"))
	require.NoError(t, err)
	require.Len(t, rows, 3, "the repeated review is dropped")
	assert.Equal(t, "Page 1", rows[0].Title)
	assert.Equal(t, models.Positive, rows[0].Sentiment)
	assert.Equal(t, "Shipping", rows[0].Category)
	assert.Equal(t, "Page 3", rows[2].Title)

	for _, name := range []string{"viz.png", "reviews.prom"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
	prom, err := os.ReadFile(filepath.Join(dir, "reviews.prom"))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(prom), "reviews_cleaned_rows 3"))

	assert.Contains(t, out, "livraison")
	assert.Contains(t, out, "2024-01")
	assert.Contains(t, out, "Pages attempted")
}

func TestProcessCommand(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, "http://unused.invalid")
	input := filepath.Join(dir, "input.ndjson")
	require.NoError(t, ioformats.WriteReviewsNDJSON(input, []models.Review{
		{Title: "A", Rating: 2, Date: "2024-02-01T00:00:00.000Z", Body: "bof", Sentiment: models.Positive, Category: models.Uncategorized},
		{Title: "B", Rating: 4, Date: "No Date", Body: "ok", Sentiment: models.Neutral, Category: "Marketplace"},
	}))

	_, logs, err := execute(t, "process", "--input", input, "--config", cfg)
	require.NoError(t, err, logs)

	rows, err := ioformats.ReadCleanedCSV(filepath.Join(dir, "cleaned.csv"))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, models.Neutral, rows[0].Sentiment, "rating 2 with neutral text")
	assert.Equal(t, models.Positive, rows[1].Sentiment)
	assert.False(t, rows[1].Date.Valid)
}

func TestProcessRequiresInput(t *testing.T) {
	_, _, err := execute(t, "process")
	assert.ErrorContains(t, err, "input")
}
