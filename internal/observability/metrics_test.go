package observability_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"review-crawler/internal/observability"
)

func TestObserveAndTextfile(t *testing.T) {
	reg := observability.InitRegistry()

	before := testutil.ToFloat64(observability.PagesTotal.WithLabelValues("ok"))
	observability.ObservePage("ok")
	observability.ObserveItem("ingested")
	observability.ObserveFetch(12 * time.Millisecond)
	observability.SetCleanedRows(7)

	if got := testutil.ToFloat64(observability.PagesTotal.WithLabelValues("ok")); got != before+1 {
		t.Fatalf("pages_total{ok}: want %v, got %v", before+1, got)
	}
	if got := testutil.ToFloat64(observability.CleanedRows); got != 7 {
		t.Fatalf("cleaned_rows: want 7, got %v", got)
	}

	path := filepath.Join(t.TempDir(), "reviews.prom")
	if err := observability.WriteTextfile(path, reg); err != nil {
		t.Fatalf("write textfile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	if !strings.Contains(string(data), "reviews_pages_total") {
		t.Fatalf("expected reviews_pages_total in output")
	}

	if err := observability.WriteTextfile("", reg); err != nil {
		t.Fatalf("empty path should be a no-op: %v", err)
	}
}
