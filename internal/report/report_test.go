package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"review-crawler/internal/models"
)

func row(rating int, y int, m time.Month) models.CleanedReview {
	d := models.NullTime{Time: time.Date(y, m, 10, 0, 0, 0, 0, time.UTC), Valid: true}
	return models.CleanedReview{Rating: rating, Date: d, MonthPeriod: models.MonthOf(d)}
}

func TestBuildGroupsAndSortsMonths(t *testing.T) {
	rows := []models.CleanedReview{
		row(4, 2024, time.February),
		row(2, 2024, time.January),
		row(5, 2024, time.February),
		{Rating: 1},
		row(3, 2023, time.December),
	}
	rep := Build(rows)
	require.Len(t, rep.AverageRating, 3)
	require.Len(t, rep.CommentCount, 3)

	want := []struct {
		month string
		avg   float64
		count int
	}{
		{"2023-12", 3, 1},
		{"2024-01", 2, 1},
		{"2024-02", 4.5, 2},
	}
	for i, w := range want {
		assert.Equal(t, w.month, rep.AverageRating[i].Month.Format(models.MonthLayout))
		assert.InDelta(t, w.avg, rep.AverageRating[i].AverageRating, 1e-9)
		assert.Equal(t, w.count, rep.CommentCount[i].CommentCount)
	}
}

func TestBuildEmpty(t *testing.T) {
	rep := Build([]models.CleanedReview{{Rating: 5}})
	assert.Empty(t, rep.AverageRating)
	assert.Empty(t, rep.CommentCount)
}

func TestRenderWritesImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viz.png")
	rep := Build([]models.CleanedReview{row(4, 2024, time.January), row(2, 2024, time.February)})
	require.NoError(t, Render(rep, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRenderNoData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viz.png")
	err := Render(Report{}, path)
	assert.ErrorIs(t, err, models.ErrNoData)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestPrintTables(t *testing.T) {
	var buf bytes.Buffer
	PrintKeywords(&buf, []models.KeywordCount{{Word: "livraison", Count: 12}, {Word: "colis", Count: 7}})
	out := buf.String()
	assert.Contains(t, out, "livraison")
	assert.Contains(t, out, "12")

	buf.Reset()
	PrintMonthly(&buf, Build([]models.CleanedReview{row(4, 2024, time.March), row(5, 2024, time.March)}))
	out = buf.String()
	assert.Contains(t, out, "2024-03")
	assert.Contains(t, out, "4.50")

	buf.Reset()
	PrintRun(&buf, models.RunReport{
		RunID:          "01TEST",
		PagesAttempted: 3,
		PagesSkipped:   map[models.SkipReason]int{models.SkipTransportFailure: 1},
		ItemsIngested:  40,
	})
	out = buf.String()
	assert.Contains(t, out, "01TEST")
	assert.Contains(t, out, "40")
}
