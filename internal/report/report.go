// Package report aggregates cleaned reviews per month and renders them.
package report

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"sort"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"review-crawler/internal/models"
)

const (
	ChartTitle  = "Ratings and Comments Evolution"
	RatingLabel = "Average Rating per Month"
	CountLabel  = "Number of Comments per Month"
)

var (
	ratingColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	countColor  = color.RGBA{R: 255, G: 165, A: 255}
)

// Report holds the two monthly series, both sorted by month.
type Report struct {
	AverageRating []models.MonthlyAggregate
	CommentCount  []models.MonthlyAggregate
}

// Build groups rows by month. Rows without a month are left out.
func Build(rows []models.CleanedReview) Report {
	type acc struct {
		sum   int
		count int
	}
	groups := map[time.Time]*acc{}
	for _, r := range rows {
		if !r.MonthPeriod.Valid {
			continue
		}
		g, ok := groups[r.MonthPeriod.Month]
		if !ok {
			g = &acc{}
			groups[r.MonthPeriod.Month] = g
		}
		g.sum += r.Rating
		g.count++
	}

	months := make([]time.Time, 0, len(groups))
	for m := range groups {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	var rep Report
	for _, m := range months {
		g := groups[m]
		avg := float64(g.sum) / float64(g.count)
		rep.AverageRating = append(rep.AverageRating, models.MonthlyAggregate{Month: m, AverageRating: avg, CommentCount: g.count})
		rep.CommentCount = append(rep.CommentCount, models.MonthlyAggregate{Month: m, AverageRating: avg, CommentCount: g.count})
	}
	return rep
}

// Render draws both series on a shared time axis and saves the chart.
// The image format follows the file extension.
func Render(rep Report, path string) error {
	if len(rep.AverageRating) == 0 && len(rep.CommentCount) == 0 {
		return fmt.Errorf("render %s: %w", path, models.ErrNoData)
	}

	p := plot.New()
	p.Title.Text = ChartTitle
	p.X.Label.Text = "Time"
	p.Y.Label.Text = "Values"
	p.X.Tick.Marker = plot.TimeTicks{Format: models.MonthLayout}
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	ratings := make(plotter.XYs, len(rep.AverageRating))
	for i, a := range rep.AverageRating {
		ratings[i].X = float64(a.Month.Unix())
		ratings[i].Y = a.AverageRating
	}
	counts := make(plotter.XYs, len(rep.CommentCount))
	for i, a := range rep.CommentCount {
		counts[i].X = float64(a.Month.Unix())
		counts[i].Y = float64(a.CommentCount)
	}

	if err := addSeries(p, RatingLabel, ratings, ratingColor, draw.CircleGlyph{}); err != nil {
		return err
	}
	if err := addSeries(p, CountLabel, counts, countColor, draw.CrossGlyph{}); err != nil {
		return err
	}
	return p.Save(12*vg.Inch, 6*vg.Inch, path)
}

func addSeries(p *plot.Plot, name string, xys plotter.XYs, c color.Color, shape draw.GlyphDrawer) error {
	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return fmt.Errorf("series %q: %w", name, err)
	}
	line.Color = c
	points.Color = c
	points.Shape = shape
	p.Add(line, points)
	p.Legend.Add(name, line, points)
	return nil
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

func PrintKeywords(w io.Writer, kws []models.KeywordCount) {
	t := newTable(w)
	t.SetTitle("Top keywords")
	t.AppendHeader(table.Row{"#", "Word", "Count"})
	for i, k := range kws {
		t.AppendRow(table.Row{i + 1, k.Word, k.Count})
	}
	t.Render()
}

func PrintMonthly(w io.Writer, rep Report) {
	t := newTable(w)
	t.SetTitle("Monthly evolution")
	t.AppendHeader(table.Row{"Month", "Average rating", "Comments"})
	for i, a := range rep.AverageRating {
		count := 0
		if i < len(rep.CommentCount) {
			count = rep.CommentCount[i].CommentCount
		}
		t.AppendRow(table.Row{a.Month.Format(models.MonthLayout), fmt.Sprintf("%.2f", a.AverageRating), count})
	}
	t.Render()
}

func PrintRun(w io.Writer, run models.RunReport) {
	t := newTable(w)
	t.SetTitle("Run " + run.RunID)
	t.AppendRows([]table.Row{
		{"Pages attempted", run.PagesAttempted},
		{"Pages skipped (transport)", run.PagesSkipped[models.SkipTransportFailure]},
		{"Pages skipped (no payload)", run.PagesSkipped[models.SkipMissingPayload]},
		{"Reviews ingested", run.ItemsIngested},
		{"Reviews skipped (malformed)", run.ItemsSkipped[models.SkipMalformedItem]},
		{"Duration", run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond)},
	})
	t.Render()
}
