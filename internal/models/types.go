
package models

import (
	"strings"
	"time"
)

type Sentiment string

const (
	Positive Sentiment = "Positive"
	Neutral  Sentiment = "Neutral"
	Negative Sentiment = "Negative"
)

const Uncategorized = "Uncategorized"

// Defaults applied to review fields missing from the scraped payload.
const (
	DefaultTitle = "No Title"
	DefaultDate  = "No Date"
	DefaultBody  = "No Content"
)

// Review is one scraped entry, annotated at ingestion time.
type Review struct {
	Title     string    `json:"title"`
	Rating    int       `json:"rating"`
	Date      string    `json:"date"`
	Body      string    `json:"body"`
	Sentiment Sentiment `json:"sentiment"`
	Category  string    `json:"category"`
}

type CleanedReview struct {
	Title       string    `csv:"title"`
	Rating      int       `csv:"rating"`
	Date        NullTime  `csv:"date"`
	Body        string    `csv:"body"`
	Sentiment   Sentiment `csv:"sentiment"`
	Category    string    `csv:"category"`
	MonthPeriod NullMonth `csv:"month_year"`
	Satisfied   bool      `csv:"satisfied"`
}

const (
	DateLayout  = "2006-01-02 15:04:05"
	MonthLayout = "2006-01"
)

// NullTime is a naive timestamp that may be missing. Missing values
// render as the empty string in CSV.
type NullTime struct {
	Time  time.Time
	Valid bool
}

func (n NullTime) MarshalCSV() (string, error) {
	if !n.Valid {
		return "", nil
	}
	return n.Time.Format(DateLayout), nil
}

func (n *NullTime) UnmarshalCSV(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		*n = NullTime{}
		return nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return err
	}
	*n = NullTime{Time: t, Valid: true}
	return nil
}

// NullMonth is a calendar month bucket, stored as its first instant.
type NullMonth struct {
	Month time.Time
	Valid bool
}

func MonthOf(t NullTime) NullMonth {
	if !t.Valid {
		return NullMonth{}
	}
	y, m, _ := t.Time.Date()
	return NullMonth{Month: time.Date(y, m, 1, 0, 0, 0, 0, time.UTC), Valid: true}
}

func (n NullMonth) MarshalCSV() (string, error) {
	if !n.Valid {
		return "", nil
	}
	return n.Month.Format(MonthLayout), nil
}

func (n *NullMonth) UnmarshalCSV(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		*n = NullMonth{}
		return nil
	}
	t, err := time.Parse(MonthLayout, s)
	if err != nil {
		return err
	}
	*n = NullMonth{Month: t, Valid: true}
	return nil
}

type KeywordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

type MonthlyAggregate struct {
	Month         time.Time `json:"month"`
	AverageRating float64   `json:"averageRating"`
	CommentCount  int       `json:"commentCount"`
}

type SkipReason string

const (
	SkipTransportFailure SkipReason = "transport_failure"
	SkipMissingPayload   SkipReason = "missing_payload"
	SkipMalformedItem    SkipReason = "malformed_item"
)

// ItemResult holds either an extracted review or the reason it was skipped.
type ItemResult struct {
	Review Review
	Skip   SkipReason
	Err    error
}

func (r ItemResult) Skipped() bool { return r.Skip != "" }

type RunReport struct {
	RunID          string             `json:"runId"`
	StartedAt      time.Time          `json:"startedAt"`
	FinishedAt     time.Time          `json:"finishedAt"`
	PagesAttempted int                `json:"pagesAttempted"`
	PagesSkipped   map[SkipReason]int `json:"pagesSkipped"`
	ItemsIngested  int                `json:"itemsIngested"`
	ItemsSkipped   map[SkipReason]int `json:"itemsSkipped"`
	Canceled       bool               `json:"canceled,omitempty"`
}

func (r RunReport) TotalPagesSkipped() int {
	n := 0
	for _, v := range r.PagesSkipped {
		n += v
	}
	return n
}

func (r RunReport) TotalItemsSkipped() int {
	n := 0
	for _, v := range r.ItemsSkipped {
		n += v
	}
	return n
}
