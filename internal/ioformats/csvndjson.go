
package ioformats

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gocarina/gocsv"

	"review-crawler/internal/models"
)

// maxLine bounds a single NDJSON record; review bodies can be long.
const maxLine = 4 * 1024 * 1024

// WriteCleanedCSV saves rows with a header and no index column.
func WriteCleanedCSV(path string, rows []models.CleanedReview) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCleaned(f, rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func WriteCleaned(w io.Writer, rows []models.CleanedReview) error {
	if rows == nil {
		rows = []models.CleanedReview{}
	}
	return gocsv.Marshal(&rows, w)
}

// ReadCleanedCSV loads rows written by WriteCleanedCSV.
func ReadCleanedCSV(path string) ([]models.CleanedReview, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCleaned(f)
}

func ReadCleaned(r io.Reader) ([]models.CleanedReview, error) {
	var rows []models.CleanedReview
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("read cleaned csv: %w", err)
	}
	return rows, nil
}

// WriteReviewsNDJSON dumps ingested reviews, one JSON object per line.
func WriteReviewsNDJSON(path string, reviews []models.Review) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for _, r := range reviews {
		if err := enc.Encode(r); err != nil {
			f.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadReviewsNDJSON loads a dump written by WriteReviewsNDJSON. Blank
// lines are ignored; a line that does not decode is an error.
func ReadReviewsNDJSON(path string) ([]models.Review, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []models.Review
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		var r models.Review
		if err := json.Unmarshal([]byte(text), &r); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		out = append(out, r)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
