// Package csvload parses the five e-commerce CSV datasets into model slices.
// Files follow the Olist export layout; extra columns are ignored and only
// the columns named below are required.
package csvload

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

const (
	timestampLayout = "2006-01-02 15:04:05"
	dateLayout      = "2006-01-02"
)

type headerIndex map[string]int

func readHeader(reader *csv.Reader, required ...string) (headerIndex, error) {
	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV header")
	}

	index := headerIndex{}
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}

	for _, col := range required {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("missing required column %q", col)
		}
	}
	return index, nil
}

func (idx headerIndex) get(record []string, column string) string {
	i, ok := idx[column]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(timestampLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
	}
	return t, nil
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

// forEachRecord drives the read loop shared by all five loaders.
func forEachRecord(reader *csv.Reader, fn func(record []string, rowNum int) error) error {
	rowNum := 1 // header is row 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("CSV read error: %v", err)
		}
		rowNum++
		if err := fn(record, rowNum); err != nil {
			return err
		}
	}
	return nil
}
