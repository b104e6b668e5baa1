package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// CSVSource reads comma-separated files. Rows may have any number of cells.
type CSVSource struct{}

// Format returns the source name.
func (CSVSource) Format() string { return "csv" }

// Open wraps r in a streaming CSV reader.
func (CSVSource) Open(r io.Reader) (RowReader, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return &csvRows{r: cr}, nil
}

type csvRows struct {
	r *csv.Reader
}

func (c *csvRows) Next() ([]string, error) {
	rec, err := c.r.Read()
	if err == nil {
		return rec, nil
	}
	if errors.Is(err, io.EOF) {
		return nil, io.EOF
	}
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return nil, fmt.Errorf("%w: %w", ErrMalformedRow, err)
	}
	return nil, fmt.Errorf("reading CSV: %w", err)
}

func (c *csvRows) Close() error { return nil }
