package importlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cleared-dev/txnapi/internal/importer"
)

// Entry is one row in the import log.
type Entry struct {
	Timestamp time.Time
	RunID     uuid.UUID
	Source    string
	Rows      int
	Upserted  int
	Rejected  int
	Error     string
}

// Header is the CSV header for import-log.csv.
const Header = "timestamp,run_id,source,rows,upserted,rejected,error"

const (
	numFields   = 7
	logDir      = "logs"
	logFile     = "logs/import-log.csv"
	colTime     = 0
	colRunID    = 1
	colSource   = 2
	colRows     = 3
	colUpserted = 4
	colRejected = 5
	colError    = 6
)

// FromResult builds an Entry for one import of source. runErr is the error
// returned by the import, if any.
func FromResult(at time.Time, source string, res importer.Result, runErr error) Entry {
	e := Entry{
		Timestamp: at,
		RunID:     res.RunID,
		Source:    source,
		Rows:      res.Rows,
		Upserted:  res.Upserted,
		Rejected:  len(res.Rejected),
	}
	if runErr != nil {
		e.Error = runErr.Error()
	}
	return e
}

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTime] = e.Timestamp.Format(time.RFC3339)
	if e.RunID != uuid.Nil {
		row[colRunID] = e.RunID.String()
	}
	row[colSource] = e.Source
	row[colRows] = strconv.Itoa(e.Rows)
	row[colUpserted] = strconv.Itoa(e.Upserted)
	row[colRejected] = strconv.Itoa(e.Rejected)
	row[colError] = e.Error
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTime])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTime], err)
	}

	var runID uuid.UUID
	if record[colRunID] != "" {
		runID, err = uuid.Parse(record[colRunID])
		if err != nil {
			return Entry{}, fmt.Errorf("parsing run_id %q: %w", record[colRunID], err)
		}
	}

	rows, err := strconv.Atoi(record[colRows])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing rows %q: %w", record[colRows], err)
	}
	upserted, err := strconv.Atoi(record[colUpserted])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing upserted %q: %w", record[colUpserted], err)
	}
	rejected, err := strconv.Atoi(record[colRejected])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing rejected %q: %w", record[colRejected], err)
	}

	return Entry{
		Timestamp: ts,
		RunID:     runID,
		Source:    record[colSource],
		Rows:      rows,
		Upserted:  upserted,
		Rejected:  rejected,
		Error:     record[colError],
	}, nil
}

// Append writes entries to <root>/logs/import-log.csv, creating the file and header if needed.
func Append(root string, entries []Entry) error {
	dir := filepath.Join(root, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(root, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening import log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Read returns all entries from <root>/logs/import-log.csv.
// Returns an empty slice if the file does not exist.
func Read(root string) ([]Entry, error) {
	path := filepath.Join(root, logFile)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening import log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading import log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
