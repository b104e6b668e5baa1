package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"

	"github.com/cleared-dev/txnapi/internal/model"
)

// Upserter merges one transaction into storage: insert when the ID is new,
// otherwise overwrite the stored status only.
type Upserter interface {
	Upsert(ctx context.Context, t model.Transaction) error
}

// Rejection records a data row that produced no transaction.
type Rejection struct {
	Row int // 1-based, header is row 1
	Err error
}

// Result summarizes one import run.
type Result struct {
	RunID    uuid.UUID
	Rows     int // data rows, header excluded
	Upserted int
	Rejected []Rejection
}

// Importer feeds parsed rows into a store in file order.
type Importer struct {
	store   Upserter
	parser  *RowParser
	sources *Registry
	log     *log.Logger
}

// NewImporter creates an Importer.
func NewImporter(store Upserter, parser *RowParser, sources *Registry, logger *log.Logger) *Importer {
	return &Importer{store: store, parser: parser, sources: sources, log: logger}
}

// Import skips the header row, then parses and upserts every following row
// in order, so a later row for the same ID wins. Rejected rows are skipped.
// A read or store failure aborts the run with a *model.DataAccessError;
// rows upserted before it stay committed.
func (im *Importer) Import(ctx context.Context, rows RowReader) (Result, error) {
	res := Result{RunID: uuid.New()}
	im.log.Infof("[Import] run %s started", res.RunID)

	line := 0
	for {
		cells, err := rows.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		line++

		if err != nil {
			if !errors.Is(err, ErrMalformedRow) {
				return res, im.fail(res, fmt.Errorf("row %d: %w", line, err))
			}
			if line > 1 {
				res.Rows++
				im.reject(&res, line, err)
			}
			continue
		}
		if line == 1 {
			continue
		}
		res.Rows++

		txn, err := im.parser.ParseRow(cells)
		if err != nil {
			im.reject(&res, line, err)
			continue
		}

		if err := im.store.Upsert(ctx, txn); err != nil {
			return res, im.fail(res, fmt.Errorf("row %d: %w", line, err))
		}
		res.Upserted++
	}

	im.log.Infof("[Import] run %s done: rows=%d upserted=%d rejected=%d",
		res.RunID, res.Rows, res.Upserted, len(res.Rejected))
	return res, nil
}

// ImportFile imports the file at path using the source registered for its
// extension.
func (im *Importer) ImportFile(ctx context.Context, path string) (Result, error) {
	src := im.sources.ForPath(path)
	if src == nil {
		return Result{}, fmt.Errorf("unsupported import file type %q", filepath.Ext(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return Result{}, &model.DataAccessError{Op: "opening import file", Err: err}
	}
	defer f.Close()

	rows, err := src.Open(f)
	if err != nil {
		return Result{}, &model.DataAccessError{Op: "reading import file", Err: fmt.Errorf("%s: %w", path, err)}
	}
	defer rows.Close()

	return im.Import(ctx, rows)
}

func (im *Importer) reject(res *Result, line int, err error) {
	im.log.Debugf("[Import] run %s: row %d rejected: %v", res.RunID, line, err)
	res.Rejected = append(res.Rejected, Rejection{Row: line, Err: err})
}

func (im *Importer) fail(res Result, err error) error {
	im.log.Errorf("[Import] run %s aborted after %d upserts: %v", res.RunID, res.Upserted, err)
	return &model.DataAccessError{Op: "importing transactions", Err: err}
}
