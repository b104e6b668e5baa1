package exporter

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/labstack/gommon/log"

	"github.com/cleared-dev/txnapi/internal/model"
)

// Querier is the read side of the transaction store.
type Querier interface {
	QueryByFilter(ctx context.Context, f model.Filter) ([]model.Transaction, error)
}

const opExport = "exporting transactions"

// Exporter writes filtered transactions as CSV.
type Exporter struct {
	store Querier
	log   *log.Logger
}

// NewExporter creates an Exporter.
func NewExporter(store Querier, logger *log.Logger) *Exporter {
	return &Exporter{store: store, log: logger}
}

// Export queries the transactions matching f and writes them to w. It returns
// the number of transactions written.
func (e *Exporter) Export(ctx context.Context, f model.Filter, w io.Writer) (int, error) {
	txns, err := e.store.QueryByFilter(ctx, f)
	if err != nil {
		return 0, err
	}
	if err := Write(w, txns); err != nil {
		return 0, &model.DataAccessError{Op: opExport, Err: err}
	}
	e.log.Infof("[Export] wrote %d transactions", len(txns))
	return len(txns), nil
}

// ExportFile is Export into a file created (or truncated) at path.
func (e *Exporter) ExportFile(ctx context.Context, f model.Filter, path string) (n int, err error) {
	txns, err := e.store.QueryByFilter(ctx, f)
	if err != nil {
		return 0, err
	}

	out, err := os.Create(path)
	if err != nil {
		return 0, &model.DataAccessError{Op: opExport, Err: err}
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			n, err = 0, &model.DataAccessError{Op: opExport, Err: cerr}
		}
	}()

	if err := Write(out, txns); err != nil {
		return 0, &model.DataAccessError{Op: opExport, Err: fmt.Errorf("%s: %w", path, err)}
	}
	e.log.Infof("[Export] wrote %d transactions to %s", len(txns), path)
	return len(txns), nil
}
