package importer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cleared-dev/txnapi/internal/model"
)

// Header is the column layout expected in import files. The first row of a
// file is always treated as a header and skipped, whatever it contains.
const Header = "TransactionId,Status,Type,ClientName,Amount"

const (
	numFields = 5
	colID     = 0
	colStatus = 1
	colType   = 2
	colClient = 3
	colAmount = 4
)

var columnNames = [numFields]string{"TransactionId", "Status", "Type", "ClientName", "Amount"}

// RejectionError explains why a row produced no transaction. It never stops
// an import.
type RejectionError struct {
	Column string
	Value  string
	Err    error
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Column, e.Value, e.Err)
}

func (e *RejectionError) Unwrap() error {
	return e.Err
}

var (
	errUnknownStatus = errors.New("unknown status")
	errUnknownType   = errors.New("unknown type")
)

// RowParser converts positional cell text into transactions.
type RowParser struct {
	numbers NumberFormat
}

// NewRowParser creates a RowParser that reads amounts in the given format.
func NewRowParser(numbers NumberFormat) *RowParser {
	return &RowParser{numbers: numbers}
}

// ParseRow converts one data row. A non-nil error is always a
// *RejectionError. Missing trailing cells read as empty text.
func (p *RowParser) ParseRow(cells []string) (model.Transaction, error) {
	cell := func(col int) string {
		if col < len(cells) {
			return cells[col]
		}
		return ""
	}

	id, err := strconv.Atoi(strings.TrimSpace(cell(colID)))
	if err != nil {
		return model.Transaction{}, reject(colID, cell(colID), err)
	}

	status, ok := model.ParseStatus(cell(colStatus))
	if !ok {
		return model.Transaction{}, reject(colStatus, cell(colStatus), errUnknownStatus)
	}

	typ, ok := model.ParseType(cell(colType))
	if !ok {
		return model.Transaction{}, reject(colType, cell(colType), errUnknownType)
	}

	amount, err := p.numbers.ParseAmount(cell(colAmount))
	if err != nil {
		return model.Transaction{}, reject(colAmount, cell(colAmount), err)
	}

	return model.Transaction{
		ID:         id,
		ClientName: cell(colClient),
		Status:     status,
		Type:       typ,
		Amount:     amount,
	}, nil
}

func reject(col int, value string, err error) *RejectionError {
	return &RejectionError{Column: columnNames[col], Value: value, Err: err}
}
