package exporter

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/txnapi/internal/model"
)

// Header is the first line of every export.
const Header = "TransactionId,Status,Type,ClientName,Amount"

const (
	numFields = 5
	colID     = 0
	colStatus = 1
	colType   = 2
	colClient = 3
	colAmount = 4
)

// minAmountScale keeps "200" exporting as "200.00".
const minAmountScale = 2

// Write writes the header and one line per transaction, LF-terminated.
func Write(w io.Writer, txns []model.Transaction) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString(Header + "\n"); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	var line strings.Builder
	for i, t := range txns {
		line.Reset()
		for col, field := range MarshalTransaction(t) {
			if col > 0 {
				line.WriteByte(',')
			}
			line.WriteString(EscapeField(field))
		}
		line.WriteByte('\n')
		if _, err := bw.WriteString(line.String()); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return bw.Flush()
}

// MarshalTransaction converts a Transaction to unescaped field text.
func MarshalTransaction(t model.Transaction) []string {
	row := make([]string, numFields)
	row[colID] = strconv.Itoa(t.ID)
	row[colStatus] = t.Status.String()
	row[colType] = t.Type.String()
	row[colClient] = t.ClientName
	row[colAmount] = FormatAmount(t.Amount)
	return row
}

// FormatAmount renders d as plain decimal text with at least two fraction
// digits, keeping any finer precision.
func FormatAmount(d decimal.Decimal) string {
	scale := -d.Exponent()
	if scale < minAmountScale {
		scale = minAmountScale
	}
	return d.StringFixed(scale)
}

// EscapeField quotes a field containing a comma, a double quote or a line
// break, doubling any embedded quotes. Other fields are returned unchanged.
func EscapeField(field string) string {
	if !strings.ContainsAny(field, ",\"\r\n") {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
