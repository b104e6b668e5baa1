package exporter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/txnapi/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func lines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func TestWrite_HeaderAndRows(t *testing.T) {
	txns := []model.Transaction{
		{ID: 1, Status: model.StatusPending, Type: model.TypeWithdrawal, ClientName: "John", Amount: dec("100")},
		{ID: 2, Status: model.StatusCancelled, Type: model.TypeRefill, ClientName: "Jane", Amount: dec("1234.50")},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, txns))

	assert.Equal(t, []string{
		"TransactionId,Status,Type,ClientName,Amount",
		"1,Pending,Withdrawal,John,100.00",
		"2,Cancelled,Refill,Jane,1234.50",
	}, lines(buf.String()))
}

func TestWrite_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, nil))
	assert.Equal(t, Header+"\n", buf.String())
}

func TestEscapeField(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"John", "John"},
		{"O'Brien, Jr.", `"O'Brien, Jr."`},
		{`Say "hi"`, `"Say ""hi"""`},
		{"", ""},
		{" padded ", " padded "},
		{"two\nlines", "\"two\nlines\""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EscapeField(tt.in), "EscapeField(%q)", tt.in)
	}
}

func TestWrite_EscapesClientName(t *testing.T) {
	txns := []model.Transaction{
		{ID: 3, Status: model.StatusCompleted, Type: model.TypeRefill, ClientName: "O'Brien, Jr.", Amount: dec("1")},
		{ID: 4, Status: model.StatusCompleted, Type: model.TypeRefill, ClientName: `Say "hi"`, Amount: dec("2")},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, txns))

	got := lines(buf.String())
	require.Len(t, got, 3)
	assert.Equal(t, `3,Completed,Refill,"O'Brien, Jr.",1.00`, got[1])
	assert.Equal(t, `4,Completed,Refill,"Say ""hi""",2.00`, got[2])
}

func TestMarshalTransaction_AmountText(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"1234.50", "1234.50"},
		{"1234.5", "1234.50"},
		{"200", "200.00"},
		{"0.125", "0.125"},
		{"-3", "-3.00"},
		{"0", "0.00"},
	}
	for _, tt := range tests {
		row := MarshalTransaction(model.Transaction{Amount: dec(tt.amount)})
		assert.Equal(t, tt.want, row[colAmount], "amount %s", tt.amount)
	}
}

type errWriter struct{}

func (errWriter) Write([]byte) (int, error) { return 0, assert.AnError }

func TestWrite_SinkFailure(t *testing.T) {
	txns := make([]model.Transaction, 1000)
	for i := range txns {
		txns[i] = model.Transaction{ID: i, Amount: dec("1")}
	}
	err := Write(errWriter{}, txns)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}
