package importer

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/txnapi/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestParseRow_Valid(t *testing.T) {
	p := NewRowParser(USNumberFormat())

	got, err := p.ParseRow([]string{"17", "Completed", "Refill", "O'Brien, Jr.", "$1,234.50"})
	require.NoError(t, err)
	assert.Equal(t, 17, got.ID)
	assert.Equal(t, model.StatusCompleted, got.Status)
	assert.Equal(t, model.TypeRefill, got.Type)
	assert.Equal(t, "O'Brien, Jr.", got.ClientName)
	assert.True(t, got.Amount.Equal(dec("1234.50")))
}

func TestParseRow_ClientNameVerbatim(t *testing.T) {
	p := NewRowParser(USNumberFormat())

	for _, name := range []string{"", "  spaced  ", `Say "hi"`, "1234"} {
		got, err := p.ParseRow([]string{"1", "Pending", "Withdrawal", name, "1"})
		require.NoError(t, err, "client %q", name)
		assert.Equal(t, name, got.ClientName)
	}
}

func TestParseRow_IDWhitespace(t *testing.T) {
	p := NewRowParser(USNumberFormat())

	got, err := p.ParseRow([]string{" 42 ", "Pending", "Withdrawal", "x", "1"})
	require.NoError(t, err)
	assert.Equal(t, 42, got.ID)
}

func TestParseRow_Rejections(t *testing.T) {
	p := NewRowParser(USNumberFormat())

	tests := []struct {
		name   string
		cells  []string
		column string
	}{
		{"non-numeric id", []string{"abc", "Pending", "Refill", "x", "1"}, "TransactionId"},
		{"decimal id", []string{"1.5", "Pending", "Refill", "x", "1"}, "TransactionId"},
		{"empty id", []string{"", "Pending", "Refill", "x", "1"}, "TransactionId"},
		{"lowercase status", []string{"1", "pending", "Refill", "x", "1"}, "Status"},
		{"unknown status", []string{"1", "Refunded", "Refill", "x", "1"}, "Status"},
		{"numeric status", []string{"1", "0", "Refill", "x", "1"}, "Status"},
		{"unknown type", []string{"1", "Pending", "Deposit", "x", "1"}, "Type"},
		{"uppercase type", []string{"1", "Pending", "REFILL", "x", "1"}, "Type"},
		{"bad amount", []string{"1", "Pending", "Refill", "x", "lots"}, "Amount"},
		{"missing amount", []string{"1", "Pending", "Refill", "x"}, "Amount"},
		{"empty row", []string{}, "TransactionId"},
	}
	for _, tt := range tests {
		_, err := p.ParseRow(tt.cells)
		require.Error(t, err, tt.name)

		var rej *RejectionError
		require.True(t, errors.As(err, &rej), tt.name)
		assert.Equal(t, tt.column, rej.Column, tt.name)
	}
}

func TestParseRow_ExtraCellsIgnored(t *testing.T) {
	p := NewRowParser(USNumberFormat())

	got, err := p.ParseRow([]string{"5", "Cancelled", "Withdrawal", "Bob", "9.99", "extra", "cells"})
	require.NoError(t, err)
	assert.Equal(t, 5, got.ID)
	assert.True(t, got.Amount.Equal(dec("9.99")))
}
