package model

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		name string
		want Status
		ok   bool
	}{
		{"Pending", StatusPending, true},
		{"Completed", StatusCompleted, true},
		{"Cancelled", StatusCancelled, true},
		{"completed", 0, false},
		{"PENDING", 0, false},
		{" Pending", 0, false},
		{"1", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseStatus(tt.name)
		assert.Equal(t, tt.ok, ok, "ParseStatus(%q)", tt.name)
		if tt.ok {
			assert.Equal(t, tt.want, got, "ParseStatus(%q)", tt.name)
		}
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		name string
		want Type
		ok   bool
	}{
		{"Withdrawal", TypeWithdrawal, true},
		{"Refill", TypeRefill, true},
		{"refill", 0, false},
		{"Deposit", 0, false},
		{"0", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseType(tt.name)
		assert.Equal(t, tt.ok, ok, "ParseType(%q)", tt.name)
		if tt.ok {
			assert.Equal(t, tt.want, got, "ParseType(%q)", tt.name)
		}
	}
}

func TestEnumStringRoundTrip(t *testing.T) {
	for _, s := range Statuses() {
		got, ok := ParseStatus(s.String())
		require.True(t, ok, s.String())
		assert.Equal(t, s, got)
		assert.True(t, s.Valid())
	}
	for _, typ := range Types() {
		got, ok := ParseType(typ.String())
		require.True(t, ok, typ.String())
		assert.Equal(t, typ, got)
		assert.True(t, typ.Valid())
	}
}

func TestUndefinedMembers(t *testing.T) {
	assert.False(t, Status(7).Valid())
	assert.Equal(t, "Status(7)", Status(7).String())
	assert.False(t, Type(-1).Valid())
	assert.Equal(t, "Type(-1)", Type(-1).String())
}

func TestDataAccessError(t *testing.T) {
	err := fmt.Errorf("outer: %w", &DataAccessError{Op: "importing transactions", Err: io.ErrUnexpectedEOF})

	var dae *DataAccessError
	require.True(t, errors.As(err, &dae))
	assert.Equal(t, "importing transactions", dae.Op)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Equal(t, "outer: importing transactions: unexpected EOF", err.Error())
}
