package model

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Status represents the lifecycle state of a transaction.
type Status int

const (
	StatusPending Status = iota
	StatusCompleted
	StatusCancelled
)

var statusNames = [...]string{
	StatusPending:   "Pending",
	StatusCompleted: "Completed",
	StatusCancelled: "Cancelled",
}

// String returns the member name, e.g. "Completed".
func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return "Status(" + strconv.Itoa(int(s)) + ")"
	}
	return statusNames[s]
}

// Valid reports whether s is a defined member.
func (s Status) Valid() bool {
	return s >= 0 && int(s) < len(statusNames)
}

// ParseStatus matches name case-sensitively against the member names.
func ParseStatus(name string) (Status, bool) {
	for i, n := range statusNames {
		if n == name {
			return Status(i), true
		}
	}
	return 0, false
}

// Statuses returns every defined status in declaration order.
func Statuses() []Status {
	return []Status{StatusPending, StatusCompleted, StatusCancelled}
}

// Type classifies a transaction as money leaving or entering the account.
type Type int

const (
	TypeWithdrawal Type = iota
	TypeRefill
)

var typeNames = [...]string{
	TypeWithdrawal: "Withdrawal",
	TypeRefill:     "Refill",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "Type(" + strconv.Itoa(int(t)) + ")"
	}
	return typeNames[t]
}

// Valid reports whether t is a defined member.
func (t Type) Valid() bool {
	return t >= 0 && int(t) < len(typeNames)
}

// ParseType matches name case-sensitively against the member names.
func ParseType(name string) (Type, bool) {
	for i, n := range typeNames {
		if n == name {
			return Type(i), true
		}
	}
	return 0, false
}

// Types returns every defined type in declaration order.
func Types() []Type {
	return []Type{TypeWithdrawal, TypeRefill}
}

// Transaction is a single withdrawal or refill keyed by an externally
// supplied ID.
type Transaction struct {
	ID         int
	ClientName string
	Status     Status
	Type       Type
	Amount     decimal.Decimal
}

// Filter selects transactions. Zero-valued fields impose no constraint.
type Filter struct {
	Types      []Type  // OR across members
	Status     *Status // nil = any
	ClientName string  // case-insensitive substring
}
