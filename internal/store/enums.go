package store

import (
	"fmt"

	"github.com/cleared-dev/txnapi/internal/model"
)

// Column values for the enum fields. These strings are the storage contract
// and must not change with the Go identifiers.
var (
	statusColumn = map[model.Status]string{
		model.StatusPending:   "Pending",
		model.StatusCompleted: "Completed",
		model.StatusCancelled: "Cancelled",
	}
	typeColumn = map[model.Type]string{
		model.TypeWithdrawal: "Withdrawal",
		model.TypeRefill:     "Refill",
	}

	statusFromColumn = invert(statusColumn)
	typeFromColumn   = invert(typeColumn)
)

func invert[K comparable](m map[K]string) map[string]K {
	out := make(map[string]K, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}

func encodeStatus(s model.Status) (string, error) {
	v, ok := statusColumn[s]
	if !ok {
		return "", fmt.Errorf("unmapped status %v", s)
	}
	return v, nil
}

func encodeType(t model.Type) (string, error) {
	v, ok := typeColumn[t]
	if !ok {
		return "", fmt.Errorf("unmapped type %v", t)
	}
	return v, nil
}

func decodeStatus(v string) (model.Status, error) {
	s, ok := statusFromColumn[v]
	if !ok {
		return 0, fmt.Errorf("unknown status column value %q", v)
	}
	return s, nil
}

func decodeType(v string) (model.Type, error) {
	t, ok := typeFromColumn[v]
	if !ok {
		return 0, fmt.Errorf("unknown type column value %q", v)
	}
	return t, nil
}
