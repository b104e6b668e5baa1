package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/txnapi/internal/model"
)

// filterFlags holds the raw query flags shared by export and list.
type filterFlags struct {
	types  []string
	status string
	client string
}

func (ff *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&ff.types, "type", nil, "transaction type to include (repeatable: Withdrawal, Refill)")
	cmd.Flags().StringVar(&ff.status, "status", "", "only transactions with this status (Pending, Completed, Cancelled)")
	cmd.Flags().StringVar(&ff.client, "client", "", "only clients whose name contains this text (case-insensitive)")
}

// filter validates the flags and builds the query filter.
func (ff *filterFlags) filter() (model.Filter, error) {
	var f model.Filter
	for _, name := range ff.types {
		t, ok := model.ParseType(name)
		if !ok {
			return model.Filter{}, fmt.Errorf("invalid type %q", name)
		}
		f.Types = append(f.Types, t)
	}
	if ff.status != "" {
		s, ok := model.ParseStatus(ff.status)
		if !ok {
			return model.Filter{}, fmt.Errorf("invalid status %q", ff.status)
		}
		f.Status = &s
	}
	f.ClientName = ff.client
	return f, nil
}
