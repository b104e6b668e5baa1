package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/txnapi/internal/exporter"
	"github.com/cleared-dev/txnapi/internal/model"
	"github.com/cleared-dev/txnapi/internal/store"
)

func newListCommand(opts *rootOptions) *cobra.Command {
	var ff filterFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List matching transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := ff.filter()
			if err != nil {
				return err
			}

			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			txns, err := a.store.QueryByFilter(cmd.Context(), f)
			if err != nil {
				return err
			}
			if len(txns) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No transactions found.")
				return nil
			}
			return printTable(cmd.OutOrStdout(), txns)
		},
	}

	ff.register(cmd)
	return cmd
}

func newGetCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a single transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			t, ok, err := a.store.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("transaction %d not found", id)
			}
			return printTable(cmd.OutOrStdout(), []model.Transaction{t})
		},
	}
}

func newAddCommand(opts *rootOptions) *cobra.Command {
	var (
		id         int
		statusName string
		typeName   string
		client     string
		amount     string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status, ok := model.ParseStatus(statusName)
			if !ok {
				return fmt.Errorf("invalid status %q", statusName)
			}
			typ, ok := model.ParseType(typeName)
			if !ok {
				return fmt.Errorf("invalid type %q", typeName)
			}
			amt, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", amount, err)
			}

			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			t := model.Transaction{ID: id, ClientName: client, Status: status, Type: typ, Amount: amt}
			if err := a.store.Insert(cmd.Context(), t); err != nil {
				if errors.Is(err, store.ErrDuplicate) {
					return fmt.Errorf("transaction %d already exists", id)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created transaction %d\n", id)
			return nil
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "transaction id")
	cmd.Flags().StringVar(&statusName, "status", model.StatusPending.String(), "status (Pending, Completed, Cancelled)")
	cmd.Flags().StringVar(&typeName, "type", "", "type (Withdrawal, Refill)")
	cmd.Flags().StringVar(&client, "client", "", "client name")
	cmd.Flags().StringVar(&amount, "amount", "", "amount as a plain decimal, e.g. 1234.50")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func newSetStatusCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set-status <id> <status>",
		Short: "Change the status of a transaction",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			status, ok := model.ParseStatus(args[1])
			if !ok {
				return fmt.Errorf("invalid status %q", args[1])
			}

			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			t, ok, err := a.store.UpdateStatus(cmd.Context(), id, status)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("transaction %d not found", id)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Transaction %d is now %s\n", t.ID, t.Status)
			return nil
		},
	}
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid transaction id %q", s)
	}
	return id, nil
}

func printTable(w io.Writer, txns []model.Transaction) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tTYPE\tCLIENT\tAMOUNT")
	for _, t := range txns {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", t.ID, t.Status, t.Type, t.ClientName, exporter.FormatAmount(t.Amount))
	}
	return tw.Flush()
}
