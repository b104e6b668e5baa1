package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/txnapi/internal/exporter"
)

func newExportCommand(opts *rootOptions) *cobra.Command {
	var (
		ff     filterFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export matching transactions to CSV",
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

			exp := exporter.NewExporter(a.store, a.log)

			if output == "-" {
				_, err := exp.Export(cmd.Context(), f, cmd.OutOrStdout())
				return err
			}

			path := output
			if path == "" {
				path = a.cfg.Export.Path
			}
			path = a.path(path)

			n, err := exp.ExportFile(cmd.Context(), f, path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d transactions to %s\n", n, path)
			return nil
		},
	}

	ff.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, or - for stdout (default: export.path from config)")
	return cmd
}
