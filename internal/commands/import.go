package commands

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/txnapi/internal/importer"
	"github.com/cleared-dev/txnapi/internal/importlog"
)

func newImportCommand(opts *rootOptions) *cobra.Command {
	var showRejected bool

	cmd := &cobra.Command{
		Use:   "import [file...]",
		Short: "Import transactions from CSV or XLSX files",
		Long: `Import transactions from the given files. Without arguments, every
supported file in the configured import directory is imported and then moved
to its processed/ subdirectory.

Rows whose id already exists only update the stored status; new ids are
inserted. Rows that cannot be parsed are skipped and reported.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()
			return runImport(cmd, a, args, showRejected)
		},
	}

	cmd.Flags().BoolVar(&showRejected, "show-rejected", false, "print every rejected row")
	return cmd
}

func runImport(cmd *cobra.Command, a *app, args []string, showRejected bool) error {
	reg := importer.DefaultRegistry(a.cfg.Import.Workbook)
	im := importer.NewImporter(a.store, importer.NewRowParser(a.cfg.Import.Number), reg, a.log)
	out := cmd.OutOrStdout()

	importDir := a.path(a.cfg.Import.Dir)
	scanned := len(args) == 0

	paths := args
	if scanned {
		files, err := importer.Scan(importDir, reg)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			fmt.Fprintf(out, "No files to import in %s\n", importDir)
			return nil
		}
		paths = make([]string, len(files))
		for i, f := range files {
			paths[i] = f.Path
		}
	}

	var entries []importlog.Entry
	var firstErr error
	for _, path := range paths {
		res, err := im.ImportFile(cmd.Context(), path)
		entries = append(entries, importlog.FromResult(time.Now().UTC(), filepath.Base(path), res, err))
		if err != nil {
			fmt.Fprintf(out, "%s: failed: %v\n", filepath.Base(path), err)
			if firstErr == nil {
				firstErr = fmt.Errorf("importing %s: %w", path, err)
			}
			continue
		}

		printResult(out, filepath.Base(path), res, showRejected)

		if scanned {
			if err := importer.MarkProcessed(importDir, filepath.Base(path)); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}

	if err := importlog.Append(a.root, entries); err != nil {
		return fmt.Errorf("writing import log: %w", err)
	}
	return firstErr
}

func printResult(w io.Writer, name string, res importer.Result, showRejected bool) {
	fmt.Fprintf(w, "%s: %d rows, %d upserted, %d rejected\n", name, res.Rows, res.Upserted, len(res.Rejected))
	if !showRejected {
		return
	}
	for _, r := range res.Rejected {
		fmt.Fprintf(w, "  row %d: %v\n", r.Row, r.Err)
	}
}
