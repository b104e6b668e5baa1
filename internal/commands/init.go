package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/txnapi/internal/config"
	"github.com/cleared-dev/txnapi/internal/store"
)

func newInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new txnapi project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			if err := runInit(absDir); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized txnapi project at %s\n", absDir)
			return nil
		},
	}
	return cmd
}

func runInit(dir string) error {
	cfg := config.Default()

	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists", cfgPath)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking config: %w", err)
	}

	// Create directory structure.
	dirs := []string{
		cfg.Import.Dir,
		filepath.Join(cfg.Import.Dir, "processed"),
		"logs",
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Create the database and schema.
	st, err := store.Open(filepath.Join(dir, cfg.Database.Path))
	if err != nil {
		return fmt.Errorf("creating database: %w", err)
	}
	if err := st.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}

	gitignore := cfg.Database.Path + "\n" + cfg.Export.Path + "\n.env\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	return nil
}
