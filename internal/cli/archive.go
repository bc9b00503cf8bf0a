package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/recipebox/internal/archive"
)

func (a *app) newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Write all recipes to a JSONL file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			box, err := a.openBox(cmd.Context())
			if err != nil {
				return err
			}
			defer box.Close()

			n, err := archive.Export(cmd.Context(), box, args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(a.stdout, "Exported %d recipes to %s\n", n, args[0])
			return err
		},
	}
}

func (a *app) newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Add the recipes in a JSONL file",
		Long:  "Import inserts every recipe in the file as a new recipe. Blank and malformed lines are skipped; ids in the file are ignored.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			box, err := a.openBox(cmd.Context())
			if err != nil {
				return err
			}
			defer box.Close()

			n, err := archive.Import(cmd.Context(), box, args[0])
			if err != nil {
				return fmt.Errorf("imported %d recipes before failing: %w", n, err)
			}
			_, err = fmt.Fprintf(a.stdout, "Imported %d recipes from %s\n", n, args[0])
			return err
		},
	}
}
