package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/recipebox/pkg/types"
)

func (a *app) newAddCmd() *cobra.Command {
	var ff fieldFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a recipe",
		Long: `Add stores a new recipe. The name is required.

Example:
  recipebox add --name Pancakes --category Breakfast --ingredients "flour, milk, eggs"
  recipebox add --interactive`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var f types.Fields
			if err := a.fill(cmd, &ff, "Name of the new recipe (required)", &f); err != nil {
				return err
			}
			if err := validateName(f.Name); err != nil {
				return userError(err.Error())
			}

			box, err := a.openBox(cmd.Context())
			if err != nil {
				return err
			}
			defer box.Close()

			addr, err := box.Insert(cmd.Context(), types.Collection{}, f)
			if err != nil {
				return err
			}
			rec := addr.(types.Record)
			a.logger.Info("recipe added", "address", rec.String())

			if a.output() != outputText {
				return writeStructured(a.stdout, a.output(), types.Recipe{ID: rec.ID, Fields: f})
			}
			_, err = fmt.Fprintf(a.stdout, "Added %s\n", rec)
			return err
		},
	}
	ff.register(cmd)
	return cmd
}
