package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/recipebox/pkg/types"
)

func (a *app) newEditCmd() *cobra.Command {
	var ff fieldFlags
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Replace the fields of a recipe",
		Long: `Edit loads a recipe, applies the given flags on top of its current
values and writes all four fields back.

Example:
  recipebox edit 3 --category Dinner
  recipebox edit 3 --interactive`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			box, err := a.openBox(ctx)
			if err != nil {
				return err
			}
			defer box.Close()

			current, found, err := box.GetOne(ctx, id)
			if err != nil {
				return err
			}
			f := current.Fields
			if err := a.fill(cmd, &ff, "Recipe name", &f); err != nil {
				return err
			}
			// A missing recipe falls through to Update, which reports zero rows.
			if found {
				if err := validateName(f.Name); err != nil {
					return userError(err.Error())
				}
			}

			addr := types.Record{ID: id}
			n, err := box.Update(ctx, addr, f)
			if err != nil {
				return err
			}
			if n == 0 {
				return userError(fmt.Sprintf("%s not updated", addr))
			}

			if a.output() != outputText {
				return writeStructured(a.stdout, a.output(), types.Recipe{ID: id, Fields: f})
			}
			_, err = fmt.Fprintf(a.stdout, "Updated %s\n", addr)
			return err
		},
	}
	ff.register(cmd)
	return cmd
}
