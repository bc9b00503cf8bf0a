package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/recipebox/pkg/types"
)

func (a *app) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all recipes sorted by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			box, err := a.openBox(cmd.Context())
			if err != nil {
				return err
			}
			defer box.Close()

			seq, err := box.List(cmd.Context())
			if err != nil {
				return err
			}
			recipes, err := types.Collect(seq)
			if err != nil {
				return err
			}
			return renderList(a.stdout, a.output(), recipes)
		},
	}
}

func (a *app) newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			box, err := a.openBox(cmd.Context())
			if err != nil {
				return err
			}
			defer box.Close()

			r, ok, err := box.GetOne(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !ok {
				return userError(fmt.Sprintf("recipe %d not found", id))
			}
			return renderRecipe(a.stdout, a.output(), r)
		},
	}
}
