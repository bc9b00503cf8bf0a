package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/recipebox/pkg/types"
)

func (a *app) newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a recipe",
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

			addr := types.Record{ID: id}
			n, err := box.Delete(cmd.Context(), addr)
			if err != nil {
				return err
			}
			if n == 0 {
				return userError(fmt.Sprintf("%s not deleted", addr))
			}
			_, err = fmt.Fprintf(a.stdout, "Deleted %s\n", addr)
			return err
		},
	}
}
