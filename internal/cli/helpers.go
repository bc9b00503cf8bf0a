package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/recipebox/pkg/types"
)

// parseID parses a recipe id argument. Non-positive ids parse; the gateway
// rejects them as unsupported addresses.
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, userError(fmt.Sprintf("invalid recipe id %q", s))
	}
	return id, nil
}

// fieldFlags binds the four recipe field flags to a command.
type fieldFlags struct {
	values      types.Fields
	interactive bool
}

func (ff *fieldFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&ff.values.Name, "name", "", "recipe name")
	fs.StringVar(&ff.values.Category, "category", "", "recipe category")
	fs.StringVar(&ff.values.Ingredients, "ingredients", "", "ingredients")
	fs.StringVar(&ff.values.Instructions, "instructions", "", "instructions")
	fs.BoolVarP(&ff.interactive, "interactive", "i", false, "fill in the recipe with a terminal form")
}

// overlay copies every flag the user set onto f.
func (ff *fieldFlags) overlay(cmd *cobra.Command, f *types.Fields) {
	fs := cmd.Flags()
	if fs.Changed("name") {
		f.Name = ff.values.Name
	}
	if fs.Changed("category") {
		f.Category = ff.values.Category
	}
	if fs.Changed("ingredients") {
		f.Ingredients = ff.values.Ingredients
	}
	if fs.Changed("instructions") {
		f.Instructions = ff.values.Instructions
	}
}

// fill applies flags to f and, with --interactive, runs the form seeded
// with the result.
func (a *app) fill(cmd *cobra.Command, ff *fieldFlags, title string, f *types.Fields) error {
	ff.overlay(cmd, f)
	if !ff.interactive {
		return nil
	}
	if !a.isTerminal(a.stdin) {
		return userError("--interactive requires a terminal on stdin")
	}
	return a.fillForm(a, title, f)
}
