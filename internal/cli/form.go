package cli

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/mesh-intelligence/recipebox/pkg/types"
)

var errNameRequired = errors.New("recipe name is required")

func validateName(s string) error {
	if strings.TrimSpace(s) == "" {
		return errNameRequired
	}
	return nil
}

// stdinIsTerminal reports whether r is a terminal. Interactive forms are
// refused when input is piped.
func stdinIsTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// runRecipeForm edits f in place through a terminal form. The fields start
// with f's current values.
func runRecipeForm(a *app, title string, f *types.Fields) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Description(title).
				Placeholder("e.g., Pancakes").
				Value(&f.Name).
				Validate(validateName),

			huh.NewInput().
				Title("Category").
				Description("Optional grouping such as Breakfast or Dessert").
				Value(&f.Category),
		),
		huh.NewGroup(
			huh.NewText().
				Title("Ingredients").
				Placeholder("flour, milk, eggs...").
				CharLimit(10000).
				Value(&f.Ingredients),

			huh.NewText().
				Title("Instructions").
				CharLimit(20000).
				Value(&f.Instructions),
		),
	).WithInput(a.stdin).WithOutput(a.stderr)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return userError("cancelled")
		}
		return err
	}
	return nil
}
