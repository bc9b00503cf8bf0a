package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize recipebox storage",
		Long:  "Create the configuration directory with a default config.yaml, then create the recipe store.",
		Args:  cobra.NoArgs,
		RunE:  a.runInit,
	}
}

func (a *app) runInit(cmd *cobra.Command, _ []string) error {
	if _, err := ensureDefaultConfigFile(a.configDir); err != nil {
		return sysError(err)
	}

	box, err := a.openBox(cmd.Context())
	if err != nil {
		return err
	}
	path := box.Path()
	if err := box.Close(); err != nil {
		return sysError(fmt.Errorf("close store: %w", err))
	}

	fmt.Fprintf(a.stdout, "Initialized recipe store at %s\n", path)
	return nil
}
