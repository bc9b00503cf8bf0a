// Package cli implements the recipebox command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/recipebox/internal/logging"
	"github.com/mesh-intelligence/recipebox/internal/paths"
	"github.com/mesh-intelligence/recipebox/internal/telemetry"
	"github.com/mesh-intelligence/recipebox/pkg/recipebox"
	"github.com/mesh-intelligence/recipebox/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	output    string
	logLevel  string
}

// app carries per-invocation state so commands share no package globals.
type app struct {
	flags  rootFlags
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	configDir string
	config    *viper.Viper
	logger    *slog.Logger
	telemetry *telemetry.Providers

	// isTerminal and fillForm are replaced in tests.
	isTerminal func(io.Reader) bool
	fillForm   func(a *app, title string, f *types.Fields) error
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	return &app{
		stdin:      stdin,
		stdout:     stdout,
		stderr:     stderr,
		logger:     slog.New(slog.DiscardHandler),
		isTerminal: stdinIsTerminal,
		fillForm:   runRecipeForm,
	}
}

// rootCmd creates the top-level "recipebox" command with global flags and
// all subcommands registered.
func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "recipebox",
		Short: "A local recipe store",
		Long:  "Recipebox keeps recipes in a local SQLite store and manages them\nthrough a single record access gateway.",
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: $(CWD)/.recipebox)")
	pf.StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: $(CWD)/.recipebox-db)")
	pf.StringVarP(&a.flags.output, "output", "o", outputText, "output format: text, json or yaml")
	pf.StringVar(&a.flags.logLevel, "log-level", logging.LevelWarn, "log level: debug, info, warn, error or off")

	root.AddCommand(
		a.newInitCmd(),
		a.newVersionCmd(),
		a.newListCmd(),
		a.newShowCmd(),
		a.newAddCmd(),
		a.newEditCmd(),
		a.newDeleteCmd(),
		a.newExportCmd(),
		a.newImportCmd(),
	)
	return root
}

// setup loads configuration and builds the logger and telemetry providers
// before any subcommand runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	a.configDir = configDir

	v, err := loadConfig(configDir, cmd.Root().PersistentFlags())
	if err != nil {
		return sysError(err)
	}
	a.config = v

	if err := validOutput(v.GetString(cfgKeyOutput)); err != nil {
		return err
	}
	logger, err := logging.New(a.stderr, v.GetString(cfgKeyLogLevel))
	if err != nil {
		return userError(err.Error())
	}
	a.logger = logger

	providers, err := telemetry.Init(cmd.Context(), a.stderr, "recipebox", recipebox.Version)
	if err != nil {
		return sysError(err)
	}
	a.telemetry = providers
	return nil
}

// output returns the effective output format.
func (a *app) output() string {
	if a.config == nil {
		return a.flags.output
	}
	return a.config.GetString(cfgKeyOutput)
}

// storeConfig resolves the data directory and backend for opening the store.
func (a *app) storeConfig() (types.Config, error) {
	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, a.config.GetString(cfgKeyDataDir))
	if err != nil {
		return types.Config{}, sysError(fmt.Errorf("resolve data dir: %w", err))
	}
	cfg := types.Config{
		Backend: a.config.GetString(cfgKeyBackend),
		DataDir: dataDir,
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, userError(fmt.Sprintf("invalid config: %s", err))
	}
	return cfg, nil
}

// openBox opens the recipe store. The caller must Close it.
func (a *app) openBox(ctx context.Context) (*recipebox.Box, error) {
	cfg, err := a.storeConfig()
	if err != nil {
		return nil, err
	}
	return recipebox.Open(ctx, cfg, recipebox.WithLogger(a.logger))
}

// Execute runs the root command against the process streams and returns
// the exit code.
func Execute(ctx context.Context) int {
	return run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	return newApp(stdin, stdout, stderr).execute(ctx, args)
}

func (a *app) execute(ctx context.Context, args []string) int {
	root := a.rootCmd()
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if a.telemetry != nil {
		if serr := a.telemetry.Shutdown(context.WithoutCancel(ctx)); serr != nil {
			a.logger.Warn("telemetry shutdown failed", "error", serr)
		}
	}
	if err == nil {
		return exitSuccess
	}

	fmt.Fprintln(a.stderr, "Error:", err)
	return exitCode(err)
}

// cliError carries the exit code for an error returned by a command.
type cliError struct {
	code int
	err  error
}

func (e *cliError) Error() string { return e.err.Error() }
func (e *cliError) Unwrap() error { return e.err }

func userError(msg string) error {
	return &cliError{code: exitUserError, err: errors.New(msg)}
}

func sysError(err error) error {
	return &cliError{code: exitSysError, err: err}
}

// exitCode maps an error to a process exit code. Storage and insert
// failures are system errors; everything else the user can fix.
func exitCode(err error) int {
	var ce *cliError
	switch {
	case errors.As(err, &ce):
		return ce.code
	case errors.Is(err, types.ErrStorageUnavailable), errors.Is(err, types.ErrInsertFailed):
		return exitSysError
	default:
		return exitUserError
	}
}
