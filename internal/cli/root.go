// Package cli implements the dishes command-line interface.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/dishes/internal/httpserver"
	"github.com/mesh-intelligence/dishes/internal/logging"
	"github.com/mesh-intelligence/dishes/internal/menu"
	"github.com/mesh-intelligence/dishes/internal/paths"
	"github.com/mesh-intelligence/dishes/internal/store"
	"github.com/mesh-intelligence/dishes/pkg/types"
)

// rootFlags holds the global flag values of one invocation.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
}

// app is the state shared by the subcommands of one invocation.
type app struct {
	flags     rootFlags
	configDir string
	cfg       *viper.Viper
}

// NewRootCmd creates the top-level "dishes" command with its subcommands.
func NewRootCmd() *cobra.Command {
	return newApp().rootCmd()
}

func newApp() *app { return &app{} }

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "dishes",
		Short: "Manage a menu and draw random orders from it",
		Long: "dishes keeps a menu of unique dish names and picks random,\n" +
			"non-repeating orders from it. It runs as a CLI or as an HTTP server.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	pf.StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: $(CWD)/.dishes-db)")
	pf.BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(
		a.newInitCmd(),
		a.newListCmd(),
		a.newAddCmd(),
		a.newRemoveCmd(),
		a.newRenameCmd(),
		a.newSampleCmd(),
		a.newServeCmd(),
		a.newVersionCmd(),
	)
	return root
}

// setup resolves directories, loads config.yaml and installs the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	dir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysErr(fmt.Errorf("resolve config dir: %w", err))
	}
	cfg, err := loadConfig(dir)
	if err != nil {
		return sysErr(err)
	}
	a.configDir = dir
	a.cfg = cfg

	logging.Init(cfg.GetString(cfgKeyLogLevel), cfg.GetString(cfgKeyLogFormat), cmd.ErrOrStderr())
	return nil
}

func (a *app) dataDir() (string, error) {
	dir, err := paths.ResolveDataDir(a.flags.dataDir, a.cfg.GetString(cfgKeyDataDir))
	if err != nil {
		return "", sysErr(fmt.Errorf("resolve data dir: %w", err))
	}
	return dir, nil
}

// openMenu opens the configured store and loads the menu from it. The
// caller must Close the returned store.
func (a *app) openMenu(ctx context.Context, opts ...menu.Option) (*menu.Service, types.Store, error) {
	dataDir, err := a.dataDir()
	if err != nil {
		return nil, nil, err
	}

	cfg := storeConfig(a.cfg, dataDir)
	st, err := store.Open(ctx, cfg)
	if err != nil {
		if isConfigError(err) {
			return nil, nil, &exitError{code: exitUserError, err: err}
		}
		return nil, nil, sysErr(err)
	}

	svc, err := menu.New(ctx, st, opts...)
	if err != nil {
		_ = st.Close()
		return nil, nil, sysErr(err)
	}
	return svc, st, nil
}

func isConfigError(err error) bool {
	return errors.Is(err, types.ErrBackendEmpty) ||
		errors.Is(err, types.ErrBackendUnknown) ||
		errors.Is(err, types.ErrDSNRequired) ||
		errors.Is(err, types.ErrRedisURLEmpty)
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return sysErr(fmt.Errorf("encode output: %w", err))
	}
	return nil
}

// Execute runs the CLI with the process arguments and exits.
func Execute() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one invocation and returns its exit code. Errors go to
// stderr, or to stdout as a failure envelope in --json mode.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := newApp()
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return exitSuccess
	}

	if a.flags.jsonMode {
		_ = printJSON(stdout, httpserver.Failure(err.Error(), menu.IsRefreshRequired(err)))
	} else {
		fmt.Fprintln(stderr, "dishes:", err)
	}
	return exitCode(err)
}
