package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/dishes/internal/menu"
	"github.com/mesh-intelligence/dishes/pkg/types"
)

type initResult struct {
	ConfigFile string `json:"config_file"`
	DataDir    string `json:"data_dir"`
	Backend    string `json:"backend"`
	Dishes     int    `json:"dishes"`
}

func (a *app) newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration and storage",
		Long: `Init creates the config directory with a default config.yaml, opens the
configured backend, and seeds the default menu into an empty store when
seed_defaults is true. Running it again is safe.`,
		Args: cobra.NoArgs,
		RunE: a.runInit,
	}
}

func (a *app) runInit(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	var opts []menu.Option
	if a.cfg.GetBool(cfgKeySeedDefaults) {
		opts = append(opts, menu.WithSeed(types.DefaultMenu))
	}

	svc, st, err := a.openMenu(ctx, opts...)
	if err != nil {
		return err
	}
	if err := st.Close(); err != nil {
		return sysErr(fmt.Errorf("finalize storage: %w", err))
	}

	dataDir, err := a.dataDir()
	if err != nil {
		return err
	}
	res := initResult{
		ConfigFile: filepath.Join(a.configDir, configFileExt),
		DataDir:    dataDir,
		Backend:    a.cfg.GetString(cfgKeyBackend),
		Dishes:     svc.Count(),
	}

	if a.flags.jsonMode {
		return printJSON(cmd.OutOrStdout(), res)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "dishes initialized")
	fmt.Fprintln(out, "  config: ", res.ConfigFile)
	fmt.Fprintln(out, "  data:   ", res.DataDir)
	fmt.Fprintln(out, "  backend:", res.Backend)
	fmt.Fprintln(out, "  dishes: ", res.Dishes)
	return nil
}
