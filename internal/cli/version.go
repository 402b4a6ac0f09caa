package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/dishes/internal/version"
)

const modulePath = "github.com/mesh-intelligence/dishes"

func (a *app) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the dishes version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := version.Get()
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), info)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "dishes v%s (%s, built %s, %s)\nmodule: %s\n",
				info.Version, info.Commit, info.BuildTime, info.GoVersion, modulePath)
			return nil
		},
	}
}
