package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yildizm/CrowdGuard/internal/analysis"
)

func newEnginesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "engines",
		Short: "List available analysis engines",
		Long: `List the analysis engines that can be selected with pipeline.engine.

The active engine is marked with an asterisk.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			active := GetGlobalConfig().Pipeline.Engine
			out := cmd.OutOrStdout()

			names := analysis.DefaultRegistry().Names()
			fmt.Fprintf(out, "Found %d analysis engines:\n\n", len(names))
			for _, name := range names {
				marker := " "
				if name == active {
					marker = "*"
				}
				fmt.Fprintf(out, "  %s %s\n", marker, name)
			}
			return nil
		},
	}
}
