// File: cmd/presets.go
package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/xkilldash9x/autoplay-cli/internal/preset"
)

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the available generator presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tDESCRIPTION\tHUMANIZED\tFOLLOW")
			for _, p := range preset.All() {
				opts, err := preset.Options(p)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%s\t%t\t%t\n", p, p.Description(), opts.Humanize, opts.Builder.Follow)
			}
			return w.Flush()
		},
	}
}
