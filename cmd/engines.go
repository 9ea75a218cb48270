package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stencilworks/stencil/internal/engine"
)

var enginesCmd = &cobra.Command{
	Use:   "engines",
	Short: "List available template engines",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry := newRegistry()
		for _, name := range registry.Names() {
			if name == engine.DefaultEngine {
				fmt.Fprintln(cmd.OutOrStdout(), name+" (default)")
				continue
			}
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(enginesCmd)
}
