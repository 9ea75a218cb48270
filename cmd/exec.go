package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stencilworks/stencil/internal/execx"
)

var execCmd = &cobra.Command{
	Use:   "exec <command>",
	Short: "Run a command with shell-metacharacter screening",
	Long: `Exec runs a command line in a working directory after screening it
against a deny-list of shell metacharacters. Commands that chain, pipe,
substitute, or traverse paths are rejected before anything is spawned.

Examples:
  stencil exec "npm install" --dir ./out/Button
  stencil exec "git init" --dir ./out`,
	Args: cobra.ExactArgs(1),
	RunE: runExec,
}

var execDir string

func init() {
	rootCmd.AddCommand(execCmd)

	execCmd.Flags().StringVar(&execDir, "dir", ".", "working directory for the command")
}

func runExec(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	out, err := execx.Run(ctx, execDir, args[0])
	if err != nil {
		return err
	}
	if out != "" {
		fmt.Fprintln(cmd.OutOrStdout(), out)
	}
	return nil
}
