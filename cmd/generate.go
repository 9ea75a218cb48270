package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/stencilworks/stencil/internal/config"
	"github.com/stencilworks/stencil/internal/scaffold"
	"github.com/stencilworks/stencil/internal/watcher"
)

var generateCmd = &cobra.Command{
	Use:     "generate <manifest>",
	Aliases: []string{"gen", "g"},
	Short:   "Scaffold files from a manifest",
	Long: `Generate renders every template listed in the manifest's structure and
writes the results to variable-interpolated output paths.

Examples:
  stencil generate stencil.yml
  stencil generate stencil.yml --var name=Button --var author=ada
  stencil generate stencil.yml --vars "name=Button,author=ada"
  stencil generate stencil.yml --dry-run
  stencil generate stencil.yml --watch`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

var (
	generateVarFlags []string
	generateVarsFlag string
	generateDryRun   bool
	generateWatch    bool
)

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringArrayVar(&generateVarFlags, "var", nil, "set a variable (key=value, repeatable)")
	generateCmd.Flags().StringVar(&generateVarsFlag, "vars", "", "set variables as a comma-separated key=value list")
	generateCmd.Flags().BoolVar(&generateDryRun, "dry-run", false, "compute output paths without writing files")
	generateCmd.Flags().BoolVarP(&generateWatch, "watch", "w", false, "watch the template directory and rebuild on change")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	logger := newLogger(cfg)
	registry := newRegistry()

	manifest, err := scaffold.LoadManifest(args[0])
	if err != nil {
		return err
	}
	if manifest.Engine == "" {
		manifest.Engine = cfg.Engine
	}
	if generateDryRun {
		manifest.DryRun = true
	}

	flagVars, err := parseVariableFlags(generateVarFlags, generateVarsFlag)
	if err != nil {
		return err
	}
	if manifest.Variables == nil {
		manifest.Variables = scaffold.NewVariables()
	}
	for _, key := range flagVars.Keys() {
		value, _ := flagVars.Get(key)
		manifest.Variables.Set(key, value)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	result, err := scaffold.New(registry, logger).From(ctx, manifest)
	if err != nil {
		return err
	}

	if result.DryRun {
		fmt.Fprintln(cmd.OutOrStdout(), "Dry run, would generate:")
	}
	for _, file := range result.Files {
		fmt.Fprintln(cmd.OutOrStdout(), "  "+file)
	}

	if !generateWatch {
		return nil
	}

	outputDir := scaffold.Interpolate(manifest.OutputDir, manifest.Variables)
	session := watcher.NewSession(registry, logger, watcher.Config{
		TemplateDir: manifest.TemplateDir,
		OutputDir:   outputDir,
		Engine:      manifest.Engine,
		Variables:   manifest.Variables.Map(),
		Extensions:  cfg.Watch.Extensions,
		Debounce:    cfg.Watch.Debounce,
		OnRebuild: func(outputPath string) {
			fmt.Fprintln(cmd.OutOrStdout(), "rebuilt "+outputPath)
		},
		OnError: func(err error, sourcePath string) {
			fmt.Fprintf(cmd.ErrOrStderr(), "rebuild of %s failed: %v\n", sourcePath, err)
		},
	})

	if err := session.Start(); err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer session.Stop()

	fmt.Fprintf(cmd.OutOrStdout(), "Watching %s, press Ctrl+C to stop\n", manifest.TemplateDir)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	select {
	case <-sigCh:
	case <-ctx.Done():
	}
	return nil
}
