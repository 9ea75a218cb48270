package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stencilworks/stencil/internal/config"
	"github.com/stencilworks/stencil/internal/pipeline"
)

var renderCmd = &cobra.Command{
	Use:   "render [template]",
	Short: "Render a single template",
	Long: `Render runs one template through the content pipeline and prints the
result, or writes it with -o. With a file argument the engine is picked
from the file extension unless --engine overrides it.

Examples:
  stencil render greeting.hbs --var name=World
  stencil render --text "Hello {{name}}" --var name=World
  stencil render page.pug --engine amber -o public/page.html`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

var (
	renderText     string
	renderEngine   string
	renderOutput   string
	renderStrict   bool
	renderVarFlags []string
	renderVarsFlag string
)

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVar(&renderText, "text", "", "render literal template source instead of a file")
	renderCmd.Flags().StringVar(&renderEngine, "engine", "", "engine to render with (default: by file extension)")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "write the result to this path instead of stdout")
	renderCmd.Flags().BoolVar(&renderStrict, "strict", false, "fail on an unknown engine name instead of falling back")
	renderCmd.Flags().StringArrayVar(&renderVarFlags, "var", nil, "set a variable (key=value, repeatable)")
	renderCmd.Flags().StringVar(&renderVarsFlag, "vars", "", "set variables as a comma-separated key=value list")
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	registry := newRegistry()

	vars, err := parseVariableFlags(renderVarFlags, renderVarsFlag)
	if err != nil {
		return err
	}

	if renderText == "" && len(args) == 0 {
		return fmt.Errorf("nothing to render: pass a template file or --text")
	}

	engineName := renderEngine
	if engineName == "" && renderText != "" {
		engineName = cfg.Engine
	}
	if renderStrict && engineName != "" {
		if _, ok := registry.Get(engineName); !ok {
			return fmt.Errorf("no engine named %q", engineName)
		}
	}

	p := pipeline.New(registry)
	switch {
	case renderText != "":
		p.FromTemplateString(engineName, renderText, vars.Map())
	case engineName != "":
		p.FromTemplateAs(engineName, args[0], vars.Map())
	default:
		p.FromTemplate(args[0], vars.Map())
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if renderOutput != "" {
		if _, err := p.WriteTo(ctx, renderOutput); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "wrote "+renderOutput)
		return nil
	}

	out, err := p.Execute(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
