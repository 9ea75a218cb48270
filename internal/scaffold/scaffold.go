// Package scaffold generates file trees from a manifest: each structure
// entry renders one template and writes it to a variable-interpolated
// output path. Dry-run computes the paths without touching the file system.
package scaffold

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/stencilworks/stencil/internal/engine"
	"github.com/stencilworks/stencil/internal/execx"
	"github.com/stencilworks/stencil/internal/fileutil"
	"github.com/stencilworks/stencil/internal/logging"
	"github.com/stencilworks/stencil/internal/strutil"
)

// Result reports the paths a scaffold produced (or would produce) in
// structure order, and the dry-run flag it ran with.
type Result struct {
	Files  []string
	DryRun bool
}

// Scaffolder renders manifests into file trees.
type Scaffolder struct {
	registry *engine.Registry
	logger   logging.Logger
}

// New creates a scaffolder resolving engines through registry.
func New(registry *engine.Registry, logger logging.Logger) *Scaffolder {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Scaffolder{
		registry: registry,
		logger:   logger.WithComponent("scaffold"),
	}
}

// From processes the manifest's structure entries in order. Each entry
// renders templateDir/template with the manifest's engine and variables and
// writes the output to the interpolated path under the interpolated output
// directory. In dry-run mode the paths are only computed; no template is
// rendered and nothing is written.
//
// A render or write failure aborts the run; files already written stay in
// place and the error propagates.
func (s *Scaffolder) From(ctx context.Context, m *Manifest) (*Result, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	vars := m.Variables
	if vars == nil {
		vars = NewVariables()
	}

	outputDir := Interpolate(m.OutputDir, vars)
	renderer := engine.NewRenderer(s.registry, m.Engine)
	result := &Result{DryRun: m.DryRun}

	for _, entry := range m.Structure {
		outPath := filepath.Join(outputDir, Interpolate(entry.Output, vars))

		if m.DryRun {
			result.Files = append(result.Files, outPath)
			continue
		}

		if err := fileutil.EnsureDir(filepath.Dir(outPath)); err != nil {
			return result, err
		}

		templatePath := filepath.Join(m.TemplateDir, entry.Template)
		content, err := renderer.RenderFile(ctx, templatePath, vars.Map(), nil)
		if err != nil {
			return result, err
		}

		if err := fileutil.WriteText(outPath, content); err != nil {
			return result, err
		}

		s.logger.Info(ctx, "generated file", "template", templatePath, "output", outPath)
		result.Files = append(result.Files, outPath)
	}

	if !m.DryRun {
		if err := s.runPostHooks(ctx, m, outputDir); err != nil {
			return result, err
		}
	}

	return result, nil
}

func (s *Scaffolder) runPostHooks(ctx context.Context, m *Manifest, outputDir string) error {
	for _, command := range m.Post {
		s.logger.Debug(ctx, "running post hook", "command", command)
		out, err := execx.Run(ctx, outputDir, command)
		if err != nil {
			return err
		}
		if out != "" {
			s.logger.Info(ctx, "post hook output", "command", command, "output", out)
		}
	}
	return nil
}

// Interpolate replaces every {{key}} placeholder in pattern with the
// stringified variable value, one pass per key in insertion order.
func Interpolate(pattern string, vars *Variables) string {
	out := pattern
	for _, key := range vars.Keys() {
		value, _ := vars.Get(key)
		out = strutil.Replace(out, "{{"+key+"}}", fmt.Sprintf("%v", value))
	}
	return out
}
