package engine

import (
	"context"
	"strings"

	"github.com/eknkc/amber"

	"github.com/stencilworks/stencil/internal/errors"
)

// AmberEngine renders indentation-based templates with eknkc/amber.
type AmberEngine struct{}

func amberOptions(opts Options) amber.Options {
	options := amber.DefaultOptions
	if v, ok := opts["pretty"].(bool); ok {
		options.PrettyPrint = v
	}
	if v, ok := opts["lineNumbers"].(bool); ok {
		options.LineNumbers = v
	}
	return options
}

// Render compiles and renders amber template source.
func (e *AmberEngine) Render(ctx context.Context, source string, vars Variables, opts Options) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	tpl, err := amber.Compile(source, amberOptions(opts))
	if err != nil {
		return "", errors.NewRenderError("compiling amber template", err)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, vars); err != nil {
		return "", errors.NewRenderError("rendering amber template", err)
	}
	return buf.String(), nil
}

// RenderFile compiles and renders the amber template file at path.
func (e *AmberEngine) RenderFile(ctx context.Context, path string, vars Variables, opts Options) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	tpl, err := amber.CompileFile(path, amberOptions(opts))
	if err != nil {
		return "", errors.NewRenderError("compiling amber template", err).WithPath(path)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, vars); err != nil {
		return "", errors.NewRenderError("rendering amber template", err).WithPath(path)
	}
	return buf.String(), nil
}
