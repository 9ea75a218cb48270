package engine

import (
	"context"

	"github.com/aymerick/raymond"

	"github.com/stencilworks/stencil/internal/errors"
	"github.com/stencilworks/stencil/internal/fileutil"
)

// HandlebarsEngine renders handlebars templates ({{name}}) with
// aymerick/raymond. It backs the default engine.
type HandlebarsEngine struct{}

// Render renders handlebars template source.
func (e *HandlebarsEngine) Render(ctx context.Context, source string, vars Variables, opts Options) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	out, err := raymond.Render(source, vars)
	if err != nil {
		return "", errors.NewRenderError("rendering handlebars template", err)
	}
	return out, nil
}

// RenderFile renders the handlebars template file at path.
func (e *HandlebarsEngine) RenderFile(ctx context.Context, path string, vars Variables, opts Options) (string, error) {
	source, err := fileutil.ReadText(path)
	if err != nil {
		return "", err
	}
	return e.Render(ctx, source, vars, opts)
}
