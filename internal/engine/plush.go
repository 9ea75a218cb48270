package engine

import (
	"context"

	"github.com/gobuffalo/plush/v4"

	"github.com/stencilworks/stencil/internal/errors"
	"github.com/stencilworks/stencil/internal/fileutil"
)

// PlushEngine renders ERB-style templates (<%= name %>) with
// gobuffalo/plush.
type PlushEngine struct{}

// Render renders plush template source.
func (e *PlushEngine) Render(ctx context.Context, source string, vars Variables, opts Options) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	pctx := plush.NewContext()
	for k, v := range vars {
		pctx.Set(k, v)
	}

	out, err := plush.Render(source, pctx)
	if err != nil {
		return "", errors.NewRenderError("rendering plush template", err)
	}
	return out, nil
}

// RenderFile renders the plush template file at path.
func (e *PlushEngine) RenderFile(ctx context.Context, path string, vars Variables, opts Options) (string, error) {
	source, err := fileutil.ReadText(path)
	if err != nil {
		return "", err
	}
	return e.Render(ctx, source, vars, opts)
}
