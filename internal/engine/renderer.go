package engine

import (
	"context"

	"github.com/stencilworks/stencil/internal/errors"
)

// Renderer binds one engine name to a registry and exposes a uniform
// render call regardless of which engine is selected.
//
// An unknown engine name resolves to the default engine rather than
// failing; callers that need strict validation construct the renderer with
// WithStrictEngine or check Registry.Get first.
type Renderer struct {
	registry *Registry
	name     string
	strict   bool
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithStrictEngine makes resolution of an unknown engine name fail instead
// of falling back to the default engine.
func WithStrictEngine() RendererOption {
	return func(r *Renderer) {
		r.strict = true
	}
}

// NewRenderer creates a renderer bound to the named engine.
func NewRenderer(registry *Registry, name string, opts ...RendererOption) *Renderer {
	r := &Renderer{registry: registry, name: name}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Name returns the engine name the renderer was bound to.
func (r *Renderer) Name() string {
	return r.name
}

// Resolve looks up the bound engine name, custom registrations first, then
// built-ins, then the default engine fallback.
func (r *Renderer) Resolve() (Engine, error) {
	if e, ok := r.registry.Get(r.name); ok {
		return e, nil
	}
	if r.strict {
		return nil, errors.NewNotFoundError(errors.ErrCodeEngineNotFound, "no engine named "+r.name)
	}
	e, ok := r.registry.Get(DefaultEngine)
	if !ok {
		return nil, errors.NewInternalError("default engine missing from registry", nil)
	}
	return e, nil
}

// Render delegates to the resolved engine's Render.
func (r *Renderer) Render(ctx context.Context, source string, vars Variables, opts Options) (string, error) {
	e, err := r.Resolve()
	if err != nil {
		return "", err
	}
	return e.Render(ctx, source, vars, opts)
}

// RenderFile delegates to the resolved engine's RenderFile.
func (r *Renderer) RenderFile(ctx context.Context, path string, vars Variables, opts Options) (string, error) {
	e, err := r.Resolve()
	if err != nil {
		return "", err
	}
	return e.RenderFile(ctx, path, vars, opts)
}
