// Package pipeline provides a content transformation pipeline: set content
// from one of several sources, apply ordered transforms, and optionally
// persist the result to a file.
package pipeline

import (
	"context"

	"github.com/stencilworks/stencil/internal/engine"
	"github.com/stencilworks/stencil/internal/errors"
	"github.com/stencilworks/stencil/internal/fileutil"
)

// ErrEmptyPipeline is returned by Execute when no content source was set.
var ErrEmptyPipeline = errors.NewPipelineError(errors.ErrCodePipelineEmpty, "pipeline has no content source")

// Transform rewrites pipeline content. Transforms run sequentially in
// registration order, each receiving the previous transform's output.
type Transform func(ctx context.Context, content string) (string, error)

// Pipeline holds exactly one content source and an ordered transform list.
// Setting a new source discards the previous one. Content is resolved
// lazily: every Execute re-reads the source and re-applies all transforms.
type Pipeline struct {
	registry   *engine.Registry
	source     func(ctx context.Context) (string, error)
	transforms []Transform
}

// New creates an empty pipeline resolving engines through registry.
func New(registry *engine.Registry) *Pipeline {
	return &Pipeline{registry: registry}
}

// FromString sets a literal string as the content source.
func (p *Pipeline) FromString(s string) *Pipeline {
	p.source = func(ctx context.Context) (string, error) {
		return s, nil
	}
	return p
}

// FromFile sets a file's contents as the content source.
func (p *Pipeline) FromFile(path string) *Pipeline {
	p.source = func(ctx context.Context) (string, error) {
		return fileutil.ReadText(path)
	}
	return p
}

// FromTemplate sets a rendered template file as the content source, picking
// the engine from the file extension.
func (p *Pipeline) FromTemplate(path string, vars engine.Variables) *Pipeline {
	return p.FromTemplateAs(engine.ForExtension(path), path, vars)
}

// FromTemplateAs sets a rendered template file as the content source using
// the named engine.
func (p *Pipeline) FromTemplateAs(engineName, path string, vars engine.Variables) *Pipeline {
	p.source = func(ctx context.Context) (string, error) {
		return engine.NewRenderer(p.registry, engineName).RenderFile(ctx, path, vars, nil)
	}
	return p
}

// FromTemplateString sets rendered template source as the content source
// using the named engine. An empty name selects the default engine.
func (p *Pipeline) FromTemplateString(engineName, source string, vars engine.Variables) *Pipeline {
	if engineName == "" {
		engineName = engine.DefaultEngine
	}
	p.source = func(ctx context.Context) (string, error) {
		return engine.NewRenderer(p.registry, engineName).Render(ctx, source, vars, nil)
	}
	return p
}

// Transform appends fn to the transform list. It never triggers execution.
func (p *Pipeline) Transform(fn Transform) *Pipeline {
	p.transforms = append(p.transforms, fn)
	return p
}

// Execute resolves the content source and applies each transform in order.
// A pipeline without a source fails with ErrEmptyPipeline.
func (p *Pipeline) Execute(ctx context.Context) (string, error) {
	if p.source == nil {
		return "", ErrEmptyPipeline
	}

	content, err := p.source(ctx)
	if err != nil {
		return "", err
	}

	for _, fn := range p.transforms {
		content, err = fn(ctx, content)
		if err != nil {
			return "", err
		}
	}
	return content, nil
}

// WriteTo executes the pipeline and writes the result to path, creating
// parent directories as needed. The transformed content is returned.
func (p *Pipeline) WriteTo(ctx context.Context, path string) (string, error) {
	content, err := p.Execute(ctx)
	if err != nil {
		return "", err
	}
	if err := fileutil.WriteText(path, content); err != nil {
		return "", err
	}
	return content, nil
}
