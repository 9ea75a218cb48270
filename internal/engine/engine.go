// Package engine unifies the template engines stencil can render with
// behind one interface, and provides the registry and renderer used by the
// pipeline, scaffold, and watcher.
//
// Three engines ship built in: "plush" (ERB-style <%= %> syntax),
// "handlebars" ({{ }} syntax, the default), and "amber" (indentation-based
// syntax). Custom engines register at runtime and shadow a built-in of the
// same name.
package engine

import (
	"context"
	"path/filepath"
	"strings"
)

// Variables is the data passed to a render call. Engines interpret it as
// they see fit; the core enforces no schema.
type Variables = map[string]interface{}

// Options carries engine-specific render options.
type Options = map[string]interface{}

// Engine is a named render capability pair backing one templating syntax.
type Engine interface {
	// Render renders template source against vars. Fails on malformed
	// source; the error propagates unchanged to the caller.
	Render(ctx context.Context, source string, vars Variables, opts Options) (string, error)

	// RenderFile renders the template file at path against vars. Fails if
	// the file is missing or malformed.
	RenderFile(ctx context.Context, path string, vars Variables, opts Options) (string, error)
}

// Built-in engine names.
const (
	EnginePlush      = "plush"
	EngineHandlebars = "handlebars"
	EngineAmber      = "amber"

	// DefaultEngine is used when a renderer's engine name matches nothing
	// in the registry.
	DefaultEngine = EngineHandlebars
)

// ForExtension maps a template file extension to a built-in engine name.
// Unrecognized extensions map to the default engine.
func ForExtension(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ejs", ".plush":
		return EnginePlush
	case ".hbs", ".handlebars":
		return EngineHandlebars
	case ".pug", ".jade", ".amber":
		return EngineAmber
	default:
		return DefaultEngine
	}
}
