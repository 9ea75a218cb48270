package scaffold

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stencilworks/stencil/internal/engine"
)

func writeTemplate(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestFromRendersStructure(t *testing.T) {
	templateDir := t.TempDir()
	outBase := t.TempDir()
	writeTemplate(t, templateDir, "component.hbs", "export const {{name}} = () => null;")
	writeTemplate(t, templateDir, "index.hbs", "export * from './{{name}}';")

	m := &Manifest{
		Engine:      engine.EngineHandlebars,
		TemplateDir: templateDir,
		OutputDir:   filepath.Join(outBase, "{{name}}"),
		Variables:   NewVariables().Set("name", "Button"),
		Structure: []StructureEntry{
			{Template: "component.hbs", Output: "{{name}}.tsx"},
			{Template: "index.hbs", Output: "index.ts"},
		},
	}

	result, err := New(engine.NewRegistry(), nil).From(context.Background(), m)
	require.NoError(t, err)

	assert.False(t, result.DryRun)
	require.Equal(t, []string{
		filepath.Join(outBase, "Button", "Button.tsx"),
		filepath.Join(outBase, "Button", "index.ts"),
	}, result.Files)

	content, err := os.ReadFile(result.Files[0])
	require.NoError(t, err)
	assert.Equal(t, "export const Button = () => null;", string(content))

	content, err = os.ReadFile(result.Files[1])
	require.NoError(t, err)
	assert.Equal(t, "export * from './Button';", string(content))
}

func TestFromDryRunHasNoSideEffects(t *testing.T) {
	templateDir := t.TempDir()
	outBase := t.TempDir()
	// The template deliberately does not exist: dry-run must not render it.
	outputDir := filepath.Join(outBase, "{{name}}")

	m := &Manifest{
		Engine:      engine.EngineHandlebars,
		TemplateDir: templateDir,
		OutputDir:   outputDir,
		Variables:   NewVariables().Set("name", "Button"),
		Structure: []StructureEntry{
			{Template: "missing.hbs", Output: "{{name}}.tsx"},
		},
		DryRun: true,
		Post:   []string{"false"}, // hooks must also be skipped
	}

	result, err := New(engine.NewRegistry(), nil).From(context.Background(), m)
	require.NoError(t, err)

	assert.True(t, result.DryRun)
	assert.Equal(t, []string{filepath.Join(outBase, "Button", "Button.tsx")}, result.Files)

	// Nothing was created under the output base.
	entries, err := os.ReadDir(outBase)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFromFailFastLeavesEarlierFiles(t *testing.T) {
	templateDir := t.TempDir()
	outDir := t.TempDir()
	writeTemplate(t, templateDir, "ok.hbs", "fine")

	m := &Manifest{
		Engine:      engine.EngineHandlebars,
		TemplateDir: templateDir,
		OutputDir:   outDir,
		Variables:   NewVariables(),
		Structure: []StructureEntry{
			{Template: "ok.hbs", Output: "first.txt"},
			{Template: "missing.hbs", Output: "second.txt"},
			{Template: "ok.hbs", Output: "third.txt"},
		},
	}

	result, err := New(engine.NewRegistry(), nil).From(context.Background(), m)
	require.Error(t, err)

	// The first file stays in place, later entries were never attempted.
	assert.FileExists(t, filepath.Join(outDir, "first.txt"))
	assert.NoFileExists(t, filepath.Join(outDir, "second.txt"))
	assert.NoFileExists(t, filepath.Join(outDir, "third.txt"))
	assert.Equal(t, []string{filepath.Join(outDir, "first.txt")}, result.Files)
}

func TestFromUnknownEngineFallsBack(t *testing.T) {
	templateDir := t.TempDir()
	outDir := t.TempDir()
	writeTemplate(t, templateDir, "t.hbs", "Hello {{name}}")

	m := &Manifest{
		Engine:      "UNKNOWN",
		TemplateDir: templateDir,
		OutputDir:   outDir,
		Variables:   NewVariables().Set("name", "World"),
		Structure:   []StructureEntry{{Template: "t.hbs", Output: "out.txt"}},
	}

	_, err := New(engine.NewRegistry(), nil).From(context.Background(), m)
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(outDir, "out.txt"))
	require.NoError(t, err)
	assert.Equal(t, "Hello World", string(content))
}

func TestFromRunsPostHooks(t *testing.T) {
	templateDir := t.TempDir()
	outDir := t.TempDir()
	writeTemplate(t, templateDir, "t.hbs", "content")

	m := &Manifest{
		Engine:      engine.EngineHandlebars,
		TemplateDir: templateDir,
		OutputDir:   outDir,
		Variables:   NewVariables(),
		Structure:   []StructureEntry{{Template: "t.hbs", Output: "out.txt"}},
		Post:        []string{"touch hook-ran"},
	}

	_, err := New(engine.NewRegistry(), nil).From(context.Background(), m)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(outDir, "hook-ran"))
}

func TestFromPostHookFailureAborts(t *testing.T) {
	templateDir := t.TempDir()
	outDir := t.TempDir()
	writeTemplate(t, templateDir, "t.hbs", "content")

	m := &Manifest{
		Engine:      engine.EngineHandlebars,
		TemplateDir: templateDir,
		OutputDir:   outDir,
		Variables:   NewVariables(),
		Structure:   []StructureEntry{{Template: "t.hbs", Output: "out.txt"}},
		Post:        []string{"false", "touch never"},
	}

	_, err := New(engine.NewRegistry(), nil).From(context.Background(), m)
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(outDir, "never"))
}

func TestInterpolate(t *testing.T) {
	vars := NewVariables().
		Set("name", "Button").
		Set("ext", "tsx")

	assert.Equal(t, "out/Button/Button.tsx", Interpolate("out/{{name}}/{{name}}.{{ext}}", vars))
	assert.Equal(t, "no placeholders", Interpolate("no placeholders", vars))
	assert.Equal(t, "{{unknown}} stays", Interpolate("{{unknown}} stays", vars))
}

func TestInterpolateStringifiesValues(t *testing.T) {
	vars := NewVariables().
		Set("major", 2).
		Set("beta", true)

	assert.Equal(t, "v2-beta-true", Interpolate("v{{major}}-beta-{{beta}}", vars))
}

func TestValidate(t *testing.T) {
	m := &Manifest{OutputDir: "out"}
	assert.Error(t, m.Validate())

	m = &Manifest{TemplateDir: "tpl"}
	assert.Error(t, m.Validate())

	m = &Manifest{TemplateDir: "tpl", OutputDir: "out", Structure: []StructureEntry{{Template: "", Output: "x"}}}
	assert.Error(t, m.Validate())

	m = &Manifest{TemplateDir: "tpl", OutputDir: "out", Structure: []StructureEntry{{Template: "x", Output: ""}}}
	assert.Error(t, m.Validate())

	m = &Manifest{TemplateDir: "tpl", OutputDir: "out", Structure: []StructureEntry{{Template: "x", Output: "y"}}}
	assert.NoError(t, m.Validate())
}
