package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stencilworks/stencil/internal/engine"
	stencilerrors "github.com/stencilworks/stencil/internal/errors"
)

func upper(ctx context.Context, s string) (string, error) {
	return strings.ToUpper(s), nil
}

func exclaim(ctx context.Context, s string) (string, error) {
	return s + "!", nil
}

func TestExecuteEmptyPipeline(t *testing.T) {
	p := New(engine.NewRegistry())

	_, err := p.Execute(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyPipeline)
	assert.True(t, stencilerrors.IsCode(err, stencilerrors.ErrCodePipelineEmpty))
}

func TestFromStringWithTransforms(t *testing.T) {
	p := New(engine.NewRegistry()).
		FromString("hello").
		Transform(upper).
		Transform(exclaim)

	out, err := p.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "HELLO!", out)
}

func TestTransformOrder(t *testing.T) {
	var calls []string
	record := func(name string) Transform {
		return func(ctx context.Context, s string) (string, error) {
			calls = append(calls, name)
			return s + name, nil
		}
	}

	p := New(engine.NewRegistry()).
		FromString("").
		Transform(record("a")).
		Transform(record("b")).
		Transform(record("c"))

	out, err := p.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc", out)
	assert.Equal(t, []string{"a", "b", "c"}, calls)
}

func TestTransformErrorStopsExecution(t *testing.T) {
	ran := false
	p := New(engine.NewRegistry()).
		FromString("x").
		Transform(func(ctx context.Context, s string) (string, error) {
			return "", fmt.Errorf("transform blew up")
		}).
		Transform(func(ctx context.Context, s string) (string, error) {
			ran = true
			return s, nil
		})

	_, err := p.Execute(context.Background())
	require.Error(t, err)
	assert.False(t, ran)
}

func TestLastSourceWins(t *testing.T) {
	p := New(engine.NewRegistry()).
		FromString("first").
		FromString("second")

	out, err := p.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "second", out)
}

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.txt")
	require.NoError(t, os.WriteFile(path, []byte("from disk"), 0644))

	out, err := New(engine.NewRegistry()).FromFile(path).Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "from disk", out)
}

func TestFromFileMissing(t *testing.T) {
	p := New(engine.NewRegistry()).FromFile(filepath.Join(t.TempDir(), "missing.txt"))

	_, err := p.Execute(context.Background())
	assert.Error(t, err)
}

func TestFromTemplateAutoEngine(t *testing.T) {
	dir := t.TempDir()
	vars := engine.Variables{"name": "World"}

	tests := []struct {
		file   string
		source string
	}{
		{"greet.ejs", "Hello <%= name %>"},
		{"greet.hbs", "Hello {{name}}"},
		{"greet.txt", "Hello {{name}}"}, // unknown extension falls back to handlebars
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.source), 0644))

			out, err := New(engine.NewRegistry()).FromTemplate(path, vars).Execute(context.Background())
			require.NoError(t, err)
			assert.Equal(t, "Hello World", out)
		})
	}
}

func TestFromTemplateString(t *testing.T) {
	reg := engine.NewRegistry()
	vars := engine.Variables{"name": "World"}

	out, err := New(reg).FromTemplateString("plush", "Hello <%= name %>", vars).Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Hello World", out)

	// Empty engine name selects the default.
	out, err = New(reg).FromTemplateString("", "Hello {{name}}", vars).Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Hello World", out)
}

func TestExecuteTwiceReResolves(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.txt")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0644))

	p := New(engine.NewRegistry()).FromFile(path).Transform(upper)

	out, err := p.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "V1", out)

	// Nothing is cached: a second Execute sees the rewritten file.
	require.NoError(t, os.WriteFile(path, []byte("v2"), 0644))

	out, err = p.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "V2", out)
}

func TestWriteTo(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "dir", "result.txt")

	got, err := New(engine.NewRegistry()).
		FromString("hello").
		Transform(upper).
		WriteTo(context.Background(), out)
	require.NoError(t, err)

	// Returns the transformed content, not the original.
	assert.Equal(t, "HELLO", got)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "HELLO", string(data))
}

func TestWriteToEmptyPipeline(t *testing.T) {
	_, err := New(engine.NewRegistry()).WriteTo(context.Background(), filepath.Join(t.TempDir(), "out.txt"))
	assert.ErrorIs(t, err, ErrEmptyPipeline)
}
