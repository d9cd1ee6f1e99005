package compiler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gleamls/internal/ast"
	"gleamls/internal/line"
)

func testModule(name, path, code string, imports ...string) *Module {
	definitions := make([]ast.Definition, 0, len(imports))
	for _, imported := range imports {
		definitions = append(definitions, &ast.Import{Module: imported})
	}
	return &Module{
		Name:  name,
		Path:  path,
		Code:  code,
		Lines: line.New(code),
		AST:   &ast.Module{Name: name, Definitions: definitions},
	}
}

func TestProjectCompiler(t *testing.T) {
	t.Run("first compile returns every module path", func(t *testing.T) {
		build := NewMemoryBuild()
		build.AddModule(testModule("app", "/p/src/app.gleam", "", "util"))
		build.AddModule(testModule("util", "/p/src/util.gleam", ""))

		c := New(build, zap.NewNop())
		paths, err := c.Compile()
		require.NoError(t, err)
		assert.Equal(t, []string{"/p/src/app.gleam", "/p/src/util.gleam"}, paths)
	})

	t.Run("compiled records are queryable", func(t *testing.T) {
		build := NewMemoryBuild()
		build.AddModule(testModule("app", "/p/src/app.gleam", "pub fn main() { 0 }\n"))

		c := New(build, zap.NewNop())
		_, err := c.Compile()
		require.NoError(t, err)

		module := c.Module("app")
		require.NotNil(t, module)
		assert.Equal(t, "/p/src/app.gleam", module.Path)
		assert.Nil(t, c.Module("missing"))
	})

	t.Run("nothing pending compiles nothing", func(t *testing.T) {
		build := NewMemoryBuild()
		build.AddModule(testModule("app", "/p/src/app.gleam", ""))

		c := New(build, zap.NewNop())
		_, err := c.Compile()
		require.NoError(t, err)

		paths, err := c.Compile()
		require.NoError(t, err)
		assert.Empty(t, paths)
	})

	t.Run("raw sources become pathed records without a syntax tree", func(t *testing.T) {
		build := NewMemoryBuild()
		build.AddSource("app", "/p/src/app.gleam", "pub fn main() { 0 }\n")

		c := New(build, zap.NewNop())
		paths, err := c.Compile()
		require.NoError(t, err)
		assert.Equal(t, []string{"/p/src/app.gleam"}, paths)

		module := c.Module("app")
		require.NotNil(t, module)
		assert.Equal(t, "/p/src/app.gleam", module.Path)
		assert.Nil(t, module.AST)

		c.SourceChanged("app", "pub fn main() { 1 }\n")
		_, err = c.Compile()
		require.NoError(t, err)
		assert.Equal(t, "/p/src/app.gleam", c.Module("app").Path)
		assert.Equal(t, "pub fn main() { 1 }\n", c.Module("app").Code)
	})

	t.Run("source change recompiles the module", func(t *testing.T) {
		build := NewMemoryBuild()
		build.AddModule(testModule("app", "/p/src/app.gleam", "// v1\n"))

		c := New(build, zap.NewNop())
		_, err := c.Compile()
		require.NoError(t, err)

		c.SourceChanged("app", "// v2\n")
		paths, err := c.Compile()
		require.NoError(t, err)
		assert.Equal(t, []string{"/p/src/app.gleam"}, paths)
		assert.Equal(t, "// v2\n", c.Module("app").Code)
	})

	t.Run("warnings accumulate and drain once", func(t *testing.T) {
		build := NewMemoryBuild()
		build.AddModule(testModule("app", "/p/src/app.gleam", ""))
		build.QueueWarning(Warning{Path: "/p/src/app.gleam", Message: "unused import"})

		c := New(build, zap.NewNop())
		_, err := c.Compile()
		require.NoError(t, err)

		warnings := c.TakeWarnings()
		require.Len(t, warnings, 1)
		assert.Equal(t, "unused import", warnings[0].Message)
		assert.Empty(t, c.TakeWarnings())
	})

	t.Run("failed compile keeps work pending for a retry", func(t *testing.T) {
		build := NewMemoryBuild()
		build.AddModule(testModule("app", "/p/src/app.gleam", ""))
		build.FailNext(errors.New("type error"))

		c := New(build, zap.NewNop())
		_, err := c.Compile()
		require.Error(t, err)

		paths, err := c.Compile()
		require.NoError(t, err)
		assert.Equal(t, []string{"/p/src/app.gleam"}, paths)
	})

	t.Run("failure surfaces warnings produced before it", func(t *testing.T) {
		build := NewMemoryBuild()
		build.QueueWarning(Warning{Path: "/p/src/app.gleam", Message: "unused import"})
		build.FailNext(errors.New("type error"))

		c := New(build, zap.NewNop())
		_, err := c.Compile()
		require.Error(t, err)
		assert.Len(t, c.TakeWarnings(), 1)
	})
}
