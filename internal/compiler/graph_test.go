package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImportGraph(t *testing.T) {
	t.Run("invalidating a leaf touches only itself", func(t *testing.T) {
		g := NewImportGraph()
		g.SetImports("app", []string{"util"})
		g.SetImports("util", []string{"base"})

		assert.Equal(t, []string{"app"}, g.Invalidate("app"))
	})

	t.Run("invalidation reaches transitive dependents", func(t *testing.T) {
		g := NewImportGraph()
		g.SetImports("app", []string{"util"})
		g.SetImports("util", []string{"base"})

		assert.Equal(t, []string{"app", "base", "util"}, g.Invalidate("base"))
		assert.Equal(t, []string{"app", "util"}, g.Invalidate("util"))
	})

	t.Run("unknown module invalidates only itself", func(t *testing.T) {
		g := NewImportGraph()
		assert.Equal(t, []string{"solo"}, g.Invalidate("solo"))
	})

	t.Run("replacing imports drops stale edges", func(t *testing.T) {
		g := NewImportGraph()
		g.SetImports("app", []string{"util"})
		g.SetImports("app", []string{"base"})

		assert.Equal(t, []string{"util"}, g.Invalidate("util"))
		assert.Equal(t, []string{"app", "base"}, g.Invalidate("base"))
	})

	t.Run("shared dependency invalidates every importer", func(t *testing.T) {
		g := NewImportGraph()
		g.SetImports("app", []string{"base"})
		g.SetImports("worker", []string{"base"})

		assert.Equal(t, []string{"app", "base", "worker"}, g.Invalidate("base"))
	})
}
