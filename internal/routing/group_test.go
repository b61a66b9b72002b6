package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoin(t *testing.T) {
	assert.Equal(t, "b", Join("", "b"))
	assert.Equal(t, "a", Join("a", ""))
	assert.Equal(t, "a/b", Join("a", "b"))
	assert.Equal(t, "", Join("", ""))
}

func TestGroupPath(t *testing.T) {
	root := NewGroup(nil, "")
	a := NewGroup(root, "/a/")
	b := NewGroup(a, "b")

	tests := []struct {
		name  string
		group *Group
		in    string
		want  string
	}{
		{"root empty", root, "", "/"},
		{"root path", root, "/x/", "/x"},
		{"child empty", a, "", "/a"},
		{"nested", b, "c", "/a/b/c"},
		{"nested slashes", b, "/c/", "/a/b/c"},
		{"nested empty", b, "", "/a/b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.group.Path(tt.in))
		})
	}

	assert.Equal(t, "a/b", b.FullPrefix())
	assert.Equal(t, "b", b.LocalPrefix())
	assert.Same(t, a, b.Parent())
	assert.Nil(t, root.Parent())
}

func TestGroupTreeSharesOneTable(t *testing.T) {
	root := NewGroup(nil, "")
	a := NewGroup(root, "a")
	b := NewGroup(a, "b")

	root.GET("")
	a.POST("x")
	b.GET("c")
	b.DELETE("{id}")

	assert.Same(t, root.Table(), a.Table())
	assert.Same(t, root.Table(), b.Table())
	assert.Equal(t, []string{
		"GET /",
		"POST /a/x",
		"GET /a/b/c",
		"DELETE /a/b/{id}",
	}, paths(root.Table().Routes()))
}

func TestSeparateRootsHaveSeparateTables(t *testing.T) {
	r1 := NewGroup(nil, "")
	r2 := NewGroup(nil, "")
	r1.GET("x")

	assert.NotSame(t, r1.Table(), r2.Table())
	assert.Equal(t, 0, r2.Table().Len())
}

func TestGroupVerbs(t *testing.T) {
	g := NewGroup(NewGroup(nil, ""), "v")
	g.GET("a")
	g.POST("a")
	g.PUT("a")
	g.PATCH("a")
	g.DELETE("a")
	g.HEAD("a")
	g.OPTIONS("a")

	assert.Equal(t, []string{
		"GET /v/a", "POST /v/a", "PUT /v/a", "PATCH /v/a",
		"DELETE /v/a", "HEAD /v/a", "OPTIONS /v/a",
	}, paths(g.Table().Routes()))
}

func TestGroupAny(t *testing.T) {
	g := NewGroup(nil, "hooks")
	g.Any("{event}")

	routes := g.Table().Routes()
	require.Len(t, routes, len(anyMethods))
	for i, r := range routes {
		assert.Equal(t, anyMethods[i], r.Method)
		assert.Equal(t, "/hooks/{event}", r.Path)
	}
}

func TestMountControllersImportsOnce(t *testing.T) {
	units := NewUnits()
	root := NewGroup(nil, "", WithUnits(units))
	child := NewGroup(root, "comments")
	assert.Same(t, units, child.units)

	calls := 0
	units.Defer("posts/controllers/comments", func() error {
		calls++
		child.GET("{c_id}")
		return nil
	})

	require.NoError(t, root.MountControllers("posts/controllers", true))
	require.NoError(t, root.MountControllers("posts/controllers", true))

	assert.True(t, root.Mounted())
	assert.Equal(t, 1, calls)
	assert.Equal(t, "posts/controllers", root.Origin())
	assert.Equal(t, []string{"GET /comments/{c_id}"}, paths(root.Table().Routes()))
}

func TestMountControllersKeepsExplicitOrigin(t *testing.T) {
	units := NewUnits()
	g := NewGroup(nil, "", WithUnits(units), WithOrigin("custom"))

	require.NoError(t, g.MountControllers("posts/controllers", false))
	assert.Equal(t, "custom", g.Origin())
}

func TestMountControllersPropagatesLoadError(t *testing.T) {
	units := NewUnits()
	units.Defer("app/controllers/broken", func() error { panic("bad declaration") })
	g := NewGroup(nil, "", WithUnits(units))

	err := g.MountControllers("app/controllers", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad declaration")
	assert.True(t, g.Mounted())
}
