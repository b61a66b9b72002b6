package routing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/SuperKit/internal/shared/errdefs"
)

func recordingUnits(order *[]string, names ...string) *Units {
	u := NewUnits()
	for _, n := range names {
		n := n
		u.Defer(n, func() error {
			*order = append(*order, n)
			return nil
		})
	}
	return u
}

func TestChildrenAndPackages(t *testing.T) {
	var order []string
	u := recordingUnits(&order,
		"app/controllers/users",
		"app/controllers/posts/comments",
		"app/controllers/_private",
	)

	assert.Equal(t, []string{"_private", "posts", "users"}, u.Children("app/controllers"))
	assert.True(t, u.IsPackage("app/controllers/posts"))
	assert.False(t, u.IsPackage("app/controllers/users"))
	assert.True(t, u.Exists("app/controllers/posts"))
	assert.True(t, u.Exists("app"))
	assert.False(t, u.Exists("other"))
	assert.Empty(t, u.Children("missing"))
}

func TestImportRunsHooksOnce(t *testing.T) {
	var order []string
	u := recordingUnits(&order, "a/b")

	require.NoError(t, u.Import("a/b"))
	require.NoError(t, u.Import("/a/b/"))

	assert.Equal(t, []string{"a/b"}, order)
	assert.True(t, u.Imported("a/b"))
}

func TestImportUnknownUnit(t *testing.T) {
	u := NewUnits()
	err := u.Import("nope")

	assert.ErrorIs(t, err, errdefs.ErrLoad)
	var le *errdefs.LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "nope", le.Unit)
}

func TestImportImplicitPackage(t *testing.T) {
	var order []string
	u := recordingUnits(&order, "a/b/c")

	require.NoError(t, u.Import("a/b"))
	assert.Empty(t, order)
}

func TestImportFailureIsSticky(t *testing.T) {
	u := NewUnits()
	calls := 0
	u.Defer("x", func() error {
		calls++
		return errors.New("broken")
	})

	err1 := u.Import("x")
	err2 := u.Import("x")

	assert.ErrorIs(t, err1, errdefs.ErrLoad)
	assert.Equal(t, err1, err2)
	assert.Equal(t, 1, calls)
	assert.False(t, u.Imported("x"))
}

func TestImportTree(t *testing.T) {
	var order []string
	u := recordingUnits(&order,
		"pkg/a",
		"pkg/b/deep",
		"pkg/b/_skipped",
		"pkg/_hidden",
	)

	require.NoError(t, u.ImportTree("pkg", false))
	assert.Equal(t, []string{"pkg/a"}, order)

	require.NoError(t, u.ImportTree("pkg", true))
	assert.Equal(t, []string{"pkg/a", "pkg/b/deep"}, order)
}

func TestReentrantImport(t *testing.T) {
	u := NewUnits()
	u.Defer("loop", func() error {
		return u.Import("loop")
	})

	assert.NoError(t, u.Import("loop"))
}

func TestHookNestedLoadErrorIsPreserved(t *testing.T) {
	u := NewUnits()
	u.Defer("outer", func() error { return u.Import("missing") })

	err := u.Import("outer")
	var le *errdefs.LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "missing", le.Unit)
}
