package app

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/SuperKit/internal/routing"
	"github.com/GriffinCanCode/SuperKit/internal/shared/errdefs"
)

func routeKeys(tbl *routing.Table) []string {
	var out []string
	for _, r := range tbl.Routes() {
		out = append(out, r.Key())
	}
	return out
}

func TestBuildRouterWithGroupAndTable(t *testing.T) {
	units := routing.NewUnits()
	root := routing.NewGroup(nil, "", routing.WithUnits(units), routing.WithOrigin("posts/controllers"))
	comments := routing.NewGroup(root, "comments")

	units.Defer("posts/controllers", func() error {
		return root.MountControllers("posts/controllers", true)
	})
	units.Defer("posts/controllers/comments", func() error {
		comments.GET("{c_id}")
		return nil
	})

	extra := routing.NewTable()
	extra.GET("/feed")

	cfg := &Config{
		Name:      "posts",
		URLPrefix: "/posts",
		Tags:      []string{"Posts"},
		Routers:   []any{root, extra},
	}

	tbl, err := cfg.BuildRouter(units)
	require.NoError(t, err)

	assert.Equal(t, "/posts", tbl.Prefix())
	assert.Equal(t, []string{"GET /posts/comments/{c_id}", "GET /posts/feed"}, routeKeys(tbl))
	for _, r := range tbl.Routes() {
		assert.Equal(t, []string{"Posts"}, r.Tags)
	}
	assert.True(t, units.Imported("posts/controllers"))
	assert.True(t, units.Imported("posts/controllers/comments"))
}

func TestBuildRouterIsRepeatable(t *testing.T) {
	units := routing.NewUnits()
	root := routing.NewGroup(nil, "", routing.WithUnits(units), routing.WithOrigin("u/controllers"))
	units.Defer("u/controllers", func() error {
		root.GET("me")
		return nil
	})

	cfg := &Config{Name: "u", URLPrefix: "/u", Routers: []any{root}}

	first, err := cfg.BuildRouter(units)
	require.NoError(t, err)
	second, err := cfg.BuildRouter(units)
	require.NoError(t, err)

	assert.Equal(t, routeKeys(first), routeKeys(second))
	assert.Equal(t, []string{"GET /u/me"}, routeKeys(second))
}

func TestBuildRouterInvalidSurface(t *testing.T) {
	cfg := &Config{Name: "bad", URLPrefix: "/bad", Routers: []any{"not a router"}}

	_, err := cfg.BuildRouter(routing.NewUnits())
	require.Error(t, err)
	assert.ErrorIs(t, err, errdefs.ErrConfiguration)
	assert.Contains(t, err.Error(), "invalid surface type string")
}

func TestBuildRouterNilSurface(t *testing.T) {
	var tbl *routing.Table
	cfg := &Config{Name: "bad", URLPrefix: "/bad", Routers: []any{tbl}}

	_, err := cfg.BuildRouter(routing.NewUnits())
	assert.ErrorIs(t, err, errdefs.ErrConfiguration)
}

func TestBuildRouterMissingOrigin(t *testing.T) {
	tbl := routing.NewTable(routing.WithTableOrigin("ghost/controllers"))
	cfg := &Config{Name: "ghost", URLPrefix: "/ghost", Routers: []any{tbl}}

	_, err := cfg.BuildRouter(routing.NewUnits())
	assert.ErrorIs(t, err, errdefs.ErrLoad)
}

func TestBuildRouterNoSurfaces(t *testing.T) {
	cfg := &Config{Name: "empty", URLPrefix: "/empty"}

	tbl, err := cfg.BuildRouter(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.Len())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"valid", Config{Name: "posts", URLPrefix: "/posts"}, ""},
		{"bad name", Config{Name: "my-app", URLPrefix: "/x"}, "invalid app name"},
		{"missing prefix", Config{Name: "posts"}, "missing url_prefix"},
		{"no slash", Config{Name: "posts", URLPrefix: "posts"}, "should start with '/'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNormalizedPrefix(t *testing.T) {
	assert.Equal(t, "/posts", (&Config{URLPrefix: "posts/"}).NormalizedPrefix())
}

func TestInstantiate(t *testing.T) {
	cfg, err := Instantiate("ok", func() *Config { return &Config{Name: "ok"} })
	require.NoError(t, err)
	assert.Equal(t, "ok", cfg.Name)

	_, err = Instantiate("nil", func() *Config { return nil })
	assert.ErrorIs(t, err, errdefs.ErrConfiguration)

	_, err = Instantiate("none", nil)
	assert.ErrorIs(t, err, errdefs.ErrConfiguration)

	_, err = Instantiate("panics", func() *Config { panic("boom") })
	var le *errdefs.LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "panics", le.Unit)
}
