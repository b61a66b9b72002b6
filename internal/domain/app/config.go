package app

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/GriffinCanCode/SuperKit/internal/routing"
	"github.com/GriffinCanCode/SuperKit/internal/shared/errdefs"
	"github.com/GriffinCanCode/SuperKit/internal/shared/paths"
)

// Config declares an app: its name, URL namespace, documentation tags and the
// routing surfaces it contributes.
type Config struct {
	Name      string
	URLPrefix string
	Tags      []string

	// Routers holds *routing.Table or *routing.Group values.
	Routers []any
}

// Factory creates an app's Config. Each app package registers one.
type Factory func() *Config

// surface is an unwrapped routing surface.
type surface struct {
	table  *routing.Table
	origin string
}

// BuildRouter loads the app's controller units and returns a new table,
// prefixed with URLPrefix and tagged with Tags, containing every surface's
// routes in declaration order. The server is not touched.
func (c *Config) BuildRouter(units *routing.Units) (*routing.Table, error) {
	surfaces, err := c.unwrap()
	if err != nil {
		return nil, err
	}

	if err := loadOrigins(units, surfaces); err != nil {
		return nil, err
	}

	table := routing.NewTable(
		routing.WithPrefix(c.URLPrefix),
		routing.WithTags(c.Tags...),
	)
	for _, s := range surfaces {
		table.Include(s.table)
	}
	return table, nil
}

func (c *Config) unwrap() ([]surface, error) {
	out := make([]surface, 0, len(c.Routers))
	for i, r := range c.Routers {
		switch v := r.(type) {
		case *routing.Table:
			if v == nil {
				return nil, errdefs.Configuration("app %q: router %d is a nil table", c.Name, i)
			}
			out = append(out, surface{table: v, origin: v.Origin()})
		case *routing.Group:
			if v == nil {
				return nil, errdefs.Configuration("app %q: router %d is a nil group", c.Name, i)
			}
			out = append(out, surface{table: v.Table(), origin: v.Origin()})
		default:
			return nil, errdefs.Configuration("app %q: invalid surface type %T at index %d", c.Name, r, i)
		}
	}
	return out, nil
}

// loadOrigins imports each distinct origin unit before tables are merged so
// that deferred route declarations are present.
func loadOrigins(units *routing.Units, surfaces []surface) error {
	seen := make(map[string]struct{})
	for _, s := range surfaces {
		if s.origin != "" {
			seen[s.origin] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return nil
	}
	if units == nil {
		units = routing.DefaultUnits
	}

	origins := make([]string, 0, len(seen))
	for o := range seen {
		origins = append(origins, o)
	}
	sort.Strings(origins)

	for _, o := range origins {
		if err := units.Import(o); err != nil {
			return err
		}
	}
	return nil
}

// Validate reports structural problems with the declaration.
func (c *Config) Validate() error {
	var errs []error
	if err := paths.ValidateAppName(c.Name); err != nil {
		errs = append(errs, err)
	}
	switch {
	case c.URLPrefix == "":
		errs = append(errs, fmt.Errorf("missing url_prefix"))
	case !strings.HasPrefix(c.URLPrefix, "/"):
		errs = append(errs, fmt.Errorf("url_prefix should start with '/' (got: %q)", c.URLPrefix))
	}
	return errors.Join(errs...)
}

// NormalizedPrefix returns the prefix routes are mounted under.
func (c *Config) NormalizedPrefix() string {
	return routing.NewTable(routing.WithPrefix(c.URLPrefix)).Prefix()
}

// Instantiate calls f, turning a panic or nil result into an error.
func Instantiate(name string, f Factory) (cfg *Config, err error) {
	if f == nil {
		return nil, errdefs.Configuration("module %q must define a descriptor", name)
	}

	defer func() {
		if r := recover(); r != nil {
			cfg = nil
			err = &errdefs.LoadError{Unit: name, Err: fmt.Errorf("descriptor factory panicked: %v", r)}
		}
	}()

	cfg = f()
	if cfg == nil {
		return nil, errdefs.Configuration("module %q must define a descriptor", name)
	}
	return cfg, nil
}
