// Package selection turns include/exclude options into the ordered list of
// apps to mount.
package selection

import (
	"github.com/GriffinCanCode/SuperKit/internal/shared/errdefs"
	"github.com/GriffinCanCode/SuperKit/internal/shared/types"
)

// Options selects apps from the discovered set.
type Options struct {
	IncludeAll bool     `json:"include_all" yaml:"include_all" toml:"include_all"`
	Include    []string `json:"include" yaml:"include" toml:"include"`
	Exclude    []string `json:"exclude" yaml:"exclude" toml:"exclude"`
}

// All selects every discovered app.
func All() Options {
	return Options{IncludeAll: true}
}

// Resolve validates opts against discovered and returns the selected names
// in ascending order. Exclusions naming unknown apps are ignored.
func Resolve(opts Options, discovered types.NameSet) ([]string, error) {
	if opts.IncludeAll && len(opts.Include) > 0 {
		return nil, errdefs.Configuration("cannot combine include_all with include")
	}

	var base types.NameSet
	if opts.IncludeAll {
		base = types.NewNameSet(discovered.Sorted()...)
	} else {
		if len(opts.Include) == 0 {
			return nil, errdefs.Configuration("must specify include_all or include")
		}
		base = types.NewNameSet(opts.Include...)
		if unknown := base.Difference(discovered); unknown.Len() > 0 {
			return nil, &errdefs.UnknownAppsError{Names: unknown.Sorted()}
		}
	}

	selected := base.Difference(types.NewNameSet(opts.Exclude...))
	if selected.Len() == 0 {
		return nil, errdefs.Configuration("no modules left after exclusion")
	}
	return selected.Sorted(), nil
}
