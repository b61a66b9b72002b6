package routing

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/GriffinCanCode/SuperKit/internal/shared/errdefs"
)

// Hook declares routes for a unit. Hooks run when the unit is imported.
type Hook func() error

// Units is the controller unit cache. Controller packages Defer their route
// declarations from init(); Import runs a unit's hooks at most once.
//
// Unit names are slash separated ("posts/controllers/comments"). A unit with
// registered descendants is a package.
type Units struct {
	mu      sync.Mutex
	hooks   map[string][]Hook
	known   map[string]struct{}
	results map[string]*importResult
}

type importResult struct {
	done bool
	err  error
}

// DefaultUnits is the cache used by groups created without WithUnits.
var DefaultUnits = NewUnits()

// NewUnits creates an empty unit cache.
func NewUnits() *Units {
	return &Units{
		hooks:   make(map[string][]Hook),
		known:   make(map[string]struct{}),
		results: make(map[string]*importResult),
	}
}

// Defer registers hook on DefaultUnits.
func Defer(unit string, hook Hook) {
	DefaultUnits.Defer(unit, hook)
}

// Defer registers a hook for unit. A nil hook only declares the unit.
func (u *Units) Defer(unit string, hook Hook) {
	unit = cleanUnit(unit)

	u.mu.Lock()
	defer u.mu.Unlock()
	u.known[unit] = struct{}{}
	if hook != nil {
		u.hooks[unit] = append(u.hooks[unit], hook)
	}
}

// Exists reports whether unit was declared or has declared descendants.
func (u *Units) Exists(unit string) bool {
	unit = cleanUnit(unit)

	u.mu.Lock()
	defer u.mu.Unlock()
	if _, ok := u.known[unit]; ok {
		return true
	}
	return u.hasDescendantsLocked(unit)
}

// IsPackage reports whether unit has declared descendants.
func (u *Units) IsPackage(unit string) bool {
	unit = cleanUnit(unit)

	u.mu.Lock()
	defer u.mu.Unlock()
	return u.hasDescendantsLocked(unit)
}

func (u *Units) hasDescendantsLocked(unit string) bool {
	prefix := unit + "/"
	for k := range u.known {
		if strings.HasPrefix(k, prefix) {
			return true
		}
	}
	return false
}

// Children returns the sorted names of the immediate children of pkg.
func (u *Units) Children(pkg string) []string {
	prefix := cleanUnit(pkg) + "/"

	u.mu.Lock()
	defer u.mu.Unlock()

	seen := make(map[string]struct{})
	for k := range u.known {
		rest, ok := strings.CutPrefix(k, prefix)
		if !ok || rest == "" {
			continue
		}
		name, _, _ := strings.Cut(rest, "/")
		seen[name] = struct{}{}
	}

	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Imported reports whether unit finished importing successfully.
func (u *Units) Imported(unit string) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	r, ok := u.results[cleanUnit(unit)]
	return ok && r.done && r.err == nil
}

// Import runs the hooks of unit once. Later calls return the first result.
// A unit imported again while its own hooks are still running sees nil.
func (u *Units) Import(unit string) error {
	unit = cleanUnit(unit)

	u.mu.Lock()
	if r, ok := u.results[unit]; ok {
		u.mu.Unlock()
		return r.err
	}
	if _, ok := u.known[unit]; !ok && !u.hasDescendantsLocked(unit) {
		u.mu.Unlock()
		return &errdefs.LoadError{Unit: unit, Err: errors.New("no such unit")}
	}
	r := &importResult{}
	u.results[unit] = r
	hooks := append([]Hook(nil), u.hooks[unit]...)
	u.mu.Unlock()

	err := runHooks(unit, hooks)

	u.mu.Lock()
	r.done = true
	r.err = err
	u.mu.Unlock()
	return err
}

// ImportTree imports every child unit of pkg not starting with "_", and with
// recursive set, descends into child packages.
func (u *Units) ImportTree(pkg string, recursive bool) error {
	pkg = cleanUnit(pkg)
	for _, child := range u.Children(pkg) {
		if strings.HasPrefix(child, "_") {
			continue
		}
		unit := pkg + "/" + child
		if err := u.Import(unit); err != nil {
			return err
		}
		if recursive && u.IsPackage(unit) {
			if err := u.ImportTree(unit, true); err != nil {
				return err
			}
		}
	}
	return nil
}

func runHooks(unit string, hooks []Hook) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &errdefs.LoadError{Unit: unit, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	for _, hook := range hooks {
		if hookErr := hook(); hookErr != nil {
			var le *errdefs.LoadError
			if errors.As(hookErr, &le) {
				return hookErr
			}
			return &errdefs.LoadError{Unit: unit, Err: hookErr}
		}
	}
	return nil
}

func cleanUnit(unit string) string {
	return strings.Trim(unit, "/")
}
