package lifecycle

import (
	"sync"

	"github.com/GriffinCanCode/SuperKit/internal/shared/errdefs"
)

// Ledger records the apps merged into one server, with the prefix each owns.
type Ledger struct {
	mu       sync.Mutex
	order    []string
	prefixes map[string]string // prefix -> app
	apps     map[string]string // app -> prefix
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		prefixes: make(map[string]string),
		apps:     make(map[string]string),
	}
}

// Has reports whether name has been mounted.
func (l *Ledger) Has(name string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.apps[name]
	return ok
}

// Names returns the mounted apps in mount order.
func (l *Ledger) Names() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.order...)
}

// Prefix returns the prefix name was mounted under.
func (l *Ledger) Prefix(name string) (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	p, ok := l.apps[name]
	return p, ok
}

// Len returns the number of mounted apps.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.order)
}

// Commit runs merge and records name under prefix, holding the ledger lock
// throughout. It is a no-op for an already mounted name. A prefix owned by
// another app fails with *errdefs.PrefixConflictError before merge runs.
func (l *Ledger) Commit(name, prefix string, merge func() error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.apps[name]; ok {
		return nil
	}
	if owner, taken := l.prefixes[prefix]; taken {
		return &errdefs.PrefixConflictError{Prefix: prefix, First: owner, Second: name}
	}
	if err := merge(); err != nil {
		return err
	}

	l.prefixes[prefix] = name
	l.apps[name] = prefix
	l.order = append(l.order, name)
	return nil
}
