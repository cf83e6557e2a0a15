package mapproc

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/emirpasic/gods/trees/redblacktree"
)

// compareNames orders processor names by length first; only names of equal
// length are compared byte-wise. Two names of different lengths are
// therefore never equal, even when one is a byte-prefix of the other
// ("sql" and "sqlite" are distinct entries).
func compareNames(a, b interface{}) int {
	sa := a.(string)
	sb := b.(string)

	if len(sa) != len(sb) {
		return len(sa) - len(sb)
	}
	return strings.Compare(sa, sb)
}

// Registry is a keyed store of map processor descriptors. The zero value is
// ready to use; the underlying tree is created on first registration.
//
// Registries are independent objects: tests and embedded uses may construct
// as many as they need instead of sharing process-wide state.
type Registry struct {
	tree   *redblacktree.Tree
	logger *slog.Logger
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		logger: slog.Default().With("component", "mapproc"),
	}
}

// Registration is the handle returned by Register. Closing it unregisters
// the processor; modules keep the handle for the lifetime of their
// registration and close it on unload.
type Registration struct {
	registry *Registry
	proc     *Proc
	once     sync.Once
}

// Close removes the registration's processor from the registry. It is
// idempotent: closing an already-closed handle, or one whose entry was
// since replaced and removed, is a safe no-op.
func (r *Registration) Close() error {
	r.once.Do(func() {
		r.registry.unregister(r.proc.name)
	})
	return nil
}

// Proc returns the descriptor this handle registered.
func (r *Registration) Proc() *Proc { return r.proc }

// Register adds a map processor under name. Every module providing a map
// processing function calls this during load.
//
// If a processor is already registered under an equal name (per the
// length-first comparison), its owner and callbacks are updated in place:
// the existing descriptor keeps its identity, so references held by
// previously compiled instances observe the new callbacks.
func (r *Registry) Register(owner any, name string, def Definition) (*Registration, error) {
	if name == "" {
		return nil, &RegistrationError{Message: "processor name cannot be empty"}
	}
	if def.Evaluate == nil {
		return nil, &RegistrationError{Name: name, Message: "evaluate callback cannot be nil"}
	}

	if r.tree == nil {
		r.tree = redblacktree.NewWith(compareNames)
	}
	if r.logger == nil {
		r.logger = slog.Default().With("component", "mapproc")
	}

	proc, ok := r.Find(name)
	if !ok {
		proc = &Proc{name: name}
		r.tree.Put(name, proc)
	}

	proc.owner = owner
	proc.def = def

	r.logger.Debug("registered map processor", "name", name, "replaced", ok)

	return &Registration{registry: r, proc: proc}, nil
}

// Find looks up a processor by name. It returns false when the registry was
// never used or no entry matches under the name comparison rule.
func (r *Registry) Find(name string) (*Proc, bool) {
	if r.tree == nil {
		return nil, false
	}
	value, ok := r.tree.Get(name)
	if !ok {
		return nil, false
	}
	return value.(*Proc), true
}

// Len returns the number of registered processors.
func (r *Registry) Len() int {
	if r.tree == nil {
		return 0
	}
	return r.tree.Size()
}

// Names returns all registered processor names in registry order
// (shortest first, then byte order).
func (r *Registry) Names() []string {
	if r.tree == nil {
		return nil
	}
	names := make([]string, 0, r.tree.Size())
	for _, key := range r.tree.Keys() {
		names = append(names, key.(string))
	}
	return names
}

// Close releases the registry and every contained descriptor. Safe to call
// on a registry that never saw a registration.
func (r *Registry) Close() error {
	if r.tree != nil {
		r.tree.Clear()
		r.tree = nil
	}
	return nil
}

// unregister removes the entry matching name. Removal re-derives the lookup
// key from the name, so it succeeds as a no-op when no matching node
// remains.
func (r *Registry) unregister(name string) {
	if r.tree == nil {
		return
	}
	if _, ok := r.tree.Get(name); !ok {
		return
	}
	r.tree.Remove(name)
	r.logger.Debug("unregistered map processor", "name", name)
}
