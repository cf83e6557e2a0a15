package mapproc

import (
	"github.com/gigabytetmn/freeradius-server/pkg/radius"
	"github.com/gigabytetmn/freeradius-server/pkg/xlat"
)

// EvaluateFunc is a processor's evaluation callback. It receives the
// registering module's owner handle, the per-instance data built by the
// instantiate hook (nil when the processor declares none), the in-flight
// request, the fully expanded query string, and the instance's map list.
//
// The returned rcode is passed through to the pipeline verbatim; the core
// never interprets it.
type EvaluateFunc func(owner, data any, req *radius.Request, query string, maps []*radius.Map) radius.Rcode

// InstantiateFunc is a processor's optional per-instance setup hook. It runs
// once per configured map block, before the instance is ever evaluated, and
// may validate the map list or populate the instance data. Returning an
// error aborts instance construction.
type InstantiateFunc func(data, owner any, src *xlat.Template, maps []*radius.Map) error

// Definition bundles the callbacks a module supplies when registering a map
// processor. Evaluate is required; everything else is optional.
type Definition struct {
	// Evaluate is invoked at request time with the expanded query.
	Evaluate EvaluateFunc

	// Escape sanitizes expanded sub-values in the source template,
	// preventing injection into the processor's query language.
	Escape xlat.EscapeFunc

	// Instantiate runs once per configured map block.
	Instantiate InstantiateFunc

	// NewData allocates the processor's typed per-instance data. When nil
	// the instance carries no data and hooks receive nil.
	NewData func() any
}

// Proc is a registered map processor descriptor. Its fields are written
// only by Register (including in-place update on re-registration) and are
// immutable during evaluation.
type Proc struct {
	owner any
	name  string
	def   Definition
}

// Name returns the name the processor was registered under.
func (p *Proc) Name() string { return p.name }

// Owner returns the opaque owner handle of the registering module.
func (p *Proc) Owner() any { return p.owner }

// Definition returns the callbacks currently bound to the descriptor.
func (p *Proc) Definition() Definition { return p.def }
