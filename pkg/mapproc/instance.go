package mapproc

import (
	"github.com/gigabytetmn/freeradius-server/pkg/radius"
	"github.com/gigabytetmn/freeradius-server/pkg/xlat"
)

// Instance binds a processor descriptor to one configured map block: a
// source template, a map list, and the processor's typed per-instance data.
// One instance is built per map block in the configuration.
//
// The descriptor must outlive the instance. Instance fields are immutable
// after construction; only the instance data may change during evaluation,
// at the processor's discretion.
type Instance struct {
	proc *Proc
	src  *xlat.Template
	maps []*radius.Map
	data any
}

// Instantiate builds an instance of proc bound to the given source template
// and map list.
//
// When the descriptor declares per-instance data, the data is allocated
// first; the instantiate hook (if any) then runs with the data, the owner
// handle, and the block's template and maps. A hook error aborts
// construction entirely: no instance or data remains reachable.
func Instantiate(proc *Proc, src *xlat.Template, maps []*radius.Map) (*Instance, error) {
	inst := &Instance{
		proc: proc,
		src:  src,
		maps: maps,
	}

	if proc.def.NewData != nil {
		inst.data = proc.def.NewData()
	}

	if proc.def.Instantiate != nil {
		if err := proc.def.Instantiate(inst.data, proc.owner, src, maps); err != nil {
			return nil, &InstantiationError{Proc: proc.name, Cause: err}
		}
	}

	return inst, nil
}

// Proc returns the descriptor the instance was built from.
func (inst *Instance) Proc() *Proc { return inst.proc }

// Source returns the instance's source template.
func (inst *Instance) Source() *xlat.Template { return inst.src }

// Maps returns the instance's map list. Callers must not modify it.
func (inst *Instance) Maps() []*radius.Map { return inst.maps }

// Data returns the processor's per-instance data, or nil when the
// descriptor declares none.
func (inst *Instance) Data() any { return inst.data }
