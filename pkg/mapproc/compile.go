package mapproc

import (
	"fmt"

	"github.com/gigabytetmn/freeradius-server/pkg/config"
	"github.com/gigabytetmn/freeradius-server/pkg/radius"
	"github.com/gigabytetmn/freeradius-server/pkg/xlat"
)

// Compile turns one configured map block into an evaluable instance: it
// resolves the processor by name, parses the source template and map
// entries, and runs the two-stage instantiation.
func Compile(reg *Registry, block config.MapBlock) (*Instance, error) {
	proc, ok := reg.Find(block.Processor)
	if !ok {
		return nil, fmt.Errorf("map block %q: no map processor registered under %q",
			block.Name, block.Processor)
	}

	src, err := xlat.Parse(block.Src)
	if err != nil {
		return nil, fmt.Errorf("map block %q: invalid source template: %w", block.Name, err)
	}

	if len(block.Maps) == 0 {
		return nil, fmt.Errorf("map block %q: at least one map entry is required", block.Name)
	}

	maps := make([]*radius.Map, 0, len(block.Maps))
	for i, entry := range block.Maps {
		if entry.Dst == "" {
			return nil, fmt.Errorf("map block %q: map entry %d has no destination attribute",
				block.Name, i)
		}

		opText := entry.Op
		if opText == "" {
			opText = string(radius.OpSet)
		}
		op, err := radius.ParseOp(opText)
		if err != nil {
			return nil, fmt.Errorf("map block %q: map entry %d: %w", block.Name, i, err)
		}

		maps = append(maps, &radius.Map{Dst: entry.Dst, Op: op, Src: entry.Src})
	}

	inst, err := Instantiate(proc, src, maps)
	if err != nil {
		return nil, fmt.Errorf("map block %q: %w", block.Name, err)
	}

	return inst, nil
}
