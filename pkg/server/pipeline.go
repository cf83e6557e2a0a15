package server

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gigabytetmn/freeradius-server/pkg/config"
	"github.com/gigabytetmn/freeradius-server/pkg/mapproc"
	"github.com/gigabytetmn/freeradius-server/pkg/querylog"
	"github.com/gigabytetmn/freeradius-server/pkg/radius"
	"github.com/gigabytetmn/freeradius-server/pkg/telemetry/metrics"
)

// Pipeline evaluates the configured map blocks against requests. Blocks run
// in configuration order; Reject, Handled and Fail short-circuit the run.
type Pipeline struct {
	registry *mapproc.Registry
	metrics  *metrics.EvalMetrics
	recorder *querylog.Recorder
	logger   *slog.Logger

	mu     sync.RWMutex
	blocks []compiledBlock
}

type compiledBlock struct {
	name string
	inst *mapproc.Instance
}

// NewPipeline creates a pipeline over the given registry. metrics and
// recorder are optional; nil disables them.
func NewPipeline(registry *mapproc.Registry, m *metrics.EvalMetrics, rec *querylog.Recorder) *Pipeline {
	return &Pipeline{
		registry: registry,
		metrics:  m,
		recorder: rec,
		logger:   slog.Default().With("component", "pipeline"),
	}
}

// Registry returns the pipeline's processor registry.
func (p *Pipeline) Registry() *mapproc.Registry { return p.registry }

// LoadMaps compiles the given map blocks and atomically replaces the active
// set. On any compile error the previous set stays active.
func (p *Pipeline) LoadMaps(blocks []config.MapBlock) error {
	compiled := make([]compiledBlock, 0, len(blocks))
	for _, block := range blocks {
		inst, err := mapproc.Compile(p.registry, block)
		if err != nil {
			return err
		}
		compiled = append(compiled, compiledBlock{name: block.Name, inst: inst})
	}

	p.mu.Lock()
	p.blocks = compiled
	p.mu.Unlock()

	p.metrics.SetRegisteredProcessors(p.registry.Len())
	p.logger.Info("map blocks loaded", "count", len(compiled))

	return nil
}

// BlockCount returns the number of active map blocks.
func (p *Pipeline) BlockCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.blocks)
}

// ProcessRequest runs every active map block against the request and
// returns the aggregate rcode:
//
//   - Reject, Handled, and Fail short-circuit and are returned as-is.
//   - Updated and OK upgrade the aggregate.
//   - Notfound and Noop leave it untouched.
//
// A request touched by no block yields RcodeNoop.
func (p *Pipeline) ProcessRequest(ctx context.Context, req *radius.Request) radius.Rcode {
	req.WithContext(ctx)

	p.mu.RLock()
	blocks := p.blocks
	p.mu.RUnlock()

	final := radius.RcodeNoop
	for _, b := range blocks {
		res := b.inst.EvaluateResult(req)
		p.observe(req, b, res)

		switch res.Rcode {
		case radius.RcodeReject, radius.RcodeHandled, radius.RcodeFail:
			return res.Rcode
		case radius.RcodeUpdated:
			final = radius.RcodeUpdated
		case radius.RcodeOK:
			if final == radius.RcodeNoop {
				final = radius.RcodeOK
			}
		}
	}

	return final
}

func (p *Pipeline) observe(req *radius.Request, b compiledBlock, res mapproc.Result) {
	proc := b.inst.Proc().Name()

	p.metrics.RecordEvaluation(proc, b.name, res.Rcode, res.Duration)
	if res.ExpandErr != nil {
		p.metrics.RecordExpansionFailure(b.name)
	}

	if p.recorder != nil {
		p.recorder.Record(&querylog.Record{
			ID:        uuid.New(),
			RequestID: req.ID,
			Block:     b.name,
			Processor: proc,
			Query:     res.Query,
			Rcode:     res.Rcode,
			Duration:  res.Duration,
			Timestamp: time.Now(),
		})
	}
}
