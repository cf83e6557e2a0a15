package mapproc

import (
	"log/slog"
	"time"

	"github.com/gigabytetmn/freeradius-server/pkg/radius"
)

// Result captures one evaluation for observability consumers: the rcode the
// pipeline acts on, plus the expanded query and timing for the audit log.
type Result struct {
	// Rcode is the processor's result code, or RcodeFail when expansion
	// failed before the processor could run.
	Rcode radius.Rcode

	// Query is the expanded source template. Empty when expansion failed.
	Query string

	// ExpandErr is the template expansion error, nil on the normal path.
	ExpandErr error

	// Duration covers expansion plus processor execution.
	Duration time.Duration
}

// Evaluate expands the instance's source template against the request and
// invokes the processor with the result.
//
// The template is expanded with the descriptor's escape function applied to
// sub-expansions and the owner handle as expansion context. Expansion
// failure short-circuits to RcodeFail without invoking the processor.
// Otherwise the processor's rcode is returned unchanged. The expanded
// string is transient: it is scoped to this call on every exit path.
//
// Evaluate is safe for concurrent use across requests.
func (inst *Instance) Evaluate(req *radius.Request) radius.Rcode {
	return inst.EvaluateResult(req).Rcode
}

// EvaluateResult is Evaluate with the evaluation detail the pipeline feeds
// to metrics and the query log.
func (inst *Instance) EvaluateResult(req *radius.Request) Result {
	start := time.Now()

	query, err := inst.src.Expand(req, inst.proc.def.Escape, inst.proc.owner)
	if err != nil {
		slog.Warn("map source expansion failed",
			"processor", inst.proc.name,
			"template", inst.src.String(),
			"request_id", req.ID,
			"error", err,
		)
		return Result{Rcode: radius.RcodeFail, ExpandErr: err, Duration: time.Since(start)}
	}

	rcode := inst.proc.def.Evaluate(inst.proc.owner, inst.data, req, query, inst.maps)

	return Result{Rcode: rcode, Query: query, Duration: time.Since(start)}
}
