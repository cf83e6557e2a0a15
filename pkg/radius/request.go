package radius

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Request is the in-flight request handle passed through the pipeline and
// into map processors. Processors read the request list and write to the
// reply and control lists.
//
// A Request is owned by a single goroutine for the duration of processing;
// it is not safe for concurrent mutation.
type Request struct {
	// ID uniquely identifies the request for logging and audit records.
	ID uuid.UUID

	// Received is the time the request entered the pipeline.
	Received time.Time

	// Request holds the attributes of the incoming request.
	Request Pairs

	// Reply holds attributes destined for the response.
	Reply Pairs

	// Control holds internal attributes that steer processing and are
	// never sent on the wire.
	Control Pairs

	ctx context.Context
}

// NewRequest creates an empty request with a fresh ID and timestamp.
func NewRequest() *Request {
	return &Request{
		ID:       uuid.New(),
		Received: time.Now(),
	}
}

// Context returns the request's context, or context.Background when none
// was attached. Modules performing I/O derive their deadlines from it.
func (r *Request) Context() context.Context {
	if r.ctx != nil {
		return r.ctx
	}
	return context.Background()
}

// WithContext attaches a context to the request and returns the request for
// chaining.
func (r *Request) WithContext(ctx context.Context) *Request {
	r.ctx = ctx
	return r
}

// Attr resolves an attribute reference against the request, searching by
// list prefix. "request:", "reply:" and "control:" select a list
// explicitly; a bare name searches the request list.
func (r *Request) Attr(ref string) (string, bool) {
	list, name := splitRef(ref)
	switch list {
	case "reply":
		return r.Reply.Get(name)
	case "control":
		return r.Control.Get(name)
	default:
		return r.Request.Get(name)
	}
}

// List returns the named pair list for writing. An unknown prefix falls
// back to the reply list, which is where map results land by default.
func (r *Request) List(name string) *Pairs {
	switch name {
	case "request":
		return &r.Request
	case "control":
		return &r.Control
	default:
		return &r.Reply
	}
}

func splitRef(ref string) (list, name string) {
	for i := 0; i < len(ref); i++ {
		if ref[i] == ':' {
			return ref[:i], ref[i+1:]
		}
	}
	return "", ref
}
