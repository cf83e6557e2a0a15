package radius

import "fmt"

// Op is a map assignment operator.
type Op string

const (
	// OpSet unconditionally sets the destination attribute (":=").
	OpSet Op = ":="
	// OpEqual sets the destination only when it is not already present ("=").
	OpEqual Op = "="
	// OpAdd appends a new pair regardless of existing ones ("+=").
	OpAdd Op = "+="
)

// ParseOp validates an operator string from configuration.
func ParseOp(s string) (Op, error) {
	switch Op(s) {
	case OpSet, OpEqual, OpAdd:
		return Op(s), nil
	}
	return "", fmt.Errorf("unknown map operator %q", s)
}

// Map is a single source-to-destination attribute assignment rule. A map
// processor evaluates its source and applies the result to Dst using Op.
//
// Dst may carry a list prefix ("reply:Reply-Message"); without one the
// reply list is assumed. Src is processor-specific: the SQL processor
// treats it as a column name, the REST processor as a JSON field.
type Map struct {
	Dst string
	Op  Op
	Src string
}

// Apply writes value to the map's destination attribute on the request,
// honoring the assignment operator.
func (m *Map) Apply(req *Request, value string) {
	list, name := splitRef(m.Dst)
	pairs := req.List(list)

	switch m.Op {
	case OpEqual:
		if _, ok := pairs.Get(name); ok {
			return
		}
		pairs.Add(name, value)
	case OpAdd:
		pairs.Add(name, value)
	default:
		pairs.Set(name, value)
	}
}
