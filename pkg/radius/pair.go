package radius

import "fmt"

// Pair is a single attribute/value pair.
type Pair struct {
	Name  string
	Value string
}

// String returns the pair in "Name = Value" form, matching the debug output
// format used throughout the server.
func (p Pair) String() string {
	return fmt.Sprintf("%s = %q", p.Name, p.Value)
}

// Pairs is an ordered attribute list. Order is preserved because some
// attributes may legitimately appear more than once.
type Pairs []Pair

// Get returns the value of the first pair with the given name.
func (ps Pairs) Get(name string) (string, bool) {
	for _, p := range ps {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// GetAll returns the values of every pair with the given name, in order.
func (ps Pairs) GetAll(name string) []string {
	var values []string
	for _, p := range ps {
		if p.Name == name {
			values = append(values, p.Value)
		}
	}
	return values
}

// Add appends a pair, keeping any existing pairs with the same name.
func (ps *Pairs) Add(name, value string) {
	*ps = append(*ps, Pair{Name: name, Value: value})
}

// Set replaces the first pair with the given name, or appends when absent.
// Additional pairs with the same name are left untouched.
func (ps *Pairs) Set(name, value string) {
	for i := range *ps {
		if (*ps)[i].Name == name {
			(*ps)[i].Value = value
			return
		}
	}
	ps.Add(name, value)
}

// Delete removes every pair with the given name and reports how many were
// removed.
func (ps *Pairs) Delete(name string) int {
	kept := (*ps)[:0]
	removed := 0
	for _, p := range *ps {
		if p.Name == name {
			removed++
			continue
		}
		kept = append(kept, p)
	}
	*ps = kept
	return removed
}
