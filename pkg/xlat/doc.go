// Package xlat implements string template expansion against request
// attribute state.
//
// Templates contain literal text interleaved with %{...} directives. A
// directive names an attribute, optionally qualified with a list prefix:
//
//	"SELECT passwd FROM users WHERE name = '%{User-Name}'"
//	"%{control:Auth-Type}"
//
// Expansion resolves each directive against a request and concatenates the
// results. Callers may supply an escape function which is applied to every
// expanded sub-value (and never to literal text), so that untrusted
// attribute data can be sanitized before insertion into a query string.
package xlat
