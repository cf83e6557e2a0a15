// Package mapproc implements the map-processor registry and evaluation
// lifecycle.
//
// A map processor evaluates a query string against an external data source
// (SQL, REST, ...) and applies the results to request attributes through an
// ordered list of maps. Modules register a processor under a name during the
// load phase; the configuration compiler resolves processors by name and
// builds one Instance per map block; the request pipeline evaluates
// instances at request time.
//
// # Lifecycle
//
//	module load:    Registry.Register(owner, name, def) -> *Registration
//	config compile: Compile / Instantiate                -> *Instance
//	request time:   Instance.Evaluate(request)           -> radius.Rcode
//	module unload:  Registration.Close()
//
// # Thread safety
//
// Registration, unregistration and Close are expected to run during a
// single-threaded load/unload phase; the registry performs no internal
// locking for them. Evaluation is safe for concurrent use across any number
// of in-flight requests because descriptors and instances are immutable
// after construction. Processor callbacks must be reentrant.
package mapproc
