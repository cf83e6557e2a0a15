// Package radius contains the request representation shared by the map
// processing pipeline: attribute/value pairs, the request handle passed to
// processors, attribute maps, and the module result codes that tell the
// surrounding pipeline how to proceed after an evaluation.
//
// The package is deliberately transport-free. Packet encoding and the
// session layer live outside this repository; everything here operates on
// already-decoded attribute state.
package radius
