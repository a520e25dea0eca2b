// Package registry holds the simulated nodes produced by the builder.
//
// Each RuntimeNode pairs a variable handle with the simulation parameters it
// was built from and owns its own lock and generator state. The registry is
// an arena of these entries: it is populated once during the tree build and
// then only read. There is no global lock on the tick path; the read-modify-
// write of one node's state is serialized by that node's lock alone.
package registry
