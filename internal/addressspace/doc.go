// Package addressspace provides an in-memory, thread-safe address space that
// hosts the folders and variables created by the builder.
//
// # Concurrency Model
//
// Structure (folders, the variable index) is guarded by one RWMutex and is
// only written while the tree is built. Each Variable guards its own value
// with its own lock, so simulation ticks for different variables never
// contend. Change subscribers are stored behind an atomic pointer and are
// invoked synchronously after every write, outside the variable lock.
package addressspace
