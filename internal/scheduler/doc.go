// Package scheduler drives the simulated nodes of a registry on independent
// repeating timers.
//
// # How It Works
//
// Start binds a strategy to every RuntimeNode first; a node whose parameters
// have no strategy aborts startup before any timer exists. It then creates
// one timer per node:
//   - intervals of 50ms and more use the standard timer primitive;
//   - shorter intervals use the high-resolution primitive.
//
// On every tick the node's lock is acquired, the strategy computes the next
// value from the node's generator state, the value is written to the host
// together with the current timestamp, and the new state is stored.
//
// # Lifecycle
//
// A Scheduler moves from Idle to Running on Start and to Stopped on Stop.
// Stopped is terminal: the scheduler cannot be restarted.
// Stop disables every timer Start created; a tick already in progress is
// allowed to finish, and no tick starts afterwards.
//
// # Thread-Safety
//
// Ticks for different nodes run concurrently with no shared lock. Ticks for
// the same node are serialized by the node's own lock.
package scheduler
