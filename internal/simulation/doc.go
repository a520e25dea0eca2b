// Package simulation implements the value-generation strategies bound to
// simulated nodes.
//
// Strategies are pure: Next maps the previous State to the next State and the
// value to write. All mutable state lives in the caller's per-node State
// slot, so strategies can be tested without timers.
package simulation
