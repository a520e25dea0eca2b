// Package timer provides repeating timers for the simulation scheduler.
//
// Two primitives are offered. NewTimer is backed by time.Ticker and is meant
// for periods of 50ms and more. NewFastTimer re-arms on absolute deadlines
// and spins through the last stretch before each deadline, which keeps short
// periods from drifting or stretching under scheduler latency.
//
// Each timer runs its callback on its own goroutine, so callbacks of
// different timers run in parallel while callbacks of one timer never
// overlap.
package timer
