// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the run lifecycle: load the node file,
// build the address space, start the simulation, serve diagnostics and
// optionally mirror value changes to NATS until the context is cancelled.
// It is decoupled from any specific entrypoint like a CLI.
package app
