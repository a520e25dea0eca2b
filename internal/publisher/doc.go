// Package publisher mirrors value changes of the address space to NATS.
//
// Every write the scheduler makes is published as one JSON message on the
// subject "<prefix>.<namespace>.<node id>", where characters NATS reserves
// in subject tokens are replaced by underscores. Publishing is fire and
// forget: failures are counted and logged, never returned to the tick path.
package publisher
