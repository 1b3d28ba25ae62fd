// Package simulator is a stand-in for the host block-I/O subsystem: it
// generates a synthetic request stream, runs the host-side merge layer
// against the scheduler's adjacency operations, and consumes dispatched
// requests with a virtual device. It exists to exercise the scheduler
// end to end and to drive the simulate command.
package simulator
