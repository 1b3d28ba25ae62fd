// Package sched implements a two-class batching dispatch scheduler for block
// I/O requests. Pending requests are kept in two FIFO queues, one per service
// class (sync, async). Each call to Dispatch hands the device a batch of up
// to sync_ratio sync requests followed by at most one async request, so
// latency-sensitive sync traffic stays responsive while async traffic is
// never starved for longer than one batch.
//
// The scheduler performs no I/O of its own and runs no background
// goroutines; the host calls it whenever a request arrives or the device can
// accept more work. All operations are serialized by a per-instance mutex.
package sched
