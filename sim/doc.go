// Package sim provides a discrete-event simulation of a single-server
// checkout line.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - scheduler.go: the simulated clock and the (time, seq)-ordered pending-event heap
//   - resource.go: the capacity-1 cashier with FIFO grants
//   - checkout.go: the arrival, service, and monitor processes
//
// stats.go collects and derives per-run metrics, and simulation.go exposes
// the run-level API: RunSimulation for one run, RunMultipleSimulations for
// averaged sweeps across arrival rates.
//
// All processes are logically concurrent but execute strictly one at a time,
// yielding only at suspension points (a timeout or a resource wait). The
// cashier's FIFO grant policy is the only contention mechanism; no locking
// exists beyond the cooperative scheduling discipline itself.
package sim
