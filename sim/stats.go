// Tracks per-run statistics: customer wait times, cashier busy time, and
// time-stamped queue-length samples.

package sim

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// utilizationEpsilon guards the utilization division when the clock never
// advanced.
const utilizationEpsilon = 1e-9

// Collector accumulates raw statistics over one simulation run. Samples are
// append-only; Summarize derives the reported metrics without mutating them.
// A Collector is bound to a single run and never shared.
type Collector struct {
	waits       []float64
	sampleTimes []float64
	queueLens   []float64
	busyTime    float64
	maxQueueLen int
}

// NewCollector creates an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// RecordWait appends one customer's wait time (arrival until service start).
func (c *Collector) RecordWait(wait float64) {
	c.waits = append(c.waits, wait)
}

// AddBusyTime credits d minutes of cashier busy time.
func (c *Collector) AddBusyTime(d float64) {
	c.busyTime += d
}

// SampleQueue appends a (timestamp, queue length) observation and updates the
// running maximum.
func (c *Collector) SampleQueue(now float64, length int) {
	c.sampleTimes = append(c.sampleTimes, now)
	c.queueLens = append(c.queueLens, float64(length))
	if length > c.maxQueueLen {
		c.maxQueueLen = length
	}
}

// Summary holds the derived metrics of one simulation run.
type Summary struct {
	AvgWait        float64 // mean customer wait time (minutes)
	Utilization    float64 // fraction of elapsed time the cashier was busy, in [0, 1]
	MaxQueueLen    int     // largest observed queue length
	AvgQueueLen    float64 // time-weighted average queue length
	TotalCustomers int     // customers that reached the cashier
}

// Summarize derives a Summary from the collected samples. now is the final
// clock reading and duration the configured horizon. All fields default to
// zero in the degenerate no-sample case.
//
// The average queue length is time-weighted: each sample is weighted by the
// interval until the next one, and the last sample's weight extends to the
// horizon. Sampling is periodic, so only the boundary interval can differ
// from the rest.
func (c *Collector) Summarize(now, duration float64) Summary {
	s := Summary{
		MaxQueueLen:    c.maxQueueLen,
		TotalCustomers: len(c.waits),
	}

	if len(c.waits) > 0 {
		s.AvgWait = stat.Mean(c.waits, nil)
	}

	// Busy credit is truncated at the horizon, but the clock can stop short
	// of it when no event lands exactly there; cap the ratio so busy time
	// never exceeds elapsed time.
	s.Utilization = math.Min(c.busyTime/math.Max(now, utilizationEpsilon), 1)

	if n := len(c.queueLens); n > 0 {
		weights := make([]float64, n)
		total := 0.0
		for i := 0; i < n-1; i++ {
			weights[i] = c.sampleTimes[i+1] - c.sampleTimes[i]
			total += weights[i]
		}
		weights[n-1] = duration - c.sampleTimes[n-1]
		total += weights[n-1]
		if total > 0 {
			s.AvgQueueLen = stat.Mean(c.queueLens, weights)
		} else {
			s.AvgQueueLen = stat.Mean(c.queueLens, nil)
		}
	}

	return s
}
