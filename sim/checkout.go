// Implements the checkout-line process model: the arrival generator, the
// per-customer service routine, and the queue monitor. Each process is a
// chain of resumptions driven by the Scheduler; a segment between two
// suspension points runs atomically with respect to every other process.

package sim

import (
	"math"

	"github.com/sirupsen/logrus"
)

// monitorInterval is the fixed queue-sampling cadence in minutes.
const monitorInterval = 0.1

// Checkout owns one simulation run's processes and the state they share.
type Checkout struct {
	sched    *Scheduler
	cashier  *Resource
	stats    *Collector
	variates VariateSource

	arrivalRate float64
	serviceRate float64
	duration    float64

	customers   int
	monitorTick int
	failure     error
}

// NewCheckout wires the processes of one run together. Start launches them.
func NewCheckout(sched *Scheduler, cashier *Resource, stats *Collector, variates VariateSource,
	arrivalRate, serviceRate, duration float64) *Checkout {
	return &Checkout{
		sched:       sched,
		cashier:     cashier,
		stats:       stats,
		variates:    variates,
		arrivalRate: arrivalRate,
		serviceRate: serviceRate,
		duration:    duration,
	}
}

// Start launches the arrival generator and the queue monitor at t=0.
func (c *Checkout) Start() {
	c.mustSchedule(0, c.generateArrivals)
	c.mustSchedule(0, c.monitorQueue)
}

// Err returns the first error raised by any process, or nil.
func (c *Checkout) Err() error {
	return c.failure
}

// generateArrivals spawns a customer-service process at exponentially
// distributed inter-arrival times until the horizon. A non-positive arrival
// rate means no customers ever arrive, so the generator stops immediately
// rather than erroring. Termination is natural: a resume past the horizon
// falls through without spawning.
func (c *Checkout) generateArrivals() {
	if c.failure != nil || c.arrivalRate <= 0 {
		return
	}
	delay, err := c.variates.ExpVariate(c.arrivalRate)
	if err != nil {
		c.fail(err)
		return
	}
	c.mustSchedule(delay, func() {
		if c.sched.Now() > c.duration {
			return
		}
		c.customers++
		c.serveCustomer(c.customers)
		c.generateArrivals()
	})
}

// serveCustomer runs one customer through the checkout: request the cashier,
// record the wait once granted, hold the cashier for an exponentially
// distributed service time, then release it.
func (c *Checkout) serveCustomer(id int) {
	arrival := c.sched.Now()
	logrus.Debugf("<< customer %d arrives at t=%.3f", id, arrival)

	var ticket *Ticket
	ticket = c.cashier.Request(func() {
		now := c.sched.Now()
		c.stats.RecordWait(now - arrival)

		serviceTime, err := c.variates.ExpVariate(c.serviceRate)
		if err != nil {
			c.fail(err)
			return
		}
		// Busy time credited beyond the horizon is never observed, so only
		// the in-window share counts toward utilization.
		c.stats.AddBusyTime(math.Min(serviceTime, c.duration-now))

		c.mustSchedule(serviceTime, func() {
			logrus.Debugf(">> customer %d leaves at t=%.3f", id, c.sched.Now())
			if err := c.cashier.Release(ticket); err != nil {
				panic(err)
			}
		})
	})
}

// monitorQueue samples the cashier queue length every monitorInterval minutes
// until the horizon. It polls independently of arrivals and departures, so
// queue-length statistics are piecewise-constant step approximations between
// samples.
func (c *Checkout) monitorQueue() {
	if c.sched.Now() > c.duration {
		return
	}
	c.stats.SampleQueue(c.sched.Now(), c.cashier.QueueLength())
	// Sample times sit on an absolute grid; accumulating now+interval would
	// drift from repeated float addition.
	c.monitorTick++
	next := float64(c.monitorTick) * monitorInterval
	c.mustSchedule(next-c.sched.Now(), c.monitorQueue)
}

func (c *Checkout) fail(err error) {
	if c.failure == nil {
		c.failure = err
	}
}

func (c *Checkout) mustSchedule(delay float64, fn func()) {
	if err := c.sched.Schedule(delay, fn); err != nil {
		panic(err)
	}
}
