// Implements the cashier resource: a capacity-1 server with a FIFO wait
// queue. Tickets are granted strictly in request order.

package sim

import "errors"

// ErrNotHolder reports a release attempted by a ticket that does not hold the
// resource. It indicates a broken invariant in the calling process, not a
// recoverable condition.
var ErrNotHolder = errors.New("release by non-holder")

// Ticket is one claim on the resource. It is created by Request and becomes
// invalid once released.
type Ticket struct {
	grant func()
}

// Resource models a single exclusive server. At most one ticket holds it at
// any time; waiting tickets are granted in arrival order with no reordering.
type Resource struct {
	sched  *Scheduler
	holder *Ticket
	waitQ  []*Ticket
}

// NewResource creates an idle resource that delivers grants through sched.
func NewResource(sched *Scheduler) *Resource {
	return &Resource{sched: sched}
}

// Request files a claim on the resource and returns its ticket. If the
// resource is idle the claim is granted immediately; otherwise it joins the
// back of the wait queue and grant runs when every earlier ticket has
// released. Grants are delivered through the scheduler at the current clock
// time, so same-time grants keep registration order.
func (r *Resource) Request(grant func()) *Ticket {
	t := &Ticket{grant: grant}
	if r.holder == nil {
		r.holder = t
		r.deliver(t)
		return t
	}
	r.waitQ = append(r.waitQ, t)
	return t
}

// Release gives up the resource. Only the current holder may release; anyone
// else gets ErrNotHolder. Releasing promotes the next queued ticket, if any,
// and resumes its owning process at the current clock time.
func (r *Resource) Release(t *Ticket) error {
	if t == nil || r.holder != t {
		return ErrNotHolder
	}
	r.holder = nil
	if len(r.waitQ) > 0 {
		next := r.waitQ[0]
		r.waitQ = r.waitQ[1:]
		r.holder = next
		r.deliver(next)
	}
	return nil
}

// QueueLength returns the number of tickets waiting for the resource. The
// current holder is not counted.
func (r *Resource) QueueLength() int {
	return len(r.waitQ)
}

func (r *Resource) deliver(t *Ticket) {
	if err := r.sched.Schedule(0, t.grant); err != nil {
		panic(err)
	}
}
