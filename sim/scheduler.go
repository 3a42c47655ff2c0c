// sim/scheduler.go
package sim

import (
	"container/heap"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// ErrInvalidDelay reports a negative suspend duration passed to Schedule.
var ErrInvalidDelay = errors.New("invalid delay")

// pendingEvent is a suspended process resumption due to run at a fixed
// simulated time. seq breaks ties between resumptions scheduled for the same
// time: they fire in registration order, which keeps seeded runs reproducible.
type pendingEvent struct {
	time float64
	seq  uint64
	fn   func()
}

// eventQueue implements heap.Interface and orders pending resumptions by
// (time, seq).
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type eventQueue []*pendingEvent

func (eq eventQueue) Len() int { return len(eq) }
func (eq eventQueue) Less(i, j int) bool {
	if eq[i].time != eq[j].time {
		return eq[i].time < eq[j].time
	}
	return eq[i].seq < eq[j].seq
}
func (eq eventQueue) Swap(i, j int) { eq[i], eq[j] = eq[j], eq[i] }

func (eq *eventQueue) Push(x any) {
	*eq = append(*eq, x.(*pendingEvent))
}

func (eq *eventQueue) Pop() any {
	old := *eq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*eq = old[0 : n-1]
	return item
}

// Scheduler holds the simulated clock and the set of pending resumptions.
// All processes in a run are cooperatively interleaved through a single
// Scheduler: exactly one resumption executes at a time, and the clock moves
// only when the scheduler advances it to the next event.
type Scheduler struct {
	now     float64
	nextSeq uint64
	pending eventQueue
}

// NewScheduler creates a scheduler with the clock at t=0 and nothing pending.
func NewScheduler() *Scheduler {
	return &Scheduler{pending: make(eventQueue, 0)}
}

// Now returns the current simulated time in minutes. It never decreases.
func (s *Scheduler) Now() float64 {
	return s.now
}

// Pending returns the number of resumptions waiting to run.
func (s *Scheduler) Pending() int {
	return len(s.pending)
}

// Schedule registers fn to run at Now()+delay. Resumptions scheduled for the
// same time run in the order they were registered. fn may itself call
// Schedule; insertion during the run loop is safe.
func (s *Scheduler) Schedule(delay float64, fn func()) error {
	if delay < 0 {
		return fmt.Errorf("%w: delay must be non-negative, got %f", ErrInvalidDelay, delay)
	}
	ev := &pendingEvent{time: s.now + delay, seq: s.nextSeq, fn: fn}
	s.nextSeq++
	heap.Push(&s.pending, ev)
	return nil
}

// RunUntil pops the earliest pending resumption, advances the clock to its
// time, and invokes it, repeating until the pending set is empty or the next
// resumption is scheduled past horizon. In the latter case the clock is not
// advanced past horizon and the event stays undelivered: the simulation
// simply stops observing after the horizon.
func (s *Scheduler) RunUntil(horizon float64) {
	for len(s.pending) > 0 {
		if s.pending[0].time > horizon {
			break
		}
		ev := heap.Pop(&s.pending).(*pendingEvent)
		s.now = ev.time
		logrus.Debugf("[t=%09.3f] resuming event #%d", s.now, ev.seq)
		ev.fn()
	}
}
