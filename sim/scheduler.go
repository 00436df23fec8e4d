package sim

import (
	"container/heap"
	"time"

	"github.com/pthm-cable/launch/vehicle"
)

// Task is a deferred mutation of the rocket, run on the simulation goroutine.
type Task func(r *vehicle.Rocket)

type scheduledTask struct {
	due time.Time
	seq uint64
	fn  Task
}

// taskHeap orders tasks by due time, then by insertion order.
type taskHeap []scheduledTask

func (h taskHeap) Len() int { return len(h) }
func (h taskHeap) Less(i, j int) bool {
	if h[i].due.Equal(h[j].due) {
		return h[i].seq < h[j].seq
	}
	return h[i].due.Before(h[j].due)
}
func (h taskHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *taskHeap) Push(x any)   { *h = append(*h, x.(scheduledTask)) }
func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Scheduler queues delayed rocket mutations on the simulation clock. Guidance code
// uses it instead of goroutines; the stepper runs due tasks on its own goroutine.
// It is not safe for concurrent use.
type Scheduler struct {
	clock Clock
	tasks taskHeap
	seq   uint64
}

// NewScheduler creates an empty scheduler reading time from clock.
func NewScheduler(clock Clock) *Scheduler {
	return &Scheduler{clock: clock}
}

// After queues fn to run once d has elapsed.
func (s *Scheduler) After(d time.Duration, fn Task) {
	s.seq++
	heap.Push(&s.tasks, scheduledTask{due: s.clock.Now().Add(d), seq: s.seq, fn: fn})
}

// AfterSeconds is After with a duration in seconds.
func (s *Scheduler) AfterSeconds(sec float64, fn Task) {
	s.After(time.Duration(sec*float64(time.Second)), fn)
}

// RunDue runs every task whose due time has passed, in due order, and returns how
// many ran. Tasks queued by a running task run in the same call if already due.
func (s *Scheduler) RunDue(r *vehicle.Rocket) int {
	now := s.clock.Now()
	ran := 0
	for len(s.tasks) > 0 && !s.tasks[0].due.After(now) {
		t := heap.Pop(&s.tasks).(scheduledTask)
		t.fn(r)
		ran++
	}
	return ran
}

// Pending returns the number of queued tasks.
func (s *Scheduler) Pending() int { return len(s.tasks) }

// Clear drops all queued tasks.
func (s *Scheduler) Clear() {
	s.tasks = s.tasks[:0]
}
