package sim

import (
	"testing"
	"time"

	"github.com/pthm-cable/launch/vehicle"
)

func TestScheduler_RunsInDueOrder(t *testing.T) {
	clock := NewManualClock(testEpoch)
	s := NewScheduler(clock)

	var order []string
	record := func(name string) Task {
		return func(*vehicle.Rocket) { order = append(order, name) }
	}
	s.After(2*time.Second, record("c"))
	s.After(time.Second, record("a"))
	s.After(time.Second, record("b"))

	if n := s.RunDue(nil); n != 0 {
		t.Fatalf("nothing should be due yet, ran %d", n)
	}

	clock.Advance(time.Second)
	if n := s.RunDue(nil); n != 2 {
		t.Fatalf("expected 2 tasks due, ran %d", n)
	}
	clock.Advance(time.Second)
	s.RunDue(nil)

	want := []string{"a", "b", "c"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
	if s.Pending() != 0 {
		t.Errorf("expected empty queue, %d pending", s.Pending())
	}
}

func TestScheduler_ChainedTaskRunsWhenDue(t *testing.T) {
	clock := NewManualClock(testEpoch)
	s := NewScheduler(clock)

	ran := 0
	s.AfterSeconds(0.5, func(*vehicle.Rocket) {
		ran++
		s.AfterSeconds(0.5, func(*vehicle.Rocket) { ran++ })
	})

	clock.AdvanceSeconds(0.5)
	s.RunDue(nil)
	if ran != 1 || s.Pending() != 1 {
		t.Fatalf("after first step ran=%d pending=%d", ran, s.Pending())
	}
	clock.AdvanceSeconds(0.5)
	s.RunDue(nil)
	if ran != 2 {
		t.Errorf("chained task did not run, ran=%d", ran)
	}
}

func TestScheduler_Clear(t *testing.T) {
	clock := NewManualClock(testEpoch)
	s := NewScheduler(clock)

	ran := false
	s.After(time.Millisecond, func(*vehicle.Rocket) { ran = true })
	s.Clear()
	clock.Advance(time.Second)
	s.RunDue(nil)

	if ran {
		t.Error("cleared task ran")
	}
}
