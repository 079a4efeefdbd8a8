package scheduler

import (
	"testing"
	"time"
)

func TestScheduleAndDrainInOrder(t *testing.T) {
	base := time.Unix(1000, 0)
	now := base
	clock := func() time.Time { return now }
	s := NewWithClock(clock)

	s.Schedule(base.Add(2*time.Second), "second")
	s.Schedule(base.Add(1*time.Second), "first")
	s.Schedule(base.Add(3*time.Second), "third")

	if _, ok := s.NextEvent(); ok {
		t.Fatal("nothing should be due yet")
	}

	now = base.Add(1 * time.Second)
	e, ok := s.NextEvent()
	if !ok || e != "first" {
		t.Fatalf("got %v (ok=%v), want \"first\"", e, ok)
	}
	if _, ok := s.NextEvent(); ok {
		t.Fatal("\"second\" should not be due yet")
	}

	now = base.Add(10 * time.Second)
	e, ok = s.NextEvent()
	if !ok || e != "second" {
		t.Fatalf("got %v (ok=%v), want \"second\"", e, ok)
	}
	e, ok = s.NextEvent()
	if !ok || e != "third" {
		t.Fatalf("got %v (ok=%v), want \"third\"", e, ok)
	}
	if s.Len() != 0 {
		t.Fatalf("len = %d, want 0", s.Len())
	}
}

func TestScheduleNowIsImmediatelyDue(t *testing.T) {
	now := time.Unix(2000, 0)
	s := NewWithClock(func() time.Time { return now })
	s.ScheduleNow("go")
	e, ok := s.NextEvent()
	if !ok || e != "go" {
		t.Fatalf("got %v (ok=%v), want \"go\"", e, ok)
	}
}

func TestNextEventDuration(t *testing.T) {
	base := time.Unix(3000, 0)
	s := NewWithClock(func() time.Time { return base })
	if _, ok := s.NextEventDuration(); ok {
		t.Fatal("empty scheduler should report not-ok")
	}
	s.Schedule(base.Add(5*time.Second), "x")
	d, ok := s.NextEventDuration()
	if !ok || d != 5*time.Second {
		t.Fatalf("got %v (ok=%v), want 5s", d, ok)
	}
}
