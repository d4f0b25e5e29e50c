package ratelimit

import (
	"testing"
	"time"
)

func TestAllowDrainsBucket(t *testing.T) {
	l := New()
	for i := 0; i < 5; i++ {
		if !l.Allow("alice", 5, 0) {
			t.Fatalf("attempt %d should be allowed", i)
		}
	}
	if l.Allow("alice", 5, 0) {
		t.Fatalf("sixth attempt should be blocked")
	}
	// other keys are independent
	if !l.Allow("bob", 5, 0) {
		t.Fatalf("fresh key should be allowed")
	}
}

func TestAllowRefills(t *testing.T) {
	l := New()
	now := time.Unix(1000, 0)
	l.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		l.Allow("alice", 3, 1)
	}
	if l.Allow("alice", 3, 1) {
		t.Fatalf("drained bucket should block")
	}

	now = now.Add(2 * time.Second)
	if !l.Allow("alice", 3, 1) {
		t.Fatalf("expected refill after elapsed time")
	}
	if !l.Allow("alice", 3, 1) {
		t.Fatalf("expected two tokens after two seconds")
	}
	if l.Allow("alice", 3, 1) {
		t.Fatalf("expected bucket drained again")
	}
}
