package usecase

import (
	"testing"
	"time"
)

func TestNextRunBeforeTrigger(t *testing.T) {
	now := time.Date(2024, 3, 15, 4, 0, 0, 0, time.UTC)
	want := time.Date(2024, 3, 15, 6, 5, 0, 0, time.UTC)
	if got := nextRun(now); !got.Equal(want) {
		t.Fatalf("nextRun(%v) = %v, want %v", now, got, want)
	}
}

func TestNextRunAfterTrigger(t *testing.T) {
	now := time.Date(2024, 3, 15, 6, 5, 0, 0, time.UTC)
	want := time.Date(2024, 3, 16, 6, 5, 0, 0, time.UTC)
	if got := nextRun(now); !got.Equal(want) {
		t.Fatalf("nextRun(%v) = %v, want %v", now, got, want)
	}

	now = time.Date(2024, 3, 15, 23, 59, 0, 0, time.UTC)
	if got := nextRun(now); !got.Equal(want) {
		t.Fatalf("nextRun(%v) = %v, want %v", now, got, want)
	}
}

func TestNextRunNormalizesZone(t *testing.T) {
	est := time.FixedZone("EST", -5*3600)
	now := time.Date(2024, 3, 15, 0, 0, 0, 0, est) // 05:00 UTC
	want := time.Date(2024, 3, 15, 6, 5, 0, 0, time.UTC)
	if got := nextRun(now); !got.Equal(want) {
		t.Fatalf("nextRun(%v) = %v, want %v", now, got, want)
	}
}
