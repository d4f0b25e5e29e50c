package util

import (
	"testing"
	"time"
)

func TestParseTimeRFC3339(t *testing.T) {
	s := "2024-10-10T10:10:10Z"
	got, ok := ParseTime(s)
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.UTC().Format(time.RFC3339) != s {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseTimeDateOnly(t *testing.T) {
	got, ok := ParseTime("2024-01-02")
	if !ok {
		t.Fatalf("expected ok")
	}
	want := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseTimeDefault(t *testing.T) {
	def := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC)
	got := ParseTimeDefault("", def)
	if !got.Equal(def) {
		t.Fatalf("expected default")
	}
}

func TestDateFromEpochMillis(t *testing.T) {
	// 2024-03-15 23:30 UTC, late in the day so local zones would disagree
	ms := time.Date(2024, 3, 15, 23, 30, 0, 0, time.UTC).UnixMilli()
	got := DateFromEpochMillis(ms)
	want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("unexpected date %v", got)
	}
}

func TestYesterday(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 5, 0, 0, time.UTC)
	want := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	if got := Yesterday(now); !got.Equal(want) {
		t.Fatalf("unexpected yesterday %v", got)
	}
}
