package polygon

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"PortRisk/internal/domain/repository"
)

func TestDailyBar(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/aggs/ticker/AAPL/range/1/day/2024-03-15/2024-03-15" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("adjusted") != "true" || q.Get("sort") != "asc" || q.Get("limit") != "1" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		if q.Get("apiKey") != "test-key" {
			t.Errorf("missing api key")
		}
		w.Header().Set("Content-Type", "application/json")
		// 2024-03-15T00:00:00Z in epoch millis is 1710460800000
		w.Write([]byte(`{"ticker":"AAPL","resultsCount":1,"results":[{"t":1710460800000,"c":172.62}],"status":"OK"}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))

	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	bar, err := client.DailyBar(context.Background(), "AAPL", day)
	if err != nil {
		t.Fatalf("DailyBar: %v", err)
	}
	if bar.Ticker != "AAPL" {
		t.Fatalf("unexpected ticker %s", bar.Ticker)
	}
	if bar.Close != 172.62 {
		t.Fatalf("unexpected close %v", bar.Close)
	}
	if !bar.Date.Equal(day) {
		t.Fatalf("unexpected date %v", bar.Date)
	}
}

func TestDailyBarNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ticker":"AAPL","resultsCount":0,"status":"OK"}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))

	_, err := client.DailyBar(context.Background(), "AAPL", time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC))
	if !errors.Is(err, repository.ErrNoResults) {
		t.Fatalf("expected ErrNoResults, got %v", err)
	}
}

func TestDailyBarUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))

	_, err := client.DailyBar(context.Background(), "AAPL", time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC))
	if err == nil {
		t.Fatalf("expected error on upstream 429")
	}
}
