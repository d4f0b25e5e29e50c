package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"PortRisk/internal/domain/models"
	domrepo "PortRisk/internal/domain/repository"
)

type fakeMarketClient struct {
	bars map[string]*models.DailyClose
	errs map[string]error

	mu    sync.Mutex
	calls []string
	days  []time.Time
	block chan struct{} // when set, DailyBar waits until closed
}

func (f *fakeMarketClient) DailyBar(ctx context.Context, ticker string, day time.Time) (*models.DailyClose, error) {
	f.mu.Lock()
	f.calls = append(f.calls, ticker)
	f.days = append(f.days, day)
	f.mu.Unlock()
	if f.block != nil {
		<-f.block
	}
	if err, ok := f.errs[ticker]; ok {
		return nil, err
	}
	if bar, ok := f.bars[ticker]; ok {
		return bar, nil
	}
	return nil, domrepo.ErrNoResults
}

func bar(ticker string, close float64) *models.DailyClose {
	return &models.DailyClose{
		Ticker: ticker,
		Date:   time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC),
		Close:  close,
	}
}

func TestIngestStoresEachTicker(t *testing.T) {
	prices := &fakePriceStore{tickers: []string{"AAA", "BBB"}}
	market := &fakeMarketClient{bars: map[string]*models.DailyClose{
		"AAA": bar("AAA", 101.5),
		"BBB": bar("BBB", 55.0),
	}}
	pub := &fakePublisher{}

	ing := NewIngestor(prices, market, pub, nil, testLogger(t))
	ing.delay = time.Millisecond

	if err := ing.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(prices.stored) != 2 {
		t.Fatalf("expected 2 stored bars, got %d", len(prices.stored))
	}
	if pub.bars != 2 {
		t.Fatalf("expected 2 published bars, got %d", pub.bars)
	}
}

func TestIngestSkipsFailedTickers(t *testing.T) {
	prices := &fakePriceStore{tickers: []string{"AAA", "BAD", "CCC"}}
	market := &fakeMarketClient{
		bars: map[string]*models.DailyClose{
			"AAA": bar("AAA", 101.5),
			"CCC": bar("CCC", 12.0),
		},
		errs: map[string]error{"BAD": errors.New("upstream 500")},
	}

	ing := NewIngestor(prices, market, nil, nil, testLogger(t))
	ing.delay = time.Millisecond

	if err := ing.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(prices.stored) != 2 {
		t.Fatalf("expected failure to be skipped, stored %d", len(prices.stored))
	}
	if prices.stored[0].Ticker != "AAA" || prices.stored[1].Ticker != "CCC" {
		t.Fatalf("unexpected stored order %v", prices.stored)
	}
}

func TestIngestSkipsWhenAlreadyRunning(t *testing.T) {
	prices := &fakePriceStore{tickers: []string{"AAA"}}
	market := &fakeMarketClient{
		bars:  map[string]*models.DailyClose{"AAA": bar("AAA", 101.5)},
		block: make(chan struct{}),
	}

	ing := NewIngestor(prices, market, nil, nil, testLogger(t))
	ing.delay = time.Millisecond

	done := make(chan error, 1)
	go func() { done <- ing.Run(context.Background()) }()

	// wait until the first run is inside the market call
	for {
		market.mu.Lock()
		started := len(market.calls) > 0
		market.mu.Unlock()
		if started {
			break
		}
		time.Sleep(time.Millisecond)
	}

	if err := ing.Run(context.Background()); err != nil {
		t.Fatalf("overlapping trigger must be a no-op: %v", err)
	}

	close(market.block)
	if err := <-done; err != nil {
		t.Fatalf("first run: %v", err)
	}
	if len(prices.stored) != 1 {
		t.Fatalf("expected a single stored bar, got %d", len(prices.stored))
	}
}

func TestIngestStopsOnCancel(t *testing.T) {
	prices := &fakePriceStore{tickers: []string{"AAA", "BBB", "CCC"}}
	market := &fakeMarketClient{bars: map[string]*models.DailyClose{
		"AAA": bar("AAA", 1),
		"BBB": bar("BBB", 2),
		"CCC": bar("CCC", 3),
	}}

	ing := NewIngestor(prices, market, nil, nil, testLogger(t))
	ing.delay = time.Hour // the inter-ticker wait must be interruptible

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ing.Run(ctx) }()

	for {
		market.mu.Lock()
		started := len(market.calls) > 0
		market.mu.Unlock()
		if started {
			break
		}
		time.Sleep(time.Millisecond)
	}
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}
	if len(prices.stored) != 1 {
		t.Fatalf("expected only the first ticker stored, got %d", len(prices.stored))
	}
}

func TestIngestTrimsHistoryToCap(t *testing.T) {
	prices := &fakePriceStore{
		tickers: []string{"AAA"},
		rows:    map[string][]time.Time{},
	}
	// a full year of history already retained
	start := time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC)
	for i := 0; i < MaxHistoryDays; i++ {
		prices.rows["AAA"] = append(prices.rows["AAA"], start.AddDate(0, 0, i))
	}

	newDay := time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)
	market := &fakeMarketClient{bars: map[string]*models.DailyClose{
		"AAA": {Ticker: "AAA", Date: newDay, Close: 101.5},
	}}

	ing := NewIngestor(prices, market, nil, nil, testLogger(t))
	ing.delay = time.Millisecond

	if err := ing.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := len(prices.rows["AAA"]); got != MaxHistoryDays {
		t.Fatalf("history not trimmed to cap: %d rows", got)
	}
	if trims := prices.trimmed["AAA"]; len(trims) != 1 || !trims[0].Equal(start) {
		t.Fatalf("expected exactly the oldest row removed, got %v", trims)
	}

	// the same bar again must change nothing
	if err := ing.Run(context.Background()); err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if got := len(prices.rows["AAA"]); got != MaxHistoryDays {
		t.Fatalf("duplicate ingest changed history size: %d rows", got)
	}
	if trims := prices.trimmed["AAA"]; len(trims) != 1 {
		t.Fatalf("duplicate ingest caused extra trim: %v", trims)
	}
}

func TestIngestUsesYesterday(t *testing.T) {
	prices := &fakePriceStore{tickers: []string{"AAA"}}
	market := &fakeMarketClient{bars: map[string]*models.DailyClose{"AAA": bar("AAA", 1)}}

	ing := NewIngestor(prices, market, nil, nil, testLogger(t))
	ing.delay = time.Millisecond
	ing.now = func() time.Time {
		return time.Date(2024, 3, 15, 6, 5, 0, 0, time.UTC)
	}

	if err := ing.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)
	if len(market.days) != 1 || !market.days[0].Equal(want) {
		t.Fatalf("expected fetch for %v, got %v", want, market.days)
	}
}
