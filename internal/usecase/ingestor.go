package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	domrepo "PortRisk/internal/domain/repository"
	"PortRisk/pkg/logger"
	"PortRisk/pkg/util"
)

// FetchDelay spaces upstream requests to stay under the free-tier rate cap.
const FetchDelay = 12 * time.Second

// MaxHistoryDays caps the per-ticker price history kept in the store.
const MaxHistoryDays = 365

// Ingestor pulls yesterday's close for every tracked ticker and stores it.
// At most one run is active at a time; overlapping triggers are skipped.
type Ingestor struct {
	prices    domrepo.PriceStore
	market    domrepo.MarketDataClient
	publisher domrepo.Publisher
	metrics   domrepo.Metrics
	log       *logger.Logger

	mu    sync.Mutex
	delay time.Duration
	now   func() time.Time
}

func NewIngestor(
	prices domrepo.PriceStore,
	market domrepo.MarketDataClient,
	publisher domrepo.Publisher,
	metrics domrepo.Metrics,
	log *logger.Logger,
) *Ingestor {
	return &Ingestor{
		prices:    prices,
		market:    market,
		publisher: publisher,
		metrics:   metrics,
		log:       log,
		delay:     FetchDelay,
		now:       time.Now,
	}
}

// Run ingests one bar per tracked ticker. It returns immediately with no
// error when another run is already in progress. Individual ticker failures
// are logged and skipped; the run keeps going.
func (ing *Ingestor) Run(ctx context.Context) error {
	if !ing.mu.TryLock() {
		ing.log.Warn("ingest already running, skipping trigger")
		return nil
	}
	defer ing.mu.Unlock()

	day := util.Yesterday(ing.now())

	tickers, err := ing.prices.Tickers(ctx)
	if err != nil {
		return err
	}

	ing.log.Info("market data ingest started",
		logger.Time("day", day),
		logger.Int("tickers", len(tickers)))

	var stored, skipped int
	for i, ticker := range tickers {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(ing.delay):
			}
		}

		if err := ing.ingestOne(ctx, ticker, day); err != nil {
			skipped++
			if errors.Is(err, domrepo.ErrNoResults) {
				ing.log.Info("no bar for day", logger.String("ticker", ticker))
			} else {
				ing.log.Error("ingest ticker failed",
					logger.String("ticker", ticker),
					logger.Error(err))
			}
			if ing.metrics != nil {
				ing.metrics.RecordIngest("error")
			}
			continue
		}
		stored++
		if ing.metrics != nil {
			ing.metrics.RecordIngest("ok")
		}
	}

	ing.log.Info("market data ingest finished",
		logger.Int("stored", stored),
		logger.Int("skipped", skipped))
	return nil
}

// ingestOne stores one bar and trims the ticker's history back toward the
// retention cap, dropping at most the single oldest row per run.
func (ing *Ingestor) ingestOne(ctx context.Context, ticker string, day time.Time) error {
	bar, err := ing.market.DailyBar(ctx, ticker, day)
	if err != nil {
		return err
	}
	if err := ing.prices.InsertDailyClose(ctx, bar); err != nil {
		return err
	}
	count, err := ing.prices.CountTicker(ctx, bar.Ticker)
	if err != nil {
		return err
	}
	if count > MaxHistoryDays {
		if err := ing.prices.DeleteOldest(ctx, bar.Ticker); err != nil {
			return err
		}
	}
	if ing.metrics != nil {
		ing.metrics.RecordLastClose(bar.Ticker, bar.Close)
	}
	if ing.publisher != nil {
		if err := ing.publisher.PublishBar(ctx, bar); err != nil {
			ing.log.Warn("publish bar failed",
				logger.String("ticker", bar.Ticker),
				logger.Error(err))
		}
	}
	return nil
}
