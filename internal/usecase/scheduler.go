package usecase

import (
	"context"
	"time"

	"PortRisk/pkg/logger"
)

// Daily trigger time, shortly after the upstream finishes publishing the
// previous session's aggregates.
const (
	ScheduleHourUTC   = 6
	ScheduleMinuteUTC = 5
)

// Scheduler fires the ingestor once a day at a fixed UTC time.
type Scheduler struct {
	ingestor *Ingestor
	log      *logger.Logger
	now      func() time.Time
}

func NewScheduler(ingestor *Ingestor, log *logger.Logger) *Scheduler {
	return &Scheduler{ingestor: ingestor, log: log, now: time.Now}
}

// nextRun returns the next scheduled trigger strictly after now.
func nextRun(now time.Time) time.Time {
	now = now.UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(),
		ScheduleHourUTC, ScheduleMinuteUTC, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// Run blocks until ctx is cancelled, triggering an ingest at each scheduled
// time.
func (s *Scheduler) Run(ctx context.Context) {
	for {
		next := nextRun(s.now())
		s.log.Info("next market data ingest scheduled",
			logger.Time("at", next))

		select {
		case <-ctx.Done():
			return
		case <-time.After(next.Sub(s.now())):
		}

		if err := s.ingestor.Run(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			s.log.Error("scheduled ingest failed", logger.Error(err))
		}
	}
}
