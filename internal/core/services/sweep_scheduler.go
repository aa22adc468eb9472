package services

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// SweepScheduler runs the expiration sweep on a cron schedule
type SweepScheduler struct {
	cards    *CardService
	log      *logrus.Logger
	schedule string
	cron     *cron.Cron
}

// NewSweepScheduler creates a scheduler with a cron expression,
// e.g. "0 2 * * *" for daily at 02:00.
func NewSweepScheduler(cards *CardService, log *logrus.Logger, schedule string) *SweepScheduler {
	return &SweepScheduler{
		cards:    cards,
		log:      log,
		schedule: schedule,
		cron:     cron.New(),
	}
}

// Start registers the sweep job and launches the scheduler
func (s *SweepScheduler) Start() error {
	_, err := s.cron.AddFunc(s.schedule, s.runSweep)
	if err != nil {
		return err
	}
	s.cron.Start()
	s.log.WithField("schedule", s.schedule).Info("Expiration sweep scheduler started")
	return nil
}

// Stop stops the scheduler and waits for a running sweep to finish
func (s *SweepScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("Expiration sweep scheduler stopped")
}

func (s *SweepScheduler) runSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := s.cards.SweepExpired(ctx)
	if err != nil {
		s.log.WithError(err).Error("Scheduled expiration sweep failed")
		return
	}
	s.log.WithField("count", count).Info("Scheduled expiration sweep completed")
}
