package app

import (
	"context"
	"time"

	"github.com/TheTurningPointBen/turning-point-app-sub000/internal/service"
	"go.uber.org/zap"
)

// tutorResponseTimeout is how long an assignment may sit unanswered
// before the admins are nudged.
const tutorResponseTimeout = 24 * time.Hour

// Scheduler runs the background chaser for unanswered assignments.
type Scheduler struct {
	bookingService *service.BookingService
	logger         *zap.Logger
	stopChan       chan struct{}
}

func NewScheduler(bookingService *service.BookingService, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		bookingService: bookingService,
		logger:         logger,
		stopChan:       make(chan struct{}),
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler")
	go s.runChaserTask(ctx)
}

func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	close(s.stopChan)
}

func (s *Scheduler) runChaserTask(ctx context.Context) {
	// First run right away, then hourly
	s.chase(ctx)

	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.chase(ctx)
		case <-s.stopChan:
			s.logger.Info("Assignment chaser stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Assignment chaser cancelled")
			return
		}
	}
}

func (s *Scheduler) chase(ctx context.Context) {
	err := s.bookingService.ChaseStaleAssignments(ctx, tutorResponseTimeout)
	if err != nil {
		s.logger.Error("Failed to chase stale assignments", zap.Error(err))
	}
}
