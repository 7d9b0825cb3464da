package service

import (
	"context"
	"fmt"
	"time"

	"github.com/TheTurningPointBen/turning-point-app-sub000/internal/engine"
	"github.com/TheTurningPointBen/turning-point-app-sub000/internal/model"
	"github.com/TheTurningPointBen/turning-point-app-sub000/internal/repository"
	"go.uber.org/zap"
)

type BillingService struct {
	bookingRepo *repository.BookingRepository
	logger      *zap.Logger
}

func NewBillingService(bookingRepo *repository.BookingRepository, logger *zap.Logger) *BillingService {
	return &BillingService{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// PeriodReport summarizes the confirmed work inside one 26th-to-25th
// invoicing cycle.
type PeriodReport struct {
	PeriodStart  time.Time
	PeriodEnd    time.Time
	Bookings     []*model.Booking
	TotalMinutes int
}

// CurrentPeriod returns the invoicing cycle enclosing the given day.
func (s *BillingService) CurrentPeriod(today time.Time) (time.Time, time.Time) {
	return engine.BillingPeriodFor(today)
}

// ReportFor builds the confirmed-booking report for the cycle enclosing
// the given day. Extra time counts towards billed minutes.
func (s *BillingService) ReportFor(ctx context.Context, today time.Time) (*PeriodReport, error) {
	start, end := engine.BillingPeriodFor(today)

	bookings, err := s.bookingRepo.ListConfirmedBetween(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("load confirmed bookings: %w", err)
	}

	report := &PeriodReport{
		PeriodStart: start,
		PeriodEnd:   end,
		Bookings:    bookings,
	}
	for _, b := range bookings {
		report.TotalMinutes += b.DurationMinutes + b.ExtraTimeMinutes
	}

	s.logger.Info("Billing period report",
		zap.Time("period_start", start),
		zap.Time("period_end", end),
		zap.Int("bookings", len(bookings)),
		zap.Int("total_minutes", report.TotalMinutes),
	)

	return report, nil
}
