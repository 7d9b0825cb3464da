package service

import (
	"context"
	"fmt"

	"github.com/TheTurningPointBen/turning-point-app-sub000/internal/engine"
	"github.com/TheTurningPointBen/turning-point-app-sub000/internal/model"
	"github.com/TheTurningPointBen/turning-point-app-sub000/internal/repository"
	"go.uber.org/zap"
)

// MatchingService loads the matching inputs and runs candidate selection.
// Every surface that needs "who can take this booking" goes through here;
// nothing re-implements the filter.
type MatchingService struct {
	tutorRepo  *repository.TutorRepository
	windowRepo *repository.UnavailabilityRepository
	logger     *zap.Logger
}

func NewMatchingService(
	tutorRepo *repository.TutorRepository,
	windowRepo *repository.UnavailabilityRepository,
	logger *zap.Logger,
) *MatchingService {
	return &MatchingService{
		tutorRepo:  tutorRepo,
		windowRepo: windowRepo,
		logger:     logger,
	}
}

// CandidatesFor returns up to engine.DefaultMaxCandidates eligible tutors
// for the booking, in registration order. An empty list means no suitable
// tutor, not a failure.
func (s *MatchingService) CandidatesFor(ctx context.Context, booking model.Booking) ([]model.Tutor, error) {
	tutors, err := s.tutorRepo.ListApproved(ctx)
	if err != nil {
		return nil, fmt.Errorf("list approved tutors: %w", err)
	}

	ids := make([]int64, 0, len(tutors))
	for _, t := range tutors {
		ids = append(ids, t.ID)
	}

	windows, err := s.windowRepo.ListByTutorIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list unavailability windows: %w", err)
	}

	windowsByTutor := make(map[int64][]model.UnavailabilityWindow, len(tutors))
	for _, w := range windows {
		windowsByTutor[w.TutorID] = append(windowsByTutor[w.TutorID], w)
	}

	candidates := engine.SelectCandidates(booking, tutors, windowsByTutor, engine.DefaultMaxCandidates)

	s.logger.Info("Candidate selection",
		zap.Int64("booking_id", booking.ID),
		zap.String("required_role", string(booking.RequiredRole)),
		zap.Int("approved_tutors", len(tutors)),
		zap.Int("candidates", len(candidates)),
	)

	return candidates, nil
}

// TutorWindows returns the unavailability windows declared by one tutor.
func (s *MatchingService) TutorWindows(ctx context.Context, tutorID int64) ([]model.UnavailabilityWindow, error) {
	return s.windowRepo.ListByTutorID(ctx, tutorID)
}
