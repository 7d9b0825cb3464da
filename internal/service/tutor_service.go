package service

import (
	"context"
	"fmt"

	"github.com/TheTurningPointBen/turning-point-app-sub000/internal/engine"
	"github.com/TheTurningPointBen/turning-point-app-sub000/internal/model"
	"github.com/TheTurningPointBen/turning-point-app-sub000/internal/repository"
	"go.uber.org/zap"
)

type TutorService struct {
	tutorRepo  *repository.TutorRepository
	windowRepo *repository.UnavailabilityRepository
	logger     *zap.Logger
}

func NewTutorService(
	tutorRepo *repository.TutorRepository,
	windowRepo *repository.UnavailabilityRepository,
	logger *zap.Logger,
) *TutorService {
	return &TutorService{
		tutorRepo:  tutorRepo,
		windowRepo: windowRepo,
		logger:     logger,
	}
}

// RegisterTutor stores a self-registered tutor. Registration never grants
// approval; an admin reviews the profile first.
func (s *TutorService) RegisterTutor(ctx context.Context, tutor model.Tutor) (*model.Tutor, error) {
	if tutor.Name == "" || tutor.Surname == "" {
		return nil, fmt.Errorf("name and surname are required")
	}

	tutor.Approved = false
	tutor.Role = engine.NormalizeRole(tutor.Role)

	err := s.tutorRepo.Create(ctx, &tutor)
	if err != nil {
		return nil, fmt.Errorf("register tutor: %w", err)
	}

	s.logger.Info("Tutor registered",
		zap.Int64("tutor_id", tutor.ID),
		zap.String("role", string(tutor.Role)),
		zap.String("town", tutor.Town),
	)

	return &tutor, nil
}

// SetApproval flips a tutor's approval flag. Only approved tutors ever
// appear in candidate lists.
func (s *TutorService) SetApproval(ctx context.Context, tutorID int64, approved bool) error {
	err := s.tutorRepo.SetApproved(ctx, tutorID, approved)
	if err != nil {
		return fmt.Errorf("set approval: %w", err)
	}

	s.logger.Info("Tutor approval updated",
		zap.Int64("tutor_id", tutorID),
		zap.Bool("approved", approved),
	)

	return nil
}

// UpdateProfile saves profile edits, normalizing the role label.
func (s *TutorService) UpdateProfile(ctx context.Context, tutor model.Tutor) error {
	tutor.Role = engine.NormalizeRole(tutor.Role)

	err := s.tutorRepo.UpdateProfile(ctx, &tutor)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}

	s.logger.Info("Tutor profile updated", zap.Int64("tutor_id", tutor.ID))
	return nil
}

// AddUnavailability validates and stores a tutor's unavailability window.
func (s *TutorService) AddUnavailability(ctx context.Context, window model.UnavailabilityWindow) (*model.UnavailabilityWindow, error) {
	tutor, err := s.tutorRepo.GetByID(ctx, window.TutorID)
	if err != nil {
		return nil, fmt.Errorf("get tutor: %w", err)
	}
	if tutor == nil {
		return nil, fmt.Errorf("tutor not found")
	}

	if err := engine.ValidateWindow(window); err != nil {
		return nil, err
	}

	err = s.windowRepo.Create(ctx, &window)
	if err != nil {
		return nil, fmt.Errorf("store unavailability window: %w", err)
	}

	s.logger.Info("Unavailability window added",
		zap.Int64("tutor_id", window.TutorID),
		zap.Time("start_date", window.StartDate),
		zap.Time("end_date", window.EndDate),
		zap.Bool("all_day", window.AllDay()),
	)

	return &window, nil
}

// RemoveUnavailability deletes a window owned by the tutor.
func (s *TutorService) RemoveUnavailability(ctx context.Context, windowID, tutorID int64) error {
	err := s.windowRepo.Delete(ctx, windowID, tutorID)
	if err != nil {
		return fmt.Errorf("remove unavailability window: %w", err)
	}

	s.logger.Info("Unavailability window removed",
		zap.Int64("window_id", windowID),
		zap.Int64("tutor_id", tutorID),
	)

	return nil
}

// Windows lists a tutor's declared unavailability.
func (s *TutorService) Windows(ctx context.Context, tutorID int64) ([]model.UnavailabilityWindow, error) {
	return s.windowRepo.ListByTutorID(ctx, tutorID)
}
