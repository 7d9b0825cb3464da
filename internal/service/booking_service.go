package service

import (
	"context"
	"fmt"
	"time"

	"github.com/TheTurningPointBen/turning-point-app-sub000/internal/engine"
	"github.com/TheTurningPointBen/turning-point-app-sub000/internal/model"
	"github.com/TheTurningPointBen/turning-point-app-sub000/internal/notify"
	"github.com/TheTurningPointBen/turning-point-app-sub000/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MinimumNotice is the shortest lead time at which a new booking may be
// placed. The engine's assignment guard only rejects past start times;
// the notice rule belongs to intake.
const MinimumNotice = 24 * time.Hour

type BookingService struct {
	bookingRepo *repository.BookingRepository
	tutorRepo   *repository.TutorRepository
	windowRepo  *repository.UnavailabilityRepository
	notifier    notify.Notifier
	logger      *zap.Logger
}

func NewBookingService(
	bookingRepo *repository.BookingRepository,
	tutorRepo *repository.TutorRepository,
	windowRepo *repository.UnavailabilityRepository,
	notifier notify.Notifier,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		tutorRepo:   tutorRepo,
		windowRepo:  windowRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

type CreateBookingInput struct {
	ParentID         int64
	ChildName        string
	Grade            string
	School           string
	Subject          string
	RequiredRole     model.TutorRole
	ExamDate         time.Time
	StartTime        string // "HH:MM"
	DurationMinutes  int
	ExtraTimeMinutes int
}

// CreateBooking validates and stores a new pending booking request.
func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*model.Booking, error) {
	if input.DurationMinutes <= 0 {
		return nil, fmt.Errorf("duration must be positive")
	}
	if input.ExtraTimeMinutes < 0 {
		return nil, fmt.Errorf("extra time cannot be negative")
	}

	booking := model.Booking{
		Reference:        uuid.New(),
		ParentID:         input.ParentID,
		ChildName:        input.ChildName,
		Grade:            input.Grade,
		School:           input.School,
		Subject:          input.Subject,
		RequiredRole:     engine.NormalizeRole(input.RequiredRole),
		ExamDate:         input.ExamDate,
		StartTime:        input.StartTime,
		DurationMinutes:  input.DurationMinutes,
		ExtraTimeMinutes: input.ExtraTimeMinutes,
		Status:           model.BookingStatusPending,
	}

	examAt, err := engine.ExamStart(booking)
	if err != nil {
		return nil, fmt.Errorf("resolve exam start: %w", err)
	}
	if time.Until(examAt) < MinimumNotice {
		return nil, fmt.Errorf("bookings need at least %v notice", MinimumNotice)
	}

	err = s.bookingRepo.Create(ctx, &booking)
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.logger.Info("Booking created",
		zap.Int64("booking_id", booking.ID),
		zap.String("reference", booking.Reference.String()),
		zap.Int64("parent_id", booking.ParentID),
		zap.String("required_role", string(booking.RequiredRole)),
		zap.Time("exam_date", booking.ExamDate),
	)

	return &booking, nil
}

// AssignTutor binds a tutor to a pending booking.
func (s *BookingService) AssignTutor(ctx context.Context, bookingID, tutorID int64) (*model.Booking, error) {
	booking, tutor, windows, err := s.loadTransitionInputs(ctx, bookingID, tutorID)
	if err != nil {
		return nil, err
	}

	res, err := engine.Assign(*booking, *tutor, windows, time.Now())
	if err != nil {
		return nil, err
	}

	err = s.persist(ctx, booking.Status, res)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Tutor assigned",
		zap.Int64("booking_id", bookingID),
		zap.Int64("tutor_id", tutorID),
	)

	return &res.Booking, nil
}

// ReassignTutor swaps the tutor on an already-assigned booking.
func (s *BookingService) ReassignTutor(ctx context.Context, bookingID, tutorID int64) (*model.Booking, error) {
	booking, tutor, windows, err := s.loadTransitionInputs(ctx, bookingID, tutorID)
	if err != nil {
		return nil, err
	}

	res, err := engine.Reassign(*booking, *tutor, windows, time.Now())
	if err != nil {
		return nil, err
	}

	err = s.persist(ctx, booking.Status, res)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Tutor reassigned",
		zap.Int64("booking_id", bookingID),
		zap.Int64("tutor_id", tutorID),
	)

	return &res.Booking, nil
}

// TutorRespond records the assigned tutor's accept/decline answer.
func (s *BookingService) TutorRespond(ctx context.Context, bookingID, tutorID int64, accept bool) (*model.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking not found")
	}
	if booking.TutorID == nil || *booking.TutorID != tutorID {
		return nil, fmt.Errorf("no permission to respond to this booking")
	}

	var res engine.Result
	if accept {
		res, err = engine.TutorAccept(*booking)
	} else {
		res, err = engine.TutorDecline(*booking)
	}
	if err != nil {
		return nil, err
	}

	err = s.persist(ctx, booking.Status, res)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Tutor responded",
		zap.Int64("booking_id", bookingID),
		zap.Int64("tutor_id", tutorID),
		zap.Bool("accepted", accept),
	)

	return &res.Booking, nil
}

// Finalize hard-confirms a tutor-accepted booking and releases the
// tutor's contact details to the parent.
func (s *BookingService) Finalize(ctx context.Context, bookingID int64) (*model.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking not found")
	}
	if booking.TutorID == nil {
		return nil, fmt.Errorf("booking has no assigned tutor")
	}

	tutor, err := s.tutorRepo.GetByID(ctx, *booking.TutorID)
	if err != nil {
		return nil, fmt.Errorf("get tutor: %w", err)
	}
	if tutor == nil {
		return nil, fmt.Errorf("tutor not found")
	}

	res, err := engine.Finalize(*booking, *tutor, time.Now())
	if err != nil {
		return nil, err
	}

	err = s.persist(ctx, booking.Status, res)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Booking finalized",
		zap.Int64("booking_id", bookingID),
		zap.Int64("tutor_id", tutor.ID),
	)

	return &res.Booking, nil
}

// HardConfirm assigns and confirms a pending booking in one admin action.
func (s *BookingService) HardConfirm(ctx context.Context, bookingID, tutorID int64) (*model.Booking, error) {
	booking, tutor, windows, err := s.loadTransitionInputs(ctx, bookingID, tutorID)
	if err != nil {
		return nil, err
	}

	res, err := engine.HardConfirm(*booking, *tutor, windows, time.Now())
	if err != nil {
		return nil, err
	}

	err = s.persist(ctx, booking.Status, res)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Booking hard-confirmed",
		zap.Int64("booking_id", bookingID),
		zap.Int64("tutor_id", tutorID),
	)

	return &res.Booking, nil
}

// Cancel ends a booking and reports whether the actor's cancellation
// policy attracts a penalty. The penalty is surfaced, never billed here.
func (s *BookingService) Cancel(ctx context.Context, bookingID int64, actor engine.CancelActor) (*model.Booking, bool, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, false, fmt.Errorf("get booking: %w", err)
	}
	if booking == nil {
		return nil, false, fmt.Errorf("booking not found")
	}

	res, err := engine.Cancel(*booking, actor, time.Now())
	if err != nil {
		return nil, false, err
	}

	err = s.persist(ctx, booking.Status, res.Result)
	if err != nil {
		return nil, false, err
	}

	s.logger.Info("Booking cancelled",
		zap.Int64("booking_id", bookingID),
		zap.String("actor", string(actor)),
		zap.Bool("penalty_applies", res.PenaltyApplies),
	)

	return &res.Booking, res.PenaltyApplies, nil
}

// ChaseStaleAssignments moves assigned bookings older than the timeout to
// awaiting-confirmation and nudges the admins. Run by the background
// scheduler.
func (s *BookingService) ChaseStaleAssignments(ctx context.Context, timeout time.Duration) error {
	cutoff := time.Now().Add(-timeout)

	stale, err := s.bookingRepo.ListAssignedBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("list stale assignments: %w", err)
	}

	for _, booking := range stale {
		res, err := engine.MarkAwaitingResponse(*booking)
		if err != nil {
			s.logger.Warn("Skipping stale booking",
				zap.Int64("booking_id", booking.ID),
				zap.Error(err))
			continue
		}

		err = s.bookingRepo.UpdateLifecycle(ctx, &res.Booking, booking.Status)
		if err != nil {
			s.logger.Error("Failed to mark booking awaiting confirmation",
				zap.Int64("booking_id", booking.ID),
				zap.Error(err))
			continue
		}

		var tutorID int64
		if booking.TutorID != nil {
			tutorID = *booking.TutorID
		}
		s.notifier.Dispatch(ctx, res.Booking, []engine.Intent{{
			Kind:      engine.IntentNotifyAdmin,
			BookingID: booking.ID,
			TutorID:   tutorID,
			ParentID:  booking.ParentID,
			Note:      "tutor has not responded to the assignment",
		}})
	}

	if len(stale) > 0 {
		s.logger.Info("Chased stale assignments", zap.Int("count", len(stale)))
	}

	return nil
}

// GetByID fetches a booking by ID.
func (s *BookingService) GetByID(ctx context.Context, bookingID int64) (*model.Booking, error) {
	return s.bookingRepo.GetByID(ctx, bookingID)
}

// ListByStatus fetches all bookings in the given lifecycle status.
func (s *BookingService) ListByStatus(ctx context.Context, status model.BookingStatus) ([]*model.Booking, error) {
	return s.bookingRepo.ListByStatus(ctx, status)
}

// GetParentBookings fetches all bookings requested by a parent.
func (s *BookingService) GetParentBookings(ctx context.Context, parentID int64) ([]*model.Booking, error) {
	return s.bookingRepo.GetByParentID(ctx, parentID)
}

// GetTutorBookings fetches all bookings assigned to a tutor.
func (s *BookingService) GetTutorBookings(ctx context.Context, tutorID int64) ([]*model.Booking, error) {
	return s.bookingRepo.GetByTutorID(ctx, tutorID)
}

func (s *BookingService) loadTransitionInputs(ctx context.Context, bookingID, tutorID int64) (*model.Booking, *model.Tutor, []model.UnavailabilityWindow, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("get booking: %w", err)
	}
	if booking == nil {
		return nil, nil, nil, fmt.Errorf("booking not found")
	}

	tutor, err := s.tutorRepo.GetByID(ctx, tutorID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("get tutor: %w", err)
	}
	if tutor == nil {
		return nil, nil, nil, fmt.Errorf("tutor not found")
	}

	windows, err := s.windowRepo.ListByTutorID(ctx, tutorID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("list unavailability windows: %w", err)
	}

	return booking, tutor, windows, nil
}

// persist writes the transition result guarded by the pre-transition
// status, then hands the intents to the notifier. Notification failures
// never undo the write.
func (s *BookingService) persist(ctx context.Context, expected model.BookingStatus, res engine.Result) error {
	err := s.bookingRepo.UpdateLifecycle(ctx, &res.Booking, expected)
	if err != nil {
		return fmt.Errorf("persist transition: %w", err)
	}

	s.notifier.Dispatch(ctx, res.Booking, res.Intents)
	return nil
}
