package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/TheTurningPointBen/turning-point-app-sub000/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrStaleBooking signals that the row's status no longer matches the
// snapshot a transition was computed from; the caller reloads and retries.
var ErrStaleBooking = errors.New("booking was modified concurrently")

type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

// Create inserts a new booking request
func (r *BookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	query := `
		INSERT INTO bookings (
			reference, parent_id, child_name, grade, school, subject,
			required_role, exam_date, start_time, duration_minutes,
			extra_time_minutes, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		booking.Reference,
		booking.ParentID,
		booking.ChildName,
		booking.Grade,
		booking.School,
		booking.Subject,
		booking.RequiredRole,
		booking.ExamDate,
		booking.StartTime,
		booking.DurationMinutes,
		booking.ExtraTimeMinutes,
		booking.Status,
	).Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create booking: %w", err)
	}

	return nil
}

// GetByID fetches a booking by ID
func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*model.Booking, error) {
	query := `
		SELECT id, reference, parent_id, child_name, grade, school, subject,
		       required_role, exam_date, start_time, duration_minutes,
		       extra_time_minutes, tutor_id, status, cancelled, cancelled_at,
		       confirmed_at, assigned_at, created_at, updated_at
		FROM bookings
		WHERE id = $1
	`

	var booking model.Booking
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.Reference,
		&booking.ParentID,
		&booking.ChildName,
		&booking.Grade,
		&booking.School,
		&booking.Subject,
		&booking.RequiredRole,
		&booking.ExamDate,
		&booking.StartTime,
		&booking.DurationMinutes,
		&booking.ExtraTimeMinutes,
		&booking.TutorID,
		&booking.Status,
		&booking.Cancelled,
		&booking.CancelledAt,
		&booking.ConfirmedAt,
		&booking.AssignedAt,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking by id: %w", err)
	}

	return &booking, nil
}

// GetByParentID fetches all bookings requested by a parent
func (r *BookingRepository) GetByParentID(ctx context.Context, parentID int64) ([]*model.Booking, error) {
	query := `
		SELECT id, reference, parent_id, child_name, grade, school, subject,
		       required_role, exam_date, start_time, duration_minutes,
		       extra_time_minutes, tutor_id, status, cancelled, cancelled_at,
		       confirmed_at, assigned_at, created_at, updated_at
		FROM bookings
		WHERE parent_id = $1
		ORDER BY exam_date DESC, start_time DESC
	`

	rows, err := r.pool.Query(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("get bookings by parent: %w", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByTutorID fetches all bookings assigned to a tutor
func (r *BookingRepository) GetByTutorID(ctx context.Context, tutorID int64) ([]*model.Booking, error) {
	query := `
		SELECT id, reference, parent_id, child_name, grade, school, subject,
		       required_role, exam_date, start_time, duration_minutes,
		       extra_time_minutes, tutor_id, status, cancelled, cancelled_at,
		       confirmed_at, assigned_at, created_at, updated_at
		FROM bookings
		WHERE tutor_id = $1
		ORDER BY exam_date ASC, start_time ASC
	`

	rows, err := r.pool.Query(ctx, query, tutorID)
	if err != nil {
		return nil, fmt.Errorf("get bookings by tutor: %w", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListByStatus fetches all bookings in the given lifecycle status
func (r *BookingRepository) ListByStatus(ctx context.Context, status model.BookingStatus) ([]*model.Booking, error) {
	query := `
		SELECT id, reference, parent_id, child_name, grade, school, subject,
		       required_role, exam_date, start_time, duration_minutes,
		       extra_time_minutes, tutor_id, status, cancelled, cancelled_at,
		       confirmed_at, assigned_at, created_at, updated_at
		FROM bookings
		WHERE status = $1
		ORDER BY exam_date ASC, start_time ASC
	`

	rows, err := r.pool.Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("list bookings by status: %w", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListAssignedBefore fetches assigned bookings whose assignment happened
// before the cutoff and still has no tutor response
func (r *BookingRepository) ListAssignedBefore(ctx context.Context, cutoff time.Time) ([]*model.Booking, error) {
	query := `
		SELECT id, reference, parent_id, child_name, grade, school, subject,
		       required_role, exam_date, start_time, duration_minutes,
		       extra_time_minutes, tutor_id, status, cancelled, cancelled_at,
		       confirmed_at, assigned_at, created_at, updated_at
		FROM bookings
		WHERE status = 'assigned' AND assigned_at < $1
		ORDER BY assigned_at ASC
	`

	rows, err := r.pool.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("list assigned bookings: %w", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListConfirmedBetween fetches confirmed bookings whose exam date falls
// inside the inclusive [from, to] range
func (r *BookingRepository) ListConfirmedBetween(ctx context.Context, from, to time.Time) ([]*model.Booking, error) {
	query := `
		SELECT id, reference, parent_id, child_name, grade, school, subject,
		       required_role, exam_date, start_time, duration_minutes,
		       extra_time_minutes, tutor_id, status, cancelled, cancelled_at,
		       confirmed_at, assigned_at, created_at, updated_at
		FROM bookings
		WHERE status = 'confirmed' AND exam_date >= $1 AND exam_date <= $2
		ORDER BY exam_date ASC, start_time ASC
	`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list confirmed bookings: %w", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateLifecycle persists the fields a lifecycle transition touches. The
// expected status guards against concurrent transitions on the same row.
func (r *BookingRepository) UpdateLifecycle(ctx context.Context, booking *model.Booking, expected model.BookingStatus) error {
	query := `
		UPDATE bookings
		SET tutor_id = $1, status = $2, cancelled = $3, cancelled_at = $4,
		    confirmed_at = $5, assigned_at = $6, updated_at = now()
		WHERE id = $7 AND status = $8
	`

	result, err := r.pool.Exec(
		ctx, query,
		booking.TutorID,
		booking.Status,
		booking.Cancelled,
		booking.CancelledAt,
		booking.ConfirmedAt,
		booking.AssignedAt,
		booking.ID,
		expected,
	)
	if err != nil {
		return fmt.Errorf("update booking lifecycle: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrStaleBooking
	}

	return nil
}

func scanBookings(rows pgx.Rows) ([]*model.Booking, error) {
	var bookings []*model.Booking
	for rows.Next() {
		var booking model.Booking
		err := rows.Scan(
			&booking.ID,
			&booking.Reference,
			&booking.ParentID,
			&booking.ChildName,
			&booking.Grade,
			&booking.School,
			&booking.Subject,
			&booking.RequiredRole,
			&booking.ExamDate,
			&booking.StartTime,
			&booking.DurationMinutes,
			&booking.ExtraTimeMinutes,
			&booking.TutorID,
			&booking.Status,
			&booking.Cancelled,
			&booking.CancelledAt,
			&booking.ConfirmedAt,
			&booking.AssignedAt,
			&booking.CreatedAt,
			&booking.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, &booking)
	}

	return bookings, nil
}
