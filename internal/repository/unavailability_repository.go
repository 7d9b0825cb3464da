package repository

import (
	"context"
	"fmt"

	"github.com/TheTurningPointBen/turning-point-app-sub000/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UnavailabilityRepository struct {
	pool *pgxpool.Pool
}

func NewUnavailabilityRepository(pool *pgxpool.Pool) *UnavailabilityRepository {
	return &UnavailabilityRepository{pool: pool}
}

// Create stores a new unavailability window for a tutor
func (r *UnavailabilityRepository) Create(ctx context.Context, window *model.UnavailabilityWindow) error {
	query := `
		INSERT INTO unavailability_windows (
			tutor_id, start_date, end_date, start_time, end_time, reason
		)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		window.TutorID,
		window.StartDate,
		window.EndDate,
		window.StartTime,
		window.EndTime,
		window.Reason,
	).Scan(&window.ID, &window.CreatedAt)

	if err != nil {
		return fmt.Errorf("create unavailability window: %w", err)
	}

	return nil
}

// Delete removes a window; only its owner may remove it
func (r *UnavailabilityRepository) Delete(ctx context.Context, id, tutorID int64) error {
	query := `DELETE FROM unavailability_windows WHERE id = $1 AND tutor_id = $2`

	result, err := r.pool.Exec(ctx, query, id, tutorID)
	if err != nil {
		return fmt.Errorf("delete unavailability window: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("unavailability window not found")
	}

	return nil
}

// ListByTutorID fetches all windows declared by one tutor
func (r *UnavailabilityRepository) ListByTutorID(ctx context.Context, tutorID int64) ([]model.UnavailabilityWindow, error) {
	query := `
		SELECT id, tutor_id, start_date, end_date, start_time, end_time, reason, created_at
		FROM unavailability_windows
		WHERE tutor_id = $1
		ORDER BY start_date ASC
	`

	rows, err := r.pool.Query(ctx, query, tutorID)
	if err != nil {
		return nil, fmt.Errorf("list unavailability windows: %w", err)
	}
	defer rows.Close()

	var windows []model.UnavailabilityWindow
	for rows.Next() {
		var window model.UnavailabilityWindow
		err := rows.Scan(
			&window.ID,
			&window.TutorID,
			&window.StartDate,
			&window.EndDate,
			&window.StartTime,
			&window.EndTime,
			&window.Reason,
			&window.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan unavailability window: %w", err)
		}
		windows = append(windows, window)
	}

	return windows, nil
}

// ListByTutorIDs fetches the windows for a set of tutors in one query,
// for candidate matching across the whole approved pool
func (r *UnavailabilityRepository) ListByTutorIDs(ctx context.Context, tutorIDs []int64) ([]model.UnavailabilityWindow, error) {
	if len(tutorIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, tutor_id, start_date, end_date, start_time, end_time, reason, created_at
		FROM unavailability_windows
		WHERE tutor_id = ANY($1)
		ORDER BY tutor_id ASC, start_date ASC
	`

	rows, err := r.pool.Query(ctx, query, tutorIDs)
	if err != nil {
		return nil, fmt.Errorf("list unavailability windows for tutors: %w", err)
	}
	defer rows.Close()

	var windows []model.UnavailabilityWindow
	for rows.Next() {
		var window model.UnavailabilityWindow
		err := rows.Scan(
			&window.ID,
			&window.TutorID,
			&window.StartDate,
			&window.EndDate,
			&window.StartTime,
			&window.EndTime,
			&window.Reason,
			&window.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan unavailability window: %w", err)
		}
		windows = append(windows, window)
	}

	return windows, nil
}
