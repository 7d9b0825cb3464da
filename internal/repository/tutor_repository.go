package repository

import (
	"context"
	"fmt"

	"github.com/TheTurningPointBen/turning-point-app-sub000/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TutorRepository struct {
	pool *pgxpool.Pool
}

func NewTutorRepository(pool *pgxpool.Pool) *TutorRepository {
	return &TutorRepository{pool: pool}
}

// Create registers a new tutor (unapproved until an admin reviews them)
func (r *TutorRepository) Create(ctx context.Context, tutor *model.Tutor) error {
	query := `
		INSERT INTO tutors (
			name, surname, phone, email, town, approved, role,
			afrikaans, isizulu, setswana, isixhosa, french, has_transport
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		tutor.Name,
		tutor.Surname,
		tutor.Phone,
		tutor.Email,
		tutor.Town,
		tutor.Approved,
		tutor.Role,
		tutor.Afrikaans,
		tutor.IsiZulu,
		tutor.Setswana,
		tutor.IsiXhosa,
		tutor.French,
		tutor.HasTransport,
	).Scan(&tutor.ID, &tutor.CreatedAt)

	if err != nil {
		return fmt.Errorf("create tutor: %w", err)
	}

	return nil
}

// GetByID fetches a tutor by ID
func (r *TutorRepository) GetByID(ctx context.Context, id int64) (*model.Tutor, error) {
	query := `
		SELECT id, name, surname, phone, email, town, approved, role,
		       afrikaans, isizulu, setswana, isixhosa, french, has_transport,
		       created_at
		FROM tutors
		WHERE id = $1
	`

	var tutor model.Tutor
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&tutor.ID,
		&tutor.Name,
		&tutor.Surname,
		&tutor.Phone,
		&tutor.Email,
		&tutor.Town,
		&tutor.Approved,
		&tutor.Role,
		&tutor.Afrikaans,
		&tutor.IsiZulu,
		&tutor.Setswana,
		&tutor.IsiXhosa,
		&tutor.French,
		&tutor.HasTransport,
		&tutor.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get tutor by id: %w", err)
	}

	return &tutor, nil
}

// ListApproved fetches all approved tutors in registration order
func (r *TutorRepository) ListApproved(ctx context.Context) ([]model.Tutor, error) {
	query := `
		SELECT id, name, surname, phone, email, town, approved, role,
		       afrikaans, isizulu, setswana, isixhosa, french, has_transport,
		       created_at
		FROM tutors
		WHERE approved = true
		ORDER BY id ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list approved tutors: %w", err)
	}
	defer rows.Close()

	var tutors []model.Tutor
	for rows.Next() {
		var tutor model.Tutor
		err := rows.Scan(
			&tutor.ID,
			&tutor.Name,
			&tutor.Surname,
			&tutor.Phone,
			&tutor.Email,
			&tutor.Town,
			&tutor.Approved,
			&tutor.Role,
			&tutor.Afrikaans,
			&tutor.IsiZulu,
			&tutor.Setswana,
			&tutor.IsiXhosa,
			&tutor.French,
			&tutor.HasTransport,
			&tutor.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan tutor: %w", err)
		}
		tutors = append(tutors, tutor)
	}

	return tutors, nil
}

// SetApproved flips a tutor's approval flag
func (r *TutorRepository) SetApproved(ctx context.Context, id int64, approved bool) error {
	query := `
		UPDATE tutors
		SET approved = $1
		WHERE id = $2
	`

	result, err := r.pool.Exec(ctx, query, approved, id)
	if err != nil {
		return fmt.Errorf("set tutor approval: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("tutor not found")
	}

	return nil
}

// UpdateProfile updates a tutor's contact details and capabilities
func (r *TutorRepository) UpdateProfile(ctx context.Context, tutor *model.Tutor) error {
	query := `
		UPDATE tutors
		SET name = $1, surname = $2, phone = $3, email = $4, town = $5,
		    role = $6, afrikaans = $7, isizulu = $8, setswana = $9,
		    isixhosa = $10, french = $11, has_transport = $12
		WHERE id = $13
	`

	result, err := r.pool.Exec(
		ctx, query,
		tutor.Name,
		tutor.Surname,
		tutor.Phone,
		tutor.Email,
		tutor.Town,
		tutor.Role,
		tutor.Afrikaans,
		tutor.IsiZulu,
		tutor.Setswana,
		tutor.IsiXhosa,
		tutor.French,
		tutor.HasTransport,
		tutor.ID,
	)
	if err != nil {
		return fmt.Errorf("update tutor profile: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("tutor not found")
	}

	return nil
}
