package repository

import (
	"context"
	"fmt"

	"github.com/TheTurningPointBen/turning-point-app-sub000/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ParentRepository struct {
	pool *pgxpool.Pool
}

func NewParentRepository(pool *pgxpool.Pool) *ParentRepository {
	return &ParentRepository{pool: pool}
}

// Create registers a new parent
func (r *ParentRepository) Create(ctx context.Context, parent *model.Parent) error {
	query := `
		INSERT INTO parents (name, surname, phone, email)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		parent.Name,
		parent.Surname,
		parent.Phone,
		parent.Email,
	).Scan(&parent.ID, &parent.CreatedAt)

	if err != nil {
		return fmt.Errorf("create parent: %w", err)
	}

	return nil
}

// GetByID fetches a parent by ID
func (r *ParentRepository) GetByID(ctx context.Context, id int64) (*model.Parent, error) {
	query := `
		SELECT id, name, surname, phone, email, created_at
		FROM parents
		WHERE id = $1
	`

	var parent model.Parent
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&parent.ID,
		&parent.Name,
		&parent.Surname,
		&parent.Phone,
		&parent.Email,
		&parent.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get parent by id: %w", err)
	}

	return &parent, nil
}
