package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Clark-Hu/movie-catalog/internal/domain"
)

// DirectorsRepository provides persistence helpers for directors.
type DirectorsRepository struct {
	q Querier
}

// List returns every director ordered by id.
func (r *DirectorsRepository) List(ctx context.Context) ([]domain.Director, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name FROM director ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list directors: %w", err)
	}
	return collectRows(rows, scanDirector)
}

// GetByID fetches a director by its identifier.
func (r *DirectorsRepository) GetByID(ctx context.Context, id int64) (domain.Director, error) {
	return getDirector(ctx, r.q, id, false)
}

// GetForUpdate fetches a director and locks its row until the surrounding transaction ends.
func (r *DirectorsRepository) GetForUpdate(ctx context.Context, id int64) (domain.Director, error) {
	return getDirector(ctx, r.q, id, true)
}

// Create inserts a director and returns it with the store-assigned id.
func (r *DirectorsRepository) Create(ctx context.Context, director domain.Director) (domain.Director, error) {
	row := r.q.QueryRow(ctx, `INSERT INTO director (name) VALUES ($1) RETURNING id, name`, director.Name)
	created, err := scanDirector(row)
	if err != nil {
		return domain.Director{}, fmt.Errorf("create director: %w", err)
	}
	return created, nil
}

// Update overwrites every mutable column of the director.
func (r *DirectorsRepository) Update(ctx context.Context, director domain.Director) error {
	tag, err := r.q.Exec(ctx, `UPDATE director SET name = $2 WHERE id = $1`, director.ID, director.Name)
	if err != nil {
		return fmt.Errorf("update director %d: %w", director.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the director. Movies referencing it are left untouched.
func (r *DirectorsRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM director WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete director %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func getDirector(ctx context.Context, q Querier, id int64, lock bool) (domain.Director, error) {
	query := `SELECT id, name FROM director WHERE id = $1`
	if lock {
		query += ` FOR UPDATE`
	}
	director, err := scanDirector(q.QueryRow(ctx, query, id))
	if err != nil {
		return domain.Director{}, notFound(err)
	}
	return director, nil
}

func scanDirector(row pgx.Row) (domain.Director, error) {
	var d domain.Director
	if err := row.Scan(&d.ID, &d.Name); err != nil {
		return domain.Director{}, err
	}
	return d, nil
}
