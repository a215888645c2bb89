package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Clark-Hu/movie-catalog/internal/domain"
)

// GenresRepository provides persistence helpers for genres. It mirrors
// DirectorsRepository column for column.
type GenresRepository struct {
	q Querier
}

// List returns every genre ordered by id.
func (r *GenresRepository) List(ctx context.Context) ([]domain.Genre, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name FROM genre ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}
	return collectRows(rows, scanGenre)
}

// GetByID fetches a genre by its identifier.
func (r *GenresRepository) GetByID(ctx context.Context, id int64) (domain.Genre, error) {
	return getGenre(ctx, r.q, id, false)
}

// GetForUpdate fetches a genre and locks its row until the surrounding transaction ends.
func (r *GenresRepository) GetForUpdate(ctx context.Context, id int64) (domain.Genre, error) {
	return getGenre(ctx, r.q, id, true)
}

// Create inserts a genre and returns it with the store-assigned id.
func (r *GenresRepository) Create(ctx context.Context, genre domain.Genre) (domain.Genre, error) {
	row := r.q.QueryRow(ctx, `INSERT INTO genre (name) VALUES ($1) RETURNING id, name`, genre.Name)
	created, err := scanGenre(row)
	if err != nil {
		return domain.Genre{}, fmt.Errorf("create genre: %w", err)
	}
	return created, nil
}

// Update overwrites every mutable column of the genre.
func (r *GenresRepository) Update(ctx context.Context, genre domain.Genre) error {
	tag, err := r.q.Exec(ctx, `UPDATE genre SET name = $2 WHERE id = $1`, genre.ID, genre.Name)
	if err != nil {
		return fmt.Errorf("update genre %d: %w", genre.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the genre. Movies referencing it are left untouched.
func (r *GenresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM genre WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete genre %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func getGenre(ctx context.Context, q Querier, id int64, lock bool) (domain.Genre, error) {
	query := `SELECT id, name FROM genre WHERE id = $1`
	if lock {
		query += ` FOR UPDATE`
	}
	genre, err := scanGenre(q.QueryRow(ctx, query, id))
	if err != nil {
		return domain.Genre{}, notFound(err)
	}
	return genre, nil
}

func scanGenre(row pgx.Row) (domain.Genre, error) {
	var g domain.Genre
	if err := row.Scan(&g.ID, &g.Name); err != nil {
		return domain.Genre{}, err
	}
	return g, nil
}
