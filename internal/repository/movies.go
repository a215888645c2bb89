package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Clark-Hu/movie-catalog/internal/domain"
)

// MoviesRepository provides persistence helpers for movie entities.
type MoviesRepository struct {
	q Querier
}

const movieColumns = `
    id,
    title,
    description,
    trailer,
    year,
    rating,
    genre_id,
    director_id
`

// Columns accepted by listWhere. Anything else is a programming error.
var movieFilterColumns = map[string]struct{}{
	"director_id": {},
	"genre_id":    {},
}

// List returns every movie ordered by id.
func (r *MoviesRepository) List(ctx context.Context) ([]domain.Movie, error) {
	rows, err := r.q.Query(ctx, fmt.Sprintf(`SELECT %s FROM movie ORDER BY id`, movieColumns))
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	return collectRows(rows, scanMovie)
}

// ListByDirector returns the movies whose director_id equals directorID.
func (r *MoviesRepository) ListByDirector(ctx context.Context, directorID int64) ([]domain.Movie, error) {
	return r.listWhere(ctx, "director_id", directorID)
}

// ListByGenre returns the movies whose genre_id equals genreID.
func (r *MoviesRepository) ListByGenre(ctx context.Context, genreID int64) ([]domain.Movie, error) {
	return r.listWhere(ctx, "genre_id", genreID)
}

func (r *MoviesRepository) listWhere(ctx context.Context, column string, value int64) ([]domain.Movie, error) {
	if _, ok := movieFilterColumns[column]; !ok {
		return nil, fmt.Errorf("list movies: unsupported filter column %q", column)
	}
	query := fmt.Sprintf(`SELECT %s FROM movie WHERE %s = $1 ORDER BY id`, movieColumns, column)
	rows, err := r.q.Query(ctx, query, value)
	if err != nil {
		return nil, fmt.Errorf("list movies by %s: %w", column, err)
	}
	return collectRows(rows, scanMovie)
}

// GetByID fetches a movie by its identifier.
func (r *MoviesRepository) GetByID(ctx context.Context, id int64) (domain.Movie, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate fetches a movie and locks its row until the surrounding transaction ends.
func (r *MoviesRepository) GetForUpdate(ctx context.Context, id int64) (domain.Movie, error) {
	return r.get(ctx, id, true)
}

func (r *MoviesRepository) get(ctx context.Context, id int64, lock bool) (domain.Movie, error) {
	query := fmt.Sprintf(`SELECT %s FROM movie WHERE id = $1`, movieColumns)
	if lock {
		query += ` FOR UPDATE`
	}
	movie, err := scanMovie(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return domain.Movie{}, notFound(err)
	}
	return movie, nil
}

// Create inserts a new movie row and returns the stored entity. The id on the
// argument is ignored.
func (r *MoviesRepository) Create(ctx context.Context, movie domain.Movie) (domain.Movie, error) {
	query := fmt.Sprintf(`
        INSERT INTO movie (title, description, trailer, year, rating, genre_id, director_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING %s
    `, movieColumns)

	row := r.q.QueryRow(ctx, query,
		movie.Title,
		movie.Description,
		movie.Trailer,
		movie.Year,
		movie.Rating,
		movie.GenreID,
		movie.DirectorID,
	)
	created, err := scanMovie(row)
	if err != nil {
		return domain.Movie{}, fmt.Errorf("create movie: %w", err)
	}
	return created, nil
}

// Update writes every mutable column from movie. Nil attributes become NULL;
// nothing from the stored row is preserved.
func (r *MoviesRepository) Update(ctx context.Context, movie domain.Movie) error {
	const query = `
        UPDATE movie
        SET title = $2,
            description = $3,
            trailer = $4,
            year = $5,
            rating = $6,
            genre_id = $7,
            director_id = $8
        WHERE id = $1
    `
	tag, err := r.q.Exec(ctx, query,
		movie.ID,
		movie.Title,
		movie.Description,
		movie.Trailer,
		movie.Year,
		movie.Rating,
		movie.GenreID,
		movie.DirectorID,
	)
	if err != nil {
		return fmt.Errorf("update movie %d: %w", movie.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a movie by id.
func (r *MoviesRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM movie WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movie %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ResolveDirector follows movie.DirectorID. found is false when the movie has
// no director or the referenced director no longer exists.
func (r *MoviesRepository) ResolveDirector(ctx context.Context, movie domain.Movie) (director domain.Director, found bool, err error) {
	if movie.DirectorID == nil {
		return domain.Director{}, false, nil
	}
	director, err = getDirector(ctx, r.q, *movie.DirectorID, false)
	switch {
	case errors.Is(err, ErrNotFound):
		return domain.Director{}, false, nil
	case err != nil:
		return domain.Director{}, false, fmt.Errorf("resolve director for movie %d: %w", movie.ID, err)
	}
	return director, true, nil
}

// ResolveGenre follows movie.GenreID; see ResolveDirector.
func (r *MoviesRepository) ResolveGenre(ctx context.Context, movie domain.Movie) (domain.Genre, bool, error) {
	if movie.GenreID == nil {
		return domain.Genre{}, false, nil
	}
	genre, err := getGenre(ctx, r.q, *movie.GenreID, false)
	switch {
	case errors.Is(err, ErrNotFound):
		return domain.Genre{}, false, nil
	case err != nil:
		return domain.Genre{}, false, fmt.Errorf("resolve genre for movie %d: %w", movie.ID, err)
	}
	return genre, true, nil
}

func scanMovie(row pgx.Row) (domain.Movie, error) {
	var movie domain.Movie
	err := row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.Description,
		&movie.Trailer,
		&movie.Year,
		&movie.Rating,
		&movie.GenreID,
		&movie.DirectorID,
	)
	if err != nil {
		return domain.Movie{}, err
	}
	return movie, nil
}
