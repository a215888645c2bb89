package main

import (
	"context"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"

	"github.com/Clark-Hu/movie-catalog/internal/domain"
	"github.com/Clark-Hu/movie-catalog/internal/repository"
	"github.com/Clark-Hu/movie-catalog/internal/store"
)

type namedEntry struct {
	Name *string `json:"name"`
}

// movieEntry references directors and genres either by their position in the
// fixture (*_ref) or by an id already present in the store (*_id). A ref wins
// when both are given.
type movieEntry struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Trailer     *string  `json:"trailer"`
	Year        *int32   `json:"year"`
	Rating      *float64 `json:"rating"`
	GenreRef    *int     `json:"genre_ref"`
	GenreID     *int64   `json:"genre_id"`
	DirectorRef *int     `json:"director_ref"`
	DirectorID  *int64   `json:"director_id"`
}

type fixture struct {
	Directors []namedEntry `json:"directors"`
	Genres    []namedEntry `json:"genres"`
	Movies    []movieEntry `json:"movies"`
}

type result struct {
	Directors int
	Genres    int
	Movies    int
}

func parseFixture(r io.Reader) (fixture, error) {
	var fx fixture
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fx); err != nil {
		return fixture{}, fmt.Errorf("decode fixture: %w", err)
	}
	for i, m := range fx.Movies {
		if m.DirectorRef != nil && (*m.DirectorRef < 0 || *m.DirectorRef >= len(fx.Directors)) {
			return fixture{}, fmt.Errorf("movie %d: director_ref %d out of range", i, *m.DirectorRef)
		}
		if m.GenreRef != nil && (*m.GenreRef < 0 || *m.GenreRef >= len(fx.Genres)) {
			return fixture{}, fmt.Errorf("movie %d: genre_ref %d out of range", i, *m.GenreRef)
		}
	}
	return fx, nil
}

// resolve turns a fixture entry into a movie using the ids assigned to the
// fixture's directors and genres.
func (m movieEntry) resolve(directorIDs, genreIDs []int64) domain.Movie {
	movie := domain.Movie{
		Title:       m.Title,
		Description: m.Description,
		Trailer:     m.Trailer,
		Year:        m.Year,
		Rating:      m.Rating,
		GenreID:     m.GenreID,
		DirectorID:  m.DirectorID,
	}
	if m.DirectorRef != nil {
		id := directorIDs[*m.DirectorRef]
		movie.DirectorID = &id
	}
	if m.GenreRef != nil {
		id := genreIDs[*m.GenreRef]
		movie.GenreID = &id
	}
	return movie
}

// seed inserts the whole fixture in one transaction.
func seed(ctx context.Context, st *store.Store, repo *repository.Repository, fx fixture) (result, error) {
	var res result
	err := st.InTx(ctx, func(tx pgx.Tx) error {
		txRepo := repo.WithTx(tx)

		directorIDs := make([]int64, 0, len(fx.Directors))
		for _, d := range fx.Directors {
			created, err := txRepo.Directors.Create(ctx, domain.Director{Name: d.Name})
			if err != nil {
				return err
			}
			directorIDs = append(directorIDs, created.ID)
		}

		genreIDs := make([]int64, 0, len(fx.Genres))
		for _, g := range fx.Genres {
			created, err := txRepo.Genres.Create(ctx, domain.Genre{Name: g.Name})
			if err != nil {
				return err
			}
			genreIDs = append(genreIDs, created.ID)
		}

		for _, m := range fx.Movies {
			if _, err := txRepo.Movies.Create(ctx, m.resolve(directorIDs, genreIDs)); err != nil {
				return err
			}
		}

		res = result{Directors: len(directorIDs), Genres: len(genreIDs), Movies: len(fx.Movies)}
		return nil
	})
	if err != nil {
		return result{}, err
	}
	return res, nil
}
