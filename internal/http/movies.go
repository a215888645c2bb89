package httpserver

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Clark-Hu/movie-catalog/internal/domain"
	"github.com/Clark-Hu/movie-catalog/internal/repository"
)

// movieRequest is the body accepted by POST and PUT. An "id" key is tolerated
// so clients can send back a record they fetched, but it is never applied.
type movieRequest struct {
	ID          *int64   `json:"id"`
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Trailer     *string  `json:"trailer"`
	Year        *int32   `json:"year"`
	Rating      *float64 `json:"rating"`
	GenreID     *int64   `json:"genre_id"`
	DirectorID  *int64   `json:"director_id"`
}

type movieResponse struct {
	ID          int64    `json:"id"`
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Trailer     *string  `json:"trailer"`
	Year        *int32   `json:"year"`
	Rating      *float64 `json:"rating"`
	GenreID     *int64   `json:"genre_id"`
	DirectorID  *int64   `json:"director_id"`
}

// movieFilter holds the optional list filters. A director filter wins over a
// genre filter. A filter given with a blank value matches no movie.
type movieFilter struct {
	DirectorSet bool
	DirectorID  *int64
	GenreSet    bool
	GenreID     *int64
}

func (s *Server) handleListMovies(w http.ResponseWriter, r *http.Request) {
	filter, err := buildMovieFilter(r.URL.Query())
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	var movies []domain.Movie
	switch {
	case filter.DirectorSet:
		if filter.DirectorID != nil {
			movies, err = s.repo.Movies.ListByDirector(r.Context(), *filter.DirectorID)
		}
	case filter.GenreSet:
		if filter.GenreID != nil {
			movies, err = s.repo.Movies.ListByGenre(r.Context(), *filter.GenreID)
		}
	default:
		movies, err = s.repo.Movies.List(r.Context())
	}
	s.observe("movie", "list", err)
	if err != nil {
		s.respondStoreError(w, r, err, "Failed to list movies")
		return
	}

	s.respondJSON(w, http.StatusOK, toMovieResponses(movies))
}

func buildMovieFilter(query url.Values) (movieFilter, error) {
	var (
		filter movieFilter
		err    error
	)

	if query.Has("director_id") {
		filter.DirectorSet = true
		if filter.DirectorID, err = parseFilterID(query, "director_id"); err != nil {
			return filter, err
		}
	}
	if query.Has("genre_id") {
		filter.GenreSet = true
		if filter.GenreID, err = parseFilterID(query, "genre_id"); err != nil {
			return filter, err
		}
	}
	return filter, nil
}

func parseFilterID(query url.Values, key string) (*int64, error) {
	val := strings.TrimSpace(query.Get(key))
	if val == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value", key)
	}
	return &id, nil
}

func (s *Server) handleGetMovie(w http.ResponseWriter, r *http.Request) {
	movie, err := s.repo.Movies.GetByID(r.Context(), entityIDFrom(r))
	s.observe("movie", "get", err)
	if err != nil {
		s.respondStoreError(w, r, err, "Failed to fetch movie")
		return
	}
	s.respondJSON(w, http.StatusOK, toMovieResponse(movie))
}

func (s *Server) handleCreateMovie(w http.ResponseWriter, r *http.Request) {
	var req movieRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	var created domain.Movie
	err := s.inTx(r.Context(), func(repo *repository.Repository) error {
		var err error
		created, err = repo.Movies.Create(r.Context(), req.toDomain())
		return err
	})
	s.observe("movie", "create", err)
	if err != nil {
		s.respondStoreError(w, r, err, "Failed to create movie")
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/movies/%d", created.ID))
	s.respondJSON(w, http.StatusCreated, toMovieResponse(created))
}

// handleUpdateMovie replaces every mutable attribute; fields missing from the
// body are stored as NULL.
func (s *Server) handleUpdateMovie(w http.ResponseWriter, r *http.Request) {
	id := entityIDFrom(r)

	var req movieRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	err := s.inTx(r.Context(), func(repo *repository.Repository) error {
		if _, err := repo.Movies.GetForUpdate(r.Context(), id); err != nil {
			return err
		}
		movie := req.toDomain()
		movie.ID = id
		return repo.Movies.Update(r.Context(), movie)
	})
	s.observe("movie", "update", err)
	if err != nil {
		s.respondStoreError(w, r, err, "Failed to update movie")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteMovie(w http.ResponseWriter, r *http.Request) {
	id := entityIDFrom(r)

	err := s.inTx(r.Context(), func(repo *repository.Repository) error {
		if _, err := repo.Movies.GetForUpdate(r.Context(), id); err != nil {
			return err
		}
		return repo.Movies.Delete(r.Context(), id)
	})
	s.observe("movie", "delete", err)
	if err != nil {
		s.respondStoreError(w, r, err, "Failed to delete movie")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (req movieRequest) toDomain() domain.Movie {
	return domain.Movie{
		Title:       req.Title,
		Description: req.Description,
		Trailer:     req.Trailer,
		Year:        req.Year,
		Rating:      req.Rating,
		GenreID:     req.GenreID,
		DirectorID:  req.DirectorID,
	}
}

func toMovieResponse(movie domain.Movie) movieResponse {
	return movieResponse{
		ID:          movie.ID,
		Title:       movie.Title,
		Description: movie.Description,
		Trailer:     movie.Trailer,
		Year:        movie.Year,
		Rating:      movie.Rating,
		GenreID:     movie.GenreID,
		DirectorID:  movie.DirectorID,
	}
}

func toMovieResponses(movies []domain.Movie) []movieResponse {
	items := make([]movieResponse, 0, len(movies))
	for _, movie := range movies {
		items = append(items, toMovieResponse(movie))
	}
	return items
}
