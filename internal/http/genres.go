package httpserver

import (
	"fmt"
	"net/http"

	"github.com/Clark-Hu/movie-catalog/internal/domain"
	"github.com/Clark-Hu/movie-catalog/internal/repository"
)

func (s *Server) handleListGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := s.repo.Genres.List(r.Context())
	s.observe("genre", "list", err)
	if err != nil {
		s.respondStoreError(w, r, err, "Failed to list genres")
		return
	}

	items := make([]nameResponse, 0, len(genres))
	for _, g := range genres {
		items = append(items, toGenreResponse(g))
	}
	s.respondJSON(w, http.StatusOK, items)
}

func (s *Server) handleGetGenre(w http.ResponseWriter, r *http.Request) {
	genre, err := s.repo.Genres.GetByID(r.Context(), entityIDFrom(r))
	s.observe("genre", "get", err)
	if err != nil {
		s.respondStoreError(w, r, err, "Failed to fetch genre")
		return
	}
	s.respondJSON(w, http.StatusOK, toGenreResponse(genre))
}

func (s *Server) handleCreateGenre(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	var created domain.Genre
	err := s.inTx(r.Context(), func(repo *repository.Repository) error {
		var err error
		created, err = repo.Genres.Create(r.Context(), domain.Genre{Name: req.Name})
		return err
	})
	s.observe("genre", "create", err)
	if err != nil {
		s.respondStoreError(w, r, err, "Failed to create genre")
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/genres/%d", created.ID))
	s.respondJSON(w, http.StatusCreated, toGenreResponse(created))
}

func (s *Server) handleUpdateGenre(w http.ResponseWriter, r *http.Request) {
	id := entityIDFrom(r)

	var req nameRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	err := s.inTx(r.Context(), func(repo *repository.Repository) error {
		if _, err := repo.Genres.GetForUpdate(r.Context(), id); err != nil {
			return err
		}
		return repo.Genres.Update(r.Context(), domain.Genre{ID: id, Name: req.Name})
	})
	s.observe("genre", "update", err)
	if err != nil {
		s.respondStoreError(w, r, err, "Failed to update genre")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteGenre(w http.ResponseWriter, r *http.Request) {
	id := entityIDFrom(r)

	err := s.inTx(r.Context(), func(repo *repository.Repository) error {
		if _, err := repo.Genres.GetForUpdate(r.Context(), id); err != nil {
			return err
		}
		return repo.Genres.Delete(r.Context(), id)
	})
	s.observe("genre", "delete", err)
	if err != nil {
		s.respondStoreError(w, r, err, "Failed to delete genre")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toGenreResponse(g domain.Genre) nameResponse {
	return nameResponse{ID: g.ID, Name: g.Name}
}
