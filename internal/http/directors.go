package httpserver

import (
	"fmt"
	"net/http"

	"github.com/Clark-Hu/movie-catalog/internal/domain"
	"github.com/Clark-Hu/movie-catalog/internal/repository"
)

// nameRequest is the body for directors and genres. As with movies, an "id"
// key is accepted and ignored.
type nameRequest struct {
	ID   *int64  `json:"id"`
	Name *string `json:"name"`
}

type nameResponse struct {
	ID   int64   `json:"id"`
	Name *string `json:"name"`
}

func (s *Server) handleListDirectors(w http.ResponseWriter, r *http.Request) {
	directors, err := s.repo.Directors.List(r.Context())
	s.observe("director", "list", err)
	if err != nil {
		s.respondStoreError(w, r, err, "Failed to list directors")
		return
	}

	items := make([]nameResponse, 0, len(directors))
	for _, d := range directors {
		items = append(items, toDirectorResponse(d))
	}
	s.respondJSON(w, http.StatusOK, items)
}

func (s *Server) handleGetDirector(w http.ResponseWriter, r *http.Request) {
	director, err := s.repo.Directors.GetByID(r.Context(), entityIDFrom(r))
	s.observe("director", "get", err)
	if err != nil {
		s.respondStoreError(w, r, err, "Failed to fetch director")
		return
	}
	s.respondJSON(w, http.StatusOK, toDirectorResponse(director))
}

func (s *Server) handleCreateDirector(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	var created domain.Director
	err := s.inTx(r.Context(), func(repo *repository.Repository) error {
		var err error
		created, err = repo.Directors.Create(r.Context(), domain.Director{Name: req.Name})
		return err
	})
	s.observe("director", "create", err)
	if err != nil {
		s.respondStoreError(w, r, err, "Failed to create director")
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/directors/%d", created.ID))
	s.respondJSON(w, http.StatusCreated, toDirectorResponse(created))
}

func (s *Server) handleUpdateDirector(w http.ResponseWriter, r *http.Request) {
	id := entityIDFrom(r)

	var req nameRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	err := s.inTx(r.Context(), func(repo *repository.Repository) error {
		if _, err := repo.Directors.GetForUpdate(r.Context(), id); err != nil {
			return err
		}
		return repo.Directors.Update(r.Context(), domain.Director{ID: id, Name: req.Name})
	})
	s.observe("director", "update", err)
	if err != nil {
		s.respondStoreError(w, r, err, "Failed to update director")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleDeleteDirector removes the director only; movies keep their director_id.
func (s *Server) handleDeleteDirector(w http.ResponseWriter, r *http.Request) {
	id := entityIDFrom(r)

	err := s.inTx(r.Context(), func(repo *repository.Repository) error {
		if _, err := repo.Directors.GetForUpdate(r.Context(), id); err != nil {
			return err
		}
		return repo.Directors.Delete(r.Context(), id)
	})
	s.observe("director", "delete", err)
	if err != nil {
		s.respondStoreError(w, r, err, "Failed to delete director")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toDirectorResponse(d domain.Director) nameResponse {
	return nameResponse{ID: d.ID, Name: d.Name}
}
