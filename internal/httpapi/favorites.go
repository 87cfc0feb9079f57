package httpapi

import (
	"net/http"
)

func (s *Server) handleAddFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	trackID, ok := pathInt64(w, r, "id")
	if !ok {
		return
	}

	out, err := s.favorites.Add(r.Context(), trackID, userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	writeOutcome(w, out)
}

func (s *Server) handleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	trackID, ok := pathInt64(w, r, "id")
	if !ok {
		return
	}

	out, err := s.favorites.Remove(r.Context(), trackID, userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	writeOutcome(w, out)
}
