package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"chinook/internal/store"
)

// CatalogService describes the read-only catalog workflows.
type CatalogService interface {
	ListArtists(ctx context.Context, filter string) ([]store.Artist, error)
	Artist(ctx context.Context, id int32) (store.Artist, error)
	AlbumsForArtist(ctx context.Context, artistID int32) ([]store.Album, error)
	TracksForArtist(ctx context.Context, artistID int64, userID string) ([]store.PlaylistTrack, error)
}

// PlaylistService coordinates playlist-related operations.
type PlaylistService interface {
	Get(ctx context.Context, playlistID int64, userID string) (store.PlaylistView, error)
	ListForUser(ctx context.Context, userID string) ([]store.Playlist, error)
	AddTrack(ctx context.Context, trackID, playlistID int64, playlistName, userID string) (store.Outcome, error)
	RemoveTrack(ctx context.Context, playlistID, trackID int64) (store.Outcome, error)
	Delete(ctx context.Context, playlistID int64) error
}

// FavoriteService coordinates the per-user Favorites playlist.
type FavoriteService interface {
	Add(ctx context.Context, trackID int64, userID string) (store.Outcome, error)
	Remove(ctx context.Context, trackID int64, userID string) (store.Outcome, error)
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	catalog   CatalogService
	playlists PlaylistService
	favorites FavoriteService
	jwtSecret []byte
}

// New configures a Server with the given services.
func New(catalog CatalogService, playlists PlaylistService, favorites FavoriteService, jwtSecret []byte) *Server {
	return &Server{
		catalog:   catalog,
		playlists: playlists,
		favorites: favorites,
		jwtSecret: jwtSecret,
	}
}

// Routes exposes the HTTP handlers for catalog and playlist management.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("GET /api/v1/artists", s.handleListArtists)
	mux.HandleFunc("GET /api/v1/artists/{id}", s.handleGetArtist)
	mux.HandleFunc("GET /api/v1/artists/{id}/albums", s.handleArtistAlbums)
	mux.HandleFunc("GET /api/v1/artists/{id}/tracks", s.handleArtistTracks)

	mux.HandleFunc("GET /api/v1/me/playlists", s.handleListPlaylists)
	mux.HandleFunc("GET /api/v1/playlists/{id}", s.handleGetPlaylist)
	mux.HandleFunc("DELETE /api/v1/playlists/{id}", s.handleDeletePlaylist)
	mux.HandleFunc("POST /api/v1/playlists/tracks", s.handleAddTrack)
	mux.HandleFunc("DELETE /api/v1/playlists/{id}/tracks/{trackId}", s.handleRemoveTrack)

	mux.HandleFunc("POST /api/v1/me/favorites/tracks/{id}", s.handleAddFavorite)
	mux.HandleFunc("DELETE /api/v1/me/favorites/tracks/{id}", s.handleRemoveFavorite)

	return mux
}

type errorResponse struct {
	Error string `json:"error"`
}

type outcomeResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeOutcome maps a business outcome onto an HTTP status. Callers of the
// API branch on the status field, not on the message.
func writeOutcome(w http.ResponseWriter, out store.Outcome) {
	writeJSON(w, outcomeStatusCode(out.Status), outcomeResponse{
		Status:  out.Status.String(),
		Message: out.Message,
	})
}

func outcomeStatusCode(status store.Status) int {
	switch status {
	case store.StatusSucceeded:
		return http.StatusOK
	case store.StatusNotFound:
		return http.StatusNotFound
	case store.StatusAlreadyExists:
		return http.StatusConflict
	case store.StatusInvalidInput:
		return http.StatusBadRequest
	case store.StatusTransientFailure:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
