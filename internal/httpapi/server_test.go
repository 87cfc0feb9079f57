package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"chinook/internal/store"
)

var testSecret = []byte("test-secret")

type stubCatalog struct {
	artists []store.Artist
	artist  store.Artist
	albums  []store.Album
	tracks  []store.PlaylistTrack
	err     error
}

func (s *stubCatalog) ListArtists(context.Context, string) ([]store.Artist, error) {
	return s.artists, s.err
}

func (s *stubCatalog) Artist(context.Context, int32) (store.Artist, error) {
	return s.artist, s.err
}

func (s *stubCatalog) AlbumsForArtist(context.Context, int32) ([]store.Album, error) {
	return s.albums, s.err
}

func (s *stubCatalog) TracksForArtist(context.Context, int64, string) ([]store.PlaylistTrack, error) {
	return s.tracks, s.err
}

type stubPlaylists struct {
	view      store.PlaylistView
	playlists []store.Playlist
	outcome   store.Outcome
	err       error

	gotUserID string
}

func (s *stubPlaylists) Get(_ context.Context, _ int64, userID string) (store.PlaylistView, error) {
	s.gotUserID = userID
	return s.view, s.err
}

func (s *stubPlaylists) ListForUser(_ context.Context, userID string) ([]store.Playlist, error) {
	s.gotUserID = userID
	return s.playlists, s.err
}

func (s *stubPlaylists) AddTrack(_ context.Context, _, _ int64, _, userID string) (store.Outcome, error) {
	s.gotUserID = userID
	return s.outcome, s.err
}

func (s *stubPlaylists) RemoveTrack(context.Context, int64, int64) (store.Outcome, error) {
	return s.outcome, s.err
}

func (s *stubPlaylists) Delete(context.Context, int64) error {
	return s.err
}

type stubFavorites struct {
	outcome store.Outcome
	err     error
}

func (s *stubFavorites) Add(context.Context, int64, string) (store.Outcome, error) {
	return s.outcome, s.err
}

func (s *stubFavorites) Remove(context.Context, int64, string) (store.Outcome, error) {
	return s.outcome, s.err
}

func newTestServer(catalog CatalogService, playlists PlaylistService, favorites FavoriteService) http.Handler {
	return New(catalog, playlists, favorites, testSecret).Routes()
}

func signedToken(t *testing.T, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: subject})
	raw, err := token.SignedString(testSecret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return raw
}

func TestListArtistsReturnsJSON(t *testing.T) {
	catalog := &stubCatalog{artists: []store.Artist{
		{ID: 1, Name: "AC/DC", AlbumCount: 2},
		{ID: 2, Name: "Accept", AlbumCount: 2},
	}}
	handler := newTestServer(catalog, &stubPlaylists{}, &stubFavorites{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/artists?search=ac", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body struct {
		Artists []store.Artist `json:"artists"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Artists) != 2 || body.Artists[0].Name != "AC/DC" {
		t.Fatalf("unexpected body: %#v", body)
	}
}

func TestGetArtistNotFound(t *testing.T) {
	catalog := &stubCatalog{err: store.ErrArtistNotFound}
	handler := newTestServer(catalog, &stubPlaylists{}, &stubFavorites{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/artists/999", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestListPlaylistsRequiresToken(t *testing.T) {
	handler := newTestServer(&stubCatalog{}, &stubPlaylists{}, &stubFavorites{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me/playlists", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestListPlaylistsRejectsForgedToken(t *testing.T) {
	handler := newTestServer(&stubCatalog{}, &stubPlaylists{}, &stubFavorites{})

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "u1"})
	raw, err := token.SignedString([]byte("wrong-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me/playlists", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestListPlaylistsPassesSubjectAsUserID(t *testing.T) {
	playlists := &stubPlaylists{playlists: []store.Playlist{{ID: 1, Name: "Favorites"}}}
	handler := newTestServer(&stubCatalog{}, playlists, &stubFavorites{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me/playlists", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "u1"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if playlists.gotUserID != "u1" {
		t.Fatalf("expected user id u1, got %q", playlists.gotUserID)
	}
}

func TestAddTrackMapsOutcomeToStatusCode(t *testing.T) {
	cases := []struct {
		name    string
		outcome store.Outcome
		want    int
	}{
		{"succeeded", store.Outcome{Status: store.StatusSucceeded, Message: "added to playlist Chill"}, http.StatusOK},
		{"not found", store.Outcome{Status: store.StatusNotFound, Message: "track is not available"}, http.StatusNotFound},
		{"duplicate", store.Outcome{Status: store.StatusAlreadyExists, Message: "track is already in playlist Chill"}, http.StatusConflict},
		{"invalid", store.Outcome{Status: store.StatusInvalidInput, Message: "playlist does not exist and no name was given to create one"}, http.StatusBadRequest},
		{"transient", store.Outcome{Status: store.StatusTransientFailure, Message: "could not be completed, please try again in a few minutes"}, http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := newTestServer(&stubCatalog{}, &stubPlaylists{outcome: tc.outcome}, &stubFavorites{})

			req := httptest.NewRequest(http.MethodPost, "/api/v1/playlists/tracks",
				strings.NewReader(`{"track_id": 7, "playlist_name": "Chill"}`))
			req.Header.Set("Authorization", "Bearer "+signedToken(t, "u1"))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rec.Code)
			}

			var body outcomeResponse
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if body.Message != tc.outcome.Message {
				t.Fatalf("expected message %q, got %q", tc.outcome.Message, body.Message)
			}
		})
	}
}

func TestAddTrackRejectsMalformedBody(t *testing.T) {
	handler := newTestServer(&stubCatalog{}, &stubPlaylists{}, &stubFavorites{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/playlists/tracks", strings.NewReader("{not json"))
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "u1"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAddFavoriteConflict(t *testing.T) {
	favorites := &stubFavorites{outcome: store.Outcome{
		Status:  store.StatusAlreadyExists,
		Message: "already in Favorites",
	}}
	handler := newTestServer(&stubCatalog{}, &stubPlaylists{}, favorites)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/me/favorites/tracks/42", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "u1"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestDeletePlaylistNoContent(t *testing.T) {
	handler := newTestServer(&stubCatalog{}, &stubPlaylists{}, &stubFavorites{})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/playlists/3", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "u1"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestRemoveTrackInvalidPathValue(t *testing.T) {
	handler := newTestServer(&stubCatalog{}, &stubPlaylists{}, &stubFavorites{})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/playlists/3/tracks/abc", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "u1"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
