package playlists

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"chinook/internal/store"
)

type fakeStore struct {
	view      store.PlaylistView
	playlists []store.Playlist
	outcome   store.Outcome
	err       error
}

func (f *fakeStore) PlaylistByID(context.Context, int64, string) (store.PlaylistView, error) {
	return f.view, f.err
}

func (f *fakeStore) PlaylistsByUser(context.Context, string) ([]store.Playlist, error) {
	return f.playlists, f.err
}

func (f *fakeStore) AddTrackToPlaylist(context.Context, int64, int64, string, string) (store.Outcome, error) {
	return f.outcome, f.err
}

func (f *fakeStore) RemoveTrackFromPlaylist(context.Context, int64, int64) (store.Outcome, error) {
	return f.outcome, f.err
}

func (f *fakeStore) DeletePlaylist(context.Context, int64) error {
	return f.err
}

func TestAddTrackPassesOutcomeThrough(t *testing.T) {
	want := store.Outcome{Status: store.StatusAlreadyExists, Message: "track is already in playlist Chill"}
	svc := New(&fakeStore{outcome: want}, zerolog.Nop())

	got, err := svc.AddTrack(context.Background(), 7, 3, "", "u1")
	if err != nil {
		t.Fatalf("AddTrack error: %v", err)
	}
	if got != want {
		t.Fatalf("expected %#v, got %#v", want, got)
	}
}

func TestAddTrackMasksStoreFault(t *testing.T) {
	svc := New(&fakeStore{err: errors.New("connection reset")}, zerolog.Nop())

	got, err := svc.AddTrack(context.Background(), 7, 3, "", "u1")
	if err != nil {
		t.Fatalf("AddTrack error: %v", err)
	}
	if got.Status != store.StatusTransientFailure {
		t.Fatalf("expected transient failure, got %#v", got)
	}
}

func TestGetMasksStoreFault(t *testing.T) {
	svc := New(&fakeStore{err: errors.New("connection reset")}, zerolog.Nop())

	_, err := svc.Get(context.Background(), 3, "u1")
	if !errors.Is(err, ErrServer) {
		t.Fatalf("expected ErrServer, got %v", err)
	}
}

func TestDeleteSurfacesStoreFault(t *testing.T) {
	svc := New(&fakeStore{err: errors.New("connection reset")}, zerolog.Nop())

	if err := svc.Delete(context.Background(), 3); !errors.Is(err, ErrServer) {
		t.Fatalf("expected ErrServer, got %v", err)
	}
}

func TestDeleteNoopSucceeds(t *testing.T) {
	svc := New(&fakeStore{}, zerolog.Nop())

	if err := svc.Delete(context.Background(), 404); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}

func TestCancelledContextShortCircuits(t *testing.T) {
	svc := New(&fakeStore{}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.ListForUser(ctx, "u1"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
