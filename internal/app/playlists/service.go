package playlists

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"chinook/internal/store"
)

// ErrServer masks unexpected store faults from callers.
var ErrServer = errors.New("server error, please retry in a few moments")

// retryMessage is the display text for outcomes degraded by a store fault.
const retryMessage = "could not be completed, please try again in a few minutes"

// Store captures the persistence needs for playlist workflows.
type Store interface {
	PlaylistByID(ctx context.Context, playlistID int64, userID string) (store.PlaylistView, error)
	PlaylistsByUser(ctx context.Context, userID string) ([]store.Playlist, error)
	AddTrackToPlaylist(ctx context.Context, trackID, playlistID int64, playlistName, userID string) (store.Outcome, error)
	RemoveTrackFromPlaylist(ctx context.Context, playlistID, trackID int64) (store.Outcome, error)
	DeletePlaylist(ctx context.Context, playlistID int64) error
}

// Service coordinates playlist-related operations. Expected business results
// come back as outcomes; unexpected store faults are logged here and reported
// as TransientFailure so internal detail never reaches the caller.
type Service interface {
	Get(ctx context.Context, playlistID int64, userID string) (store.PlaylistView, error)
	ListForUser(ctx context.Context, userID string) ([]store.Playlist, error)
	AddTrack(ctx context.Context, trackID, playlistID int64, playlistName, userID string) (store.Outcome, error)
	RemoveTrack(ctx context.Context, playlistID, trackID int64) (store.Outcome, error)
	Delete(ctx context.Context, playlistID int64) error
}

type service struct {
	store  Store
	logger zerolog.Logger
}

// New constructs a Service backed by the provided Store.
func New(st Store, logger zerolog.Logger) Service {
	return &service{store: st, logger: logger}
}

func (s *service) Get(ctx context.Context, playlistID int64, userID string) (store.PlaylistView, error) {
	if err := ctx.Err(); err != nil {
		return store.PlaylistView{}, err
	}
	view, err := s.store.PlaylistByID(ctx, playlistID, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("op", "Get").Int64("playlist_id", playlistID).Msg("playlist query failed")
		return store.PlaylistView{}, ErrServer
	}
	return view, nil
}

func (s *service) ListForUser(ctx context.Context, userID string) ([]store.Playlist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	playlists, err := s.store.PlaylistsByUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("op", "ListForUser").Str("user_id", userID).Msg("playlist query failed")
		return nil, ErrServer
	}
	return playlists, nil
}

func (s *service) AddTrack(ctx context.Context, trackID, playlistID int64, playlistName, userID string) (store.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return store.Outcome{}, err
	}
	out, err := s.store.AddTrackToPlaylist(ctx, trackID, playlistID, playlistName, userID)
	if err != nil {
		s.logger.Error().Err(err).
			Str("op", "AddTrack").
			Int64("track_id", trackID).
			Int64("playlist_id", playlistID).
			Str("user_id", userID).
			Msg("playlist mutation failed")
		return store.Outcome{Status: store.StatusTransientFailure, Message: retryMessage}, nil
	}
	return out, nil
}

func (s *service) RemoveTrack(ctx context.Context, playlistID, trackID int64) (store.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return store.Outcome{}, err
	}
	out, err := s.store.RemoveTrackFromPlaylist(ctx, playlistID, trackID)
	if err != nil {
		s.logger.Error().Err(err).
			Str("op", "RemoveTrack").
			Int64("playlist_id", playlistID).
			Int64("track_id", trackID).
			Msg("playlist mutation failed")
		return store.Outcome{Status: store.StatusTransientFailure, Message: retryMessage}, nil
	}
	return out, nil
}

// Delete removes the playlist and its associations. A missing playlist is a
// silent no-op; a store fault is logged and surfaced rather than swallowed.
func (s *service) Delete(ctx context.Context, playlistID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.store.DeletePlaylist(ctx, playlistID); err != nil {
		s.logger.Error().Err(err).Str("op", "Delete").Int64("playlist_id", playlistID).Msg("playlist mutation failed")
		return ErrServer
	}
	return nil
}
