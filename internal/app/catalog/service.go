package catalog

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"chinook/internal/store"
)

// ErrServer masks unexpected store faults from callers; the underlying
// cause is logged at the operation boundary.
var ErrServer = errors.New("server error, please retry in a few moments")

// Store captures the catalog queries the service needs.
type Store interface {
	ListArtists(ctx context.Context, filter string) ([]store.Artist, error)
	ArtistByID(ctx context.Context, id int32) (store.Artist, error)
	AlbumsByArtist(ctx context.Context, artistID int32) ([]store.Album, error)
	PlaylistTracksByArtist(ctx context.Context, artistID int64, userID string) ([]store.PlaylistTrack, error)
}

// Service provides read-only catalog lookups.
type Service interface {
	ListArtists(ctx context.Context, filter string) ([]store.Artist, error)
	Artist(ctx context.Context, id int32) (store.Artist, error)
	AlbumsForArtist(ctx context.Context, artistID int32) ([]store.Album, error)
	TracksForArtist(ctx context.Context, artistID int64, userID string) ([]store.PlaylistTrack, error)
}

type service struct {
	store  Store
	logger zerolog.Logger
}

// New constructs a catalog Service backed by the provided Store.
func New(st Store, logger zerolog.Logger) Service {
	return &service{store: st, logger: logger}
}

func (s *service) ListArtists(ctx context.Context, filter string) ([]store.Artist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	artists, err := s.store.ListArtists(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Str("op", "ListArtists").Msg("catalog query failed")
		return nil, ErrServer
	}
	return artists, nil
}

func (s *service) Artist(ctx context.Context, id int32) (store.Artist, error) {
	if err := ctx.Err(); err != nil {
		return store.Artist{}, err
	}
	artist, err := s.store.ArtistByID(ctx, id)
	if errors.Is(err, store.ErrArtistNotFound) {
		return store.Artist{}, err
	}
	if err != nil {
		s.logger.Error().Err(err).Str("op", "Artist").Int32("artist_id", id).Msg("catalog query failed")
		return store.Artist{}, ErrServer
	}
	return artist, nil
}

func (s *service) AlbumsForArtist(ctx context.Context, artistID int32) ([]store.Album, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	albums, err := s.store.AlbumsByArtist(ctx, artistID)
	if err != nil {
		s.logger.Error().Err(err).Str("op", "AlbumsForArtist").Int32("artist_id", artistID).Msg("catalog query failed")
		return nil, ErrServer
	}
	return albums, nil
}

func (s *service) TracksForArtist(ctx context.Context, artistID int64, userID string) ([]store.PlaylistTrack, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tracks, err := s.store.PlaylistTracksByArtist(ctx, artistID, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("op", "TracksForArtist").Int64("artist_id", artistID).Str("user_id", userID).Msg("catalog query failed")
		return nil, ErrServer
	}
	return tracks, nil
}
