package favorites

import (
	"context"

	"github.com/rs/zerolog"

	"chinook/internal/store"
)

const retryMessage = "could not be completed, please try again in a few minutes"

// Store captures the favorite-track operations the service needs.
type Store interface {
	AddFavorite(ctx context.Context, trackID int64, userID string) (store.Outcome, error)
	RemoveFavorite(ctx context.Context, trackID int64, userID string) (store.Outcome, error)
}

// Service coordinates the per-user Favorites playlist. Both operations are
// idempotent: repeat calls converge on the same membership and report a
// descriptive outcome instead of failing.
type Service interface {
	Add(ctx context.Context, trackID int64, userID string) (store.Outcome, error)
	Remove(ctx context.Context, trackID int64, userID string) (store.Outcome, error)
}

type service struct {
	store  Store
	logger zerolog.Logger
}

// New constructs a favorites Service backed by the provided Store.
func New(st Store, logger zerolog.Logger) Service {
	return &service{store: st, logger: logger}
}

func (s *service) Add(ctx context.Context, trackID int64, userID string) (store.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return store.Outcome{}, err
	}
	out, err := s.store.AddFavorite(ctx, trackID, userID)
	if err != nil {
		s.logger.Error().Err(err).
			Str("op", "Add").
			Int64("track_id", trackID).
			Str("user_id", userID).
			Msg("favorite mutation failed")
		return store.Outcome{Status: store.StatusTransientFailure, Message: retryMessage}, nil
	}
	return out, nil
}

func (s *service) Remove(ctx context.Context, trackID int64, userID string) (store.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return store.Outcome{}, err
	}
	out, err := s.store.RemoveFavorite(ctx, trackID, userID)
	if err != nil {
		s.logger.Error().Err(err).
			Str("op", "Remove").
			Int64("track_id", trackID).
			Str("user_id", userID).
			Msg("favorite mutation failed")
		return store.Outcome{Status: store.StatusTransientFailure, Message: retryMessage}, nil
	}
	return out, nil
}
