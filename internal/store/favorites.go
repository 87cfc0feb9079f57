package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// AddFavorite puts a track into the user's Favorites playlist, creating the
// playlist on first use. Creation, its user association and the first
// track-add commit together. Repeated calls converge on the same membership
// and report AlreadyExists instead of failing.
func (s *Store) AddFavorite(ctx context.Context, trackID int64, userID string) (Outcome, error) {
	unlock := s.lockUser(userID)
	defer unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Outcome{}, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	ok, err := trackExistsTx(ctx, tx, trackID)
	if err != nil {
		return Outcome{}, err
	}
	if !ok {
		return notFound("track is not existing"), nil
	}

	playlist, found, err := favoritesPlaylistTx(ctx, tx, userID)
	if err != nil {
		return Outcome{}, err
	}

	if !found {
		id, err := nextPlaylistIDTx(ctx, tx)
		if err != nil {
			return Outcome{}, err
		}
		if err := createPlaylistTx(ctx, tx, id, FavoritesPlaylistName, userID); err != nil {
			return Outcome{}, err
		}
		playlist = Playlist{ID: id, Name: FavoritesPlaylistName}
	} else {
		member, err := playlistHasTrackTx(ctx, tx, playlist.ID, trackID)
		if err != nil {
			return Outcome{}, err
		}
		if member {
			return alreadyExists(fmt.Sprintf("already in %s", FavoritesPlaylistName)), nil
		}
	}

	if err := addPlaylistTrackTx(ctx, tx, playlist.ID, trackID); err != nil {
		if isUniqueViolation(err) {
			return alreadyExists(fmt.Sprintf("already in %s", FavoritesPlaylistName)), nil
		}
		return Outcome{}, err
	}

	if err := tx.Commit(); err != nil {
		return Outcome{}, fmt.Errorf("commit favorite add: %w", err)
	}
	tx = nil

	return succeeded(fmt.Sprintf("added to playlist %s", FavoritesPlaylistName)), nil
}

// RemoveFavorite takes a track out of the user's Favorites playlist. When
// the user has no Favorites playlist, or it does not contain the track, the
// call is a reported no-op.
func (s *Store) RemoveFavorite(ctx context.Context, trackID int64, userID string) (Outcome, error) {
	var playlistID int64
	err := s.db.QueryRowContext(ctx, `
		SELECT p.id
		FROM playlists p
		JOIN user_playlists up ON up.playlist_id = p.id
		JOIN playlist_tracks pt ON pt.playlist_id = p.id
		WHERE p.name = $1 AND up.user_id = $2 AND pt.track_id = $3`,
		FavoritesPlaylistName, userID, trackID).Scan(&playlistID)
	if errors.Is(err, sql.ErrNoRows) {
		return notFound(fmt.Sprintf("was not in the playlist %s", FavoritesPlaylistName)), nil
	}
	if err != nil {
		return Outcome{}, fmt.Errorf("resolve favorites playlist: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		DELETE FROM playlist_tracks
		WHERE playlist_id = $1 AND track_id = $2`, playlistID, trackID)
	if err != nil {
		return Outcome{}, fmt.Errorf("remove favorite: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return Outcome{}, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		// Lost a race with a concurrent remove; the end state is the same.
		return notFound(fmt.Sprintf("was not in the playlist %s", FavoritesPlaylistName)), nil
	}
	return succeeded(fmt.Sprintf("removed from playlist %s", FavoritesPlaylistName)), nil
}
