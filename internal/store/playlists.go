package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Playlist is a row in the playlists table.
type Playlist struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// PlaylistView is the display form of a playlist with annotated tracks.
// A missing playlist renders as the zero view.
type PlaylistView struct {
	ID     int64           `json:"id"`
	Name   string          `json:"name"`
	Tracks []PlaylistTrack `json:"tracks"`
}

// PlaylistByID loads a playlist with its tracks, each annotated with album
// title, artist name (empty string when missing at any level) and the user's
// favorite flag, ordered by artist name, album title, then track name.
// A playlist id that does not exist yields an empty view, not an error.
func (s *Store) PlaylistByID(ctx context.Context, playlistID int64, userID string) (PlaylistView, error) {
	var view PlaylistView
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name
		FROM playlists
		WHERE id = $1`, playlistID).Scan(&view.ID, &view.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return PlaylistView{}, nil
	}
	if err != nil {
		return PlaylistView{}, fmt.Errorf("get playlist: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.name, COALESCE(al.title, ''), COALESCE(ar.name, ''),
			EXISTS (
				SELECT 1
				FROM playlist_tracks fpt
				JOIN playlists fp ON fp.id = fpt.playlist_id
				JOIN user_playlists fup ON fup.playlist_id = fp.id
				WHERE fpt.track_id = t.id AND fup.user_id = $2 AND fp.name = $3
			)
		FROM playlist_tracks pt
		JOIN tracks t ON t.id = pt.track_id
		LEFT JOIN albums al ON al.id = t.album_id
		LEFT JOIN artists ar ON ar.id = al.artist_id
		WHERE pt.playlist_id = $1
		ORDER BY COALESCE(ar.name, '') ASC, COALESCE(al.title, '') ASC, t.name ASC`,
		playlistID, userID, FavoritesPlaylistName)
	if err != nil {
		return PlaylistView{}, fmt.Errorf("list playlist tracks: %w", err)
	}
	defer rows.Close()

	view.Tracks = make([]PlaylistTrack, 0)
	for rows.Next() {
		var track PlaylistTrack
		if err := rows.Scan(&track.TrackID, &track.TrackName, &track.AlbumTitle, &track.ArtistName, &track.IsFavorite); err != nil {
			return PlaylistView{}, fmt.Errorf("scan playlist track: %w", err)
		}
		view.Tracks = append(view.Tracks, track)
	}
	if err := rows.Err(); err != nil {
		return PlaylistView{}, fmt.Errorf("iterate playlist tracks: %w", err)
	}
	return view, nil
}

// PlaylistsByUser returns the user's playlists with the Favorites playlist
// pinned first, then the rest alphabetically.
func (s *Store) PlaylistsByUser(ctx context.Context, userID string) ([]Playlist, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.name
		FROM playlists p
		JOIN user_playlists up ON up.playlist_id = p.id
		WHERE up.user_id = $1
		ORDER BY (p.name = $2) DESC, p.name ASC`, userID, FavoritesPlaylistName)
	if err != nil {
		return nil, fmt.Errorf("list playlists: %w", err)
	}
	defer rows.Close()

	playlists := make([]Playlist, 0)
	for rows.Next() {
		var playlist Playlist
		if err := rows.Scan(&playlist.ID, &playlist.Name); err != nil {
			return nil, fmt.Errorf("scan playlist: %w", err)
		}
		playlists = append(playlists, playlist)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate playlists: %w", err)
	}
	return playlists, nil
}

// AddTrackToPlaylist puts a track into one of the user's playlists. When
// playlistName is non-blank it takes precedence over playlistID and is
// matched case-insensitively; a name that matches nothing creates a new
// playlist owned by the user. Creation and the first track-add commit in a
// single transaction. Duplicate adds and unknown targets are reported as
// outcomes, never errors.
func (s *Store) AddTrackToPlaylist(ctx context.Context, trackID, playlistID int64, playlistName, userID string) (Outcome, error) {
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
		return notFound("track is not available"), nil
	}

	var (
		playlist Playlist
		found    bool
	)
	name := strings.TrimSpace(playlistName)
	if name == "" {
		playlist, found, err = playlistForUserByIDTx(ctx, tx, playlistID, userID)
	} else {
		playlist, found, err = playlistForUserByNameTx(ctx, tx, name, userID)
	}
	if err != nil {
		return Outcome{}, err
	}

	created := false
	if !found && name != "" {
		id, err := nextPlaylistIDTx(ctx, tx)
		if err != nil {
			return Outcome{}, err
		}
		if err := createPlaylistTx(ctx, tx, id, name, userID); err != nil {
			return Outcome{}, err
		}
		playlist = Playlist{ID: id, Name: name}
		found, created = true, true
	}
	if !found {
		return invalidInput("playlist does not exist and no name was given to create one"), nil
	}

	if !created {
		member, err := playlistHasTrackTx(ctx, tx, playlist.ID, trackID)
		if err != nil {
			return Outcome{}, err
		}
		if member {
			return alreadyExists(fmt.Sprintf("track is already in playlist %s", playlist.Name)), nil
		}
	}

	if err := addPlaylistTrackTx(ctx, tx, playlist.ID, trackID); err != nil {
		if isUniqueViolation(err) {
			return alreadyExists(fmt.Sprintf("track is already in playlist %s", playlist.Name)), nil
		}
		return Outcome{}, err
	}

	if err := tx.Commit(); err != nil {
		return Outcome{}, fmt.Errorf("commit add track: %w", err)
	}
	tx = nil

	return succeeded(fmt.Sprintf("added to playlist %s", playlist.Name)), nil
}

// RemoveTrackFromPlaylist detaches a single track from a playlist. The
// playlist itself is never deleted here.
func (s *Store) RemoveTrackFromPlaylist(ctx context.Context, playlistID, trackID int64) (Outcome, error) {
	var name string
	err := s.db.QueryRowContext(ctx, `
		SELECT name
		FROM playlists
		WHERE id = $1`, playlistID).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return notFound("playlist does not exist"), nil
	}
	if err != nil {
		return Outcome{}, fmt.Errorf("get playlist: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		DELETE FROM playlist_tracks
		WHERE playlist_id = $1 AND track_id = $2`, playlistID, trackID)
	if err != nil {
		return Outcome{}, fmt.Errorf("remove playlist track: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return Outcome{}, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return notFound("track is not in the playlist"), nil
	}
	return succeeded(fmt.Sprintf("removed from playlist %s", name)), nil
}

// DeletePlaylist removes a playlist together with its track and user
// associations so no join rows are left behind. Deleting a playlist that
// does not exist is a no-op.
func (s *Store) DeletePlaylist(ctx context.Context, playlistID int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	var id int64
	err = tx.QueryRowContext(ctx, `
		SELECT id
		FROM playlists
		WHERE id = $1`, playlistID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("get playlist: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM playlist_tracks
		WHERE playlist_id = $1`, playlistID); err != nil {
		return fmt.Errorf("delete playlist tracks: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		DELETE FROM user_playlists
		WHERE playlist_id = $1`, playlistID); err != nil {
		return fmt.Errorf("delete user playlists: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		DELETE FROM playlists
		WHERE id = $1`, playlistID); err != nil {
		return fmt.Errorf("delete playlist: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit playlist delete: %w", err)
	}
	tx = nil

	return nil
}

func trackExistsTx(ctx context.Context, tx *sql.Tx, trackID int64) (bool, error) {
	var id int64
	err := tx.QueryRowContext(ctx, `
		SELECT id
		FROM tracks
		WHERE id = $1`, trackID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get track: %w", err)
	}
	return true, nil
}

func playlistForUserByIDTx(ctx context.Context, tx *sql.Tx, playlistID int64, userID string) (Playlist, bool, error) {
	var playlist Playlist
	err := tx.QueryRowContext(ctx, `
		SELECT p.id, p.name
		FROM playlists p
		JOIN user_playlists up ON up.playlist_id = p.id
		WHERE p.id = $1 AND up.user_id = $2`, playlistID, userID).Scan(&playlist.ID, &playlist.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return Playlist{}, false, nil
	}
	if err != nil {
		return Playlist{}, false, fmt.Errorf("resolve playlist by id: %w", err)
	}
	return playlist, true, nil
}

func playlistForUserByNameTx(ctx context.Context, tx *sql.Tx, name, userID string) (Playlist, bool, error) {
	var playlist Playlist
	err := tx.QueryRowContext(ctx, `
		SELECT p.id, p.name
		FROM playlists p
		JOIN user_playlists up ON up.playlist_id = p.id
		WHERE LOWER(p.name) = LOWER($1) AND up.user_id = $2`, name, userID).Scan(&playlist.ID, &playlist.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return Playlist{}, false, nil
	}
	if err != nil {
		return Playlist{}, false, fmt.Errorf("resolve playlist by name: %w", err)
	}
	return playlist, true, nil
}

func favoritesPlaylistTx(ctx context.Context, tx *sql.Tx, userID string) (Playlist, bool, error) {
	var playlist Playlist
	err := tx.QueryRowContext(ctx, `
		SELECT p.id, p.name
		FROM playlists p
		JOIN user_playlists up ON up.playlist_id = p.id
		WHERE p.name = $1 AND up.user_id = $2`, FavoritesPlaylistName, userID).Scan(&playlist.ID, &playlist.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return Playlist{}, false, nil
	}
	if err != nil {
		return Playlist{}, false, fmt.Errorf("resolve favorites playlist: %w", err)
	}
	return playlist, true, nil
}

// nextPlaylistIDTx assigns the next surrogate id: max(existing)+1, or 1 when
// no playlists exist. Ids are never reused after deletion.
func nextPlaylistIDTx(ctx context.Context, tx *sql.Tx) (int64, error) {
	var next int64
	if err := tx.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(id), 0) + 1
		FROM playlists`).Scan(&next); err != nil {
		return 0, fmt.Errorf("next playlist id: %w", err)
	}
	return next, nil
}

func createPlaylistTx(ctx context.Context, tx *sql.Tx, id int64, name, userID string) error {
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO playlists (id, name)
		VALUES ($1, $2)`, id, name); err != nil {
		return fmt.Errorf("insert playlist: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO user_playlists (user_id, playlist_id)
		VALUES ($1, $2)`, userID, id); err != nil {
		return fmt.Errorf("insert user playlist: %w", err)
	}
	return nil
}

func playlistHasTrackTx(ctx context.Context, tx *sql.Tx, playlistID, trackID int64) (bool, error) {
	var member bool
	if err := tx.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM playlist_tracks WHERE playlist_id = $1 AND track_id = $2)`,
		playlistID, trackID).Scan(&member); err != nil {
		return false, fmt.Errorf("check playlist track: %w", err)
	}
	return member, nil
}

func addPlaylistTrackTx(ctx context.Context, tx *sql.Tx, playlistID, trackID int64) error {
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO playlist_tracks (playlist_id, track_id)
		VALUES ($1, $2)`, playlistID, trackID); err != nil {
		return fmt.Errorf("insert playlist track: %w", err)
	}
	return nil
}
