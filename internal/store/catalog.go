package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Artist is a catalog artist annotated with its album count.
type Artist struct {
	ID         int32  `json:"id"`
	Name       string `json:"name"`
	AlbumCount int    `json:"album_count"`
}

// Album belongs to exactly one artist.
type Album struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	ArtistID int32  `json:"artist_id"`
}

// PlaylistTrack is a display-only projection of a track with album, artist
// and per-user favorite annotations. It is never persisted.
type PlaylistTrack struct {
	TrackID    int64  `json:"track_id"`
	TrackName  string `json:"track_name"`
	AlbumTitle string `json:"album_title"`
	ArtistName string `json:"artist_name,omitempty"`
	IsFavorite bool   `json:"is_favorite"`
}

// missingAlbumTitle is shown for tracks that have no album.
const missingAlbumTitle = "—"

// ListArtists returns artists whose name contains filter case-insensitively,
// each with its album count, ordered by name. A blank filter matches all.
func (s *Store) ListArtists(ctx context.Context, filter string) ([]Artist, error) {
	query := `
		SELECT a.id, COALESCE(a.name, ''), COUNT(al.id)
		FROM artists a
		LEFT JOIN albums al ON al.artist_id = a.id`
	var args []any
	if f := strings.TrimSpace(filter); f != "" {
		query += `
		WHERE a.name ILIKE $1`
		args = append(args, "%"+f+"%")
	}
	query += `
		GROUP BY a.id, a.name
		ORDER BY a.name ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}
	defer rows.Close()

	artists := make([]Artist, 0)
	for rows.Next() {
		var artist Artist
		if err := rows.Scan(&artist.ID, &artist.Name, &artist.AlbumCount); err != nil {
			return nil, fmt.Errorf("scan artist: %w", err)
		}
		artists = append(artists, artist)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate artists: %w", err)
	}
	return artists, nil
}

// ArtistByID returns a single artist or ErrArtistNotFound.
func (s *Store) ArtistByID(ctx context.Context, id int32) (Artist, error) {
	var artist Artist
	err := s.db.QueryRowContext(ctx, `
		SELECT a.id, COALESCE(a.name, ''), COUNT(al.id)
		FROM artists a
		LEFT JOIN albums al ON al.artist_id = a.id
		WHERE a.id = $1
		GROUP BY a.id, a.name`, id).Scan(&artist.ID, &artist.Name, &artist.AlbumCount)
	if errors.Is(err, sql.ErrNoRows) {
		return Artist{}, ErrArtistNotFound
	}
	if err != nil {
		return Artist{}, fmt.Errorf("get artist: %w", err)
	}
	return artist, nil
}

// AlbumsByArtist returns all albums belonging to the artist.
func (s *Store) AlbumsByArtist(ctx context.Context, artistID int32) ([]Album, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, artist_id
		FROM albums
		WHERE artist_id = $1
		ORDER BY title ASC`, artistID)
	if err != nil {
		return nil, fmt.Errorf("list albums: %w", err)
	}
	defer rows.Close()

	albums := make([]Album, 0)
	for rows.Next() {
		var album Album
		if err := rows.Scan(&album.ID, &album.Title, &album.ArtistID); err != nil {
			return nil, fmt.Errorf("scan album: %w", err)
		}
		albums = append(albums, album)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate albums: %w", err)
	}
	return albums, nil
}

// PlaylistTracksByArtist returns every track on any album of the artist,
// annotated with its album title and whether it sits in the user's Favorites
// playlist, ordered by album title then track name.
func (s *Store) PlaylistTracksByArtist(ctx context.Context, artistID int64, userID string) ([]PlaylistTrack, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.name, COALESCE(al.title, $4),
			EXISTS (
				SELECT 1
				FROM playlist_tracks pt
				JOIN playlists p ON p.id = pt.playlist_id
				JOIN user_playlists up ON up.playlist_id = p.id
				WHERE pt.track_id = t.id AND up.user_id = $2 AND p.name = $3
			)
		FROM tracks t
		JOIN albums al ON al.id = t.album_id
		WHERE al.artist_id = $1
		ORDER BY al.title ASC, t.name ASC`,
		artistID, userID, FavoritesPlaylistName, missingAlbumTitle)
	if err != nil {
		return nil, fmt.Errorf("list artist tracks: %w", err)
	}
	defer rows.Close()

	tracks := make([]PlaylistTrack, 0)
	for rows.Next() {
		var track PlaylistTrack
		if err := rows.Scan(&track.TrackID, &track.TrackName, &track.AlbumTitle, &track.IsFavorite); err != nil {
			return nil, fmt.Errorf("scan artist track: %w", err)
		}
		tracks = append(tracks, track)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate artist tracks: %w", err)
	}
	return tracks, nil
}
