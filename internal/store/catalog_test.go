package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestListArtistsWithFilter(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT a.id, COALESCE(a.name, ''), COUNT(al.id)
		FROM artists a
		LEFT JOIN albums al ON al.artist_id = a.id
		WHERE a.name ILIKE $1
		GROUP BY a.id, a.name
		ORDER BY a.name ASC`)).
		WithArgs("%ac%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "album_count"}).
			AddRow(int32(1), "AC/DC", 2).
			AddRow(int32(2), "Accept", 2))

	artists, err := s.ListArtists(context.Background(), "ac")
	if err != nil {
		t.Fatalf("ListArtists error: %v", err)
	}
	if len(artists) != 2 || artists[0].Name != "AC/DC" || artists[0].AlbumCount != 2 {
		t.Fatalf("unexpected artists: %#v", artists)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListArtistsBlankFilterMatchesAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT a.id, COALESCE(a.name, ''), COUNT(al.id)
		FROM artists a
		LEFT JOIN albums al ON al.artist_id = a.id
		GROUP BY a.id, a.name
		ORDER BY a.name ASC`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "album_count"}))

	artists, err := s.ListArtists(context.Background(), "   ")
	if err != nil {
		t.Fatalf("ListArtists error: %v", err)
	}
	if len(artists) != 0 {
		t.Fatalf("expected no artists, got %#v", artists)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestArtistByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT a.id, COALESCE(a.name, ''), COUNT(al.id)
		FROM artists a
		LEFT JOIN albums al ON al.artist_id = a.id
		WHERE a.id = $1
		GROUP BY a.id, a.name`)).
		WithArgs(int32(999)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "album_count"}))

	_, err = s.ArtistByID(context.Background(), 999)
	if !errors.Is(err, ErrArtistNotFound) {
		t.Fatalf("expected ErrArtistNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAlbumsByArtist(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, title, artist_id
		FROM albums
		WHERE artist_id = $1
		ORDER BY title ASC`)).
		WithArgs(int32(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "artist_id"}).
			AddRow(int64(2), "Balls to the Wall", int32(2)).
			AddRow(int64(3), "Restless and Wild", int32(2)))

	albums, err := s.AlbumsByArtist(context.Background(), 2)
	if err != nil {
		t.Fatalf("AlbumsByArtist error: %v", err)
	}
	if len(albums) != 2 || albums[1].Title != "Restless and Wild" {
		t.Fatalf("unexpected albums: %#v", albums)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPlaylistTracksByArtistAnnotatesFavorites(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
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
		ORDER BY al.title ASC, t.name ASC`)).
		WithArgs(int64(2), "u1", FavoritesPlaylistName, missingAlbumTitle).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "album", "is_favorite"}).
			AddRow(int64(6), "Balls to the Wall", "Balls to the Wall", true).
			AddRow(int64(7), "Fast As a Shark", "Restless and Wild", false))

	tracks, err := s.PlaylistTracksByArtist(context.Background(), 2, "u1")
	if err != nil {
		t.Fatalf("PlaylistTracksByArtist error: %v", err)
	}
	if len(tracks) != 2 {
		t.Fatalf("expected 2 tracks, got %d", len(tracks))
	}
	if !tracks[0].IsFavorite || tracks[1].IsFavorite {
		t.Fatalf("unexpected favorite flags: %#v", tracks)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
