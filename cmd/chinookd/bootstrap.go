package main

import (
	"context"
	"database/sql"
	"fmt"
)

type seedTrack struct {
	ID   int64
	Name string
}

type seedAlbum struct {
	ID     int64
	Title  string
	Tracks []seedTrack
}

type seedArtist struct {
	ID     int32
	Name   string
	Albums []seedAlbum
}

// bootstrapDemoData seeds a small catalog the first time the service starts
// against an empty database. Existing data is left untouched.
func bootstrapDemoData(ctx context.Context, db *sql.DB) error {
	var count int
	if err := db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM artists
	`).Scan(&count); err != nil {
		return fmt.Errorf("count artists: %w", err)
	}
	if count > 0 {
		return nil
	}

	artists := []seedArtist{
		{
			ID: 1, Name: "AC/DC",
			Albums: []seedAlbum{
				{ID: 1, Title: "For Those About To Rock We Salute You", Tracks: []seedTrack{
					{ID: 1, Name: "For Those About To Rock (We Salute You)"},
					{ID: 2, Name: "Put The Finger On You"},
					{ID: 3, Name: "Let's Get It Up"},
				}},
				{ID: 4, Title: "Let There Be Rock", Tracks: []seedTrack{
					{ID: 15, Name: "Go Down"},
					{ID: 16, Name: "Dog Eat Dog"},
					{ID: 17, Name: "Let There Be Rock"},
				}},
			},
		},
		{
			ID: 2, Name: "Accept",
			Albums: []seedAlbum{
				{ID: 2, Title: "Balls to the Wall", Tracks: []seedTrack{
					{ID: 6, Name: "Balls to the Wall"},
				}},
				{ID: 3, Title: "Restless and Wild", Tracks: []seedTrack{
					{ID: 7, Name: "Fast As a Shark"},
					{ID: 8, Name: "Restless and Wild"},
					{ID: 9, Name: "Princess of the Dawn"},
				}},
			},
		},
		{
			ID: 3, Name: "Aerosmith",
			Albums: []seedAlbum{
				{ID: 5, Title: "Big Ones", Tracks: []seedTrack{
					{ID: 23, Name: "Walk On Water"},
					{ID: 24, Name: "Love In An Elevator"},
					{ID: 25, Name: "Rag Doll"},
				}},
			},
		},
		{
			ID: 4, Name: "Alanis Morissette",
			Albums: []seedAlbum{
				{ID: 6, Title: "Jagged Little Pill", Tracks: []seedTrack{
					{ID: 38, Name: "All I Really Want"},
					{ID: 39, Name: "You Oughta Know"},
					{ID: 40, Name: "Perfect"},
				}},
			},
		},
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	for _, artist := range artists {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO artists (id, name)
			VALUES ($1, $2)
		`, artist.ID, artist.Name); err != nil {
			return fmt.Errorf("insert demo artist %q: %w", artist.Name, err)
		}
		for _, album := range artist.Albums {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO albums (id, title, artist_id)
				VALUES ($1, $2, $3)
			`, album.ID, album.Title, artist.ID); err != nil {
				return fmt.Errorf("insert demo album %q: %w", album.Title, err)
			}
			for _, track := range album.Tracks {
				if _, err := tx.ExecContext(ctx, `
					INSERT INTO tracks (id, name, album_id)
					VALUES ($1, $2, $3)
				`, track.ID, track.Name, album.ID); err != nil {
					return fmt.Errorf("insert demo track %q: %w", track.Name, err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	tx = nil

	return nil
}
