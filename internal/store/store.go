package store

import (
	"database/sql"
	"errors"
	"sync"

	"github.com/jackc/pgx/v5/pgconn"
)

// FavoritesPlaylistName is the reserved name of the per-user favorites
// playlist. Identification goes through IsFavoritesName; lookups of
// caller-supplied playlist names stay case-insensitive.
const FavoritesPlaylistName = "Favorites"

// IsFavoritesName reports whether name identifies the reserved favorites
// playlist. Exact, case-sensitive match.
func IsFavoritesName(name string) bool {
	return name == FavoritesPlaylistName
}

// ErrArtistNotFound signals a lookup for an artist id that does not exist.
var ErrArtistNotFound = errors.New("artist not found")

// Store provides persistence backed by Postgres.
type Store struct {
	db *sql.DB

	// userLocks serializes playlist creation per user id so two concurrent
	// callers cannot both create the same Favorites playlist.
	userLocks sync.Map
}

// New sets up a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// lockUser takes the per-user creation lock and returns its release func.
func (s *Store) lockUser(userID string) func() {
	v, _ := s.userLocks.LoadOrStore(userID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
