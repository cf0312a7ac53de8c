package state

import (
	"database/sql"
	"time"

	dbutil "github.com/whitehole-music/whitehole/internal/db"
	"github.com/whitehole-music/whitehole/internal/favorites"
)

// SaveFavorites replaces the saved favorites ledger.
func (m *Manager) SaveFavorites(entries []favorites.Entry) error {
	return dbutil.WithTx(m.db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`DELETE FROM favorites`)
		if err != nil {
			return err
		}

		stmt, err := tx.Prepare(`
			INSERT INTO favorites (position, track_id, title, artist, album_art, preview_url, duration_ms, favorited_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, e := range entries {
			t := e.Track
			_, err = stmt.Exec(i, t.ID, t.Title, t.Artist, t.AlbumArt, t.PreviewURL,
				t.Duration.Milliseconds(), e.FavoritedAt.Unix())
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// GetFavorites returns the saved favorites in display order.
func (m *Manager) GetFavorites() ([]favorites.Entry, error) {
	rows, err := m.db.Query(`
		SELECT track_id, title, artist, album_art, preview_url, duration_ms, favorited_at
		FROM favorites
		ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []favorites.Entry
	for rows.Next() {
		var favoritedAt int64
		t, err := scanTrack(rows.Scan, &favoritedAt)
		if err != nil {
			return nil, err
		}
		entries = append(entries, favorites.Entry{
			Track:       t,
			FavoritedAt: time.Unix(favoritedAt, 0),
		})
	}
	return entries, rows.Err()
}
