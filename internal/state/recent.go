package state

import (
	"database/sql"
	"time"

	dbutil "github.com/whitehole-music/whitehole/internal/db"
	"github.com/whitehole-music/whitehole/internal/recent"
)

// SaveRecent replaces the saved play history.
func (m *Manager) SaveRecent(entries []recent.Entry) error {
	return dbutil.WithTx(m.db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`DELETE FROM recent_tracks`)
		if err != nil {
			return err
		}

		stmt, err := tx.Prepare(`
			INSERT INTO recent_tracks (position, track_id, title, artist, album_art, preview_url, duration_ms, played_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, e := range entries {
			t := e.Track
			_, err = stmt.Exec(i, t.ID, t.Title, t.Artist, t.AlbumArt, t.PreviewURL,
				t.Duration.Milliseconds(), e.PlayedAt.Unix())
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// GetRecent returns the saved play history, most recent first.
func (m *Manager) GetRecent() ([]recent.Entry, error) {
	rows, err := m.db.Query(`
		SELECT track_id, title, artist, album_art, preview_url, duration_ms, played_at
		FROM recent_tracks
		ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []recent.Entry
	for rows.Next() {
		var playedAt int64
		t, err := scanTrack(rows.Scan, &playedAt)
		if err != nil {
			return nil, err
		}
		entries = append(entries, recent.Entry{
			Track:    t,
			PlayedAt: time.Unix(playedAt, 0),
		})
	}
	return entries, rows.Err()
}
