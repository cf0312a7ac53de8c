package state

import (
	"database/sql"
	"errors"
	"time"

	dbutil "github.com/whitehole-music/whitehole/internal/db"
	"github.com/whitehole-music/whitehole/internal/track"
)

// QueueState represents the saved queue state.
type QueueState struct {
	CurrentIndex int
	RepeatMode   int
	Shuffle      bool
	Tracks       []track.Record
}

// GetQueue returns the saved queue, or an empty one when nothing has
// been saved yet.
func (m *Manager) GetQueue() (*QueueState, error) {
	var currentIndex, repeatMode int
	var shuffle bool
	row := m.db.QueryRow(`SELECT current_index, repeat_mode, shuffle FROM session_state WHERE id = 1`)
	err := row.Scan(&currentIndex, &repeatMode, &shuffle)
	if errors.Is(err, sql.ErrNoRows) {
		return &QueueState{CurrentIndex: -1}, nil
	}
	if err != nil {
		return nil, err
	}

	tracks, err := scanTracks(m.db, `
		SELECT track_id, title, artist, album_art, preview_url, duration_ms
		FROM queue_tracks
		ORDER BY position
	`)
	if err != nil {
		return nil, err
	}

	return &QueueState{
		CurrentIndex: currentIndex,
		RepeatMode:   repeatMode,
		Shuffle:      shuffle,
		Tracks:       tracks,
	}, nil
}

// SaveQueue replaces the saved queue.
func (m *Manager) SaveQueue(state QueueState) error {
	return dbutil.WithTx(m.db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`DELETE FROM queue_tracks`)
		if err != nil {
			return err
		}

		_, err = tx.Exec(`
			INSERT INTO session_state (id, current_index, repeat_mode, shuffle)
			VALUES (1, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				current_index = excluded.current_index,
				repeat_mode = excluded.repeat_mode,
				shuffle = excluded.shuffle
		`, state.CurrentIndex, state.RepeatMode, state.Shuffle)
		if err != nil {
			return err
		}

		stmt, err := tx.Prepare(`
			INSERT INTO queue_tracks (position, track_id, title, artist, album_art, preview_url, duration_ms)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, t := range state.Tracks {
			_, err = stmt.Exec(i, t.ID, t.Title, t.Artist, t.AlbumArt, t.PreviewURL, t.Duration.Milliseconds())
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func scanTracks(db *sql.DB, query string) ([]track.Record, error) {
	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tracks []track.Record
	for rows.Next() {
		t, err := scanTrack(rows.Scan)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, t)
	}
	return tracks, rows.Err()
}

// scanTrack reads the common track columns from a row scanner. The
// caller's query must select track_id, title, artist, album_art,
// preview_url, duration_ms first and in that order.
func scanTrack(scan func(dest ...any) error, extra ...any) (track.Record, error) {
	var t track.Record
	var artist, albumArt, previewURL sql.NullString
	var durationMs sql.NullInt64

	dest := append([]any{&t.ID, &t.Title, &artist, &albumArt, &previewURL, &durationMs}, extra...)
	if err := scan(dest...); err != nil {
		return track.Record{}, err
	}

	t.Artist = dbutil.NullStringValue(artist)
	t.AlbumArt = dbutil.NullStringValue(albumArt)
	t.PreviewURL = dbutil.NullStringValue(previewURL)
	t.Duration = time.Duration(dbutil.NullInt64Value(durationMs)) * time.Millisecond
	return t, nil
}
