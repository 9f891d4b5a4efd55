package store

import (
	"database/sql"
	"time"
)

// ModeChange records a switch of tracking mode.
type ModeChange struct {
	ID        int64
	SessionID string
	Mode      string
	CreatedAt time.Time
}

// ModeChangeRepository records and queries mode switches.
type ModeChangeRepository struct {
	db *sql.DB
}

// ModeChanges returns the mode change repository for this store.
func (s *Store) ModeChanges() *ModeChangeRepository {
	return &ModeChangeRepository{db: s.db}
}

// Record inserts a mode change and fills in its ID and timestamp.
func (r *ModeChangeRepository) Record(m *ModeChange) error {
	m.CreatedAt = time.Now().UTC()

	result, err := r.db.Exec(
		`INSERT INTO mode_changes (session_id, mode, created_at) VALUES (?, ?, ?)`,
		m.SessionID, m.Mode, m.CreatedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = id

	return nil
}

// ListBySession returns a session's mode changes in order.
func (r *ModeChangeRepository) ListBySession(sessionID string) ([]*ModeChange, error) {
	rows, err := r.db.Query(
		`SELECT id, session_id, mode, created_at
		 FROM mode_changes WHERE session_id = ? ORDER BY id`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var changes []*ModeChange
	for rows.Next() {
		m := &ModeChange{}
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Mode, &m.CreatedAt); err != nil {
			return nil, err
		}
		changes = append(changes, m)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return changes, nil
}
