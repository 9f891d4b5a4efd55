package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Sessions table - one row per run of the tracking loop
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			started_at DATETIME NOT NULL,
			ended_at DATETIME,
			initial_mode TEXT NOT NULL CHECK(initial_mode IN ('hand', 'eye', 'both')),
			final_mode TEXT CHECK(final_mode IN ('hand', 'eye', 'both'))
		)`,

		// Events table - discrete pointer actions (clicks and scrolls)
		`CREATE TABLE IF NOT EXISTS events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			kind TEXT NOT NULL,
			source TEXT NOT NULL CHECK(source IN ('hand', 'eye')),
			x INTEGER NOT NULL DEFAULT 0,
			y INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL
		)`,

		// Mode changes table - tracking mode switches within a session
		`CREATE TABLE IF NOT EXISTS mode_changes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			mode TEXT NOT NULL CHECK(mode IN ('hand', 'eye', 'both')),
			created_at DATETIME NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_events_session_id ON events(session_id)`,
		`CREATE INDEX IF NOT EXISTS idx_mode_changes_session_id ON mode_changes(session_id)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
