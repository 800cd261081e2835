package adapters

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"voyage-tracker/internal/features/underway/domain"
)

// sqliteTimeLayout stores timestamps as fixed-width UTC strings so that
// lexicographic comparison in SQL matches chronological order.
const sqliteTimeLayout = "2006-01-02T15:04:05Z"

// SQLiteStore implements the ObservationStore port on a local sqlite file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the snapshot database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot database: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	return &SQLiteStore{db: db}, nil
}

// InitSchema creates the observations table and its indexes.
func (s *SQLiteStore) InitSchema(ctx context.Context) error {
	schema := `
CREATE TABLE IF NOT EXISTS observations (
	gml_id TEXT NOT NULL,
	datetime TEXT NOT NULL,
	latitude REAL NOT NULL,
	longitude REAL NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_observations_identity
	ON observations (datetime, latitude, longitude);
CREATE INDEX IF NOT EXISTS idx_observations_datetime
	ON observations (datetime);
`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to init snapshot schema: %w", err)
	}
	return nil
}

// Merge inserts observations inside a single transaction, skipping rows
// whose (datetime, latitude, longitude) identity already exists. Any error
// rolls the transaction back, leaving the previous snapshot intact.
func (s *SQLiteStore) Merge(ctx context.Context, observations []domain.Observation) (int64, error) {
	if len(observations) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin merge: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(ctx, `
INSERT OR IGNORE INTO observations (gml_id, datetime, latitude, longitude)
VALUES (?, ?, ?, ?)
`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare merge insert: %w", err)
	}
	defer stmt.Close()

	var inserted int64
	for _, obs := range observations {
		if err := obs.Validate(); err != nil {
			return 0, fmt.Errorf("refusing to merge: %w", err)
		}
		res, err := stmt.ExecContext(ctx, obs.GMLID, obs.Time.UTC().Format(sqliteTimeLayout), obs.Lat, obs.Lon)
		if err != nil {
			return 0, fmt.Errorf("failed to insert observation %s: %w", obs.GMLID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, err
		}
		inserted += n
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit merge: %w", err)
	}

	return inserted, nil
}

// MaxTimestamp returns the newest observation time, or false when the
// snapshot is empty.
func (s *SQLiteStore) MaxTimestamp(ctx context.Context) (time.Time, bool, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT MAX(datetime)
FROM observations
`)
	var raw sql.NullString
	if err := row.Scan(&raw); err != nil {
		return time.Time{}, false, fmt.Errorf("failed to query max timestamp: %w", err)
	}
	if !raw.Valid {
		return time.Time{}, false, nil
	}

	ts, err := time.Parse(sqliteTimeLayout, raw.String)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("corrupt timestamp %q in snapshot: %w", raw.String, err)
	}
	return ts, true, nil
}

// Count returns the number of stored observations.
func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT COUNT(*)
FROM observations
`)
	var count int64
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count observations: %w", err)
	}
	return count, nil
}

// LoadSince returns observations at or after cutoff ordered by time.
func (s *SQLiteStore) LoadSince(ctx context.Context, cutoff time.Time) ([]domain.Observation, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT gml_id, datetime, latitude, longitude
FROM observations
WHERE datetime >= ?
ORDER BY datetime
`, cutoff.UTC().Format(sqliteTimeLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to load observations: %w", err)
	}
	defer rows.Close()

	var observations []domain.Observation
	for rows.Next() {
		var obs domain.Observation
		var raw string
		if err := rows.Scan(&obs.GMLID, &raw, &obs.Lat, &obs.Lon); err != nil {
			return nil, fmt.Errorf("failed to scan observation: %w", err)
		}
		obs.Time, err = time.Parse(sqliteTimeLayout, raw)
		if err != nil {
			return nil, fmt.Errorf("corrupt timestamp %q in snapshot: %w", raw, err)
		}
		observations = append(observations, obs)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return observations, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
