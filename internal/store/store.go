// Package store persists the scraped course catalogue in SQLite so a
// restarted server can serve queries before the first scrape of the day
// completes. The ranking engine itself never touches the store; it reads
// in-memory snapshots only.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"github.com/antoinebou12/horaire-ets/internal/course"
	herrors "github.com/antoinebou12/horaire-ets/internal/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS courses (
	code        TEXT PRIMARY KEY,
	title       TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	credits     INTEGER,
	url         TEXT NOT NULL DEFAULT '',
	updated_at  TEXT NOT NULL
);
`

// lockTimeout bounds how long SaveAll waits for the cross-process write
// lock before giving up.
const lockTimeout = 10 * time.Second

// Store is a SQLite-backed catalogue cache. Writes take a file lock so
// concurrent scraper processes cannot interleave replaces.
type Store struct {
	db   *sql.DB
	lock *flock.Flock
	path string
}

// Open opens (creating if needed) the catalogue database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, herrors.New(herrors.ErrCodeStoreFailed,
			fmt.Sprintf("create database directory: %v", err), err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, herrors.New(herrors.ErrCodeStoreFailed,
			fmt.Sprintf("open database: %v", err), err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, herrors.New(herrors.ErrCodeStoreFailed,
			fmt.Sprintf("apply schema: %v", err), err)
	}

	return &Store{
		db:   db,
		lock: flock.New(path + ".lock"),
		path: path,
	}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveAll transactionally replaces the catalogue with the given courses.
func (s *Store) SaveAll(ctx context.Context, courses []course.Course) error {
	lockCtx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()

	locked, err := s.lock.TryLockContext(lockCtx, 250*time.Millisecond)
	if err != nil || !locked {
		return herrors.New(herrors.ErrCodeStoreLocked,
			fmt.Sprintf("catalogue database is locked: %s", s.path), err)
	}
	defer func() { _ = s.lock.Unlock() }()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return herrors.Wrap(herrors.ErrCodeStoreFailed, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM courses`); err != nil {
		return herrors.Wrap(herrors.ErrCodeStoreFailed, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO courses (code, title, description, credits, url, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return herrors.Wrap(herrors.ErrCodeStoreFailed, err)
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, c := range course.Dedupe(courses) {
		var credits any
		if c.Credits != nil {
			credits = *c.Credits
		}
		if _, err := stmt.ExecContext(ctx, c.Code, c.Title, c.Description, credits, c.URL, now); err != nil {
			return herrors.Wrap(herrors.ErrCodeStoreFailed, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return herrors.Wrap(herrors.ErrCodeStoreFailed, err)
	}
	return nil
}

// LoadAll returns every cached course ordered by code.
func (s *Store) LoadAll(ctx context.Context) ([]course.Course, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT code, title, description, credits, url
		FROM courses ORDER BY code`)
	if err != nil {
		return nil, herrors.Wrap(herrors.ErrCodeStoreFailed, err)
	}
	defer func() { _ = rows.Close() }()

	var courses []course.Course
	for rows.Next() {
		var c course.Course
		var credits sql.NullInt64
		if err := rows.Scan(&c.Code, &c.Title, &c.Description, &credits, &c.URL); err != nil {
			return nil, herrors.Wrap(herrors.ErrCodeStoreFailed, err)
		}
		if credits.Valid {
			v := int(credits.Int64)
			c.Credits = &v
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, herrors.Wrap(herrors.ErrCodeStoreFailed, err)
	}
	return courses, nil
}

// Count returns the number of cached courses.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM courses`).Scan(&n); err != nil {
		return 0, herrors.Wrap(herrors.ErrCodeStoreFailed, err)
	}
	return n, nil
}
