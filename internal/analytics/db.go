package analytics

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// DB is the optional SQLite analytics mirror. Unlike the CSV dataset it
// declares its nullable columns up front and migrates explicitly when the
// schema version moves.
type DB struct {
	pool *sql.DB
}

// Open opens (or creates) the mirror database at path and runs migrations.
func Open(path string) (*DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)

	pool, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// sqlite wants a single writer
	pool.SetMaxOpenConns(1)
	pool.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := pool.PingContext(ctx); err != nil {
		_ = pool.Close()
		return nil, err
	}

	db := &DB{pool: pool}
	if err := db.migrate(); err != nil {
		_ = pool.Close()
		return nil, err
	}
	return db, nil
}

// Close releases the underlying pool.
func (d *DB) Close() error {
	if d == nil || d.pool == nil {
		return nil
	}
	return d.pool.Close()
}

func (d *DB) migrate() error {
	tx, err := d.pool.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var version int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&version); err != nil {
		return err
	}
	if version >= 1 {
		return tx.Commit()
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS vacancies (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  submission_date TEXT NOT NULL,
  url TEXT NOT NULL,
  language TEXT NOT NULL,
  title TEXT NOT NULL,
  company TEXT NOT NULL,
  recruiter TEXT,
  email TEXT,
  phone TEXT,
  summary TEXT,
  responsibilities TEXT,
  requirements TEXT,
  salary TEXT,
  schedule TEXT,
  modality TEXT,
  location TEXT,
  benefits TEXT,
  created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
);`); err != nil {
		return err
	}
	if _, err := tx.Exec(`CREATE INDEX IF NOT EXISTS idx_vacancies_company ON vacancies(company);`); err != nil {
		return err
	}
	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}
	return tx.Commit()
}
