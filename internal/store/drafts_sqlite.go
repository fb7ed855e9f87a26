package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"time"

	"cbx-editor/internal/model"

	_ "modernc.org/sqlite"
)

// sqliteDraftsBackend stores the collection in a single-table SQLite file.
// Saves replace the whole table in one transaction so readers never see a
// partial collection.
type sqliteDraftsBackend struct {
	store Store
}

func (b sqliteDraftsBackend) path() string {
	return filepath.Join(b.store.Dir, draftsSQLiteFileName)
}

func (b sqliteDraftsBackend) open(ctx context.Context) (*sql.DB, error) {
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", b.path())
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout avoids
	// "database is locked" flakiness when CLI and TUI overlap.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS drafts (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		content TEXT NOT NULL,
		ts INTEGER NOT NULL
	);`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func (b sqliteDraftsBackend) load() ([]model.Draft, error) {
	ctx := context.Background()
	db, err := b.open(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	rows, err := db.QueryContext(ctx, `SELECT id, name, content, ts FROM drafts ORDER BY ts DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drafts []model.Draft
	for rows.Next() {
		var d model.Draft
		var ts int64
		if err := rows.Scan(&d.ID, &d.Name, &d.Content, &ts); err != nil {
			return nil, err
		}
		d.Timestamp = time.UnixMilli(ts)
		drafts = append(drafts, d)
	}
	return drafts, rows.Err()
}

func (b sqliteDraftsBackend) save(drafts []model.Draft) error {
	ctx := context.Background()
	db, err := b.open(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM drafts`); err != nil {
		_ = tx.Rollback()
		return err
	}
	for _, d := range drafts {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO drafts (id, name, content, ts) VALUES (?, ?, ?, ?)`,
			d.ID, d.Name, d.Content, d.Timestamp.UnixMilli(),
		); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}
