package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"strconv"

	"backlog-cli/internal/model"

	_ "modernc.org/sqlite"
)

// SQLiteBackend persists the snapshot in a SQLite database. Writes use a
// replace-all strategy inside one transaction: simple, and a failed write
// rolls back to the previous snapshot.
type SQLiteBackend struct {
	Path string
}

func (b SQLiteBackend) ReadState() (model.State, error) {
	return b.readState(context.Background())
}

func (b SQLiteBackend) WriteState(st model.State) error {
	return b.writeState(context.Background(), st)
}

func (b SQLiteBackend) open(ctx context.Context) (*sql.DB, error) {
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", b.Path)
	if err != nil {
		return nil, err
	}
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
	if err := b.migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func (b SQLiteBackend) migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS epics (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL,
			status TEXT NOT NULL,
			stories_json TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS stories (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL,
			status TEXT NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (b SQLiteBackend) readState(ctx context.Context) (model.State, error) {
	db, err := b.open(ctx)
	if err != nil {
		return model.State{}, ReadError{Err: err}
	}
	defer db.Close()

	st := model.NewState()

	var lastID string
	err = db.QueryRowContext(ctx, `SELECT v FROM meta WHERE k = 'last_item_id'`).Scan(&lastID)
	switch {
	case err == sql.ErrNoRows:
		// Fresh database.
	case err != nil:
		return model.State{}, ReadError{Err: err}
	default:
		n, err := strconv.ParseUint(lastID, 10, 64)
		if err != nil {
			return model.State{}, ReadError{Err: err}
		}
		st.LastItemID = n
	}

	rows, err := db.QueryContext(ctx, `SELECT id, name, description, status, stories_json FROM epics`)
	if err != nil {
		return model.State{}, ReadError{Err: err}
	}
	defer rows.Close()
	for rows.Next() {
		var id uint64
		var e model.Epic
		var storiesJSON string
		if err := rows.Scan(&id, &e.Name, &e.Description, &e.Status, &storiesJSON); err != nil {
			return model.State{}, ReadError{Err: err}
		}
		e.Stories = []uint64{}
		if err := json.Unmarshal([]byte(storiesJSON), &e.Stories); err != nil {
			return model.State{}, ReadError{Err: err}
		}
		st.Epics[id] = e
	}
	if err := rows.Err(); err != nil {
		return model.State{}, ReadError{Err: err}
	}

	srows, err := db.QueryContext(ctx, `SELECT id, name, description, status FROM stories`)
	if err != nil {
		return model.State{}, ReadError{Err: err}
	}
	defer srows.Close()
	for srows.Next() {
		var id uint64
		var s model.Story
		if err := srows.Scan(&id, &s.Name, &s.Description, &s.Status); err != nil {
			return model.State{}, ReadError{Err: err}
		}
		st.Stories[id] = s
	}
	if err := srows.Err(); err != nil {
		return model.State{}, ReadError{Err: err}
	}

	return st, nil
}

func (b SQLiteBackend) writeState(ctx context.Context, st model.State) error {
	db, err := b.open(ctx)
	if err != nil {
		return WriteError{Err: err}
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return WriteError{Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO meta(k, v) VALUES('last_item_id', ?)`,
		strconv.FormatUint(st.LastItemID, 10)); err != nil {
		return WriteError{Err: err}
	}
	for _, t := range []string{"epics", "stories"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+t); err != nil {
			return WriteError{Err: err}
		}
	}
	for id, e := range st.Epics {
		storiesJSON, _ := json.Marshal(e.Stories)
		if _, err := tx.ExecContext(ctx, `INSERT INTO epics(id, name, description, status, stories_json) VALUES(?, ?, ?, ?, ?)`,
			id, e.Name, e.Description, string(e.Status), string(storiesJSON)); err != nil {
			return WriteError{Err: err}
		}
	}
	for id, s := range st.Stories {
		if _, err := tx.ExecContext(ctx, `INSERT INTO stories(id, name, description, status) VALUES(?, ?, ?, ?)`,
			id, s.Name, s.Description, string(s.Status)); err != nil {
			return WriteError{Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return WriteError{Err: err}
	}
	return nil
}
