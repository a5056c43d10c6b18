package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/Shivanand-hulikatti/activities-board/internal/model"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS activities (
		name             TEXT PRIMARY KEY,
		description      TEXT NOT NULL,
		schedule         TEXT NOT NULL,
		max_participants INTEGER NOT NULL CHECK (max_participants >= 0),
		position         INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS signups (
		seq           INTEGER PRIMARY KEY AUTOINCREMENT,
		id            TEXT NOT NULL UNIQUE,
		activity_name TEXT NOT NULL REFERENCES activities(name) ON DELETE CASCADE,
		email         TEXT NOT NULL,
		created_at    TIMESTAMP NOT NULL,
		UNIQUE (activity_name, email COLLATE NOCASE)
	)`,
}

// SQLiteRepository persists activities in a SQLite file.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens (or creates) the database at path and seeds it
// when empty. ":memory:" gives a private in-memory database.
func NewSQLiteRepository(ctx context.Context, path string, seed model.Catalog) (*SQLiteRepository, error) {
	// Immediate transactions take the write lock up front, which is what
	// makes the signup capacity check safe.
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_txlock=immediate&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	for _, stmt := range sqliteSchema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("create schema: %w", err)
		}
	}

	r := &SQLiteRepository{db: db}
	if err := r.seed(ctx, seed); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

func (r *SQLiteRepository) seed(ctx context.Context, seed model.Catalog) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var n int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM activities`).Scan(&n); err != nil {
		return fmt.Errorf("count activities: %w", err)
	}
	if n > 0 {
		return nil
	}

	now := time.Now().UTC()
	for i, e := range seed {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO activities (name, description, schedule, max_participants, position)
			 VALUES (?, ?, ?, ?, ?)`,
			e.Name, e.Activity.Description, e.Activity.Schedule, e.Activity.MaxParticipants, i,
		)
		if err != nil {
			return fmt.Errorf("seed activity %q: %w", e.Name, err)
		}
		for _, email := range e.Activity.Participants {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO signups (id, activity_name, email, created_at) VALUES (?, ?, ?, ?)`,
				uuid.NewString(), e.Name, email, now,
			)
			if err != nil {
				return fmt.Errorf("seed participant %q: %w", email, err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	return nil
}

// List returns all activities in seed order with rosters in signup order.
func (r *SQLiteRepository) List(ctx context.Context) (model.Catalog, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name, description, schedule, max_participants
		 FROM activities
		 ORDER BY position, name`,
	)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()

	catalog := model.Catalog{}
	index := map[string]int{}
	for rows.Next() {
		var e model.Entry
		if err := rows.Scan(&e.Name, &e.Activity.Description, &e.Activity.Schedule, &e.Activity.MaxParticipants); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		e.Activity.Participants = []string{}
		index[e.Name] = len(catalog)
		catalog = append(catalog, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	rows.Close()

	prows, err := r.db.QueryContext(ctx, `SELECT activity_name, email FROM signups ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list signups: %w", err)
	}
	defer prows.Close()

	for prows.Next() {
		var name, email string
		if err := prows.Scan(&name, &email); err != nil {
			return nil, fmt.Errorf("scan signup: %w", err)
		}
		if i, ok := index[name]; ok {
			catalog[i].Activity.Participants = append(catalog[i].Activity.Participants, email)
		}
	}
	return catalog, prows.Err()
}

// Signup registers email for activity.
func (r *SQLiteRepository) Signup(ctx context.Context, activity, email string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var capacity int
	err = tx.QueryRowContext(ctx,
		`SELECT max_participants FROM activities WHERE name = ?`, activity,
	).Scan(&capacity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrActivityNotFound
		}
		return fmt.Errorf("get activity: %w", err)
	}

	var dup, count int
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(email = ? COLLATE NOCASE), 0), COUNT(*) FROM signups WHERE activity_name = ?`,
		email, activity,
	).Scan(&dup, &count)
	if err != nil {
		return fmt.Errorf("count signups: %w", err)
	}
	if dup > 0 {
		return ErrAlreadySignedUp
	}
	if count >= capacity {
		return ErrActivityFull
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO signups (id, activity_name, email, created_at) VALUES (?, ?, ?, ?)`,
		uuid.NewString(), activity, email, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert signup: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Remove deletes a signup, telling a missing activity apart from a missing participant.
func (r *SQLiteRepository) Remove(ctx context.Context, activity, email string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM signups WHERE activity_name = ? AND email = ? COLLATE NOCASE`, activity, email,
	)
	if err != nil {
		return fmt.Errorf("delete signup: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		return nil
	}

	var exists bool
	if err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM activities WHERE name = ?)`, activity,
	).Scan(&exists); err != nil {
		return fmt.Errorf("check activity: %w", err)
	}
	if !exists {
		return ErrActivityNotFound
	}
	return ErrParticipantNotFound
}

// Close closes the database.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
