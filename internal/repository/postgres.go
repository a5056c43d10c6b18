package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Shivanand-hulikatti/activities-board/internal/model"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS activities (
		name             TEXT PRIMARY KEY,
		description      TEXT NOT NULL,
		schedule         TEXT NOT NULL,
		max_participants INTEGER NOT NULL CHECK (max_participants >= 0),
		position         INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS signups (
		seq           BIGSERIAL PRIMARY KEY,
		id            UUID NOT NULL UNIQUE,
		activity_name TEXT NOT NULL REFERENCES activities(name) ON DELETE CASCADE,
		email         TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS signups_activity_email_key
		ON signups (activity_name, lower(email))`,
}

// PostgresRepository persists activities in PostgreSQL. It uses pgx
// directly (no ORM).
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates the schema if needed and seeds an empty
// database with seed.
func NewPostgresRepository(ctx context.Context, db *pgxpool.Pool, seed model.Catalog) (*PostgresRepository, error) {
	for _, stmt := range postgresSchema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return nil, fmt.Errorf("create schema: %w", err)
		}
	}
	r := &PostgresRepository{db: db}
	if err := r.seed(ctx, seed); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *PostgresRepository) seed(ctx context.Context, seed model.Catalog) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var n int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM activities`).Scan(&n); err != nil {
		return fmt.Errorf("count activities: %w", err)
	}
	if n > 0 {
		return nil
	}

	now := time.Now().UTC()
	for i, e := range seed {
		_, err := tx.Exec(ctx,
			`INSERT INTO activities (name, description, schedule, max_participants, position)
			 VALUES ($1, $2, $3, $4, $5)`,
			e.Name, e.Activity.Description, e.Activity.Schedule, e.Activity.MaxParticipants, i,
		)
		if err != nil {
			return fmt.Errorf("seed activity %q: %w", e.Name, err)
		}
		for _, email := range e.Activity.Participants {
			_, err := tx.Exec(ctx,
				`INSERT INTO signups (id, activity_name, email, created_at) VALUES ($1, $2, $3, $4)`,
				uuid.NewString(), e.Name, email, now,
			)
			if err != nil {
				return fmt.Errorf("seed participant %q: %w", email, err)
			}
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	return nil
}

// List returns all activities in seed order with rosters in signup order.
func (r *PostgresRepository) List(ctx context.Context) (model.Catalog, error) {
	rows, err := r.db.Query(ctx,
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

	prows, err := r.db.Query(ctx, `SELECT activity_name, email FROM signups ORDER BY seq`)
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

// Signup registers email inside a transaction that locks the activity row
// with SELECT … FOR UPDATE, so concurrent signups for the same activity are
// serialised and the capacity check cannot be raced past.
func (r *PostgresRepository) Signup(ctx context.Context, activity, email string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var capacity int
	err = tx.QueryRow(ctx,
		`SELECT max_participants FROM activities WHERE name = $1 FOR UPDATE`,
		activity,
	).Scan(&capacity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrActivityNotFound
		}
		return fmt.Errorf("lock activity row: %w", err)
	}

	var dup, count int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FILTER (WHERE lower(email) = lower($2)), COUNT(*)
		 FROM signups WHERE activity_name = $1`,
		activity, email,
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

	_, err = tx.Exec(ctx,
		`INSERT INTO signups (id, activity_name, email, created_at) VALUES ($1, $2, $3, $4)`,
		uuid.NewString(), activity, email, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert signup: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Remove deletes a signup, telling a missing activity apart from a missing participant.
func (r *PostgresRepository) Remove(ctx context.Context, activity, email string) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM signups WHERE activity_name = $1 AND lower(email) = lower($2)`,
		activity, email,
	)
	if err != nil {
		return fmt.Errorf("delete signup: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM activities WHERE name = $1)`, activity,
	).Scan(&exists); err != nil {
		return fmt.Errorf("check activity: %w", err)
	}
	if !exists {
		return ErrActivityNotFound
	}
	return ErrParticipantNotFound
}

// Close closes the pool.
func (r *PostgresRepository) Close() error {
	r.db.Close()
	return nil
}
