// Package repository stores activities and their rosters.
//
// Three backends implement ActivityRepository: an in-memory one for
// development and tests, PostgreSQL through pgx, and SQLite.
package repository

import (
	"context"
	"errors"

	"github.com/Shivanand-hulikatti/activities-board/internal/model"
)

// ErrActivityNotFound is returned when the named activity does not exist.
var ErrActivityNotFound = errors.New("activity not found")

// ErrAlreadySignedUp is returned when the same email signs up twice.
var ErrAlreadySignedUp = errors.New("student is already signed up")

// ErrActivityFull is returned when an activity has no spots left.
var ErrActivityFull = errors.New("activity is full")

// ErrParticipantNotFound is returned when removing an email that is not on the roster.
var ErrParticipantNotFound = errors.New("participant not found in this activity")

// ActivityRepository is the storage contract of the activities API.
// Participant emails are matched case-insensitively; the stored spelling is
// kept as it was signed up.
type ActivityRepository interface {
	// List returns every activity in catalog order with rosters in signup order.
	List(ctx context.Context) (model.Catalog, error)
	// Signup appends email to the roster of the named activity.
	Signup(ctx context.Context, activity, email string) error
	// Remove deletes email from the roster of the named activity.
	Remove(ctx context.Context, activity, email string) error
	// Close releases the underlying resources.
	Close() error
}
