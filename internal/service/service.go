// Package service implements validation and orchestration between the HTTP
// handlers and the repository layer.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Shivanand-hulikatti/activities-board/internal/model"
	"github.com/Shivanand-hulikatti/activities-board/internal/repository"
)

// ValidationError reports input the API refuses before touching storage.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// ActivityService orchestrates activity signups and removals.
type ActivityService struct {
	repo repository.ActivityRepository
}

// NewActivityService constructs an ActivityService.
func NewActivityService(repo repository.ActivityRepository) *ActivityService {
	return &ActivityService{repo: repo}
}

// ListActivities returns the whole catalog.
func (s *ActivityService) ListActivities(ctx context.Context) (model.Catalog, error) {
	catalog, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return catalog, nil
}

// Signup validates the email and registers it for the activity. It returns
// the confirmation message shown to the user.
func (s *ActivityService) Signup(ctx context.Context, activity, email string) (string, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return "", err
	}

	if err := s.repo.Signup(ctx, activity, email); err != nil {
		// Domain errors pass through so handlers can pick the status code.
		if isDomainError(err) {
			return "", err
		}
		return "", fmt.Errorf("signup for activity: %w", err)
	}
	return fmt.Sprintf("Signed up %s for %s", email, activity), nil
}

// Remove takes the email off the activity's roster. The email is only
// trimmed: rosters may hold spellings that signup would have rewritten, and
// the repository matches them case-insensitively.
func (s *ActivityService) Remove(ctx context.Context, activity, email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", &ValidationError{Msg: "email is required"}
	}

	if err := s.repo.Remove(ctx, activity, email); err != nil {
		if isDomainError(err) {
			return "", err
		}
		return "", fmt.Errorf("remove participant: %w", err)
	}
	return fmt.Sprintf("Removed %s from %s", email, activity), nil
}

func isDomainError(err error) bool {
	return errors.Is(err, repository.ErrActivityNotFound) ||
		errors.Is(err, repository.ErrAlreadySignedUp) ||
		errors.Is(err, repository.ErrActivityFull) ||
		errors.Is(err, repository.ErrParticipantNotFound)
}

func normalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return "", &ValidationError{Msg: "email is required"}
	}
	if !isValidEmail(email) {
		return "", &ValidationError{Msg: "email is not a valid email address"}
	}
	return email, nil
}

// isValidEmail does a basic structural check.
func isValidEmail(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	return len(parts[0]) > 0 && strings.Contains(parts[1], ".")
}
