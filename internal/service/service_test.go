package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shivanand-hulikatti/activities-board/internal/model"
	"github.com/Shivanand-hulikatti/activities-board/internal/repository"
)

func newService() *ActivityService {
	return NewActivityService(repository.NewMemoryRepository(model.Catalog{
		{Name: "Basketball", Activity: model.Activity{MaxParticipants: 15, Participants: []string{"james@mergington.edu"}}},
	}))
}

func TestActivityService_Signup(t *testing.T) {
	tests := []struct {
		name     string
		activity string
		email    string
		wantMsg  string
		wantErr  error
		wantBad  string
	}{
		{
			name:     "success",
			activity: "Basketball",
			email:    "newstudent@mergington.edu",
			wantMsg:  "Signed up newstudent@mergington.edu for Basketball",
		},
		{
			name:     "email is normalized",
			activity: "Basketball",
			email:    "  NewStudent@Mergington.edu ",
			wantMsg:  "Signed up newstudent@mergington.edu for Basketball",
		},
		{name: "empty email", activity: "Basketball", email: "  ", wantBad: "email is required"},
		{name: "malformed email", activity: "Basketball", email: "not-an-email", wantBad: "email is not a valid email address"},
		{name: "unknown activity", activity: "Nonexistent", email: "a@mergington.edu", wantErr: repository.ErrActivityNotFound},
		{name: "duplicate", activity: "Basketball", email: "JAMES@mergington.edu", wantErr: repository.ErrAlreadySignedUp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := newService().Signup(context.Background(), tt.activity, tt.email)
			if tt.wantBad != "" {
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, tt.wantBad, verr.Msg)
				return
			}
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestActivityService_Remove(t *testing.T) {
	s := newService()
	ctx := context.Background()

	msg, err := s.Remove(ctx, "Basketball", "james@mergington.edu")
	require.NoError(t, err)
	assert.Equal(t, "Removed james@mergington.edu from Basketball", msg)

	_, err = s.Remove(ctx, "Basketball", "james@mergington.edu")
	assert.ErrorIs(t, err, repository.ErrParticipantNotFound)

	catalog, err := s.ListActivities(ctx)
	require.NoError(t, err)
	a, _ := catalog.Get("Basketball")
	assert.Empty(t, a.Participants)
}

func TestActivityService_RemoveMixedCaseParticipant(t *testing.T) {
	s := NewActivityService(repository.NewMemoryRepository(model.Catalog{
		{Name: "Chess", Activity: model.Activity{MaxParticipants: 12, Participants: []string{"Alice@School.edu"}}},
	}))
	ctx := context.Background()

	catalog, err := s.ListActivities(ctx)
	require.NoError(t, err)
	chess, _ := catalog.Get("Chess")

	msg, err := s.Remove(ctx, "Chess", " "+chess.Participants[0]+" ")
	require.NoError(t, err)
	assert.Equal(t, "Removed Alice@School.edu from Chess", msg)

	_, err = s.Remove(ctx, "Chess", "  ")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "email is required", verr.Msg)
}

type failingRepo struct {
	repository.ActivityRepository
}

func (failingRepo) Signup(context.Context, string, string) error {
	return errors.New("disk on fire")
}

func TestActivityService_WrapsStorageErrors(t *testing.T) {
	s := NewActivityService(failingRepo{})

	_, err := s.Signup(context.Background(), "Basketball", "a@mergington.edu")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "signup for activity: disk on fire")
	assert.False(t, isDomainError(err))
}
