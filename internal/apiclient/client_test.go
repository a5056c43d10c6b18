package apiclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListActivities(t *testing.T) {
	tests := []struct {
		name           string
		serverResponse string
		status         int
		wantErr        string
		wantDetail     string
		wantTransport  bool
		wantNames      []string
	}{
		{
			name: "success",
			serverResponse: `{
				"Chess Club": {"description": "Chess", "schedule": "Fri", "max_participants": 12, "participants": ["michael@mergington.edu"]},
				"Art Club": {"description": "Art", "schedule": "Wed", "max_participants": 16, "participants": []}
			}`,
			status:    http.StatusOK,
			wantNames: []string{"Chess Club", "Art Club"},
		},
		{
			name:           "empty catalog",
			serverResponse: `{}`,
			status:         http.StatusOK,
			wantNames:      []string{},
		},
		{
			name:           "non-JSON body",
			serverResponse: "<html>oops</html>",
			status:         http.StatusOK,
			wantErr:        "decoding response",
			wantTransport:  true,
		},
		{
			name:           "http error",
			serverResponse: "internal server error",
			status:         http.StatusInternalServerError,
			wantErr:        "unexpected status code: 500",
		},
		{
			name:           "http error with detail",
			serverResponse: `{"detail": "database unavailable"}`,
			status:         http.StatusServiceUnavailable,
			wantErr:        "database unavailable",
			wantDetail:     "database unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/activities", r.URL.Path)
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.serverResponse))
			}))
			defer ts.Close()

			catalog, err := New(ts.URL).ListActivities(context.Background())

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Equal(t, tt.wantDetail, DetailOf(err))
				assert.Equal(t, tt.wantTransport, IsTransport(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantNames, catalog.Names())
		})
	}
}

func TestListActivities_TransportFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	_, err := New(ts.URL).ListActivities(context.Background())
	require.Error(t, err)
	assert.True(t, IsTransport(err))
	assert.Empty(t, DetailOf(err))
}

func TestSignup(t *testing.T) {
	tests := []struct {
		name           string
		serverResponse string
		status         int
		wantMessage    string
		wantDetail     string
	}{
		{
			name:           "success",
			serverResponse: `{"message": "Signed up new@mergington.edu for Art Club"}`,
			status:         http.StatusOK,
			wantMessage:    "Signed up new@mergington.edu for Art Club",
		},
		{
			name:           "already signed up",
			serverResponse: `{"detail": "Student is already signed up"}`,
			status:         http.StatusBadRequest,
			wantDetail:     "Student is already signed up",
		},
		{
			name:           "failure without detail",
			serverResponse: `{}`,
			status:         http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/activities/Art%20Club/signup", r.URL.EscapedPath())
				assert.Equal(t, "new+tag@mergington.edu", r.URL.Query().Get("email"))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.serverResponse))
			}))
			defer ts.Close()

			msg, err := New(ts.URL).Signup(context.Background(), "Art Club", "new+tag@mergington.edu")

			if tt.status != http.StatusOK {
				require.Error(t, err)
				assert.False(t, IsTransport(err))
				assert.Equal(t, tt.wantDetail, DetailOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMessage, msg)
		})
	}
}

func TestRemoveParticipant(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/activities/Q&A Club/participants/a b@x.com", r.URL.Path)
		assert.Equal(t, "/activities/Q&A%20Club/participants/a%20b@x.com", r.URL.EscapedPath())
		w.Write([]byte(`{"message": "Removed a b@x.com from Q&A Club"}`))
	}))
	defer ts.Close()

	msg, err := New(ts.URL + "/").RemoveParticipant(context.Background(), "Q&A Club", "a b@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Removed a b@x.com from Q&A Club", msg)
}

func TestRemoveParticipant_SlashInName(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/activities/Arts%2FCrafts/participants/a@x.com", r.URL.EscapedPath())
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail": "Activity not found"}`))
	}))
	defer ts.Close()

	_, err := New(ts.URL).RemoveParticipant(context.Background(), "Arts/Crafts", "a@x.com")
	require.Error(t, err)
	assert.Equal(t, "Activity not found", DetailOf(err))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}
