package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivity_SpotsLeft(t *testing.T) {
	tests := []struct {
		name     string
		activity Activity
		want     int
	}{
		{name: "empty roster", activity: Activity{MaxParticipants: 12}, want: 12},
		{name: "partly filled", activity: Activity{MaxParticipants: 12, Participants: []string{"a@x.com", "b@x.com"}}, want: 10},
		{name: "full", activity: Activity{MaxParticipants: 1, Participants: []string{"a@x.com"}}, want: 0},
		{name: "over capacity", activity: Activity{MaxParticipants: 1, Participants: []string{"a@x.com", "b@x.com"}}, want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.activity.SpotsLeft())
		})
	}
}

func TestCatalog_UnmarshalKeepsServerOrder(t *testing.T) {
	body := `{
		"Soccer": {"description": "Outdoor", "schedule": "Tue", "max_participants": 22, "participants": ["alex@mergington.edu", "marcus@mergington.edu"]},
		"Art Club": {"description": "Paint", "schedule": "Wed", "max_participants": 16, "participants": []},
		"Basketball": {"description": "Hoops", "schedule": "Mon", "max_participants": 15, "participants": ["james@mergington.edu"]}
	}`

	var c Catalog
	require.NoError(t, json.Unmarshal([]byte(body), &c))

	assert.Equal(t, []string{"Soccer", "Art Club", "Basketball"}, c.Names())
	soccer, ok := c.Get("Soccer")
	require.True(t, ok)
	assert.Equal(t, []string{"alex@mergington.edu", "marcus@mergington.edu"}, soccer.Participants)
	assert.Equal(t, 20, soccer.SpotsLeft())

	_, ok = c.Get("Chess Club")
	assert.False(t, ok)
}

func TestCatalog_UnmarshalRepeatedKeyKeepsLastValue(t *testing.T) {
	body := `{
		"Soccer": {"description": "Old", "max_participants": 22, "participants": []},
		"Art Club": {"description": "Paint", "max_participants": 16, "participants": []},
		"Soccer": {"description": "New", "max_participants": 20, "participants": ["alex@mergington.edu"]}
	}`

	var c Catalog
	require.NoError(t, json.Unmarshal([]byte(body), &c))

	assert.Equal(t, []string{"Soccer", "Art Club"}, c.Names())
	soccer, _ := c.Get("Soccer")
	assert.Equal(t, "New", soccer.Description)
	assert.Equal(t, 19, soccer.SpotsLeft())
}

func TestActivity_ParticipantIndexIgnoresCase(t *testing.T) {
	a := Activity{Participants: []string{"james@mergington.edu", "Alice@School.edu"}}

	assert.Equal(t, 1, a.ParticipantIndex("alice@school.edu"))
	assert.Equal(t, 0, a.ParticipantIndex("JAMES@mergington.edu"))
	assert.Equal(t, -1, a.ParticipantIndex("bob@school.edu"))
	assert.True(t, a.HasParticipant("ALICE@SCHOOL.EDU"))
}

func TestCatalog_UnmarshalRejectsNonObject(t *testing.T) {
	var c Catalog
	assert.Error(t, json.Unmarshal([]byte(`["Soccer"]`), &c))
	assert.Error(t, json.Unmarshal([]byte(`{"Soccer": "nope"}`), &c))
}

func TestCatalog_MarshalJSON(t *testing.T) {
	c := Catalog{
		{Name: "Chess Club", Activity: Activity{Description: "Chess", Schedule: "Fri", MaxParticipants: 12}},
		{Name: "Art Club", Activity: Activity{Description: "Art", Schedule: "Wed", MaxParticipants: 16, Participants: []string{"sarah@mergington.edu"}}},
	}

	data, err := json.Marshal(c)
	require.NoError(t, err)
	assert.Equal(t,
		`{"Chess Club":{"description":"Chess","schedule":"Fri","max_participants":12,"participants":[]},`+
			`"Art Club":{"description":"Art","schedule":"Wed","max_participants":16,"participants":["sarah@mergington.edu"]}}`,
		string(data))
}

func TestMessage_Class(t *testing.T) {
	assert.Equal(t, "message success", Message{Kind: MessageSuccess, Visible: true}.Class())
	assert.Equal(t, "message error", Message{Kind: MessageError, Visible: true}.Class())
	assert.Equal(t, "message error hidden", Message{Kind: MessageError}.Class())
	assert.Equal(t, "message hidden", Message{}.Class())
}
