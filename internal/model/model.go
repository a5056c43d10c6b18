// Package model defines the core domain types for the activities board.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Activity is a scheduled school offering with a capacity and a roster of
// signed-up emails.
type Activity struct {
	Description     string   `json:"description" yaml:"description"`
	Schedule        string   `json:"schedule" yaml:"schedule"`
	MaxParticipants int      `json:"max_participants" yaml:"max_participants"`
	Participants    []string `json:"participants" yaml:"participants"`
}

// SpotsLeft returns the number of free places. It is always derived from the
// roster and never stored.
func (a Activity) SpotsLeft() int {
	return a.MaxParticipants - len(a.Participants)
}

// IsFull returns true when no spots remain.
func (a Activity) IsFull() bool {
	return len(a.Participants) >= a.MaxParticipants
}

// HasParticipant reports whether email is on the roster. Emails compare
// case-insensitively.
func (a Activity) HasParticipant(email string) bool {
	return a.ParticipantIndex(email) >= 0
}

// ParticipantIndex returns the roster position of email, or -1.
func (a Activity) ParticipantIndex(email string) int {
	for i, p := range a.Participants {
		if strings.EqualFold(p, email) {
			return i
		}
	}
	return -1
}

// Entry is a single named activity inside a Catalog.
type Entry struct {
	Name     string   `yaml:"name"`
	Activity Activity `yaml:",inline"`
}

// Catalog is the full set of activities in the order the server returned
// them. On the wire it is a JSON object keyed by activity name.
type Catalog []Entry

// Names returns the activity names in catalog order.
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c))
	for _, e := range c {
		names = append(names, e.Name)
	}
	return names
}

// Get looks up an activity by name.
func (c Catalog) Get(name string) (Activity, bool) {
	for _, e := range c {
		if e.Name == name {
			return e.Activity, true
		}
	}
	return Activity{}, false
}

// MarshalJSON encodes the catalog as a JSON object, keeping entry order.
func (c Catalog) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Name)
		if err != nil {
			return nil, err
		}
		if e.Activity.Participants == nil {
			e.Activity.Participants = []string{}
		}
		val, err := json.Marshal(e.Activity)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object into the catalog, keeping key order.
// A repeated key keeps its first position and takes the last value.
func (c *Catalog) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("catalog: expected JSON object, got %v", tok)
	}

	out := Catalog{}
	index := map[string]int{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("catalog: expected activity name, got %v", tok)
		}
		var a Activity
		if err := dec.Decode(&a); err != nil {
			return fmt.Errorf("catalog: decode %q: %w", name, err)
		}
		if i, ok := index[name]; ok {
			out[i].Activity = a
			continue
		}
		index[name] = len(out)
		out = append(out, Entry{Name: name, Activity: a})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*c = out
	return nil
}

// MessageResponse is the success envelope of the mutating endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the failure envelope of the activities API.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// MessageKind styles a status message.
type MessageKind string

const (
	MessageSuccess MessageKind = "success"
	MessageError   MessageKind = "error"
)

// Message is the transient status line shown after an operation completes.
type Message struct {
	Text    string
	Kind    MessageKind
	Visible bool
}

// Class returns the CSS class list for the message area.
func (m Message) Class() string {
	class := "message"
	if m.Kind != "" {
		class += " " + string(m.Kind)
	}
	if !m.Visible {
		class += " hidden"
	}
	return class
}
