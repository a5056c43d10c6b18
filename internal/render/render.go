// Package render turns a catalog into the HTML fragments shown on the board.
//
// All server-supplied text (activity names, descriptions, schedules and
// participant emails) passes through Escape before it reaches the markup.
package render

import (
	"fmt"
	"strings"

	"github.com/Shivanand-hulikatti/activities-board/internal/model"
)

// FailureText is shown in place of the list when the catalog cannot be loaded.
const FailureText = "Failed to load activities. Please try again later."

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// Escape replaces the five HTML-significant characters with entities.
func Escape(s string) string {
	return escaper.Replace(s)
}

// List renders one card per catalog entry, in catalog order.
func List(c model.Catalog) string {
	var b strings.Builder
	for _, e := range c {
		b.WriteString(Card(e.Name, e.Activity))
	}
	return b.String()
}

// Card renders a single activity with its availability and roster.
func Card(name string, a model.Activity) string {
	var b strings.Builder
	b.WriteString(`<div class="activity-card">`)
	fmt.Fprintf(&b, `<h4>%s</h4>`, Escape(name))
	fmt.Fprintf(&b, `<p>%s</p>`, Escape(a.Description))
	fmt.Fprintf(&b, `<p><strong>Schedule:</strong> %s</p>`, Escape(a.Schedule))
	fmt.Fprintf(&b, `<p><strong>Availability:</strong> %d spots left</p>`, a.SpotsLeft())
	b.WriteString(Roster(name, a.Participants))
	b.WriteString(`</div>`)
	return b.String()
}

// Roster renders the participant list of one activity. An empty roster
// yields a single placeholder paragraph and never an empty list element.
func Roster(activity string, participants []string) string {
	if len(participants) == 0 {
		return `<p class="no-participants">No participants yet</p>`
	}

	act := Escape(activity)
	var b strings.Builder
	b.WriteString(`<h5 class="participants-title">Participants</h5><ul class="participants">`)
	for _, p := range participants {
		email := Escape(p)
		fmt.Fprintf(&b, `<li><span class="participant-email">%s</span>`, email)
		fmt.Fprintf(&b, `<form class="remove-form" method="get" action="/remove">`+
			`<input type="hidden" name="activity" value="%s">`+
			`<input type="hidden" name="email" value="%s">`+
			`<button type="submit" class="remove-participant" data-activity="%s" data-email="%s" aria-label="Remove %s">✖</button>`+
			`</form></li>`,
			act, email, act, email, email)
	}
	b.WriteString(`</ul>`)
	return b.String()
}

// FailureNotice renders the notice that replaces the list after a failed load.
func FailureNotice() string {
	return "<p>" + FailureText + "</p>"
}
