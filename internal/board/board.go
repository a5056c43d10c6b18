// Package board implements the activities board of one browser session:
// loading the catalog, rendering it, signing students up, removing
// participants and presenting the resulting status message.
//
// A Board is the explicit context object that owns the render targets
// (list, activity options, signup form, message line). Handlers receive it
// instead of reaching for shared state.
package board

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Shivanand-hulikatti/activities-board/internal/apiclient"
	"github.com/Shivanand-hulikatti/activities-board/internal/model"
	"github.com/Shivanand-hulikatti/activities-board/internal/render"
)

// User-facing fallback texts.
const (
	MissingFieldsText   = "Email and activity are required"
	SignupFallback      = "An error occurred"
	SignupTransportText = "Failed to sign up. Please try again."
	RemoveFallback      = "Failed to remove participant"
	RemoveTransportText = "Failed to remove participant. Please try again."
)

// ActivitiesAPI is the backend the board talks to.
type ActivitiesAPI interface {
	ListActivities(ctx context.Context) (model.Catalog, error)
	Signup(ctx context.Context, activity, email string) (string, error)
	RemoveParticipant(ctx context.Context, activity, email string) (string, error)
}

// Recorder observes completed board operations.
type Recorder interface {
	Operation(op string, outcome Outcome)
}

type nopRecorder struct{}

func (nopRecorder) Operation(string, Outcome) {}

// Outcome is how an operation ended.
type Outcome string

const (
	OutcomeSuccess   Outcome = "success"
	OutcomeError     Outcome = "error"
	OutcomeCancelled Outcome = "cancelled"
	OutcomeInvalid   Outcome = "invalid"
)

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

// Confirm calls f.
func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// RemovalPrompt is the question asked before a participant is removed.
func RemovalPrompt(email, activity string) string {
	return fmt.Sprintf("Remove %s from %s?", email, activity)
}

// Form holds the values of the signup form.
type Form struct {
	Email    string
	Activity string
}

// Page is a snapshot of everything the board shows.
type Page struct {
	// ListHTML is the rendered activity list, or the failure notice.
	ListHTML string
	// Options are the activity names offered by the signup select.
	Options []string
	Form    Form
	Message model.Message
	// MessageRemaining is how long Message stays visible from now.
	MessageRemaining time.Duration
	Loaded           bool
}

// Board is the state of a single board page.
type Board struct {
	api       ActivitiesAPI
	log       zerolog.Logger
	recorder  Recorder
	presenter *Presenter

	mu   sync.Mutex
	page Page
	// keepList makes the next Refresh skip the fetch once.
	keepList bool
}

// Option configures a Board.
type Option func(*Board)

// WithLogger sets the logger used for diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(b *Board) { b.log = l }
}

// WithRecorder sets the operation recorder.
func WithRecorder(r Recorder) Option {
	return func(b *Board) { b.recorder = r }
}

// WithPresenter replaces the default message presenter.
func WithPresenter(p *Presenter) Option {
	return func(b *Board) { b.presenter = p }
}

// New constructs a Board backed by api.
func New(api ActivitiesAPI, opts ...Option) *Board {
	b := &Board{
		api:      api,
		log:      zerolog.Nop(),
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.presenter == nil {
		b.presenter = NewPresenter(MessageTTL, nil, nil)
	}
	return b
}

// Page returns a copy of the current page state.
func (b *Board) Page() Page {
	b.mu.Lock()
	p := b.page
	p.Options = append([]string(nil), b.page.Options...)
	b.mu.Unlock()

	p.Message, p.MessageRemaining = b.presenter.Current()
	return p
}

// Loaded reports whether the catalog has been requested at least once.
func (b *Board) Loaded() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.page.Loaded
}

// Load fetches the catalog and replaces the list and the activity options.
// On failure the list shows a failure notice and the options are left as
// they were. Repeated calls always rebuild from the latest server state.
func (b *Board) Load(ctx context.Context) error {
	catalog, err := b.api.ListActivities(ctx)
	if err != nil {
		b.log.Error().Err(err).Msg("Error fetching activities")
		b.mu.Lock()
		b.page.ListHTML = render.FailureNotice()
		b.page.Loaded = true
		b.mu.Unlock()
		b.recorder.Operation("load", OutcomeError)
		return err
	}

	list := render.List(catalog)
	names := catalog.Names()

	b.mu.Lock()
	b.page.ListHTML = list
	b.page.Options = names
	b.page.Loaded = true
	b.mu.Unlock()
	b.recorder.Operation("load", OutcomeSuccess)
	return nil
}

// Refresh loads the catalog for a page view. The first view after a Signup
// or Remove shows the list that operation left behind instead; every other
// view fetches it again.
func (b *Board) Refresh(ctx context.Context) error {
	b.mu.Lock()
	keep := b.keepList && b.page.Loaded
	b.keepList = false
	b.mu.Unlock()

	if keep {
		return nil
	}
	return b.Load(ctx)
}

// Signup submits the signup form. The form is reset only on success, and
// the list is not reloaded.
func (b *Board) Signup(ctx context.Context, email, activity string) Outcome {
	b.mu.Lock()
	b.page.Form = Form{Email: email, Activity: activity}
	b.keepList = true
	b.mu.Unlock()

	if email == "" || activity == "" {
		b.presenter.Show(MissingFieldsText, model.MessageError)
		b.recorder.Operation("signup", OutcomeInvalid)
		return OutcomeInvalid
	}

	msg, err := b.api.Signup(ctx, activity, email)
	if err != nil {
		b.showFailure(err, SignupFallback, SignupTransportText, "Error signing up")
		b.recorder.Operation("signup", OutcomeError)
		return OutcomeError
	}

	b.presenter.Show(msg, model.MessageSuccess)
	b.mu.Lock()
	b.page.Form = Form{}
	b.mu.Unlock()
	b.recorder.Operation("signup", OutcomeSuccess)
	return OutcomeSuccess
}

// Remove asks c to confirm, removes email from activity and reloads the
// catalog on success. A declined confirmation does nothing at all.
func (b *Board) Remove(ctx context.Context, activity, email string, c Confirmer) Outcome {
	b.mu.Lock()
	b.keepList = true
	b.mu.Unlock()

	if !c.Confirm(RemovalPrompt(email, activity)) {
		b.recorder.Operation("remove", OutcomeCancelled)
		return OutcomeCancelled
	}

	msg, err := b.api.RemoveParticipant(ctx, activity, email)
	if err != nil {
		b.showFailure(err, RemoveFallback, RemoveTransportText, "Error removing participant")
		b.recorder.Operation("remove", OutcomeError)
		return OutcomeError
	}

	b.presenter.Show(msg, model.MessageSuccess)
	b.recorder.Operation("remove", OutcomeSuccess)
	// The reload failure is already visible in the list.
	_ = b.Load(ctx)
	return OutcomeSuccess
}

func (b *Board) showFailure(err error, fallback, transportText, logMsg string) {
	if apiclient.IsTransport(err) {
		b.log.Error().Err(err).Msg(logMsg)
		b.presenter.Show(transportText, model.MessageError)
		return
	}

	detail := apiclient.DetailOf(err)
	if detail == "" {
		detail = fallback
	}
	b.log.Debug().Err(err).Msg(logMsg)
	b.presenter.Show(detail, model.MessageError)
}
