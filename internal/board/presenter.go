package board

import (
	"sync"
	"time"

	"github.com/Shivanand-hulikatti/activities-board/internal/model"
)

// MessageTTL is how long a status message stays visible.
const MessageTTL = 5 * time.Second

// Timer is the part of *time.Timer the presenter needs.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f to run after d.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Presenter owns the single status line of a page.
//
// Every Show replaces the current message and re-arms the hide timer. The
// previous timer is stopped, and a generation counter makes a timer that
// already fired for an older message a no-op, so a message always stays
// visible for its full TTL.
type Presenter struct {
	ttl       time.Duration
	afterFunc AfterFunc
	now       func() time.Time

	mu      sync.Mutex
	msg     model.Message
	shownAt time.Time
	gen     uint64
	timer   Timer
}

// NewPresenter returns a presenter that hides messages after ttl.
func NewPresenter(ttl time.Duration, afterFunc AfterFunc, now func() time.Time) *Presenter {
	if afterFunc == nil {
		afterFunc = realAfterFunc
	}
	if now == nil {
		now = time.Now
	}
	return &Presenter{ttl: ttl, afterFunc: afterFunc, now: now}
}

// Show displays text styled as kind and schedules it to be hidden.
func (p *Presenter) Show(text string, kind model.MessageKind) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.timer != nil {
		p.timer.Stop()
	}
	p.gen++
	gen := p.gen
	p.msg = model.Message{Text: text, Kind: kind, Visible: true}
	p.shownAt = p.now()
	p.timer = p.afterFunc(p.ttl, func() { p.hide(gen) })
}

func (p *Presenter) hide(gen uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if gen != p.gen {
		return
	}
	p.msg.Visible = false
	p.timer = nil
}

// Current returns the message and how long it has left to be visible.
func (p *Presenter) Current() (model.Message, time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.msg.Visible {
		return p.msg, 0
	}
	remaining := p.ttl - p.now().Sub(p.shownAt)
	if remaining < 0 {
		remaining = 0
	}
	return p.msg, remaining
}
