package board

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Sessions keeps one Board per browser session.
type Sessions struct {
	newBoard func() *Board
	ttl      time.Duration
	limit    int
	now      func() time.Time

	mu     sync.Mutex
	boards map[string]*session
}

type session struct {
	board    *Board
	lastSeen time.Time
}

// NewSessions creates a registry that builds boards with newBoard and
// forgets sessions idle for longer than ttl. At most limit sessions are
// kept; the least recently seen one makes room for a new session. A limit
// of zero or less means no cap.
func NewSessions(newBoard func() *Board, ttl time.Duration, limit int) *Sessions {
	return &Sessions{
		newBoard: newBoard,
		ttl:      ttl,
		limit:    limit,
		now:      time.Now,
		boards:   make(map[string]*session),
	}
}

// Get returns the board for id. Unknown or empty ids get a fresh board
// under a new id; the returned id is the one to hand back to the client.
func (s *Sessions) Get(id string) (*Board, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.pruneLocked(now)

	if sess, ok := s.boards[id]; ok && id != "" {
		sess.lastSeen = now
		return sess.board, id
	}

	if s.limit > 0 && len(s.boards) >= s.limit {
		s.evictOldestLocked()
	}
	id = uuid.NewString()
	sess := &session{board: s.newBoard(), lastSeen: now}
	s.boards[id] = sess
	return sess.board, id
}

// Len returns the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.boards)
}

func (s *Sessions) evictOldestLocked() {
	var oldest string
	var seen time.Time
	for id, sess := range s.boards {
		if oldest == "" || sess.lastSeen.Before(seen) {
			oldest, seen = id, sess.lastSeen
		}
	}
	delete(s.boards, oldest)
}

func (s *Sessions) pruneLocked(now time.Time) {
	if s.ttl <= 0 {
		return
	}
	for id, sess := range s.boards {
		if now.Sub(sess.lastSeen) > s.ttl {
			delete(s.boards, id)
		}
	}
}
