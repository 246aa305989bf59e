package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNotFound is returned for unknown session IDs.
var ErrNotFound = errors.New("session not found")

type subscriber struct {
	mu     sync.Mutex
	ch     chan Snapshot
	closed bool
}

// send delivers snap without blocking and reports false if the buffer is full.
func (s *subscriber) send(snap Snapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return true
	}
	select {
	case s.ch <- snap:
		return true
	default:
		return false
	}
}

func (s *subscriber) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.ch)
	}
}

type entry struct {
	session *Session
	owner   string
	touched time.Time
}

// Service keeps sessions by ID and fans their snapshots out to subscribers.
type Service struct {
	mu       sync.Mutex
	sessions map[string]*entry
	subs     map[string]map[*subscriber]struct{}
	opts     []Option
	log      *zap.SugaredLogger
}

// NewService creates a service. opts are applied to every session it creates.
func NewService(log *zap.SugaredLogger, opts ...Option) *Service {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Service{
		sessions: make(map[string]*entry),
		subs:     make(map[string]map[*subscriber]struct{}),
		opts:     opts,
		log:      log,
	}
}

// CreateGame creates and registers a new session in NotStarted. owner
// identifies the player allowed to issue commands; empty allows anyone.
func (s *Service) CreateGame(owner string) *Session {
	id := uuid.NewString()
	opts := append([]Option{WithID(id), WithLogger(s.log)}, s.opts...)
	opts = append(opts, WithObserver(func(snap Snapshot) { s.broadcast(id, snap) }))
	sess := NewSession(opts...)

	s.mu.Lock()
	s.sessions[id] = &entry{session: sess, owner: owner, touched: time.Now()}
	n := len(s.sessions)
	s.mu.Unlock()

	s.log.Infow("session created", "session", id, "sessions", n)
	return sess
}

// Get returns the session with the given ID.
func (s *Service) Get(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	return e.session, true
}

// IsOwner reports whether player may issue commands to the session.
func (s *Service) IsOwner(id, player string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[id]
	return ok && (e.owner == "" || e.owner == player)
}

// Remove forgets a session and closes its subscribers.
func (s *Service) Remove(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	set := s.subs[id]
	delete(s.subs, id)
	s.mu.Unlock()
	for sub := range set {
		sub.close()
	}
}

// Prune removes sessions with no transition for longer than ttl. Sessions
// waiting on the computer are kept. It returns how many were removed.
func (s *Service) Prune(ttl time.Duration) int {
	var stale []string
	s.mu.Lock()
	for id, e := range s.sessions {
		if time.Since(e.touched) > ttl && e.session.State().Phase != AIThinking {
			stale = append(stale, id)
		}
	}
	s.mu.Unlock()
	for _, id := range stale {
		s.Remove(id)
	}
	if len(stale) > 0 {
		s.log.Infow("pruned idle sessions", "count", len(stale))
	}
	return len(stale)
}

// Len returns the number of registered sessions.
func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Subscribe registers a subscriber for a session. The channel receives a
// Snapshot after every transition and is closed when ctx ends, the
// subscriber falls behind, or the session is removed.
func (s *Service) Subscribe(ctx context.Context, id string) (<-chan Snapshot, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return nil, nil, ErrNotFound
	}
	set := s.subs[id]
	if set == nil {
		set = make(map[*subscriber]struct{})
		s.subs[id] = set
	}
	sub := &subscriber{ch: make(chan Snapshot, 4)}
	set[sub] = struct{}{}

	unsubOnce := &sync.Once{}
	unsub := func() {
		unsubOnce.Do(func() {
			s.mu.Lock()
			if set, ok := s.subs[id]; ok {
				delete(set, sub)
			}
			s.mu.Unlock()
			sub.close()
		})
	}
	go func() {
		<-ctx.Done()
		unsub()
	}()
	return sub.ch, unsub, nil
}

func (s *Service) broadcast(id string, snap Snapshot) {
	var toDrop []*subscriber

	s.mu.Lock()
	if e, ok := s.sessions[id]; ok {
		e.touched = time.Now()
	}
	subs := s.copySubsLocked(id)
	s.mu.Unlock()

	// Fan-out; drop slow subscribers by closing and marking for deletion
	for sub := range subs {
		if !sub.send(snap) {
			sub.close()
			toDrop = append(toDrop, sub)
		}
	}
	if len(toDrop) > 0 {
		s.log.Warnw("dropped slow subscribers", "session", id, "count", len(toDrop))
		s.mu.Lock()
		for _, sub := range toDrop {
			if set, ok := s.subs[id]; ok {
				delete(set, sub)
			}
		}
		s.mu.Unlock()
	}
}

func (s *Service) copySubsLocked(id string) map[*subscriber]struct{} {
	out := make(map[*subscriber]struct{})
	if set, ok := s.subs[id]; ok {
		for k := range set {
			out[k] = struct{}{}
		}
	}
	return out
}
