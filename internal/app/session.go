package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jaminalder/gomoku/internal/domain"
)

// DefaultThinkDelay is how long the computer pauses before replying.
const DefaultThinkDelay = 500 * time.Millisecond

// Snapshot is a read-only copy of a session taken after a transition.
type Snapshot struct {
	ID          string        `json:"id"`
	Board       domain.Board  `json:"board"`
	Ply         int           `json:"ply"`
	Human       domain.Player `json:"human,omitempty"`
	State       State         `json:"state"`
	Status      string        `json:"status"`
	LastMove    *domain.Move  `json:"last_move,omitempty"`
	WinningLine []domain.Move `json:"winning_line,omitempty"`
	CanUndo     bool          `json:"can_undo"`
	Version     uint64        `json:"version"`
}

// HumanWon reports whether the game ended with the human's color winning.
func (s Snapshot) HumanWon() bool {
	w, ok := s.State.Winner()
	return ok && w == s.Human
}

// Option configures a Session.
type Option func(*Session)

// WithSelector replaces the computer's move selector.
func WithSelector(sel domain.Selector) Option {
	return func(s *Session) { s.selector = sel }
}

// WithThinkDelay sets the pause before the computer moves.
func WithThinkDelay(d time.Duration) Option {
	return func(s *Session) { s.delay = d }
}

// WithLogger sets the session logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(s *Session) { s.log = l }
}

// WithObserver registers fn to receive a Snapshot after every accepted
// transition, including the computer's move. Snapshots arrive in version
// order; one overtaken by a newer transition is skipped. fn runs outside the
// session lock but must not issue session commands itself.
func WithObserver(fn func(Snapshot)) Option {
	return func(s *Session) { s.observers = append(s.observers, fn) }
}

// WithID fixes the session identifier.
func WithID(id string) Option {
	return func(s *Session) { s.id = id }
}

// Session is one human-versus-computer game. History holds a board per ply
// and ply indexes the current one.
//
// Entering AIThinking schedules exactly one continuation that waits the
// think delay, plays the computer's move and closes done. Every command is
// rejected while it is pending, so at most one is ever in flight. Start and
// Reset are rejected too rather than deferred.
type Session struct {
	mu        sync.Mutex
	id        string
	history   []domain.Board
	ply       int
	human     domain.Player
	state     State
	version   uint64
	done      chan struct{}
	selector  domain.Selector
	delay     time.Duration
	log       *zap.SugaredLogger
	observers []func(Snapshot)

	notifyMu sync.Mutex
	notified uint64
}

// NewSession returns a session in NotStarted.
func NewSession(opts ...Option) *Session {
	s := &Session{
		history:  []domain.Board{{}},
		selector: domain.Heuristic{},
		delay:    DefaultThinkDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.id == "" {
		s.id = uuid.NewString()
	}
	if s.log == nil {
		s.log = zap.NewNop().Sugar()
	}
	s.log = s.log.With("session", s.id)
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Start begins a new game with the human playing black or white. When the
// human is white the computer opens.
func (s *Session) Start(humanIsBlack bool) error {
	s.mu.Lock()
	if s.state.Phase == AIThinking {
		s.mu.Unlock()
		return domain.ErrAIThinking
	}
	s.human = domain.PlayerWhite
	if humanIsBlack {
		s.human = domain.PlayerBlack
	}
	s.history = []domain.Board{{}}
	s.ply = 0
	if humanIsBlack {
		s.state = State{Phase: HumanTurn}
	} else {
		s.beginAILocked()
	}
	s.version++
	s.log.Infow("game started", "human", s.human)
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
	return nil
}

// Reset returns the session to NotStarted.
func (s *Session) Reset() error {
	s.mu.Lock()
	if s.state.Phase == AIThinking {
		s.mu.Unlock()
		return domain.ErrAIThinking
	}
	s.history = []domain.Board{{}}
	s.ply = 0
	s.human = 0
	s.state = State{Phase: NotStarted}
	s.version++
	s.log.Infow("session reset")
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
	return nil
}

// ApplyHumanMove plays the human's stone at (r, c). Rule violations return
// an error wrapping domain.ErrRejected; coordinates off the board return
// domain.ErrOutOfBounds.
func (s *Session) ApplyHumanMove(r, c int) error {
	if !domain.InBounds(r, c) {
		s.log.Errorw("move outside board", "row", r, "col", c)
		return fmt.Errorf("%w: (%d,%d)", domain.ErrOutOfBounds, r, c)
	}
	s.mu.Lock()
	if err := s.commandAllowedLocked(); err != nil {
		s.mu.Unlock()
		return err
	}
	if s.history[s.ply].At(r, c) != domain.Empty {
		s.mu.Unlock()
		return domain.ErrOccupied
	}
	s.applyLocked(r, c, s.human)
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
	return nil
}

// Undo takes back the human's last move and the computer's reply.
func (s *Session) Undo() error {
	s.mu.Lock()
	if err := s.commandAllowedLocked(); err != nil {
		s.mu.Unlock()
		return err
	}
	if s.ply < 2 {
		s.mu.Unlock()
		return domain.ErrUndoTooEarly
	}
	s.history = s.history[:s.ply-1]
	s.ply -= 2
	s.version++
	s.log.Debugw("undo", "ply", s.ply)
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
	return nil
}

// commandAllowedLocked rejects human commands outside HumanTurn.
func (s *Session) commandAllowedLocked() error {
	switch s.state.Phase {
	case NotStarted:
		return domain.ErrNotStarted
	case AIThinking:
		return domain.ErrAIThinking
	case Finished:
		return domain.ErrGameOver
	case HumanTurn:
		return nil
	}
	panic(fmt.Sprintf("app: unknown phase %d", s.state.Phase))
}

// applyLocked places p's stone, appends the board to history and moves to
// the next state. The board is built and judged before anything is stored.
func (s *Session) applyLocked(r, c int, p domain.Player) {
	next := s.history[s.ply].With(r, c, p.Cell())

	var state State
	if w, ok := domain.FindWinner(next); ok {
		state = won(w)
	} else if next.Full() {
		state = drawn()
	} else if p == s.human {
		state = State{Phase: AIThinking}
	} else {
		state = State{Phase: HumanTurn}
	}

	s.history = append(s.history[:s.ply+1], next)
	s.ply++
	s.version++
	s.log.Debugw("move", "ply", s.ply, "row", r, "col", c, "player", p)

	if state.Phase == AIThinking {
		s.beginAILocked()
		return
	}
	s.state = state
	if state.Phase == Finished {
		s.log.Infow("game finished", "result", state.String(), "ply", s.ply)
	}
}

// beginAILocked enters AIThinking and schedules the computer's move.
func (s *Session) beginAILocked() {
	s.state = State{Phase: AIThinking}
	done := make(chan struct{})
	s.done = done
	go s.playAI(done)
}

func (s *Session) playAI(done chan struct{}) {
	defer close(done)
	if s.delay > 0 {
		time.Sleep(s.delay)
	}

	// Commands are rejected while thinking, so the board cannot change
	// between reading it here and applying the move below.
	s.mu.Lock()
	ai := s.human.Opponent()
	board := s.history[s.ply]
	s.mu.Unlock()

	start := time.Now()
	r, c := s.selector.ChooseMove(board, ai)
	if !domain.InBounds(r, c) || board.At(r, c) != domain.Empty {
		panic(fmt.Sprintf("app: selector chose unplayable cell (%d,%d)", r, c))
	}
	s.log.Debugw("computer move chosen", "row", r, "col", c, "elapsed", time.Since(start))

	s.mu.Lock()
	s.applyLocked(r, c, ai)
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
}

// AIDone returns a channel closed once the computer's pending move has
// been applied. With nothing pending the channel is already closed.
func (s *Session) AIDone() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done == nil {
		done := make(chan struct{})
		close(done)
		return done
	}
	return s.done
}

// Wait blocks until the computer's pending move lands or ctx ends.
func (s *Session) Wait(ctx context.Context) error {
	select {
	case <-s.AIDone():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Board returns the current board.
func (s *Session) Board() domain.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history[s.ply]
}

// State returns the current session state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// HumanColor returns the human's color; zero before Start.
func (s *Session) HumanColor() domain.Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.human
}

// History returns a copy of the board history up to the current ply.
func (s *Session) History() []domain.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Board(nil), s.history[:s.ply+1]...)
}

// Snapshot returns the current snapshot.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		ID:      s.id,
		Board:   s.history[s.ply],
		Ply:     s.ply,
		Human:   s.human,
		State:   s.state,
		Status:  s.state.String(),
		CanUndo: s.state.Phase == HumanTurn && s.ply >= 2,
		Version: s.version,
	}
	if s.ply > 0 {
		if d := domain.Diff(s.history[s.ply-1], s.history[s.ply]); len(d) == 1 {
			r, c := d[0][0], d[0][1]
			snap.LastMove = &domain.Move{Row: r, Col: c, Player: domain.Player(snap.Board.At(r, c))}
		}
	}
	if s.state.Phase == Finished {
		snap.WinningLine, _ = domain.WinningLine(snap.Board)
	}
	return snap
}

func (s *Session) notify(snap Snapshot) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	if snap.Version <= s.notified {
		return
	}
	s.notified = snap.Version
	for _, fn := range s.observers {
		fn(snap)
	}
}
