package app

import (
	"fmt"

	"github.com/jaminalder/gomoku/internal/domain"
)

// Phase is the coarse position of a session in its lifecycle.
type Phase uint8

const (
	NotStarted Phase = iota
	HumanTurn
	AIThinking
	Finished
)

var phaseNames = [...]string{"not_started", "human_turn", "ai_thinking", "finished"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return fmt.Sprintf("phase(%d)", p)
}

// MarshalText implements encoding.TextMarshaler.
func (p Phase) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *Phase) UnmarshalText(b []byte) error {
	for i, name := range phaseNames {
		if string(b) == name {
			*p = Phase(i)
			return nil
		}
	}
	return fmt.Errorf("app: unknown phase %q", b)
}

// OutcomeKind tells a win from a draw.
type OutcomeKind uint8

const (
	NoOutcome OutcomeKind = iota
	Win
	Draw
)

func (k OutcomeKind) MarshalText() ([]byte, error) {
	switch k {
	case Win:
		return []byte("win"), nil
	case Draw:
		return []byte("draw"), nil
	}
	return []byte("none"), nil
}

func (k *OutcomeKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "win":
		*k = Win
	case "draw":
		*k = Draw
	case "none":
		*k = NoOutcome
	default:
		return fmt.Errorf("app: unknown outcome %q", b)
	}
	return nil
}

// Outcome is the result of a finished game. Winner is set only for Win.
type Outcome struct {
	Kind   OutcomeKind   `json:"kind"`
	Winner domain.Player `json:"winner,omitempty"`
}

// State is the session state: a phase, plus an outcome once Finished.
type State struct {
	Phase   Phase    `json:"phase"`
	Outcome *Outcome `json:"outcome,omitempty"`
}

func won(p domain.Player) State {
	return State{Phase: Finished, Outcome: &Outcome{Kind: Win, Winner: p}}
}

func drawn() State {
	return State{Phase: Finished, Outcome: &Outcome{Kind: Draw}}
}

// Winner returns the winning color of a finished game.
func (s State) Winner() (domain.Player, bool) {
	if s.Phase != Finished || s.Outcome == nil || s.Outcome.Kind != Win {
		return 0, false
	}
	return s.Outcome.Winner, true
}

// IsDraw reports a finished game without a winner.
func (s State) IsDraw() bool {
	return s.Phase == Finished && s.Outcome != nil && s.Outcome.Kind == Draw
}

func (s State) String() string {
	switch s.Phase {
	case NotStarted:
		return "choose a color"
	case HumanTurn:
		return "your turn"
	case AIThinking:
		return "computer thinking"
	case Finished:
		if w, ok := s.Winner(); ok {
			return "winner: " + w.String()
		}
		return "draw"
	}
	return s.Phase.String()
}
