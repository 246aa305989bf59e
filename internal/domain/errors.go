package domain

import (
	"errors"
	"fmt"
)

// ErrRejected marks commands refused by the game rules. The caller may retry
// with a different command; nothing was changed.
var ErrRejected = errors.New("rejected")

// ErrContract marks calls that break the API contract, such as coordinates
// outside the board. These point at a bug in the caller.
var ErrContract = errors.New("contract violation")

// Errors returned by game operations.
var (
	ErrOutOfBounds  = fmt.Errorf("%w: out of bounds", ErrContract)
	ErrOccupied     = fmt.Errorf("%w: cell occupied", ErrRejected)
	ErrNotStarted   = fmt.Errorf("%w: game not started", ErrRejected)
	ErrAIThinking   = fmt.Errorf("%w: computer is thinking", ErrRejected)
	ErrUndoTooEarly = fmt.Errorf("%w: nothing to undo", ErrRejected)
	ErrGameOver     = fmt.Errorf("%w: game over", ErrRejected)
)
