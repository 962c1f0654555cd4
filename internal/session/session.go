package session

import (
	"errors"
	"fmt"

	"ctchen222/tictactoe-engine/internal/bot"
	"ctchen222/tictactoe-engine/internal/game"
)

type Mode string

const (
	ModeManual     Mode = "manual"
	ModeVsOpponent Mode = "opponent"
)

// Valid reports whether m is a known game mode.
func (m Mode) Valid() bool {
	return m == ModeManual || m == ModeVsOpponent
}

// ParseMode accepts the mode names used by the shell.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "manual", "human", "pvp":
		return ModeManual, nil
	case "opponent", "bot", "ai", "computer":
		return ModeVsOpponent, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

type Phase string

const (
	PhaseAwaitingMove Phase = "awaiting_move"
	PhaseGameOver     Phase = "game_over"
)

var (
	ErrInvalidMode     = errors.New("invalid game mode")
	ErrNoOpponent      = errors.New("opponent mode requires a move selector")
	ErrNoMoveAvailable = errors.New("opponent found no move")
)

// humanMark is the seat the human holds in opponent mode; X always opens.
const humanMark = game.PlayerX

// Move is a single accepted placement.
type Move struct {
	Index int
	Mark  game.Cell
}

// MoveResult describes everything one cell activation changed so a UI can
// render it in one step.
type MoveResult struct {
	HumanMove    Move
	OpponentMove *Move
	Board        [game.Size]game.Cell
	Outcome      game.Outcome
	Phase        Phase
	Next         game.Cell
}

// Session is one game between a human and either another human on the same
// seat (manual) or the heuristic opponent. It is not safe for concurrent use.
type Session struct {
	mode     Mode
	board    game.Board
	phase    Phase
	current  game.Cell
	opponent bot.MoveSelector
}

// New creates a session waiting for X to move.
func New(mode Mode, opponent bot.MoveSelector) (*Session, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, string(mode))
	}
	if mode == ModeVsOpponent && opponent == nil {
		return nil, ErrNoOpponent
	}
	return &Session{
		mode:     mode,
		phase:    PhaseAwaitingMove,
		current:  game.PlayerX,
		opponent: opponent,
	}, nil
}

func (s *Session) Mode() Mode { return s.mode }
func (s *Session) Phase() Phase { return s.phase }
func (s *Session) Board() [game.Size]game.Cell { return s.board.Cells() }
func (s *Session) Outcome() game.Outcome { return s.board.Outcome() }
func (s *Session) MoveCount() int { return s.board.MoveCount() }

// CurrentPlayer is the mark expected to move next, or Empty once the game
// is over.
func (s *Session) CurrentPlayer() game.Cell {
	if s.phase == PhaseGameOver {
		return game.Empty
	}
	return s.current
}

// HandleCellActivation plays the current player at index. In opponent mode
// the reply is played in the same call. Either both moves apply or neither
// does. A finished game is rejected by the board, after the range check.
func (s *Session) HandleCellActivation(index int) (MoveResult, error) {
	snapshot := s.board.Clone()
	result := MoveResult{HumanMove: Move{Index: index, Mark: s.current}}

	if err := s.board.ApplyMove(index, s.current); err != nil {
		return MoveResult{}, err
	}

	if s.mode == ModeVsOpponent && s.board.Outcome().IsInProgress() {
		reply, err := s.playOpponent()
		if err != nil {
			s.board = snapshot
			return MoveResult{}, err
		}
		result.OpponentMove = &reply
	}

	s.advance()

	result.Board = s.board.Cells()
	result.Outcome = s.board.Outcome()
	result.Phase = s.phase
	result.Next = s.CurrentPlayer()
	return result, nil
}

// Restart discards the current game and waits for X again.
func (s *Session) Restart() {
	s.board.Reset()
	s.phase = PhaseAwaitingMove
	s.current = game.PlayerX
}

func (s *Session) playOpponent() (Move, error) {
	mark := humanMark.Opponent()
	idx, ok := s.opponent.SelectMove(s.board.Clone(), mark, humanMark)
	if !ok {
		return Move{}, ErrNoMoveAvailable
	}
	if err := s.board.ApplyMove(idx, mark); err != nil {
		return Move{}, fmt.Errorf("opponent move at %d: %w", idx, err)
	}
	return Move{Index: idx, Mark: mark}, nil
}

// advance moves the state machine after accepted moves.
func (s *Session) advance() {
	if !s.board.Outcome().IsInProgress() {
		s.phase = PhaseGameOver
		return
	}
	if s.mode == ModeManual {
		s.current = s.current.Opponent()
	}
	// Opponent mode already replied, so the human keeps the X seat.
}
