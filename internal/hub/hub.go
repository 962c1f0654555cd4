package hub

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"ctchen222/tictactoe-engine/internal/bot"
	"ctchen222/tictactoe-engine/internal/game"
	"ctchen222/tictactoe-engine/internal/session"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("hub")

var ErrSessionNotFound = errors.New("session not found")

// Handle identifies a session owned by the hub.
type Handle string

// OpponentFactory builds the move selector for a new opponent-mode session.
type OpponentFactory func() bot.MoveSelector

// State is the renderable projection of a session.
type State struct {
	Mode    session.Mode
	Board   [game.Size]game.Cell
	Outcome game.Outcome
	Phase   session.Phase
	Next    game.Cell
}

// Hub manages all the sessions of one process.
type Hub struct {
	mu          sync.Mutex
	sessions    map[Handle]*session.Session
	newOpponent OpponentFactory
	metrics     *hubMetrics
}

// NewHub creates a new hub. A nil factory gives every session a
// time-seeded opponent.
func NewHub(newOpponent OpponentFactory) *Hub {
	if newOpponent == nil {
		newOpponent = func() bot.MoveSelector { return bot.New(nil) }
	}
	return &Hub{
		sessions:    make(map[Handle]*session.Session),
		newOpponent: newOpponent,
		metrics:     newHubMetrics(),
	}
}

// SeededOpponents gives the n-th session an opponent seeded with seed+n, so
// a whole run is reproducible. A zero seed falls back to time seeding.
func SeededOpponents(seed uint64) OpponentFactory {
	if seed == 0 {
		return nil
	}
	var n uint64
	return func() bot.MoveSelector {
		n++
		return bot.NewSeeded(seed + n - 1)
	}
}

// NewSession starts a game in the given mode and returns its handle.
func (h *Hub) NewSession(ctx context.Context, mode session.Mode) (Handle, error) {
	ctx, span := tracer.Start(ctx, "hub.NewSession", trace.WithAttributes(
		attribute.String("game.mode", string(mode)),
	))
	defer span.End()

	h.mu.Lock()
	defer h.mu.Unlock()

	var opponent bot.MoveSelector
	if mode == session.ModeVsOpponent {
		opponent = h.newOpponent()
	}
	s, err := session.New(mode, opponent)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create session")
		return "", err
	}

	handle := Handle(uuid.New().String())
	h.sessions[handle] = s
	h.metrics.sessionOpened(ctx, mode)

	span.SetAttributes(attribute.String("session.id", string(handle)))
	slog.InfoContext(ctx, "Session created", "session.id", handle, "game.mode", mode)
	return handle, nil
}

// HandleCellActivation applies the human move at index and, in opponent
// mode, the opponent's reply.
func (h *Hub) HandleCellActivation(ctx context.Context, handle Handle, index int) (session.MoveResult, error) {
	ctx, span := tracer.Start(ctx, "hub.HandleCellActivation", trace.WithAttributes(
		attribute.String("session.id", string(handle)),
		attribute.Int("cell.index", index),
	))
	defer span.End()

	h.mu.Lock()
	defer h.mu.Unlock()

	s, err := h.lookup(handle)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Session not found")
		return session.MoveResult{}, err
	}

	res, err := s.HandleCellActivation(index)
	if err != nil {
		slog.WarnContext(ctx, "Move rejected", "session.id", handle, "cell.index", index, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Move rejected")
		h.metrics.moveRejected(ctx, err)
		return session.MoveResult{}, err
	}

	h.metrics.moveApplied(ctx, res.HumanMove.Mark)
	if res.OpponentMove != nil {
		h.metrics.moveApplied(ctx, res.OpponentMove.Mark)
		span.SetAttributes(attribute.Int("opponent.cell.index", res.OpponentMove.Index))
		slog.DebugContext(ctx, "Opponent replied", "session.id", handle, "cell.index", res.OpponentMove.Index)
	}
	if res.Phase == session.PhaseGameOver {
		h.metrics.gameFinished(ctx, res.Outcome)
		span.SetAttributes(attribute.String("game.outcome", res.Outcome.String()))
		slog.InfoContext(ctx, "Game over", "session.id", handle, "game.outcome", res.Outcome.String())
	}
	return res, nil
}

// HandleRestart resets the session to a fresh board with X to move.
func (h *Hub) HandleRestart(ctx context.Context, handle Handle) error {
	ctx, span := tracer.Start(ctx, "hub.HandleRestart", trace.WithAttributes(
		attribute.String("session.id", string(handle)),
	))
	defer span.End()

	h.mu.Lock()
	defer h.mu.Unlock()

	s, err := h.lookup(handle)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Session not found")
		return err
	}
	if unfinished(s) {
		h.metrics.gameAbandoned(ctx)
	}
	s.Restart()

	slog.InfoContext(ctx, "Session restarted", "session.id", handle)
	return nil
}

// CloseSession forgets the session. Closing an unknown handle is an error.
func (h *Hub) CloseSession(ctx context.Context, handle Handle) error {
	ctx, span := tracer.Start(ctx, "hub.CloseSession", trace.WithAttributes(
		attribute.String("session.id", string(handle)),
	))
	defer span.End()

	h.mu.Lock()
	defer h.mu.Unlock()

	s, err := h.lookup(handle)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Session not found")
		return err
	}
	if unfinished(s) {
		h.metrics.gameAbandoned(ctx)
	}
	delete(h.sessions, handle)
	h.metrics.sessionClosed(ctx, s.Mode())

	slog.InfoContext(ctx, "Session closed", "session.id", handle)
	return nil
}

// CurrentBoard returns the nine cells for rendering.
func (h *Hub) CurrentBoard(handle Handle) ([game.Size]game.Cell, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, err := h.lookup(handle)
	if err != nil {
		return [game.Size]game.Cell{}, err
	}
	return s.Board(), nil
}

func (h *Hub) CurrentOutcome(handle Handle) (game.Outcome, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, err := h.lookup(handle)
	if err != nil {
		return game.Outcome{}, err
	}
	return s.Outcome(), nil
}

// CurrentState returns everything a UI needs to draw the session.
func (h *Hub) CurrentState(handle Handle) (State, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, err := h.lookup(handle)
	if err != nil {
		return State{}, err
	}
	return State{
		Mode:    s.Mode(),
		Board:   s.Board(),
		Outcome: s.Outcome(),
		Phase:   s.Phase(),
		Next:    s.CurrentPlayer(),
	}, nil
}

// Len reports the number of open sessions.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// unfinished reports whether s holds a started game nobody has won or drawn.
func unfinished(s *session.Session) bool {
	return s.Phase() == session.PhaseAwaitingMove && s.MoveCount() > 0
}

func (h *Hub) lookup(handle Handle) (*session.Session, error) {
	s, ok := h.sessions[handle]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, handle)
	}
	return s, nil
}
