package hub

import (
	"context"
	"errors"
	"log/slog"

	"ctchen222/tictactoe-engine/internal/game"
	"ctchen222/tictactoe-engine/internal/session"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

var meter = otel.Meter("hub")

type hubMetrics struct {
	moves          metric.Int64Counter
	rejectedMoves  metric.Int64Counter
	gamesFinished  metric.Int64Counter
	activeSessions metric.Int64UpDownCounter
}

func newHubMetrics() *hubMetrics {
	fallback := noop.NewMeterProvider().Meter("hub")
	m := &hubMetrics{}
	var err error

	if m.moves, err = meter.Int64Counter("tictactoe.moves",
		metric.WithDescription("Accepted moves by mark")); err != nil {
		slog.Warn("Failed to create moves counter", "error", err)
		m.moves, _ = fallback.Int64Counter("tictactoe.moves")
	}
	if m.rejectedMoves, err = meter.Int64Counter("tictactoe.moves.rejected",
		metric.WithDescription("Rejected moves by reason")); err != nil {
		slog.Warn("Failed to create rejected moves counter", "error", err)
		m.rejectedMoves, _ = fallback.Int64Counter("tictactoe.moves.rejected")
	}
	if m.gamesFinished, err = meter.Int64Counter("tictactoe.games",
		metric.WithDescription("Finished games by result")); err != nil {
		slog.Warn("Failed to create games counter", "error", err)
		m.gamesFinished, _ = fallback.Int64Counter("tictactoe.games")
	}
	if m.activeSessions, err = meter.Int64UpDownCounter("tictactoe.sessions.active",
		metric.WithDescription("Open sessions by mode")); err != nil {
		slog.Warn("Failed to create sessions counter", "error", err)
		m.activeSessions, _ = fallback.Int64UpDownCounter("tictactoe.sessions.active")
	}
	return m
}

func (m *hubMetrics) sessionOpened(ctx context.Context, mode session.Mode) {
	m.activeSessions.Add(ctx, 1, metric.WithAttributes(attribute.String("game.mode", string(mode))))
}

func (m *hubMetrics) sessionClosed(ctx context.Context, mode session.Mode) {
	m.activeSessions.Add(ctx, -1, metric.WithAttributes(attribute.String("game.mode", string(mode))))
}

func (m *hubMetrics) moveApplied(ctx context.Context, mark game.Cell) {
	m.moves.Add(ctx, 1, metric.WithAttributes(attribute.String("player.mark", string(mark))))
}

func (m *hubMetrics) moveRejected(ctx context.Context, err error) {
	m.rejectedMoves.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", rejectReason(err))))
}

func (m *hubMetrics) gameFinished(ctx context.Context, outcome game.Outcome) {
	result := string(outcome.Kind)
	if outcome.IsWon() {
		result = "won_" + string(outcome.Winner)
	}
	m.gamesFinished.Add(ctx, 1, metric.WithAttributes(attribute.String("game.result", result)))
}

func (m *hubMetrics) gameAbandoned(ctx context.Context) {
	m.gamesFinished.Add(ctx, 1, metric.WithAttributes(attribute.String("game.result", "abandoned")))
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, game.ErrOutOfRange):
		return "out_of_range"
	case errors.Is(err, game.ErrCellOccupied):
		return "cell_occupied"
	case errors.Is(err, game.ErrGameAlreadyOver):
		return "game_over"
	default:
		return "other"
	}
}
