package console

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"ctchen222/tictactoe-engine/internal/game"
	"ctchen222/tictactoe-engine/internal/hub"
	"ctchen222/tictactoe-engine/internal/session"
	"ctchen222/tictactoe-engine/internal/validator"
	"ctchen222/tictactoe-engine/pkg/proto"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var ErrUnknownCommand = errors.New("unknown command")

// HandleMessage handles one input line. It acts as a dispatcher and reports
// whether the shell should stop.
func (c *Console) HandleMessage(ctx context.Context, raw []byte) (*proto.ServerToClientMessage, bool) {
	ctx, span := tracer.Start(ctx, "console.HandleMessage", trace.WithAttributes(
		attribute.String("session.id", string(c.handle)),
		attribute.String("console.dialect", string(c.dialect)),
	))
	defer span.End()

	message, err := c.decode(raw)
	if err != nil {
		slog.WarnContext(ctx, "invalid message", "session.id", c.handle, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid message format")
		return errorMessage(err), false
	}

	span.SetAttributes(attribute.String("message.type", message.Type))

	var reply *proto.ServerToClientMessage
	switch message.Type {
	case proto.TypeMove:
		reply = c.handleMove(ctx, *message.Cell)
	case proto.TypeRestart:
		reply = c.handleRestart(ctx)
	case proto.TypeNew:
		reply = c.handleNewGame(ctx, message.Mode)
	case proto.TypeState:
		reply = c.stateMessage(c.handle)
	case proto.TypeQuit:
		return &proto.ServerToClientMessage{Type: proto.TypeShutdown, Session: string(c.handle)}, true
	}

	if reply.Type == proto.TypeError {
		span.SetStatus(codes.Error, reply.Reason)
	}
	return reply, false
}

func (c *Console) decode(raw []byte) (*proto.ClientToServerMessage, error) {
	if c.dialect == DialectText {
		return parseCommand(string(raw))
	}

	var message proto.ClientToServerMessage
	if err := json.Unmarshal(raw, &message); err != nil {
		return nil, fmt.Errorf("error unmarshalling message: %w", err)
	}
	if err := validator.GetValidator().Struct(message); err != nil {
		return nil, fmt.Errorf("invalid message: %w", err)
	}
	return &message, nil
}

func (c *Console) handleMove(ctx context.Context, cell int) *proto.ServerToClientMessage {
	res, err := c.hub.HandleCellActivation(ctx, c.handle, cell)
	if err != nil {
		return errorMessage(err)
	}
	return resultMessage(c.handle, c.mode, res)
}

func (c *Console) handleRestart(ctx context.Context) *proto.ServerToClientMessage {
	if err := c.hub.HandleRestart(ctx, c.handle); err != nil {
		return errorMessage(err)
	}
	return c.stateMessage(c.handle)
}

func (c *Console) handleNewGame(ctx context.Context, modeName string) *proto.ServerToClientMessage {
	mode := c.mode
	if modeName != "" {
		parsed, err := session.ParseMode(modeName)
		if err != nil {
			return errorMessage(err)
		}
		mode = parsed
	}

	handle, err := c.hub.NewSession(ctx, mode)
	if err != nil {
		return errorMessage(err)
	}
	if err := c.hub.CloseSession(ctx, c.handle); err != nil {
		slog.WarnContext(ctx, "Failed to close previous session", "session.id", c.handle, "error", err)
	}
	c.handle = handle
	c.mode = mode
	return c.stateMessage(handle)
}

func (c *Console) stateMessage(handle hub.Handle) *proto.ServerToClientMessage {
	st, err := c.hub.CurrentState(handle)
	if err != nil {
		return errorMessage(err)
	}
	msg := &proto.ServerToClientMessage{
		Type:    proto.TypeUpdate,
		Session: string(handle),
		Mode:    string(st.Mode),
		Phase:   string(st.Phase),
		Next:    st.Next,
	}
	setBoard(msg, st.Board, st.Outcome)
	return msg
}

func resultMessage(handle hub.Handle, mode session.Mode, res session.MoveResult) *proto.ServerToClientMessage {
	msg := &proto.ServerToClientMessage{
		Type:      proto.TypeUpdate,
		Session:   string(handle),
		Mode:      string(mode),
		Phase:     string(res.Phase),
		Next:      res.Next,
		HumanMove: &proto.MoveMessage{Cell: res.HumanMove.Index, Mark: res.HumanMove.Mark},
	}
	if res.OpponentMove != nil {
		msg.OpponentMove = &proto.MoveMessage{Cell: res.OpponentMove.Index, Mark: res.OpponentMove.Mark}
	}
	setBoard(msg, res.Board, res.Outcome)
	return msg
}

func setBoard(msg *proto.ServerToClientMessage, board [game.Size]game.Cell, outcome game.Outcome) {
	msg.Board = board[:]
	msg.Outcome = string(outcome.Kind)
	if outcome.IsWon() {
		msg.Winner = outcome.Winner
		msg.WinLine = outcome.Line[:]
	}
}

func errorMessage(err error) *proto.ServerToClientMessage {
	return &proto.ServerToClientMessage{Type: proto.TypeError, Reason: err.Error()}
}

// parseCommand turns a text-dialect line into the same message the JSON
// dialect would carry.
func parseCommand(line string) (*proto.ClientToServerMessage, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return nil, ErrUnknownCommand
	}

	if cell, err := strconv.Atoi(fields[0]); err == nil {
		return &proto.ClientToServerMessage{Type: proto.TypeMove, Cell: &cell}, nil
	}

	switch fields[0] {
	case "m", "move":
		if len(fields) < 2 {
			return nil, fmt.Errorf("%w: move needs a cell", ErrUnknownCommand)
		}
		cell, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%w: bad cell %q", ErrUnknownCommand, fields[1])
		}
		return &proto.ClientToServerMessage{Type: proto.TypeMove, Cell: &cell}, nil
	case "r", "restart":
		return &proto.ClientToServerMessage{Type: proto.TypeRestart}, nil
	case "n", "new":
		msg := &proto.ClientToServerMessage{Type: proto.TypeNew}
		if len(fields) > 1 {
			msg.Mode = fields[1]
		}
		return msg, nil
	case "s", "state", "b", "board":
		return &proto.ClientToServerMessage{Type: proto.TypeState}, nil
	case "q", "quit", "exit":
		return &proto.ClientToServerMessage{Type: proto.TypeQuit}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, fields[0])
	}
}

func isHelp(line string) bool {
	switch strings.ToLower(line) {
	case "h", "help", "?":
		return true
	}
	return false
}
