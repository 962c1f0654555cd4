package console

import (
	"fmt"
	"strconv"
	"strings"

	"ctchen222/tictactoe-engine/internal/game"
	"ctchen222/tictactoe-engine/pkg/proto"
)

const (
	colorX   = "#ef927f"
	colorO   = "#dd7f9f"
	colorWin = "#7fdd9f"
)

func (c *Console) render(msg *proto.ServerToClientMessage) string {
	var sb strings.Builder

	switch msg.Type {
	case proto.TypeError:
		sb.WriteString(c.term.String("! " + msg.Reason).Bold().String())
		sb.WriteString("\n")
		return sb.String()
	case proto.TypeShutdown:
		return "bye\n"
	}

	if msg.HumanMove != nil {
		fmt.Fprintf(&sb, "%s -> %d\n", msg.HumanMove.Mark, msg.HumanMove.Cell)
	}
	if msg.OpponentMove != nil {
		fmt.Fprintf(&sb, "%s -> %d (opponent)\n", msg.OpponentMove.Mark, msg.OpponentMove.Cell)
	}

	sb.WriteString(c.renderBoard(msg.Board, msg.WinLine))
	sb.WriteString(status(msg))
	sb.WriteString("\n")
	return sb.String()
}

func (c *Console) renderBoard(board []game.Cell, winLine []int) string {
	onLine := make(map[int]bool, len(winLine))
	for _, idx := range winLine {
		onLine[idx] = true
	}

	var sb strings.Builder
	for i, cell := range board {
		sb.WriteString(" ")
		sb.WriteString(c.cell(i, cell, onLine[i]))
		switch {
		case i == len(board)-1:
			sb.WriteString("\n")
		case game.Col(i) == 2:
			sb.WriteString("\n---+---+---\n")
		default:
			sb.WriteString(" |")
		}
	}
	return sb.String()
}

func (c *Console) cell(index int, cell game.Cell, highlighted bool) string {
	if cell == game.Empty {
		return c.term.String(strconv.Itoa(index)).Faint().String()
	}

	style := c.term.String(string(cell)).Bold()
	switch {
	case highlighted:
		style = style.Foreground(c.term.Color(colorWin)).Underline()
	case cell == game.PlayerX:
		style = style.Foreground(c.term.Color(colorX))
	case cell == game.PlayerO:
		style = style.Foreground(c.term.Color(colorO))
	}
	return style.String()
}

// status mirrors the outcome in a single line under the board.
func status(msg *proto.ServerToClientMessage) string {
	switch game.OutcomeKind(msg.Outcome) {
	case game.Won:
		return fmt.Sprintf("Player %s won! (r to restart)", msg.Winner)
	case game.Draw:
		return "It is a draw. (r to restart)"
	default:
		return fmt.Sprintf("%s to move [%s]", msg.Next, msg.Mode)
	}
}
