package proto

import "ctchen222/tictactoe-engine/internal/game"

// Client message types
const (
	TypeMove    = "move"
	TypeRestart = "restart"
	TypeNew     = "new"
	TypeState   = "state"
	TypeQuit    = "quit"
)

// Server message types
const (
	TypeUpdate   = "update"
	TypeError    = "error"
	TypeShutdown = "shutdown"
)

// ClientToServerMessage represents an intent sent by the UI shell.
type ClientToServerMessage struct {
	Type string `json:"type" validate:"required,oneof=move restart new state quit"`
	Cell *int   `json:"cell,omitempty" validate:"required_if=Type move"`
	Mode string `json:"mode,omitempty" validate:"omitempty,gamemode"`
}

// MoveMessage is one placement inside an update.
type MoveMessage struct {
	Cell int       `json:"cell"`
	Mark game.Cell `json:"mark"`
}

// ServerToClientMessage carries the full board projection after every call,
// so a UI never has to patch its own copy.
type ServerToClientMessage struct {
	Type         string       `json:"type" validate:"required"`
	Reason       string       `json:"reason,omitempty"`
	Session      string       `json:"session,omitempty"`
	Mode         string       `json:"mode,omitempty"`
	Board        []game.Cell  `json:"board,omitempty"`
	Next         game.Cell    `json:"next,omitempty"`
	Phase        string       `json:"phase,omitempty"`
	Outcome      string       `json:"outcome,omitempty"`
	Winner       game.Cell    `json:"winner,omitempty"`
	WinLine      []int        `json:"winLine,omitempty"`
	HumanMove    *MoveMessage `json:"humanMove,omitempty"`
	OpponentMove *MoveMessage `json:"opponentMove,omitempty"`
}
