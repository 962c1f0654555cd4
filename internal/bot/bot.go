package bot

import (
	"math/rand/v2"
	"time"

	"ctchen222/tictactoe-engine/internal/game"
)

//go:generate mockgen -source=bot.go -destination=mocks/mock_bot.go -package=mocks

// MoveSelector is an agent that can choose a cell for a player.
type MoveSelector interface {
	SelectMove(board game.Board, self, opponent game.Cell) (index int, ok bool)
}

// Opponent is the single-ply heuristic player: win if it can, block if it
// must, otherwise pick a random free cell.
type Opponent struct {
	rng *rand.Rand
}

// New creates an Opponent drawing fallback moves from rng. A nil rng uses a
// time-seeded source.
func New(rng *rand.Rand) *Opponent {
	if rng == nil {
		return NewSeeded(uint64(time.Now().UnixNano()))
	}
	return &Opponent{rng: rng}
}

// NewSeeded creates an Opponent whose random fallback is reproducible for a
// given seed.
func NewSeeded(seed uint64) *Opponent {
	return &Opponent{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}
