package bot

import (
	"ctchen222/tictactoe-engine/internal/game"
)

// NoMove is returned as the index when the board has no free cell.
const NoMove = -1

// SelectMove determines the opponent's next cell. The board is received by
// value and every hypothetical placement happens on a scratch copy.
func (o *Opponent) SelectMove(board game.Board, self, opponent game.Cell) (int, bool) {
	free := board.EmptyCells()
	if len(free) == 0 {
		return NoMove, false
	}

	// 1. Win: Check if the bot can win in the next move
	if idx, canWin := findWinningMove(board, free, self); canWin {
		return idx, true
	}

	// 2. Block: Check if the opponent is about to win and block them
	if idx, canBlock := findWinningMove(board, free, opponent); canBlock {
		return idx, true
	}

	// 3. Random: Otherwise, make a random move
	return free[o.rng.IntN(len(free))], true
}

// findWinningMove returns the lowest free index where mark would complete a
// line.
func findWinningMove(board game.Board, free []int, mark game.Cell) (int, bool) {
	if !mark.Valid() {
		return NoMove, false
	}
	for _, idx := range free {
		scratch := board.Clone()
		if err := scratch.ApplyMove(idx, mark); err != nil {
			continue
		}
		if outcome := scratch.Outcome(); outcome.IsWon() && outcome.Winner == mark {
			return idx, true
		}
	}
	return NoMove, false
}
