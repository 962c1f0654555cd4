package bot

import (
	"math/rand/v2"
	"testing"

	"ctchen222/tictactoe-engine/internal/game"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ MoveSelector = (*Opponent)(nil)

func TestNewSeeded_Deterministic(t *testing.T) {
	var empty game.Board

	for _, seed := range []uint64{0, 1, 42, 1 << 40} {
		want, ok := NewSeeded(seed).SelectMove(empty, game.PlayerO, game.PlayerX)
		require.True(t, ok)
		assert.GreaterOrEqual(t, want, game.IndexMin)
		assert.LessOrEqual(t, want, game.IndexMax)

		for range 10 {
			got, _ := NewSeeded(seed).SelectMove(empty, game.PlayerO, game.PlayerX)
			assert.Equal(t, want, got, "seed %d", seed)
		}
	}
}

func TestNew_UsesInjectedSource(t *testing.T) {
	var empty game.Board

	a := New(rand.New(rand.NewPCG(5, 6)))
	b := New(rand.New(rand.NewPCG(5, 6)))

	for range 20 {
		ia, _ := a.SelectMove(empty, game.PlayerO, game.PlayerX)
		ib, _ := b.SelectMove(empty, game.PlayerO, game.PlayerX)
		assert.Equal(t, ia, ib)
	}
}

func TestNew_NilSource(t *testing.T) {
	o := New(nil)
	require.NotNil(t, o.rng)

	var empty game.Board
	idx, ok := o.SelectMove(empty, game.PlayerO, game.PlayerX)
	assert.True(t, ok)
	assert.Contains(t, empty.EmptyCells(), idx)
}

func TestSelectMove_FallbackOnlyPicksEmptyCells(t *testing.T) {
	b := game.NewBoard()
	require.NoError(t, b.ApplyMove(4, game.PlayerX))
	free := b.EmptyCells()

	o := NewSeeded(11)
	seen := map[int]bool{}
	for range 200 {
		idx, ok := o.SelectMove(*b, game.PlayerO, game.PlayerX)
		require.True(t, ok)
		assert.Contains(t, free, idx)
		seen[idx] = true
	}
	// Every free cell should come up over enough draws.
	assert.Len(t, seen, len(free))
}
