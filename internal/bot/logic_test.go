package bot

import (
	"testing"

	"ctchen222/tictactoe-engine/internal/game"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	X = game.PlayerX
	O = game.PlayerO
	E = game.Empty
)

func boardOf(t *testing.T, cells [game.Size]game.Cell) game.Board {
	t.Helper()
	b, err := game.FromCells(cells)
	require.NoError(t, err)
	return b
}

func TestFindWinningMove(t *testing.T) {
	tests := []struct {
		name      string
		board     [game.Size]game.Cell
		mark      game.Cell
		wantIndex int
		wantFound bool
	}{
		{
			name:      "No winning move - empty board",
			board:     [game.Size]game.Cell{},
			mark:      X,
			wantIndex: NoMove, wantFound: false,
		},
		{
			name: "X can win - first row",
			board: [game.Size]game.Cell{
				X, X, E,
				O, O, E,
				E, E, E,
			},
			mark:      X,
			wantIndex: 2, wantFound: true,
		},
		{
			name: "O can win - second column",
			board: [game.Size]game.Cell{
				X, O, E,
				X, O, E,
				E, E, E,
			},
			mark:      O,
			wantIndex: 7, wantFound: true,
		},
		{
			name: "X can win - main diagonal gap in the middle",
			board: [game.Size]game.Cell{
				X, O, E,
				E, E, O,
				E, E, X,
			},
			mark:      X,
			wantIndex: 4, wantFound: true,
		},
		{
			name: "O can win - anti-diagonal",
			board: [game.Size]game.Cell{
				E, E, O,
				E, O, E,
				E, X, X,
			},
			mark:      O,
			wantIndex: 6, wantFound: true,
		},
		{
			name: "Two winning cells - lowest index first",
			board: [game.Size]game.Cell{
				X, E, E,
				X, O, O,
				E, O, X,
			},
			mark:      O,
			wantIndex: 1, wantFound: true,
		},
		{
			name: "Full board, no win possible",
			board: [game.Size]game.Cell{
				X, O, X,
				O, X, O,
				O, X, O,
			},
			mark:      X,
			wantIndex: NoMove, wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := boardOf(t, tt.board)
			idx, found := findWinningMove(b, b.EmptyCells(), tt.mark)
			if found != tt.wantFound || idx != tt.wantIndex {
				t.Errorf("findWinningMove() got (%d, %v), want (%d, %v)", idx, found, tt.wantIndex, tt.wantFound)
			}
		})
	}
}

func TestSelectMove_WinNow(t *testing.T) {
	b := boardOf(t, [game.Size]game.Cell{
		O, O, E,
		X, X, E,
		E, E, E,
	})

	idx, ok := NewSeeded(1).SelectMove(b, O, X)

	require.True(t, ok)
	assert.Equal(t, 2, idx, "should complete its own row before blocking X at 5")
}

func TestSelectMove_Block(t *testing.T) {
	b := boardOf(t, [game.Size]game.Cell{
		X, X, E,
		E, E, E,
		E, E, E,
	})

	idx, ok := NewSeeded(1).SelectMove(b, O, X)

	require.True(t, ok)
	assert.Equal(t, 2, idx)
}

func TestSelectMove_PrefersWinOverBlock(t *testing.T) {
	b := boardOf(t, [game.Size]game.Cell{
		X, X, E,
		E, E, E,
		O, O, E,
	})

	idx, ok := NewSeeded(7).SelectMove(b, O, X)

	require.True(t, ok)
	assert.Equal(t, 8, idx)
}

func TestSelectMove_DoesNotMutateBoard(t *testing.T) {
	b := boardOf(t, [game.Size]game.Cell{
		X, X, E,
		O, E, E,
		E, E, E,
	})
	before := b.Cells()

	_, _ = NewSeeded(3).SelectMove(b, O, X)

	assert.Equal(t, before, b.Cells())
	assert.Equal(t, 3, b.MoveCount())
}

func TestSelectMove_FullBoard(t *testing.T) {
	b := boardOf(t, [game.Size]game.Cell{
		X, O, X,
		X, O, O,
		O, X, X,
	})

	idx, ok := NewSeeded(3).SelectMove(b, O, X)

	assert.False(t, ok)
	assert.Equal(t, NoMove, idx)
}

func TestSelectMove_OnlyOneSpotLeft(t *testing.T) {
	b := boardOf(t, [game.Size]game.Cell{
		X, O, X,
		O, X, O,
		O, E, O,
	})

	idx, ok := NewSeeded(9).SelectMove(b, X, O)

	require.True(t, ok)
	assert.Equal(t, 7, idx)
}
