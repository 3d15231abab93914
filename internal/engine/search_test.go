package engine

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/arena"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/tictactoe"
)

func newTestEngine(opts ...Option) *Engine {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return New(logger, opts...)
}

// minimax is a plain search without pruning or arenas, scoring positions the
// same way the engine does.
func minimax(position *tictactoe.Position, depth int, perspective tictactoe.Piece) int {
	switch outcome := position.MetaOutcome(); outcome {
	case tictactoe.Draw:
		return 0
	case tictactoe.XWins, tictactoe.OWins:
		if outcome.Winner() == perspective {
			return WinScore * (depth + 1)
		}
		return -WinScore * (depth + 1)
	}

	if depth == 0 {
		return EvaluatePosition(position, perspective)
	}

	moves := tictactoe.LegalMoves(position)
	if len(moves) == 0 {
		return EvaluatePosition(position, perspective)
	}

	maximizing := position.Turn == perspective

	best := infinity
	if maximizing {
		best = -infinity
	}

	for i := range moves {
		tictactoe.ApplyMove(position, &moves[i])
		score := minimax(position, depth-1, perspective)
		tictactoe.RevertMove(position, &moves[i])

		if maximizing {
			best = max(best, score)
		} else {
			best = min(best, score)
		}
	}

	return best
}

func minimaxRoot(position *tictactoe.Position, depth int) (tictactoe.Move, int) {
	moves := tictactoe.LegalMoves(position)

	best, bestIndex := -infinity, 0
	for i := range moves {
		tictactoe.ApplyMove(position, &moves[i])
		score := minimax(position, depth-1, moves[i].Piece)
		tictactoe.RevertMove(position, &moves[i])

		if score > best {
			best, bestIndex = score, i
		}
	}

	return moves[bestIndex], best
}

// playout advances the opening position by a fixed move choice.
func playout(plies int) tictactoe.Position {
	position := tictactoe.NewPosition()
	for ply := 0; ply < plies && position.MetaOutcome() == tictactoe.Undecided; ply++ {
		moves := tictactoe.LegalMoves(&position)
		tictactoe.ApplyMove(&position, &moves[(ply*5+2)%len(moves)])
	}

	return position
}

func TestEngine_BestMove_MatchesMinimax(t *testing.T) {
	testCases := []struct {
		name  string
		plies int
		depth int
	}{
		{name: "opening at depth 3", plies: 0, depth: 3},
		{name: "after one move at depth 4", plies: 1, depth: 4},
		{name: "early middle game at depth 4", plies: 6, depth: 4},
		{name: "later middle game at depth 4", plies: 14, depth: 4},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Given: a position reached by a fixed playout
			position := playout(tc.plies)
			require.Equal(t, tictactoe.Undecided, position.MetaOutcome())

			// When: the engine and an unpruned minimax search it
			result, err := newTestEngine(WithDepth(tc.depth)).BestMove(&position)
			require.NoError(t, err)

			expectedMove, expectedScore := minimaxRoot(&position, tc.depth)

			// Then: both agree on the score and on the first best move
			assert.Equal(t, expectedScore, result.Score)
			assert.Equal(t, expectedMove.Board, result.Move.Board)
			assert.Equal(t, expectedMove.Cell, result.Move.Cell)
			assert.Equal(t, position.Turn, result.Move.Piece)
		})
	}
}

func TestEngine_BestMove(t *testing.T) {
	t.Run("Takes an immediate meta win", func(t *testing.T) {
		// Given: X owns boards (0,0) and (1,0) and holds both side cells of the
		// middle row of the forced board (2,0)
		position := tictactoe.NewPosition()
		position.Boards[0].Outcome = tictactoe.XWins
		position.Boards[1].Outcome = tictactoe.XWins
		position.Boards[2] = subBoard(
			e, e, e,
			x, e, x,
			e, e, e,
		)
		position.Boards[7] = subBoard(
			o, e, e,
			e, o, e,
			e, e, e,
		)
		position.Forced = tictactoe.Coord{X: 2, Y: 0}

		// When: searching at depth 3
		result, err := newTestEngine(WithDepth(3)).BestMove(&position)
		require.NoError(t, err)

		// Then: X completes the board, and with it the top meta row, right away
		assert.Equal(t, tictactoe.Coord{X: 2, Y: 0}, result.Move.Board)
		assert.Equal(t, tictactoe.Coord{X: 1, Y: 1}, result.Move.Cell)
		assert.Equal(t, WinScore*3, result.Score)
	})

	t.Run("Does not modify the searched position", func(t *testing.T) {
		position := playout(9)
		before := position

		_, err := newTestEngine(WithDepth(4)).BestMove(&position)
		require.NoError(t, err)

		assert.Equal(t, before, position)
	})

	t.Run("Same position gives the same answer", func(t *testing.T) {
		position := playout(5)
		engine := newTestEngine(WithDepth(4))

		first, err := engine.BestMove(&position)
		require.NoError(t, err)
		second, err := engine.BestMove(&position)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("Arenas are empty after a search", func(t *testing.T) {
		position := playout(3)
		engine := newTestEngine(WithDepth(4))

		result, err := engine.BestMove(&position)
		require.NoError(t, err)

		moves, positions := RequiredCapacity(4)
		assert.Equal(t, 0, engine.moves.Len())
		assert.Equal(t, 0, engine.positions.Len())
		assert.Positive(t, result.Stats.Nodes)
		assert.LessOrEqual(t, result.Stats.MovePeak, moves)
		assert.LessOrEqual(t, result.Stats.PositionPeak, positions)
	})

	t.Run("Undersized arenas abort the search", func(t *testing.T) {
		// Given: room for the root moves and a single clone only
		position := tictactoe.NewPosition()
		before := position
		engine := newTestEngine(WithDepth(3), WithArenaCapacity(tictactoe.MaxMoves, 1))

		// When: searching
		_, err := engine.BestMove(&position)

		// Then: the overflow surfaces and the position is untouched
		require.ErrorIs(t, err, arena.ErrOverflow)
		assert.Equal(t, before, position)
	})

	t.Run("Position without moves is reported", func(t *testing.T) {
		position := tictactoe.NewPosition()
		for i := range position.Boards {
			position.Boards[i].Outcome = tictactoe.Draw
		}

		_, err := newTestEngine().BestMove(&position)

		require.ErrorIs(t, err, ErrNoMoves)
	})
}

func TestRequiredCapacity(t *testing.T) {
	moves, positions := RequiredCapacity(DefaultDepth)

	assert.Equal(t, 81*6, moves)
	assert.Equal(t, 6, positions)

	moves, positions = RequiredCapacity(0)
	assert.Equal(t, 81, moves)
	assert.Equal(t, 1, positions)
}
