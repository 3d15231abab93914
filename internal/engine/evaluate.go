package engine

import "github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/tictactoe"

const (
	// WinScore is the static value of a won game.
	WinScore = 1_000_000

	subBoardWinScore = 1000
	cellLineWeight   = 10
	boardLineWeight  = 100
)

// EvaluateSubBoard scores a single sub-board for perspective. A won board is
// worth ±1000; otherwise each open line contributes by how many of its cells
// one side holds. Drawn boards are scored by their lines.
func EvaluateSubBoard(board *tictactoe.SubBoard, perspective tictactoe.Piece) int {
	switch board.Outcome {
	case tictactoe.XWins, tictactoe.OWins:
		if board.Outcome.Winner() == perspective {
			return subBoardWinScore
		}
		return -subBoardWinScore
	}

	total := 0
	for _, combo := range tictactoe.WinCombos {
		own, other := 0, 0
		for _, index := range combo {
			switch board.Cells[index] {
			case tictactoe.Empty:
			case perspective:
				own++
			default:
				other++
			}
		}

		total += scoreLine(own, other, cellLineWeight)
	}

	return total
}

// EvaluatePosition is the static evaluation used at the search horizon.
func EvaluatePosition(position *tictactoe.Position, perspective tictactoe.Piece) int {
	switch outcome := position.MetaOutcome(); outcome {
	case tictactoe.Draw:
		return 0
	case tictactoe.XWins, tictactoe.OWins:
		if outcome.Winner() == perspective {
			return WinScore
		}
		return -WinScore
	}

	total := 0
	for i := range position.Boards {
		total += EvaluateSubBoard(&position.Boards[i], perspective)
	}

	win := tictactoe.WinFor(perspective)
	for _, combo := range tictactoe.WinCombos {
		own, other := 0, 0
		for _, index := range combo {
			switch outcome := position.Boards[index].Outcome; {
			case outcome == win:
				own++
			case outcome == tictactoe.XWins || outcome == tictactoe.OWins:
				other++
			}
		}

		total += scoreLine(own, other, boardLineWeight)
	}

	return total
}

// scoreLine rates a line holding own and other pieces: contested and empty
// lines are worth nothing, one piece is worth base and two are worth 10*base.
func scoreLine(own, other, base int) int {
	switch {
	case own > 0 && other > 0:
		return 0
	case own == 1:
		return base
	case own == 2:
		return base * 10
	case other == 1:
		return -base
	case other == 2:
		return -base * 10
	default:
		return 0
	}
}
