package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/arena"
)

// MaxMoves bounds the number of moves a single position can generate.
const MaxMoves = 81

// GenerateMoves writes every legal move of position into moves and returns
// the span holding them. Boards are visited in row-major meta order and cells
// in row-major order, so the sequence is deterministic.
func GenerateMoves(position *Position, moves *arena.Arena[Move]) (arena.Span, error) {
	boards := candidateBoards(position)

	count := 0
	for _, index := range boards {
		if position.Boards[index].Playable() {
			count += int(position.Boards[index].Empty)
		}
	}

	span, err := moves.Allocate(count)
	if err != nil {
		return arena.Span{}, fmt.Errorf("failed to allocate moves: %w", err)
	}

	out := moves.Slice(span)
	n := 0

	for _, index := range boards {
		board := &position.Boards[index]
		if !board.Playable() {
			continue
		}

		for cell, piece := range board.Cells {
			if piece != Empty {
				continue
			}

			out[n] = NewMove(CoordOf(index), CoordOf(cell), position.Turn)
			n++
		}
	}

	return span, nil
}

// LegalMoves is GenerateMoves for callers outside the search.
func LegalMoves(position *Position) []Move {
	moves := arena.New[Move](MaxMoves)

	span, err := GenerateMoves(position, moves)
	if err != nil {
		// unreachable: a position never has more than MaxMoves empty cells
		return nil
	}

	return append([]Move(nil), moves.Slice(span)...)
}

var allBoards = []int{0, 1, 2, 3, 4, 5, 6, 7, 8}

func candidateBoards(position *Position) []int {
	if forced := position.ForcedBoard(); forced != nil {
		return allBoards[position.Forced.Index() : position.Forced.Index()+1]
	}

	return allBoards
}
