package tictactoe

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/apperror"
)

var (
	ErrInvalidCell   = errors.New("invalid board or cell coordinates")
	ErrBoardResolved = errors.New("board is already resolved")
	ErrWrongBoard    = errors.New("move must be played in the forced board")
)

// Move is one ply. PrevForced is filled in by ApplyMove so the move can be
// reverted; nothing else changes after creation.
type Move struct {
	PrevForced Coord `json:"prev_forced"`
	Board      Coord `json:"board"`
	Cell       Coord `json:"cell"`
	Piece      Piece `json:"piece"`
}

func NewMove(board, cell Coord, piece Piece) Move {
	return Move{
		PrevForced: AnyBoard,
		Board:      board,
		Cell:       cell,
		Piece:      piece,
	}
}

func (that Move) String() string {
	return fmt.Sprintf("%s board %s cell %s", that.Piece, that.Board, that.Cell)
}

// Validate explains why a move is illegal in position, or returns nil.
func Validate(position *Position, move *Move) error {
	if !move.Board.Valid() || !move.Cell.Valid() {
		return fmt.Errorf("%w: board %s cell %s", ErrInvalidCell, move.Board, move.Cell)
	}

	if move.Piece != position.Turn {
		return apperror.ErrNotYourTurn
	}

	board := position.Board(move.Board)
	if board.Outcome != Undecided {
		return ErrBoardResolved
	}

	if board.Cell(move.Cell) != Empty {
		return apperror.ErrCellOccupied
	}

	if forced := position.ForcedBoard(); forced != nil && move.Board != position.Forced {
		return fmt.Errorf("%w: %s", ErrWrongBoard, position.Forced)
	}

	return nil
}

func IsLegal(position *Position, move *Move) bool {
	return Validate(position, move) == nil
}

// ApplyMove plays a legal move. Illegal moves silently break the position's
// invariants, so callers must check IsLegal first.
func ApplyMove(position *Position, move *Move) {
	board := position.Board(move.Board)

	move.PrevForced = position.Forced

	board.Cells[move.Cell.Index()] = move.Piece
	board.Empty--

	position.Forced = move.Cell
	position.Turn = position.Turn.Opponent()

	board.Resolve()
}

// RevertMove undoes ApplyMove. The touched board always goes back to
// Undecided: a decided board can only have been decided by the move being
// undone, since decided boards accept no moves.
func RevertMove(position *Position, move *Move) {
	board := position.Board(move.Board)

	board.Cells[move.Cell.Index()] = Empty
	board.Empty++

	position.Forced = move.PrevForced
	position.Turn = position.Turn.Opponent()

	board.Outcome = Undecided
}
