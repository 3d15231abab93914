package tictactoe

// Position is a full game state: the meta grid of sub-boards, the side to move
// and the sub-board the next move is forced into.
//
// Forced is AnyBoard before the first move. After a move it holds the played
// cell's coordinates, even when that sub-board is already resolved; move
// generation and legality treat a resolved forced board as "any board".
type Position struct {
	Forced Coord       `json:"forced"`
	Turn   Piece       `json:"turn"`
	Boards [9]SubBoard `json:"boards"`
}

// NewPosition returns the opening position with X to move.
func NewPosition() Position {
	position := Position{
		Forced: AnyBoard,
		Turn:   PlayerX,
	}

	for i := range position.Boards {
		position.Boards[i] = NewSubBoard()
	}

	return position
}

func (that *Position) Board(c Coord) *SubBoard {
	return &that.Boards[c.Index()]
}

// ForcedBoard returns the sub-board the next move must target, or nil when any
// playable sub-board may be chosen.
func (that *Position) ForcedBoard() *SubBoard {
	if that.Forced == AnyBoard {
		return nil
	}

	board := that.Board(that.Forced)
	if !board.Playable() {
		return nil
	}

	return board
}

// MetaOutcome resolves the meta-board from the sub-board outcomes. Only won
// sub-boards take part in lines; a drawn sub-board blocks every line through it.
func (that *Position) MetaOutcome() Outcome {
	for _, combo := range WinCombos {
		a := that.Boards[combo[0]].Outcome
		b := that.Boards[combo[1]].Outcome
		c := that.Boards[combo[2]].Outcome

		if (a == XWins || a == OWins) && a == b && b == c {
			return a
		}
	}

	for i := range that.Boards {
		if that.Boards[i].Outcome == Undecided {
			return Undecided
		}
	}

	return Draw
}
