package tictactoe

// WinCombos lists the 8 lines of a 3x3 grid as row-major indices:
// rows, then columns, then the two diagonals.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// SubBoard is one of the nine small boards. Empty always equals the number of
// Empty cells; once Outcome is decided the board accepts no further moves.
type SubBoard struct {
	Outcome Outcome  `json:"outcome"`
	Empty   uint8    `json:"empty"`
	Cells   [9]Piece `json:"cells"`
}

func NewSubBoard() SubBoard {
	return SubBoard{
		Outcome: Undecided,
		Empty:   9,
	}
}

func (that *SubBoard) Cell(c Coord) Piece {
	return that.Cells[c.Index()]
}

// Playable reports whether a move can still land on the board.
func (that *SubBoard) Playable() bool {
	return that.Outcome == Undecided && that.Empty > 0
}

// Resolve recomputes Outcome from the cells. It must run once after every
// placement on this board.
func (that *SubBoard) Resolve() {
	for _, combo := range WinCombos {
		a, b, c := that.Cells[combo[0]], that.Cells[combo[1]], that.Cells[combo[2]]
		if a != Empty && a == b && b == c {
			that.Outcome = WinFor(a)
			return
		}
	}

	if that.Empty == 0 {
		that.Outcome = Draw
		return
	}

	that.Outcome = Undecided
}
