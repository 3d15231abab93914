package tictactoe

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownPiece   = errors.New("unknown piece")
	ErrUnknownOutcome = errors.New("unknown board outcome")
)

// Piece is the content of a cell and also names the side to move.
type Piece uint8

const (
	Empty Piece = iota
	PlayerX
	PlayerO
)

const (
	markX = "X"
	markO = "O"
)

// Opponent returns the other player. Empty has no opponent.
func (that Piece) Opponent() Piece {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return Empty
	}
}

func (that Piece) String() string {
	switch that {
	case PlayerX:
		return markX
	case PlayerO:
		return markO
	default:
		return ""
	}
}

func (that Piece) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Piece) UnmarshalText(text []byte) error {
	piece, err := ParsePiece(string(text))
	if err != nil {
		return err
	}

	*that = piece

	return nil
}

// ParsePiece maps a player mark ("X", "O" or "") to a Piece.
func ParsePiece(mark string) (Piece, error) {
	switch mark {
	case markX:
		return PlayerX, nil
	case markO:
		return PlayerO, nil
	case "":
		return Empty, nil
	default:
		return Empty, fmt.Errorf("%w: %q", ErrUnknownPiece, mark)
	}
}

// Outcome is the resolution state of a sub-board or of the meta-board.
type Outcome uint8

const (
	Undecided Outcome = iota
	XWins
	OWins
	Draw
)

var outcomeNames = map[Outcome]string{
	Undecided: "undecided",
	XWins:     "x",
	OWins:     "o",
	Draw:      "draw",
}

// WinFor returns the winning outcome of piece.
func WinFor(piece Piece) Outcome {
	switch piece {
	case PlayerX:
		return XWins
	case PlayerO:
		return OWins
	default:
		return Undecided
	}
}

// Winner returns the piece that owns a won outcome, Empty otherwise.
func (that Outcome) Winner() Piece {
	switch that {
	case XWins:
		return PlayerX
	case OWins:
		return PlayerO
	default:
		return Empty
	}
}

func (that Outcome) IsDecided() bool {
	return that != Undecided
}

func (that Outcome) String() string {
	if name, ok := outcomeNames[that]; ok {
		return name
	}

	return fmt.Sprintf("outcome(%d)", uint8(that))
}

func (that Outcome) MarshalText() ([]byte, error) {
	name, ok := outcomeNames[that]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownOutcome, that)
	}

	return []byte(name), nil
}

func (that *Outcome) UnmarshalText(text []byte) error {
	for outcome, name := range outcomeNames {
		if name == string(text) {
			*that = outcome
			return nil
		}
	}

	return fmt.Errorf("%w: %q", ErrUnknownOutcome, text)
}

// Coord addresses a sub-board in the meta grid or a cell in a sub-board.
type Coord struct {
	X uint8 `json:"x"`
	Y uint8 `json:"y"`
}

// AnyBoard is the forced-board sentinel: the next move may target any sub-board.
var AnyBoard = Coord{X: 0xFF, Y: 0xFF}

// CoordOf returns the coordinate of a row-major index in 0..8.
func CoordOf(index int) Coord {
	return Coord{X: uint8(index % 3), Y: uint8(index / 3)} //nolint: gosec // index is in 0..8
}

func (that Coord) Valid() bool {
	return that.X < 3 && that.Y < 3
}

// Index returns the row-major index of a valid coordinate.
func (that Coord) Index() int {
	return int(that.Y)*3 + int(that.X)
}

func (that Coord) String() string {
	if that == AnyBoard {
		return "any"
	}

	return fmt.Sprintf("(%d,%d)", that.X, that.Y)
}
