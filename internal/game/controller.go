package game

import (
	"fmt"

	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/apperror"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/engine"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/tictactoe"
)

type searcher interface {
	BestMove(position *tictactoe.Position) (engine.Result, error)
}

// Controller owns the single live position of one game and is the only place
// where that position changes.
type Controller struct {
	position tictactoe.Position
	lastMove *tictactoe.Move
	engine   searcher
}

func NewController(bot searcher) *Controller {
	return &Controller{
		position: tictactoe.NewPosition(),
		engine:   bot,
	}
}

// Restore rebuilds a controller around a position saved earlier.
func Restore(position tictactoe.Position, lastMove *tictactoe.Move, bot searcher) *Controller {
	controller := &Controller{
		position: position,
		engine:   bot,
	}

	if lastMove != nil {
		move := *lastMove
		controller.lastMove = &move
	}

	return controller
}

// Position returns a copy of the live position.
func (that *Controller) Position() tictactoe.Position {
	return that.position
}

// SubmitHumanMove plays the side to move at board/cell. Illegal input is
// rejected without touching the position.
func (that *Controller) SubmitHumanMove(board, cell tictactoe.Coord) bool {
	if that.position.MetaOutcome().IsDecided() {
		return false
	}

	move := tictactoe.NewMove(board, cell, that.position.Turn)
	if !tictactoe.IsLegal(&that.position, &move) {
		return false
	}

	that.apply(move)

	return true
}

// ComputeAIMove searches the live position for the side to move and plays the
// chosen move in place.
func (that *Controller) ComputeAIMove() (tictactoe.Move, error) {
	if that.position.MetaOutcome().IsDecided() {
		return tictactoe.Move{}, apperror.ErrGameFinished
	}

	result, err := that.engine.BestMove(&that.position)
	if err != nil {
		return tictactoe.Move{}, fmt.Errorf("failed to compute move: %w", err)
	}

	move := tictactoe.NewMove(result.Move.Board, result.Move.Cell, result.Move.Piece)
	if err := tictactoe.Validate(&that.position, &move); err != nil {
		return tictactoe.Move{}, fmt.Errorf("%w: engine chose %s: %w", apperror.ErrIllegalMove, move, err)
	}

	return that.apply(move), nil
}

func (that *Controller) MetaOutcome() tictactoe.Outcome {
	return that.position.MetaOutcome()
}

// LastMove returns the most recent move, or nil before the first one.
func (that *Controller) LastMove() *tictactoe.Move {
	if that.lastMove == nil {
		return nil
	}

	move := *that.lastMove

	return &move
}

func (that *Controller) Reset() {
	that.position = tictactoe.NewPosition()
	that.lastMove = nil
}

func (that *Controller) apply(move tictactoe.Move) tictactoe.Move {
	tictactoe.ApplyMove(&that.position, &move)
	that.lastMove = &move

	return move
}
