package entity

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/apperror"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/tictactoe"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
	StatusWaiting  = "waiting"

	PlayerX   = "X"
	PlayerO   = "O"
	PlayerTie = "-"
)

const WithBotType = "bot"

var ErrUnknownGameStatus = errors.New("unknown game status")

// Game is a live session: the position being played plus who plays it.
type Game struct {
	ID       string             `json:"id"`
	Position tictactoe.Position `json:"position"`
	LastMove *tictactoe.Move    `json:"last_move,omitempty"`
	Winner   string             `json:"winner"`
	Status   string             `json:"status"`
	Turn     string             `json:"player_turn"`
	Players  []*Player          `json:"players,omitempty"`
	Type     string             `json:"type,omitempty"`
}

func NewGame(id, gameType string) *Game {
	return &Game{
		ID:       id,
		Position: tictactoe.NewPosition(),
		Turn:     PlayerX,
		Status:   StatusWaiting,
		Type:     gameType,
	}
}

// UpdateGameState derives status, winner and turn from the position.
func (that *Game) UpdateGameState() {
	switch outcome := that.Position.MetaOutcome(); outcome {
	case tictactoe.XWins, tictactoe.OWins:
		that.Winner = outcome.Winner().String()
		that.Status = StatusFinished
		that.Turn = ""
	case tictactoe.Draw:
		that.Winner = PlayerTie
		that.Status = StatusFinished
		that.Turn = ""
	default:
		that.Status = StatusOngoing
		that.Turn = that.Position.Turn.String()
	}
}

// MakeTurn plays playerMark at board/cell and updates the game state. A
// rejected move leaves the game untouched.
func (that *Game) MakeTurn(playerMark string, board, cell tictactoe.Coord) error {
	piece, err := tictactoe.ParsePiece(playerMark)
	if err != nil {
		return fmt.Errorf("failed to parse mark: %w", err)
	}

	move := tictactoe.NewMove(board, cell, piece)
	if err = tictactoe.Validate(&that.Position, &move); err != nil {
		return err
	}

	that.Play(move)

	return nil
}

// Play applies an already validated move.
func (that *Game) Play(move tictactoe.Move) {
	tictactoe.ApplyMove(&that.Position, &move)
	that.LastMove = &move

	that.UpdateGameState()
}

// LegalMoves lists the moves available to the side to move.
func (that *Game) LegalMoves() []tictactoe.Move {
	if that.IsFinished() {
		return []tictactoe.Move{}
	}

	return tictactoe.LegalMoves(&that.Position)
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsWaiting():
		return apperror.ErrGameIsNotStarted
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}

func (that *Game) IsWithBot() bool {
	return that.Type == WithBotType
}

// GetBot returns the engine-controlled player, or nil.
func (that *Game) GetBot() *Player {
	for _, player := range that.Players {
		if player.IsBot() {
			return player
		}
	}

	return nil
}

func (that *Game) GetRandomMarks() (string, string) {
	if rand.Intn(2) == 0 { //nolint: gosec // it's ok
		return PlayerX, PlayerO
	}
	return PlayerO, PlayerX
}
