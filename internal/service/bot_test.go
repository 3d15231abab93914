package service

import (
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/apperror"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/engine"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/entity"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/tictactoe"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newBotGame(id, botMark string) *entity.Game {
	game := entity.NewGame(id, entity.WithBotType)
	game.Status = entity.StatusOngoing
	game.Players = []*entity.Player{
		{ID: "human-" + id, Mark: botMarkOpponent(botMark), GameID: id},
		entity.NewBotPlayer(id, botMark),
	}

	return game
}

func botMarkOpponent(mark string) string {
	if mark == entity.PlayerX {
		return entity.PlayerO
	}
	return entity.PlayerX
}

func TestBotService_MakeTurn(t *testing.T) {
	logger := newDiscardLogger()

	t.Run("Bot opens the game as X", func(t *testing.T) {
		// Given: a fresh game where the bot holds X
		botService := NewBotService(logger, engine.New(logger, engine.WithDepth(2)))
		game := newBotGame("g1", entity.PlayerX)

		// When: the bot moves
		err := botService.MakeTurn(game)

		// Then: an X is on the board, it is O's turn and the move is remembered
		require.NoError(t, err)
		require.NotNil(t, game.LastMove)
		assert.Equal(t, tictactoe.PlayerX, game.LastMove.Piece)
		assert.Equal(t, tictactoe.PlayerX, game.Position.Board(game.LastMove.Board).Cell(game.LastMove.Cell))
		assert.Equal(t, entity.PlayerO, game.Turn)
		assert.Equal(t, entity.StatusOngoing, game.Status)
	})

	t.Run("Bot refuses to move out of turn", func(t *testing.T) {
		botService := NewBotService(logger, engine.New(logger, engine.WithDepth(2)))
		game := newBotGame("g1", entity.PlayerO)

		err := botService.MakeTurn(game)

		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.Nil(t, game.LastMove)
	})

	t.Run("Game without bot is rejected", func(t *testing.T) {
		botService := NewBotService(logger, engine.New(logger, engine.WithDepth(2)))
		game := entity.NewGame("g1", entity.WithBotType)

		err := botService.MakeTurn(game)

		require.ErrorIs(t, err, ErrBotNotFound)
	})

	t.Run("Bot finishes a won game", func(t *testing.T) {
		// Given: the bot as O can complete the centre column of sub-boards
		botService := NewBotService(logger, engine.New(logger, engine.WithDepth(2)))
		game := newBotGame("g1", entity.PlayerO)
		game.Position.Turn = tictactoe.PlayerO
		game.Position.Boards[1].Outcome = tictactoe.OWins
		game.Position.Boards[7].Outcome = tictactoe.OWins
		centre := &game.Position.Boards[4]
		centre.Cells[0], centre.Cells[1], centre.Empty = tictactoe.PlayerO, tictactoe.PlayerO, 7
		game.Position.Forced = tictactoe.Coord{X: 1, Y: 1}

		// When: the bot moves
		err := botService.MakeTurn(game)

		// Then: it takes the win
		require.NoError(t, err)
		assert.Equal(t, entity.StatusFinished, game.Status)
		assert.Equal(t, entity.PlayerO, game.Winner)
	})

	t.Run("Concurrent games share one engine safely", func(t *testing.T) {
		botService := NewBotService(logger, engine.New(logger, engine.WithDepth(3)))

		games := make([]*entity.Game, 8)
		for i := range games {
			games[i] = newBotGame(string(rune('a'+i)), entity.PlayerX)
		}

		var wg sync.WaitGroup
		errs := make([]error, len(games))
		for i := range games {
			i := i
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs[i] = botService.MakeTurn(games[i])
			}()
		}
		wg.Wait()

		// Then: every game got the same deterministic opening
		for i := range games {
			require.NoError(t, errs[i])
			assert.Equal(t, games[0].LastMove, games[i].LastMove)
		}
	})
}
