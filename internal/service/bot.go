package service

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/apperror"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/engine"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/entity"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/game"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/tictactoe"
)

var (
	ErrBotNotFound      = errors.New("bot player not found")
	ErrNoAvailableMoves = errors.New("no available moves")
)

type BotService interface {
	MakeTurn(game *entity.Game) error
}

type moveSearcher interface {
	BestMove(position *tictactoe.Position) (engine.Result, error)
}

// botService plays the engine's side. All games share one engine and its
// arenas, so searches run one at a time.
type botService struct {
	logger *slog.Logger

	mu     sync.Mutex
	engine moveSearcher
}

func NewBotService(logger *slog.Logger, searcher moveSearcher) BotService {
	return &botService{
		logger: logger,
		engine: searcher,
	}
}

func (that *botService) MakeTurn(existingGame *entity.Game) error {
	log := that.logger.With("method", "MakeTurn", "gameID", existingGame.ID)

	botPlayer := existingGame.GetBot()
	if botPlayer == nil {
		return ErrBotNotFound
	}

	if botPlayer.Mark != existingGame.Position.Turn.String() {
		return apperror.ErrNotYourTurn
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	controller := game.Restore(existingGame.Position, existingGame.LastMove, that.engine)

	move, err := controller.ComputeAIMove()
	if errors.Is(err, engine.ErrNoMoves) {
		return ErrNoAvailableMoves
	}

	if err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	existingGame.Position = controller.Position()
	existingGame.LastMove = controller.LastMove()
	existingGame.UpdateGameState()

	log.Debug("bot played", "move", move.String(), "status", existingGame.Status)

	return nil
}
