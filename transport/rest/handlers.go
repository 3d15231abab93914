package rest

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/entity"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/repository"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/tictactoe"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/pkg/handlers"
)

type gameResponse struct {
	ID       string             `json:"id"`
	Position tictactoe.Position `json:"position"`
	LastMove *tictactoe.Move    `json:"last_move,omitempty"`
	Winner   string             `json:"winner"`
	Status   string             `json:"status"`
	Turn     string             `json:"player_turn"`
	Outcome  tictactoe.Outcome  `json:"outcome"`
}

type movesResponse struct {
	Forced tictactoe.Coord  `json:"forced"`
	Moves  []tictactoe.Move `json:"moves"`
}

func newGameResponse(game *entity.Game) gameResponse {
	return gameResponse{
		ID:       game.ID,
		Position: game.Position,
		LastMove: game.LastMove,
		Winner:   game.Winner,
		Status:   game.Status,
		Turn:     game.Turn,
		Outcome:  game.Position.MetaOutcome(),
	}
}

func (that *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	game, ok := that.loadGame(w, r)
	if !ok {
		return
	}

	handlers.WriteJSON(w, http.StatusOK, newGameResponse(game))
}

func (that *Server) handleGetMoves(w http.ResponseWriter, r *http.Request) {
	game, ok := that.loadGame(w, r)
	if !ok {
		return
	}

	handlers.WriteJSON(w, http.StatusOK, movesResponse{
		Forced: game.Position.Forced,
		Moves:  game.LegalMoves(),
	})
}

func (that *Server) loadGame(w http.ResponseWriter, r *http.Request) (*entity.Game, bool) {
	gameID := chi.URLParam(r, "id")
	log := that.logger.With("method", "loadGame", "gameID", gameID)

	game, err := that.uGame.GetGame(r.Context(), gameID)
	if errors.Is(err, repository.ErrGameNotFound) {
		handlers.WriteError(w, http.StatusNotFound, "game not found")
		return nil, false
	}

	if err != nil {
		log.Error("failed to get game", "error", err)
		handlers.WriteError(w, http.StatusInternalServerError, "failed to get game")
		return nil, false
	}

	return game, true
}
