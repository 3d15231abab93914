package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/entity"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/tictactoe"
)

const (
	actionConnect  = "connect"
	actionGameNew  = "game:new"
	actionGameTurn = "game:turn"
	actionError    = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Payload struct {
	Player *entity.Player `json:"player,omitempty"`
	Game   *entity.Game   `json:"game,omitempty"`
	Move   *MovePayload   `json:"move,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// MovePayload addresses a cell: the sub-board in the meta grid, then the cell
// inside it.
type MovePayload struct {
	Board tictactoe.Coord `json:"board"`
	Cell  tictactoe.Coord `json:"cell"`
}
