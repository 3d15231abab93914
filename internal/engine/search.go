package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/arena"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/tictactoe"
)

const (
	DefaultDepth = 6

	infinity = 1_000_000_000
)

var ErrNoMoves = errors.New("no legal moves")

// Stats describes the work done by one BestMove call.
type Stats struct {
	Nodes        uint64 `json:"nodes"`
	Cutoffs      uint64 `json:"cutoffs"`
	MovePeak     int    `json:"move_peak"`
	PositionPeak int    `json:"position_peak"`
}

type Result struct {
	Move  tictactoe.Move `json:"move"`
	Score int            `json:"score"`
	Stats Stats          `json:"stats"`
}

// Engine runs a fixed-depth alpha-beta search. It owns one arena pair and is
// not safe for concurrent use; callers that share an Engine must serialise
// BestMove calls.
type Engine struct {
	logger *slog.Logger
	depth  int

	moveCapacity     int
	positionCapacity int

	moves     *arena.Arena[tictactoe.Move]
	positions *arena.Arena[tictactoe.Position]
}

type Option func(*Engine)

// WithDepth sets the search depth in plies. Depths below 1 are raised to 1.
func WithDepth(depth int) Option {
	return func(engine *Engine) {
		engine.depth = max(depth, 1)
	}
}

// WithArenaCapacity overrides the statically computed arena sizes.
func WithArenaCapacity(moves, positions int) Option {
	return func(engine *Engine) {
		engine.moveCapacity = moves
		engine.positionCapacity = positions
	}
}

// RequiredCapacity returns arena sizes that can never overflow at depth:
// every frame that generates moves holds at most MaxMoves of them, and each
// frame keeps a single clone alive while it recurses.
func RequiredCapacity(depth int) (moves, positions int) {
	depth = max(depth, 1)

	return tictactoe.MaxMoves * depth, depth
}

func New(logger *slog.Logger, opts ...Option) *Engine {
	engine := &Engine{
		logger: logger.With("component", "engine"),
		depth:  DefaultDepth,
	}

	for _, opt := range opts {
		opt(engine)
	}

	moves, positions := RequiredCapacity(engine.depth)
	if engine.moveCapacity == 0 {
		engine.moveCapacity = moves
	}
	if engine.positionCapacity == 0 {
		engine.positionCapacity = positions
	}

	engine.moves = arena.New[tictactoe.Move](engine.moveCapacity)
	engine.positions = arena.New[tictactoe.Position](engine.positionCapacity)

	return engine
}

func (that *Engine) Depth() int {
	return that.depth
}

// BestMove searches position and returns the highest scoring move for the
// side to move. Ties keep the first move in generation order. position is
// only read; every explored line is played on arena clones.
func (that *Engine) BestMove(position *tictactoe.Position) (Result, error) {
	log := that.logger.With("method", "BestMove")

	that.moves.Reset()
	that.positions.Reset()

	search := &searchContext{
		moves:       that.moves,
		positions:   that.positions,
		perspective: position.Turn,
	}

	span, err := tictactoe.GenerateMoves(position, search.moves)
	if err != nil {
		return Result{}, fmt.Errorf("failed to generate root moves: %w", err)
	}

	if span.Len == 0 {
		return Result{}, ErrNoMoves
	}

	best, bestIndex := -infinity, 0
	for i := 0; i < span.Len; i++ {
		score, err := search.child(position, that.moves.At(span.Start+i), that.depth-1, best, infinity)
		if err != nil {
			log.Error("search aborted", "error", err)
			return Result{}, fmt.Errorf("search aborted: %w", err)
		}

		if score > best {
			best, bestIndex = score, i
		}
	}

	result := Result{
		Move:  *that.moves.At(span.Start + bestIndex),
		Score: best,
		Stats: search.stats,
	}
	result.Stats.MovePeak = that.moves.HighWater()
	result.Stats.PositionPeak = that.positions.HighWater()

	that.moves.Release(arena.Mark(span.Start))

	log.Debug("search finished",
		"move", result.Move.String(),
		"score", result.Score,
		"nodes", result.Stats.Nodes,
		"cutoffs", result.Stats.Cutoffs,
		"move_peak", result.Stats.MovePeak,
		"position_peak", result.Stats.PositionPeak,
	)

	return result, nil
}

// searchContext carries everything one search needs down the recursion.
type searchContext struct {
	moves       *arena.Arena[tictactoe.Move]
	positions   *arena.Arena[tictactoe.Position]
	perspective tictactoe.Piece
	stats       Stats
}

// child clones parent into the position arena, plays move on the clone and
// searches it. The clone dies when child returns.
func (that *searchContext) child(parent *tictactoe.Position, move *tictactoe.Move, depth, alpha, beta int) (int, error) {
	mark := that.positions.Mark()
	defer that.positions.Release(mark)

	span, err := that.positions.Allocate(1)
	if err != nil {
		return 0, fmt.Errorf("failed to clone position: %w", err)
	}

	clone := that.positions.At(span.Start)
	*clone = *parent
	tictactoe.ApplyMove(clone, move)

	return that.search(clone, depth, alpha, beta)
}

func (that *searchContext) search(position *tictactoe.Position, depth, alpha, beta int) (int, error) {
	that.stats.Nodes++

	// faster wins score higher, faster losses lower
	switch outcome := position.MetaOutcome(); outcome {
	case tictactoe.Draw:
		return 0, nil
	case tictactoe.XWins, tictactoe.OWins:
		if outcome.Winner() == that.perspective {
			return WinScore * (depth + 1), nil
		}
		return -WinScore * (depth + 1), nil
	}

	if depth == 0 {
		return EvaluatePosition(position, that.perspective), nil
	}

	mark := that.moves.Mark()
	defer that.moves.Release(mark)

	span, err := tictactoe.GenerateMoves(position, that.moves)
	if err != nil {
		return 0, err
	}

	if span.Len == 0 {
		return EvaluatePosition(position, that.perspective), nil
	}

	maximizing := position.Turn == that.perspective

	best := infinity
	if maximizing {
		best = -infinity
	}

	for i := 0; i < span.Len; i++ {
		score, err := that.child(position, that.moves.At(span.Start+i), depth-1, alpha, beta)
		if err != nil {
			return 0, err
		}

		if maximizing {
			best = max(best, score)
			alpha = max(alpha, score)
		} else {
			best = min(best, score)
			beta = min(beta, score)
		}

		if beta <= alpha {
			that.stats.Cutoffs++
			break
		}
	}

	return best, nil
}
