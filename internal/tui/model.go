// Package tui is a terminal front end for playing against the engine.
package tui

import (
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/game"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/tictactoe"
)

// The grid is 11x11: three cells per sub-board plus two separator lines.
const (
	gridSize  = 11
	blockSize = 4
)

type aiMoveMsg struct {
	move tictactoe.Move
	err  error
}

// Model renders a game and turns key presses into moves. The human plays X;
// in self-play the engine plays both sides, one ply per enter.
type Model struct {
	logger     *slog.Logger
	controller *game.Controller

	// position and lastMove are snapshots taken in Update. While the engine
	// is thinking the controller belongs to the search command.
	position tictactoe.Position
	lastMove *tictactoe.Move

	cursorX, cursorY int

	human    tictactoe.Piece
	selfplay bool
	thinking bool
	status   string
	err      error
}

func New(logger *slog.Logger, controller *game.Controller, selfplay bool) Model {
	model := Model{
		logger:     logger.With("component", "tui"),
		controller: controller,
		human:      tictactoe.PlayerX,
		selfplay:   selfplay,
	}
	model.snapshot()

	return model
}

func (that Model) Init() tea.Cmd {
	return nil
}

func (that Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return that.handleKey(msg)
	case aiMoveMsg:
		that.thinking = false
		if msg.err != nil {
			that.logger.Error("engine failed", "error", msg.err)
			that.err = msg.err
			return that, nil
		}
		that.snapshot()
		that.status = fmt.Sprintf("%s played %s %s", msg.move.Piece, msg.move.Board, msg.move.Cell)
	}

	return that, nil
}

func (that Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "q" || key == "ctrl+c" {
		return that, tea.Quit
	}

	if that.thinking {
		return that, nil
	}

	switch key {
	case "up", "k":
		that.cursorY = step(that.cursorY, -1)
	case "down", "j":
		that.cursorY = step(that.cursorY, 1)
	case "left", "h":
		that.cursorX = step(that.cursorX, -1)
	case "right", "l":
		that.cursorX = step(that.cursorX, 1)
	case "r":
		if that.position.MetaOutcome().IsDecided() || that.err != nil {
			that.controller.Reset()
			that.snapshot()
			that.status = ""
			that.err = nil
		}
	case "enter", " ":
		return that.play()
	}

	return that, nil
}

func (that Model) play() (tea.Model, tea.Cmd) {
	if that.position.MetaOutcome().IsDecided() || that.err != nil {
		return that, nil
	}

	if that.selfplay || that.position.Turn != that.human {
		return that.think()
	}

	board, cell := that.selected()
	if !that.controller.SubmitHumanMove(board, cell) {
		that.status = fmt.Sprintf("illegal move %s %s", board, cell)
		return that, nil
	}

	that.snapshot()
	that.status = ""

	if that.position.MetaOutcome().IsDecided() {
		return that, nil
	}

	return that.think()
}

func (that Model) think() (tea.Model, tea.Cmd) {
	that.thinking = true
	that.status = "thinking..."

	controller := that.controller

	return that, func() tea.Msg {
		move, err := controller.ComputeAIMove()
		return aiMoveMsg{move: move, err: err}
	}
}

func (that *Model) snapshot() {
	that.position = that.controller.Position()
	that.lastMove = that.controller.LastMove()
}

// selected maps the cursor to a sub-board and a cell.
func (that Model) selected() (board, cell tictactoe.Coord) {
	return gridCoords(that.cursorX, that.cursorY)
}

func gridCoords(x, y int) (board, cell tictactoe.Coord) {
	board = tictactoe.Coord{X: uint8(x / blockSize), Y: uint8(y / blockSize)} //nolint: gosec // cursor is in 0..10
	cell = tictactoe.Coord{X: uint8(x % blockSize), Y: uint8(y % blockSize)}  //nolint: gosec // cursor is in 0..10

	return board, cell
}

// step moves a cursor axis by delta, jumping over separator lines and
// stopping at the edges.
func step(pos, delta int) int {
	next := pos + delta
	if isSeparator(next) {
		next += delta
	}

	if next < 0 || next >= gridSize {
		return pos
	}

	return next
}

func isSeparator(pos int) bool {
	return pos%blockSize == blockSize-1
}

func (that Model) View() string {
	var view strings.Builder

	for y := 0; y < gridSize; y++ {
		if isSeparator(y) {
			view.WriteString(separatorStyle.Render("---+---+---"))
			view.WriteByte('\n')
			continue
		}

		for x := 0; x < gridSize; x++ {
			if isSeparator(x) {
				view.WriteString(separatorStyle.Render("|"))
				continue
			}
			view.WriteString(that.renderCell(x, y))
		}
		view.WriteByte('\n')
	}

	view.WriteByte('\n')
	view.WriteString(that.footer())

	return view.String()
}

func (that Model) renderCell(x, y int) string {
	board, cell := gridCoords(x, y)
	subBoard := that.position.Board(board)

	text := subBoard.Cell(cell).String()
	if text == "" {
		text = "."
	}

	style := plainStyle
	switch subBoard.Outcome {
	case tictactoe.XWins:
		style = xWonStyle
	case tictactoe.OWins:
		style = oWonStyle
	case tictactoe.Draw:
		style = drawnStyle
	default:
		if that.isPlayable(board) {
			style = playableStyle
		}
	}

	if that.lastMove != nil && that.lastMove.Board == board && that.lastMove.Cell == cell {
		style = style.Inherit(lastMoveStyle)
	}
	if x == that.cursorX && y == that.cursorY {
		style = style.Inherit(cursorStyle)
	}

	return style.Render(text)
}

func (that Model) isPlayable(board tictactoe.Coord) bool {
	if that.position.MetaOutcome().IsDecided() {
		return false
	}

	forced := that.position.ForcedBoard()
	if forced == nil {
		return that.position.Board(board).Playable()
	}

	return that.position.Forced == board
}

func (that Model) footer() string {
	var footer strings.Builder

	switch outcome := that.position.MetaOutcome(); outcome {
	case tictactoe.XWins, tictactoe.OWins:
		footer.WriteString(bannerStyle.Render(fmt.Sprintf("Player '%s' has won!", outcome.Winner())))
		footer.WriteByte('\n')
	case tictactoe.Draw:
		footer.WriteString(bannerStyle.Render("It's a draw!"))
		footer.WriteByte('\n')
	default:
		fmt.Fprintf(&footer, "%s to move, board %s\n", that.position.Turn, that.position.Forced)
	}

	if that.err != nil {
		footer.WriteString(errorStyle.Render(that.err.Error()))
		footer.WriteByte('\n')
	} else if that.status != "" {
		footer.WriteString(that.status)
		footer.WriteByte('\n')
	}

	help := "arrows/hjkl move, enter plays, q quits"
	if that.selfplay {
		help = "enter steps the engine, q quits"
	}
	if that.position.MetaOutcome().IsDecided() {
		help += ", r restarts"
	}
	footer.WriteString(helpStyle.Render(help))
	footer.WriteByte('\n')

	return footer.String()
}
