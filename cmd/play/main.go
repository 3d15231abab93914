package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/engine"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/game"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/tui"
)

func main() {
	selfplay := flag.Bool("selfplay", false, "let the engine play both sides, one ply per enter")
	depth := flag.Int("depth", engine.DefaultDepth, "search depth in plies")
	debug := flag.Bool("debug", false, "write debug logs to stderr")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if *debug {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	bot := engine.New(logger, engine.WithDepth(*depth))
	model := tui.New(logger, game.NewController(bot), *selfplay)

	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "play: %v\n", err)
		os.Exit(1)
	}
}
