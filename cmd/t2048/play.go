package main

import (
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play 2048 against the board service",
	Long: `Start the interactive client. The board is loaded once at start; every
key press is sent to the service in the order it was made.

Controls:
  Arrows/WASD - Move
  N           - New game (or click [ New game ])
  ?           - More help
  Q/Ctrl+C    - Quit

Examples:
  t2048 play
  t2048 play --url http://localhost:9090
  t2048 play --log-file ~/.arcade/t2048.log --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("play needs an interactive terminal; use board, move or reset instead")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := config.NewLogger(cfg.Log, io.Discard, "t2048") // The terminal belongs to the board
	if err != nil {
		return err
	}
	defer closeLog()

	client, err := newClient(cfg.Client, logger)
	if err != nil {
		return err
	}
	eng, err := newEngine(cfg.Engine, client, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting client", "url", cfg.Client.BaseURL, "protocol", cfg.Client.Protocol, "policy", cfg.Engine.Policy)
	return tui.Run(ctx, eng)
}
