package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/server"
)

var (
	flagAddr   string
	flagSize   int
	flagSeed   int64
	flagDBPath string
	flagLegacy bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the reference board service",
	Long: `Start an HTTP service that owns a single 2048 board.

Endpoints:
  GET  /board        - Current board
  POST /board/move   - Body {"action": "up"|"down"|"left"|"right"}
  POST /board/reset  - Start a new game

The board lives in memory unless --db points at a file, in which case it
survives restarts.

Examples:
  t2048 serve                        # Listen on localhost:8080
  t2048 serve --addr :9090           # Listen on port 9090
  t2048 serve --size 5 --seed 42     # 5x5 board, reproducible spawns
  t2048 serve --db ~/.arcade/board.db
  t2048 serve --legacy               # Omit score (v1 clients)`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (host:port)")
	serveCmd.Flags().IntVar(&flagSize, "size", 0, "Board edge length")
	serveCmd.Flags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	serveCmd.Flags().StringVar(&flagDBPath, "db", "", "Path to board database (default in-memory)")
	serveCmd.Flags().BoolVar(&flagLegacy, "legacy", false, "Omit score from responses")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyServeFlags(cmd, &cfg.Server)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, closeLog, err := config.NewLogger(cfg.Log, os.Stderr, "t2048-serve")
	if err != nil {
		return err
	}
	defer closeLog()

	srv, err := server.New(server.Config{
		Address: cfg.Server.Address,
		Size:    cfg.Server.Size,
		Spawn4:  cfg.Server.Spawn4,
		Seed:    cfg.Server.Seed,
		DBPath:  cfg.Server.DB,
		Legacy:  cfg.Server.Legacy,
	}, server.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Serving 2048 board on http://%s\n", srv.Addr())
	fmt.Println("Press Ctrl+C to stop")

	return srv.ListenAndServe()
}

// applyServeFlags overrides config values with flags the user set.
func applyServeFlags(cmd *cobra.Command, sc *config.ServerConfig) {
	flags := cmd.Flags()
	if flags.Changed("addr") {
		sc.Address = flagAddr
	}
	if flags.Changed("size") {
		sc.Size = flagSize
	}
	if flags.Changed("seed") {
		sc.Seed = flagSeed
	}
	if flags.Changed("db") {
		sc.DB = flagDBPath
	}
	if flags.Changed("legacy") {
		sc.Legacy = flagLegacy
	}
}
