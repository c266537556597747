package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/transport"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Print the current board",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return oneShot(cmd, func(ctx context.Context, c *transport.Client) (core.BoardState, error) {
			return c.Load(ctx)
		})
	},
}

var moveCmd = &cobra.Command{
	Use:       "move <up|down|left|right>",
	Short:     "Make one move and print the board",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"up", "down", "left", "right"},
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := core.ParseDirection(strings.ToLower(args[0]))
		if err != nil {
			return fmt.Errorf("unknown direction %q (want up, down, left or right)", args[0])
		}
		return oneShot(cmd, func(ctx context.Context, c *transport.Client) (core.BoardState, error) {
			return c.Move(ctx, dir)
		})
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Start a new game and print the board",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return oneShot(cmd, func(ctx context.Context, c *transport.Client) (core.BoardState, error) {
			return c.Reset(ctx)
		})
	},
}

// oneShot performs a single transport call and prints the result.
func oneShot(cmd *cobra.Command, call func(context.Context, *transport.Client) (core.BoardState, error)) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := config.NewLogger(cfg.Log, os.Stderr, "t2048")
	if err != nil {
		return err
	}
	defer closeLog()

	client, err := newClient(cfg.Client, logger)
	if err != nil {
		return err
	}

	state, err := call(cmd.Context(), client)
	if err != nil {
		return err
	}
	printBoard(cmd.OutOrStdout(), state)
	return nil
}

// printBoard writes the grid with right-aligned columns, then the score.
func printBoard(w io.Writer, s core.BoardState) {
	rows := s.Rows()
	width := len(fmt.Sprint(s.MaxTile()))
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, v := range row {
			if v == 0 {
				cells[i] = fmt.Sprintf("%*s", width, ".")
			} else {
				cells[i] = fmt.Sprintf("%*d", width, v)
			}
		}
		fmt.Fprintln(w, strings.Join(cells, " "))
	}
	fmt.Fprintf(w, "score: %d\n", s.Score())
}
