// t2048 is a terminal client for a remote 2048 board service.
//
// Usage:
//
//	t2048 play               - Play interactively against the board service
//	t2048 serve              - Start the reference board service
//	t2048 board              - Print the current board
//	t2048 move <direction>   - Make one move and print the board
//	t2048 reset              - Start a new game and print the board
//
// Global flags:
//
//	--config <path>     - Config file (default search: ~/.arcade/configs, ./configs)
//	--url <url>         - Board service URL
//	--protocol <v1|v2>  - Response format of the service
//	--log-level <level> - debug, info, warn, error
//	--log-file <path>   - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/config"
)

var (
	// Global flags
	flagConfig   string
	flagURL      string
	flagProtocol string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "t2048",
	Short: "2048 in your terminal, backed by a remote board service",
	Long: `t2048 plays 2048 against a remote board service. The service owns the
rules; the client sends one action at a time and draws what comes back.

Available commands:
  play     - Interactive terminal client
  serve    - Reference board service
  board    - Print the current board
  move     - Make one move
  reset    - Start a new game

Examples:
  t2048 serve
  t2048 play
  t2048 play --url http://10.0.0.5:8080
  t2048 move left
  t2048 serve --legacy & t2048 play --protocol v1`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagURL, "url", "", "Board service URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagProtocol, "protocol", "", "Service protocol: v2 (rows + score) or v1 (rows only)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(resetCmd)
}

// loadConfig loads the config file and applies command line overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	if flagURL != "" {
		cfg.Client.BaseURL = flagURL
	}
	if flagProtocol != "" {
		cfg.Client.Protocol = flagProtocol
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if flagLogFile != "" {
		cfg.Log.File = flagLogFile
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
